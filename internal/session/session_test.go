package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/helper-labs/helper-portal/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeAPI struct {
	mu        sync.Mutex
	id        string
	idErr     error
	logoutErr error
	loggedOut []string
}

func (f *fakeAPI) GetID(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.id, f.idErr
}

func (f *fakeAPI) Logout(_ context.Context, memberID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.logoutErr != nil {
		return "", f.logoutErr
	}
	f.loggedOut = append(f.loggedOut, memberID)
	return "로그아웃 성공", nil
}

func TestStartsLoggedOut(t *testing.T) {
	s := New(&fakeAPI{}, nil)
	assert.Equal(t, model.Session{}, s.Snapshot())
}

func TestCheckStatus(t *testing.T) {
	cases := []struct {
		name string
		api  *fakeAPI
		want model.Session
	}{
		{"identity", &fakeAPI{id: "alice"}, model.Session{MemberID: "alice", IsLoggedIn: true}},
		{"trims identity", &fakeAPI{id: " alice\n"}, model.Session{MemberID: "alice", IsLoggedIn: true}},
		{"empty identity", &fakeAPI{id: ""}, model.Session{}},
		{"request fails", &fakeAPI{id: "alice", idErr: errors.New("connection refused")}, model.Session{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := New(tc.api, nil)
			s.Login("stale")

			got := s.CheckStatus(context.Background())
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want, s.Snapshot())
			assert.Equal(t, got.IsLoggedIn, got.MemberID != "")
		})
	}
}

func TestLoginIsLocal(t *testing.T) {
	api := &fakeAPI{idErr: errors.New("must not be called")}
	s := New(api, nil)

	got := s.Login("bob")
	assert.Equal(t, model.Session{MemberID: "bob", IsLoggedIn: true}, got)
	assert.Equal(t, got, s.Snapshot())
	assert.Empty(t, api.loggedOut)
}

func TestLogoutClearsState(t *testing.T) {
	api := &fakeAPI{}
	s := New(api, nil)
	s.Login("alice")

	ok, alert := s.Logout(context.Background())
	require.True(t, ok)
	assert.False(t, alert.IsError())
	assert.Equal(t, msgLogoutOK, alert.Message)
	assert.Equal(t, model.Session{}, s.Snapshot())
	assert.Equal(t, []string{"alice"}, api.loggedOut)
}

func TestLogoutFailureKeepsState(t *testing.T) {
	api := &fakeAPI{logoutErr: errors.New("network down")}
	s := New(api, nil)
	s.Login("alice")

	ok, alert := s.Logout(context.Background())
	require.False(t, ok)
	assert.True(t, alert.IsError())
	assert.Equal(t, msgLogoutFailed, alert.Message)
	assert.Equal(t, model.Session{MemberID: "alice", IsLoggedIn: true}, s.Snapshot())
}

func TestSubscribeSeesLatestState(t *testing.T) {
	s := New(&fakeAPI{}, nil)
	ch, cancel := s.Subscribe()
	defer cancel()

	s.Login("alice")
	s.Login("bob")

	got := <-ch
	assert.Equal(t, model.Session{MemberID: "bob", IsLoggedIn: true}, got)
	select {
	case extra := <-ch:
		t.Fatalf("unexpected extra state %+v", extra)
	default:
	}
}

func TestSubscribeCancelClosesChannel(t *testing.T) {
	s := New(&fakeAPI{}, nil)
	ch, cancel := s.Subscribe()
	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// no subscriber left to block on
	s.Login("alice")
	assert.True(t, s.Snapshot().IsLoggedIn)
}

func TestConcurrentUse(t *testing.T) {
	s := New(&fakeAPI{id: "alice"}, nil)
	ch, cancel := s.Subscribe()
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				s.CheckStatus(context.Background())
			} else {
				s.Login("alice")
			}
			st := s.Snapshot()
			assert.Equal(t, st.IsLoggedIn, st.MemberID != "")
		}(i)
	}
	wg.Wait()
	assert.Equal(t, model.Session{MemberID: "alice", IsLoggedIn: true}, <-ch)
}

package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/helper-labs/helper-portal/internal/model"
)

func newTestClient(t *testing.T, h http.Handler, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	client, err := New(srv.URL, time.Second, append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)...)
	require.NoError(t, err)
	return client, srv
}

// loginHandler sets both token cookies on /auth/login.do.
func loginHandler(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: AccessTokenCookie, Value: "acc", Path: "/", MaxAge: 900})
	http.SetCookie(w, &http.Cookie{Name: RefreshTokenCookie, Value: "ref", Path: "/", MaxAge: 3600})
	_, _ = w.Write([]byte("로그인 성공"))
}

func TestNewValidatesURL(t *testing.T) {
	_, err := New("", 0)
	assert.Error(t, err)
	_, err = New("portal.test/api", 0)
	assert.Error(t, err)

	c, err := New("http://portal.test/api/", 0)
	require.NoError(t, err)
	assert.Equal(t, "http://portal.test/api", c.BaseURL())
}

func TestPrivilegedHeaders(t *testing.T) {
	type seen struct {
		auth, refresh, cookie, requestID string
	}
	var (
		mu   sync.Mutex
		hits = map[string]seen{}
	)
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits[r.URL.Path] = seen{
			auth:      r.Header.Get("Authorization"),
			refresh:   r.Header.Get(RefreshTokenHeader),
			cookie:    r.Header.Get("Cookie"),
			requestID: r.Header.Get(RequestIDHeader),
		}
		mu.Unlock()
		switch r.URL.Path {
		case pathLogin:
			loginHandler(w)
		case pathNoticeList:
			_, _ = w.Write([]byte(`{"list":[],"pageObject":{"page":1,"startPage":1,"endPage":1,"totalPage":1}}`))
		default:
			_, _ = w.Write([]byte("성공"))
		}
	}))
	ctx := context.Background()

	_, err := client.Login(ctx, "admin", "pw")
	require.NoError(t, err)
	_, err = client.NoticeList(ctx, 1, 10)
	require.NoError(t, err)
	_, err = client.NoticeWrite(ctx, "t", "c")
	require.NoError(t, err)
	_, err = client.QuestionWrite(ctx, "admin", "t", "c")
	require.NoError(t, err)
	_, err = client.Logout(ctx, "admin")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	public := hits[pathNoticeList]
	assert.Empty(t, public.auth)
	assert.Empty(t, public.refresh)
	assert.Contains(t, public.cookie, "refreshToken=ref")
	assert.NotEmpty(t, public.requestID)

	for _, p := range []string{pathNoticeWrite, pathQuestionWrite, pathLogout} {
		assert.Equal(t, "Bearer acc", hits[p].auth, p)
		assert.Equal(t, "ref", hits[p].refresh, p)
		assert.Contains(t, hits[p].cookie, "accessToken=acc", p)
	}
}

func TestPolicyListNeedsRefreshToken(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path == pathLogin {
			loginHandler(w)
			return
		}
		assert.Equal(t, "youth", r.URL.Query().Get("word"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(`{"list":[{"policy_no":1,"title":"Youth rent","url":"https://example.com"}],
			"pageObject":{"page":2,"startPage":1,"endPage":2,"totalPage":2}}`))
	}))
	ctx := context.Background()

	_, err := client.PolicyList(ctx, 2, 10, "youth")
	assert.ErrorIs(t, err, ErrLoginRequired)
	assert.Zero(t, calls)
	assert.Equal(t, "Login is required.", DescribeLoadError(err))

	_, err = client.Login(ctx, "alice1", "pw")
	require.NoError(t, err)
	page, err := client.PolicyList(ctx, 2, 10, "youth")
	require.NoError(t, err)
	require.Len(t, page.List, 1)
	assert.Equal(t, "Youth rent", page.List[0].Title)
}

func TestErrorTaxonomy(t *testing.T) {
	client, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case pathNoticeList:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "db down"})
		case pathNoticeView:
			w.WriteHeader(http.StatusNotFound)
		case pathNoticeDelete:
			w.WriteHeader(http.StatusNonAuthoritativeInfo)
			_, _ = w.Write([]byte("삭제 실패"))
		case pathValidateMemberID:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`"이미 사용중인 아이디입니다."`))
		}
	}))
	ctx := context.Background()

	_, err := client.NoticeList(ctx, 1, 10)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 500, statusErr.Code)
	assert.Equal(t, "Error: 500 - db down", DescribeLoadError(err))
	_, isText := statusErr.TextBody()
	assert.False(t, isText)

	_, err = client.NoticeView(ctx, 9)
	assert.Equal(t, "Error: 404 - Not Found", DescribeLoadError(err))

	// 203 is a 2xx: the failure lives in the body text
	result, err := client.NoticeDelete(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "삭제 실패", result)

	_, err = client.ValidateMemberID(ctx, "alice1")
	require.True(t, errors.As(err, &statusErr))
	body, isText := statusErr.TextBody()
	assert.True(t, isText)
	assert.Equal(t, "이미 사용중인 아이디입니다.", body)

	srv.Close()
	_, err = client.NoticeList(ctx, 1, 10)
	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr))
	assert.Equal(t, "Network error: cannot connect to the server.", DescribeLoadError(err))
}

func TestRequestErrors(t *testing.T) {
	client, err := New("http://portal.test", 0)
	require.NoError(t, err)

	_, err = client.GetID(nil)
	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, "An unexpected error occurred: nil context", DescribeLoadError(err))
	assert.Empty(t, DescribeLoadError(nil))
}

func TestText(t *testing.T) {
	assert.Equal(t, "admin", text([]byte(`"admin"`)))
	assert.Equal(t, "admin", text([]byte(" admin\n")))
	assert.Equal(t, "", text(nil))
}

func TestQnaViewDecodes(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "4", r.URL.Query().Get("question_no"))
		_, _ = w.Write([]byte(`{"questionVO":{"question_no":4,"title":"loan","member_id":"alice1"},"answerVO":null}`))
	}))
	view, err := client.QnaView(context.Background(), 4)
	require.NoError(t, err)
	require.NotNil(t, view.Question)
	assert.Equal(t, "alice1", view.Question.MemberID)
	assert.Nil(t, view.Answer)
	assert.Equal(t, model.Credentials{}, client.Credentials())
}

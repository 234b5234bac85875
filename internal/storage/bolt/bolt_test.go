package bolt

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helper-labs/helper-portal/internal/model"
	"github.com/helper-labs/helper-portal/internal/storage"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "nested", "devserver.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNoticeCRUD(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	n := &model.Notice{Title: "first", Content: "body"}
	require.NoError(t, s.CreateNotice(ctx, n))
	assert.Equal(t, int64(1), n.NoticeNo)
	assert.False(t, n.CreatedAt.IsZero())

	require.NoError(t, s.UpdateNotice(ctx, &model.Notice{NoticeNo: 1, Title: "renamed", Content: "new"}))
	got, err := s.GetNotice(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, "new", got.Content)
	assert.Equal(t, n.CreatedAt.Unix(), got.CreatedAt.Unix())

	require.NoError(t, s.DeleteNotice(ctx, 1))
	_, err = s.GetNotice(ctx, 1)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, s.DeleteNotice(ctx, 1), storage.ErrNotFound)
	assert.ErrorIs(t, s.UpdateNotice(ctx, &model.Notice{NoticeNo: 7}), storage.ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	for i := 1; i <= 12; i++ {
		require.NoError(t, s.CreateNotice(ctx, &model.Notice{Title: fmt.Sprintf("notice %d", i)}))
	}

	items, total, err := s.ListNotices(ctx, storage.Page{Offset: 10, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	require.Len(t, items, 2)
	assert.Equal(t, "notice 2", items[0].Title)
	assert.Equal(t, "notice 1", items[1].Title)

	items, total, err = s.ListNotices(ctx, storage.Page{Limit: 3, Word: "NOTICE 1"})
	require.NoError(t, err)
	// notice 1, 10, 11, 12
	assert.Equal(t, 4, total)
	require.Len(t, items, 3)
	assert.Equal(t, "notice 12", items[0].Title)
}

func TestQuestionDeleteDropsAnswer(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.PutAnswer(ctx, &model.Answer{QuestionNo: 1, Content: "orphan"}), storage.ErrNotFound)

	q := &model.Question{Title: "loan", Content: "?", MemberID: "alice1"}
	require.NoError(t, s.CreateQuestion(ctx, q))
	require.NoError(t, s.PutAnswer(ctx, &model.Answer{QuestionNo: q.QuestionNo, Content: "yes"}))
	first, err := s.GetAnswer(ctx, q.QuestionNo)
	require.NoError(t, err)

	require.NoError(t, s.PutAnswer(ctx, &model.Answer{QuestionNo: q.QuestionNo, Content: "edited"}))
	edited, err := s.GetAnswer(ctx, q.QuestionNo)
	require.NoError(t, err)
	assert.Equal(t, "edited", edited.Content)
	assert.Equal(t, first.CreatedAt.Unix(), edited.CreatedAt.Unix())

	require.NoError(t, s.DeleteQuestion(ctx, q.QuestionNo))
	_, err = s.GetAnswer(ctx, q.QuestionNo)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, s.DeleteQuestion(ctx, q.QuestionNo), storage.ErrNotFound)
}

func TestMembersAndTokens(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutMember(ctx, &model.Member{MemberID: "alice1", Auth: model.RoleMember}))
	assert.ErrorIs(t, s.PutMember(ctx, &model.Member{MemberID: "alice1"}), storage.ErrConflict)

	expires := time.Now().Add(time.Hour).UTC()
	for _, tok := range []*model.RefreshToken{
		{Token: "a1", MemberID: "alice1", ExpiresAt: expires},
		{Token: "a2", MemberID: "alice1", ExpiresAt: expires},
		{Token: "b1", MemberID: "bob12", ExpiresAt: expires},
	} {
		require.NoError(t, s.PutRefreshToken(ctx, tok))
	}
	require.NoError(t, s.DeleteRefreshTokens(ctx, "alice1"))

	_, err := s.GetRefreshToken(ctx, "a1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.GetRefreshToken(ctx, "a2")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	kept, err := s.GetRefreshToken(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "bob12", kept.MemberID)
}

func TestCancelledContext(t *testing.T) {
	s := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.CreateNotice(ctx, &model.Notice{Title: "x"}), context.Canceled)
	_, _, err := s.ListPolicies(ctx, storage.Page{})
	assert.ErrorIs(t, err, context.Canceled)
}

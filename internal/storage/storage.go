package storage

import (
	"context"
	"net/http"

	"github.com/helper-labs/helper-portal/internal/model"
)

// Page selects a slice of a newest-first listing.
type Page struct {
	Offset int
	Limit  int
	// Word filters by case-insensitive title substring when non-empty.
	Word string
}

// Store abstracts the dev server's record persistence.
type Store interface {
	CreateNotice(ctx context.Context, notice *model.Notice) error
	UpdateNotice(ctx context.Context, notice *model.Notice) error
	DeleteNotice(ctx context.Context, noticeNo int64) error
	GetNotice(ctx context.Context, noticeNo int64) (*model.Notice, error)
	ListNotices(ctx context.Context, page Page) ([]*model.Notice, int, error)

	CreateQuestion(ctx context.Context, question *model.Question) error
	UpdateQuestion(ctx context.Context, question *model.Question) error
	DeleteQuestion(ctx context.Context, questionNo int64) error
	GetQuestion(ctx context.Context, questionNo int64) (*model.Question, error)
	ListQuestions(ctx context.Context, page Page) ([]*model.Question, int, error)

	PutAnswer(ctx context.Context, answer *model.Answer) error
	DeleteAnswer(ctx context.Context, questionNo int64) error
	GetAnswer(ctx context.Context, questionNo int64) (*model.Answer, error)

	CreatePolicy(ctx context.Context, policy *model.Policy) error
	ListPolicies(ctx context.Context, page Page) ([]*model.Policy, int, error)

	PutMember(ctx context.Context, member *model.Member) error
	GetMember(ctx context.Context, memberID string) (*model.Member, error)

	PutRefreshToken(ctx context.Context, token *model.RefreshToken) error
	GetRefreshToken(ctx context.Context, token string) (*model.RefreshToken, error)
	DeleteRefreshTokens(ctx context.Context, memberID string) error

	Close() error
}

// ClientStore is the portal's own local state: the cookie jar and the chatbot transcript.
type ClientStore interface {
	SaveCookies(ctx context.Context, host string, cookies []*http.Cookie) error
	LoadCookies(ctx context.Context, host string) ([]*http.Cookie, error)

	AppendChatMessage(ctx context.Context, memberID string, msg *model.ChatMessage) error
	ListChatMessages(ctx context.Context, memberID string) ([]*model.ChatMessage, error)
	ClearChat(ctx context.Context, memberID string) error

	Close() error
}

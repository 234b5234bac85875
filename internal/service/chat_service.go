package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/helper-labs/helper-portal/internal/apiclient"
	"github.com/helper-labs/helper-portal/internal/logging"
	"github.com/helper-labs/helper-portal/internal/model"
	"github.com/helper-labs/helper-portal/internal/session"
	"github.com/helper-labs/helper-portal/internal/storage"
	"go.uber.org/zap"
)

// ErrBusy is returned when a question is already waiting for an answer.
var ErrBusy = errors.New("a question is already in flight")

const (
	ChatGreeting = "Hello! How can I help you?"
	ChatFailure  = "An unknown error occurred. Please try again."
)

// ChatService keeps the chatbot transcript of the current member.
type ChatService struct {
	api     *apiclient.Client
	store   storage.ClientStore
	session *session.Store
	logger  *zap.Logger
	now     func() time.Time

	mu   sync.Mutex
	busy bool
}

// NewChatService builds ChatService.
func NewChatService(api *apiclient.Client, store storage.ClientStore, sess *session.Store, logger *zap.Logger) *ChatService {
	return &ChatService{
		api:     api,
		store:   store,
		session: sess,
		logger:  logging.OrNop(logger),
		now:     time.Now,
	}
}

// Transcript returns the stored conversation, seeding the greeting when it is empty.
func (c *ChatService) Transcript(ctx context.Context) ([]*model.ChatMessage, error) {
	memberID := c.session.Snapshot().MemberID
	msgs, err := c.store.ListChatMessages(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if len(msgs) > 0 {
		return msgs, nil
	}
	greeting := &model.ChatMessage{Sender: model.SenderBot, Text: ChatGreeting, CreatedAt: c.now().UTC()}
	if err := c.store.AppendChatMessage(ctx, memberID, greeting); err != nil {
		return nil, err
	}
	return []*model.ChatMessage{greeting}, nil
}

// Ask records question and the bot's reply and returns both. A blank
// question is ignored and yields nothing. API failures become a bot line,
// not an error.
func (c *ChatService) Ask(ctx context.Context, question string) ([]*model.ChatMessage, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, nil
	}
	if !c.acquire() {
		return nil, ErrBusy
	}
	defer c.release()

	memberID := c.session.Snapshot().MemberID
	asked := &model.ChatMessage{Sender: model.SenderUser, Text: question, CreatedAt: c.now().UTC()}
	if err := c.store.AppendChatMessage(ctx, memberID, asked); err != nil {
		return nil, err
	}

	answer, err := c.api.Ask(ctx, question)
	if err != nil || strings.TrimSpace(answer) == "" {
		c.logger.Warn("chatbot ask failed", zap.String("member_id", memberID), zap.Error(err))
		answer = ChatFailure
	}
	reply := &model.ChatMessage{Sender: model.SenderBot, Text: answer, CreatedAt: c.now().UTC()}
	if err := c.store.AppendChatMessage(ctx, memberID, reply); err != nil {
		return []*model.ChatMessage{asked}, err
	}
	return []*model.ChatMessage{asked, reply}, nil
}

// Clear drops the current member's transcript.
func (c *ChatService) Clear(ctx context.Context) error {
	return c.store.ClearChat(ctx, c.session.Snapshot().MemberID)
}

func (c *ChatService) acquire() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return false
	}
	c.busy = true
	return true
}

func (c *ChatService) release() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

// Package session is the portal's single source of truth for who is acting.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/helper-labs/helper-portal/internal/logging"
	"github.com/helper-labs/helper-portal/internal/model"
	"go.uber.org/zap"
)

const (
	msgLogoutOK     = "Logged out successfully. Returning to the main page."
	msgLogoutFailed = "An unknown error occurred while logging out. Please try again."
)

// IdentityAPI is the slice of the API the store talks to.
type IdentityAPI interface {
	GetID(ctx context.Context) (string, error)
	Logout(ctx context.Context, memberID string) (string, error)
}

// Store holds the current member identity. Zero or one per process; it starts
// logged out and lives until the program exits.
type Store struct {
	api    IdentityAPI
	logger *zap.Logger

	mu          sync.RWMutex
	state       model.Session
	subscribers map[int]chan model.Session
	nextSub     int
}

// New returns a logged-out store.
func New(api IdentityAPI, logger *zap.Logger) *Store {
	return &Store{
		api:         api,
		logger:      logging.OrNop(logger),
		subscribers: make(map[int]chan model.Session),
	}
}

// Snapshot returns a consistent copy of the current state.
func (s *Store) Snapshot() model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// CheckStatus reconciles local state with the server's view of the stored
// cookies. It always ends in LoggedIn(id) or LoggedOut and never fails.
func (s *Store) CheckStatus(ctx context.Context) model.Session {
	id, err := s.api.GetID(ctx)
	id = strings.TrimSpace(id)
	switch {
	case err != nil:
		s.logger.Warn("identity check failed", zap.Error(err))
		return s.set(model.Session{})
	case id == "":
		s.logger.Debug("identity check: logged out")
		return s.set(model.Session{})
	default:
		s.logger.Debug("identity check: logged in", zap.String("member_id", id))
		return s.set(model.Session{MemberID: id, IsLoggedIn: true})
	}
}

// Login marks id as logged in right away, without I/O. Callers authenticate
// first and follow up with CheckStatus.
func (s *Store) Login(id string) model.Session {
	s.logger.Info("login", zap.String("member_id", id))
	return s.set(model.Session{MemberID: id, IsLoggedIn: true})
}

// Logout asks the server to invalidate the current member's tokens. State
// is cleared only when the server acknowledges; on failure it is kept as is.
func (s *Store) Logout(ctx context.Context) (bool, model.Alert) {
	current := s.Snapshot()
	if _, err := s.api.Logout(ctx, current.MemberID); err != nil {
		s.logger.Warn("logout failed", zap.String("member_id", current.MemberID), zap.Error(err))
		return false, model.Error(msgLogoutFailed)
	}
	s.set(model.Session{})
	s.logger.Info("logout", zap.String("member_id", current.MemberID))
	return true, model.Info(msgLogoutOK)
}

// Subscribe returns a channel receiving every new state. Slow readers see
// only the latest state. cancel must be called to release the channel.
func (s *Store) Subscribe() (<-chan model.Session, func()) {
	ch := make(chan model.Session, 1)
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = ch
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (s *Store) set(next model.Session) model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = next
	for _, ch := range s.subscribers {
		// drop a stale pending value so the newest one fits
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- next:
		default:
		}
	}
	return next
}

package bolt

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/helper-labs/helper-portal/internal/model"
	"github.com/helper-labs/helper-portal/internal/storage"
	bolt "go.etcd.io/bbolt"
)

var _ storage.ClientStore = (*ClientStore)(nil)

var (
	bucketCookies = []byte("cookies")
	bucketChat    = []byte("chat")
)

// guestTranscript holds chat lines sent while nobody is logged in.
const guestTranscript = "_guest"

// ClientStore keeps the portal's cookie jar and chat transcripts in Bolt.
type ClientStore struct {
	db *bolt.DB
}

type storedCookie struct {
	Name     string        `json:"name"`
	Value    string        `json:"value"`
	Path     string        `json:"path,omitempty"`
	Domain   string        `json:"domain,omitempty"`
	Expires  time.Time     `json:"expires"`
	Secure   bool          `json:"secure,omitempty"`
	HttpOnly bool          `json:"httpOnly,omitempty"`
	SameSite http.SameSite `json:"sameSite,omitempty"`
}

// NewClientStore opens (or creates) the portal's local database.
func NewClientStore(path string) (*ClientStore, error) {
	db, err := open(path, bucketCookies, bucketChat)
	if err != nil {
		return nil, err
	}
	return &ClientStore{db: db}, nil
}

// Close closes underlying Bolt DB.
func (s *ClientStore) Close() error {
	return s.db.Close()
}

// SaveCookies replaces the cookies stored for host.
func (s *ClientStore) SaveCookies(ctx context.Context, host string, cookies []*http.Cookie) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stored := make([]storedCookie, 0, len(cookies))
	for _, c := range cookies {
		stored = append(stored, storedCookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires.UTC(),
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
			SameSite: c.SameSite,
		})
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucketCookies)
		if len(stored) == 0 {
			return bkt.Delete([]byte(host))
		}
		return putJSON(bkt, []byte(host), stored)
	})
}

// LoadCookies returns the cookies stored for host.
func (s *ClientStore) LoadCookies(ctx context.Context, host string) ([]*http.Cookie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var stored []storedCookie
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketCookies).Get([]byte(host))
		if raw == nil {
			return nil
		}
		return json.Unmarshal(raw, &stored)
	})
	if err != nil {
		return nil, err
	}
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		cookies = append(cookies, &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
			SameSite: c.SameSite,
		})
	}
	return cookies, nil
}

// AppendChatMessage adds a line to memberID's transcript and assigns its id.
func (s *ClientStore) AppendChatMessage(ctx context.Context, memberID string, msg *model.ChatMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bkt, err := tx.Bucket(bucketChat).CreateBucketIfNotExists(transcriptKey(memberID))
		if err != nil {
			return err
		}
		id, err := bkt.NextSequence()
		if err != nil {
			return err
		}
		msg.ID = id
		return putJSON(bkt, idKey(int64(id)), msg)
	})
}

// ListChatMessages returns memberID's transcript, oldest first.
func (s *ClientStore) ListChatMessages(ctx context.Context, memberID string) ([]*model.ChatMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var msgs []*model.ChatMessage
	err := s.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucketChat).Bucket(transcriptKey(memberID))
		if bkt == nil {
			return nil
		}
		return bkt.ForEach(func(_, v []byte) error {
			var msg model.ChatMessage
			if err := json.Unmarshal(v, &msg); err != nil {
				return err
			}
			copied := msg
			msgs = append(msgs, &copied)
			return nil
		})
	})
	return msgs, err
}

// ClearChat drops memberID's transcript.
func (s *ClientStore) ClearChat(ctx context.Context, memberID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		err := tx.Bucket(bucketChat).DeleteBucket(transcriptKey(memberID))
		if errors.Is(err, bolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
}

func transcriptKey(memberID string) []byte {
	if memberID == "" {
		return []byte(guestTranscript)
	}
	return []byte(memberID)
}

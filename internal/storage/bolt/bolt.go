package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/helper-labs/helper-portal/internal/model"
	"github.com/helper-labs/helper-portal/internal/storage"
	bolt "go.etcd.io/bbolt"
)

var _ storage.Store = (*Store)(nil)

var (
	bucketNotices       = []byte("notices")
	bucketQuestions     = []byte("questions")
	bucketAnswers       = []byte("answers")
	bucketPolicies      = []byte("policies")
	bucketMembers       = []byte("members")
	bucketRefreshTokens = []byte("refresh_tokens")
)

// Store is a BoltDB-backed Store implementation.
type Store struct {
	db *bolt.DB
}

// New initialises the Bolt store.
func New(path string) (*Store, error) {
	db, err := open(path, bucketNotices, bucketQuestions, bucketAnswers, bucketPolicies, bucketMembers, bucketRefreshTokens)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func open(path string, buckets ...[]byte) (*bolt.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Close closes underlying Bolt DB.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateNotice stores a new notice and assigns its number.
func (s *Store) CreateNotice(ctx context.Context, notice *model.Notice) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if notice.CreatedAt.IsZero() {
		notice.CreatedAt = model.Now()
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucketNotices)
		id, err := bkt.NextSequence()
		if err != nil {
			return err
		}
		notice.NoticeNo = int64(id)
		return putJSON(bkt, idKey(notice.NoticeNo), notice)
	})
}

// UpdateNotice replaces title and content of an existing notice.
func (s *Store) UpdateNotice(ctx context.Context, notice *model.Notice) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucketNotices)
		current, err := getJSON[model.Notice](bkt, idKey(notice.NoticeNo))
		if err != nil {
			return err
		}
		current.Title = notice.Title
		current.Content = notice.Content
		*notice = *current
		return putJSON(bkt, idKey(current.NoticeNo), current)
	})
}

// DeleteNotice removes a notice.
func (s *Store) DeleteNotice(ctx context.Context, noticeNo int64) error {
	return s.deleteKey(ctx, bucketNotices, idKey(noticeNo))
}

// GetNotice fetches a notice by number.
func (s *Store) GetNotice(ctx context.Context, noticeNo int64) (*model.Notice, error) {
	return get[model.Notice](ctx, s.db, bucketNotices, idKey(noticeNo))
}

// ListNotices returns a newest-first page of notices and the total match count.
func (s *Store) ListNotices(ctx context.Context, page storage.Page) ([]*model.Notice, int, error) {
	return listNewest(ctx, s.db, bucketNotices, page, func(n *model.Notice) string { return n.Title })
}

// CreateQuestion stores a new question and assigns its number.
func (s *Store) CreateQuestion(ctx context.Context, question *model.Question) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if question.CreatedAt.IsZero() {
		question.CreatedAt = model.Now()
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucketQuestions)
		id, err := bkt.NextSequence()
		if err != nil {
			return err
		}
		question.QuestionNo = int64(id)
		return putJSON(bkt, idKey(question.QuestionNo), question)
	})
}

// UpdateQuestion replaces title and content of an existing question.
func (s *Store) UpdateQuestion(ctx context.Context, question *model.Question) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucketQuestions)
		current, err := getJSON[model.Question](bkt, idKey(question.QuestionNo))
		if err != nil {
			return err
		}
		current.Title = question.Title
		current.Content = question.Content
		*question = *current
		return putJSON(bkt, idKey(current.QuestionNo), current)
	})
}

// DeleteQuestion removes a question together with its answer.
func (s *Store) DeleteQuestion(ctx context.Context, questionNo int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := idKey(questionNo)
	return s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucketQuestions)
		if bkt.Get(key) == nil {
			return storage.ErrNotFound
		}
		if err := tx.Bucket(bucketAnswers).Delete(key); err != nil {
			return err
		}
		return bkt.Delete(key)
	})
}

// GetQuestion fetches a question by number.
func (s *Store) GetQuestion(ctx context.Context, questionNo int64) (*model.Question, error) {
	return get[model.Question](ctx, s.db, bucketQuestions, idKey(questionNo))
}

// ListQuestions returns a newest-first page of questions and the total match count.
func (s *Store) ListQuestions(ctx context.Context, page storage.Page) ([]*model.Question, int, error) {
	return listNewest(ctx, s.db, bucketQuestions, page, func(q *model.Question) string { return q.Title })
}

// PutAnswer stores or replaces the answer of an existing question.
func (s *Store) PutAnswer(ctx context.Context, answer *model.Answer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := idKey(answer.QuestionNo)
	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketQuestions).Get(key) == nil {
			return storage.ErrNotFound
		}
		bkt := tx.Bucket(bucketAnswers)
		if existing, err := getJSON[model.Answer](bkt, key); err == nil {
			answer.CreatedAt = existing.CreatedAt
		}
		if answer.CreatedAt.IsZero() {
			answer.CreatedAt = model.Now()
		}
		return putJSON(bkt, key, answer)
	})
}

// DeleteAnswer removes a question's answer.
func (s *Store) DeleteAnswer(ctx context.Context, questionNo int64) error {
	return s.deleteKey(ctx, bucketAnswers, idKey(questionNo))
}

// GetAnswer fetches the answer of a question.
func (s *Store) GetAnswer(ctx context.Context, questionNo int64) (*model.Answer, error) {
	return get[model.Answer](ctx, s.db, bucketAnswers, idKey(questionNo))
}

// CreatePolicy stores a policy and assigns its number.
func (s *Store) CreatePolicy(ctx context.Context, policy *model.Policy) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucketPolicies)
		id, err := bkt.NextSequence()
		if err != nil {
			return err
		}
		policy.PolicyNo = int64(id)
		return putJSON(bkt, idKey(policy.PolicyNo), policy)
	})
}

// ListPolicies returns a newest-first page of policies whose title contains page.Word.
func (s *Store) ListPolicies(ctx context.Context, page storage.Page) ([]*model.Policy, int, error) {
	return listNewest(ctx, s.db, bucketPolicies, page, func(p *model.Policy) string { return p.Title })
}

// PutMember stores a member. It fails with ErrConflict when the id is taken.
func (s *Store) PutMember(ctx context.Context, member *model.Member) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now().UTC()
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucketMembers)
		if bkt.Get([]byte(member.MemberID)) != nil {
			return storage.ErrConflict
		}
		return putJSON(bkt, []byte(member.MemberID), member)
	})
}

// GetMember fetches a member by id.
func (s *Store) GetMember(ctx context.Context, memberID string) (*model.Member, error) {
	return get[model.Member](ctx, s.db, bucketMembers, []byte(memberID))
}

// PutRefreshToken records an issued refresh token.
func (s *Store) PutRefreshToken(ctx context.Context, token *model.RefreshToken) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return putJSON(tx.Bucket(bucketRefreshTokens), []byte(token.Token), token)
	})
}

// GetRefreshToken fetches a recorded refresh token.
func (s *Store) GetRefreshToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	return get[model.RefreshToken](ctx, s.db, bucketRefreshTokens, []byte(token))
}

// DeleteRefreshTokens revokes every refresh token of a member.
func (s *Store) DeleteRefreshTokens(ctx context.Context, memberID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucketRefreshTokens)
		var stale [][]byte
		err := bkt.ForEach(func(k, v []byte) error {
			var token model.RefreshToken
			if err := json.Unmarshal(v, &token); err != nil {
				return err
			}
			if token.MemberID == memberID {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := bkt.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) deleteKey(ctx context.Context, bucket, key []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucket)
		if bkt.Get(key) == nil {
			return storage.ErrNotFound
		}
		return bkt.Delete(key)
	})
}

func idKey(id int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(id))
	return key
}

func putJSON(bkt *bolt.Bucket, key []byte, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return bkt.Put(key, payload)
}

func getJSON[T any](bkt *bolt.Bucket, key []byte) (*T, error) {
	raw := bkt.Get(key)
	if raw == nil {
		return nil, storage.ErrNotFound
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func get[T any](ctx context.Context, db *bolt.DB, bucket, key []byte) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var result *T
	err := db.View(func(tx *bolt.Tx) error {
		var err error
		result, err = getJSON[T](tx.Bucket(bucket), key)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// listNewest walks a sequence-keyed bucket from the highest key down.
func listNewest[T any](ctx context.Context, db *bolt.DB, bucket []byte, page storage.Page, title func(*T) string) ([]*T, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	word := strings.ToLower(strings.TrimSpace(page.Word))
	var (
		items []*T
		total int
	)
	err := db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucket).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var item T
			if err := json.Unmarshal(v, &item); err != nil {
				return err
			}
			if word != "" && !strings.Contains(strings.ToLower(title(&item)), word) {
				continue
			}
			if total >= page.Offset && (page.Limit <= 0 || len(items) < page.Limit) {
				copied := item
				items = append(items, &copied)
			}
			total++
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

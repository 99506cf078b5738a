package redisad

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"hotel_booking/internal/domain"
)

// Sessions keeps chat sessions as a metadata hash plus a message list per session. Every access
// pushes both keys' expiry out by ttl.
type Sessions struct {
	c   *redis.Client
	ttl time.Duration
	now func() time.Time

	beforeWrite func() // test hook, runs between the WATCHed read and EXEC
}

const touchAttempts = 3

var _ domain.ChatSessionStore = (*Sessions)(nil)

func NewSessions(c *redis.Client, ttl time.Duration) *Sessions {
	return &Sessions{c: c, ttl: ttl, now: func() time.Time { return time.Now().UTC() }}
}

func metaKey(id string) string { return "chat:" + id }
func msgsKey(id string) string { return "chat:" + id + ":messages" }

func (s *Sessions) Create(ctx context.Context) (domain.ChatSession, error) {
	now := s.now()
	sess := domain.ChatSession{ID: uuid.NewString(), CreatedAt: now, LastAccessedAt: now}
	_, err := s.c.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, metaKey(sess.ID),
			"created_at", now.Format(time.RFC3339Nano),
			"last_accessed_at", now.Format(time.RFC3339Nano))
		p.Expire(ctx, metaKey(sess.ID), s.ttl)
		return nil
	})
	if err != nil {
		return domain.ChatSession{}, fmt.Errorf("create chat session: %w", err)
	}
	return sess, nil
}

// Get returns the session metadata and refreshes its expiry.
func (s *Sessions) Get(ctx context.Context, id string) (domain.ChatSession, error) {
	return s.touch(ctx, id, nil)
}

func (s *Sessions) Append(ctx context.Context, id string, msgs ...domain.ChatMessage) (domain.ChatSession, error) {
	return s.touch(ctx, id, msgs)
}

func (s *Sessions) History(ctx context.Context, id string) ([]domain.ChatMessage, error) {
	if _, err := s.touch(ctx, id, nil); err != nil {
		return nil, err
	}
	raw, err := s.c.LRange(ctx, msgsKey(id), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("chat history %s: %w", id, err)
	}
	out := make([]domain.ChatMessage, 0, len(raw))
	for _, r := range raw {
		var m domain.ChatMessage
		if err := json.Unmarshal([]byte(r), &m); err != nil {
			return nil, fmt.Errorf("chat history %s: %w", id, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// touch refreshes the session and appends msgs. The metadata hash is WATCHed so a session that
// expires or is deleted between the read and the write is reported missing instead of being
// recreated without its created_at.
func (s *Sessions) touch(ctx context.Context, id string, msgs []domain.ChatMessage) (domain.ChatSession, error) {
	now := s.now()
	payload := make([]any, 0, len(msgs))
	for _, m := range msgs {
		if m.CreatedAt.IsZero() {
			m.CreatedAt = now
		}
		b, err := json.Marshal(m)
		if err != nil {
			return domain.ChatSession{}, err
		}
		payload = append(payload, b)
	}

	var sess domain.ChatSession
	txf := func(tx *redis.Tx) error {
		created, err := tx.HGet(ctx, metaKey(id), "created_at").Result()
		if errors.Is(err, redis.Nil) {
			return domain.ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		createdAt, err := time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return fmt.Errorf("corrupt created_at %q: %w", created, err)
		}
		if s.beforeWrite != nil {
			s.beforeWrite()
		}

		var count *redis.IntCmd
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			if len(payload) > 0 {
				p.RPush(ctx, msgsKey(id), payload...)
			}
			p.HSet(ctx, metaKey(id), "last_accessed_at", now.Format(time.RFC3339Nano))
			p.Expire(ctx, metaKey(id), s.ttl)
			p.Expire(ctx, msgsKey(id), s.ttl)
			count = p.LLen(ctx, msgsKey(id))
			return nil
		})
		if err != nil {
			return err
		}
		sess = domain.ChatSession{
			ID:             id,
			CreatedAt:      createdAt,
			LastAccessedAt: now,
			MessageCount:   int(count.Val()),
		}
		return nil
	}

	for i := 0; i < touchAttempts; i++ {
		err := s.c.Watch(ctx, txf, metaKey(id))
		switch {
		case err == nil:
			return sess, nil
		case errors.Is(err, redis.TxFailedErr):
			continue
		case errors.Is(err, domain.ErrSessionNotFound):
			return domain.ChatSession{}, err
		default:
			return domain.ChatSession{}, fmt.Errorf("chat session %s: %w", id, err)
		}
	}
	return domain.ChatSession{}, fmt.Errorf("chat session %s changed concurrently: %w", id, domain.ErrConflict)
}

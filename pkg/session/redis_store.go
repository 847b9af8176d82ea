package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions as JSON values whose Redis TTL tracks the
// session expiry, so expired sessions vanish without a cleanup loop.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix sets the key namespace. Defaults to "session:".
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// WithRedisClock overrides time.Now used for TTL computation.
func WithRedisClock(now func() time.Time) RedisStoreOption {
	return func(s *RedisStore) {
		if now != nil {
			s.now = now
		}
	}
}

func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: "session:",
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(token string) string {
	return s.prefix + token
}

func (s *RedisStore) ttl(expiresAt time.Time) (time.Duration, error) {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return 0, ErrSessionExpired
	}
	return ttl, nil
}

func (s *RedisStore) Create(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}

	ttl, err := s.ttl(session.ExpiresAt)
	if err != nil {
		return err
	}

	data, err := json.Marshal(session)
	if err != nil {
		return errors.Join(ErrInvalidSession, err)
	}

	return s.client.Set(ctx, s.key(session.Token), string(data), ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := s.client.Get(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, errors.Join(ErrInvalidSession, err)
	}

	if session.IsExpired(s.now()) {
		return nil, ErrSessionExpired
	}

	return &session, nil
}

func (s *RedisStore) Touch(ctx context.Context, token string, lastActivity, expiresAt time.Time) error {
	session, err := s.Get(ctx, token)
	if err != nil {
		return err
	}

	session.LastActivityAt = lastActivity
	session.ExpiresAt = expiresAt

	ttl, err := s.ttl(expiresAt)
	if err != nil {
		return err
	}

	data, err := json.Marshal(session)
	if err != nil {
		return errors.Join(ErrInvalidSession, err)
	}

	// XX keeps a concurrent logout from being undone.
	ok, err := s.client.SetXX(ctx, s.key(token), string(data), ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}

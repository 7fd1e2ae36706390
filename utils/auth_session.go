package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionStore tracks issued session tokens by hash. A token whose hash is
// no longer stored is revoked.
type SessionStore interface {
	Save(ctx context.Context, tokenHash, userID string, ttl time.Duration) error
	Active(ctx context.Context, tokenHash string) (string, bool, error)
	Revoke(ctx context.Context, tokenHash string) error
}

// RedisSessionStore keeps token hashes in the auth Redis DB.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Save(ctx context.Context, tokenHash, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, SessionCachePrefix+tokenHash, userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Active returns the user id the token was issued to.
func (s *RedisSessionStore) Active(ctx context.Context, tokenHash string) (string, bool, error) {
	uid, err := s.client.Get(ctx, SessionCachePrefix+tokenHash).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read session: %w", err)
	}
	return uid, true, nil
}

func (s *RedisSessionStore) Revoke(ctx context.Context, tokenHash string) error {
	return s.client.Del(ctx, SessionCachePrefix+tokenHash).Err()
}

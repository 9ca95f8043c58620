package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pulse-core-targeting-api/internal/ports"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore resolves widget session cookies to company ids out of Redis.
// Expiry is delegated to Redis TTLs.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis-backed session store
func NewRedisStore(client *redis.Client) ports.SessionStore {
	return &RedisStore{client: client}
}

// Get returns the company id bound to the session; ("", nil) when the session
// is unknown or has expired.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (string, error) {
	companyID, err := s.client.Get(ctx, keyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	return companyID, nil
}

// Set binds a session id to a company id for the given lifetime.
func (s *RedisStore) Set(ctx context.Context, sessionID, companyID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, keyPrefix+sessionID, companyID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Delete drops a session.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "admin_session:"

// SessionRepository implements repository.SessionRepository using Redis.
// Tokens expire via Redis TTL, so there is nothing to prune.
type SessionRepository struct {
	client *goredis.Client
}

// NewSessionRepository creates a new Redis-backed session repository.
func NewSessionRepository(client *goredis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

// Save stores a session token for the given duration.
func (r *SessionRepository) Save(ctx context.Context, token string, ttl time.Duration) error {
	if err := r.client.Set(ctx, sessionKeyPrefix+token, "1", ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

// Exists reports whether the token is present and unexpired.
func (r *SessionRepository) Exists(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("check session: %w", err)
	}

	return n > 0, nil
}

// Delete removes a session token.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Suppressor holds a do-not-disturb flag per user. While the flag is set,
// fire events are swallowed instead of surfaced.
type Suppressor interface {
	// Suppress sets the flag. A zero ttl keeps it until Resume.
	Suppress(ctx context.Context, userID uuid.UUID, ttl time.Duration) error
	// Resume clears the flag.
	Resume(ctx context.Context, userID uuid.UUID) error
	// IsSuppressed reports whether the flag is currently set.
	IsSuppressed(ctx context.Context, userID uuid.UUID) (bool, error)
}

// RedisSuppressor stores the flag in Redis with a TTL, so a forgotten pause
// expires on its own.
type RedisSuppressor struct {
	client *redis.Client
}

// NewRedisSuppressor creates a Redis-backed suppressor.
func NewRedisSuppressor(client *redis.Client) *RedisSuppressor {
	return &RedisSuppressor{client: client}
}

func suppressKey(userID uuid.UUID) string {
	return fmt.Sprintf("activepause:suppress:%s", userID)
}

func (s *RedisSuppressor) Suppress(ctx context.Context, userID uuid.UUID, ttl time.Duration) error {
	return s.client.Set(ctx, suppressKey(userID), 1, ttl).Err()
}

func (s *RedisSuppressor) Resume(ctx context.Context, userID uuid.UUID) error {
	return s.client.Del(ctx, suppressKey(userID)).Err()
}

func (s *RedisSuppressor) IsSuppressed(ctx context.Context, userID uuid.UUID) (bool, error) {
	n, err := s.client.Exists(ctx, suppressKey(userID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// NoopSuppressor never suppresses. Used when Redis is not configured.
type NoopSuppressor struct{}

func (NoopSuppressor) Suppress(ctx context.Context, userID uuid.UUID, ttl time.Duration) error {
	return nil
}

func (NoopSuppressor) Resume(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func (NoopSuppressor) IsSuppressed(ctx context.Context, userID uuid.UUID) (bool, error) {
	return false, nil
}

var (
	_ Suppressor = (*RedisSuppressor)(nil)
	_ Suppressor = NoopSuppressor{}
)

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"intake-gateway/pkg/platform/sentinel"
)

// Redis is the production cache; expiry is enforced server-side so state is
// shared across replicas.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps an existing client whose lifecycle is managed externally.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// SetWithTTL writes key unconditionally, superseding any existing value.
func (r *Redis) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

// Get reads key, mapping redis.Nil onto sentinel.ErrNotFound.
func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get: %w: %w", sentinel.ErrUnavailable, err)
	}
	return value, nil
}

// Delete removes key; deleting a missing key is not an error.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

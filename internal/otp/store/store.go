// Package store provides the keyed TTL cache backing OTP state. The contract
// (set-with-expiry, get, delete) is what matters, not the backing technology:
// Redis for multi-instance deployments, in-memory for a single instance and
// for tests.
package store

import (
	"context"
	"time"
)

// Cache is an ephemeral key-value store with per-key expiry. Get returns
// sentinel.ErrNotFound for missing and expired keys alike.
type Cache interface {
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

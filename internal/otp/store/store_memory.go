package store

import (
	"context"
	"sync"
	"time"

	"intake-gateway/pkg/platform/sentinel"
)

// InMemory implements Cache with per-key deadlines. State is invisible to
// other replicas; only suitable for a single instance and for tests.
type InMemory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// NewInMemory creates an empty in-memory cache.
func NewInMemory() *InMemory {
	return &InMemory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// SetClock overrides the time source for expiry tests.
func (m *InMemory) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *InMemory) SetWithTTL(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{value: value, expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *InMemory) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	if !m.now().Before(entry.expiresAt) {
		delete(m.entries, key)
		return "", sentinel.ErrNotFound
	}
	return entry.value, nil
}

func (m *InMemory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

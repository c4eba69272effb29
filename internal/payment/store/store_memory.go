package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"intake-gateway/pkg/platform/sentinel"
)

// InMemory keeps payment records in process memory. Only suitable for a
// single instance and for tests.
type InMemory struct {
	mu      sync.RWMutex
	byEmail map[string]*Record
}

// NewInMemory creates an empty in-memory payment store.
func NewInMemory() *InMemory {
	return &InMemory{byEmail: make(map[string]*Record)}
}

// ExistsByEmail matches the stored key verbatim.
func (m *InMemory) ExistsByEmail(_ context.Context, email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.byEmail[email]
	return ok, nil
}

// Create inserts at most one record per email.
func (m *InMemory) Create(_ context.Context, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byEmail[rec.Email]; ok {
		return fmt.Errorf("payment record exists: %w", sentinel.ErrConflict)
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	stored := *rec
	m.byEmail[rec.Email] = &stored
	return nil
}

package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"intake-gateway/internal/applicant/models"
	"intake-gateway/pkg/platform/sentinel"
)

// InMemory keeps applicants in process memory with one index per unique
// field. Only suitable for a single instance and for tests.
type InMemory struct {
	mu      sync.RWMutex
	byEmail map[string]*models.Applicant
	byPhone map[string]*models.Applicant
	byAadhr map[string]*models.Applicant
}

// NewInMemory creates an empty in-memory applicant store.
func NewInMemory() *InMemory {
	return &InMemory{
		byEmail: make(map[string]*models.Applicant),
		byPhone: make(map[string]*models.Applicant),
		byAadhr: make(map[string]*models.Applicant),
	}
}

func (m *InMemory) index(field string) (map[string]*models.Applicant, error) {
	switch field {
	case FieldEmail:
		return m.byEmail, nil
	case FieldPhone:
		return m.byPhone, nil
	case FieldAadhar:
		return m.byAadhr, nil
	default:
		return nil, fmt.Errorf("unknown field %q", field)
	}
}

// ExistsByField reports whether any record has field == value, matching the
// stored value verbatim.
func (m *InMemory) ExistsByField(_ context.Context, field, value string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx, err := m.index(field)
	if err != nil {
		return false, err
	}
	_, ok := idx[value]
	return ok, nil
}

// Create inserts a new applicant, enforcing uniqueness on email, phone and
// aadhar under one lock so concurrent duplicates cannot both land.
func (m *InMemory) Create(_ context.Context, a *models.Applicant) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byEmail[a.Email]; ok {
		return fmt.Errorf("email taken: %w", sentinel.ErrConflict)
	}
	if _, ok := m.byPhone[a.Phone]; ok {
		return fmt.Errorf("phone taken: %w", sentinel.ErrConflict)
	}
	if _, ok := m.byAadhr[a.AadharNumber]; ok {
		return fmt.Errorf("aadhar taken: %w", sentinel.ErrConflict)
	}

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	stored := *a
	m.byEmail[a.Email] = &stored
	m.byPhone[a.Phone] = &stored
	m.byAadhr[a.AadharNumber] = &stored
	return nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"intake-gateway/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// Postgres persists payment records in the payments table with a unique
// index on email.
type Postgres struct {
	db *sql.DB
}

// NewPostgres wraps an existing pool whose lifecycle is managed externally.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// ExistsByEmail reports whether a record exists for the exact email key.
func (p *Postgres) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM payments WHERE email = $1)`
	if err := p.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("payment exists check: %w: %w", sentinel.ErrUnavailable, err)
	}
	return exists, nil
}

// Create inserts a payment record, translating unique violations into
// sentinel.ErrConflict so re-deliveries read as already handled.
func (p *Postgres) Create(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO payments (id, email, paid, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := p.db.ExecContext(ctx, query, rec.ID, rec.Email, rec.Paid, rec.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return fmt.Errorf("payment insert: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("payment insert: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"intake-gateway/internal/applicant/models"
	"intake-gateway/pkg/platform/sentinel"
)

// uniqueViolation is the Postgres class 23 code raised when a unique
// constraint rejects an insert.
const uniqueViolation = "23505"

// Postgres persists applicants in the applicants table. Unique indexes on
// email, phone and aadhar_number are the authoritative duplicate check.
type Postgres struct {
	db *sql.DB
}

// NewPostgres wraps an existing pool whose lifecycle is managed externally.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// columns maps queryable field names onto real column names so caller input
// never reaches the SQL text.
var columns = map[string]string{
	FieldEmail:  "email",
	FieldPhone:  "phone",
	FieldAadhar: "aadhar_number",
}

// ExistsByField reports whether any row has field == value.
func (p *Postgres) ExistsByField(ctx context.Context, field, value string) (bool, error) {
	column, ok := columns[field]
	if !ok {
		return false, fmt.Errorf("unknown field %q", field)
	}

	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM applicants WHERE %s = $1)`, column)
	if err := p.db.QueryRowContext(ctx, query, value).Scan(&exists); err != nil {
		return false, fmt.Errorf("applicant exists check: %w: %w", sentinel.ErrUnavailable, err)
	}
	return exists, nil
}

// Create inserts a new applicant, translating unique violations into
// sentinel.ErrConflict.
func (p *Postgres) Create(ctx context.Context, a *models.Applicant) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO applicants (id, email, phone, aadhar_number, application_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := p.db.ExecContext(ctx, query, a.ID, a.Email, a.Phone, a.AadharNumber, a.ApplicationNumber, a.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return fmt.Errorf("applicant insert: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("applicant insert: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

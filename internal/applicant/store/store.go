// Package store persists applicant identity records. The store's uniqueness
// constraints are the single source of truth for duplicate detection; the
// ExistsByField pre-checks services run are advisory only.
package store

import (
	"context"

	"intake-gateway/internal/applicant/models"
)

// Queryable field names accepted by ExistsByField.
const (
	FieldEmail  = "email"
	FieldPhone  = "phone"
	FieldAadhar = "aadhar_number"
)

// Store is the document-store contract the guard requires.
// Create returns sentinel.ErrConflict when any unique field is taken.
type Store interface {
	ExistsByField(ctx context.Context, field, value string) (bool, error)
	Create(ctx context.Context, a *models.Applicant) error
}

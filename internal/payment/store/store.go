// Package store persists payment records. A record is created at most once
// per email and never updated afterward; absence is a valid state meaning
// "not paid", not a failure.
package store

import (
	"context"
	"time"
)

// Record marks an applicant email as paid.
type Record struct {
	ID        string
	Email     string
	Paid      bool
	CreatedAt time.Time
}

// Store is the payment-record contract. Create returns sentinel.ErrConflict
// when a record for the email already exists.
type Store interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, rec *Record) error
}

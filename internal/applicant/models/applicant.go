package models

import "time"

// Applicant is the identity record created exactly once per applicant.
// Email, Phone and AadharNumber are each unique in the store;
// ApplicationNumber is an opaque string with no uniqueness enforced.
type Applicant struct {
	ID                string
	Email             string // normalized before write
	Phone             string
	AadharNumber      string
	ApplicationNumber string
	CreatedAt         time.Time
}

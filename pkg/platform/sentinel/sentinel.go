package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and cache adapters return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: record or cache key does not exist
// - ErrConflict: a uniqueness constraint rejected the write
// - ErrUnavailable: backing service unreachable or failing
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)

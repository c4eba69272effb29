// Package service implements the identity uniqueness guard. Existence checks
// are advisory UX signals only; the store's uniqueness constraint, exercised
// at Create time, is what actually prevents duplicates (two concurrent
// creates race and at most one wins).
package service

import (
	"context"
	"errors"
	"log/slog"

	"intake-gateway/internal/applicant/models"
	"intake-gateway/internal/applicant/store"
	"intake-gateway/internal/email"
	"intake-gateway/internal/platform/events"
	"intake-gateway/internal/platform/metrics"
	dErrors "intake-gateway/pkg/domain-errors"
	"intake-gateway/pkg/platform/sentinel"
)

// Service mediates applicant identity creation and existence checks.
type Service struct {
	store   store.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	events  events.Publisher
}

// New constructs the guard service.
func New(st store.Store, logger *slog.Logger, m *metrics.Metrics, pub events.Publisher) *Service {
	return &Service{store: st, logger: logger, metrics: m, events: pub}
}

// FieldExists runs the advisory existence check for a field, matching the
// given value verbatim. Used for phone and aadhar lookups.
func (s *Service) FieldExists(ctx context.Context, field, value string) (bool, error) {
	exists, err := s.store.ExistsByField(ctx, field, value)
	if err != nil {
		s.logger.ErrorContext(ctx, "existence check failed", "field", field, "error", err)
		return false, dErrors.Wrap(dErrors.CodeDependency, "existence check failed", err)
	}
	return exists, nil
}

// EmailExists checks for an applicant under the normalized address and, when
// the raw input differs, falls back to the raw form. Rows written before
// normalization was introduced may still be keyed by original casing.
func (s *Service) EmailExists(ctx context.Context, rawEmail string) (bool, error) {
	normalized, ok := email.Normalize(rawEmail)
	if !ok {
		return false, dErrors.New(dErrors.CodeBadRequest, "Invalid email format")
	}

	exists, err := s.store.ExistsByField(ctx, store.FieldEmail, normalized)
	if err != nil {
		s.logger.ErrorContext(ctx, "email existence check failed", "error", err)
		return false, dErrors.Wrap(dErrors.CodeDependency, "existence check failed", err)
	}
	if exists {
		return true, nil
	}

	if rawEmail != normalized {
		exists, err = s.store.ExistsByField(ctx, store.FieldEmail, rawEmail)
		if err != nil {
			s.logger.ErrorContext(ctx, "legacy email existence check failed", "error", err)
			return false, dErrors.Wrap(dErrors.CodeDependency, "existence check failed", err)
		}
	}
	return exists, nil
}

// CreateRequest carries the identity fields for a new applicant.
type CreateRequest struct {
	Email             string
	Phone             string
	AadharNumber      string
	ApplicationNumber string
}

// Create validates the identity fields and attempts creation. A conflict
// reported by the store means some unique field is already taken.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Applicant, error) {
	if req.Email == "" || req.Phone == "" || req.AadharNumber == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Email, Phone, and Aadhar are required")
	}
	normalized, ok := email.Normalize(req.Email)
	if !ok {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Invalid email format")
	}

	applicant := &models.Applicant{
		Email:             normalized,
		Phone:             req.Phone,
		AadharNumber:      req.AadharNumber,
		ApplicationNumber: req.ApplicationNumber,
	}
	if err := s.store.Create(ctx, applicant); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "Data already exists")
		}
		s.logger.ErrorContext(ctx, "applicant create failed", "error", err)
		return nil, dErrors.Wrap(dErrors.CodeDependency, "Error storing Data", err)
	}

	s.metrics.ApplicantsCreated.Inc()
	s.events.Publish(ctx, events.Event{Action: events.ActionApplicantCreated, Email: normalized})
	return applicant, nil
}

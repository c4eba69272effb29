// Package service reconciles asynchronous payment-gateway webhooks against
// applicant records. Ingestion is idempotent per email and never propagates
// failure to the delivering party, which retries indefinitely on anything
// but a success acknowledgment.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"intake-gateway/internal/email"
	"intake-gateway/internal/payment/store"
	"intake-gateway/internal/platform/events"
	"intake-gateway/internal/platform/metrics"
	dErrors "intake-gateway/pkg/domain-errors"
	"intake-gateway/pkg/platform/sentinel"
)

const statusSuccess = "success"

// Service ingests webhooks and answers paid-status queries.
type Service struct {
	store   store.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	events  events.Publisher
}

// New constructs the reconciliation service.
func New(st store.Store, logger *slog.Logger, m *metrics.Metrics, pub events.Publisher) *Service {
	return &Service{store: st, logger: logger, metrics: m, events: pub}
}

// Ingest processes one webhook delivery. All internal failures are logged
// and swallowed; the returned error is nil in every case so the transport
// layer can acknowledge unconditionally.
func (s *Service) Ingest(ctx context.Context, rawBody []byte) error {
	s.metrics.WebhooksReceived.Inc()

	fields := decodePayload(rawBody)
	rawEmail := pick(fields, emailKeys)
	status := pick(fields, statusKeys)

	normalized, ok := email.Normalize(rawEmail)
	if !ok || status == "" {
		s.metrics.WebhookAnomalies.Inc()
		s.logger.WarnContext(ctx, "webhook missing usable email or status",
			"raw_email", rawEmail,
			"status", status,
		)
		return nil
	}

	if !strings.EqualFold(status, statusSuccess) {
		// Failed or pending transactions change no state.
		return nil
	}

	exists, err := s.store.ExistsByEmail(ctx, normalized)
	if err != nil {
		s.logger.ErrorContext(ctx, "payment existence check failed", "email", normalized, "error", err)
		return nil
	}
	if exists {
		s.logger.InfoContext(ctx, "payment already recorded, treating re-delivery as handled", "email", normalized)
		return nil
	}

	rec := &store.Record{Email: normalized, Paid: true}
	if err := s.store.Create(ctx, rec); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			// A concurrent delivery won the race; already handled.
			return nil
		}
		s.logger.ErrorContext(ctx, "payment record create failed", "email", normalized, "error", err)
		return nil
	}

	s.metrics.PaymentsRecorded.Inc()
	s.events.Publish(ctx, events.Event{Action: events.ActionPaymentRecorded, Email: normalized})
	s.logger.InfoContext(ctx, "payment recorded", "email", normalized)
	return nil
}

// Paid reports whether a payment record exists for the address, checking the
// normalized key first and falling back to the raw input for rows written
// before normalization was introduced.
func (s *Service) Paid(ctx context.Context, rawEmail string) (bool, error) {
	normalized, ok := email.Normalize(rawEmail)
	if !ok {
		return false, dErrors.New(dErrors.CodeBadRequest, "Invalid email format")
	}

	paid, err := s.store.ExistsByEmail(ctx, normalized)
	if err != nil {
		s.logger.ErrorContext(ctx, "paid status check failed", "error", err)
		return false, dErrors.Wrap(dErrors.CodeDependency, "Failed to check payment status", err)
	}
	if paid {
		return true, nil
	}

	if rawEmail != normalized {
		paid, err = s.store.ExistsByEmail(ctx, rawEmail)
		if err != nil {
			s.logger.ErrorContext(ctx, "legacy paid status check failed", "error", err)
			return false, dErrors.Wrap(dErrors.CodeDependency, "Failed to check payment status", err)
		}
	}
	return paid, nil
}

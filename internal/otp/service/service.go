// Package service implements OTP issuance and verification. Per email key the
// state machine is ABSENT -> PENDING (issue) -> ABSENT (verify or expiry);
// re-issuing silently supersedes any pending code.
package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"intake-gateway/internal/email"
	"intake-gateway/internal/otp/store"
	"intake-gateway/internal/platform/events"
	"intake-gateway/internal/platform/metrics"
	dErrors "intake-gateway/pkg/domain-errors"
	"intake-gateway/pkg/platform/sentinel"
)

const keyPrefix = "otp:"

// DefaultTTL is the validity window after which a code is treated as absent.
const DefaultTTL = 300 * time.Second

// Service issues and verifies one-time codes.
type Service struct {
	cache   store.Cache
	sender  email.Sender
	logger  *slog.Logger
	metrics *metrics.Metrics
	events  events.Publisher
	ttl     time.Duration

	// generate is swappable in tests for deterministic codes.
	generate func() (string, error)
}

// New constructs the OTP service. A zero ttl falls back to DefaultTTL.
func New(cache store.Cache, sender email.Sender, logger *slog.Logger, m *metrics.Metrics, pub events.Publisher, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		cache:    cache,
		sender:   sender,
		logger:   logger,
		metrics:  m,
		events:   pub,
		ttl:      ttl,
		generate: generateCode,
	}
}

// generateCode draws a uniform 6-digit code in [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Issue stores a fresh code for the address and dispatches it by email,
// unconditionally overwriting any pending code. The cache write and the
// dispatch are not retried; either failure means the code was not issued.
func (s *Service) Issue(ctx context.Context, rawEmail string) error {
	normalized, ok := email.Normalize(rawEmail)
	if !ok {
		return dErrors.New(dErrors.CodeBadRequest, "Invalid email format")
	}

	code, err := s.generate()
	if err != nil {
		return dErrors.Wrap(dErrors.CodeDependency, "Failed to send OTP", err)
	}

	if err := s.cache.SetWithTTL(ctx, keyPrefix+normalized, code, s.ttl); err != nil {
		s.logger.ErrorContext(ctx, "otp cache write failed", "error", err)
		return dErrors.Wrap(dErrors.CodeDependency, "Failed to send OTP", err)
	}

	msg := email.Message{
		To:      []string{normalized},
		Subject: "Your OTP Code",
		HTML:    fmt.Sprintf("<p>Your OTP code is <b>%s</b>. It is valid for 5 minutes.</p>", code),
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		s.logger.ErrorContext(ctx, "otp dispatch failed", "error", err)
		return dErrors.Wrap(dErrors.CodeDependency, "Failed to send OTP", err)
	}

	s.metrics.OTPIssued.Inc()
	s.events.Publish(ctx, events.Event{Action: events.ActionOTPIssued, Email: normalized})
	return nil
}

// Verify consumes the pending code on an exact string match. Wrong, expired
// and never-issued codes return the same error so callers cannot tell which
// case occurred.
func (s *Service) Verify(ctx context.Context, rawEmail, submitted string) error {
	normalized, ok := email.Normalize(rawEmail)
	if !ok {
		return dErrors.New(dErrors.CodeBadRequest, "Invalid email format")
	}

	key := keyPrefix + normalized
	stored, err := s.cache.Get(ctx, key)
	if errors.Is(err, sentinel.ErrNotFound) {
		s.metrics.OTPRejected.Inc()
		return dErrors.New(dErrors.CodeInvalidOTP, "Invalid or expired OTP")
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "otp cache read failed", "error", err)
		return dErrors.Wrap(dErrors.CodeDependency, "Failed to verify OTP", err)
	}

	if stored != submitted {
		s.metrics.OTPRejected.Inc()
		return dErrors.New(dErrors.CodeInvalidOTP, "Invalid or expired OTP")
	}

	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.ErrorContext(ctx, "otp cache delete failed", "error", err)
		return dErrors.Wrap(dErrors.CodeDependency, "Failed to verify OTP", err)
	}

	s.metrics.OTPVerified.Inc()
	s.events.Publish(ctx, events.Event{Action: events.ActionOTPVerified, Email: normalized})
	return nil
}

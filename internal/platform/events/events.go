// Package events publishes application lifecycle events to Kafka so
// downstream consumers (fraud review, analytics) see OTP, identity and
// payment activity without coupling to this service's stores.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Event is the wire format published to the events topic.
type Event struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Email     string    `json:"email,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	At        time.Time `json:"at"`
}

// Actions emitted by the intake services.
const (
	ActionOTPIssued        = "otp.issued"
	ActionOTPVerified      = "otp.verified"
	ActionApplicantCreated = "applicant.created"
	ActionPaymentRecorded  = "payment.recorded"
)

// Publisher delivers events best-effort; a failed publish must never fail the
// request that produced it.
type Publisher interface {
	Publish(ctx context.Context, e Event)
	Close()
}

func (e Event) marshal() ([]byte, error) {
	return json.Marshal(e)
}

// Noop drops all events; used when Kafka is not configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) {}
func (Noop) Close()                         {}

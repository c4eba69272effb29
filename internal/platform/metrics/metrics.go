package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	OTPIssued         prometheus.Counter
	OTPVerified       prometheus.Counter
	OTPRejected       prometheus.Counter
	ApplicantsCreated prometheus.Counter
	WebhooksReceived  prometheus.Counter
	PaymentsRecorded  prometheus.Counter
	WebhookAnomalies  prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		OTPIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "intake_otp_issued_total",
			Help: "Total number of OTP codes issued",
		}),
		OTPVerified: promauto.NewCounter(prometheus.CounterOpts{
			Name: "intake_otp_verified_total",
			Help: "Total number of successful OTP verifications",
		}),
		OTPRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "intake_otp_rejected_total",
			Help: "Total number of rejected OTP verification attempts",
		}),
		ApplicantsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "intake_applicants_created_total",
			Help: "Total number of applicant identity records created",
		}),
		WebhooksReceived: promauto.NewCounter(prometheus.CounterOpts{
			Name: "intake_payment_webhooks_received_total",
			Help: "Total number of payment webhook deliveries received",
		}),
		PaymentsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "intake_payments_recorded_total",
			Help: "Total number of payment records created",
		}),
		WebhookAnomalies: promauto.NewCounter(prometheus.CounterOpts{
			Name: "intake_payment_webhook_anomalies_total",
			Help: "Total number of webhook deliveries missing a usable email or status",
		}),
	}
}

package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"intake-gateway/internal/platform/middleware"
	dErrors "intake-gateway/pkg/domain-errors"
	"intake-gateway/pkg/platform/httputil"
)

// maxWebhookBody bounds how much of a webhook delivery is read.
const maxWebhookBody = 1 << 20

// Service defines the reconciliation operations the handler needs.
type Service interface {
	Ingest(ctx context.Context, rawBody []byte) error
	Paid(ctx context.Context, email string) (bool, error)
}

// Handler wires the payment endpoints to the reconciliation service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a payment handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the payment endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/payu-webhook", h.handleWebhook)
	r.Post("/check-payment", h.handleCheckPayment)
}

// handleWebhook acknowledges every delivery with 200 "OK" regardless of
// payload shape or internal outcome; the gateway retries indefinitely on
// anything else.
func (h *Handler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		h.logger.WarnContext(ctx, "webhook body read failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		body = nil
	}

	_ = h.service.Ingest(ctx, body)

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

type checkPaymentRequest struct {
	Email string `json:"email"`
}

func (h *Handler) handleCheckPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req checkPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Email is required"))
		return
	}

	paid, err := h.service.Paid(ctx, req.Email)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeDependency) {
			h.logger.ErrorContext(ctx, "check payment failed",
				"request_id", middleware.GetRequestID(ctx),
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"paid": paid})
}

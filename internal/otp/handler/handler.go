package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"intake-gateway/internal/platform/middleware"
	dErrors "intake-gateway/pkg/domain-errors"
	"intake-gateway/pkg/platform/httputil"
)

// Service defines the OTP operations the handler needs.
type Service interface {
	Issue(ctx context.Context, email string) error
	Verify(ctx context.Context, email, code string) error
}

// Handler wires the OTP endpoints to the OTP service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an OTP handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the OTP endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/send-otp", h.handleSendOTP)
	r.Post("/verify-otp", h.handleVerifyOTP)
}

type sendOTPRequest struct {
	Email string `json:"email"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (h *Handler) handleSendOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Email is required"))
		return
	}

	if err := h.service.Issue(ctx, req.Email); err != nil {
		if dErrors.Is(err, dErrors.CodeDependency) {
			h.logger.ErrorContext(ctx, "send otp failed",
				"request_id", middleware.GetRequestID(ctx),
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "OTP sent to email",
	})
}

func (h *Handler) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.OTP == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Email and OTP are required"))
		return
	}

	if err := h.service.Verify(ctx, req.Email, req.OTP); err != nil {
		if dErrors.Is(err, dErrors.CodeDependency) {
			h.logger.ErrorContext(ctx, "verify otp failed",
				"request_id", middleware.GetRequestID(ctx),
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "OTP verified",
	})
}

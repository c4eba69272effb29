package notify

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"intake-gateway/internal/platform/middleware"
	dErrors "intake-gateway/pkg/domain-errors"
	"intake-gateway/pkg/platform/httputil"
)

// Handler exposes the application-forwarding endpoint.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs the notify handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the notify endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/send-email", h.handleSendEmail)
}

func (h *Handler) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.service.Send(ctx, req); err != nil {
		h.logger.ErrorContext(ctx, "send email failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Email sent successfully!"})
}

package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"intake-gateway/internal/applicant/models"
	"intake-gateway/internal/applicant/service"
	"intake-gateway/internal/applicant/store"
	"intake-gateway/internal/platform/middleware"
	dErrors "intake-gateway/pkg/domain-errors"
	"intake-gateway/pkg/platform/httputil"
)

// Service defines the guard operations the handler needs.
type Service interface {
	FieldExists(ctx context.Context, field, value string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, req service.CreateRequest) (*models.Applicant, error)
}

// Handler wires the identity endpoints to the guard service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an applicant handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the identity endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/check-aadhar", h.handleCheckAadhar)
	r.Post("/check-email", h.handleCheckEmail)
	r.Post("/check-phone", h.handleCheckPhone)
	r.Post("/store-data", h.handleStoreData)
}

type checkAadharRequest struct {
	Aadhar string `json:"aadhar"`
}

type checkEmailRequest struct {
	Email string `json:"email"`
}

type checkPhoneRequest struct {
	Phone string `json:"phone"`
}

type storeDataRequest struct {
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	AadharNumber      string `json:"aadharNumber"`
	ApplicationNumber string `json:"applicationNumber"`
}

func (h *Handler) handleCheckAadhar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req checkAadharRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Aadhar == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Aadhar is required"))
		return
	}

	exists, err := h.service.FieldExists(ctx, store.FieldAadhar, req.Aadhar)
	if err != nil {
		h.logError(ctx, "check aadhar failed", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeDependency, "Error checking Aadhar"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (h *Handler) handleCheckEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req checkEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Email is required"))
		return
	}

	exists, err := h.service.EmailExists(ctx, req.Email)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeBadRequest) {
			httputil.WriteError(w, err)
			return
		}
		h.logError(ctx, "check email failed", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeDependency, "Error checking Email"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (h *Handler) handleCheckPhone(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req checkPhoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Phone == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Phone is required"))
		return
	}

	exists, err := h.service.FieldExists(ctx, store.FieldPhone, req.Phone)
	if err != nil {
		h.logError(ctx, "check phone failed", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeDependency, "Error checking Phone"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (h *Handler) handleStoreData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req storeDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Email, Phone, and Aadhar are required"))
		return
	}

	_, err := h.service.Create(ctx, service.CreateRequest{
		Email:             req.Email,
		Phone:             req.Phone,
		AadharNumber:      req.AadharNumber,
		ApplicationNumber: req.ApplicationNumber,
	})
	if err != nil {
		if dErrors.Is(err, dErrors.CodeDependency) {
			h.logError(ctx, "store data failed", err)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	h.logger.ErrorContext(ctx, msg,
		"request_id", middleware.GetRequestID(ctx),
		"error", err,
	)
}

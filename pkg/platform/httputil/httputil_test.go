package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	dErrors "intake-gateway/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"bad request", dErrors.New(dErrors.CodeBadRequest, "Email is required"), http.StatusBadRequest, "Email is required"},
		{"invalid otp", dErrors.New(dErrors.CodeInvalidOTP, "Invalid or expired OTP"), http.StatusBadRequest, "Invalid or expired OTP"},
		{"conflict", dErrors.New(dErrors.CodeConflict, "Data already exists"), http.StatusConflict, "Data already exists"},
		{"dependency", dErrors.New(dErrors.CodeDependency, "Error storing Data"), http.StatusInternalServerError, "Error storing Data"},
		{"non-domain error hides detail", rawErr{}, http.StatusInternalServerError, "internal error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tc.err)

			if w.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, w.Code)
			}
			var body map[string]string
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if body["error"] != tc.wantError {
				t.Fatalf("expected error %q, got %q", tc.wantError, body["error"])
			}
			if len(body) != 1 {
				t.Fatalf("expected a single error field, got %v", body)
			}
		})
	}
}

type rawErr struct{}

func (rawErr) Error() string { return "pq: connection refused" }

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusCreated, map[string]bool{"success": true})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %q", ct)
	}
}

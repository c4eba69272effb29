package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intake-gateway/internal/applicant/service"
	"intake-gateway/internal/applicant/store"
	"intake-gateway/internal/platform/events"
	"intake-gateway/internal/platform/metrics"
)

var testMetrics = metrics.New()

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newApplicantRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := service.New(store.NewInMemory(), testLogger(), testMetrics, events.Noop{})
	r := chi.NewRouter()
	New(svc, testLogger()).Register(r)
	return r
}

func postJSON(router http.Handler, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp["error"]
}

func TestCheckAadhar(t *testing.T) {
	router := newApplicantRouter(t)

	rec := postJSON(router, "/check-aadhar", map[string]string{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Aadhar is required", decodeError(t, rec))

	rec = postJSON(router, "/check-aadhar", map[string]string{"aadhar": "111122223333"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Exists bool `json:"exists"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Exists)
}

func TestStoreDataLifecycle(t *testing.T) {
	router := newApplicantRouter(t)

	payload := map[string]string{
		"email":             "User@Example.com",
		"phone":             "9999999999",
		"aadharNumber":      "111122223333",
		"applicationNumber": "APP-42",
	}

	rec := postJSON(router, "/store-data", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.True(t, created.Success)

	// Same normalized email with different phone and aadhar conflicts.
	dup := map[string]string{
		"email":        "user@EXAMPLE.com",
		"phone":        "1234567890",
		"aadharNumber": "444455556666",
	}
	rec = postJSON(router, "/store-data", dup)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Data already exists", decodeError(t, rec))

	// Checks now see the stored identity.
	rec = postJSON(router, "/check-email", map[string]string{"email": "USER@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	var exists struct {
		Exists bool `json:"exists"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&exists))
	assert.True(t, exists.Exists)

	rec = postJSON(router, "/check-phone", map[string]string{"phone": "9999999999"})
	require.Equal(t, http.StatusOK, rec.Code)
	exists.Exists = false
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&exists))
	assert.True(t, exists.Exists)

	rec = postJSON(router, "/check-aadhar", map[string]string{"aadhar": "111122223333"})
	require.Equal(t, http.StatusOK, rec.Code)
	exists.Exists = false
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&exists))
	assert.True(t, exists.Exists)
}

func TestStoreDataValidation(t *testing.T) {
	router := newApplicantRouter(t)

	rec := postJSON(router, "/store-data", map[string]string{"email": "a@b.com"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email, Phone, and Aadhar are required", decodeError(t, rec))

	rec = postJSON(router, "/store-data", map[string]string{
		"email":        "broken",
		"phone":        "1",
		"aadharNumber": "2",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email format", decodeError(t, rec))
}

func TestCheckEmailValidation(t *testing.T) {
	router := newApplicantRouter(t)

	rec := postJSON(router, "/check-email", map[string]string{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email is required", decodeError(t, rec))

	rec = postJSON(router, "/check-email", map[string]string{"email": "broken"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email format", decodeError(t, rec))
}

func TestCheckPhoneValidation(t *testing.T) {
	router := newApplicantRouter(t)

	rec := postJSON(router, "/check-phone", map[string]string{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Phone is required", decodeError(t, rec))
}

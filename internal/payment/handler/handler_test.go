package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intake-gateway/internal/payment/service"
	"intake-gateway/internal/payment/store"
	"intake-gateway/internal/platform/events"
	"intake-gateway/internal/platform/metrics"
)

var testMetrics = metrics.New()

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newPaymentRouter(t *testing.T) (http.Handler, *store.InMemory) {
	t.Helper()
	st := store.NewInMemory()
	svc := service.New(st, testLogger(), testMetrics, events.Noop{})
	r := chi.NewRouter()
	New(svc, testLogger()).Register(r)
	return r, st
}

func post(router http.Handler, path, contentType string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestWebhookAlwaysAcknowledges(t *testing.T) {
	router, _ := newPaymentRouter(t)

	cases := []struct {
		name        string
		contentType string
		body        []byte
	}{
		{"valid json", "application/json", []byte(`{"email":"a@b.com","status":"success"}`)},
		{"malformed json", "application/json", []byte(`{"email":`)},
		{"urlencoded", "application/x-www-form-urlencoded", []byte("email=a%40b.com&status=success")},
		{"wrong content type", "text/xml", []byte("<payment/>")},
		{"missing fields", "application/json", []byte(`{}`)},
		{"empty body", "", nil},
		{"binary noise", "application/octet-stream", []byte{0x00, 0xff, 0x13, 0x37}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := post(router, "/payu-webhook", tc.contentType, tc.body)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "OK", rec.Body.String())
		})
	}
}

func TestWebhookThenCheckPayment(t *testing.T) {
	router, _ := newPaymentRouter(t)

	payload := []byte(`{"buyerEmail":"a@b.com","transaction_status":"Success"}`)
	rec := post(router, "/payu-webhook", "application/json", payload)
	require.Equal(t, http.StatusOK, rec.Code)

	// Re-delivery still acknowledged.
	rec = post(router, "/payu-webhook", "application/json", payload)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = post(router, "/check-payment", "application/json", []byte(`{"email":"A@B.com"}`))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Paid bool `json:"paid"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Paid)
}

func TestCheckPaymentValidation(t *testing.T) {
	router, _ := newPaymentRouter(t)

	rec := post(router, "/check-payment", "application/json", []byte(`{}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Email is required", resp["error"])

	rec = post(router, "/check-payment", "application/json", []byte(`{"email":"nope"}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckPaymentNotPaid(t *testing.T) {
	router, _ := newPaymentRouter(t)

	rec := post(router, "/check-payment", "application/json", []byte(`{"email":"unpaid@b.com"}`))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Paid bool `json:"paid"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Paid, "absence is a valid state, not a failure")
}

func TestWebhookFailureStatusLeavesNoRecord(t *testing.T) {
	router, st := newPaymentRouter(t)

	rec := post(router, "/payu-webhook", "application/json", []byte(`{"email":"a@b.com","status":"FAILURE"}`))
	require.Equal(t, http.StatusOK, rec.Code)

	exists, err := st.ExistsByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

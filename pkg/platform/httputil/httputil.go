// Package httputil centralizes JSON response writing so every endpoint uses
// the same envelope: payloads as-is on success, {"error": message} on failure.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "intake-gateway/pkg/domain-errors"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into its HTTP status and the single
// error-message envelope clients expect.
func WriteError(w http.ResponseWriter, err error) {
	status := dErrors.ToHTTPStatus(dErrors.CodeOf(err))
	WriteJSON(w, status, map[string]string{"error": dErrors.MessageOf(err)})
}

// Package domainerrors defines the error taxonomy exposed by services.
//
// Stores and infrastructure return pkg/platform/sentinel errors; services
// translate those into coded domain errors, and the HTTP layer maps codes to
// status lines via ToHTTPStatus. Handlers never leak raw dependency errors.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error for transport mapping.
type Code string

const (
	// CodeBadRequest covers malformed or missing input caught before any
	// external call.
	CodeBadRequest Code = "bad_request"
	// CodeInvalidOTP covers wrong, expired and never-issued codes alike; the
	// cases are deliberately indistinguishable to the caller.
	CodeInvalidOTP Code = "invalid_otp"
	// CodeConflict signals a uniqueness violation reported by the store.
	CodeConflict Code = "conflict"
	// CodeDependency signals an external-system failure. Detail is withheld
	// from clients.
	CodeDependency Code = "dependency_failure"
	// CodeInternal is the fallback for unexpected failures.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error with a client-safe message.
type Error struct {
	Code    Code
	Message string
	wrapped error
}

func (e *Error) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.wrapped }

// New builds a domain error with a client-safe message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap builds a domain error that keeps the cause for logs while exposing
// only the message to clients.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, wrapped: cause}
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf extracts the client-safe message from err. Non-domain errors get
// a generic message so dependency detail never leaks.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal error"
}

// ToHTTPStatus maps a code onto an HTTP status line.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeInvalidOTP:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	case CodeDependency, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

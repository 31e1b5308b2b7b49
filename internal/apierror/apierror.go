// Package apierror defines the typed error taxonomy of the service layer and
// the canonical error envelope returned to API clients. Every error a service
// returns is one of the types below, so callers can branch on the failure kind
// with errors.As instead of string matching. Internal details (stack traces,
// SQL errors) never reach the client.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports one or more malformed request fields. It is always
// client-fixable and never retried. Fields maps field name → violation.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string { return e.Detail }

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Data yang dikirim tidak valid", Fields: fields}
}

// ConflictError signals a uniqueness or dependency violation. The client must
// change the request (different name, detach products first, …).
type ConflictError struct {
	Detail string `json:"detail"`
}

func (e *ConflictError) Error() string { return e.Detail }

func NewConflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Detail: fmt.Sprintf(format, args...)}
}

// NotFoundError signals that a referenced id is absent or soft-deleted.
type NotFoundError struct {
	Detail string `json:"detail"`
}

func (e *NotFoundError) Error() string { return e.Detail }

func NewNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Detail: fmt.Sprintf(format, args...)}
}

// UnauthorizedError signals missing or invalid credentials.
type UnauthorizedError struct {
	Detail string `json:"detail"`
}

func (e *UnauthorizedError) Error() string { return e.Detail }

func NewUnauthorized(format string, args ...interface{}) *UnauthorizedError {
	return &UnauthorizedError{Detail: fmt.Sprintf(format, args...)}
}

// UploadError signals an object-storage failure after the retry budget was
// exhausted. The entity write that triggered the upload is aborted.
type UploadError struct {
	Detail string
	Cause  error
}

func (e *UploadError) Error() string { return e.Detail }
func (e *UploadError) Unwrap() error { return e.Cause }

func NewUpload(cause error) *UploadError {
	return &UploadError{
		Detail: fmt.Sprintf("Gagal mengupload file: %v", cause),
		Cause:  cause,
	}
}

// DatabaseError wraps an unexpected persistence failure. It is not retried by
// the service layer and surfaces to the client as a generic message.
type DatabaseError struct {
	Op    string
	Cause error
}

func (e *DatabaseError) Error() string { return fmt.Sprintf("database: %s: %v", e.Op, e.Cause) }
func (e *DatabaseError) Unwrap() error { return e.Cause }

func WrapDB(op string, cause error) *DatabaseError {
	return &DatabaseError{Op: op, Cause: cause}
}

// ── HTTP mapping ──────────────────────────────────────────────────────────────

// APIError is the canonical envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

func New(msg string) *APIError { return &APIError{Detail: msg} }

// StatusCode maps a taxonomy member to its HTTP status. Unknown errors are
// treated as internal failures.
func StatusCode(err error) int {
	var (
		ve *ValidationError
		ce *ConflictError
		ne *NotFoundError
		ua *UnauthorizedError
		ue *UploadError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity
	case errors.As(err, &ce):
		return http.StatusConflict
	case errors.As(err, &ne):
		return http.StatusNotFound
	case errors.As(err, &ua):
		return http.StatusUnauthorized
	case errors.As(err, &ue):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Envelope converts a service error into the wire envelope. DatabaseError and
// unrecognized errors are masked with a generic message.
func Envelope(err error) *APIError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return &APIError{Detail: ve.Detail, Fields: ve.Fields}
	}
	var ce *ConflictError
	if errors.As(err, &ce) {
		return New(ce.Detail)
	}
	var ne *NotFoundError
	if errors.As(err, &ne) {
		return New(ne.Detail)
	}
	var ua *UnauthorizedError
	if errors.As(err, &ua) {
		return New(ua.Detail)
	}
	var ue *UploadError
	if errors.As(err, &ue) {
		return New(ue.Detail)
	}
	return New("Terjadi kesalahan internal")
}

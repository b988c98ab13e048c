// Package apperr holds the error taxonomy shared by the storage components and
// the HTTP layer. Components wrap these sentinels with detail; the HTTP layer
// maps them to status codes with errors.Is.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("not found")
	ErrTokenMissing       = errors.New("access token required")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

// Validation wraps ErrValidation with a caller-facing reason.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// notFound carries the caller-facing text of a missing resource. Every miss
// for the same kind of resource reads the same, whatever id was asked for.
type notFound struct {
	msg string
}

func (e *notFound) Error() string { return e.msg }

func (e *notFound) Unwrap() error { return ErrNotFound }

// NotFound returns an error matching ErrNotFound whose text is msg.
func NotFound(msg string) error {
	return &notFound{msg: msg}
}

// Status maps an error to its HTTP status and a stable error code.
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, ErrDuplicateEmail):
		return http.StatusBadRequest, "duplicate_email"
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, ErrTokenMissing):
		return http.StatusUnauthorized, "token_missing"
	case errors.Is(err, ErrTokenExpired):
		return http.StatusForbidden, "token_expired"
	case errors.Is(err, ErrTokenInvalid):
		return http.StatusForbidden, "token_invalid"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not_found"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// IsInternal is true for errors that must not be shown to the caller.
func IsInternal(err error) bool {
	status, _ := Status(err)
	return status == http.StatusInternalServerError
}

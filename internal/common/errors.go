// Package common defines sentinel errors shared across the service layers.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorBadRequest   = errors.New("bad request")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)

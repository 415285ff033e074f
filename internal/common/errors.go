// Package common defines shared sentinel errors used across the service and
// repository layers. Callers should use errors.Is to match these values; the
// HTTP layer maps them to status codes.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// Service-level errors.
	ErrValidation = errors.New("validation error")
	ErrInternal   = errors.New("internal error")

	// Auth errors. ErrInvalidToken covers malformed, badly signed and
	// expired tokens alike; the sub-reason is deliberately not observable.
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidToken    = errors.New("invalid token")
	ErrAccountDisabled = errors.New("account disabled")

	// Startup-time configuration errors (fatal, never per-request).
	ErrConfiguration = errors.New("configuration error")
)

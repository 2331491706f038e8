// Package common defines shared constants and sentinel errors used across
// the vegtrack client and server. Callers match these with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Remote call outcomes the engine branches on.
	ErrUnavailable  = errors.New("service unavailable")
	ErrUnauthorized = errors.New("unauthorized")

	// Validation errors surfaced before any remote call.
	ErrValidation = errors.New("validation error")

	// Auth errors.
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

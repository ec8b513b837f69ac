// Package common defines shared constants and sentinel errors used across
// the layers of the course-work backend. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Registration / login errors.
	ErrMissingFields      = errors.New("missing required fields")
	ErrValidation         = errors.New("validation error")
	ErrAlreadyExists      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("forbidden")

	// Token lifecycle and verification errors.
	ErrMissingToken  = errors.New("missing authorization token")
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenExpired  = errors.New("token expired")
	ErrAuthorization = errors.New("authorization failed")
	ErrTokenIssuance = errors.New("token issuance failed")

	// Configuration errors (fatal at startup, defensive at request time).
	ErrServerMisconfigured = errors.New("server misconfigured")

	// Password hashing errors (malformed stored hash).
	ErrInvalidHashFormat = errors.New("invalid password hash format")
)

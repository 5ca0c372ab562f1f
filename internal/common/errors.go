// Package common defines shared constants and sentinel errors used across
// the sessionkeeper components. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound          = errors.New("not found")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrDuplicateTokenValue = errors.New("duplicate token value")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")
	ErrValidation = errors.New("validation error")

	// Authentication errors. Login keeps the two distinct so the server can
	// log which one happened; the HTTP layer surfaces both the same way.
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token lifecycle errors. An absent, revoked, and expired token all
	// collapse into ErrInvalidToken so callers cannot tell them apart.
	ErrInvalidToken = errors.New("invalid token")
)

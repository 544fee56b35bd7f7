// Package apperr defines the sentinel errors shared across layers.
// Lower layers wrap them with fmt.Errorf("...: %w", err); handlers match with errors.Is.
package apperr

import "errors"

var (
	// ErrNotFound covers both "no such record" and "record owned by someone else".
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	// ErrService marks failures of an external collaborator (AI provider, store).
	ErrService = errors.New("service error")
)

package models

import "errors"

// Domain errors surfaced to handlers, which map them to HTTP status codes.
// Storage failures outside this set are reported generically as internal.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
)

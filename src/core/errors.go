package core

import "errors"

// Error taxonomy surfaced to the request layer. Owner mismatch is deliberately
// indistinguishable from absence: both are ErrNotFound.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidReference = errors.New("invalid reference")
	ErrValidationFailed = errors.New("validation failed")

	// ErrConflict is reserved for concurrent-update races the store may surface.
	ErrConflict = errors.New("conflict")
)

package store

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict indicates the attempted write would violate a uniqueness
	// or state constraint.
	ErrConflict = errors.New("record conflict")
	// ErrInvalid indicates a validation failure; the mutation was aborted
	// with no state change.
	ErrInvalid = errors.New("invalid input")
	// ErrForbidden indicates the acting user does not own the target record.
	ErrForbidden = errors.New("not allowed")
)

package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict marks a write that collides with an existing row.
	ErrConflict = errors.New("conflict")
	// ErrPersistence wraps storage read/write failures.
	ErrPersistence = errors.New("persistence failure")
	// ErrExternalCapability marks a failed call to the text-generation or weather provider.
	ErrExternalCapability = errors.New("external capability failure")
	// ErrRateLimited is returned when a caller exceeds a request budget.
	ErrRateLimited = errors.New("rate limited")
)

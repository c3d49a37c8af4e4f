package domain

import "errors"

// Error kinds shared across the whole service. Services wrap these with
// context via fmt.Errorf("%w: ..."), handlers map them to HTTP statuses
// with errors.Is. Keeping the taxonomy here means every layer agrees on
// what a failure means without importing each other.
var (
	// ErrUnauthenticated — missing, invalid or expired identity claim.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden — authenticated, but the role or assignment gate failed.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound — resource absent, or deliberately hidden from a caller
	// with no relationship to it (existence masking).
	ErrNotFound = errors.New("not found")

	// ErrValidation — malformed input; distinct from an authorization
	// failure and reported with enough detail to fix the request.
	ErrValidation = errors.New("validation failed")

	// ErrConflict — unique key collision (duplicate username).
	ErrConflict = errors.New("conflict")

	// ErrUnavailable — an external collaborator is unreachable.
	ErrUnavailable = errors.New("service unavailable")
)

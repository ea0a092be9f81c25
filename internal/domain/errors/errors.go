package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrValidation       = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrAlreadyMember    = errors.New("email already belongs to a project member")
	ErrExpired          = errors.New("invitation has expired")
	ErrInvalidState     = errors.New("invitation is not pending")
	ErrEmailMismatch    = errors.New("invitation was issued for a different email")
	ErrAllocationFailed = errors.New("identifier allocation failed after retries")
)

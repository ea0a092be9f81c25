package errors

import "testing"

func TestSentinelErrorsDistinct(t *testing.T) {
	all := []error{
		ErrValidation,
		ErrNotFound,
		ErrConflict,
		ErrAlreadyMember,
		ErrExpired,
		ErrInvalidState,
		ErrEmailMismatch,
		ErrAllocationFailed,
	}
	seen := make(map[string]bool)
	for _, err := range all {
		if err == nil {
			t.Fatal("sentinel error is nil")
		}
		if seen[err.Error()] {
			t.Errorf("duplicate sentinel message %q", err.Error())
		}
		seen[err.Error()] = true
	}
}

package handlers

// API error codes returned in JSON { "error": "...", "code": "..." } for stable client handling.
const (
	ErrCodeInvalidRequest    = "invalid_request"
	ErrCodeUnauthorized      = "unauthorized"
	ErrCodeForbidden         = "forbidden"
	ErrCodeNotFound          = "not_found"
	ErrCodeConflict          = "conflict"
	ErrCodeAlreadyMember     = "already_member"
	ErrCodeInvalidState      = "invalid_state"
	ErrCodeInvitationExpired = "invitation_expired"
	ErrCodeEmailMismatch     = "email_mismatch"
	ErrCodeAllocationFailed  = "allocation_failed"
	ErrCodeRateLimited       = "rate_limited"
	ErrCodeInternal          = "internal_error"
)

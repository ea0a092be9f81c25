package ports

// TokenGenerator produces opaque invitation tokens: fixed-length, URL-safe,
// drawn from a cryptographically secure source. Uniqueness is still enforced
// by the storage constraint on invitations.token, never assumed.
type TokenGenerator interface {
	NewToken() (string, error)
}

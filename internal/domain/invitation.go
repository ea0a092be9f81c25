package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// InvitationID is a value object for invitation identity.
type InvitationID struct{ uuid.UUID }

// NewInvitationID creates a new InvitationID from uuid.
func NewInvitationID(id uuid.UUID) InvitationID { return InvitationID{UUID: id} }

// String returns the canonical string form.
func (i InvitationID) String() string { return i.UUID.String() }

// InvitationStatus is the lifecycle state of an invitation. Expiry is not a
// status; it is derived from ExpiresAt at read time.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// Invitation grants one-time, token-gated access to a project. Rows are kept
// after accept/decline for audit; terminal statuses never transition again.
type Invitation struct {
	ID          InvitationID
	ProjectID   ProjectID
	Email       string
	DisplayName string
	Status      InvitationStatus
	Token       string
	InvitedByID UserID
	CreatedAt   time.Time
	ExpiresAt   time.Time
	AcceptedAt  *time.Time
}

// IsExpired reports whether the invitation is past its expiry. A zero
// ExpiresAt means no expiry was recorded and the invitation never expires.
func (i *Invitation) IsExpired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// EmailMatches compares an email against the invitee's case-insensitively.
func (i *Invitation) EmailMatches(email string) bool {
	return strings.EqualFold(strings.TrimSpace(i.Email), strings.TrimSpace(email))
}

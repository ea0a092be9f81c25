package invitation

import (
	"context"
	"time"

	"github.com/openplanhq/trackd/internal/application/ports"
	"github.com/openplanhq/trackd/internal/domain"
	domerrors "github.com/openplanhq/trackd/internal/domain/errors"
)

// AcceptInput carries the token and the redeeming user.
type AcceptInput struct {
	Token  string
	UserID domain.UserID
}

// AcceptResult reports the joined project and whether this call created the
// membership row (false for the loser of a concurrent duplicate accept).
type AcceptResult struct {
	Invitation    *domain.Invitation
	MemberCreated bool
}

// Accept redeems a pending, non-expired invitation: ensures the membership
// row exists exactly once, carries the invitation's display name over to the
// user when it differs, and flips the invitation to accepted.
//
// Two concurrent accepts of the same token both succeed; the membership
// insert is idempotent through the storage uniqueness constraint and the
// status flip is a conditional update, so the second caller is a no-op rather
// than an error.
type Accept struct {
	invitations ports.InvitationRepository
	users       ports.UserRepository
	memberships ports.MembershipRepository
	now         func() time.Time
}

// NewAccept builds the use case.
func NewAccept(invitations ports.InvitationRepository, users ports.UserRepository, memberships ports.MembershipRepository) *Accept {
	return &Accept{
		invitations: invitations,
		users:       users,
		memberships: memberships,
		now:         time.Now,
	}
}

// Execute redeems the token for the user.
func (uc *Accept) Execute(ctx context.Context, input AcceptInput) (*AcceptResult, error) {
	if input.Token == "" {
		return nil, domerrors.ErrValidation
	}
	inv, err := uc.invitations.GetByToken(ctx, input.Token)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domerrors.ErrNotFound
	}
	// Re-accepting a terminal invitation is reported as InvalidState rather
	// than a silent success; only duplicate in-flight accepts of a still
	// pending row are idempotent.
	if inv.Status != domain.InvitationPending {
		return nil, domerrors.ErrInvalidState
	}
	now := uc.now()
	if inv.IsExpired(now) {
		return nil, domerrors.ErrExpired
	}

	user, err := uc.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrNotFound
	}
	if !inv.EmailMatches(user.Email) {
		return nil, domerrors.ErrEmailMismatch
	}

	created, err := uc.memberships.EnsureMember(ctx, inv.ProjectID, user.ID, domain.RoleMember)
	if err != nil {
		return nil, err
	}
	if inv.DisplayName != "" && inv.DisplayName != user.DisplayName {
		if err := uc.users.UpdateDisplayName(ctx, user.ID, inv.DisplayName); err != nil {
			return nil, err
		}
	}
	// A false return means a concurrent accept already flipped the row; the
	// membership is in place either way, so both callers report success.
	if _, err := uc.invitations.MarkAccepted(ctx, inv.ID, now); err != nil {
		return nil, err
	}
	inv.Status = domain.InvitationAccepted
	inv.AcceptedAt = &now
	return &AcceptResult{Invitation: inv, MemberCreated: created}, nil
}

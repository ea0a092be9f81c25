package invitation

import (
	"context"

	"github.com/openplanhq/trackd/internal/application/ports"
	"github.com/openplanhq/trackd/internal/domain"
	domerrors "github.com/openplanhq/trackd/internal/domain/errors"
)

// DeclineInput identifies the invitation to decline.
type DeclineInput struct {
	InvitationID domain.InvitationID
}

// DeclineResult returns the declined invitation.
type DeclineResult struct {
	Invitation *domain.Invitation
}

// Decline marks a pending invitation declined. Declined is terminal.
//
// TODO(product): callers are not verified to own the invitation's email or
// project; the access-control rule for decline is still undecided.
type Decline struct {
	invitations ports.InvitationRepository
}

// NewDecline builds the use case.
func NewDecline(invitations ports.InvitationRepository) *Decline {
	return &Decline{invitations: invitations}
}

// Execute declines the invitation.
func (uc *Decline) Execute(ctx context.Context, input DeclineInput) (*DeclineResult, error) {
	inv, err := uc.invitations.GetByID(ctx, input.InvitationID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domerrors.ErrNotFound
	}
	if inv.Status != domain.InvitationPending {
		return nil, domerrors.ErrInvalidState
	}
	flipped, err := uc.invitations.MarkDeclined(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	if !flipped {
		// Lost a race with an accept or another decline.
		return nil, domerrors.ErrInvalidState
	}
	inv.Status = domain.InvitationDeclined
	return &DeclineResult{Invitation: inv}, nil
}

package invitation

import (
	"context"
	"strings"
	"time"

	"github.com/openplanhq/trackd/internal/application/ports"
	"github.com/openplanhq/trackd/internal/domain"
	domerrors "github.com/openplanhq/trackd/internal/domain/errors"
)

// ListPendingInput carries the invitee email.
type ListPendingInput struct {
	Email string
}

// ListPendingResult returns the still-redeemable invitations for the email.
type ListPendingResult struct {
	Invitations []*domain.Invitation
}

// ListPending returns the pending, unexpired invitations addressed to an
// email across all projects.
type ListPending struct {
	invitations ports.InvitationRepository
	now         func() time.Time
}

// NewListPending builds the use case.
func NewListPending(invitations ports.InvitationRepository) *ListPending {
	return &ListPending{invitations: invitations, now: time.Now}
}

// Execute lists pending invitations, filtering out expired ones.
func (uc *ListPending) Execute(ctx context.Context, input ListPendingInput) (*ListPendingResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" {
		return nil, domerrors.ErrValidation
	}
	all, err := uc.invitations.ListPendingByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	out := make([]*domain.Invitation, 0, len(all))
	for _, inv := range all {
		if inv.Status == domain.InvitationPending && !inv.IsExpired(now) {
			out = append(out, inv)
		}
	}
	return &ListPendingResult{Invitations: out}, nil
}

package invitation

import (
	"context"
	"time"

	"github.com/openplanhq/trackd/internal/application/ports"
	"github.com/openplanhq/trackd/internal/domain"
	domerrors "github.com/openplanhq/trackd/internal/domain/errors"
)

// GetByTokenInput carries the opaque token from the invite link.
type GetByTokenInput struct {
	Token string
}

// GetByTokenResult returns the pending invitation.
type GetByTokenResult struct {
	Invitation *domain.Invitation
}

// GetByToken resolves a token to its still-redeemable invitation. An unknown
// or already-consumed token reports ErrNotFound; a token that matched a
// pending row past its expiry reports ErrExpired, distinct from the former.
type GetByToken struct {
	invitations ports.InvitationRepository
	now         func() time.Time
}

// NewGetByToken builds the use case.
func NewGetByToken(invitations ports.InvitationRepository) *GetByToken {
	return &GetByToken{invitations: invitations, now: time.Now}
}

// Execute resolves the token.
func (uc *GetByToken) Execute(ctx context.Context, input GetByTokenInput) (*GetByTokenResult, error) {
	if input.Token == "" {
		return nil, domerrors.ErrValidation
	}
	inv, err := uc.invitations.GetByToken(ctx, input.Token)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.Status != domain.InvitationPending {
		return nil, domerrors.ErrNotFound
	}
	if inv.IsExpired(uc.now()) {
		return nil, domerrors.ErrExpired
	}
	return &GetByTokenResult{Invitation: inv}, nil
}

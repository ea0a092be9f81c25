package invitation

import (
	"context"
	"time"

	"github.com/openplanhq/trackd/internal/application/ports"
	"github.com/openplanhq/trackd/internal/domain"
	domerrors "github.com/openplanhq/trackd/internal/domain/errors"
)

// ResendInput identifies the invitation to refresh.
type ResendInput struct {
	InvitationID domain.InvitationID
}

// ResendResult returns the invitation with its new expiry.
type ResendResult struct {
	Invitation *domain.Invitation
}

// Resend pushes a pending invitation's expiry out to now plus the TTL
// (overwrite, not cumulative), keeps the token unchanged, and re-triggers the
// notification email.
type Resend struct {
	invitations ports.InvitationRepository
	projects    ports.ProjectRepository
	enqueuer    ports.TaskEnqueuer
	ttl         time.Duration
	now         func() time.Time
}

// NewResend builds the use case. ttl <= 0 falls back to seven days.
func NewResend(invitations ports.InvitationRepository, projects ports.ProjectRepository, enqueuer ports.TaskEnqueuer, ttl time.Duration) *Resend {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Resend{
		invitations: invitations,
		projects:    projects,
		enqueuer:    enqueuer,
		ttl:         ttl,
		now:         time.Now,
	}
}

// Execute refreshes the expiry and re-enqueues the email.
func (uc *Resend) Execute(ctx context.Context, input ResendInput) (*ResendResult, error) {
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
	expiresAt := uc.now().Add(uc.ttl)
	if err := uc.invitations.UpdateExpiry(ctx, inv.ID, expiresAt); err != nil {
		return nil, err
	}
	inv.ExpiresAt = expiresAt

	project, err := uc.projects.GetByID(ctx, inv.ProjectID)
	if err != nil {
		return nil, err
	}
	if project != nil {
		_ = uc.enqueuer.EnqueueSendInvitation(ctx, ports.InvitationEmail{
			ToEmail:     inv.Email,
			DisplayName: inv.DisplayName,
			ProjectName: project.Name,
			ProjectKey:  project.Key,
			Token:       inv.Token,
		})
	}
	return &ResendResult{Invitation: inv}, nil
}

package invitation

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openplanhq/trackd/internal/application/ports"
	"github.com/openplanhq/trackd/internal/domain"
	domerrors "github.com/openplanhq/trackd/internal/domain/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// defaultTTL is how long a fresh (or resent) invitation stays redeemable.
const defaultTTL = 7 * 24 * time.Hour

// CreateInput describes the invite request.
type CreateInput struct {
	ProjectID   domain.ProjectID
	Email       string
	DisplayName string
	InvitedByID domain.UserID
}

// CreateResult returns the persisted invitation.
type CreateResult struct {
	Invitation *domain.Invitation
}

// Create persists a pending invitation with a fresh token and enqueues the
// notification email.
type Create struct {
	invitations ports.InvitationRepository
	projects    ports.ProjectRepository
	users       ports.UserRepository
	memberships ports.MembershipRepository
	tokens      ports.TokenGenerator
	enqueuer    ports.TaskEnqueuer
	ttl         time.Duration
	now         func() time.Time
}

// NewCreate builds the use case. ttl <= 0 falls back to seven days.
func NewCreate(invitations ports.InvitationRepository, projects ports.ProjectRepository, users ports.UserRepository, memberships ports.MembershipRepository, tokens ports.TokenGenerator, enqueuer ports.TaskEnqueuer, ttl time.Duration) *Create {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Create{
		invitations: invitations,
		projects:    projects,
		users:       users,
		memberships: memberships,
		tokens:      tokens,
		enqueuer:    enqueuer,
		ttl:         ttl,
		now:         time.Now,
	}
}

// Execute validates preconditions, stores the invitation, and schedules the
// email send without waiting for it.
func (uc *Create) Execute(ctx context.Context, input CreateInput) (*CreateResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if !emailRegex.MatchString(email) {
		return nil, domerrors.ErrValidation
	}
	project, err := uc.projects.GetByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domerrors.ErrNotFound
	}
	inviter, err := uc.users.GetByID(ctx, input.InvitedByID)
	if err != nil {
		return nil, err
	}
	if inviter == nil {
		return nil, domerrors.ErrNotFound
	}
	alreadyMember, err := uc.memberships.HasMemberEmail(ctx, input.ProjectID, email)
	if err != nil {
		return nil, err
	}
	if alreadyMember {
		return nil, domerrors.ErrAlreadyMember
	}
	existing, err := uc.invitations.GetPendingByProjectAndEmail(ctx, input.ProjectID, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrConflict
	}

	tok, err := uc.tokens.NewToken()
	if err != nil {
		return nil, err
	}
	now := uc.now()
	inv := &domain.Invitation{
		ID:          domain.NewInvitationID(uuid.New()),
		ProjectID:   input.ProjectID,
		Email:       email,
		DisplayName: strings.TrimSpace(input.DisplayName),
		Status:      domain.InvitationPending,
		Token:       tok,
		InvitedByID: input.InvitedByID,
		CreatedAt:   now,
		ExpiresAt:   now.Add(uc.ttl),
	}
	if err := uc.invitations.Create(ctx, inv); err != nil {
		return nil, err
	}

	// Best-effort: the invitation is durable; a failed enqueue is logged by
	// the enqueuer and never fails the request.
	_ = uc.enqueuer.EnqueueSendInvitation(ctx, ports.InvitationEmail{
		ToEmail:     inv.Email,
		DisplayName: inv.DisplayName,
		ProjectName: project.Name,
		ProjectKey:  project.Key,
		Token:       inv.Token,
	})
	return &CreateResult{Invitation: inv}, nil
}

package ports

import (
	"context"
	"time"

	"github.com/openplanhq/trackd/internal/domain"
)

// ProjectRepository defines persistence for projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, projectID domain.ProjectID) (*domain.Project, error)
	GetByKey(ctx context.Context, key string) (*domain.Project, error)
}

// UserRepository defines persistence for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateDisplayName(ctx context.Context, userID domain.UserID, displayName string) error
}

// InvitationRepository defines persistence for invitations. Lookup methods
// return (nil, nil) when no row matches; status filtering is the caller's job.
type InvitationRepository interface {
	Create(ctx context.Context, inv *domain.Invitation) error
	GetByID(ctx context.Context, id domain.InvitationID) (*domain.Invitation, error)
	GetByToken(ctx context.Context, token string) (*domain.Invitation, error)
	// GetPendingByProjectAndEmail matches the email case-insensitively.
	GetPendingByProjectAndEmail(ctx context.Context, projectID domain.ProjectID, email string) (*domain.Invitation, error)
	ListPendingByEmail(ctx context.Context, email string) ([]*domain.Invitation, error)
	// UpdateExpiry overwrites ExpiresAt; it does not touch status or token.
	UpdateExpiry(ctx context.Context, id domain.InvitationID, expiresAt time.Time) error
	// MarkAccepted flips a pending invitation to accepted. It returns false
	// without error when the row was no longer pending (a concurrent accept
	// already consumed it).
	MarkAccepted(ctx context.Context, id domain.InvitationID, acceptedAt time.Time) (bool, error)
	// MarkDeclined flips a pending invitation to declined; false when the row
	// was no longer pending.
	MarkDeclined(ctx context.Context, id domain.InvitationID) (bool, error)
}

// MembershipRepository defines persistence for project memberships.
type MembershipRepository interface {
	// EnsureMember inserts the (project, user) row if absent. A concurrent or
	// prior insert is reported as created=false, never as an error. Safety
	// relies on the storage uniqueness constraint, not a check-then-insert.
	EnsureMember(ctx context.Context, projectID domain.ProjectID, userID domain.UserID, role string) (created bool, err error)
	ListByProject(ctx context.Context, projectID domain.ProjectID) ([]*domain.Membership, error)
	// HasMemberEmail reports whether the email (case-insensitive) belongs to
	// an existing member of the project.
	HasMemberEmail(ctx context.Context, projectID domain.ProjectID, email string) (bool, error)
}

// SequenceStore hands out the next value of a per-scope counter. Two
// concurrent calls for the same scope never observe the same value; an
// unknown scope starts at 1.
type SequenceStore interface {
	Next(ctx context.Context, scopeKey string) (int64, error)
}

// TicketRepository defines persistence for tasks and incidents.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	ListByProject(ctx context.Context, projectID domain.ProjectID, kind domain.TicketKind) ([]*domain.Ticket, error)
}

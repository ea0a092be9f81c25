package project

import (
	"context"

	"github.com/openplanhq/trackd/internal/application/ports"
	"github.com/openplanhq/trackd/internal/domain"
	domerrors "github.com/openplanhq/trackd/internal/domain/errors"
)

// ListMembersInput identifies the project.
type ListMembersInput struct {
	ProjectID domain.ProjectID
}

// Member pairs a membership row with its user.
type Member struct {
	Membership *domain.Membership
	User       *domain.User
}

// ListMembersResult returns the project's members.
type ListMembersResult struct {
	Members []Member
}

// ListMembers returns a project's memberships joined with their users.
type ListMembers struct {
	projects    ports.ProjectRepository
	memberships ports.MembershipRepository
	users       ports.UserRepository
}

// NewListMembers builds the use case.
func NewListMembers(projects ports.ProjectRepository, memberships ports.MembershipRepository, users ports.UserRepository) *ListMembers {
	return &ListMembers{projects: projects, memberships: memberships, users: users}
}

// Execute lists the members.
func (uc *ListMembers) Execute(ctx context.Context, input ListMembersInput) (*ListMembersResult, error) {
	project, err := uc.projects.GetByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domerrors.ErrNotFound
	}
	rows, err := uc.memberships.ListByProject(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	members := make([]Member, 0, len(rows))
	for _, m := range rows {
		user, err := uc.users.GetByID(ctx, m.UserID)
		if err != nil {
			return nil, err
		}
		members = append(members, Member{Membership: m, User: user})
	}
	return &ListMembersResult{Members: members}, nil
}

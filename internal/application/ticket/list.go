package ticket

import (
	"context"

	"github.com/openplanhq/trackd/internal/application/ports"
	"github.com/openplanhq/trackd/internal/domain"
	domerrors "github.com/openplanhq/trackd/internal/domain/errors"
)

// ListByProjectInput selects a project and a ticket kind.
type ListByProjectInput struct {
	ProjectID domain.ProjectID
	Kind      domain.TicketKind
}

// ListByProjectResult returns the matching tickets.
type ListByProjectResult struct {
	Tickets []*domain.Ticket
}

// ListByProject returns a project's tickets of one kind.
type ListByProject struct {
	tickets  ports.TicketRepository
	projects ports.ProjectRepository
}

// NewListByProject builds the use case.
func NewListByProject(tickets ports.TicketRepository, projects ports.ProjectRepository) *ListByProject {
	return &ListByProject{tickets: tickets, projects: projects}
}

// Execute lists the tickets.
func (uc *ListByProject) Execute(ctx context.Context, input ListByProjectInput) (*ListByProjectResult, error) {
	project, err := uc.projects.GetByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domerrors.ErrNotFound
	}
	tickets, err := uc.tickets.ListByProject(ctx, input.ProjectID, input.Kind)
	if err != nil {
		return nil, err
	}
	return &ListByProjectResult{Tickets: tickets}, nil
}

package ticket

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openplanhq/trackd/internal/application/identifier"
	"github.com/openplanhq/trackd/internal/application/ports"
	"github.com/openplanhq/trackd/internal/domain"
	domerrors "github.com/openplanhq/trackd/internal/domain/errors"
)

// CreateIncidentInput describes a new incident.
type CreateIncidentInput struct {
	ProjectID   domain.ProjectID
	Title       string
	Description string
	CreatedByID domain.UserID
}

// CreateIncidentResult returns the persisted incident.
type CreateIncidentResult struct {
	Ticket *domain.Ticket
}

// CreateIncident allocates the next global "INC-{nnn}" identifier (padded to
// three digits) and persists the incident.
type CreateIncident struct {
	tickets   ports.TicketRepository
	projects  ports.ProjectRepository
	allocator *identifier.Allocator
	now       func() time.Time
}

// NewCreateIncident builds the use case.
func NewCreateIncident(tickets ports.TicketRepository, projects ports.ProjectRepository, allocator *identifier.Allocator) *CreateIncident {
	return &CreateIncident{tickets: tickets, projects: projects, allocator: allocator, now: time.Now}
}

// Execute creates the incident.
func (uc *CreateIncident) Execute(ctx context.Context, input CreateIncidentInput) (*CreateIncidentResult, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domerrors.ErrValidation
	}
	project, err := uc.projects.GetByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domerrors.ErrNotFound
	}
	id, err := uc.allocator.Allocate(ctx, identifier.IncidentScope)
	if err != nil {
		return nil, err
	}
	tk := &domain.Ticket{
		ID:          domain.NewTicketID(uuid.New()),
		ProjectID:   project.ID,
		Kind:        domain.TicketIncident,
		Identifier:  id,
		Title:       title,
		Description: input.Description,
		CreatedByID: input.CreatedByID,
		CreatedAt:   uc.now(),
	}
	if err := uc.tickets.Create(ctx, tk); err != nil {
		return nil, err
	}
	return &CreateIncidentResult{Ticket: tk}, nil
}

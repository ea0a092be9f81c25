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

// CreateTaskInput describes a new task.
type CreateTaskInput struct {
	ProjectID   domain.ProjectID
	Title       string
	Description string
	CreatedByID domain.UserID
}

// CreateTaskResult returns the persisted task.
type CreateTaskResult struct {
	Ticket *domain.Ticket
}

// CreateTask allocates the next "{projectKey}-{n}" identifier and persists
// the task. The allocation happens before the insert; a failed insert leaves
// a gap in the sequence, never a reused value.
type CreateTask struct {
	tickets   ports.TicketRepository
	projects  ports.ProjectRepository
	allocator *identifier.Allocator
	now       func() time.Time
}

// NewCreateTask builds the use case.
func NewCreateTask(tickets ports.TicketRepository, projects ports.ProjectRepository, allocator *identifier.Allocator) *CreateTask {
	return &CreateTask{tickets: tickets, projects: projects, allocator: allocator, now: time.Now}
}

// Execute creates the task.
func (uc *CreateTask) Execute(ctx context.Context, input CreateTaskInput) (*CreateTaskResult, error) {
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
	id, err := uc.allocator.Allocate(ctx, identifier.TaskScope(project.Key))
	if err != nil {
		return nil, err
	}
	tk := &domain.Ticket{
		ID:          domain.NewTicketID(uuid.New()),
		ProjectID:   project.ID,
		Kind:        domain.TicketTask,
		Identifier:  id,
		Title:       title,
		Description: input.Description,
		CreatedByID: input.CreatedByID,
		CreatedAt:   uc.now(),
	}
	if err := uc.tickets.Create(ctx, tk); err != nil {
		return nil, err
	}
	return &CreateTaskResult{Ticket: tk}, nil
}

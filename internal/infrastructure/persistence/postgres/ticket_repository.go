package postgres

import (
	"context"

	"github.com/openplanhq/trackd/internal/application/ports"
	"github.com/openplanhq/trackd/internal/domain"
	"github.com/openplanhq/trackd/internal/infrastructure/persistence/db"
)

type TicketRepository struct {
	q *db.Queries
}

func NewTicketRepository(q *db.Queries) *TicketRepository {
	return &TicketRepository{q: q}
}

func (r *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	_, err := r.q.CreateTicket(ctx, db.CreateTicketParams{
		ID:          ticket.ID.UUID,
		ProjectID:   ticket.ProjectID.UUID,
		Kind:        string(ticket.Kind),
		Identifier:  ticket.Identifier,
		Title:       ticket.Title,
		Description: ticket.Description,
		CreatedByID: ticket.CreatedByID.UUID,
		CreatedAt:   ticket.CreatedAt,
	})
	return err
}

func (r *TicketRepository) ListByProject(ctx context.Context, projectID domain.ProjectID, kind domain.TicketKind) ([]*domain.Ticket, error) {
	list, err := r.q.ListTicketsByProjectAndKind(ctx, db.ListTicketsByProjectAndKindParams{
		ProjectID: projectID.UUID,
		Kind:      string(kind),
	})
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Ticket, 0, len(list))
	for _, t := range list {
		out = append(out, &domain.Ticket{
			ID:          domain.NewTicketID(t.ID),
			ProjectID:   domain.NewProjectID(t.ProjectID),
			Kind:        domain.TicketKind(t.Kind),
			Identifier:  t.Identifier,
			Title:       t.Title,
			Description: t.Description,
			CreatedByID: domain.NewUserID(t.CreatedByID),
			CreatedAt:   t.CreatedAt,
		})
	}
	return out, nil
}

// Ensure TicketRepository implements ports.TicketRepository.
var _ ports.TicketRepository = (*TicketRepository)(nil)

package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/openplanhq/trackd/internal/application/ports"
	"github.com/openplanhq/trackd/internal/domain"
	"github.com/openplanhq/trackd/internal/infrastructure/persistence/db"
)

type InvitationRepository struct {
	q *db.Queries
}

func NewInvitationRepository(q *db.Queries) *InvitationRepository {
	return &InvitationRepository{q: q}
}

func (r *InvitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	_, err := r.q.CreateInvitation(ctx, db.CreateInvitationParams{
		ID:          inv.ID.UUID,
		ProjectID:   inv.ProjectID.UUID,
		Email:       inv.Email,
		DisplayName: inv.DisplayName,
		Status:      string(inv.Status),
		Token:       inv.Token,
		InvitedByID: inv.InvitedByID.UUID,
		CreatedAt:   inv.CreatedAt,
		ExpiresAt:   toTimestamptz(inv.ExpiresAt),
	})
	return err
}

func (r *InvitationRepository) GetByID(ctx context.Context, id domain.InvitationID) (*domain.Invitation, error) {
	i, err := r.q.GetInvitationByID(ctx, id.UUID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return dbInvitationToDomain(i), nil
}

func (r *InvitationRepository) GetByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	i, err := r.q.GetInvitationByToken(ctx, token)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return dbInvitationToDomain(i), nil
}

func (r *InvitationRepository) GetPendingByProjectAndEmail(ctx context.Context, projectID domain.ProjectID, email string) (*domain.Invitation, error) {
	i, err := r.q.GetPendingInvitationByProjectAndEmail(ctx, db.GetPendingInvitationByProjectAndEmailParams{
		ProjectID: projectID.UUID,
		Email:     email,
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return dbInvitationToDomain(i), nil
}

func (r *InvitationRepository) ListPendingByEmail(ctx context.Context, email string) ([]*domain.Invitation, error) {
	list, err := r.q.ListPendingInvitationsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Invitation, 0, len(list))
	for _, i := range list {
		out = append(out, dbInvitationToDomain(i))
	}
	return out, nil
}

func (r *InvitationRepository) UpdateExpiry(ctx context.Context, id domain.InvitationID, expiresAt time.Time) error {
	return r.q.UpdateInvitationExpiry(ctx, db.UpdateInvitationExpiryParams{
		ExpiresAt: toTimestamptz(expiresAt),
		ID:        id.UUID,
	})
}

func (r *InvitationRepository) MarkAccepted(ctx context.Context, id domain.InvitationID, acceptedAt time.Time) (bool, error) {
	affected, err := r.q.AcceptInvitation(ctx, db.AcceptInvitationParams{
		AcceptedAt: toTimestamptz(acceptedAt),
		ID:         id.UUID,
	})
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *InvitationRepository) MarkDeclined(ctx context.Context, id domain.InvitationID) (bool, error) {
	affected, err := r.q.DeclineInvitation(ctx, id.UUID)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func toTimestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func dbInvitationToDomain(i db.Invitation) *domain.Invitation {
	inv := &domain.Invitation{
		ID:          domain.NewInvitationID(i.ID),
		ProjectID:   domain.NewProjectID(i.ProjectID),
		Email:       i.Email,
		DisplayName: i.DisplayName,
		Status:      domain.InvitationStatus(i.Status),
		Token:       i.Token,
		InvitedByID: domain.NewUserID(i.InvitedByID),
		CreatedAt:   i.CreatedAt,
	}
	if i.ExpiresAt.Valid {
		inv.ExpiresAt = i.ExpiresAt.Time
	}
	if i.AcceptedAt.Valid {
		t := i.AcceptedAt.Time
		inv.AcceptedAt = &t
	}
	return inv
}

// Ensure InvitationRepository implements ports.InvitationRepository.
var _ ports.InvitationRepository = (*InvitationRepository)(nil)

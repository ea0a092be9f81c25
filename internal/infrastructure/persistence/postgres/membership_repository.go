package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/openplanhq/trackd/internal/application/ports"
	"github.com/openplanhq/trackd/internal/domain"
	"github.com/openplanhq/trackd/internal/infrastructure/persistence/db"
)

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

type MembershipRepository struct {
	q *db.Queries
}

func NewMembershipRepository(q *db.Queries) *MembershipRepository {
	return &MembershipRepository{q: q}
}

// EnsureMember relies on the (project_id, user_id) primary key: the insert
// uses ON CONFLICT DO NOTHING, so the loser of a concurrent accept sees zero
// affected rows instead of an error. A unique violation surfacing anyway
// (e.g. from a serializable transaction) is folded into the same branch.
func (r *MembershipRepository) EnsureMember(ctx context.Context, projectID domain.ProjectID, userID domain.UserID, role string) (bool, error) {
	affected, err := r.q.InsertMembership(ctx, db.InsertMembershipParams{
		ProjectID: projectID.UUID,
		UserID:    userID.UUID,
		Role:      role,
		JoinedAt:  time.Now(),
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return false, nil
		}
		return false, err
	}
	return affected > 0, nil
}

func (r *MembershipRepository) ListByProject(ctx context.Context, projectID domain.ProjectID) ([]*domain.Membership, error) {
	list, err := r.q.ListMembershipsByProject(ctx, projectID.UUID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Membership, 0, len(list))
	for _, m := range list {
		out = append(out, &domain.Membership{
			ProjectID: domain.NewProjectID(m.ProjectID),
			UserID:    domain.NewUserID(m.UserID),
			Role:      m.Role,
			JoinedAt:  m.JoinedAt,
		})
	}
	return out, nil
}

func (r *MembershipRepository) HasMemberEmail(ctx context.Context, projectID domain.ProjectID, email string) (bool, error) {
	return r.q.ProjectHasMemberEmail(ctx, db.ProjectHasMemberEmailParams{
		ProjectID: projectID.UUID,
		Email:     email,
	})
}

// Ensure MembershipRepository implements ports.MembershipRepository.
var _ ports.MembershipRepository = (*MembershipRepository)(nil)

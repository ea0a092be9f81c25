package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/openplanhq/trackd/internal/application/ports"
	"github.com/openplanhq/trackd/internal/domain"
	"github.com/openplanhq/trackd/internal/infrastructure/persistence/db"
)

type UserRepository struct {
	q *db.Queries
}

func NewUserRepository(q *db.Queries) *UserRepository {
	return &UserRepository{q: q}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.q.CreateUser(ctx, db.CreateUserParams{
		ID:          user.ID.UUID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	})
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	u, err := r.q.GetUserByID(ctx, userID.UUID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return dbUserToDomain(u), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return dbUserToDomain(u), nil
}

func (r *UserRepository) UpdateDisplayName(ctx context.Context, userID domain.UserID, displayName string) error {
	return r.q.UpdateUserDisplayName(ctx, db.UpdateUserDisplayNameParams{
		DisplayName: displayName,
		ID:          userID.UUID,
	})
}

func dbUserToDomain(u db.User) *domain.User {
	return &domain.User{
		ID:          domain.NewUserID(u.ID),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// Ensure UserRepository implements ports.UserRepository.
var _ ports.UserRepository = (*UserRepository)(nil)

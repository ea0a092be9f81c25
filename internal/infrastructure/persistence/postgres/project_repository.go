package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/openplanhq/trackd/internal/application/ports"
	"github.com/openplanhq/trackd/internal/domain"
	"github.com/openplanhq/trackd/internal/infrastructure/persistence/db"
)

type ProjectRepository struct {
	q *db.Queries
}

func NewProjectRepository(q *db.Queries) *ProjectRepository {
	return &ProjectRepository{q: q}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	_, err := r.q.CreateProject(ctx, db.CreateProjectParams{
		ID:        project.ID.UUID,
		Key:       project.Key,
		Name:      project.Name,
		CreatedAt: project.CreatedAt,
		UpdatedAt: project.UpdatedAt,
	})
	return err
}

func (r *ProjectRepository) GetByID(ctx context.Context, projectID domain.ProjectID) (*domain.Project, error) {
	p, err := r.q.GetProjectByID(ctx, projectID.UUID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return dbProjectToDomain(p), nil
}

func (r *ProjectRepository) GetByKey(ctx context.Context, key string) (*domain.Project, error) {
	p, err := r.q.GetProjectByKey(ctx, key)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return dbProjectToDomain(p), nil
}

func dbProjectToDomain(p db.Project) *domain.Project {
	return &domain.Project{
		ID:        domain.NewProjectID(p.ID),
		Key:       p.Key,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// Ensure ProjectRepository implements ports.ProjectRepository.
var _ ports.ProjectRepository = (*ProjectRepository)(nil)

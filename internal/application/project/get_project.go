package project

import (
	"context"

	"github.com/openplanhq/trackd/internal/application/ports"
	"github.com/openplanhq/trackd/internal/domain"
	domerrors "github.com/openplanhq/trackd/internal/domain/errors"
)

// GetProjectInput identifies the project.
type GetProjectInput struct {
	ProjectID domain.ProjectID
}

// GetProjectResult returns the project.
type GetProjectResult struct {
	Project *domain.Project
}

// GetProject fetches a project by id.
type GetProject struct {
	projects ports.ProjectRepository
}

// NewGetProject builds the use case.
func NewGetProject(projects ports.ProjectRepository) *GetProject {
	return &GetProject{projects: projects}
}

// Execute fetches the project.
func (uc *GetProject) Execute(ctx context.Context, input GetProjectInput) (*GetProjectResult, error) {
	project, err := uc.projects.GetByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domerrors.ErrNotFound
	}
	return &GetProjectResult{Project: project}, nil
}

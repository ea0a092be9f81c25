package project

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openplanhq/trackd/internal/application/ports"
	"github.com/openplanhq/trackd/internal/domain"
	domerrors "github.com/openplanhq/trackd/internal/domain/errors"
)

// Project keys become identifier prefixes ("PROJ-123"), so they are short
// uppercase words.
var keyRegex = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,9}$`)

// CreateProjectInput is the project name and identifier key.
type CreateProjectInput struct {
	Name string
	Key  string
}

// CreateProjectResult returns the created project.
type CreateProjectResult struct {
	Project *domain.Project
}

// CreateProject creates a project with a unique key.
type CreateProject struct {
	projects ports.ProjectRepository
}

// NewCreateProject builds the use case.
func NewCreateProject(projects ports.ProjectRepository) *CreateProject {
	return &CreateProject{projects: projects}
}

// Execute creates the project.
func (uc *CreateProject) Execute(ctx context.Context, input CreateProjectInput) (*CreateProjectResult, error) {
	name := strings.TrimSpace(input.Name)
	key := strings.ToUpper(strings.TrimSpace(input.Key))
	if name == "" || !keyRegex.MatchString(key) {
		return nil, domerrors.ErrValidation
	}
	existing, err := uc.projects.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrConflict
	}
	now := time.Now()
	project := &domain.Project{
		ID:        domain.NewProjectID(uuid.New()),
		Key:       key,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return &CreateProjectResult{Project: project}, nil
}

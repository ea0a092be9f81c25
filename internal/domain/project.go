package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProjectID is a value object for project identity.
type ProjectID struct{ uuid.UUID }

// NewProjectID creates a new ProjectID from uuid.
func NewProjectID(id uuid.UUID) ProjectID { return ProjectID{UUID: id} }

// String returns the canonical string form.
func (p ProjectID) String() string { return p.UUID.String() }

// Project is a tracked project. Key is the short human prefix ("PROJ") used
// when allocating task identifiers like "PROJ-123".
type Project struct {
	ID        ProjectID
	Key       string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

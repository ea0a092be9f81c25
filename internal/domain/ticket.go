package domain

import (
	"time"

	"github.com/google/uuid"
)

// TicketID is a value object for ticket identity.
type TicketID struct{ uuid.UUID }

// NewTicketID creates a new TicketID from uuid.
func NewTicketID(id uuid.UUID) TicketID { return TicketID{UUID: id} }

// String returns the canonical string form.
func (t TicketID) String() string { return t.UUID.String() }

// TicketKind distinguishes project-scoped tasks from global incidents. The
// kind decides which sequence scope the human identifier is drawn from.
type TicketKind string

const (
	TicketTask     TicketKind = "task"
	TicketIncident TicketKind = "incident"
)

// Ticket is a work item carrying a human-readable identifier such as
// "PROJ-123" or "INC-045". Identifiers are unique and strictly increasing
// within their scope and are never reused, even after deletion.
type Ticket struct {
	ID          TicketID
	ProjectID   ProjectID
	Kind        TicketKind
	Identifier  string
	Title       string
	Description string
	CreatedByID UserID
	CreatedAt   time.Time
}

package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Project struct {
	ID        uuid.UUID
	Key       string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type User struct {
	ID          uuid.UUID
	Email       string
	DisplayName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Invitation struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	Email       string
	DisplayName string
	Status      string
	Token       string
	InvitedByID uuid.UUID
	CreatedAt   time.Time
	ExpiresAt   pgtype.Timestamptz
	AcceptedAt  pgtype.Timestamptz
}

type Membership struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Role      string
	JoinedAt  time.Time
}

type Ticket struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	Kind        string
	Identifier  string
	Title       string
	Description string
	CreatedByID uuid.UUID
	CreatedAt   time.Time
}

type SequenceCounter struct {
	ScopeKey  string
	Value     int64
	UpdatedAt time.Time
}

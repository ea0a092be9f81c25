package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createProject = `
INSERT INTO projects (id, key, name, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, key, name, created_at, updated_at
`

type CreateProjectParams struct {
	ID        uuid.UUID
	Key       string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (Project, error) {
	row := q.db.QueryRow(ctx, createProject, arg.ID, arg.Key, arg.Name, arg.CreatedAt, arg.UpdatedAt)
	var i Project
	err := row.Scan(&i.ID, &i.Key, &i.Name, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const getProjectByID = `
SELECT id, key, name, created_at, updated_at FROM projects WHERE id = $1
`

func (q *Queries) GetProjectByID(ctx context.Context, id uuid.UUID) (Project, error) {
	row := q.db.QueryRow(ctx, getProjectByID, id)
	var i Project
	err := row.Scan(&i.ID, &i.Key, &i.Name, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const getProjectByKey = `
SELECT id, key, name, created_at, updated_at FROM projects WHERE key = $1
`

func (q *Queries) GetProjectByKey(ctx context.Context, key string) (Project, error) {
	row := q.db.QueryRow(ctx, getProjectByKey, key)
	var i Project
	err := row.Scan(&i.ID, &i.Key, &i.Name, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const createUser = `
INSERT INTO users (id, email, display_name, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, email, display_name, created_at, updated_at
`

type CreateUserParams struct {
	ID          uuid.UUID
	Email       string
	DisplayName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser, arg.ID, arg.Email, arg.DisplayName, arg.CreatedAt, arg.UpdatedAt)
	var i User
	err := row.Scan(&i.ID, &i.Email, &i.DisplayName, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const getUserByID = `
SELECT id, email, display_name, created_at, updated_at FROM users WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, id)
	var i User
	err := row.Scan(&i.ID, &i.Email, &i.DisplayName, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const getUserByEmail = `
SELECT id, email, display_name, created_at, updated_at FROM users WHERE lower(email) = lower($1)
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByEmail, email)
	var i User
	err := row.Scan(&i.ID, &i.Email, &i.DisplayName, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const updateUserDisplayName = `
UPDATE users SET display_name = $1, updated_at = NOW() WHERE id = $2
`

type UpdateUserDisplayNameParams struct {
	DisplayName string
	ID          uuid.UUID
}

func (q *Queries) UpdateUserDisplayName(ctx context.Context, arg UpdateUserDisplayNameParams) error {
	_, err := q.db.Exec(ctx, updateUserDisplayName, arg.DisplayName, arg.ID)
	return err
}

const createInvitation = `
INSERT INTO invitations (id, project_id, email, display_name, status, token, invited_by_id, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, project_id, email, display_name, status, token, invited_by_id, created_at, expires_at, accepted_at
`

type CreateInvitationParams struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	Email       string
	DisplayName string
	Status      string
	Token       string
	InvitedByID uuid.UUID
	CreatedAt   time.Time
	ExpiresAt   pgtype.Timestamptz
}

func (q *Queries) CreateInvitation(ctx context.Context, arg CreateInvitationParams) (Invitation, error) {
	row := q.db.QueryRow(ctx, createInvitation,
		arg.ID, arg.ProjectID, arg.Email, arg.DisplayName, arg.Status, arg.Token, arg.InvitedByID, arg.CreatedAt, arg.ExpiresAt,
	)
	var i Invitation
	err := row.Scan(&i.ID, &i.ProjectID, &i.Email, &i.DisplayName, &i.Status, &i.Token, &i.InvitedByID, &i.CreatedAt, &i.ExpiresAt, &i.AcceptedAt)
	return i, err
}

const getInvitationByID = `
SELECT id, project_id, email, display_name, status, token, invited_by_id, created_at, expires_at, accepted_at
FROM invitations WHERE id = $1
`

func (q *Queries) GetInvitationByID(ctx context.Context, id uuid.UUID) (Invitation, error) {
	row := q.db.QueryRow(ctx, getInvitationByID, id)
	var i Invitation
	err := row.Scan(&i.ID, &i.ProjectID, &i.Email, &i.DisplayName, &i.Status, &i.Token, &i.InvitedByID, &i.CreatedAt, &i.ExpiresAt, &i.AcceptedAt)
	return i, err
}

const getInvitationByToken = `
SELECT id, project_id, email, display_name, status, token, invited_by_id, created_at, expires_at, accepted_at
FROM invitations WHERE token = $1
`

func (q *Queries) GetInvitationByToken(ctx context.Context, token string) (Invitation, error) {
	row := q.db.QueryRow(ctx, getInvitationByToken, token)
	var i Invitation
	err := row.Scan(&i.ID, &i.ProjectID, &i.Email, &i.DisplayName, &i.Status, &i.Token, &i.InvitedByID, &i.CreatedAt, &i.ExpiresAt, &i.AcceptedAt)
	return i, err
}

const getPendingInvitationByProjectAndEmail = `
SELECT id, project_id, email, display_name, status, token, invited_by_id, created_at, expires_at, accepted_at
FROM invitations
WHERE project_id = $1 AND lower(email) = lower($2) AND status = 'pending'
`

type GetPendingInvitationByProjectAndEmailParams struct {
	ProjectID uuid.UUID
	Email     string
}

func (q *Queries) GetPendingInvitationByProjectAndEmail(ctx context.Context, arg GetPendingInvitationByProjectAndEmailParams) (Invitation, error) {
	row := q.db.QueryRow(ctx, getPendingInvitationByProjectAndEmail, arg.ProjectID, arg.Email)
	var i Invitation
	err := row.Scan(&i.ID, &i.ProjectID, &i.Email, &i.DisplayName, &i.Status, &i.Token, &i.InvitedByID, &i.CreatedAt, &i.ExpiresAt, &i.AcceptedAt)
	return i, err
}

const listPendingInvitationsByEmail = `
SELECT id, project_id, email, display_name, status, token, invited_by_id, created_at, expires_at, accepted_at
FROM invitations
WHERE lower(email) = lower($1) AND status = 'pending'
ORDER BY created_at DESC
`

func (q *Queries) ListPendingInvitationsByEmail(ctx context.Context, email string) ([]Invitation, error) {
	rows, err := q.db.Query(ctx, listPendingInvitationsByEmail, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Invitation
	for rows.Next() {
		var i Invitation
		if err := rows.Scan(&i.ID, &i.ProjectID, &i.Email, &i.DisplayName, &i.Status, &i.Token, &i.InvitedByID, &i.CreatedAt, &i.ExpiresAt, &i.AcceptedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const updateInvitationExpiry = `
UPDATE invitations SET expires_at = $1 WHERE id = $2
`

type UpdateInvitationExpiryParams struct {
	ExpiresAt pgtype.Timestamptz
	ID        uuid.UUID
}

func (q *Queries) UpdateInvitationExpiry(ctx context.Context, arg UpdateInvitationExpiryParams) error {
	_, err := q.db.Exec(ctx, updateInvitationExpiry, arg.ExpiresAt, arg.ID)
	return err
}

const acceptInvitation = `
UPDATE invitations SET status = 'accepted', accepted_at = $1
WHERE id = $2 AND status = 'pending'
`

type AcceptInvitationParams struct {
	AcceptedAt pgtype.Timestamptz
	ID         uuid.UUID
}

func (q *Queries) AcceptInvitation(ctx context.Context, arg AcceptInvitationParams) (int64, error) {
	result, err := q.db.Exec(ctx, acceptInvitation, arg.AcceptedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const declineInvitation = `
UPDATE invitations SET status = 'declined' WHERE id = $1 AND status = 'pending'
`

func (q *Queries) DeclineInvitation(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.Exec(ctx, declineInvitation, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const insertMembership = `
INSERT INTO memberships (project_id, user_id, role, joined_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (project_id, user_id) DO NOTHING
`

type InsertMembershipParams struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Role      string
	JoinedAt  time.Time
}

func (q *Queries) InsertMembership(ctx context.Context, arg InsertMembershipParams) (int64, error) {
	result, err := q.db.Exec(ctx, insertMembership, arg.ProjectID, arg.UserID, arg.Role, arg.JoinedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listMembershipsByProject = `
SELECT project_id, user_id, role, joined_at FROM memberships WHERE project_id = $1 ORDER BY joined_at
`

func (q *Queries) ListMembershipsByProject(ctx context.Context, projectID uuid.UUID) ([]Membership, error) {
	rows, err := q.db.Query(ctx, listMembershipsByProject, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Membership
	for rows.Next() {
		var m Membership
		if err := rows.Scan(&m.ProjectID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

const projectHasMemberEmail = `
SELECT EXISTS (
	SELECT 1 FROM memberships m
	JOIN users u ON u.id = m.user_id
	WHERE m.project_id = $1 AND lower(u.email) = lower($2)
)
`

type ProjectHasMemberEmailParams struct {
	ProjectID uuid.UUID
	Email     string
}

func (q *Queries) ProjectHasMemberEmail(ctx context.Context, arg ProjectHasMemberEmailParams) (bool, error) {
	row := q.db.QueryRow(ctx, projectHasMemberEmail, arg.ProjectID, arg.Email)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const nextSequenceValue = `
INSERT INTO sequence_counters (scope_key, value, updated_at)
VALUES ($1, 1, NOW())
ON CONFLICT (scope_key) DO UPDATE SET value = sequence_counters.value + 1, updated_at = NOW()
RETURNING value
`

func (q *Queries) NextSequenceValue(ctx context.Context, scopeKey string) (int64, error) {
	row := q.db.QueryRow(ctx, nextSequenceValue, scopeKey)
	var value int64
	err := row.Scan(&value)
	return value, err
}

const createTicket = `
INSERT INTO tickets (id, project_id, kind, identifier, title, description, created_by_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, project_id, kind, identifier, title, description, created_by_id, created_at
`

type CreateTicketParams struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	Kind        string
	Identifier  string
	Title       string
	Description string
	CreatedByID uuid.UUID
	CreatedAt   time.Time
}

func (q *Queries) CreateTicket(ctx context.Context, arg CreateTicketParams) (Ticket, error) {
	row := q.db.QueryRow(ctx, createTicket,
		arg.ID, arg.ProjectID, arg.Kind, arg.Identifier, arg.Title, arg.Description, arg.CreatedByID, arg.CreatedAt,
	)
	var t Ticket
	err := row.Scan(&t.ID, &t.ProjectID, &t.Kind, &t.Identifier, &t.Title, &t.Description, &t.CreatedByID, &t.CreatedAt)
	return t, err
}

const listTicketsByProjectAndKind = `
SELECT id, project_id, kind, identifier, title, description, created_by_id, created_at
FROM tickets WHERE project_id = $1 AND kind = $2 ORDER BY created_at
`

type ListTicketsByProjectAndKindParams struct {
	ProjectID uuid.UUID
	Kind      string
}

func (q *Queries) ListTicketsByProjectAndKind(ctx context.Context, arg ListTicketsByProjectAndKindParams) ([]Ticket, error) {
	rows, err := q.db.Query(ctx, listTicketsByProjectAndKind, arg.ProjectID, arg.Kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Ticket
	for rows.Next() {
		var t Ticket
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Kind, &t.Identifier, &t.Title, &t.Description, &t.CreatedByID, &t.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

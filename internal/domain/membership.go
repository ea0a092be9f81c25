package domain

import "time"

// Roles a member can hold in a project.
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// Membership links a user to a project with a role. At most one row exists
// per (project, user) pair, enforced by a storage uniqueness constraint.
type Membership struct {
	ProjectID ProjectID
	UserID    UserID
	Role      string
	JoinedAt  time.Time
}

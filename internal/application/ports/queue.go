package ports

import "context"

// InvitationEmail is the payload for an invitation notification send.
type InvitationEmail struct {
	ToEmail     string
	DisplayName string
	ProjectName string
	ProjectKey  string
	Token       string
}

// TaskEnqueuer enqueues async tasks (email sends). Sends are best-effort and
// at-most-once: the invitation is durable before anything is enqueued, and a
// failed enqueue or delivery never surfaces to the triggering request.
type TaskEnqueuer interface {
	EnqueueSendInvitation(ctx context.Context, email InvitationEmail) error
}

package queue

import (
	"context"

	"github.com/openplanhq/trackd/internal/application/ports"
)

// NoopEnqueuer is a no-op enqueuer when Redis/Asynq is not configured.
type NoopEnqueuer struct{}

func NewNoopEnqueuer() *NoopEnqueuer {
	return &NoopEnqueuer{}
}

func (q *NoopEnqueuer) EnqueueSendInvitation(ctx context.Context, email ports.InvitationEmail) error {
	return nil
}

var _ ports.TaskEnqueuer = (*NoopEnqueuer)(nil)

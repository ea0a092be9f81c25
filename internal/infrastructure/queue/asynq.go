package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/openplanhq/trackd/internal/application/ports"
)

const TypeSendInvitation = "email:invitation"

// invitationPayload is the JSON carried by a TypeSendInvitation task.
type invitationPayload struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	ProjectName string `json:"project_name"`
	ProjectKey  string `json:"project_key"`
	Token       string `json:"token"`
}

type TaskEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) (*TaskEnqueuer, error) {
	client := asynq.NewClient(redisOpt)
	return &TaskEnqueuer{client: client, log: log}, nil
}

func (q *TaskEnqueuer) Close() error {
	return q.client.Close()
}

func (q *TaskEnqueuer) EnqueueSendInvitation(ctx context.Context, email ports.InvitationEmail) error {
	payload, _ := json.Marshal(invitationPayload{
		Email:       email.ToEmail,
		DisplayName: email.DisplayName,
		ProjectName: email.ProjectName,
		ProjectKey:  email.ProjectKey,
		Token:       email.Token,
	})
	task := asynq.NewTask(TypeSendInvitation, payload)
	_, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		q.log.Warn().Err(err).Str("email", email.ToEmail).Msg("enqueue invitation email failed")
		return err
	}
	return nil
}

var _ ports.TaskEnqueuer = (*TaskEnqueuer)(nil)

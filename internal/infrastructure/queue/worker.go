package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Mailer delivers a single email. Implemented by mail.SendGridClient.
type Mailer interface {
	Send(ctx context.Context, to, toName, subject, body string) error
}

// Worker runs Asynq task handlers (invitation email sends). Delivery is
// at-most-once and best-effort: a failed send is logged and the task is not
// retried, since the invitation itself is already durable.
type Worker struct {
	srv       *asynq.Server
	mux       *asynq.ServeMux
	mailer    Mailer
	acceptURL string
	log       zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers. Call Run() to
// start. mailer may be nil; sends are then logged only (dev mode).
func NewWorker(redisOpt asynq.RedisClientOpt, mailer Mailer, acceptURL string, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, mailer: mailer, acceptURL: acceptURL, log: log}
	mux.HandleFunc(TypeSendInvitation, w.handleSendInvitation)
	return w
}

func (w *Worker) handleSendInvitation(ctx context.Context, t *asynq.Task) error {
	var p invitationPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("invitation task payload invalid")
		return err
	}
	link := fmt.Sprintf("%s?token=%s", w.acceptURL, p.Token)
	if w.mailer == nil {
		w.log.Info().
			Str("email", p.Email).
			Str("project_key", p.ProjectKey).
			Str("link_url", link).
			Msg("invitation email (log only; configure SendGrid for real email)")
		return nil
	}
	subject := fmt.Sprintf("You've been invited to %s (%s)", p.ProjectName, p.ProjectKey)
	body := fmt.Sprintf("You have been invited to join %s. Accept here: %s", p.ProjectName, link)
	if err := w.mailer.Send(ctx, p.Email, p.DisplayName, subject, body); err != nil {
		// Logged, not returned: delivery has no retry model and must never
		// affect the already-committed invitation.
		w.log.Warn().Err(err).Str("email", p.Email).Msg("invitation email send failed")
	}
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker, draining in-flight tasks.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}

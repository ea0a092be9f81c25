package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridClient delivers transactional email through SendGrid.
type SendGridClient struct {
	apiKey    string
	fromEmail string
	fromName  string
}

// NewSendGridClient builds a client. An empty apiKey makes Send fail; callers
// should skip constructing the client instead.
func NewSendGridClient(apiKey, fromEmail, fromName string) *SendGridClient {
	return &SendGridClient{apiKey: apiKey, fromEmail: fromEmail, fromName: fromName}
}

// Send delivers a single plain-text email.
func (c *SendGridClient) Send(ctx context.Context, to, toName, subject, body string) error {
	if c.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if to == "" {
		return fmt.Errorf("to address is empty")
	}
	message := sgmail.NewSingleEmail(
		sgmail.NewEmail(c.fromName, c.fromEmail),
		subject,
		sgmail.NewEmail(toName, to),
		body,
		fmt.Sprintf("<p>%s</p>", body),
	)
	client := sendgrid.NewSendClient(c.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d body=%s", response.StatusCode, response.Body)
	}
	return nil
}

package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender logs emails instead of sending them — used in ENV=local.
type LogSender struct {
	logger *slog.Logger
}

func (s *LogSender) Send(_ context.Context, to, subject, body string) error {
	s.logger.Info("email (local dev)", "to", to, "subject", subject, "body", body)
	return nil
}

// ResendSender sends emails via the Resend API — used in staging/production.
type ResendSender struct {
	client *resend.Client
	from   string
}

func (s *ResendSender) Send(ctx context.Context, to, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}
	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// NewSender returns a LogSender for ENV=local, ResendSender otherwise.
func NewSender(env, apiKey, from string, logger *slog.Logger) Sender {
	if env == "local" {
		return &LogSender{logger: logger}
	}
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// VerificationEmail builds the subject and body for an address
// verification message.
func VerificationEmail(link string) (subject, body string) {
	subject = "Verify your email"
	body = fmt.Sprintf(
		`<p>Welcome! Please confirm your email address by clicking the link below:</p><p><a href="%s">%s</a></p>`,
		link, link,
	)
	return subject, body
}

// ResetEmail builds the subject and body for a password reset message.
func ResetEmail(link string, ttlMinutes int) (subject, body string) {
	subject = "Reset your password"
	body = fmt.Sprintf(
		`<p>Click the link below to choose a new password (expires in %d minutes):</p><p><a href="%s">%s</a></p>`,
		ttlMinutes, link, link,
	)
	return subject, body
}

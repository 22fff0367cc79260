package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/resend/resend-go/v2"

	"warranty-backend/internal/shared/telemetry"
)

// EmailSender delivers reminder emails through Resend. In dev mode no
// provider call is made; the email is logged instead so the flow can be
// exercised without an API key.
type EmailSender struct {
	client    *resend.Client
	fromEmail string
	fromName  string
	appName   string
	isDev     bool
}

// NewEmailSender constructs an EmailSender. With an empty API key, or
// in dev mode, sends are logged rather than delivered.
func NewEmailSender(apiKey, fromEmail, fromName, appName string, isDev bool) *EmailSender {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}
	return &EmailSender{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
		appName:   appName,
		isDev:     isDev,
	}
}

// SendReminder sends one expiry reminder email.
func (s *EmailSender) SendReminder(ctx context.Context, toEmail, toName, documentName string, expiry time.Time, daysRemaining int) error {
	subject, body := reminderEmailTemplate(toName, documentName, expiry, daysRemaining, s.appName)

	if s.isDev {
		telemetry.Info("email sent (dev mode)", map[string]any{
			"type":      "warranty_reminder",
			"to":        toEmail,
			"subject":   subject,
			"days_left": daysRemaining,
		})
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email sender not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail),
		To:      []string{toEmail},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err == nil {
		telemetry.Info("email sent", map[string]any{
			"type": "warranty_reminder",
			"to":   toEmail,
		})
	}
	return err
}

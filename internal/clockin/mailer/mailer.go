// Package mailer delivers the service's outgoing email.
package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/url"

	"github.com/aussiebroadwan/clockin/pkg/slogx"
	"github.com/resend/resend-go/v2"
)

// Mailer sends transactional email.
type Mailer interface {
	SendPasswordReset(ctx context.Context, msg PasswordReset) error
}

// PasswordReset is the email an approved password request produces.
type PasswordReset struct {
	To       string
	FullName string
	Link     string
}

var resetTemplate = template.Must(template.New("reset").Parse(
	`<p>Hello {{.FullName}},</p>` +
		`<p>Your password change request was approved. Choose a new password here:</p>` +
		`<p><a href="{{.Link}}">Reset your password</a></p>` +
		`<p>The link works once and expires soon. If you did not ask for this, tell an administrator.</p>`,
))

func renderPasswordReset(msg PasswordReset) (string, error) {
	var buf bytes.Buffer
	if err := resetTemplate.Execute(&buf, msg); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ResetLink builds the client URL carrying a recovery token.
func ResetLink(publicURL, email, tokenHash string) string {
	q := url.Values{}
	q.Set("token_hash", tokenHash)
	q.Set("type", "recovery")
	q.Set("email", email)
	return publicURL + "/reset-password?" + q.Encode()
}

// Resend sends through the Resend API.
type Resend struct {
	client *resend.Client
	from   string
}

func NewResend(client *resend.Client, from string) *Resend {
	return &Resend{client: client, from: from}
}

func (m *Resend) SendPasswordReset(ctx context.Context, msg PasswordReset) error {
	body, err := renderPasswordReset(msg)
	if err != nil {
		return fmt.Errorf("render password reset: %w", err)
	}

	_, err = m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{msg.To},
		Subject: "Reset your password",
		Html:    body,
	})
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}

// ErrNoProvider is returned when no mail provider is configured outside
// development.
var ErrNoProvider = errors.New("no mail provider configured")

// Log stands in when no API key is configured. In development it logs the
// reset link so the flow stays usable. Otherwise it refuses to send, so an
// approval never reports a link nobody received.
type Log struct {
	Dev bool
}

func (m Log) SendPasswordReset(ctx context.Context, msg PasswordReset) error {
	if !m.Dev {
		return ErrNoProvider
	}
	slogx.FromContext(ctx).Info("password reset email not sent, logging link",
		slog.String("to", msg.To),
		slog.String("link", msg.Link),
	)
	return nil
}

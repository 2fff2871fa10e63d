// Package mailer sends templated emails through the email collaborator.
package mailer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/freecontest/userbackend/internal/userbackend/domain"
	"github.com/freecontest/userbackend/pkg/httpx"
	"github.com/freecontest/userbackend/pkg/slogx"
)

const pathSend = "/email/v1/send"

// Template ids used by the email collaborator.
const (
	DefaultSignupTemplate        = 10001
	DefaultChangeEmailTemplate   = 10002
	DefaultResetPasswordTemplate = 10003
)

// Templates maps each flow to a template id.
type Templates struct {
	Signup        int
	ChangeEmail   int
	ResetPassword int
}

func (t Templates) withDefaults() Templates {
	if t.Signup == 0 {
		t.Signup = DefaultSignupTemplate
	}
	if t.ChangeEmail == 0 {
		t.ChangeEmail = DefaultChangeEmailTemplate
	}
	if t.ResetPassword == 0 {
		t.ResetPassword = DefaultResetPasswordTemplate
	}
	return t
}

// Sender delivers the OTP emails of the auth flows.
type Sender interface {
	SendSignupOTP(ctx context.Context, to, displayedName, code string) error
	SendChangeEmailOTP(ctx context.Context, to, displayedName, username, code string) error
	SendResetPasswordOTP(ctx context.Context, to, displayedName, username, code string) error
}

type Client struct {
	http      *httpx.EnvelopeClient
	sender    string
	templates Templates
}

var _ Sender = (*Client)(nil)

func NewClient(origin, senderEmail string, templates Templates, timeout time.Duration) *Client {
	return &Client{
		http:      httpx.NewEnvelopeClient(origin, timeout),
		sender:    senderEmail,
		templates: templates.withDefaults(),
	}
}

type sendRequest struct {
	SenderEmail    string            `json:"sender_email"`
	RecipientEmail string            `json:"recipient_email"`
	TemplateID     int               `json:"template_id"`
	Params         map[string]string `json:"params"`
}

func (c *Client) SendSignupOTP(ctx context.Context, to, displayedName, code string) error {
	return c.send(ctx, to, c.templates.Signup, map[string]string{
		"displayed_name": displayedName,
		"otp":            code,
	})
}

func (c *Client) SendChangeEmailOTP(ctx context.Context, to, displayedName, username, code string) error {
	return c.send(ctx, to, c.templates.ChangeEmail, map[string]string{
		"displayed_name": displayedName,
		"username":       username,
		"new_email":      to,
		"otp":            code,
	})
}

func (c *Client) SendResetPasswordOTP(ctx context.Context, to, displayedName, username, code string) error {
	return c.send(ctx, to, c.templates.ResetPassword, map[string]string{
		"displayed_name": displayedName,
		"username":       username,
		"otp":            code,
	})
}

func (c *Client) send(ctx context.Context, to string, template int, params map[string]string) error {
	_, err := c.http.Post(ctx, pathSend, sendRequest{
		SenderEmail:    c.sender,
		RecipientEmail: to,
		TemplateID:     template,
		Params:         params,
	})
	if err == nil {
		return nil
	}

	var response any
	var re *httpx.RemoteError
	if errors.As(err, &re) {
		response = re.Response
	}
	slogx.FromContext(ctx).Error("email_send_failed",
		slog.Int("template_id", template),
		slog.Any("response", response),
		slog.String("error", err.Error()),
	)

	return domain.Wrap(
		domain.KindEmailService,
		"Received non-zero code from Email Service",
		err,
		map[string]any{"response": response},
	)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

// ResendCodeMailer delivers verification codes through the Resend API.
type ResendCodeMailer struct {
	client *resend.Client
	from   string
}

func NewResendCodeMailer(apiKey string, from string) *ResendCodeMailer {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return &ResendCodeMailer{}
	}
	return &ResendCodeMailer{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (m *ResendCodeMailer) Configured() bool {
	return m != nil && m.client != nil
}

func (m *ResendCodeMailer) SendVerificationCode(ctx context.Context, email string, code string, expiresAt time.Time) error {
	if !m.Configured() {
		return errors.New("mailer not configured")
	}
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{email},
		Subject: "Your verification code",
		Html: fmt.Sprintf(
			"<p>Your verification code is <strong>%s</strong>.</p><p>It expires at %s.</p>",
			code, expiresAt.UTC().Format(time.RFC1123),
		),
		Text: fmt.Sprintf("Your verification code is %s. It expires at %s.",
			code, expiresAt.UTC().Format(time.RFC1123)),
	}
	if _, err := m.client.Emails.Send(params); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	return nil
}

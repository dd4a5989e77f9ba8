package email

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/hotelhub/hotelhub/internal/config"
	"github.com/hotelhub/hotelhub/internal/logger"
	"github.com/wneessen/go-mail"
)

// Sender delivers a single rendered message
type Sender interface {
	IsEnabled() bool
	GetFromAddress() string
	SendEmail(ctx context.Context, from, to, subject, htmlContent, textContent string) error
}

// EmailClient sends mail over SMTP, retrying transient failures with
// exponential backoff.
type EmailClient struct {
	cfg    config.EmailConfig
	logger *logger.Logger
}

func NewEmailClient(cfg *config.Configuration, logger *logger.Logger) Sender {
	return &EmailClient{
		cfg:    cfg.Email,
		logger: logger,
	}
}

func (c *EmailClient) IsEnabled() bool {
	return c.cfg.Enabled && c.cfg.SMTPHost != ""
}

func (c *EmailClient) GetFromAddress() string {
	return c.cfg.FromAddress
}

func (c *EmailClient) SendEmail(ctx context.Context, from, to, subject, htmlContent, textContent string) error {
	if !c.IsEnabled() {
		return fmt.Errorf("email client is disabled")
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, textContent)
	if htmlContent != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, htmlContent)
	}

	client, err := mail.NewClient(c.cfg.SMTPHost,
		mail.WithPort(c.cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(c.cfg.SMTPUsername),
		mail.WithPassword(c.cfg.SMTPPassword),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.cfg.MaxRetries),
		ctx,
	)

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := client.DialAndSendWithContext(ctx, msg)
		if err != nil {
			c.logger.Warnw("smtp delivery attempt failed",
				"attempt", attempt,
				"to", to,
				"error", err,
			)
		}
		return err
	}, policy)
}

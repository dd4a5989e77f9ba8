package email

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/hotelhub/hotelhub/internal/logger"
)

//go:embed templates/*
var templates embed.FS

// Email renders and sends transactional mail
type Email struct {
	client Sender
	logger *logger.Logger
}

func NewEmail(client Sender, logger *logger.Logger) *Email {
	return &Email{
		client: client,
		logger: logger,
	}
}

// SendEmail sends a plain text email. A disabled client is not an error.
func (s *Email) SendEmail(ctx context.Context, req SendEmailRequest) (*SendEmailResponse, error) {
	return s.send(ctx, req.FromAddress, req.ToAddress, req.Subject, "", req.Text)
}

// SendEmailWithTemplate renders <template>.html and <template>.txt and sends both parts
func (s *Email) SendEmailWithTemplate(ctx context.Context, req SendEmailWithTemplateRequest) (*SendEmailResponse, error) {
	htmlContent, err := s.readTemplate(req.Template + ".html")
	if err != nil {
		return &SendEmailResponse{Error: err.Error()}, err
	}
	textContent, err := s.readTemplate(req.Template + ".txt")
	if err != nil {
		return &SendEmailResponse{Error: err.Error()}, err
	}

	return s.send(ctx, req.FromAddress, req.ToAddress, req.Subject,
		replacePlaceholders(htmlContent, req.Data),
		replacePlaceholders(textContent, req.Data),
	)
}

func (s *Email) send(ctx context.Context, from, to, subject, htmlContent, textContent string) (*SendEmailResponse, error) {
	if !s.client.IsEnabled() {
		s.logger.Warnw("email client is disabled, skipping email send",
			"to", to,
			"subject", subject,
		)
		return &SendEmailResponse{Error: "email client is disabled"}, nil
	}

	if from == "" {
		from = s.client.GetFromAddress()
	}

	if err := s.client.SendEmail(ctx, from, to, subject, htmlContent, textContent); err != nil {
		s.logger.Errorw("failed to send email",
			"error", err,
			"to", to,
			"subject", subject,
		)
		return &SendEmailResponse{Error: err.Error()}, err
	}

	s.logger.Infow("email sent", "to", to, "subject", subject)
	return &SendEmailResponse{Success: true}, nil
}

func (s *Email) readTemplate(name string) (string, error) {
	content, err := templates.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", name, err)
	}
	return string(content), nil
}

func replacePlaceholders(template string, data map[string]interface{}) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, fmt.Sprintf("{{%s}}", key), fmt.Sprintf("%v", value))
	}
	return result
}

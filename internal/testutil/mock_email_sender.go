package testutil

import (
	"context"
	"sync"

	"github.com/hotelhub/hotelhub/internal/email"
)

var _ email.Sender = (*MockEmailSender)(nil)

// SentEmail is one message captured by MockEmailSender
type SentEmail struct {
	From    string
	To      string
	Subject string
	HTML    string
	Text    string
}

// MockEmailSender captures outgoing mail instead of dialing SMTP
type MockEmailSender struct {
	mu      sync.Mutex
	enabled bool
	from    string
	sent    []SentEmail
	// Err, when set, is returned by every SendEmail call
	Err error
}

func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{
		enabled: true,
		from:    "noreply@hotelhub.test",
	}
}

func (m *MockEmailSender) IsEnabled() bool {
	return m.enabled
}

func (m *MockEmailSender) GetFromAddress() string {
	return m.from
}

func (m *MockEmailSender) SendEmail(ctx context.Context, from, to, subject, htmlContent, textContent string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.sent = append(m.sent, SentEmail{
		From:    from,
		To:      to,
		Subject: subject,
		HTML:    htmlContent,
		Text:    textContent,
	})
	return nil
}

func (m *MockEmailSender) Sent() []SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentEmail, len(m.sent))
	copy(out, m.sent)
	return out
}

func (m *MockEmailSender) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = nil
	m.Err = nil
}

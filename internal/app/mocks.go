package app

import (
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/logger"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/mailer"
)

// MockMailer logs outgoing mail instead of sending it. Used in development
// when SMTP is not configured.
type MockMailer struct{}

func (m *MockMailer) Send(email *mailer.Email) error {
	logger.Info("[MOCK MAILER] email not sent", "to", email.To, "subject", email.Subject)
	return nil
}

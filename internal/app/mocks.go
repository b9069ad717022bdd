package app

import "fichaje_backend/internal/logger"

// LoggingEmailProvider is used for local development without SMTP credentials.
type LoggingEmailProvider struct{}

func (m *LoggingEmailProvider) Send(to, subject, body string) error {
	logger.Info("Email dispatched to log", "to", to, "subject", subject)
	return nil
}

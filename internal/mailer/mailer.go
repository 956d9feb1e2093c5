// Package mailer отправляет письма с кодами подтверждения.
package mailer

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/aidar/lineup-service/internal/config"
)

// Mailer отправляет письма через SMTP. Без SMTP_HOST письма не отправляются,
// а только отмечаются в логе
type Mailer struct {
	host     string
	port     string
	from     string
	username string
	password string
	logger   *slog.Logger
	send     func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// New создает Mailer по настройкам SMTP
func New(cfg config.SMTPConfig, logger *slog.Logger) *Mailer {
	if cfg.Host == "" {
		logger.Warn("SMTP_HOST is not set, verification emails are not delivered")
	}
	return &Mailer{
		host:     cfg.Host,
		port:     cfg.Port,
		from:     cfg.From,
		username: cfg.Username,
		password: cfg.Password,
		logger:   logger,
		send:     smtp.SendMail,
	}
}

// Enabled сообщает, настроена ли реальная отправка
func (m *Mailer) Enabled() bool {
	return m.host != ""
}

// SendEmail отправляет письмо
func (m *Mailer) SendEmail(to, subject, body string) error {
	if strings.ContainsAny(to, "\r\n") || strings.ContainsAny(subject, "\r\n") {
		return fmt.Errorf("invalid email header value")
	}

	if !m.Enabled() {
		// Тело письма содержит действующий код, поэтому только на уровне Debug
		m.logger.Info("Email not sent, SMTP disabled", "to", to, "subject", subject)
		m.logger.Debug("Undelivered email body", "to", to, "body", body)
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := m.send(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

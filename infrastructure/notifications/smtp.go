// Package notifications delivers reminder and alert mail.
package notifications

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"moodlog-backend/application/ports"
)

// SMTPConfig holds the outbound mail settings
type SMTPConfig struct {
	Host           string
	Port           int
	SenderEmail    string
	SenderPassword string
}

// Configured reports whether the settings are complete enough to send
func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.SenderEmail != ""
}

// SMTPSender implements the EmailSender interface over plain SMTP with
// STARTTLS and password auth
type SMTPSender struct {
	config SMTPConfig
	logger *zap.Logger
}

var _ ports.EmailSender = (*SMTPSender)(nil)

// NewSMTPSender creates an SMTP-backed sender
func NewSMTPSender(config SMTPConfig, logger *zap.Logger) *SMTPSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPSender{config: config, logger: logger}
}

// Send delivers a plain-text message to the given recipients
func (s *SMTPSender) Send(ctx context.Context, to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	auth := smtp.PlainAuth("", s.config.SenderEmail, s.config.SenderPassword, s.config.Host)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.config.SenderEmail)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	if err := smtp.SendMail(addr, auth, s.config.SenderEmail, to, []byte(msg.String())); err != nil {
		s.logger.Error("Failed to send mail",
			zap.String("subject", subject),
			zap.Int("recipients", len(to)),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send mail: %w", err)
	}

	s.logger.Info("Mail sent",
		zap.String("subject", subject),
		zap.Int("recipients", len(to)),
	)
	return nil
}

// NoopSender drops mail. It backs deployments without SMTP settings.
type NoopSender struct {
	logger *zap.Logger
}

var _ ports.EmailSender = (*NoopSender)(nil)

// NewNoopSender creates a sender that only logs
func NewNoopSender(logger *zap.Logger) *NoopSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoopSender{logger: logger}
}

// Send logs the message and drops it
func (n *NoopSender) Send(ctx context.Context, to []string, subject, body string) error {
	n.logger.Info("Email not configured, dropping message",
		zap.String("subject", subject),
		zap.Int("recipients", len(to)),
	)
	return nil
}

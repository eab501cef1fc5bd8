package email

import (
	"context"
	"fmt"
	"net/smtp"
)

// Config holds the settings for the SMTP mail collaborator.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	// BaseURL is the public address of the web app, used to build the links
	// embedded in verification and reset emails.
	BaseURL string
}

// SMTPMailer sends transactional mail over plain SMTP. It satisfies
// ports.Mailer; async delivery is layered on top by the queue dispatcher.
type SMTPMailer struct {
	cfg Config
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendVerificationEmail(_ context.Context, to, name, token string) error {
	subject := "Verify your email"
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nWelcome aboard! Confirm your email to start planning trips:\r\n%s/auth/verify-email?token=%s\r\n",
		name, m.cfg.BaseURL, token,
	)
	return m.send(to, subject, body)
}

func (m *SMTPMailer) SendPasswordResetEmail(_ context.Context, to, name, token string) error {
	subject := "Reset your password"
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nUse the link below to choose a new password. It expires in 10 minutes:\r\n%s/reset-password?token=%s\r\n\r\nIf you did not request this, you can ignore this email.\r\n",
		name, m.cfg.BaseURL, token,
	)
	return m.send(to, subject, body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	addr := m.cfg.Host + ":" + m.cfg.Port
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		m.cfg.From, to, subject, body,
	))

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

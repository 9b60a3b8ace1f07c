package notify

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// SMTPMailer delivers plain-text mail through an SMTP relay.
type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func (m SMTPMailer) Send(to, subject, body string) error {
	addr := m.Host + ":" + m.Port
	msg := strings.Join([]string{
		"From: " + m.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}
	if err := smtp.SendMail(addr, auth, m.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("notify: send mail to %s: %w", to, err)
	}
	return nil
}

// LogMailer writes the mail to the log instead of delivering it. Used in
// dev where no relay is configured; the verification code shows up in
// the log output.
type LogMailer struct {
	Logger *slog.Logger
}

func (m LogMailer) Send(to, subject, body string) error {
	if m.Logger != nil {
		m.Logger.Info("mail suppressed", "to", to, "subject", subject, "body", body)
	}
	return nil
}

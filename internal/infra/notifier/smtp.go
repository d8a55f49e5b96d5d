package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"
)

// SMTPConfig contains configuration for outbound mail delivery.
type SMTPConfig struct {
	// Host is the SMTP server hostname
	Host string

	// Port is the SMTP server port
	Port int

	// Username authenticates against the server; empty disables AUTH
	Username string

	// Password is the AUTH password
	Password string

	// From is the envelope sender and From header address
	From string
}

// SMTPMailer delivers publication announcements over SMTP.
type SMTPMailer struct {
	config SMTPConfig
	// send is swapped in tests; defaults to smtp.SendMail.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer creates a new SMTPMailer with the specified configuration.
func NewSMTPMailer(config SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		config: config,
		send:   smtp.SendMail,
	}
}

// Send delivers one message to every address in to.
// An empty recipient list is a no-op.
func (m *SMTPMailer) Send(ctx context.Context, to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	var auth smtp.Auth
	if m.config.Username != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}

	msg := buildMessage(m.config.From, to, subject, body)
	addr := net.JoinHostPort(m.config.Host, fmt.Sprintf("%d", m.config.Port))

	if err := m.send(addr, auth, m.config.From, to, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	slog.Info("mail notification sent",
		slog.Int("recipients", len(to)),
		slog.String("subject", subject))
	return nil
}

// buildMessage assembles an RFC 5322 message. Recipients go in a single To
// header; the envelope carries the full list either way.
func buildMessage(from string, to []string, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

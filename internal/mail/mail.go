// Package mail delivers contact-form submissions.
package mail

import (
	"fmt"
	"net/smtp"

	"github.com/averyk/folio/internal/apperr"
)

// Message is one contact-form submission.
type Message struct {
	Name    string
	Email   string
	Content string
}

// Sender delivers a contact message to the site owner.
type Sender interface {
	Send(msg Message) error
}

// SMTPConfig holds the connection settings for SMTPSender.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	To       string `yaml:"to"`
}

// Configured reports whether enough settings are present to send mail.
func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.Username != "" && c.Password != "" && c.To != ""
}

// SMTPSender sends contact mail over plain-auth SMTP.
type SMTPSender struct {
	cfg SMTPConfig
}

// NewSMTPSender creates a sender from config.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send delivers the message, or returns apperr.ErrUnavailable when SMTP is
// not configured. The contact endpoint degrades to 503 in that case rather
// than failing at startup.
func (s *SMTPSender) Send(msg Message) error {
	if !s.cfg.Configured() {
		return fmt.Errorf("mail: smtp not configured: %w", apperr.ErrUnavailable)
	}

	subject := fmt.Sprintf("Site contact: %s", msg.Name)
	body := fmt.Sprintf("New contact form submission:\n\nName: %s\nEmail: %s\n\n%s\n",
		msg.Name, msg.Email, msg.Content)

	raw := []byte("To: " + s.cfg.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + s.cfg.Username + "\r\n" +
		"Reply-To: " + msg.Email + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	if err := smtp.SendMail(addr, auth, s.cfg.Username, []string{s.cfg.To}, raw); err != nil {
		return fmt.Errorf("mail: send: %w", err)
	}
	return nil
}

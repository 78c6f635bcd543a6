// Package email sends event-reminder digests via SMTP. Disabled unless
// an SMTP host and sender are configured.
package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"talkspot/api/internal/notify"
)

// Config holds SMTP configuration.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

// Service provides email sending.
type Service struct {
	config Config
	server string
	auth   smtp.Auth
}

func NewService(config Config) *Service {
	auth := smtp.PlainAuth("", config.Username, config.Password, config.Host)

	return &Service{
		config: config,
		server: config.Host + ":" + config.Port,
		auth:   auth,
	}
}

// IsConfigured returns true if email is configured.
func (s *Service) IsConfigured() bool {
	return s.config.Host != "" && s.config.Port != "" && s.config.From != ""
}

// SendEmail sends a plain text email.
func (s *Service) SendEmail(to []string, subject, body string) error {
	if !s.IsConfigured() {
		return fmt.Errorf("email not configured")
	}

	from := s.config.From
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.From)
	}

	msg := []byte(fmt.Sprintf(
		"To: %s\r\n"+
			"From: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/plain; charset=\"UTF-8\"\r\n"+
			"\r\n"+
			"%s\r\n",
		strings.Join(to, ", "), from, subject, body))

	if err := smtp.SendMail(s.server, s.auth, s.config.From, to, msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// SendReminderDigest mails the recipient their upcoming event reminders.
func (s *Service) SendReminderDigest(to, firstName string, reminders []notify.Notification) error {
	if len(reminders) == 0 {
		return nil
	}
	body := BuildReminderDigest(firstName, reminders)
	return s.SendEmail([]string{to}, "Your upcoming events", body)
}

// BuildReminderDigest renders the plain-text digest body.
func BuildReminderDigest(firstName string, reminders []notify.Notification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nYou have %d upcoming event(s):\n\n", firstName, len(reminders))
	for _, reminder := range reminders {
		fmt.Fprintf(&b, "  - %s\n", reminder.Text)
	}
	b.WriteString("\nSee the events calendar for details.\n")
	return b.String()
}

package report

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-edge/internal/config"
)

// Sender delivers the rendered report over SMTP.
type Sender struct {
	cfg    *config.EmailConfig
	logger *logrus.Logger
}

// NewSender creates an email sender from configuration.
func NewSender(cfg *config.EmailConfig, logger *logrus.Logger) *Sender {
	if logger == nil {
		logger = logrus.New()
	}
	return &Sender{cfg: cfg, logger: logger}
}

// Send delivers the HTML body to the configured recipients. SendMail
// negotiates STARTTLS with the server before authenticating.
func (s *Sender) Send(subject, htmlBody string) error {
	if !s.cfg.Enabled {
		s.logger.Debug("Email delivery disabled, skipping send")
		return nil
	}

	headers := []string{
		fmt.Sprintf("From: %s", s.cfg.From),
		fmt.Sprintf("To: %s", strings.Join(s.cfg.To, ", ")),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
	}
	msg := strings.Join(headers, "\r\n") + "\r\n\r\n" + htmlBody

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	if err := smtp.SendMail(addr, auth, s.cfg.From, s.cfg.To, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send report email: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"recipients": len(s.cfg.To),
		"subject":    subject,
	}).Info("Report email sent")
	return nil
}

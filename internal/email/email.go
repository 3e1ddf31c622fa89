package email

import (
	"fmt"
	"net/smtp"

	"scholarhub/internal/config"
)

// Service sends transactional mail over plain SMTP.
type Service struct {
	cfg config.SMTPConfig
}

func NewService(cfg config.SMTPConfig) *Service {
	return &Service{cfg: cfg}
}

// SendNotification delivers a notification as an HTML email. Returns an error
// when SMTP is not configured so callers can log and move on.
func (s *Service) SendNotification(to, title, message string) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("smtp is not configured")
	}
	subject := fmt.Sprintf("Notification: %s", title)
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #4a90e2;">%s</h2>
        <p>%s</p>
        <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
        <p style="color: #999; font-size: 12px;">This is an automated email. Please do not reply.</p>
    </div>
</body>
</html>
`, title, message)
	return s.send(to, subject, body)
}

func (s *Service) send(to, subject, htmlBody string) error {
	addr := s.cfg.Host + ":" + s.cfg.Port
	msg := []byte("From: " + s.cfg.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" + htmlBody)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

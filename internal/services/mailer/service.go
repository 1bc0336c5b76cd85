// -----------------------------------------------------------------------
// Mailer Service - SMTP email sending for report delivery
// Credentials come from config (GMAIL_USER / GMAIL_APP_PASSWORD env)
// -----------------------------------------------------------------------

package mailer

import (
	"crypto/rand"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/marketbrief/internal/common"
	"github.com/ternarybob/marketbrief/internal/interfaces"
)

// Service sends email through the configured SMTP relay.
type Service struct {
	config common.SMTPConfig
	logger arbor.ILogger
}

// NewService creates a mailer from SMTP config.
func NewService(config common.SMTPConfig, logger arbor.ILogger) *Service {
	return &Service{
		config: config,
		logger: logger,
	}
}

// IsConfigured checks whether the minimum SMTP settings are present.
func (s *Service) IsConfigured() bool {
	return s.config.Host != "" && s.config.Username != "" && s.config.Password != "" && s.config.From != ""
}

// Send delivers a plain-text email with the given file attachments.
// A transport or authentication failure comes straight back to the
// caller; there is no retry.
func (s *Service) Send(to []string, subject, body string, attachments []string) error {
	if !s.IsConfigured() {
		return fmt.Errorf("SMTP not configured: host, username, password and from are required")
	}
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}

	msg, err := s.buildMessage(to, subject, body, attachments)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	if s.config.UseTLS {
		err = s.sendWithTLS(addr, auth, to, msg)
	} else {
		err = smtp.SendMail(addr, auth, s.config.From, to, []byte(msg))
	}
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("to", strings.Join(to, ",")).
		Str("subject", subject).
		Int("attachments", len(attachments)).
		Msg("Email sent")
	return nil
}

// buildMessage assembles the MIME message. With attachments the body is
// multipart/mixed; without, a plain text message.
func (s *Service) buildMessage(to []string, subject, body string, attachments []string) (string, error) {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(to, ", ")))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))

	if len(attachments) == 0 {
		msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
		msg.WriteString("\r\n")
		msg.WriteString(body)
		return msg.String(), nil
	}

	boundary := generateBoundary()
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=\"%s\"\r\n", boundary))
	msg.WriteString("\r\n")

	// Body part
	msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("Content-Transfer-Encoding: base64\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(encodeBase64WithLineBreaks([]byte(body)))
	msg.WriteString("\r\n")

	// Attachment parts
	for _, path := range attachments {
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read attachment %s: %w", path, err)
		}
		filename := filepath.Base(path)

		msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
		msg.WriteString(fmt.Sprintf("Content-Type: %s; name=\"%s\"\r\n", contentTypeFor(filename), filename))
		msg.WriteString("Content-Transfer-Encoding: base64\r\n")
		msg.WriteString(fmt.Sprintf("Content-Disposition: attachment; filename=\"%s\"\r\n", filename))
		msg.WriteString("\r\n")
		msg.WriteString(encodeBase64WithLineBreaks(content))
		msg.WriteString("\r\n")
	}

	msg.WriteString(fmt.Sprintf("--%s--\r\n", boundary))
	return msg.String(), nil
}

// sendWithTLS sends email over a direct TLS connection (Gmail port 465),
// falling back to STARTTLS when the direct dial fails.
func (s *Service) sendWithTLS(addr string, auth smtp.Auth, to []string, msg string) error {
	host := strings.Split(addr, ":")[0]

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return s.sendWithSTARTTLS(addr, auth, to, msg)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	return s.transmit(client, auth, to, msg)
}

// sendWithSTARTTLS sends email using a STARTTLS upgrade (port 587).
func (s *Service) sendWithSTARTTLS(addr string, auth smtp.Auth, to []string, msg string) error {
	host := strings.Split(addr, ":")[0]

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	return s.transmit(client, auth, to, msg)
}

func (s *Service) transmit(client *smtp.Client, auth smtp.Auth, to []string, msg string) error {
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	if err := client.Mail(s.config.From); err != nil {
		return fmt.Errorf("failed to set mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to start data: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}

func contentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return "text/csv"
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}

// generateBoundary creates a unique MIME boundary string.
func generateBoundary() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "marketbrief_boundary_fallback"
	}
	return fmt.Sprintf("marketbrief_%x", b)
}

// encodeBase64WithLineBreaks encodes content as base64 with 76-char
// line breaks per RFC 2045.
func encodeBase64WithLineBreaks(content []byte) string {
	encoded := base64.StdEncoding.EncodeToString(content)

	var result strings.Builder
	const lineLen = 76

	for i := 0; i < len(encoded); i += lineLen {
		end := i + lineLen
		if end > len(encoded) {
			end = len(encoded)
		}
		result.WriteString(encoded[i:end])
		if end < len(encoded) {
			result.WriteString("\r\n")
		}
	}

	return result.String()
}

var _ interfaces.MailService = (*Service)(nil)

package notifier

import (
	"context"
	"crypto/tls"
	"fmt"
	"html"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
}

// EmailSender sends HTML mail over SMTP
type EmailSender struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailSender creates a new EmailSender
func NewEmailSender(config SMTPConfig, logger zerolog.Logger) *EmailSender {
	return &EmailSender{config: config, logger: logger}
}

// Channel implements Sender
func (s *EmailSender) Channel() string {
	return "email"
}

// Send implements Sender. The returned reference is the Message-ID header.
func (s *EmailSender) Send(ctx context.Context, msg Message) (string, error) {
	if s.config.Host == "" || s.config.FromEmail == "" {
		return "", ErrNotConfigured
	}

	messageID := fmt.Sprintf("<%d.report@%s>", time.Now().UnixNano(), s.config.Host)
	body := buildMessage(s.config, msg, messageID)

	if err := s.deliver(ctx, msg.To, body); err != nil {
		s.logger.Error().Err(err).Str("to", msg.To).Msg("Failed to send email")
		return "", err
	}

	s.logger.Info().Str("to", msg.To).Str("messageId", messageID).Msg("Report email sent")
	return messageID, nil
}

// ReportEmailHTML renders the report notification body
func ReportEmailHTML(name, reportURL string) string {
	return fmt.Sprintf(`<html>
<body>
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h2 style="color: #333;">Your College Prediction Report</h2>
		<p>Hello %s,</p>
		<p>Here is your college prediction report.</p>
		<div style="text-align: center; margin: 30px 0;">
			<a href="%s" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Download Report</a>
		</div>
		<p>Best regards,<br>College Predictor</p>
	</div>
</body>
</html>`, html.EscapeString(name), html.EscapeString(reportURL))
}

// buildMessage renders headers and body in a fixed order
func buildMessage(config SMTPConfig, msg Message, messageID string) []byte {
	headers := [][2]string{
		{"From", fmt.Sprintf("%s <%s>", config.FromName, config.FromEmail)},
		{"To", msg.To},
		{"Subject", msg.Subject},
		{"Message-ID", messageID},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=UTF-8"},
	}

	var b strings.Builder
	for _, h := range headers {
		b.WriteString(h[0])
		b.WriteString(": ")
		b.WriteString(h[1])
		b.WriteString("\r\n")
	}
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return []byte(b.String())
}

func (s *EmailSender) deliver(ctx context.Context, to string, message []byte) error {
	serverAddress := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", serverAddress)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	tlsConfig := &tls.Config{ServerName: s.config.Host}
	if s.config.UseTLS {
		conn = tls.Client(conn, tlsConfig)
	}

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if !s.config.UseTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(tlsConfig); err != nil {
				return fmt.Errorf("failed to start TLS: %w", err)
			}
		}
	}

	if s.config.Username != "" {
		auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := w.Write(message); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}

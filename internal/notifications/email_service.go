package notifications

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"
	"strconv"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/config"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/pkg/logger"
)

type EmailService interface {
	SendNotification(ctx context.Context, notification *EmailNotification) error
	SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
}

func NewSMTPConfig(cfg config.EmailConfig) *SMTPConfig {
	return &SMTPConfig{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.FromEmail,
		FromName:  cfg.FromName,
		UseTLS:    true,
	}
}

func validateSMTPConfig(config *SMTPConfig) error {
	if config == nil {
		return fmt.Errorf("SMTP config is nil")
	}
	if config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("SMTP port must be between 1 and 65535")
	}
	if config.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}

type emailTemplate struct {
	html *template.Template
	text *texttemplate.Template
}

var emailTemplates = map[NotificationType]emailTemplate{
	NotificationTypeBookingCreated: {
		html: template.Must(template.New("booking_created").Parse(`
<h2>Booking confirmed</h2>
<p>Hi {{.name}},</p>
<p>Your ticket <strong>{{.data.booking_ref}}</strong> for <strong>{{.data.route}}</strong> is booked.</p>
<p>Departure: {{.data.departure}}<br>Seats: {{.data.seats}}<br>Total: {{.data.total_payment}} {{.data.currency}} ({{.data.payment_status}})</p>
<p>Have a good trip.</p>`)),
		text: texttemplate.Must(texttemplate.New("booking_created").Parse(
			"Hi {{.name}},\n\nYour ticket {{.data.booking_ref}} for {{.data.route}} is booked.\nDeparture: {{.data.departure}}\nSeats: {{.data.seats}}\nTotal: {{.data.total_payment}} {{.data.currency}} ({{.data.payment_status}})\n\nHave a good trip.")),
	},
	NotificationTypeBookingCancelled: {
		html: template.Must(template.New("booking_cancelled").Parse(`
<h2>Booking cancelled</h2>
<p>Hi {{.name}},</p>
<p>Your ticket <strong>{{.data.booking_ref}}</strong> for <strong>{{.data.route}}</strong> departing {{.data.departure}} has been cancelled.</p>
<p>Seats {{.data.seats}} are released.</p>`)),
		text: texttemplate.Must(texttemplate.New("booking_cancelled").Parse(
			"Hi {{.name}},\n\nYour ticket {{.data.booking_ref}} for {{.data.route}} departing {{.data.departure}} has been cancelled.\nSeats {{.data.seats}} are released.")),
	},
	NotificationTypePasswordReset: {
		html: template.Must(template.New("password_reset").Parse(`
<h2>Password reset</h2>
<p>Hi {{.name}},</p>
<p>The password of <strong>{{.data.username}}</strong> was reset to <strong>{{.data.password}}</strong>.</p>
<p>Change it after signing in.</p>`)),
		text: texttemplate.Must(texttemplate.New("password_reset").Parse(
			"Hi {{.name}},\n\nThe password of {{.data.username}} was reset to {{.data.password}}.\nChange it after signing in.")),
	},
}

// RenderContent builds the html and text bodies of a notification.
func RenderContent(notification *EmailNotification) (string, string, error) {
	tmpl, ok := emailTemplates[notification.Type]
	if !ok {
		return "", "", fmt.Errorf("no template for notification type %s", notification.Type)
	}

	data := map[string]interface{}{
		"name": notification.RecipientName,
		"data": notification.TemplateData,
	}
	var htmlBuf, textBuf bytes.Buffer
	if err := tmpl.html.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute HTML template: %w", err)
	}
	if err := tmpl.text.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute text template: %w", err)
	}
	return strings.TrimSpace(htmlBuf.String()), textBuf.String(), nil
}

type SMTPEmailService struct {
	config *SMTPConfig
}

func NewSMTPEmailService(config *SMTPConfig) (*SMTPEmailService, error) {
	if err := validateSMTPConfig(config); err != nil {
		return nil, fmt.Errorf("invalid SMTP configuration: %w", err)
	}
	return &SMTPEmailService{config: config}, nil
}

func (s *SMTPEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	htmlBody, textBody, err := RenderContent(notification)
	if err != nil {
		return fmt.Errorf("failed to generate email content: %w", err)
	}
	return s.SendHTML(ctx, notification.RecipientEmail, notification.Subject, htmlBody, textBody)
}

func (s *SMTPEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	message := s.buildMessage(to, subject, htmlBody, textBody)

	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var err error
	if s.config.UseTLS {
		err = s.sendWithSTARTTLS(addr, auth, to, message)
	} else {
		err = smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	}
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.GetDefault().Info("Email sent", "to", to, "subject", subject)
	return nil
}

func (s *SMTPEmailService) sendWithSTARTTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Quit()

	if err = client.StartTLS(&tls.Config{ServerName: s.config.Host}); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}
	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}
	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return w.Close()
}

func (s *SMTPEmailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	boundary := "boundary_" + strconv.FormatInt(time.Now().UnixNano(), 10)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)

	if textBody != "" {
		fmt.Fprintf(&b, "--%s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n", boundary, textBody)
	}
	if htmlBody != "" {
		fmt.Fprintf(&b, "--%s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n", boundary, htmlBody)
	}
	fmt.Fprintf(&b, "--%s--\r\n", boundary)

	return []byte(b.String())
}

// LogEmailService logs e-mails instead of sending them. Used when no SMTP
// host is configured.
type LogEmailService struct{}

func NewLogEmailService() *LogEmailService {
	return &LogEmailService{}
}

func (s *LogEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	htmlBody, textBody, err := RenderContent(notification)
	if err != nil {
		return err
	}
	return s.SendHTML(ctx, notification.RecipientEmail, notification.Subject, htmlBody, textBody)
}

func (s *LogEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	logger.GetDefault().Info("Email not sent, SMTP not configured", "to", to, "subject", subject)
	logger.GetDefault().Debug("Email body", "text", textBody)
	return nil
}

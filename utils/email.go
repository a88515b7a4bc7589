// utils/email.go
package utils

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/keighl/postmark"
	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"go-storefront/models"
)

// Email providers selectable with EMAIL_PROVIDER
const (
	ProviderPostmark = "postmark"
	ProviderSendgrid = "sendgrid"
)

// Email is one outgoing message
type Email struct {
	From     string
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// Sender delivers emails through some provider
type Sender interface {
	Send(ctx context.Context, email Email) error
}

// EmailService sends the storefront's emails
type EmailService struct {
	sender    Sender
	from      string
	recipient string
}

// NewEmailService picks the sender configured in cfg. With no provider
// configured, messages are only logged.
func NewEmailService(cfg Config, logger zerolog.Logger) (*EmailService, error) {
	var sender Sender
	switch cfg.EmailProvider {
	case ProviderPostmark:
		if cfg.PostmarkAPIToken == "" {
			return nil, errors.New("POSTMARK_API_TOKEN is not set")
		}
		sender = &PostmarkSender{client: postmark.NewClient(cfg.PostmarkAPIToken, "")}
	case ProviderSendgrid:
		if cfg.SendgridAPIKey == "" {
			return nil, errors.New("SENDGRID_API_KEY is not set")
		}
		sender = &SendgridSender{client: sendgrid.NewSendClient(cfg.SendgridAPIKey)}
	case "":
		logger.Warn().Msg("no email provider configured, contact messages will only be logged")
		sender = &LogSender{Logger: logger}
	default:
		return nil, fmt.Errorf("unknown EMAIL_PROVIDER %q", cfg.EmailProvider)
	}

	recipient := cfg.ContactRecipient
	if recipient == "" {
		recipient = cfg.EmailSender
	}
	if recipient == "" && cfg.EmailProvider == "" {
		recipient = "contact@localhost"
	}
	return NewEmailServiceWithSender(sender, cfg.EmailSender, recipient), nil
}

// NewEmailServiceWithSender creates a service around an existing sender
func NewEmailServiceWithSender(sender Sender, from, recipient string) *EmailService {
	return &EmailService{sender: sender, from: from, recipient: recipient}
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(ctx context.Context, toEmail, subject, htmlContent, textContent string) error {
	err := es.sender.Send(ctx, Email{
		From:     es.from,
		To:       toEmail,
		Subject:  subject,
		HTMLBody: htmlContent,
		TextBody: textContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendContactMessage forwards a contact form submission to the shop's inbox
func (es *EmailService) SendContactMessage(ctx context.Context, msg models.ContactMessage) error {
	if es.recipient == "" {
		return errors.New("no contact recipient configured")
	}

	subject := "Contact form: " + msg.Subject
	if strings.TrimSpace(msg.Subject) == "" {
		subject = "Contact form message from " + msg.Name
	}

	htmlContent := fmt.Sprintf(
		"<strong>From:</strong> %s &lt;%s&gt;<br><br>%s",
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>"),
	)
	textContent := fmt.Sprintf("From: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Message)

	return es.SendEmail(ctx, es.recipient, subject, htmlContent, textContent)
}

// PostmarkSender delivers email through Postmark
type PostmarkSender struct {
	client *postmark.Client
}

func (s *PostmarkSender) Send(_ context.Context, email Email) error {
	_, err := s.client.SendEmail(postmark.Email{
		From:     email.From,
		To:       email.To,
		Subject:  email.Subject,
		HtmlBody: email.HTMLBody,
		TextBody: email.TextBody,
	})
	return err
}

// SendgridSender delivers email through SendGrid
type SendgridSender struct {
	client *sendgrid.Client
}

func (s *SendgridSender) Send(_ context.Context, email Email) error {
	message := mail.NewSingleEmail(
		mail.NewEmail("", email.From),
		email.Subject,
		mail.NewEmail("", email.To),
		email.TextBody,
		email.HTMLBody,
	)
	resp, err := s.client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// LogSender writes emails to the log instead of delivering them
type LogSender struct {
	Logger zerolog.Logger
}

func (s *LogSender) Send(_ context.Context, email Email) error {
	s.Logger.Info().
		Str("to", email.To).
		Str("subject", email.Subject).
		Str("body", email.TextBody).
		Msg("email not delivered, no provider configured")
	return nil
}

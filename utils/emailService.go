package utils

import (
	"context"
	"errors"
	"fmt"
	"html"
	"internhub/models"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridMailer sends transactional e-mails through SendGrid.
type SendGridMailer struct {
	client     *sendgrid.Client
	senderMail string
	senderName string
}

func NewSendGridMailer(apiKey, senderMail, senderName string) (*SendGridMailer, error) {
	if apiKey == "" || senderMail == "" {
		return nil, errors.New("sendgrid api key and sender address are required")
	}
	return &SendGridMailer{
		client:     sendgrid.NewSendClient(apiKey),
		senderMail: senderMail,
		senderName: senderName,
	}, nil
}

// SendEmail sends one HTML e-mail.
func (m *SendGridMailer) SendEmail(ctx context.Context, toMail, toName, subject, htmlBody string) error {
	from := mail.NewEmail(m.senderName, m.senderMail)
	to := mail.NewEmail(toName, toMail)
	message := mail.NewSingleEmail(from, subject, to, subject, htmlBody)

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}
	log.Printf("Email %q sent successfully to %s", subject, toMail)
	return nil
}

// SendEventEmail renders the e-mail of a notification event.
func (m *SendGridMailer) SendEventEmail(ctx context.Context, event models.NotificationEvent) error {
	subject, body := renderEvent(m.senderName, event)
	return m.SendEmail(ctx, event.UserEmail, event.UserName, subject, body)
}

// renderEvent escapes every event field; they come from request input.
func renderEvent(brand string, event models.NotificationEvent) (string, string) {
	brand = html.EscapeString(brand)
	userName := html.EscapeString(event.UserName)
	switch event.Kind {
	case models.NotificationEnrollment:
		internship := event.Metadata["internship_name"]
		if internship == "" {
			internship = "your internship"
		}
		body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations! You have successfully enrolled in:</p>
		<div class="info-box"><strong>%s</strong></div>
		<p>You can now open your task list and start working. Complete every task to finish the internship.</p>
	`, userName, html.EscapeString(internship))
		return "Enrollment Confirmation - " + internship, getEmailTemplate(brand, "Enrollment Successful!", body)
	default:
		body := fmt.Sprintf(`<p>Dear %s,</p><p>%s</p>`, userName, html.EscapeString(event.Message))
		return event.Title, getEmailTemplate(brand, html.EscapeString(event.Title), body)
	}
}

// getEmailTemplate wraps content in the shared HTML layout
func getEmailTemplate(brand, title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1E293B; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1E293B; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #3B82F6; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>%s</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				You receive this e-mail because you have an account on %s.
			</div>
		</div>
	</body>
	</html>
	`, brand, title, bodyContent, brand)
}

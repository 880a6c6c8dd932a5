package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appName    string
	appBaseURL string
	enabled    bool
}

// NewEmailService creates a new email service. When fromEmail is empty
// the service runs disabled and every send becomes a logged no-op.
func NewEmailService(awsRegion, fromEmail, fromName, appName, appBaseURL string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false, appName: appName, appBaseURL: appBaseURL}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := sesv2.NewFromConfig(cfg)
	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:     client,
		fromEmail:  fromEmail,
		fromName:   fromName,
		appName:    appName,
		appBaseURL: appBaseURL,
		enabled:    true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendWelcomeEmail greets a freshly registered member
func (s *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, toName string) error {
	subject := fmt.Sprintf("Welcome to %s!", s.appName)
	htmlBody := s.wrapHTML(subject, fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your %s account is ready. You can now book your stays at the house,
		answer invites from the others, and keep the shared grocery and todo
		lists up to date.</p>
		<p style="text-align: center;"><a href="%s/login" class="button">Open the calendar</a></p>
	`, toName, s.appName, s.appBaseURL))
	textBody := fmt.Sprintf(`Hi %s,

Your %s account is ready. You can now book your stays at the house,
answer invites from the others, and keep the shared lists up to date.

Open the calendar: %s/login
`, toName, s.appName, s.appBaseURL)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendPasswordResetEmail sends a password reset email with a reset link
func (s *EmailService) SendPasswordResetEmail(ctx context.Context, toEmail, toName, resetToken string) error {
	resetLink := fmt.Sprintf("%s/auth/reset-password?token=%s", s.appBaseURL, resetToken)

	subject := fmt.Sprintf("Reset your %s password", s.appName)
	htmlBody := s.wrapHTML(subject, fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>We received a request to reset the password on your %s account.</p>
		<p style="text-align: center;"><a href="%s" class="button">Reset password</a></p>
		<p>Or copy and paste this link into your browser:</p>
		<p style="word-break: break-all; font-size: 12px; color: #666;">%s</p>
		<p><strong>This link will expire in 1 hour.</strong></p>
		<p>If you didn't request a password reset, you can safely ignore this email.</p>
	`, toName, s.appName, resetLink, resetLink))
	textBody := fmt.Sprintf(`Hi %s,

We received a request to reset the password on your %s account.

Reset it here (valid for 1 hour):
%s

If you didn't request a password reset, you can safely ignore this email.
`, toName, s.appName, resetLink)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendInviteEmail tells a member a new stay is open to join
func (s *EmailService) SendInviteEmail(ctx context.Context, toEmail, toName, creatorName, startDate, endDate string) error {
	subject := fmt.Sprintf("%s is planning a stay at the house", creatorName)
	htmlBody := s.wrapHTML(subject, fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>%s has booked the house from <strong>%s</strong> to <strong>%s</strong>
		and invited everyone along.</p>
		<p style="text-align: center;"><a href="%s/invites" class="button">Accept or decline</a></p>
	`, toName, creatorName, startDate, endDate, s.appBaseURL))
	textBody := fmt.Sprintf(`Hi %s,

%s has booked the house from %s to %s and invited everyone along.

Accept or decline here: %s/invites
`, toName, creatorName, startDate, endDate, s.appBaseURL)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendInviteAcceptedEmail tells the reservation owner someone is coming
func (s *EmailService) SendInviteAcceptedEmail(ctx context.Context, toEmail, toName, responderName, startDate, endDate string, rooms int) error {
	subject := fmt.Sprintf("%s is joining your stay", responderName)
	htmlBody := s.wrapHTML(subject, fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>%s accepted your invite for <strong>%s</strong> to <strong>%s</strong>
		and booked %d room(s).</p>
	`, toName, responderName, startDate, endDate, rooms))
	textBody := fmt.Sprintf(`Hi %s,

%s accepted your invite for %s to %s and booked %d room(s).
`, toName, responderName, startDate, endDate, rooms)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendJoinRequestEmail tells a reservation owner a request came in
func (s *EmailService) SendJoinRequestEmail(ctx context.Context, toEmail, toName, requesterName, startDate, endDate string, rooms int) error {
	subject := fmt.Sprintf("%s wants to join your stay", requesterName)
	htmlBody := s.wrapHTML(subject, fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>%s asked to join your stay from <strong>%s</strong> to <strong>%s</strong>
		with %d room(s).</p>
		<p style="text-align: center;"><a href="%s/requests" class="button">Approve or deny</a></p>
	`, toName, requesterName, startDate, endDate, rooms, s.appBaseURL))
	textBody := fmt.Sprintf(`Hi %s,

%s asked to join your stay from %s to %s with %d room(s).

Approve or deny here: %s/requests
`, toName, requesterName, startDate, endDate, rooms, s.appBaseURL)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendJoinDecisionEmail tells a requester how their request went
func (s *EmailService) SendJoinDecisionEmail(ctx context.Context, toEmail, toName, startDate, endDate string, approved bool) error {
	verdict := "approved"
	if !approved {
		verdict = "denied"
	}
	subject := fmt.Sprintf("Your request to join the stay was %s", verdict)
	htmlBody := s.wrapHTML(subject, fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your request to join the stay from <strong>%s</strong> to
		<strong>%s</strong> was <strong>%s</strong>.</p>
	`, toName, startDate, endDate, verdict))
	textBody := fmt.Sprintf(`Hi %s,

Your request to join the stay from %s to %s was %s.
`, toName, startDate, endDate, verdict)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// wrapHTML wraps the message body in the shared email chrome
func (s *EmailService) wrapHTML(heading, body string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #2f7a5e; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.button { display: inline-block; padding: 12px 30px; background-color: #2f7a5e; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header"><h1>%s</h1></div>
		<div class="content">%s</div>
		<div class="footer"><p>This is an automated email from %s. Please do not reply.</p></div>
	</div>
</body>
</html>
`, heading, body, s.appName)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): %s to %s", subject, toEmail)
		return nil
	}

	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}

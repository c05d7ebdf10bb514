// Package sendgrid delivers transactional email through the SendGrid v3 API.
package sendgrid

import (
	"context"
	"fmt"

	"github.com/aaravmahajanofficial/online-shop/internal/models"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendEndpoint = "/v3/mail/send"

type EmailService interface {
	Send(ctx context.Context, req *models.EmailNotificationRequest) error
}

type emailService struct {
	request   rest.Request
	fromEmail string
	fromName  string
}

// NewEmailService talks to baseURL, or to the public SendGrid API when it is empty.
func NewEmailService(apiKey, fromEmail, fromName, baseURL string) EmailService {
	request := sendgrid.GetRequest(apiKey, sendEndpoint, baseURL)
	request.Method = "POST"

	return &emailService{request: request, fromEmail: fromEmail, fromName: fromName}
}

func (e *emailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {
	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail("", req.To))

	for _, cc := range req.CC {
		personalization.AddCCs(mail.NewEmail("", cc))
	}

	for _, bcc := range req.BCC {
		personalization.AddBCCs(mail.NewEmail("", bcc))
	}

	personalization.Subject = req.Subject

	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(e.fromName, e.fromEmail))
	message.AddPersonalizations(personalization)
	message.AddContent(mail.NewContent("text/plain", req.Content))

	if req.HTMLContent != "" {
		message.AddContent(mail.NewContent("text/html", req.HTMLContent))
	}

	for key, value := range req.Metadata {
		message.SetCustomArg(key, value)
	}

	// copy per call so concurrent sends do not share a body
	request := e.request
	request.Body = mail.GetRequestBody(message)

	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to reach sendgrid: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}

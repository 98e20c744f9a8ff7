package utils

import (
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"learnhub/config"
)

// SendWelcomeEmail greets a newly registered account. Callers fire it from
// a goroutine; a failed send is logged and never fails the request.
func SendWelcomeEmail(email, firstName string) {
	if config.AppConfig.SendGridApiKey == "" {
		log.Printf("SendGrid disabled, skipping welcome email for %s", email)
		return
	}

	from := mail.NewEmail("LearnHub", config.AppConfig.EmailSender)
	to := mail.NewEmail(firstName, email)
	subject := "Welcome to LearnHub"
	plain := "Hi " + firstName + ", welcome to LearnHub! Your account is ready."
	html := "<p>Hi " + firstName + ",</p><p>Welcome to LearnHub! Your account is ready. Browse the catalog and start learning.</p>"

	message := mail.NewSingleEmail(from, subject, to, plain, html)
	client := sendgrid.NewSendClient(config.AppConfig.SendGridApiKey)

	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending welcome email to %s: %v", email, err)
		return
	}
	if resp.StatusCode >= 400 {
		log.Printf("Welcome email to %s rejected with status %d", email, resp.StatusCode)
	}
}

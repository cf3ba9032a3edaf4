package services

import (
	"fmt"
	"sync"

	"danstore_server/structs"
	"danstore_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

var (
	client     *resend.Client
	clientOnce = sync.Once{}
)

type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		client: getEmailClient(cfg.Email.ApiKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	clientOnce.Do(func() {
		client = resend.NewClient(apiKey)
	})
	return client
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := es.client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// SendWelcomeEmail greets a freshly registered user. Failures are logged by
// the caller and never block registration.
func (es *EmailService) SendWelcomeEmail(user *tables.User) error {
	emailBody := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #1a1a2e; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #f9f9f9; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>¡Bienvenido a DAN STORE!</h1>
				</div>
				<div class="content">
					<p>Hola %s,</p>
					<p>Tu cuenta ha sido creada con éxito. Ya puedes explorar nuestro catálogo y realizar tus compras.</p>
					<p>Si no creaste esta cuenta, puedes ignorar este correo.</p>
				</div>
				<div class="footer">
					<p>DAN STORE</p>
				</div>
			</div>
		</body>
		</html>
	`, user.DisplayName())

	return es.SendEmail([]string{user.Email}, "Bienvenido a DAN STORE", emailBody)
}

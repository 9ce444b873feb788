package utils

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"pizzeria-go/models"
)

// EmailService sends transactional mail through SendGrid.
type EmailService struct {
	client *sendgrid.Client
	sender string
}

// NewEmailService builds the service from SENDGRID_API_KEY and EMAIL_SENDER.
// Returns nil when no API key is configured; callers treat a nil service as
// "mail disabled".
func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return nil
	}
	return &EmailService{
		client: sendgrid.NewSendClient(apiKey),
		sender: os.Getenv("EMAIL_SENDER"),
	}
}

// SendEmail sends a basic HTML email to the recipient.
func (es *EmailService) SendEmail(toEmail, toName, subject, htmlContent string) error {
	from := mail.NewEmail("Pizzería El Sinú", es.sender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, htmlContent, htmlContent)
	resp, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("failed to send email: status %d", resp.StatusCode)
	}
	return nil
}

// SendOrderConfirmation mails the order summary after a successful checkout.
func (es *EmailService) SendOrderConfirmation(toEmail, toName string, order models.Order) error {
	subject := "Confirmación de Pedido - Pizzería El Sinú"
	htmlContent := fmt.Sprintf(
		"<strong>¡Gracias por tu pedido!</strong><br><br>Tu pedido <strong>%s</strong> ha sido recibido y está siendo preparado.<br><br>Subtotal: $%d<br>Envío: $%d<br>Total: <strong>$%d</strong><br>Método de pago: %s",
		order.OrderNumber, order.Subtotal, order.ShippingCost, order.Total, order.PaymentMethod,
	)
	return es.SendEmail(toEmail, toName, subject, htmlContent)
}

package service

import (
	"context"
	"fmt"

	"locagora-backend/internal/domain"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendOrderConfirmation(ctx context.Context, email, name string, order *domain.Order) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour reservation %s for %s to %s has been created.\n"+
			"Total: R$ %.2f, deposit due: R$ %.2f.\n\n"+
			"The reservation is held for one hour pending deposit payment.\n\nLocagora",
		name, order.ReferenceCode, order.StartDate, order.EndDate,
		float64(order.TotalCents())/100, float64(order.DepositCents)/100)
	return s.send(email, name, fmt.Sprintf("Reservation %s created", order.ReferenceCode), body)
}

func (s *emailService) SendOrderExpired(ctx context.Context, email, name, referenceCode string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour reservation %s was cancelled because the deposit was not paid in time. "+
			"The reserved equipment has been released.\n\nLocagora",
		name, referenceCode)
	return s.send(email, name, fmt.Sprintf("Reservation %s expired", referenceCode), body)
}

func (s *emailService) SendOrderStatusChanged(ctx context.Context, email, name, referenceCode string, status domain.OrderStatus) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour reservation %s is now in status %s.\n\nLocagora",
		name, referenceCode, status)
	return s.send(email, name, fmt.Sprintf("Reservation %s updated", referenceCode), body)
}

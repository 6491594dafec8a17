package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"rentify-backend/internal/logger"
)

type emailService struct {
	client   *sendgrid.Client
	fromName string
	fromAddr string
}

func NewEmailService(apiKey, fromName, fromAddr string) EmailService {
	return &emailService{
		client:   sendgrid.NewSendClient(apiKey),
		fromName: fromName,
		fromAddr: fromAddr,
	}
}

func (s *emailService) SendItemRentedNotification(ctx context.Context, ownerEmail, ownerName, renterName, itemName string, dates []string) error {
	subject := "Your item has been rented!"
	body := fmt.Sprintf(
		"Hello %s,\n\n%s has rented your item '%s' for the following dates:\n\n%s\n\nBest regards,\nThe Rentify Team",
		ownerName, renterName, itemName, strings.Join(dates, "\n"))
	return s.send(ctx, ownerEmail, ownerName, subject, body)
}

func (s *emailService) SendRentalStartReminder(ctx context.Context, renterEmail, renterName, itemName, startDate string) error {
	subject := fmt.Sprintf("Reminder: your rental of %s starts tomorrow", itemName)
	body := fmt.Sprintf(
		"Hello %s,\n\nA reminder that your rental of '%s' starts on %s.\n\nBest regards,\nThe Rentify Team",
		renterName, itemName, startDate)
	return s.send(ctx, renterEmail, renterName, subject, body)
}

func (s *emailService) SendReturnReminder(ctx context.Context, ownerEmail, ownerName, itemName string) error {
	subject := fmt.Sprintf("Your item %s is due back today", itemName)
	body := fmt.Sprintf(
		"Hello %s,\n\nThe rental of your item '%s' ends today. Expect it to be returned.\n\nBest regards,\nThe Rentify Team",
		ownerName, itemName)
	return s.send(ctx, ownerEmail, ownerName, subject, body)
}

func (s *emailService) send(ctx context.Context, toAddr, toName, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromAddr)
	to := mail.NewEmail(toName, toAddr)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	logger.ExternalServiceCall("sendgrid", "Send", "subject", subject)
	resp, err := s.client.SendWithContext(ctx, message)
	logger.ExternalServiceResult("sendgrid", "Send", err)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("send email: sendgrid returned %d", resp.StatusCode)
	}
	return nil
}

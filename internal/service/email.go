package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"leaningtree-rentals-backend/internal/domain"
	"leaningtree-rentals-backend/internal/utils"
)

// EmailSettings carries SendGrid delivery configuration
type EmailSettings struct {
	APIKey        string
	FromEmail     string
	FromName      string
	OperatorEmail string
	SiteURL       string
}

type sendGridEmailService struct {
	settings EmailSettings
	pricing  utils.PricingTable
}

func NewEmailService(settings EmailSettings, pricing utils.PricingTable) EmailService {
	return &sendGridEmailService{settings: settings, pricing: pricing}
}

func (s *sendGridEmailService) SendRequestReceived(ctx context.Context, r *domain.Reservation) error {
	price := s.pricing.Price(r.CartType, r.TimeSlot)
	subject, plain, html := requestReceivedEmail(r, price)
	return s.send(ctx, r.Name, r.Email, subject, plain, html)
}

func (s *sendGridEmailService) SendConfirmation(ctx context.Context, r *domain.Reservation) error {
	price := s.pricing.Price(r.CartType, r.TimeSlot)
	subject, plain, html := confirmationEmail(r, price, s.settings.SiteURL)
	return s.send(ctx, r.Name, r.Email, subject, plain, html)
}

func (s *sendGridEmailService) SendDenial(ctx context.Context, r *domain.Reservation, reason string) error {
	subject, plain, html := denialEmail(r, reason)
	return s.send(ctx, r.Name, r.Email, subject, plain, html)
}

func (s *sendGridEmailService) SendCancellation(ctx context.Context, r *domain.Reservation, reason string) error {
	subject, plain, html := cancellationEmail(r, reason)
	return s.send(ctx, r.Name, r.Email, subject, plain, html)
}

func (s *sendGridEmailService) SendNewRequestAlert(ctx context.Context, r *domain.Reservation) error {
	if s.settings.OperatorEmail == "" {
		return fmt.Errorf("operator email not configured")
	}
	price := s.pricing.Price(r.CartType, r.TimeSlot)
	subject, plain, html := newRequestAlertEmail(r, price, s.settings.SiteURL)
	return s.send(ctx, "", s.settings.OperatorEmail, subject, plain, html)
}

func (s *sendGridEmailService) SendPendingDigest(ctx context.Context, pending []domain.Reservation) error {
	if s.settings.OperatorEmail == "" {
		return fmt.Errorf("operator email not configured")
	}
	subject, plain, html := pendingDigestEmail(pending, s.pricing, s.settings.SiteURL)
	return s.send(ctx, "", s.settings.OperatorEmail, subject, plain, html)
}

func (s *sendGridEmailService) send(ctx context.Context, toName, toEmail, subject, plainText, htmlBody string) error {
	if s.settings.APIKey == "" {
		return fmt.Errorf("sendgrid api key not configured")
	}

	from := mail.NewEmail(s.settings.FromName, s.settings.FromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlBody)

	client := sendgrid.NewSendClient(s.settings.APIKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

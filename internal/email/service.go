// Package email sends registration confirmation mail through the Resend
// API. Sending is best effort: the registration flow treats a failed
// send as a warning, never as a rejected registration.
package email

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/mail"
	"strings"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/prajayganiga-design/Mini-project/internal/config"
)

// Service renders and sends transactional mail.
type Service struct {
	client *resend.Client
	from   string
	logger zerolog.Logger
}

// NewService builds a Resend-backed sender. Returns nil when no API key
// is configured; callers treat a nil sender as email disabled.
func NewService(cfg config.EmailConfig, logger zerolog.Logger) (*Service, error) {
	if cfg.ResendAPIKey == "" {
		return nil, nil
	}
	if err := validateEmailAddress(cfg.From); err != nil {
		return nil, fmt.Errorf("invalid sender email in config: %w", err)
	}
	return &Service{
		client: resend.NewClient(cfg.ResendAPIKey),
		from:   cfg.From,
		logger: logger.With().Str("component", "email").Logger(),
	}, nil
}

// SendRegistrationConfirmation mails the registrant a confirmation for
// the named event.
func (s *Service) SendRegistrationConfirmation(ctx context.Context, to, userName, eventName string) error {
	if err := validateEmailAddress(to); err != nil {
		return fmt.Errorf("invalid recipient email: %w", err)
	}

	subject := fmt.Sprintf("Registration confirmed: %s", eventName)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your registration for <strong>%s</strong> is confirmed. See you there!</p>",
		html.EscapeString(userName),
		html.EscapeString(eventName),
	)

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		var rateLimitErr *resend.RateLimitError
		if errors.As(err, &rateLimitErr) {
			s.logger.Warn().
				Str("limit", rateLimitErr.Limit).
				Str("reset", rateLimitErr.Reset).
				Msg("resend rate limit exceeded")
			return fmt.Errorf("email rate limit exceeded: %w", err)
		}
		return fmt.Errorf("resend API error: %w", err)
	}

	s.logger.Info().
		Str("email_id", sent.Id).
		Str("to", to).
		Msg("confirmation email sent")
	return nil
}

// validateEmailAddress rejects malformed addresses and header injection
// attempts before anything reaches the wire.
func validateEmailAddress(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email format: %w", err)
	}
	if strings.ContainsAny(addr.Address, "\r\n") {
		return fmt.Errorf("invalid email address: contains newline characters")
	}
	return nil
}

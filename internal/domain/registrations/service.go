package registrations

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// ConfirmationSender delivers a registration confirmation. Implementations
// must be safe for a nil-check skip: email is best effort and never blocks
// admission.
type ConfirmationSender interface {
	SendRegistrationConfirmation(ctx context.Context, to, userName, eventName string) error
}

type Service struct {
	repo   Repository
	mailer ConfirmationSender
	logger zerolog.Logger
}

// NewService creates the registration service. mailer may be nil when no
// email provider is configured.
func NewService(repo Repository, mailer ConfirmationSender, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		mailer: mailer,
		logger: logger.With().Str("component", "registrations").Logger(),
	}
}

// Register admits one registration. The caller's email comes from the
// authenticated identity, never the request body. The exists, duplicate,
// and capacity checks run in one transaction with the event row locked so
// two concurrent admissions cannot both pass a nearly-full cap.
func (s *Service) Register(ctx context.Context, eventID, userName, userPhone, callerEmail string) (int64, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return 0, ErrNameRequired
	}
	callerEmail = strings.ToLower(strings.TrimSpace(callerEmail))

	var id int64
	var eventName string
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		event, err := tx.LockEvent(ctx, eventID)
		if err != nil {
			return err
		}
		eventName = event.Name

		taken, err := tx.Exists(ctx, eventID, callerEmail)
		if err != nil {
			return err
		}
		if taken {
			return ErrAlreadyRegistered
		}

		if event.MaxParticipants != nil {
			count, err := tx.CountForEvent(ctx, eventID)
			if err != nil {
				return err
			}
			if count >= *event.MaxParticipants {
				return ErrEventFull
			}
		}

		id, err = tx.Create(ctx, Registration{
			EventID:   eventID,
			UserName:  userName,
			UserEmail: callerEmail,
			UserPhone: strings.TrimSpace(userPhone),
		})
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info().
		Str("event_id", eventID).
		Str("user_email", callerEmail).
		Msg("registration created")

	if s.mailer != nil {
		if err := s.mailer.SendRegistrationConfirmation(ctx, callerEmail, userName, eventName); err != nil {
			s.logger.Warn().Err(err).
				Str("user_email", callerEmail).
				Msg("confirmation email failed")
		}
	}
	return id, nil
}

// ListForEvent returns an event's registrations, newest first.
func (s *Service) ListForEvent(ctx context.Context, eventID string) ([]Registration, error) {
	return s.repo.ListForEvent(ctx, eventID)
}

// CountForEvent returns the number of registrations held for an event.
func (s *Service) CountForEvent(ctx context.Context, eventID string) (int, error) {
	return s.repo.CountForEvent(ctx, eventID)
}

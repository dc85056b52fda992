package events

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Service implements event admission: validation, the transactional
// overlap check, and CRUD against the repository.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "events").Logger(),
	}
}

func (s *Service) List(ctx context.Context) ([]Event, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, eventID string) (*Event, error) {
	return s.repo.Get(ctx, eventID)
}

// Create validates the input, then runs the overlap check and the insert
// inside one transaction. The schema's exclusion constraint rejects any
// concurrent writer that slips past the check.
func (s *Service) Create(ctx context.Context, input EventInput) (int64, error) {
	span, err := ValidateInput(&input)
	if err != nil {
		return 0, err
	}

	var id int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		conflict, err := hasOverlap(ctx, tx, span, "")
		if err != nil {
			return err
		}
		if conflict {
			return ErrOverlap
		}
		id, err = tx.Create(ctx, eventFromInput(input))
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info().Str("event_id", input.EventID).Msg("event created")
	return id, nil
}

// Update replaces every client-settable field of the event identified by
// eventID, keeping event_id and created_at. The overlap check excludes
// the event's own prior version.
func (s *Service) Update(ctx context.Context, eventID string, input EventInput) error {
	input.EventID = eventID
	span, err := ValidateInput(&input)
	if err != nil {
		return err
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		conflict, err := hasOverlap(ctx, tx, span, eventID)
		if err != nil {
			return err
		}
		if conflict {
			return ErrOverlap
		}
		return tx.Update(ctx, eventFromInput(input))
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("event_id", eventID).Msg("event updated")
	return nil
}

// Delete removes the event. Its registrations go with it; the schema
// cascades the foreign key.
func (s *Service) Delete(ctx context.Context, eventID string) error {
	if err := s.repo.Delete(ctx, eventID); err != nil {
		return err
	}
	s.logger.Info().Str("event_id", eventID).Msg("event deleted")
	return nil
}

// hasOverlap scans stored spans, skipping excludeEventID, and returns
// true on the first conflict.
func hasOverlap(ctx context.Context, repo Repository, candidate Span, excludeEventID string) (bool, error) {
	spans, err := repo.Spans(ctx, excludeEventID)
	if err != nil {
		return false, fmt.Errorf("load event spans: %w", err)
	}
	for _, stored := range spans {
		if candidate.Overlaps(stored.Span) {
			return true, nil
		}
	}
	return false, nil
}

func eventFromInput(input EventInput) Event {
	return Event{
		EventID:         input.EventID,
		Name:            input.Name,
		Description:     input.Description,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		Venue:           input.Venue,
		MaxParticipants: input.MaxParticipants,
	}
}

// Package events holds the event scheduling domain: event records, input
// validation, and the half-open interval overlap check that guards every
// create and update.
package events

import (
	"context"
	"time"
)

// Event is a time-boxed activity created by an admin. EventID is the
// human-assigned identifier used throughout the API; ID is the storage
// row id surfaced in create responses.
type Event struct {
	ID              int64     `json:"id"`
	EventID         string    `json:"event_id"`
	Name            string    `json:"event_name"`
	Description     string    `json:"description"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	Venue           string    `json:"venue"`
	MaxParticipants *int      `json:"max_participants"`
	CreatedAt       time.Time `json:"created_at"`
}

// EventInput is the client-supplied field set for create and update.
// EventID is ignored on update (the path parameter wins).
type EventInput struct {
	EventID         string `json:"event_id" validate:"required"`
	Name            string `json:"event_name" validate:"required"`
	Description     string `json:"description"`
	StartDate       string `json:"start_date" validate:"required"`
	EndDate         string `json:"end_date" validate:"required"`
	StartTime       string `json:"start_time" validate:"required"`
	EndTime         string `json:"end_time" validate:"required"`
	Venue           string `json:"venue"`
	MaxParticipants *int   `json:"max_participants"`
}

// EventSpan pairs a stored event's identifier with its occupied interval.
type EventSpan struct {
	EventID string
	Span    Span
}

// Repository is the storage contract for events. WithTx runs fn against a
// repository bound to a single serializable transaction; the overlap check
// and the subsequent write always share one.
type Repository interface {
	List(ctx context.Context) ([]Event, error)
	Get(ctx context.Context, eventID string) (*Event, error)
	Spans(ctx context.Context, excludeEventID string) ([]EventSpan, error)
	Create(ctx context.Context, event Event) (int64, error)
	Update(ctx context.Context, event Event) error
	Delete(ctx context.Context, eventID string) error
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
}

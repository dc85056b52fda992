// Package registrations handles a user's claim on a seat in an event:
// admission (duplicate and capacity checks), listing, and counting.
package registrations

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrEventNotFound is returned when the target event does not exist.
	ErrEventNotFound = errors.New("event not found")

	// ErrAlreadyRegistered is returned when the caller already holds a
	// registration for the event.
	ErrAlreadyRegistered = errors.New("already registered for this event")

	// ErrEventFull is returned when the event's max_participants cap has
	// been reached.
	ErrEventFull = errors.New("event is full")

	// ErrNameRequired is returned when the registrant name is empty.
	ErrNameRequired = errors.New("name is required")
)

// Registration is one user's seat in one event.
type Registration struct {
	ID               int64     `json:"id"`
	EventID          string    `json:"event_id"`
	UserName         string    `json:"user_name"`
	UserEmail        string    `json:"user_email"`
	UserPhone        string    `json:"user_phone"`
	RegistrationDate time.Time `json:"registration_date"`
}

// EventCapacity is the slice of an event the admission check needs:
// identity and the optional participant cap.
type EventCapacity struct {
	EventID         string
	Name            string
	MaxParticipants *int
}

// Repository is the storage contract for registrations. LockEvent must
// take a row lock on the event so concurrent admissions for the same
// event serialize; the (event_id, user_email) uniqueness lives in the
// schema as a backstop.
type Repository interface {
	LockEvent(ctx context.Context, eventID string) (*EventCapacity, error)
	Exists(ctx context.Context, eventID, userEmail string) (bool, error)
	CountForEvent(ctx context.Context, eventID string) (int, error)
	Create(ctx context.Context, reg Registration) (int64, error)
	ListForEvent(ctx context.Context, eventID string) ([]Registration, error)
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
}

package events

import "errors"

var (
	// ErrNotFound is returned when no event matches the given event_id.
	ErrNotFound = errors.New("event not found")

	// ErrDuplicateID is returned on create when the event_id is taken.
	ErrDuplicateID = errors.New("event ID already exists")

	// ErrOverlap is returned when an event's span intersects another
	// stored event's span.
	ErrOverlap = errors.New("event time overlaps with existing event")
)

// ValidationError describes a rejected event input. The message is
// surfaced verbatim in the API error body.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var verr ValidationError
	return errors.As(err, &verr)
}

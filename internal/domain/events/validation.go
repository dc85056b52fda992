package events

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/prajayganiga-design/Mini-project/internal/sanitize"
)

var validate = validator.New()

// ValidateInput checks the mandatory field set, parses dates and times,
// and enforces start-before-end ordering. On success it returns the
// normalized Span; field values in the input are canonicalized in place
// (trimmed, dates and times re-rendered in their storage layout) and
// free-text fields are sanitized.
func ValidateInput(input *EventInput) (Span, error) {
	trimInput(input)

	if err := validate.Struct(input); err != nil {
		return Span{}, ValidationError{Message: "Missing required fields"}
	}

	span, err := NewSpan(input.StartDate, input.EndDate, input.StartTime, input.EndTime)
	if err != nil {
		return Span{}, ValidationError{Message: err.Error()}
	}
	if !span.Valid() {
		return Span{}, ValidationError{Message: "Start date/time must be before end date/time"}
	}

	if input.MaxParticipants != nil && *input.MaxParticipants <= 0 {
		return Span{}, ValidationError{Message: "max_participants must be a positive integer"}
	}

	input.StartDate = span.Start.Format(dateLayout)
	input.EndDate = span.End.Format(dateLayout)
	input.StartTime = FormatTimeOfDay(span.Start)
	input.EndTime = FormatTimeOfDay(span.End)

	input.Name = sanitize.Text(input.Name)
	input.Description = sanitize.HTML(input.Description)
	input.Venue = sanitize.Text(input.Venue)
	if input.Name == "" {
		return Span{}, ValidationError{Message: "Missing required fields"}
	}

	return span, nil
}

// FormatTimeOfDay renders a clock time as 15:04, or 15:04:05 when the
// seconds component is non-zero, matching the accepted input layouts.
func FormatTimeOfDay(t time.Time) string {
	if t.Second() != 0 {
		return t.Format(timeSecondsLayout)
	}
	return t.Format(timeLayout)
}

func trimInput(input *EventInput) {
	input.EventID = strings.TrimSpace(input.EventID)
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	input.StartDate = strings.TrimSpace(input.StartDate)
	input.EndDate = strings.TrimSpace(input.EndDate)
	input.StartTime = strings.TrimSpace(input.StartTime)
	input.EndTime = strings.TrimSpace(input.EndTime)
	input.Venue = strings.TrimSpace(input.Venue)
}

package events

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout        = "2006-01-02"
	timeLayout        = "15:04"
	timeSecondsLayout = "15:04:05"
)

// Span is the half-open instant interval [Start, End) occupied by an
// event. Dates and times combine in UTC; the store never mixes zones.
type Span struct {
	Start time.Time
	End   time.Time
}

// NewSpan combines calendar dates and times of day into a Span. The date
// layout is 2006-01-02; times accept 15:04 or 15:04:05.
func NewSpan(startDate, endDate, startTime, endTime string) (Span, error) {
	start, err := combine(startDate, startTime)
	if err != nil {
		return Span{}, err
	}
	end, err := combine(endDate, endTime)
	if err != nil {
		return Span{}, err
	}
	return Span{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals intersect. Touching
// endpoints (one span ends exactly when the other starts) do not overlap.
func (s Span) Overlaps(other Span) bool {
	return s.Start.Before(other.End) && s.End.After(other.Start)
}

// Valid reports whether the span's start strictly precedes its end.
func (s Span) Valid() bool {
	return s.Start.Before(s.End)
}

func combine(date, timeOfDay string) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(date), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", date)
	}
	clock, err := parseTimeOfDay(timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(clock), nil
}

func parseTimeOfDay(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	layout := timeLayout
	if strings.Count(value, ":") == 2 {
		layout = timeSecondsLayout
	}
	parsed, err := time.Parse(layout, value)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	return time.Duration(parsed.Hour())*time.Hour +
		time.Duration(parsed.Minute())*time.Minute +
		time.Duration(parsed.Second())*time.Second, nil
}

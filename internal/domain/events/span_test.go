package events

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustSpan(t *testing.T, startDate, endDate, startTime, endTime string) Span {
	t.Helper()
	span, err := NewSpan(startDate, endDate, startTime, endTime)
	require.NoError(t, err)
	return span
}

func TestSpanOverlaps(t *testing.T) {
	base := mustSpan(t, "2024-01-01", "2024-01-01", "09:00", "11:00")

	cases := []struct {
		name    string
		other   Span
		overlap bool
	}{
		{"contained", mustSpan(t, "2024-01-01", "2024-01-01", "09:30", "10:30"), true},
		{"straddles end", mustSpan(t, "2024-01-01", "2024-01-01", "10:00", "12:00"), true},
		{"straddles start", mustSpan(t, "2024-01-01", "2024-01-01", "08:00", "09:30"), true},
		{"covers", mustSpan(t, "2024-01-01", "2024-01-01", "08:00", "12:00"), true},
		{"identical", mustSpan(t, "2024-01-01", "2024-01-01", "09:00", "11:00"), true},
		{"touches end", mustSpan(t, "2024-01-01", "2024-01-01", "11:00", "12:00"), false},
		{"touches start", mustSpan(t, "2024-01-01", "2024-01-01", "08:00", "09:00"), false},
		{"disjoint after", mustSpan(t, "2024-01-01", "2024-01-01", "12:00", "13:00"), false},
		{"disjoint before", mustSpan(t, "2024-01-01", "2024-01-01", "06:00", "07:00"), false},
		{"next day", mustSpan(t, "2024-01-02", "2024-01-02", "09:00", "11:00"), false},
		{"multi-day straddle", mustSpan(t, "2023-12-31", "2024-01-02", "09:00", "11:00"), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.overlap, base.Overlaps(tc.other))
			require.Equal(t, tc.overlap, tc.other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestSpanValid(t *testing.T) {
	require.True(t, mustSpan(t, "2024-01-01", "2024-01-01", "09:00", "11:00").Valid())
	require.False(t, mustSpan(t, "2024-01-01", "2024-01-01", "11:00", "09:00").Valid())
	require.False(t, mustSpan(t, "2024-01-01", "2024-01-01", "09:00", "09:00").Valid())
	require.True(t, mustSpan(t, "2024-01-01", "2024-01-02", "11:00", "09:00").Valid())
}

func TestNewSpanParsing(t *testing.T) {
	span, err := NewSpan("2024-01-01", "2024-01-01", "09:00:30", "11:00")
	require.NoError(t, err)
	require.Equal(t, 30, span.Start.Second())

	_, err = NewSpan("01-01-2024", "2024-01-01", "09:00", "11:00")
	require.Error(t, err)

	_, err = NewSpan("2024-01-01", "2024-01-01", "9am", "11:00")
	require.Error(t, err)
}

func TestFormatTimeOfDay(t *testing.T) {
	span := mustSpan(t, "2024-01-01", "2024-01-01", "09:00", "11:30:45")
	require.Equal(t, "09:00", FormatTimeOfDay(span.Start))
	require.Equal(t, "11:30:45", FormatTimeOfDay(span.End))
}

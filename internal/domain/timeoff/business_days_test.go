package timeoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCountBusinessDays(t *testing.T) {
	christmas := NewHolidaySet(date("2026-12-25"))

	cases := []struct {
		name     string
		start    string
		end      string
		holidays HolidaySet
		want     int
	}{
		{"single weekday", "2026-10-21", "2026-10-21", nil, 1},
		{"single saturday", "2026-10-24", "2026-10-24", nil, 0},
		{"single sunday", "2026-10-25", "2026-10-25", nil, 0},
		{"single holiday", "2026-12-25", "2026-12-25", christmas, 0},
		{"monday to friday", "2026-10-19", "2026-10-23", nil, 5},
		{"full calendar week", "2026-10-19", "2026-10-25", nil, 5},
		{"week starting wednesday", "2026-10-21", "2026-10-27", nil, 5},
		{"two weeks", "2026-10-19", "2026-11-01", nil, 10},
		{"week with holiday", "2026-12-21", "2026-12-27", christmas, 4},
		{"weekend only", "2026-10-24", "2026-10-25", nil, 0},
		{"across year end", "2026-12-31", "2027-01-04", nil, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CountBusinessDays(date(tc.start), date(tc.end), tc.holidays)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCountBusinessDays_InvalidRange(t *testing.T) {
	_, err := CountBusinessDays(date("2026-10-23"), date("2026-10-19"), nil)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestCountBusinessDays_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2026, 10, 19, 23, 30, 0, 0, time.UTC)
	end := time.Date(2026, 10, 19, 1, 0, 0, 0, time.UTC)

	got, err := CountBusinessDays(start, end, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestHolidaySet_Contains(t *testing.T) {
	set := NewHolidaySet(date("2026-01-01"), date("2026-12-25"))

	assert.True(t, set.Contains(date("2026-01-01")))
	assert.True(t, set.Contains(time.Date(2026, 12, 25, 15, 0, 0, 0, time.UTC)))
	assert.False(t, set.Contains(date("2026-07-04")))

	var empty HolidaySet
	assert.False(t, empty.Contains(date("2026-01-01")))
}

func TestCalendarDays(t *testing.T) {
	assert.Equal(t, 1, CalendarDays(date("2026-10-19"), date("2026-10-19")))
	assert.Equal(t, 7, CalendarDays(date("2026-10-19"), date("2026-10-25")))
	assert.Equal(t, 0, CalendarDays(date("2026-10-25"), date("2026-10-19")))
}

func TestStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusApproved))
	assert.True(t, StatusPending.CanTransitionTo(StatusRejected))
	assert.False(t, StatusPending.CanTransitionTo(StatusPending))
	assert.False(t, StatusApproved.CanTransitionTo(StatusRejected))
	assert.False(t, StatusRejected.CanTransitionTo(StatusApproved))
}

package timeoff

import (
	"time"

	"github.com/cmlabs-hris/hr-portal/internal/pkg/validator"
)

// HolidaySet is the set of company holidays keyed by ISO date (YYYY-MM-DD).
type HolidaySet map[string]struct{}

// NewHolidaySet builds a set from holiday dates.
func NewHolidaySet(dates ...time.Time) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		set[d.Format(validator.DateLayout)] = struct{}{}
	}
	return set
}

// Contains reports whether day is a holiday.
func (h HolidaySet) Contains(day time.Time) bool {
	_, ok := h[day.Format(validator.DateLayout)]
	return ok
}

// IsBusinessDay reports whether day is a weekday that is not a holiday.
func IsBusinessDay(day time.Time, holidays HolidaySet) bool {
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !holidays.Contains(day)
}

// CountBusinessDays counts the Monday to Friday days in [start, end] that are not
// in holidays. It returns ErrInvalidRange when end is before start.
func CountBusinessDays(start, end time.Time, holidays HolidaySet) (int, error) {
	start, end = DateOnly(start), DateOnly(end)
	if end.Before(start) {
		return 0, ErrInvalidRange
	}

	count := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if IsBusinessDay(day, holidays) {
			count++
		}
	}
	return count, nil
}

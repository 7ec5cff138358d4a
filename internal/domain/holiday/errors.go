package holiday

import "errors"

var (
	ErrHolidayNotFound   = errors.New("holiday not found")
	ErrHolidayDateExists = errors.New("a holiday already exists on this date")
	ErrInvalidCalendar   = errors.New("invalid holiday calendar file")
)

package holiday

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-portal/internal/pkg/validator"
	"gopkg.in/yaml.v3"
)

type CreateHolidayRequest struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	if _, ok := validator.IsValidDate(strings.TrimSpace(r.Date)); !ok {
		errs.Add("date", "date must be a valid date (YYYY-MM-DD)")
	}
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if len(r.Name) > 255 {
		errs.Add("name", "name must not exceed 255 characters")
	}

	return errs.Err()
}

type HolidayResponse struct {
	ID   int64  `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}

func NewHolidayResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:   h.ID,
		Date: h.Date.Format(validator.DateLayout),
		Name: h.Name,
	}
}

type ImportResult struct {
	Imported int `json:"imported"`
}

// calendarFile is the YAML layout of a holiday calendar:
//
//	holidays:
//	  - date: 2026-12-25
//	    name: Christmas Day
type calendarFile struct {
	Holidays []struct {
		Date string `yaml:"date"`
		Name string `yaml:"name"`
	} `yaml:"holidays"`
}

// ParseCalendar decodes a YAML holiday calendar. Duplicate dates keep the
// last entry.
func ParseCalendar(data []byte) ([]Holiday, error) {
	var file calendarFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCalendar, err)
	}

	byDate := make(map[string]int, len(file.Holidays))
	holidays := make([]Holiday, 0, len(file.Holidays))
	for i, entry := range file.Holidays {
		date, ok := validator.IsValidDate(strings.TrimSpace(entry.Date))
		if !ok {
			return nil, fmt.Errorf("%w: entry %d has invalid date %q", ErrInvalidCalendar, i+1, entry.Date)
		}
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: entry %d has no name", ErrInvalidCalendar, i+1)
		}

		key := date.Format(validator.DateLayout)
		if idx, dup := byDate[key]; dup {
			holidays[idx].Name = name
			continue
		}
		byDate[key] = len(holidays)
		holidays = append(holidays, Holiday{Date: date, Name: name})
	}
	return holidays, nil
}

// YearRange returns [Jan 1, Dec 31] of year in UTC.
func YearRange(year int) (time.Time, time.Time) {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

package holiday

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hr-portal/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal/internal/domain/timeoff"
)

type HolidayService interface {
	// List returns the holidays of year (0 means the current year).
	List(ctx context.Context, year int) ([]HolidayResponse, error)
	Create(ctx context.Context, caller auth.AuthContext, req CreateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, caller auth.AuthContext, id int64) error

	// ImportFile upserts every holiday of a YAML calendar file by date.
	ImportFile(ctx context.Context, path string) (ImportResult, error)

	// HolidaySet satisfies timeoff.HolidayCalendar.
	HolidaySet(ctx context.Context, from, to time.Time) (timeoff.HolidaySet, error)
}

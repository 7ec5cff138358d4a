package holiday

import (
	"context"
	"time"
)

// HolidayRepository - interface for company_holidays table
type HolidayRepository interface {
	// ListBetween returns holidays with from <= date <= to ordered by date.
	ListBetween(ctx context.Context, from, to time.Time) ([]Holiday, error)
	Create(ctx context.Context, h Holiday) (Holiday, error)
	// Upsert inserts h or renames the holiday already on h.Date.
	Upsert(ctx context.Context, h Holiday) error
	Delete(ctx context.Context, id int64) error
	ExistsByDate(ctx context.Context, date time.Time) (bool, error)
}

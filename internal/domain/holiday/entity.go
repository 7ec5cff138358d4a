package holiday

import "time"

// Holiday is a company-wide non-working day.
type Holiday struct {
	ID        int64
	Date      time.Time
	Name      string
	CreatedAt time.Time
}

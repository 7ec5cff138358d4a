package report

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hr-portal/internal/domain/timeoff"
)

// ReportRepository defines the read-only aggregation queries behind reports
type ReportRepository interface {
	CountByStatus(ctx context.Context) (StatusCounts, error)
	CountByLeaveType(ctx context.Context) (map[timeoff.LeaveType]int64, error)
	// CountIntersecting counts requests whose date range overlaps [from, to].
	CountIntersecting(ctx context.Context, from, to time.Time) (int64, error)
	// CountByDepartment is ordered by count descending then department.
	CountByDepartment(ctx context.Context) ([]DepartmentCount, error)
	// CountByMonth groups submissions created on or after since by YYYY-MM.
	CountByMonth(ctx context.Context, since time.Time) (map[string]int64, error)

	// EmployeeUsage returns allowance overrides and approved/pending business
	// days for every employee, optionally limited to one department.
	EmployeeUsage(ctx context.Context, year int, department *string) ([]EmployeeUsage, error)
}

package timeoff

import (
	"context"
	"time"
)

// RequestRepository - interface for time_off_requests table
type RequestRepository interface {
	Create(ctx context.Context, request TimeOffRequest) (TimeOffRequest, error)
	GetByID(ctx context.Context, id int64) (TimeOffRequest, error)
	// ListPending returns pending requests, most recently created first.
	ListPending(ctx context.Context) ([]TimeOffRequest, error)
	// List returns one page of matching requests and the total match count.
	List(ctx context.Context, filter RequestFilter) ([]TimeOffRequest, int64, error)
	// SetStatus moves a pending request to status and reports whether a row changed.
	SetStatus(ctx context.Context, id int64, status Status, reviewerID int64) (bool, error)
	// BulkApprove approves the pending requests among ids and returns how many changed.
	BulkApprove(ctx context.Context, ids []int64, reviewerID int64) (int64, error)
	// SumBusinessDays totals business days per leave type for requests in status
	// whose start or end date falls in year.
	SumBusinessDays(ctx context.Context, employeeID int64, year int, status Status) (map[LeaveType]int, error)
}

// AllowanceRepository - interface for leave_allowances table
type AllowanceRepository interface {
	Upsert(ctx context.Context, allowance LeaveAllowance) (LeaveAllowance, error)
	// GetByEmployeeAndYear returns the overrides present for the employee and year.
	GetByEmployeeAndYear(ctx context.Context, employeeID int64, year int) (map[LeaveType]int, error)
}

// HolidayCalendar supplies company holidays to the business-day counter.
type HolidayCalendar interface {
	HolidaySet(ctx context.Context, from, to time.Time) (HolidaySet, error)
}

// EmployeeLocker serialises balance-affecting writes for one employee.
// It must be called inside a transaction and returns ErrEmployeeNotFound
// when the employee does not exist.
type EmployeeLocker interface {
	LockEmployee(ctx context.Context, employeeID int64) error
}

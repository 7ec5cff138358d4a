package timeoff

import (
	"time"
)

type LeaveType string

const (
	LeaveTypeVacation    LeaveType = "vacation"
	LeaveTypeSick        LeaveType = "sick"
	LeaveTypePersonal    LeaveType = "personal"
	LeaveTypeBereavement LeaveType = "bereavement"
	LeaveTypeOther       LeaveType = "other"
)

// LeaveTypes lists every leave type in display order.
var LeaveTypes = []LeaveType{
	LeaveTypeVacation,
	LeaveTypeSick,
	LeaveTypePersonal,
	LeaveTypeBereavement,
	LeaveTypeOther,
}

// DefaultAllowances applies when no LeaveAllowance override exists.
var DefaultAllowances = map[LeaveType]int{
	LeaveTypeVacation:    15,
	LeaveTypeSick:        10,
	LeaveTypePersonal:    5,
	LeaveTypeBereavement: 3,
	LeaveTypeOther:       2,
}

func (t LeaveType) IsValid() bool {
	_, ok := DefaultAllowances[t]
	return ok
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Statuses lists every request status in display order.
var Statuses = []Status{StatusPending, StatusApproved, StatusRejected}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether s may move to next. Only pending requests
// move, and only to a terminal state.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && (next == StatusApproved || next == StatusRejected)
}

// TimeOffRequest entity
type TimeOffRequest struct {
	ID         int64
	EmployeeID int64
	LeaveType  LeaveType

	StartDate time.Time
	EndDate   time.Time

	// BusinessDays is fixed at submission against the holiday calendar of the day.
	BusinessDays int
	Notes        string

	Status     Status
	ReviewedBy *int64
	ReviewedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	EmployeeName *string
	Department   *string
}

// CalendarDays returns the inclusive number of calendar days the request spans.
func (r TimeOffRequest) CalendarDays() int {
	return CalendarDays(r.StartDate, r.EndDate)
}

// LeaveAllowance is an HR override of the default allowance for one year.
type LeaveAllowance struct {
	EmployeeID  int64
	LeaveType   LeaveType
	Year        int
	DaysAllowed int
	UpdatedAt   time.Time
}

// DateOnly truncates t to midnight UTC of its calendar date in t's location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CalendarDays returns the inclusive number of calendar days between start and end.
func CalendarDays(start, end time.Time) int {
	s, e := DateOnly(start), DateOnly(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

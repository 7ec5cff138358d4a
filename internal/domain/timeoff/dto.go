package timeoff

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-portal/internal/pkg/validator"
)

const (
	maxNotesLength  = 1000
	maxBulkApproval = 500

	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

type CreateTimeOffRequest struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Notes     string `json:"notes"`
}

// Validate checks the submission form. today is the caller's current date;
// start_date may not be before it.
func (r *CreateTimeOffRequest) Validate(today time.Time) error {
	var errs validator.ValidationErrors

	r.LeaveType = strings.ToLower(strings.TrimSpace(r.LeaveType))
	if validator.IsEmpty(r.LeaveType) {
		errs.Add("leave_type", "leave_type is required")
	} else if !LeaveType(r.LeaveType).IsValid() {
		errs.Add("leave_type", "leave_type must be one of vacation, sick, personal, bereavement, other")
	}

	start, startOK := validator.IsValidDate(strings.TrimSpace(r.StartDate))
	if !startOK {
		errs.Add("start_date", "start_date must be a valid date (YYYY-MM-DD)")
	}
	end, endOK := validator.IsValidDate(strings.TrimSpace(r.EndDate))
	if !endOK {
		errs.Add("end_date", "end_date must be a valid date (YYYY-MM-DD)")
	}

	if startOK && start.Before(DateOnly(today)) {
		errs.Add("start_date", "start_date cannot be in the past")
	}
	if startOK && endOK && end.Before(start) {
		errs.Add("end_date", "end_date must be on or after start_date")
	}

	if len(r.Notes) > maxNotesLength {
		errs.Add("notes", fmt.Sprintf("notes must not exceed %d characters", maxNotesLength))
	}

	return errs.Err()
}

// Dates returns the parsed start and end dates. Call after Validate.
func (r *CreateTimeOffRequest) Dates() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(strings.TrimSpace(r.StartDate))
	end, _ := validator.IsValidDate(strings.TrimSpace(r.EndDate))
	return start, end
}

type ReviewRequest struct {
	RequestID int64 `json:"request_id"`
}

func (r *ReviewRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.RequestID <= 0 {
		errs.Add("request_id", "request_id must be a positive integer")
	}
	return errs.Err()
}

type BulkApproveRequest struct {
	RequestIDs []int64 `json:"request_ids"`
}

// Validate checks the id list and removes duplicates in place.
func (r *BulkApproveRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.RequestIDs) == 0 {
		errs.Add("request_ids", "request_ids must not be empty")
		return errs
	}

	seen := make(map[int64]struct{}, len(r.RequestIDs))
	unique := make([]int64, 0, len(r.RequestIDs))
	for _, id := range r.RequestIDs {
		if id <= 0 {
			errs.Add("request_ids", "request_ids must contain positive integers only")
			return errs
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	if len(unique) > maxBulkApproval {
		errs.Add("request_ids", fmt.Sprintf("at most %d requests can be approved at once", maxBulkApproval))
		return errs
	}

	r.RequestIDs = unique
	return nil
}

type BulkApproveResult struct {
	Requested int   `json:"requested"`
	Updated   int64 `json:"updated"`
}

// OrderBy is the closed set of orderings a listing may use.
type OrderBy string

const (
	OrderCreatedAtDesc    OrderBy = "created_at_desc"
	OrderCreatedAtAsc     OrderBy = "created_at_asc"
	OrderEmployeeNameAsc  OrderBy = "employee_name_asc"
	OrderEmployeeNameDesc OrderBy = "employee_name_desc"
)

// ParseOrderBy maps user input onto the allow-list. Unknown values fall back
// to OrderCreatedAtDesc.
func ParseOrderBy(s string) OrderBy {
	normalized := strings.ToLower(strings.Join(strings.Fields(s), "_"))
	switch OrderBy(normalized) {
	case OrderCreatedAtAsc, OrderEmployeeNameAsc, OrderEmployeeNameDesc:
		return OrderBy(normalized)
	default:
		return OrderCreatedAtDesc
	}
}

// RequestFilter narrows a request listing. Nil fields are unconstrained.
type RequestFilter struct {
	Status     *Status
	Department *string
	LeaveType  *LeaveType
	EmployeeID *int64
	StartDate  *time.Time // start_date >= StartDate
	EndDate    *time.Time // end_date <= EndDate
	Search     *string

	OrderBy OrderBy
	Page    int
	Limit   int
}

func (f *RequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !f.Status.IsValid() {
		errs.Add("status", "status must be one of pending, approved, rejected")
	}
	if f.LeaveType != nil && !f.LeaveType.IsValid() {
		errs.Add("leave_type", "leave_type must be one of vacation, sick, personal, bereavement, other")
	}
	if f.EmployeeID != nil && *f.EmployeeID <= 0 {
		errs.Add("employee_id", "employee_id must be a positive integer")
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		errs.Add("end_date", "end_date must be on or after start_date")
	}
	if f.Page < 0 {
		errs.Add("page", "page must not be negative")
	}
	if f.Limit < 0 {
		errs.Add("limit", "limit must not be negative")
	}

	return errs.Err()
}

// Normalize applies pagination and ordering defaults.
func (f *RequestFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		f.Limit = MaxPageLimit
	}
	f.OrderBy = ParseOrderBy(string(f.OrderBy))
}

func (f RequestFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

type TimeOffRequestResponse struct {
	ID                int64      `json:"id"`
	EmployeeID        int64      `json:"employee_id"`
	EmployeeName      *string    `json:"employee_name,omitempty"`
	Department        *string    `json:"department,omitempty"`
	LeaveType         LeaveType  `json:"leave_type"`
	StartDate         string     `json:"start_date"`
	EndDate           string     `json:"end_date"`
	BusinessDays      int        `json:"business_days"`
	TotalCalendarDays int        `json:"total_calendar_days"`
	Notes             string     `json:"notes"`
	Status            Status     `json:"status"`
	ReviewedBy        *int64     `json:"reviewed_by,omitempty"`
	ReviewedAt        *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

func NewTimeOffRequestResponse(r TimeOffRequest) TimeOffRequestResponse {
	return TimeOffRequestResponse{
		ID:                r.ID,
		EmployeeID:        r.EmployeeID,
		EmployeeName:      r.EmployeeName,
		Department:        r.Department,
		LeaveType:         r.LeaveType,
		StartDate:         r.StartDate.Format(validator.DateLayout),
		EndDate:           r.EndDate.Format(validator.DateLayout),
		BusinessDays:      r.BusinessDays,
		TotalCalendarDays: r.CalendarDays(),
		Notes:             r.Notes,
		Status:            r.Status,
		ReviewedBy:        r.ReviewedBy,
		ReviewedAt:        r.ReviewedAt,
		CreatedAt:         r.CreatedAt,
	}
}

type ListTimeOffResponse struct {
	Requests   []TimeOffRequestResponse `json:"requests"`
	Total      int64                    `json:"total"`
	Page       int                      `json:"page"`
	Limit      int                      `json:"limit"`
	TotalPages int                      `json:"total_pages"`
}

type BalanceResponse struct {
	EmployeeID int64   `json:"employee_id"`
	Year       int     `json:"year"`
	Balances   Balance `json:"balances"`
}

type PreviewResponse struct {
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	BusinessDays int    `json:"business_days"`
	CalendarDays int    `json:"calendar_days"`
}

type SetAllowanceRequest struct {
	EmployeeID  int64  `json:"employee_id"`
	LeaveType   string `json:"leave_type"`
	Year        int    `json:"year"`
	DaysAllowed int    `json:"days_allowed"`
}

func (r *SetAllowanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs.Add("employee_id", "employee_id must be a positive integer")
	}
	r.LeaveType = strings.ToLower(strings.TrimSpace(r.LeaveType))
	if !LeaveType(r.LeaveType).IsValid() {
		errs.Add("leave_type", "leave_type must be one of vacation, sick, personal, bereavement, other")
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs.Add("year", "year must be between 2000 and 2100")
	}
	if r.DaysAllowed < 0 || r.DaysAllowed > 366 {
		errs.Add("days_allowed", "days_allowed must be between 0 and 366")
	}

	return errs.Err()
}

type AllowanceResponse struct {
	LeaveType   LeaveType `json:"leave_type"`
	Year        int       `json:"year"`
	DaysAllowed int       `json:"days_allowed"`
	IsOverride  bool      `json:"is_override"`
}

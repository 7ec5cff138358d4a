package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-portal/internal/domain/timeoff"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// TrendMonths is the length of the submission trend window.
const TrendMonths = 12

// MaxExportRows caps the number of requests written to one export.
const MaxExportRows = 10000

// ========================================
// TIME-OFF SUMMARY
// ========================================

type StatusCounts struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

func (c StatusCounts) Total() int64 {
	return c.Pending + c.Approved + c.Rejected
}

// ApprovalRate is approved / (approved + rejected) as a percentage rounded
// to two places. It is zero when nothing has been reviewed.
func (c StatusCounts) ApprovalRate() decimal.Decimal {
	reviewed := c.Approved + c.Rejected
	if reviewed == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(c.Approved).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(reviewed)).
		Round(2)
}

type LeaveTypeCount struct {
	LeaveType timeoff.LeaveType `json:"leave_type"`
	Count     int64             `json:"count"`
}

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

type MonthlyCount struct {
	Month string `json:"month"` // YYYY-MM
	Count int64  `json:"count"`
}

type TimeOffSummary struct {
	GeneratedAt  time.Time         `json:"generated_at"`
	Total        int64             `json:"total"`
	ByStatus     StatusCounts      `json:"by_status"`
	ByLeaveType  []LeaveTypeCount  `json:"by_leave_type"`
	CurrentMonth int64             `json:"current_month"`
	ByDepartment []DepartmentCount `json:"by_department"`
	MonthlyTrend []MonthlyCount    `json:"monthly_trend"`
	ApprovalRate decimal.Decimal   `json:"approval_rate"`
}

// MonthKey formats t as the YYYY-MM key used by the monthly trend.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// TrendWindow returns the first day of the oldest month in the trailing
// window ending with now's month, and the month keys oldest first.
func TrendWindow(now time.Time) (time.Time, []string) {
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	since := current.AddDate(0, -(TrendMonths - 1), 0)

	keys := make([]string, 0, TrendMonths)
	for m := since; !m.After(current); m = m.AddDate(0, 1, 0) {
		keys = append(keys, MonthKey(m))
	}
	return since, keys
}

// MonthRange returns the first and last day of now's month.
func MonthRange(now time.Time) (time.Time, time.Time) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// ========================================
// LEAVE BALANCE REPORT
// ========================================

type BalanceReportRequest struct {
	Year       int
	Department *string
}

func (r *BalanceReportRequest) Validate(now time.Time) error {
	var errs validator.ValidationErrors

	if r.Year == 0 {
		r.Year = now.Year()
	}
	if r.Year < 2000 || r.Year > now.Year()+1 {
		errs.Add("year", fmt.Sprintf("year must be between 2000 and %d", now.Year()+1))
	}
	if r.Department != nil {
		d := strings.TrimSpace(*r.Department)
		if d == "" {
			r.Department = nil
		} else {
			r.Department = &d
		}
	}

	return errs.Err()
}

// EmployeeUsage is the raw per-employee input of the balance report.
type EmployeeUsage struct {
	EmployeeID   int64
	EmployeeName string
	Department   string
	Overrides    map[timeoff.LeaveType]int
	Used         map[timeoff.LeaveType]int
	Pending      map[timeoff.LeaveType]int
}

type EmployeeBalanceRow struct {
	EmployeeID   int64           `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Department   string          `json:"department"`
	Balances     timeoff.Balance `json:"balances"`
	TotalAllowed int             `json:"total_allowed"`
	TotalUsed    int             `json:"total_used"`
	// Utilization is TotalUsed / TotalAllowed as a percentage.
	Utilization decimal.Decimal `json:"utilization"`
}

type BalanceReport struct {
	Year        int                  `json:"year"`
	GeneratedAt time.Time            `json:"generated_at"`
	Employees   []EmployeeBalanceRow `json:"employees"`
}

// Utilization returns used / total as a percentage rounded to two places.
func Utilization(used, total int) decimal.Decimal {
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(used)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(2)
}

// ========================================
// EXPORT
// ========================================

type ExportFile struct {
	Filename  string
	Content   []byte
	Rows      int
	Truncated bool
}

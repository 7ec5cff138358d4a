package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hr-portal/internal/domain/report"
	"github.com/cmlabs-hris/hr-portal/internal/domain/timeoff"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// CountByStatus returns pending/approved/rejected counts in a single query
func (r *reportRepositoryImpl) CountByStatus(ctx context.Context) (report.StatusCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0) as pending_count,
			COALESCE(SUM(CASE WHEN status = 'approved' THEN 1 ELSE 0 END), 0) as approved_count,
			COALESCE(SUM(CASE WHEN status = 'rejected' THEN 1 ELSE 0 END), 0) as rejected_count
		FROM time_off_requests
	`

	var counts report.StatusCounts
	if err := q.QueryRow(ctx, query).Scan(&counts.Pending, &counts.Approved, &counts.Rejected); err != nil {
		return report.StatusCounts{}, fmt.Errorf("failed to count requests by status: %w", err)
	}
	return counts, nil
}

func (r *reportRepositoryImpl) CountByLeaveType(ctx context.Context) (map[timeoff.LeaveType]int64, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT leave_type, COUNT(*) FROM time_off_requests GROUP BY leave_type`)
	if err != nil {
		return nil, fmt.Errorf("failed to count requests by leave type: %w", err)
	}
	defer rows.Close()

	counts := make(map[timeoff.LeaveType]int64)
	for rows.Next() {
		var leaveType timeoff.LeaveType
		var count int64
		if err := rows.Scan(&leaveType, &count); err != nil {
			return nil, err
		}
		counts[leaveType] = count
	}
	return counts, rows.Err()
}

// CountIntersecting counts requests with start_date <= to AND end_date >= from
func (r *reportRepositoryImpl) CountIntersecting(ctx context.Context, from, to time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM time_off_requests
		WHERE start_date <= $2 AND end_date >= $1
	`

	var count int64
	if err := q.QueryRow(ctx, query, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count requests in range: %w", err)
	}
	return count, nil
}

func (r *reportRepositoryImpl) CountByDepartment(ctx context.Context) ([]report.DepartmentCount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.department, COUNT(*) as request_count
		FROM time_off_requests r
		JOIN employees e ON r.employee_id = e.id
		GROUP BY e.department
		ORDER BY request_count DESC, e.department ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count requests by department: %w", err)
	}
	defer rows.Close()

	counts := []report.DepartmentCount{}
	for rows.Next() {
		var c report.DepartmentCount
		if err := rows.Scan(&c.Department, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *reportRepositoryImpl) CountByMonth(ctx context.Context, since time.Time) (map[string]int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT TO_CHAR(DATE_TRUNC('month', created_at), 'YYYY-MM') as month, COUNT(*)
		FROM time_off_requests
		WHERE created_at >= $1
		GROUP BY month
	`

	rows, err := q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count requests by month: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var month string
		var count int64
		if err := rows.Scan(&month, &count); err != nil {
			return nil, err
		}
		counts[month] = count
	}
	return counts, rows.Err()
}

// EmployeeUsage loads employees, their overrides and their per-type approved
// and pending business days for year in three queries.
func (r *reportRepositoryImpl) EmployeeUsage(ctx context.Context, year int, department *string) ([]report.EmployeeUsage, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := ""
	args := []interface{}{}
	if department != nil {
		whereClause = "WHERE e.department = $1"
		args = append(args, *department)
	}

	rows, err := q.Query(ctx, fmt.Sprintf(`
		SELECT e.id, e.full_name, e.department
		FROM employees e
		%s
		ORDER BY e.department ASC, e.full_name ASC, e.id ASC
	`, whereClause), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees for balance report: %w", err)
	}

	usages := []report.EmployeeUsage{}
	index := make(map[int64]int)
	for rows.Next() {
		u := report.EmployeeUsage{
			Overrides: make(map[timeoff.LeaveType]int),
			Used:      make(map[timeoff.LeaveType]int),
			Pending:   make(map[timeoff.LeaveType]int),
		}
		if err := rows.Scan(&u.EmployeeID, &u.EmployeeName, &u.Department); err != nil {
			rows.Close()
			return nil, err
		}
		index[u.EmployeeID] = len(usages)
		usages = append(usages, u)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(usages) == 0 {
		return usages, nil
	}

	// Overrides
	rows, err = q.Query(ctx, `
		SELECT employee_id, leave_type, days_allowed
		FROM leave_allowances
		WHERE year = $1
	`, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load allowances for balance report: %w", err)
	}
	for rows.Next() {
		var employeeID int64
		var leaveType timeoff.LeaveType
		var days int
		if err := rows.Scan(&employeeID, &leaveType, &days); err != nil {
			rows.Close()
			return nil, err
		}
		if i, ok := index[employeeID]; ok {
			usages[i].Overrides[leaveType] = days
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Approved and pending business days
	rows, err = q.Query(ctx, `
		SELECT employee_id, leave_type, status, COALESCE(SUM(business_days), 0)
		FROM time_off_requests
		WHERE status IN ('approved', 'pending')
		  AND (EXTRACT(YEAR FROM start_date)::int = $1 OR EXTRACT(YEAR FROM end_date)::int = $1)
		GROUP BY employee_id, leave_type, status
	`, year)
	if err != nil {
		return nil, fmt.Errorf("failed to sum leave usage for balance report: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var employeeID int64
		var leaveType timeoff.LeaveType
		var status timeoff.Status
		var days int64
		if err := rows.Scan(&employeeID, &leaveType, &status, &days); err != nil {
			return nil, err
		}
		i, ok := index[employeeID]
		if !ok {
			continue
		}
		if status == timeoff.StatusApproved {
			usages[i].Used[leaveType] = int(days)
		} else {
			usages[i].Pending[leaveType] = int(days)
		}
	}
	return usages, rows.Err()
}

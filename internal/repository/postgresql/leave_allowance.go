package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hr-portal/internal/domain/timeoff"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/database"
)

type leaveAllowanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveAllowanceRepository(db *database.DB) timeoff.AllowanceRepository {
	return &leaveAllowanceRepositoryImpl{db: db}
}

func (r *leaveAllowanceRepositoryImpl) Upsert(ctx context.Context, allowance timeoff.LeaveAllowance) (timeoff.LeaveAllowance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_allowances (employee_id, leave_type, year, days_allowed, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (employee_id, leave_type, year) DO UPDATE SET
			days_allowed = EXCLUDED.days_allowed,
			updated_at = NOW()
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		allowance.EmployeeID, allowance.LeaveType, allowance.Year, allowance.DaysAllowed,
	).Scan(&allowance.UpdatedAt)
	if err != nil {
		return timeoff.LeaveAllowance{}, fmt.Errorf("upsert allowance: %w", err)
	}
	return allowance, nil
}

func (r *leaveAllowanceRepositoryImpl) GetByEmployeeAndYear(ctx context.Context, employeeID int64, year int) (map[timeoff.LeaveType]int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT leave_type, days_allowed
		FROM leave_allowances
		WHERE employee_id = $1 AND year = $2
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("get allowances for employee %d: %w", employeeID, err)
	}
	defer rows.Close()

	overrides := make(map[timeoff.LeaveType]int)
	for rows.Next() {
		var leaveType timeoff.LeaveType
		var days int
		if err := rows.Scan(&leaveType, &days); err != nil {
			return nil, err
		}
		overrides[leaveType] = days
	}
	return overrides, rows.Err()
}

package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hr-portal/internal/domain/timeoff"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const timeOffRequestColumns = `
	r.id, r.employee_id, r.leave_type, r.start_date, r.end_date, r.business_days,
	r.notes, r.status, r.reviewed_by, r.reviewed_at, r.created_at, r.updated_at,
	e.full_name, e.department`

// requestOrderClauses maps every allowed ordering to its SQL. Only values
// from this table are ever concatenated into a query.
var requestOrderClauses = map[timeoff.OrderBy]string{
	timeoff.OrderCreatedAtDesc:    "r.created_at DESC, r.id DESC",
	timeoff.OrderCreatedAtAsc:     "r.created_at ASC, r.id ASC",
	timeoff.OrderEmployeeNameAsc:  "e.full_name ASC, r.created_at DESC",
	timeoff.OrderEmployeeNameDesc: "e.full_name DESC, r.created_at DESC",
}

type timeOffRequestRepositoryImpl struct {
	db *database.DB
}

func NewTimeOffRequestRepository(db *database.DB) timeoff.RequestRepository {
	return &timeOffRequestRepositoryImpl{db: db}
}

func scanTimeOffRequest(row pgx.Row) (timeoff.TimeOffRequest, error) {
	var req timeoff.TimeOffRequest
	var employeeName, department string
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.LeaveType, &req.StartDate, &req.EndDate, &req.BusinessDays,
		&req.Notes, &req.Status, &req.ReviewedBy, &req.ReviewedAt, &req.CreatedAt, &req.UpdatedAt,
		&employeeName, &department,
	)
	if err != nil {
		return timeoff.TimeOffRequest{}, err
	}
	req.EmployeeName = &employeeName
	req.Department = &department
	return req, nil
}

func (r *timeOffRequestRepositoryImpl) Create(ctx context.Context, request timeoff.TimeOffRequest) (timeoff.TimeOffRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_off_requests (
			employee_id, leave_type, start_date, end_date, business_days, notes,
			status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	request.Status = timeoff.StatusPending
	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.LeaveType, request.StartDate, request.EndDate, request.BusinessDays, request.Notes,
		request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return timeoff.TimeOffRequest{}, fmt.Errorf("insert time off request: %w", err)
	}

	return request, nil
}

func (r *timeOffRequestRepositoryImpl) GetByID(ctx context.Context, id int64) (timeoff.TimeOffRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeOffRequestColumns + `
		FROM time_off_requests r
		JOIN employees e ON r.employee_id = e.id
		WHERE r.id = $1
	`

	req, err := scanTimeOffRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeoff.TimeOffRequest{}, timeoff.ErrRequestNotFound
		}
		return timeoff.TimeOffRequest{}, fmt.Errorf("get time off request %d: %w", id, err)
	}
	return req, nil
}

func (r *timeOffRequestRepositoryImpl) ListPending(ctx context.Context) ([]timeoff.TimeOffRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeOffRequestColumns + `
		FROM time_off_requests r
		JOIN employees e ON r.employee_id = e.id
		WHERE r.status = $1
		ORDER BY r.created_at DESC, r.id DESC
	`

	rows, err := q.Query(ctx, query, timeoff.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}
	defer rows.Close()

	requests := []timeoff.TimeOffRequest{}
	for rows.Next() {
		req, err := scanTimeOffRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pending request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// buildRequestWhere renders the WHERE clause for filter. Every value is bound
// as a parameter; the returned clause only ever contains column names from
// this function.
func buildRequestWhere(filter timeoff.RequestFilter) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	add := func(condition string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(condition, argIndex))
		args = append(args, value)
		argIndex++
	}

	if filter.Status != nil {
		add("r.status = $%d", *filter.Status)
	}
	if filter.Department != nil {
		add("e.department = $%d", *filter.Department)
	}
	if filter.LeaveType != nil {
		add("r.leave_type = $%d", *filter.LeaveType)
	}
	if filter.EmployeeID != nil {
		add("r.employee_id = $%d", *filter.EmployeeID)
	}
	if filter.StartDate != nil {
		add("r.start_date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("r.end_date <= $%d", *filter.EndDate)
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		pattern := "%" + escapeLike(strings.TrimSpace(*filter.Search)) + "%"
		add("(e.full_name ILIKE $%[1]d OR r.notes ILIKE $%[1]d)", pattern)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// escapeLike escapes LIKE wildcards so search input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func orderClause(orderBy timeoff.OrderBy) string {
	if clause, ok := requestOrderClauses[orderBy]; ok {
		return clause
	}
	return requestOrderClauses[timeoff.OrderCreatedAtDesc]
}

func (r *timeOffRequestRepositoryImpl) List(ctx context.Context, filter timeoff.RequestFilter) ([]timeoff.TimeOffRequest, int64, error) {
	q := GetQuerier(ctx, r.db)
	filter.Normalize()

	whereClause, args := buildRequestWhere(filter)

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM time_off_requests r
		JOIN employees e ON r.employee_id = e.id
		%s
	`, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count time off requests: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s
		FROM time_off_requests r
		JOIN employees e ON r.employee_id = e.id
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, timeOffRequestColumns, whereClause, orderClause(filter.OrderBy), len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list time off requests: %w", err)
	}
	defer rows.Close()

	requests := []timeoff.TimeOffRequest{}
	for rows.Next() {
		req, err := scanTimeOffRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan time off request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *timeOffRequestRepositoryImpl) SetStatus(ctx context.Context, id int64, status timeoff.Status, reviewerID int64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_off_requests
		SET status = $1, reviewed_by = $2, reviewed_at = NOW(), updated_at = NOW()
		WHERE id = $3 AND status = $4
	`

	tag, err := q.Exec(ctx, query, status, reviewerID, id, timeoff.StatusPending)
	if err != nil {
		return false, fmt.Errorf("set status of request %d: %w", id, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *timeOffRequestRepositoryImpl) BulkApprove(ctx context.Context, ids []int64, reviewerID int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_off_requests
		SET status = $1, reviewed_by = $2, reviewed_at = NOW(), updated_at = NOW()
		WHERE id = ANY($3) AND status = $4
	`

	tag, err := q.Exec(ctx, query, timeoff.StatusApproved, reviewerID, ids, timeoff.StatusPending)
	if err != nil {
		return 0, fmt.Errorf("bulk approve %d requests: %w", len(ids), err)
	}
	return tag.RowsAffected(), nil
}

func (r *timeOffRequestRepositoryImpl) SumBusinessDays(ctx context.Context, employeeID int64, year int, status timeoff.Status) (map[timeoff.LeaveType]int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT leave_type, COALESCE(SUM(business_days), 0)
		FROM time_off_requests
		WHERE employee_id = $1
		  AND status = $2
		  AND (EXTRACT(YEAR FROM start_date)::int = $3 OR EXTRACT(YEAR FROM end_date)::int = $3)
		GROUP BY leave_type
	`

	rows, err := q.Query(ctx, query, employeeID, status, year)
	if err != nil {
		return nil, fmt.Errorf("sum %s days for employee %d: %w", status, employeeID, err)
	}
	defer rows.Close()

	sums := make(map[timeoff.LeaveType]int)
	for rows.Next() {
		var leaveType timeoff.LeaveType
		var days int64
		if err := rows.Scan(&leaveType, &days); err != nil {
			return nil, err
		}
		sums[leaveType] = int(days)
	}
	return sums, rows.Err()
}

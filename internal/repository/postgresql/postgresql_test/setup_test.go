package postgresql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-portal/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal/internal/domain/timeoff"
	"github.com/cmlabs-hris/hr-portal/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/database"
	"github.com/cmlabs-hris/hr-portal/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// newTestDB connects to TEST_DATABASE_URL, applies the schema and empties
// every table. The test is skipped when no database is configured.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn, 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	ctx := context.Background()
	require.NoError(t, postgresql.Migrate(ctx, db))

	_, err = db.Exec(ctx, `TRUNCATE TABLE time_off_requests, leave_allowances, company_holidays, employees RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return db
}

func seedEmployee(t *testing.T, repo employee.EmployeeRepository, name, department string) employee.Employee {
	t.Helper()

	e, err := repo.Create(context.Background(), employee.Employee{
		FullName:     name,
		Email:        name + "@example.com",
		Department:   department,
		Position:     "Staff",
		Role:         user.RoleEmployee,
		HireDate:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		PasswordHash: "x",
	})
	require.NoError(t, err)
	return e
}

func seedRequest(t *testing.T, repo timeoff.RequestRepository, employeeID int64, leaveType timeoff.LeaveType, start, end string, days int) timeoff.TimeOffRequest {
	t.Helper()

	s, _ := time.Parse("2006-01-02", start)
	e, _ := time.Parse("2006-01-02", end)
	req, err := repo.Create(context.Background(), timeoff.TimeOffRequest{
		EmployeeID:   employeeID,
		LeaveType:    leaveType,
		StartDate:    s,
		EndDate:      e,
		BusinessDays: days,
		Notes:        "seed",
	})
	require.NoError(t, err)
	return req
}

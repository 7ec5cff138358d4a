package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-portal/internal/domain/timeoff"
	"github.com/cmlabs-hris/hr-portal/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeOffRequestRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	employees := postgresql.NewEmployeeRepository(db)
	requests := postgresql.NewTimeOffRequestRepository(db)

	alice := seedEmployee(t, employees, "alice", "Engineering")
	created := seedRequest(t, requests, alice.ID, timeoff.LeaveTypeVacation, "2026-11-02", "2026-11-06", 5)

	assert.NotZero(t, created.ID)
	assert.Equal(t, timeoff.StatusPending, created.Status)

	got, err := requests.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, timeoff.StatusPending, got.Status)
	assert.Equal(t, 5, got.BusinessDays)
	assert.Equal(t, 5, got.CalendarDays())
	assert.Equal(t, "alice", *got.EmployeeName)
	assert.Equal(t, "Engineering", *got.Department)

	_, err = requests.GetByID(ctx, created.ID+100)
	assert.ErrorIs(t, err, timeoff.ErrRequestNotFound)
}

func TestTimeOffRequestRepository_SetStatusOnlyFromPending(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	employees := postgresql.NewEmployeeRepository(db)
	requests := postgresql.NewTimeOffRequestRepository(db)

	alice := seedEmployee(t, employees, "alice", "Engineering")
	hr := seedEmployee(t, employees, "henry", "People")
	req := seedRequest(t, requests, alice.ID, timeoff.LeaveTypeSick, "2026-11-02", "2026-11-02", 1)

	changed, err := requests.SetStatus(ctx, req.ID, timeoff.StatusApproved, hr.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = requests.SetStatus(ctx, req.ID, timeoff.StatusRejected, hr.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	got, err := requests.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, timeoff.StatusApproved, got.Status)
	require.NotNil(t, got.ReviewedBy)
	assert.Equal(t, hr.ID, *got.ReviewedBy)
}

func TestTimeOffRequestRepository_BulkApprove(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	employees := postgresql.NewEmployeeRepository(db)
	requests := postgresql.NewTimeOffRequestRepository(db)

	alice := seedEmployee(t, employees, "alice", "Engineering")
	hr := seedEmployee(t, employees, "henry", "People")
	r1 := seedRequest(t, requests, alice.ID, timeoff.LeaveTypeVacation, "2026-11-02", "2026-11-02", 1)
	r2 := seedRequest(t, requests, alice.ID, timeoff.LeaveTypeVacation, "2026-11-03", "2026-11-03", 1)
	r3 := seedRequest(t, requests, alice.ID, timeoff.LeaveTypeVacation, "2026-11-04", "2026-11-04", 1)

	// another reviewer got to r2 first
	changed, err := requests.SetStatus(ctx, r2.ID, timeoff.StatusApproved, hr.ID)
	require.NoError(t, err)
	require.True(t, changed)

	ids := []int64{r1.ID, r2.ID, r3.ID}
	updated, err := requests.BulkApprove(ctx, ids, hr.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	updated, err = requests.BulkApprove(ctx, ids, hr.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)

	updated, err = requests.BulkApprove(ctx, nil, hr.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)
}

func TestTimeOffRequestRepository_ListPending(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	employees := postgresql.NewEmployeeRepository(db)
	requests := postgresql.NewTimeOffRequestRepository(db)

	alice := seedEmployee(t, employees, "alice", "Engineering")
	hr := seedEmployee(t, employees, "henry", "People")
	first := seedRequest(t, requests, alice.ID, timeoff.LeaveTypeVacation, "2026-11-02", "2026-11-02", 1)
	second := seedRequest(t, requests, alice.ID, timeoff.LeaveTypeSick, "2026-11-09", "2026-11-10", 2)
	approved := seedRequest(t, requests, alice.ID, timeoff.LeaveTypeOther, "2026-11-16", "2026-11-16", 1)
	_, err := requests.SetStatus(ctx, approved.ID, timeoff.StatusApproved, hr.ID)
	require.NoError(t, err)

	pending, err := requests.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, second.ID, pending[0].ID)
	assert.Equal(t, first.ID, pending[1].ID)
}

func TestTimeOffRequestRepository_ListFiltered(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	employees := postgresql.NewEmployeeRepository(db)
	requests := postgresql.NewTimeOffRequestRepository(db)

	alice := seedEmployee(t, employees, "alice", "Engineering")
	bob := seedEmployee(t, employees, "bob", "Sales")
	hr := seedEmployee(t, employees, "henry", "People")

	a1 := seedRequest(t, requests, alice.ID, timeoff.LeaveTypeVacation, "2026-11-02", "2026-11-03", 2)
	a2 := seedRequest(t, requests, alice.ID, timeoff.LeaveTypeSick, "2026-11-05", "2026-11-05", 1)
	b1 := seedRequest(t, requests, bob.ID, timeoff.LeaveTypeVacation, "2026-12-01", "2026-12-04", 4)
	_ = seedRequest(t, requests, bob.ID, timeoff.LeaveTypePersonal, "2026-12-07", "2026-12-07", 1)

	for _, id := range []int64{a1.ID, a2.ID, b1.ID} {
		_, err := requests.SetStatus(ctx, id, timeoff.StatusApproved, hr.ID)
		require.NoError(t, err)
	}

	approved := timeoff.StatusApproved
	rows, total, err := requests.List(ctx, timeoff.RequestFilter{Status: &approved})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	for _, r := range rows {
		assert.Equal(t, timeoff.StatusApproved, r.Status)
	}

	vacation := timeoff.LeaveTypeVacation
	rows, total, err = requests.List(ctx, timeoff.RequestFilter{Status: &approved, LeaveType: &vacation})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.ElementsMatch(t, []int64{a1.ID, b1.ID}, []int64{rows[0].ID, rows[1].ID})

	sales := "Sales"
	_, total, err = requests.List(ctx, timeoff.RequestFilter{Department: &sales})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	from := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	_, total, err = requests.List(ctx, timeoff.RequestFilter{StartDate: &from})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	search := "ALI"
	_, total, err = requests.List(ctx, timeoff.RequestFilter{Search: &search})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	wildcard := "%"
	_, total, err = requests.List(ctx, timeoff.RequestFilter{Search: &wildcard})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	rows, total, err = requests.List(ctx, timeoff.RequestFilter{Limit: 3, Page: 2, OrderBy: timeoff.OrderCreatedAtAsc})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, rows, 1)

	rows, _, err = requests.List(ctx, timeoff.RequestFilter{OrderBy: timeoff.OrderEmployeeNameDesc})
	require.NoError(t, err)
	assert.Equal(t, "bob", *rows[0].EmployeeName)
}

func TestTimeOffRequestRepository_ListUnsafeOrderBy(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	employees := postgresql.NewEmployeeRepository(db)
	requests := postgresql.NewTimeOffRequestRepository(db)

	alice := seedEmployee(t, employees, "alice", "Engineering")
	first := seedRequest(t, requests, alice.ID, timeoff.LeaveTypeVacation, "2026-11-02", "2026-11-02", 1)
	second := seedRequest(t, requests, alice.ID, timeoff.LeaveTypeVacation, "2026-11-03", "2026-11-03", 1)

	rows, total, err := requests.List(ctx, timeoff.RequestFilter{
		OrderBy: "created_at; DROP TABLE employees; --",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, second.ID, rows[0].ID)
	assert.Equal(t, first.ID, rows[1].ID)

	// employees table must still be there
	_, err = employees.GetByID(ctx, alice.ID)
	assert.NoError(t, err)
}

func TestTimeOffRequestRepository_SumBusinessDays(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	employees := postgresql.NewEmployeeRepository(db)
	requests := postgresql.NewTimeOffRequestRepository(db)

	alice := seedEmployee(t, employees, "alice", "Engineering")
	hr := seedEmployee(t, employees, "henry", "People")

	span := seedRequest(t, requests, alice.ID, timeoff.LeaveTypeVacation, "2026-12-30", "2027-01-05", 4)
	nov := seedRequest(t, requests, alice.ID, timeoff.LeaveTypeVacation, "2026-11-02", "2026-11-04", 3)
	_ = seedRequest(t, requests, alice.ID, timeoff.LeaveTypeSick, "2026-11-09", "2026-11-09", 1)
	for _, id := range []int64{span.ID, nov.ID} {
		_, err := requests.SetStatus(ctx, id, timeoff.StatusApproved, hr.ID)
		require.NoError(t, err)
	}

	used2026, err := requests.SumBusinessDays(ctx, alice.ID, 2026, timeoff.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, 7, used2026[timeoff.LeaveTypeVacation])

	used2027, err := requests.SumBusinessDays(ctx, alice.ID, 2027, timeoff.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, 4, used2027[timeoff.LeaveTypeVacation])

	pending, err := requests.SumBusinessDays(ctx, alice.ID, 2026, timeoff.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, map[timeoff.LeaveType]int{timeoff.LeaveTypeSick: 1}, pending)
}

func TestWithTransaction_RollsBack(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	employees := postgresql.NewEmployeeRepository(db)
	requests := postgresql.NewTimeOffRequestRepository(db)
	tx := postgresql.NewTransactor(db)

	alice := seedEmployee(t, employees, "alice", "Engineering")
	boom := errors.New("boom")

	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := employees.LockEmployee(ctx, alice.ID); err != nil {
			return err
		}
		day := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
		_, err := requests.Create(ctx, timeoff.TimeOffRequest{
			EmployeeID:   alice.ID,
			LeaveType:    timeoff.LeaveTypeVacation,
			StartDate:    day,
			EndDate:      day,
			BusinessDays: 1,
		})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, total, err := requests.List(ctx, timeoff.RequestFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	err = tx.WithTransaction(ctx, func(ctx context.Context) error {
		return employees.LockEmployee(ctx, alice.ID+100)
	})
	assert.ErrorIs(t, err, timeoff.ErrEmployeeNotFound)
}

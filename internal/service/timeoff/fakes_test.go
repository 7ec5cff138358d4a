package timeoff

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/hr-portal/internal/domain/timeoff"
	"github.com/stretchr/testify/mock"
)

type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeLocker struct {
	known  map[int64]bool
	locked []int64
}

func (f *fakeLocker) LockEmployee(_ context.Context, id int64) error {
	if !f.known[id] {
		return timeoff.ErrEmployeeNotFound
	}
	f.locked = append(f.locked, id)
	return nil
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	nextID   int64
	rows     map[int64]timeoff.TimeOffRequest
	calls    int
	setFails bool // SetStatus reports no change, as if another reviewer won
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{rows: make(map[int64]timeoff.TimeOffRequest)}
}

func (f *fakeRequestRepo) add(r timeoff.TimeOffRequest) timeoff.TimeOffRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	r.ID = f.nextID
	if r.Status == "" {
		r.Status = timeoff.StatusPending
	}
	r.CreatedAt = time.Unix(f.nextID, 0)
	f.rows[r.ID] = r
	return r
}

func (f *fakeRequestRepo) Create(_ context.Context, r timeoff.TimeOffRequest) (timeoff.TimeOffRequest, error) {
	f.calls++
	r.Status = timeoff.StatusPending
	return f.add(r), nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id int64) (timeoff.TimeOffRequest, error) {
	f.calls++
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[id]
	if !ok {
		return timeoff.TimeOffRequest{}, timeoff.ErrRequestNotFound
	}
	return r, nil
}

func (f *fakeRequestRepo) ListPending(ctx context.Context) ([]timeoff.TimeOffRequest, error) {
	pending := timeoff.StatusPending
	rows, _, err := f.List(ctx, timeoff.RequestFilter{Status: &pending, Limit: 1000})
	return rows, err
}

func (f *fakeRequestRepo) List(_ context.Context, filter timeoff.RequestFilter) ([]timeoff.TimeOffRequest, int64, error) {
	f.calls++
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []timeoff.TimeOffRequest
	for _, r := range f.rows {
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.LeaveType != nil && r.LeaveType != *filter.LeaveType {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeRequestRepo) SetStatus(_ context.Context, id int64, status timeoff.Status, reviewerID int64) (bool, error) {
	f.calls++
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[id]
	if !ok || r.Status != timeoff.StatusPending || f.setFails {
		return false, nil
	}
	r.Status = status
	r.ReviewedBy = &reviewerID
	f.rows[id] = r
	return true, nil
}

func (f *fakeRequestRepo) BulkApprove(_ context.Context, ids []int64, reviewerID int64) (int64, error) {
	f.calls++
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, id := range ids {
		r, ok := f.rows[id]
		if !ok || r.Status != timeoff.StatusPending {
			continue
		}
		r.Status = timeoff.StatusApproved
		r.ReviewedBy = &reviewerID
		f.rows[id] = r
		n++
	}
	return n, nil
}

func (f *fakeRequestRepo) SumBusinessDays(_ context.Context, employeeID int64, year int, status timeoff.Status) (map[timeoff.LeaveType]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sums := make(map[timeoff.LeaveType]int)
	for _, r := range f.rows {
		if r.EmployeeID != employeeID || r.Status != status {
			continue
		}
		if r.StartDate.Year() == year || r.EndDate.Year() == year {
			sums[r.LeaveType] += r.BusinessDays
		}
	}
	return sums, nil
}

func (f *fakeRequestRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type fakeAllowanceRepo struct {
	rows map[int64]map[int]map[timeoff.LeaveType]int
}

func newFakeAllowanceRepo() *fakeAllowanceRepo {
	return &fakeAllowanceRepo{rows: make(map[int64]map[int]map[timeoff.LeaveType]int)}
}

func (f *fakeAllowanceRepo) Upsert(_ context.Context, a timeoff.LeaveAllowance) (timeoff.LeaveAllowance, error) {
	if f.rows[a.EmployeeID] == nil {
		f.rows[a.EmployeeID] = make(map[int]map[timeoff.LeaveType]int)
	}
	if f.rows[a.EmployeeID][a.Year] == nil {
		f.rows[a.EmployeeID][a.Year] = make(map[timeoff.LeaveType]int)
	}
	f.rows[a.EmployeeID][a.Year][a.LeaveType] = a.DaysAllowed
	a.UpdatedAt = time.Now()
	return a, nil
}

func (f *fakeAllowanceRepo) GetByEmployeeAndYear(_ context.Context, employeeID int64, year int) (map[timeoff.LeaveType]int, error) {
	out := make(map[timeoff.LeaveType]int)
	for lt, d := range f.rows[employeeID][year] {
		out[lt] = d
	}
	return out, nil
}

type staticHolidays timeoff.HolidaySet

func (h staticHolidays) HolidaySet(context.Context, time.Time, time.Time) (timeoff.HolidaySet, error) {
	return timeoff.HolidaySet(h), nil
}

type mockAllowanceRepo struct {
	mock.Mock
}

func (m *mockAllowanceRepo) Upsert(ctx context.Context, a timeoff.LeaveAllowance) (timeoff.LeaveAllowance, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(timeoff.LeaveAllowance), args.Error(1)
}

func (m *mockAllowanceRepo) GetByEmployeeAndYear(ctx context.Context, employeeID int64, year int) (map[timeoff.LeaveType]int, error) {
	args := m.Called(ctx, employeeID, year)
	overrides, _ := args.Get(0).(map[timeoff.LeaveType]int)
	return overrides, args.Error(1)
}

type mockHolidayCalendar struct {
	mock.Mock
}

func (m *mockHolidayCalendar) HolidaySet(ctx context.Context, from, to time.Time) (timeoff.HolidaySet, error) {
	args := m.Called(ctx, from, to)
	set, _ := args.Get(0).(timeoff.HolidaySet)
	return set, args.Error(1)
}

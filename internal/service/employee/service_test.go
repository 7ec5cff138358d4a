package employee

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hr-portal/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

type mockEmployeeRepo struct {
	mock.Mock
}

func (m *mockEmployeeRepo) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(employee.Employee), args.Error(1)
}

func (m *mockEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(employee.Employee), args.Error(1)
}

func (m *mockEmployeeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockEmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]employee.Employee), args.Get(1).(int64), args.Error(2)
}

func (m *mockEmployeeRepo) Departments(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockEmployeeRepo) LockEmployee(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

var (
	hr      = auth.AuthContext{UserID: 10, Role: user.RoleHR}
	staff   = auth.AuthContext{UserID: 1, Role: user.RoleEmployee}
	newHire = employee.CreateEmployeeRequest{
		FullName:   "Ada Lovelace",
		Email:      "ada@example.com",
		Department: "Engineering",
		Position:   "Analyst",
		HireDate:   "2026-11-02",
		Password:   "analytical-engine",
	}
)

func newTestService(t *testing.T, repo *mockEmployeeRepo) *EmployeeServiceImpl {
	svc := NewEmployeeService(repo, zaptest.NewLogger(t))
	svc.bcryptCost = bcrypt.MinCost
	return svc
}

func TestCreate_HashesPassword(t *testing.T) {
	repo := new(mockEmployeeRepo)
	repo.On("ExistsByEmail", mock.Anything, "ada@example.com").Return(false, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(e employee.Employee) bool {
		return e.Role == user.RoleEmployee &&
			bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte("analytical-engine")) == nil
	})).Return(employee.Employee{ID: 5, FullName: "Ada Lovelace", Email: "ada@example.com", Role: user.RoleEmployee}, nil)

	resp, err := newTestService(t, repo).Create(context.Background(), hr, newHire)
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	repo.AssertExpectations(t)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo := new(mockEmployeeRepo)
	repo.On("ExistsByEmail", mock.Anything, "ada@example.com").Return(true, nil)

	_, err := newTestService(t, repo).Create(context.Background(), hr, newHire)
	assert.ErrorIs(t, err, employee.ErrEmailExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_Authorization(t *testing.T) {
	repo := new(mockEmployeeRepo)
	svc := newTestService(t, repo)

	_, err := svc.Create(context.Background(), staff, newHire)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	admin := newHire
	admin.Role = "admin"
	_, err = svc.Create(context.Background(), hr, admin)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	repo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
}

func TestGet_SelfOrPrivileged(t *testing.T) {
	repo := new(mockEmployeeRepo)
	repo.On("GetByID", mock.Anything, int64(1)).Return(employee.Employee{ID: 1, FullName: "Sam"}, nil)
	svc := newTestService(t, repo)

	_, err := svc.Get(context.Background(), staff, 1)
	assert.NoError(t, err)
	_, err = svc.Get(context.Background(), hr, 1)
	assert.NoError(t, err)
	_, err = svc.Get(context.Background(), staff, 2)
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestList_Paginates(t *testing.T) {
	repo := new(mockEmployeeRepo)
	repo.On("List", mock.Anything, employee.EmployeeFilter{Page: 2, Limit: 20}).
		Return([]employee.Employee{{ID: 21}}, int64(21), nil)
	svc := newTestService(t, repo)

	resp, err := svc.List(context.Background(), hr, employee.EmployeeFilter{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Len(t, resp.Employees, 1)

	_, err = svc.List(context.Background(), staff, employee.EmployeeFilter{})
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

package employee

import (
	"context"

	"github.com/cmlabs-hris/hr-portal/internal/domain/auth"
)

// EmployeeService defines business logic for the employee directory
type EmployeeService interface {
	// Create onboards a new employee (hr/admin only)
	Create(ctx context.Context, caller auth.AuthContext, req CreateEmployeeRequest) (EmployeeResponse, error)

	// Get retrieves a single employee (self or hr/admin)
	Get(ctx context.Context, caller auth.AuthContext, id int64) (EmployeeResponse, error)

	// List lists employees with filters (hr/admin only)
	List(ctx context.Context, caller auth.AuthContext, filter EmployeeFilter) (ListEmployeeResponse, error)

	Departments(ctx context.Context, caller auth.AuthContext) ([]string, error)
}

package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	Departments(ctx context.Context) ([]string, error)
	// LockEmployee takes a row lock on the employee for the current transaction.
	LockEmployee(ctx context.Context, id int64) error
}

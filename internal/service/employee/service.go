package employee

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/cmlabs-hris/hr-portal/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/logger"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/validator"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var _ employee.EmployeeService = (*EmployeeServiceImpl)(nil)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	logger       *zap.Logger
	bcryptCost   int
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, log *zap.Logger) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		logger:       logger.OrNop(log).Named("employee.service"),
		bcryptCost:   bcrypt.DefaultCost,
	}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, caller auth.AuthContext, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := caller.Require(user.PermissionEmployeeManage); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	// only admins create admins
	if user.Role(req.Role) == user.RoleAdmin && caller.Role != user.RoleAdmin {
		return employee.EmployeeResponse{}, auth.ErrForbidden
	}

	exists, err := s.employeeRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return employee.EmployeeResponse{}, employee.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	hireDate, _ := validator.IsValidDate(req.HireDate)
	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		FullName:     req.FullName,
		Email:        req.Email,
		Department:   req.Department,
		Position:     req.Position,
		Role:         user.Role(req.Role),
		HireDate:     hireDate,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmailExists) {
			return employee.EmployeeResponse{}, err
		}
		s.logger.Error("create employee failed", zap.String("email", req.Email), zap.Error(err))
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	s.logger.Info("employee onboarded",
		zap.Int64("employee_id", created.ID),
		zap.String("department", created.Department),
		zap.Int64("created_by", caller.UserID),
	)
	return employee.NewEmployeeResponse(created), nil
}

func (s *EmployeeServiceImpl) Get(ctx context.Context, caller auth.AuthContext, id int64) (employee.EmployeeResponse, error) {
	if err := caller.Require(user.PermissionViewOwnProfile); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !caller.CanAccessEmployee(id) {
		return employee.EmployeeResponse{}, auth.ErrForbidden
	}

	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return employee.NewEmployeeResponse(e), nil
}

func (s *EmployeeServiceImpl) List(ctx context.Context, caller auth.AuthContext, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := caller.Require(user.PermissionEmployeeViewAll); err != nil {
		return employee.ListEmployeeResponse{}, err
	}
	filter.Normalize()

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.NewEmployeeResponse(e))
	}

	return employee.ListEmployeeResponse{
		Employees:  responses,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

func (s *EmployeeServiceImpl) Departments(ctx context.Context, caller auth.AuthContext) ([]string, error) {
	if err := caller.Require(user.PermissionEmployeeViewAll); err != nil {
		return nil, err
	}
	departments, err := s.employeeRepo.Departments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, nil
}

package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-portal/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/validator"
)

const minPasswordLength = 8

type CreateEmployeeRequest struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Role       string `json:"role"`
	HireDate   string `json:"hire_date"`
	Password   string `json:"password"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Department = strings.TrimSpace(r.Department)
	r.Position = strings.TrimSpace(r.Position)
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))

	if validator.IsEmpty(r.FullName) {
		errs.Add("full_name", "full_name is required")
	} else if len(r.FullName) > 255 {
		errs.Add("full_name", "full_name must not exceed 255 characters")
	}

	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "email must be a valid email address")
	}

	if validator.IsEmpty(r.Department) {
		errs.Add("department", "department is required")
	}
	if validator.IsEmpty(r.Position) {
		errs.Add("position", "position is required")
	}

	if r.Role == "" {
		r.Role = string(user.RoleEmployee)
	}
	if !user.Role(r.Role).IsValid() {
		errs.Add("role", "role must be one of employee, hr, admin")
	}

	if validator.IsEmpty(r.HireDate) {
		errs.Add("hire_date", "hire_date is required")
	} else if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs.Add("hire_date", "hire_date must be a valid date (YYYY-MM-DD)")
	}

	if len(r.Password) < minPasswordLength {
		errs.Add("password", "password must be at least 8 characters")
	}

	return errs.Err()
}

type EmployeeFilter struct {
	Department *string
	Search     *string
	Page       int
	Limit      int
}

func (f *EmployeeFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
}

func (f EmployeeFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type EmployeeResponse struct {
	ID         int64     `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
	Role       user.Role `json:"role"`
	HireDate   string    `json:"hire_date"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		FullName:   e.FullName,
		Email:      e.Email,
		Department: e.Department,
		Position:   e.Position,
		Role:       e.Role,
		HireDate:   e.HireDate.Format(validator.DateLayout),
		CreatedAt:  e.CreatedAt,
	}
}

type ListEmployeeResponse struct {
	Employees  []EmployeeResponse `json:"employees"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

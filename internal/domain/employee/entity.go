package employee

import (
	"time"

	"github.com/cmlabs-hris/hr-portal/internal/domain/user"
)

type Employee struct {
	ID           int64
	FullName     string
	Email        string
	Department   string
	Position     string
	Role         user.Role
	HireDate     time.Time
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

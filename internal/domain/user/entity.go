package user

type Role string

const (
	RoleAdmin    Role = "admin"    // Portal administrator - full access
	RoleHR       Role = "hr"       // HR staff - approves time off, manages employees
	RoleEmployee Role = "employee" // Regular employee
)

// Roles lists every assignable role.
var Roles = []Role{RoleAdmin, RoleHR, RoleEmployee}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleEmployee:
		return true
	}
	return false
}

// IsPrivileged reports whether r may act on other employees' data.
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleHR
}

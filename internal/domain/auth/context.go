package auth

import (
	"context"

	"github.com/cmlabs-hris/hr-portal/internal/domain/user"
)

// AuthContext identifies the caller of a service operation. It is built from
// the verified session token and passed explicitly into every service call.
type AuthContext struct {
	UserID    int64
	Role      user.Role
	CSRFToken string
}

// IsAuthenticated reports whether the context refers to a real employee.
func (a AuthContext) IsAuthenticated() bool {
	return a.UserID > 0 && a.Role.IsValid()
}

// IsPrivileged reports whether the caller may act on other employees' records.
func (a AuthContext) IsPrivileged() bool {
	return a.IsAuthenticated() && a.Role.IsPrivileged()
}

// Can reports whether the caller's role grants permission.
func (a AuthContext) Can(permission user.Permission) bool {
	return a.IsAuthenticated() && user.HasPermission(a.Role, permission)
}

// Require returns ErrUnauthenticated or ErrForbidden when the caller lacks permission.
func (a AuthContext) Require(permission user.Permission) error {
	if !a.IsAuthenticated() {
		return ErrUnauthenticated
	}
	if !user.HasPermission(a.Role, permission) {
		return ErrForbidden
	}
	return nil
}

// CanAccessEmployee reports whether the caller may read employeeID's records.
func (a AuthContext) CanAccessEmployee(employeeID int64) bool {
	return a.IsAuthenticated() && (a.UserID == employeeID || a.Role.IsPrivileged())
}

type ctxKey struct{}

// WithContext stores a in ctx. Only the HTTP auth middleware should call it.
func WithContext(ctx context.Context, a AuthContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// FromContext returns the AuthContext stored by the auth middleware.
func FromContext(ctx context.Context) (AuthContext, bool) {
	a, ok := ctx.Value(ctxKey{}).(AuthContext)
	return a, ok
}

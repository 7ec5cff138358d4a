package auth

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hr-portal/internal/domain/user"
	"github.com/stretchr/testify/assert"
)

func TestAuthContext_Require(t *testing.T) {
	hr := AuthContext{UserID: 1, Role: user.RoleHR}
	emp := AuthContext{UserID: 2, Role: user.RoleEmployee}

	assert.NoError(t, hr.Require(user.PermissionTimeOffApprove))
	assert.ErrorIs(t, emp.Require(user.PermissionTimeOffApprove), ErrForbidden)
	assert.ErrorIs(t, AuthContext{}.Require(user.PermissionTimeOffCreate), ErrUnauthenticated)
	assert.ErrorIs(t, AuthContext{UserID: 3, Role: "ghost"}.Require(user.PermissionTimeOffCreate), ErrUnauthenticated)
}

func TestAuthContext_CanAccessEmployee(t *testing.T) {
	emp := AuthContext{UserID: 2, Role: user.RoleEmployee}
	assert.True(t, emp.CanAccessEmployee(2))
	assert.False(t, emp.CanAccessEmployee(3))

	admin := AuthContext{UserID: 1, Role: user.RoleAdmin}
	assert.True(t, admin.CanAccessEmployee(3))
}

func TestFromContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithContext(context.Background(), AuthContext{UserID: 5, Role: user.RoleHR})
	got, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(5), got.UserID)
}

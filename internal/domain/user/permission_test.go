package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleHR, PermissionTimeOffApprove))
	assert.True(t, HasPermission(RoleAdmin, PermissionReportsView))
	assert.True(t, HasPermission(RoleEmployee, PermissionTimeOffCreate))
	assert.False(t, HasPermission(RoleEmployee, PermissionTimeOffApprove))
	assert.False(t, HasPermission(Role("contractor"), PermissionTimeOffViewOwn))
}

func TestRole(t *testing.T) {
	assert.True(t, RoleHR.IsPrivileged())
	assert.True(t, RoleAdmin.IsPrivileged())
	assert.False(t, RoleEmployee.IsPrivileged())
	assert.True(t, RoleEmployee.IsValid())
	assert.False(t, Role("owner").IsValid())
}

package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"

	// Time off
	PermissionTimeOffViewOwn   Permission = "timeoff.view_own"
	PermissionTimeOffCreate    Permission = "timeoff.create"
	PermissionTimeOffViewAll   Permission = "timeoff.view_all"
	PermissionTimeOffApprove   Permission = "timeoff.approve"
	PermissionAllowancesManage Permission = "timeoff.manage_allowances"

	// Holidays
	PermissionHolidayView   Permission = "holiday.view"
	PermissionHolidayManage Permission = "holiday.manage"

	// Employee Management
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"

	// Reports
	PermissionReportsView Permission = "reports.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionViewOwnProfile,
		PermissionTimeOffViewOwn,
		PermissionTimeOffCreate,
		PermissionTimeOffViewAll,
		PermissionTimeOffApprove,
		PermissionAllowancesManage,
		PermissionHolidayView,
		PermissionHolidayManage,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionReportsView,
	},
	RoleHR: {
		PermissionViewOwnProfile,
		PermissionTimeOffViewOwn,
		PermissionTimeOffCreate,
		PermissionTimeOffViewAll,
		PermissionTimeOffApprove,
		PermissionAllowancesManage,
		PermissionHolidayView,
		PermissionHolidayManage,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionReportsView,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionTimeOffViewOwn,
		PermissionTimeOffCreate,
		PermissionHolidayView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}

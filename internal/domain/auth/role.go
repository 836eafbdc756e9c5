package auth

// Role is carried in the "role" claim of access tokens.
type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleManager  Role = "manager"  // Runs and finalizes payroll
	RoleEmployee Role = "employee" // Reads own payslip
)

type Permission string

const (
	PermissionPayrollPreview  Permission = "payroll.preview"
	PermissionPayrollView     Permission = "payroll.view_all"
	PermissionPayrollGenerate Permission = "payroll.generate"
	PermissionPayrollFinalize Permission = "payroll.finalize"
	PermissionDiscountManage  Permission = "payroll.manage_discounts"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionPayrollPreview,
		PermissionPayrollView,
		PermissionPayrollGenerate,
		PermissionPayrollFinalize,
		PermissionDiscountManage,
	},
	RoleManager: {
		PermissionPayrollPreview,
		PermissionPayrollView,
		PermissionPayrollGenerate,
	},
	RoleEmployee: {
		PermissionPayrollPreview,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

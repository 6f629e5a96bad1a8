package auth

import "context"

const (
	RoleAdmin          = "admin"
	RoleHROfficer      = "hr_officer"
	RoleDepartmentHead = "department_head"
	RoleFinanceOfficer = "finance_officer"
	RoleEmployee       = "employee"
	// RoleHead is never stored. It is asserted at login for any employee
	// account whose employee heads a department.
	RoleHead = "head"
)

// StoredRoles are the values accepted in accounts.role.
var StoredRoles = []string{
	RoleAdmin,
	RoleHROfficer,
	RoleDepartmentHead,
	RoleFinanceOfficer,
	RoleEmployee,
}

// AllRoles includes the computed head role.
var AllRoles = append(append([]string{}, StoredRoles...), RoleHead)

const (
	PermEmployeesRead     = "employees.read"
	PermEmployeesWrite    = "employees.write"
	PermDepartmentsRead   = "departments.read"
	PermDepartmentsWrite  = "departments.write"
	PermLeaveRead         = "leave.read"
	PermLeaveCreate       = "leave.create"
	PermLeaveDecide       = "leave.decide"
	PermLeaveDelete       = "leave.delete"
	PermAttendanceRead    = "attendance.read"
	PermAttendanceWrite   = "attendance.write"
	PermPerformanceRead   = "performance.read"
	PermPerformanceWrite  = "performance.write"
	PermReportsRead       = "reports.read"
	PermAuditRead         = "audit.read"
	PermPerformanceAckOwn = "performance.acknowledge"
)

var DefaultPermissions = []string{
	PermEmployeesRead,
	PermEmployeesWrite,
	PermDepartmentsRead,
	PermDepartmentsWrite,
	PermLeaveRead,
	PermLeaveCreate,
	PermLeaveDecide,
	PermLeaveDelete,
	PermAttendanceRead,
	PermAttendanceWrite,
	PermPerformanceRead,
	PermPerformanceWrite,
	PermPerformanceAckOwn,
	PermReportsRead,
	PermAuditRead,
}

var selfService = []string{
	PermDepartmentsRead,
	PermLeaveRead,
	PermLeaveCreate,
	PermAttendanceRead,
	PermPerformanceRead,
	PermPerformanceAckOwn,
}

var departmentManagement = append(append([]string{}, selfService...),
	PermEmployeesRead,
	PermLeaveDecide,
	PermAttendanceWrite,
	PermPerformanceWrite,
)

var RolePermissions = map[string][]string{
	RoleAdmin: DefaultPermissions,
	RoleHROfficer: {
		PermEmployeesRead,
		PermEmployeesWrite,
		PermDepartmentsRead,
		PermDepartmentsWrite,
		PermLeaveRead,
		PermLeaveCreate,
		PermLeaveDecide,
		PermLeaveDelete,
		PermAttendanceRead,
		PermAttendanceWrite,
		PermPerformanceRead,
		PermPerformanceWrite,
		PermPerformanceAckOwn,
		PermReportsRead,
	},
	RoleDepartmentHead: departmentManagement,
	RoleHead:           departmentManagement,
	RoleFinanceOfficer: append(append([]string{}, selfService...), PermEmployeesRead, PermReportsRead),
	RoleEmployee:       selfService,
}

// StaticPermissions answers permission checks from RolePermissions.
type StaticPermissions struct {
	index map[string]map[string]struct{}
}

func NewStaticPermissions() *StaticPermissions {
	index := make(map[string]map[string]struct{}, len(RolePermissions))
	for role, perms := range RolePermissions {
		set := make(map[string]struct{}, len(perms))
		for _, perm := range perms {
			set[perm] = struct{}{}
		}
		index[role] = set
	}
	return &StaticPermissions{index: index}
}

func (p *StaticPermissions) HasPermission(_ context.Context, role, permission string) (bool, error) {
	_, ok := p.index[role][permission]
	return ok, nil
}

// IsStoredRole reports whether role may be persisted on an account.
func IsStoredRole(role string) bool {
	for _, candidate := range StoredRoles {
		if candidate == role {
			return true
		}
	}
	return false
}

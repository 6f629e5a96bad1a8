package shared

import "staffrecords/internal/domain/auth"

// Scope narrows what a caller may see. Employees are limited to their own
// rows and department heads to their own department; everyone else is
// unrestricted. Denied is set when a restricted caller has nothing to be
// restricted to.
type Scope struct {
	EmployeeID   *int64
	DepartmentID *int64
	Denied       bool
}

func ScopeFor(user auth.UserContext) Scope {
	switch user.Role {
	case auth.RoleEmployee:
		if user.EmployeeID == nil {
			return Scope{Denied: true}
		}
		return Scope{EmployeeID: user.EmployeeID}
	case auth.RoleHead, auth.RoleDepartmentHead:
		if user.DepartmentID == nil {
			return Scope{Denied: true}
		}
		return Scope{DepartmentID: user.DepartmentID}
	}
	return Scope{}
}

// Allows reports whether a row owned by employeeID in departmentID is
// visible.
func (s Scope) Allows(employeeID int64, departmentID *int64) bool {
	if s.Denied {
		return false
	}
	if s.EmployeeID != nil && *s.EmployeeID != employeeID {
		return false
	}
	if s.DepartmentID != nil && (departmentID == nil || *departmentID != *s.DepartmentID) {
		return false
	}
	return true
}

// IsPrivileged is true for the roles that manage every record.
func IsPrivileged(user auth.UserContext) bool {
	return user.Role == auth.RoleAdmin || user.Role == auth.RoleHROfficer
}

package core

import "staffrecords/internal/domain/auth"

// FilterEmployeeFields hides salary from callers outside HR, finance and
// administration, unless they are looking at their own record.
func FilterEmployeeFields(emp *Employee, user auth.UserContext) {
	switch user.Role {
	case auth.RoleAdmin, auth.RoleHROfficer, auth.RoleFinanceOfficer:
		return
	}
	if user.EmployeeID != nil && *user.EmployeeID == emp.ID {
		return
	}
	emp.Salary.Valid = false
}

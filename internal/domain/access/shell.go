package access

import "staffrecords/internal/domain/auth"

const (
	ShellSelfService  = "self_service"
	ShellDepartmental = "departmental"
	ShellAdmin        = "administrative"
)

type Dashboard struct {
	Shell   string   `json:"shell"`
	Tabs    []string `json:"tabs"`
	Widgets []string `json:"widgets,omitempty"`
}

func DashboardFor(role string) Dashboard {
	switch role {
	case auth.RoleEmployee:
		return Dashboard{Shell: ShellSelfService, Tabs: []string{"overview", "attendance", "leave", "performance", "settings"}}
	case auth.RoleHead, auth.RoleDepartmentHead:
		return Dashboard{Shell: ShellDepartmental, Tabs: []string{"overview", "attendance", "employees", "settings"}}
	default:
		return Dashboard{
			Shell:   ShellAdmin,
			Tabs:    []string{"overview"},
			Widgets: []string{"totalEmployees", "pendingLeaveRequests", "todayPresent", "totalDepartments", "employeesByType"},
		}
	}
}

type MenuItem struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

var commonMenu = []MenuItem{
	{Path: "/dashboard", Label: "Dashboard"},
	{Path: "/profile", Label: "My Profile"},
}

var staffMenu = []MenuItem{
	{Path: "/employees", Label: "Employees"},
	{Path: "/departments", Label: "Departments"},
	{Path: "/leave-requests", Label: "Leave Requests"},
	{Path: "/attendance", Label: "Attendance"},
	{Path: "/performance", Label: "Performance"},
	{Path: "/reports", Label: "Reports"},
}

var departmentMenu = []MenuItem{
	{Path: "/employees", Label: "My Department"},
	{Path: "/leave-requests", Label: "Leave Requests"},
	{Path: "/attendance", Label: "Attendance"},
	{Path: "/performance", Label: "Performance"},
}

var roleMenus = map[string][]MenuItem{
	auth.RoleAdmin:          staffMenu,
	auth.RoleHROfficer:      staffMenu,
	auth.RoleDepartmentHead: departmentMenu,
	auth.RoleHead:           departmentMenu,
	auth.RoleFinanceOfficer: {
		{Path: "/employees", Label: "Employees"},
		{Path: "/reports", Label: "Reports"},
	},
	auth.RoleEmployee: {
		{Path: "/leave-requests", Label: "My Leave Requests"},
		{Path: "/attendance", Label: "My Attendance"},
		{Path: "/performance", Label: "My Reviews"},
	},
}

// MenuFor returns the sidebar entries for role. Unknown roles get the common
// entries only.
func MenuFor(role string) []MenuItem {
	items := make([]MenuItem, 0, len(commonMenu)+len(roleMenus[role]))
	items = append(items, commonMenu...)
	return append(items, roleMenus[role]...)
}

// Navigation bundles everything the browser needs to lay out a session.
type Navigation struct {
	Decision  Decision   `json:"decision"`
	Dashboard Dashboard  `json:"dashboard"`
	Menu      []MenuItem `json:"menu"`
}

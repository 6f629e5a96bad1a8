// Package access decides which front-end views a session may open and what
// the navigation shell looks like for each role.
package access

import (
	"time"

	"staffrecords/internal/domain/auth"
)

const (
	RouteLogin     = "/login"
	RouteDashboard = "/dashboard"
)

// routeTable maps a view path to its allow-list. A nil list admits any
// authenticated role.
var routeTable = map[string][]string{
	RouteDashboard:     nil,
	"/profile":         nil,
	"/settings":        nil,
	"/leave-requests":  nil,
	"/attendance":      nil,
	"/employees":       {auth.RoleAdmin, auth.RoleHROfficer, auth.RoleDepartmentHead, auth.RoleHead, auth.RoleFinanceOfficer},
	"/employees/add":   {auth.RoleAdmin, auth.RoleHROfficer},
	"/heads":           {auth.RoleAdmin, auth.RoleHROfficer},
	"/heads/add":       {auth.RoleAdmin, auth.RoleHROfficer},
	"/departments":     {auth.RoleAdmin, auth.RoleHROfficer},
	"/reports":         {auth.RoleAdmin, auth.RoleHROfficer, auth.RoleFinanceOfficer},
	"/performance":     {auth.RoleAdmin, auth.RoleHROfficer, auth.RoleDepartmentHead, auth.RoleHead, auth.RoleEmployee},
	"/performance/add": {auth.RoleAdmin, auth.RoleHROfficer, auth.RoleDepartmentHead, auth.RoleHead},
}

// Session is the client-held identity: the role from the token and when the
// token stops being valid.
type Session struct {
	Role      string
	ExpiresAt time.Time
}

type Decision struct {
	Route    string `json:"route"`
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
}

// Guard evaluates a navigation attempt. A nil or expired session goes to the
// login view, a role outside the allow-list and any unknown path go to the
// dashboard.
func Guard(session *Session, route string, now time.Time) Decision {
	if route == RouteLogin {
		return Decision{Route: route, Allowed: true}
	}
	if session == nil || !now.Before(session.ExpiresAt) {
		return Decision{Route: route, Redirect: RouteLogin}
	}
	allowed, known := routeTable[route]
	if !known {
		return Decision{Route: route, Redirect: RouteDashboard}
	}
	if allowed != nil && !contains(allowed, session.Role) {
		return Decision{Route: route, Redirect: RouteDashboard}
	}
	return Decision{Route: route, Allowed: true}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

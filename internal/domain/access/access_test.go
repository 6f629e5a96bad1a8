package access

import (
	"testing"
	"time"

	"staffrecords/internal/domain/auth"
)

func TestGuard(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	live := func(role string) *Session { return &Session{Role: role, ExpiresAt: now.Add(time.Hour)} }

	tests := []struct {
		name         string
		session      *Session
		route        string
		wantAllowed  bool
		wantRedirect string
	}{
		{"no session", nil, "/employees", false, RouteLogin},
		{"expired session", &Session{Role: auth.RoleAdmin, ExpiresAt: now.Add(-time.Second)}, "/employees", false, RouteLogin},
		{"expiry instant", &Session{Role: auth.RoleAdmin, ExpiresAt: now}, "/dashboard", false, RouteLogin},
		{"login always reachable", nil, RouteLogin, true, ""},
		{"employee blocked from departments", live(auth.RoleEmployee), "/departments", false, RouteDashboard},
		{"admin reaches departments", live(auth.RoleAdmin), "/departments", true, ""},
		{"finance reaches reports", live(auth.RoleFinanceOfficer), "/reports", true, ""},
		{"head reaches performance add", live(auth.RoleHead), "/performance/add", true, ""},
		{"employee blocked from performance add", live(auth.RoleEmployee), "/performance/add", false, RouteDashboard},
		{"employee reaches own leave", live(auth.RoleEmployee), "/leave-requests", true, ""},
		{"root redirects", live(auth.RoleEmployee), "/", false, RouteDashboard},
		{"unknown route redirects", live(auth.RoleAdmin), "/nowhere", false, RouteDashboard},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Guard(tc.session, tc.route, now)
			if got.Allowed != tc.wantAllowed || got.Redirect != tc.wantRedirect {
				t.Fatalf("got %+v", got)
			}
		})
	}
}

func TestDashboardFor(t *testing.T) {
	tests := map[string]string{
		auth.RoleEmployee:       ShellSelfService,
		auth.RoleHead:           ShellDepartmental,
		auth.RoleDepartmentHead: ShellDepartmental,
		auth.RoleAdmin:          ShellAdmin,
		auth.RoleHROfficer:      ShellAdmin,
		auth.RoleFinanceOfficer: ShellAdmin,
	}
	for role, shell := range tests {
		if got := DashboardFor(role).Shell; got != shell {
			t.Fatalf("%s: got %s want %s", role, got, shell)
		}
	}
	if tabs := DashboardFor(auth.RoleEmployee).Tabs; len(tabs) != 5 || tabs[4] != "settings" {
		t.Fatalf("unexpected employee tabs %v", tabs)
	}
}

func TestMenuFor(t *testing.T) {
	menu := MenuFor(auth.RoleFinanceOfficer)
	if len(menu) != 4 || menu[0].Path != "/dashboard" || menu[3].Path != "/reports" {
		t.Fatalf("unexpected finance menu %+v", menu)
	}
	if got := MenuFor("visitor"); len(got) != 2 {
		t.Fatalf("expected common items only, got %+v", got)
	}
	// every menu entry must itself pass the guard for that role
	now := time.Now()
	for _, role := range auth.AllRoles {
		session := &Session{Role: role, ExpiresAt: now.Add(time.Hour)}
		for _, item := range MenuFor(role) {
			if !Guard(session, item.Path, now).Allowed {
				t.Fatalf("role %s sees %s in menu but cannot open it", role, item.Path)
			}
		}
	}
}

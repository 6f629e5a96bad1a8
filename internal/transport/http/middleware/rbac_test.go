package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"staffrecords/internal/domain/auth"
)

type failingPermissions struct{}

func (failingPermissions) HasPermission(context.Context, string, string) (bool, error) {
	return false, errors.New("boom")
}

func TestRequirePermission(t *testing.T) {
	perms := auth.NewStaticPermissions()
	tests := []struct {
		name       string
		user       *auth.UserContext
		permission string
		store      PermissionStore
		wantStatus int
	}{
		{name: "anonymous", permission: auth.PermDepartmentsRead, store: perms, wantStatus: http.StatusUnauthorized},
		{name: "employee cannot write departments", user: &auth.UserContext{AccountID: 2, Role: auth.RoleEmployee}, permission: auth.PermDepartmentsWrite, store: perms, wantStatus: http.StatusForbidden},
		{name: "admin writes departments", user: &auth.UserContext{AccountID: 1, Role: auth.RoleAdmin, IsAdmin: true}, permission: auth.PermDepartmentsWrite, store: perms, wantStatus: http.StatusNoContent},
		{name: "head decides leave", user: &auth.UserContext{AccountID: 3, Role: auth.RoleHead}, permission: auth.PermLeaveDecide, store: perms, wantStatus: http.StatusNoContent},
		{name: "store failure", user: &auth.UserContext{AccountID: 1, Role: auth.RoleAdmin}, permission: auth.PermAuditRead, store: failingPermissions{}, wantStatus: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			handler := RequirePermission(tc.permission, tc.store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.user != nil {
				req = req.WithContext(WithUser(req.Context(), *tc.user))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}
		})
	}
}

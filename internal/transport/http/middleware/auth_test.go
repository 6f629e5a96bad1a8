package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"staffrecords/internal/domain/auth"
)

func TestAuthenticateSetsUser(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour)
	employeeID := int64(4)
	token, _, err := issuer.Issue(auth.Account{ID: 9, Kind: auth.KindEmployee, Email: "amy@example.com", Role: auth.RoleHROfficer, EmployeeID: &employeeID})
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	called := false
	handler := Authenticate(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		user, ok := GetUser(r.Context())
		if !ok {
			t.Fatal("expected user in context")
		}
		if user.AccountID != 9 || user.Role != auth.RoleHROfficer || user.IsAdmin {
			t.Fatalf("unexpected user: %+v", user)
		}
		if user.EmployeeID == nil || *user.EmployeeID != 4 {
			t.Fatalf("unexpected employee id: %v", user.EmployeeID)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if !called {
		t.Fatal("expected next handler to run")
	}
}

func TestAuthenticateIgnoresBadTokens(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour)
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header"},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not-a-token"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			handler := Authenticate(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if _, ok := GetUser(r.Context()); ok {
					t.Fatal("did not expect user in context")
				}
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)
		})
	}
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestExpiredTokenIsUnauthorized(t *testing.T) {
	issuedAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	issuer := auth.NewIssuer("secret", 24*time.Hour)
	issuer.Now = func() time.Time { return issuedAt }
	token, _, err := issuer.Issue(auth.Account{ID: 1, Kind: auth.KindAdmin, Email: "root@example.com"})
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	issuer.Now = func() time.Time { return issuedAt.Add(24*time.Hour + time.Minute) }

	handler := Authenticate(issuer)(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", rec.Code)
	}
}

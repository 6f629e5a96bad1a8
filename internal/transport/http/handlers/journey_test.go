package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"staffrecords/internal/app/server"
	"staffrecords/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func journeyConfig(t *testing.T) config.Config {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	return config.Config{
		DatabaseURL:        dbURL,
		JWTSecret:          "test-secret",
		TokenTTL:           time.Hour,
		FrontendDir:        "frontend/dist",
		Environment:        "test",
		EmployeeCodePrefix: "HU",
		SeedAdminEmail:     "admin@test.local",
		SeedAdminPassword:  "ChangeMe123!",
		SeedAdminFirstName: "Test",
		SeedAdminLastName:  "Admin",
		RunMigrations:      true,
		RunSeed:            true,
		MaxBodyBytes:       1048576,
		DBMaxConns:         4,
		DBQueryTimeout:     5 * time.Second,
	}
}

func startApp(t *testing.T) (*httptest.Server, config.Config) {
	t.Helper()
	cfg := journeyConfig(t)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	t.Cleanup(app.Close)

	ts := httptest.NewServer(app.Router)
	t.Cleanup(ts.Close)
	return ts, cfg
}

func TestEmployeeLeaveAndReportJourney(t *testing.T) {
	ts, cfg := startApp(t)
	adminToken := login(t, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	suffix := time.Now().UnixNano()
	var dept struct {
		ID int64 `json:"id"`
	}
	doJSON(t, http.MethodPost, ts.URL+"/api/departments", adminToken, map[string]any{
		"name":        fmt.Sprintf("Journey %d", suffix),
		"description": "integration",
	}, http.StatusCreated, &dept)

	var created struct {
		ID   int64  `json:"id"`
		Code string `json:"employeeCode"`
	}
	email := fmt.Sprintf("journey-%d@example.com", suffix)
	doJSON(t, http.MethodPost, ts.URL+"/api/employees", adminToken, map[string]any{
		"firstName":      "Jo",
		"lastName":       "Urney",
		"email":          email,
		"departmentId":   dept.ID,
		"employmentType": "academic",
		"salary":         "4200.50",
		"role":           "employee",
	}, http.StatusCreated, &created)
	if created.Code == "" {
		t.Fatal("expected an employee code")
	}

	// the linked account's initial password is the employee code
	employeeToken := login(t, ts.URL, email, created.Code)

	var leaveCreated struct {
		ID   int64 `json:"id"`
		Days int   `json:"daysRequested"`
	}
	doJSON(t, http.MethodPost, ts.URL+"/api/leave-requests", employeeToken, map[string]any{
		"leaveType": "annual",
		"startDate": "2030-01-07",
		"endDate":   "2030-01-09",
		"reason":    "family visit",
	}, http.StatusCreated, &leaveCreated)
	if leaveCreated.Days != 3 {
		t.Fatalf("expected 3 days requested, got %d", leaveCreated.Days)
	}

	status, env := call(t, http.MethodPut, fmt.Sprintf("%s/api/leave-requests/%d", ts.URL, leaveCreated.ID), employeeToken, map[string]any{"status": "approved"})
	if status != http.StatusForbidden {
		t.Fatalf("expected employee self-approval to be forbidden, got %d (%+v)", status, env.Error)
	}
	doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/leave-requests/%d", ts.URL, leaveCreated.ID), adminToken, map[string]any{"status": "approved"}, http.StatusOK, nil)

	var leaveView struct {
		Status     string `json:"status"`
		ApprovedBy *int64 `json:"approvedBy"`
	}
	doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/leave-requests/%d", ts.URL, leaveCreated.ID), employeeToken, nil, http.StatusOK, &leaveView)
	if leaveView.Status != "approved" || leaveView.ApprovedBy != nil {
		t.Fatalf("expected approved by the unlinked admin, got %+v", leaveView)
	}

	today := time.Now().Format("2006-01-02")
	doJSON(t, http.MethodPost, ts.URL+"/api/attendance", adminToken, map[string]any{
		"employeeId":  created.ID,
		"date":        today,
		"status":      "present",
		"checkInTime": "08:30",
	}, http.StatusCreated, nil)

	var stats struct {
		TotalEmployees int `json:"totalEmployees"`
		TodayPresent   int `json:"todayPresent"`
	}
	doJSON(t, http.MethodGet, ts.URL+"/api/reports/dashboard-stats", adminToken, nil, http.StatusOK, &stats)
	if stats.TotalEmployees < 1 || stats.TodayPresent < 1 {
		t.Fatalf("unexpected dashboard stats: %+v", stats)
	}

	status, _ = call(t, http.MethodGet, ts.URL+"/api/reports/dashboard-stats", employeeToken, nil)
	if status != http.StatusForbidden {
		t.Fatalf("expected employee to be denied reports, got %d", status)
	}

	var events []struct {
		Action   string `json:"action"`
		EntityID string `json:"entityId"`
	}
	doJSON(t, http.MethodGet, ts.URL+"/api/audit?entity_type=employee&action=employee.create", adminToken, nil, http.StatusOK, &events)
	found := false
	for _, evt := range events {
		if evt.EntityID == fmt.Sprint(created.ID) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an employee.create audit event for %d", created.ID)
	}

	doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/employees/%d", ts.URL, created.ID), adminToken, nil, http.StatusOK, nil)
	status, _ = call(t, http.MethodGet, fmt.Sprintf("%s/api/employees/%d", ts.URL, created.ID), adminToken, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected deleted employee to be gone, got %d", status)
	}
	doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/departments/%d", ts.URL, dept.ID), adminToken, nil, http.StatusOK, nil)
}

func TestDuplicateEmployeeEmailConflicts(t *testing.T) {
	ts, cfg := startApp(t)
	token := login(t, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	payload := map[string]any{
		"firstName": "Dup",
		"lastName":  "Licate",
		"email":     fmt.Sprintf("dup-%d@example.com", time.Now().UnixNano()),
	}
	var created struct {
		ID int64 `json:"id"`
	}
	doJSON(t, http.MethodPost, ts.URL+"/api/employees", token, payload, http.StatusCreated, &created)
	t.Cleanup(func() {
		call(t, http.MethodDelete, fmt.Sprintf("%s/api/employees/%d", ts.URL, created.ID), token, nil)
	})

	status, env := call(t, http.MethodPost, ts.URL+"/api/employees", token, payload)
	if status != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", status)
	}
	if env.Error == nil || env.Error.Code != "conflict" {
		t.Fatalf("unexpected error envelope: %+v", env.Error)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ts, cfg := startApp(t)

	_, wrongPassword := call(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{
		"email": cfg.SeedAdminEmail, "password": "wrong",
	})
	_, unknownEmail := call(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{
		"email": "nobody@example.com", "password": "wrong",
	})
	if wrongPassword.Error == nil || unknownEmail.Error == nil {
		t.Fatal("expected both logins to fail")
	}
	if wrongPassword.Error.Message != unknownEmail.Error.Message {
		t.Fatalf("messages differ: %q vs %q", wrongPassword.Error.Message, unknownEmail.Error.Message)
	}
}

func login(t *testing.T, baseURL, email, password string) string {
	t.Helper()
	var result struct {
		Token string `json:"token"`
	}
	doJSON(t, http.MethodPost, baseURL+"/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, http.StatusOK, &result)
	if result.Token == "" {
		t.Fatal("login returned no token")
	}
	return result.Token
}

func doJSON(t *testing.T, method, url, token string, body any, wantStatus int, out any) {
	t.Helper()
	status, env := call(t, method, url, token, body)
	if status != wantStatus {
		t.Fatalf("%s %s: expected %d, got %d (%+v)", method, url, wantStatus, status, env.Error)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("%s %s: decode data: %v", method, url, err)
		}
	}
}

func call(t *testing.T, method, url, token string, body any) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &env)
	return resp.StatusCode, env
}

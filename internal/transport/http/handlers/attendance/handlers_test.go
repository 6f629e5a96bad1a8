package attendancehandler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"staffrecords/internal/domain/attendance"
	"staffrecords/internal/domain/auth"
	"staffrecords/internal/domain/core"
	"staffrecords/internal/transport/http/middleware"
)

func int64Ptr(v int64) *int64 { return &v }

type fakeService struct {
	rows       map[int64]attendance.Record
	byKey      map[string]int64
	nextID     int64
	lastFilter attendance.Filter
}

func newFakeService() *fakeService {
	return &fakeService{rows: map[int64]attendance.Record{}, byKey: map[string]int64{}, nextID: 1}
}

func (f *fakeService) Record(_ context.Context, rec attendance.Record) (int64, error) {
	key := fmt.Sprintf("%d/%s", rec.EmployeeID, rec.Date.Format("2006-01-02"))
	if id, ok := f.byKey[key]; ok {
		rec.ID = id
		f.rows[id] = rec
		return id, nil
	}
	rec.ID = f.nextID
	f.nextID++
	f.rows[rec.ID] = rec
	f.byKey[key] = rec.ID
	return rec.ID, nil
}

func (f *fakeService) Get(_ context.Context, id int64) (attendance.Record, error) {
	rec, ok := f.rows[id]
	if !ok {
		return attendance.Record{}, attendance.ErrNotFound
	}
	return rec, nil
}

func (f *fakeService) List(_ context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	f.lastFilter = filter
	out := []attendance.Record{}
	for _, rec := range f.rows {
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeService) Update(_ context.Context, id int64, rec attendance.Record) error {
	rec.ID = id
	f.rows[id] = rec
	return nil
}

func (f *fakeService) Delete(_ context.Context, id int64) error {
	delete(f.rows, id)
	return nil
}

type fakeEmployees map[int64]core.Employee

func (f fakeEmployees) GetEmployee(_ context.Context, id int64) (core.Employee, error) {
	emp, ok := f[id]
	if !ok {
		return core.Employee{}, core.ErrEmployeeNotFound
	}
	return emp, nil
}

var staff = fakeEmployees{
	5: {ID: 5, DepartmentID: int64Ptr(10)},
	6: {ID: 6, DepartmentID: int64Ptr(20)},
}

var (
	hr       = &auth.UserContext{AccountID: 2, Role: auth.RoleHROfficer}
	head     = &auth.UserContext{AccountID: 3, Role: auth.RoleHead, EmployeeID: int64Ptr(4), DepartmentID: int64Ptr(10)}
	employee = &auth.UserContext{AccountID: 4, Role: auth.RoleEmployee, EmployeeID: int64Ptr(5), DepartmentID: int64Ptr(10)}
)

func serve(t *testing.T, h *Handler, user *auth.UserContext, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	u := *user
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithUser(req.Context(), u)))
		})
	})
	r.Route("/api", h.RegisterRoutes)

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))
	return rec
}

func TestRecordTwiceKeepsOneRow(t *testing.T) {
	svc := newFakeService()
	h := NewHandler(svc, staff, auth.NewStaticPermissions(), nil)

	for _, status := range []string{"present", "late"} {
		rec := serve(t, h, hr, http.MethodPost, "/api/attendance", map[string]any{
			"employeeId": 5, "date": "2025-02-03", "status": status, "checkInTime": "08:05",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	}
	if len(svc.rows) != 1 {
		t.Fatalf("expected one row, got %d", len(svc.rows))
	}
	for _, row := range svc.rows {
		if row.Status != attendance.StatusLate {
			t.Fatalf("expected latest status, got %q", row.Status)
		}
	}
}

func TestRecordValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "missing employee", body: map[string]any{"date": "2025-02-03", "status": "present"}},
		{name: "bad status", body: map[string]any{"employeeId": 5, "date": "2025-02-03", "status": "asleep"}},
		{name: "bad time", body: map[string]any{"employeeId": 5, "date": "2025-02-03", "status": "present", "checkInTime": "8 o'clock"}},
		{name: "bad date", body: map[string]any{"employeeId": 5, "date": "03/02/2025", "status": "present"}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			h := NewHandler(newFakeService(), staff, auth.NewStaticPermissions(), nil)
			rec := serve(t, h, hr, http.MethodPost, "/api/attendance", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestHeadMarksOnlyOwnDepartment(t *testing.T) {
	h := NewHandler(newFakeService(), staff, auth.NewStaticPermissions(), nil)
	rec := serve(t, h, head, http.MethodPost, "/api/attendance", map[string]any{"employeeId": 5, "date": "2025-02-03", "status": "present"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	rec = serve(t, h, head, http.MethodPost, "/api/attendance", map[string]any{"employeeId": 6, "date": "2025-02-03", "status": "present"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	rec = serve(t, h, employee, http.MethodPost, "/api/attendance", map[string]any{"employeeId": 5, "date": "2025-02-03", "status": "present"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("employee should not mark attendance, got %d", rec.Code)
	}
}

func TestListScopedForEmployee(t *testing.T) {
	svc := newFakeService()
	h := NewHandler(svc, staff, auth.NewStaticPermissions(), nil)
	rec := serve(t, h, employee, http.MethodGet, "/api/attendance?employee_id=6&date=2025-02-03", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastFilter.EmployeeID == nil || *svc.lastFilter.EmployeeID != 5 {
		t.Fatalf("expected employee filter forced to 5, got %v", svc.lastFilter.EmployeeID)
	}
	if svc.lastFilter.Date == nil || svc.lastFilter.Date.Format("2006-01-02") != "2025-02-03" {
		t.Fatalf("expected date filter, got %v", svc.lastFilter.Date)
	}

	rec = serve(t, h, hr, http.MethodGet, "/api/attendance?date=yesterday", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date, got %d", rec.Code)
	}
}

func TestUpdateAndDeleteMissing(t *testing.T) {
	h := NewHandler(newFakeService(), staff, auth.NewStaticPermissions(), nil)
	rec := serve(t, h, hr, http.MethodPut, "/api/attendance/42", map[string]any{"status": "absent", "date": "2025-02-03"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	rec = serve(t, h, hr, http.MethodDelete, "/api/attendance/42", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"staffrecords/internal/platform/config"
	"staffrecords/internal/platform/metrics"
	"staffrecords/internal/transport/http/api"
)

func testRouter(t *testing.T) (http.Handler, *metrics.Collector) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>shell</html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Config{
		JWTSecret:          "test-secret",
		TokenTTL:           time.Hour,
		FrontendDir:        dir,
		EmployeeCodePrefix: "HU",
		MaxBodyBytes:       1 << 20,
	}
	collector := metrics.New()
	return NewRouter(cfg, nil, collector), collector
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) api.Envelope {
	t.Helper()
	var env api.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return env
}

func TestHealthzReportsMetrics(t *testing.T) {
	router, _ := testRouter(t)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/employees", nil))
	if first.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous employee list, got %d", first.Code)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	env := decode(t, rec)
	data, _ := env.Data.(map[string]any)
	snap, _ := data["metrics"].(map[string]any)
	if snap["deniedTotal"] != float64(1) {
		t.Fatalf("expected one denied request in snapshot, got %v", snap)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
}

func TestUnknownAPIRouteIsJSON(t *testing.T) {
	router, _ := testRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	env := decode(t, rec)
	if env.Success || env.Error == nil || env.Error.Code != "not_found" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestLoginValidationThroughRouter(t *testing.T) {
	router, _ := testRouter(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"","password":""}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSPAFallback(t *testing.T) {
	router, _ := testRouter(t)
	cases := []struct {
		path string
		want string
	}{
		{"/app.js", "console.log(1)"},
		{"/employees/12", "<html>shell</html>"},
		{"/", "<html>shell</html>"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.want) {
				t.Fatalf("expected body %q, got %q", tc.want, rec.Body.String())
			}
		})
	}
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestReadyHandler(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"ready", nil, http.StatusOK},
		{"down", errors.New("connection refused"), http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			readyHandler(fakePinger{err: tc.err}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
			if strings.Contains(rec.Body.String(), "refused") {
				t.Fatal("readiness body leaked the driver error")
			}
		})
	}
}

package shared

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func withParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestParseID(t *testing.T) {
	cases := map[string]bool{
		"12":  true,
		"0":   false,
		"-3":  false,
		"abc": false,
		"":    false,
	}
	for raw, ok := range cases {
		r := withParam(httptest.NewRequest(http.MethodGet, "/", nil), "employeeID", raw)
		id, err := ParseID(r, "employeeID")
		if ok && (err != nil || id != 12) {
			t.Fatalf("ParseID(%q) = %d, %v", raw, id, err)
		}
		if !ok && !errors.Is(err, ErrInvalidID) {
			t.Fatalf("ParseID(%q) expected ErrInvalidID, got %v", raw, err)
		}
	}
}

func TestQueryParams(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?department_id=4&date=2024-03-05&bad=x", nil)

	dept, err := QueryInt64(r, "department_id")
	if err != nil || dept == nil || *dept != 4 {
		t.Fatalf("QueryInt64 = %v, %v", dept, err)
	}
	if missing, err := QueryInt64(r, "employee_id"); err != nil || missing != nil {
		t.Fatalf("expected nil for absent param, got %v, %v", missing, err)
	}
	if _, err := QueryInt64(r, "bad"); err == nil {
		t.Fatal("expected error for non-integer param")
	}

	day, err := QueryDate(r, "date")
	if err != nil || day == nil || day.Format("2006-01-02") != "2024-03-05" {
		t.Fatalf("QueryDate = %v, %v", day, err)
	}
	if _, err := QueryDate(r, "bad"); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestDecodeJSONWrapsInvalidBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	var dst map[string]any
	if err := DecodeJSON(r, &dst); !errors.Is(err, ErrInvalidBody) {
		t.Fatalf("expected ErrInvalidBody, got %v", err)
	}
}

func TestClientIP(t *testing.T) {
	cases := []struct {
		name   string
		header string
		remote string
		want   string
	}{
		{"forwarded first hop", "203.0.113.9, 10.0.0.1", "10.0.0.2:5555", "203.0.113.9"},
		{"remote addr", "", "192.0.2.1:1234", "192.0.2.1"},
		{"remote without port", "", "192.0.2.7", "192.0.2.7"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tc.remote
			if tc.header != "" {
				r.Header.Set("X-Forwarded-For", tc.header)
			}
			if got := ClientIP(r); got != tc.want {
				t.Fatalf("ClientIP = %q, want %q", got, tc.want)
			}
		})
	}
}

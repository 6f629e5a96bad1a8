package reportshandler

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"staffrecords/internal/domain/auth"
	"staffrecords/internal/domain/reports"
	"staffrecords/internal/transport/http/api"
	"staffrecords/internal/transport/http/middleware"
	"staffrecords/internal/transport/http/shared"
)

type Service interface {
	DashboardStats(ctx context.Context) (reports.DashboardStats, error)
	DepartmentDistribution(ctx context.Context) ([]reports.DepartmentCount, error)
	AttendanceSummary(ctx context.Context, day *time.Time) (reports.AttendanceSummary, error)
	LeaveSummary(ctx context.Context) ([]reports.LeaveSummaryRow, error)
	Roster(ctx context.Context) ([]reports.RosterRow, error)
}

type Handler struct {
	Service Service
	Perms   middleware.PermissionStore
	Now     func() time.Time
}

func NewHandler(service Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequirePermission(auth.PermReportsRead, h.Perms))
		r.Get("/dashboard-stats", h.handleDashboardStats)
		r.Get("/dashboard-stats.pdf", h.handleDashboardPDF)
		r.Get("/department-distribution", h.handleDepartmentDistribution)
		r.Get("/attendance-summary", h.handleAttendanceSummary)
		r.Get("/leave-summary", h.handleLeaveSummary)
		r.Get("/employees.xlsx", h.handleRosterXLSX)
	})
}

func (h *Handler) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.DashboardStats(r.Context())
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, stats, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDepartmentDistribution(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.DepartmentDistribution(r.Context())
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.List(w, rows, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAttendanceSummary(w http.ResponseWriter, r *http.Request) {
	day, err := shared.QueryDate(r, "date")
	if err != nil {
		shared.BadRequest(w, r, err.Error())
		return
	}
	summary, err := h.Service.AttendanceSummary(r.Context(), day)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleLeaveSummary(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.LeaveSummary(r.Context())
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.List(w, rows, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDashboardPDF(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.DashboardStats(r.Context())
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	departments, err := h.Service.DepartmentDistribution(r.Context())
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := reports.WriteDashboardPDF(&buf, stats, departments, h.Now()); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	writeFile(w, "application/pdf", "dashboard-stats.pdf", buf.Bytes())
}

func (h *Handler) handleRosterXLSX(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.Roster(r.Context())
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := reports.WriteRosterXLSX(&buf, rows); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	writeFile(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "employees.xlsx", buf.Bytes())
}

func writeFile(w http.ResponseWriter, contentType, name string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+name)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

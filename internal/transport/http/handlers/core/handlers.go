package corehandler

import (
	"context"

	"github.com/go-chi/chi/v5"

	"staffrecords/internal/domain/auth"
	"staffrecords/internal/domain/core"
	"staffrecords/internal/transport/http/middleware"
	"staffrecords/internal/transport/http/shared"
)

type Service interface {
	CreateEmployee(ctx context.Context, in core.NewEmployee) (core.Created, error)
	GetEmployee(ctx context.Context, id int64) (core.Employee, error)
	ListEmployees(ctx context.Context, filter core.EmployeeFilter) ([]core.Employee, error)
	UpdateEmployee(ctx context.Context, id int64, emp core.Employee) error
	DeleteEmployee(ctx context.Context, id int64) error

	ListDepartments(ctx context.Context, search string) ([]core.Department, error)
	GetDepartment(ctx context.Context, id int64) (core.Department, error)
	CreateDepartment(ctx context.Context, dep core.Department) (int64, error)
	UpdateDepartment(ctx context.Context, id int64, dep core.Department) error
	DeleteDepartment(ctx context.Context, id int64) error
}

type Handler struct {
	Service     Service
	Permissions middleware.PermissionStore
	Audit       shared.AuditRecorder
}

func NewHandler(service Service, perms middleware.PermissionStore, audit shared.AuditRecorder) *Handler {
	return &Handler{Service: service, Permissions: perms, Audit: audit}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Permissions)).Get("/", h.handleListEmployees)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Permissions)).Post("/", h.handleCreateEmployee)
		r.Route("/{employeeID}", func(r chi.Router) {
			// Employees may read their own record without employees.read.
			r.Get("/", h.handleGetEmployee)
			r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Permissions)).Put("/", h.handleUpdateEmployee)
			r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Permissions)).Delete("/", h.handleDeleteEmployee)
		})
	})
	r.Route("/departments", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.With(middleware.RequirePermission(auth.PermDepartmentsRead, h.Permissions)).Get("/", h.handleListDepartments)
		r.With(middleware.RequirePermission(auth.PermDepartmentsWrite, h.Permissions)).Post("/", h.handleCreateDepartment)
		r.Route("/{departmentID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(auth.PermDepartmentsRead, h.Permissions)).Get("/", h.handleGetDepartment)
			r.With(middleware.RequirePermission(auth.PermDepartmentsWrite, h.Permissions)).Put("/", h.handleUpdateDepartment)
			r.With(middleware.RequirePermission(auth.PermDepartmentsWrite, h.Permissions)).Delete("/", h.handleDeleteDepartment)
		})
	})
}

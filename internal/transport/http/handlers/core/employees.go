package corehandler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"staffrecords/internal/domain/auth"
	"staffrecords/internal/domain/core"
	"staffrecords/internal/transport/http/api"
	"staffrecords/internal/transport/http/middleware"
	"staffrecords/internal/transport/http/shared"
)

type employeeRequest struct {
	FirstName      string              `json:"firstName"`
	LastName       string              `json:"lastName"`
	Gender         *string             `json:"gender"`
	DateOfBirth    *string             `json:"dateOfBirth"`
	Phone          *string             `json:"phone"`
	Email          string              `json:"email"`
	Position       *string             `json:"position"`
	DepartmentID   *int64              `json:"departmentId"`
	EmploymentType *string             `json:"employmentType"`
	HireDate       *string             `json:"hireDate"`
	Salary         decimal.NullDecimal `json:"salary"`
	Status         string              `json:"status"`
	Role           string              `json:"role"`
}

func (p employeeRequest) validate(v *shared.Validator) core.Employee {
	v.Required("firstName", p.FirstName, "is required")
	v.Required("lastName", p.LastName, "is required")
	v.Required("email", p.Email, "is required")
	if p.Gender != nil {
		v.Enum("gender", *p.Gender, core.Genders, "must be male or female")
	}
	if p.EmploymentType != nil {
		v.Enum("employmentType", *p.EmploymentType, core.EmploymentTypes, "must be academic, admin or support")
	}
	v.Enum("status", p.Status, core.Statuses, "must be active or inactive")
	if p.Salary.Valid && p.Salary.Decimal.IsNegative() {
		v.Add("salary", "must not be negative")
	}

	return core.Employee{
		FirstName:      strings.TrimSpace(p.FirstName),
		LastName:       strings.TrimSpace(p.LastName),
		Gender:         lower(p.Gender),
		DateOfBirth:    shared.OptionalDate(v, "dateOfBirth", p.DateOfBirth),
		Phone:          p.Phone,
		Email:          strings.TrimSpace(p.Email),
		Position:       p.Position,
		DepartmentID:   p.DepartmentID,
		EmploymentType: lower(p.EmploymentType),
		HireDate:       shared.OptionalDate(v, "hireDate", p.HireDate),
		Salary:         p.Salary,
		Status:         strings.ToLower(strings.TrimSpace(p.Status)),
	}
}

func lower(v *string) *string {
	if v == nil {
		return nil
	}
	out := strings.ToLower(strings.TrimSpace(*v))
	if out == "" {
		return nil
	}
	return &out
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.RequireUser(w, r)
	if !ok {
		return
	}
	departmentID, err := shared.QueryInt64(r, "department_id")
	if err != nil {
		shared.BadRequest(w, r, err.Error())
		return
	}

	filter := core.EmployeeFilter{Search: r.URL.Query().Get("search"), DepartmentID: departmentID}
	scope := shared.ScopeFor(user)
	if scope.Denied {
		api.List(w, []core.Employee{}, middleware.GetRequestID(r.Context()))
		return
	}
	if scope.DepartmentID != nil {
		filter.DepartmentID = scope.DepartmentID
	}

	employees, err := h.Service.ListEmployees(r.Context(), filter)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}

	visible := make([]core.Employee, 0, len(employees))
	for _, emp := range employees {
		if scope.EmployeeID != nil && emp.ID != *scope.EmployeeID {
			continue
		}
		core.FilterEmployeeFields(&emp, user)
		visible = append(visible, emp)
	}
	api.List(w, visible, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.RequireUser(w, r)
	if !ok {
		return
	}
	id, err := shared.ParseID(r, "employeeID")
	if err != nil {
		shared.BadRequest(w, r, "invalid employee id")
		return
	}

	emp, err := h.Service.GetEmployee(r.Context(), id)
	if errors.Is(err, core.ErrEmployeeNotFound) {
		shared.NotFound(w, r, "employee not found")
		return
	}
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	if !shared.ScopeFor(user).Allows(emp.ID, emp.DepartmentID) {
		shared.Forbidden(w, r)
		return
	}
	core.FilterEmployeeFields(&emp, user)
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload employeeRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.WriteError(w, r, err)
		return
	}

	v := shared.NewValidator()
	emp := payload.validate(v)
	if payload.Role != "" && (!auth.IsStoredRole(payload.Role) || payload.Role == auth.RoleAdmin) {
		v.Add("role", "must be one of hr_officer, department_head, finance_officer, employee")
	}
	if v.Reject(w, requestID) {
		return
	}

	created, err := h.Service.CreateEmployee(r.Context(), core.NewEmployee{Employee: emp, Role: payload.Role})
	if errors.Is(err, core.ErrInvalidRole) {
		shared.BadRequest(w, r, err.Error())
		return
	}
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}

	emp.ID = created.ID
	emp.Code = created.Code
	shared.RecordAudit(r, h.Audit, "employee.create", "employee", created.ID, nil, emp)
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, err := shared.ParseID(r, "employeeID")
	if err != nil {
		shared.BadRequest(w, r, "invalid employee id")
		return
	}
	var payload employeeRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.WriteError(w, r, err)
		return
	}

	v := shared.NewValidator()
	emp := payload.validate(v)
	v.Required("status", payload.Status, "is required")
	if v.Reject(w, requestID) {
		return
	}

	before, err := h.Service.GetEmployee(r.Context(), id)
	if errors.Is(err, core.ErrEmployeeNotFound) {
		shared.NotFound(w, r, "employee not found")
		return
	}
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}

	if err := h.Service.UpdateEmployee(r.Context(), id, emp); err != nil {
		if errors.Is(err, core.ErrEmployeeNotFound) {
			shared.NotFound(w, r, "employee not found")
			return
		}
		shared.WriteError(w, r, err)
		return
	}

	emp.ID = id
	emp.Code = before.Code
	shared.RecordAudit(r, h.Audit, "employee.update", "employee", id, before, emp)
	api.Message(w, "employee updated", requestID)
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r, "employeeID")
	if err != nil {
		shared.BadRequest(w, r, "invalid employee id")
		return
	}

	before, err := h.Service.GetEmployee(r.Context(), id)
	if errors.Is(err, core.ErrEmployeeNotFound) {
		shared.NotFound(w, r, "employee not found")
		return
	}
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}

	if err := h.Service.DeleteEmployee(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrEmployeeNotFound) {
			shared.NotFound(w, r, "employee not found")
			return
		}
		shared.WriteError(w, r, err)
		return
	}

	shared.RecordAudit(r, h.Audit, "employee.delete", "employee", id, before, nil)
	api.Message(w, "employee deleted", middleware.GetRequestID(r.Context()))
}

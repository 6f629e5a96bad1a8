package attendancehandler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"staffrecords/internal/domain/attendance"
	"staffrecords/internal/domain/auth"
	"staffrecords/internal/domain/core"
	"staffrecords/internal/transport/http/api"
	"staffrecords/internal/transport/http/middleware"
	"staffrecords/internal/transport/http/shared"
)

type Service interface {
	Record(ctx context.Context, rec attendance.Record) (int64, error)
	Get(ctx context.Context, id int64) (attendance.Record, error)
	List(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error)
	Update(ctx context.Context, id int64, rec attendance.Record) error
	Delete(ctx context.Context, id int64) error
}

// EmployeeLookup resolves the department of the employee being marked.
type EmployeeLookup interface {
	GetEmployee(ctx context.Context, id int64) (core.Employee, error)
}

type Handler struct {
	Service     Service
	Employees   EmployeeLookup
	Permissions middleware.PermissionStore
	Audit       shared.AuditRecorder
}

func NewHandler(service Service, employees EmployeeLookup, perms middleware.PermissionStore, audit shared.AuditRecorder) *Handler {
	return &Handler{Service: service, Employees: employees, Permissions: perms, Audit: audit}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.With(middleware.RequirePermission(auth.PermAttendanceRead, h.Permissions)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermAttendanceWrite, h.Permissions)).Post("/", h.handleRecord)
		r.Route("/{attendanceID}", func(r chi.Router) {
			r.Use(middleware.RequirePermission(auth.PermAttendanceWrite, h.Permissions))
			r.Put("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
		})
	})
}

type recordRequest struct {
	EmployeeID   *int64  `json:"employeeId"`
	Date         string  `json:"date"`
	Status       string  `json:"status"`
	CheckInTime  *string `json:"checkInTime"`
	CheckOutTime *string `json:"checkOutTime"`
}

func (p recordRequest) validate(v *shared.Validator) attendance.Record {
	if p.EmployeeID == nil {
		v.Add("employeeId", "is required")
	}
	v.Required("status", p.Status, "is required")
	v.Enum("status", p.Status, attendance.Statuses, "must be one of "+strings.Join(attendance.Statuses, ", "))
	date, _ := v.Date("date", p.Date)
	for field, value := range map[string]*string{"checkInTime": p.CheckInTime, "checkOutTime": p.CheckOutTime} {
		if _, err := attendance.NormalizeClock(value); err != nil {
			v.Add(field, "must be HH:MM or HH:MM:SS")
		}
	}

	rec := attendance.Record{
		Date:     date,
		Status:   strings.ToLower(strings.TrimSpace(p.Status)),
		CheckIn:  p.CheckInTime,
		CheckOut: p.CheckOutTime,
	}
	if p.EmployeeID != nil {
		rec.EmployeeID = *p.EmployeeID
	}
	return rec
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, attendance.ErrNotFound):
		shared.NotFound(w, r, "attendance record not found")
	case errors.Is(err, core.ErrEmployeeNotFound):
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "employeeId", Reason: "must identify an existing employee"}})
	case errors.Is(err, attendance.ErrInvalidStatus), errors.Is(err, attendance.ErrInvalidTime):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
	default:
		shared.WriteError(w, r, err)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.RequireUser(w, r)
	if !ok {
		return
	}
	date, err := shared.QueryDate(r, "date")
	if err != nil {
		shared.BadRequest(w, r, err.Error())
		return
	}
	employeeID, err := shared.QueryInt64(r, "employee_id")
	if err != nil {
		shared.BadRequest(w, r, err.Error())
		return
	}

	scope := shared.ScopeFor(user)
	if scope.Denied {
		api.List(w, []attendance.Record{}, middleware.GetRequestID(r.Context()))
		return
	}
	filter := attendance.Filter{Date: date, EmployeeID: employeeID, DepartmentID: scope.DepartmentID}
	if scope.EmployeeID != nil {
		filter.EmployeeID = scope.EmployeeID
	}

	records, err := h.Service.List(r.Context(), filter)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.List(w, records, middleware.GetRequestID(r.Context()))
}

// checkEmployee confirms the caller may mark attendance for employeeID.
func (h *Handler) checkEmployee(w http.ResponseWriter, r *http.Request, user auth.UserContext, employeeID int64) bool {
	scope := shared.ScopeFor(user)
	if scope == (shared.Scope{}) {
		return true
	}
	emp, err := h.Employees.GetEmployee(r.Context(), employeeID)
	if err != nil {
		h.writeError(w, r, err)
		return false
	}
	if !scope.Allows(emp.ID, emp.DepartmentID) {
		shared.Forbidden(w, r)
		return false
	}
	return true
}

func (h *Handler) handleRecord(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.RequireUser(w, r)
	if !ok {
		return
	}
	requestID := middleware.GetRequestID(r.Context())

	var payload recordRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	v := shared.NewValidator()
	rec := payload.validate(v)
	if v.Reject(w, requestID) {
		return
	}
	if !h.checkEmployee(w, r, user, rec.EmployeeID) {
		return
	}

	id, err := h.Service.Record(r.Context(), rec)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	rec.ID = id
	shared.RecordAudit(r, h.Audit, "attendance.record", "attendance", id, nil, rec)
	api.WriteJSON(w, http.StatusCreated, api.Envelope{Success: true, Data: map[string]int64{"id": id}, Message: "attendance recorded", RequestID: requestID})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.RequireUser(w, r)
	if !ok {
		return
	}
	requestID := middleware.GetRequestID(r.Context())
	current, ok := h.load(w, r)
	if !ok {
		return
	}
	if !shared.ScopeFor(user).Allows(current.EmployeeID, current.DepartmentID) {
		shared.Forbidden(w, r)
		return
	}

	var payload recordRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	if payload.EmployeeID == nil {
		payload.EmployeeID = &current.EmployeeID
	}
	v := shared.NewValidator()
	rec := payload.validate(v)
	if v.Reject(w, requestID) {
		return
	}
	if rec.EmployeeID != current.EmployeeID && !h.checkEmployee(w, r, user, rec.EmployeeID) {
		return
	}

	if err := h.Service.Update(r.Context(), current.ID, rec); err != nil {
		h.writeError(w, r, err)
		return
	}
	rec.ID = current.ID
	shared.RecordAudit(r, h.Audit, "attendance.update", "attendance", current.ID, current, rec)
	api.Message(w, "attendance updated", requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.RequireUser(w, r)
	if !ok {
		return
	}
	current, ok := h.load(w, r)
	if !ok {
		return
	}
	if !shared.ScopeFor(user).Allows(current.EmployeeID, current.DepartmentID) {
		shared.Forbidden(w, r)
		return
	}
	if err := h.Service.Delete(r.Context(), current.ID); err != nil {
		h.writeError(w, r, err)
		return
	}
	shared.RecordAudit(r, h.Audit, "attendance.delete", "attendance", current.ID, current, nil)
	api.Message(w, "attendance deleted", middleware.GetRequestID(r.Context()))
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (attendance.Record, bool) {
	id, err := shared.ParseID(r, "attendanceID")
	if err != nil {
		shared.BadRequest(w, r, "invalid attendance id")
		return attendance.Record{}, false
	}
	rec, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return attendance.Record{}, false
	}
	return rec, true
}

package leavehandler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"staffrecords/internal/domain/auth"
	"staffrecords/internal/domain/leave"
	"staffrecords/internal/transport/http/api"
	"staffrecords/internal/transport/http/middleware"
	"staffrecords/internal/transport/http/shared"
)

type Service interface {
	Create(ctx context.Context, in leave.NewRequest) (leave.Request, error)
	Get(ctx context.Context, id int64) (leave.Request, error)
	List(ctx context.Context, filter leave.Filter) ([]leave.Request, error)
	Update(ctx context.Context, id int64, change leave.Change) (leave.Request, leave.Request, error)
	Delete(ctx context.Context, id int64) error
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
	r.Route("/leave-requests", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.With(middleware.RequirePermission(auth.PermLeaveRead, h.Permissions)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermLeaveCreate, h.Permissions)).Post("/", h.handleCreate)
		r.Route("/{leaveID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(auth.PermLeaveRead, h.Permissions)).Get("/", h.handleGet)
			r.With(middleware.RequirePermission(auth.PermLeaveRead, h.Permissions)).Put("/", h.handleUpdate)
			r.With(middleware.RequirePermission(auth.PermLeaveDelete, h.Permissions)).Delete("/", h.handleDelete)
		})
	})
}

type createRequest struct {
	EmployeeID *int64 `json:"employeeId"`
	LeaveType  string `json:"leaveType"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Reason     string `json:"reason"`
}

type updateRequest struct {
	Status    string  `json:"status"`
	LeaveType string  `json:"leaveType"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Reason    *string `json:"reason"`
}

func (p updateRequest) isEdit() bool {
	return p.LeaveType != "" || p.StartDate != nil || p.EndDate != nil || p.Reason != nil
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, leave.ErrNotFound):
		shared.NotFound(w, r, "leave request not found")
	case errors.Is(err, leave.ErrInvalidRange):
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "endDate", Reason: "must be on or after startDate"}})
	case errors.Is(err, leave.ErrInvalidType):
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "leaveType", Reason: "must be one of " + strings.Join(leave.Types, ", ")}})
	case errors.Is(err, leave.ErrInvalidState):
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "status", Reason: "must be one of " + strings.Join(leave.Statuses, ", ")}})
	default:
		shared.WriteError(w, r, err)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.RequireUser(w, r)
	if !ok {
		return
	}
	employeeID, err := shared.QueryInt64(r, "employee_id")
	if err != nil {
		shared.BadRequest(w, r, err.Error())
		return
	}

	scope := shared.ScopeFor(user)
	if scope.Denied {
		api.List(w, []leave.Request{}, middleware.GetRequestID(r.Context()))
		return
	}
	filter := leave.Filter{EmployeeID: employeeID, DepartmentID: scope.DepartmentID}
	if scope.EmployeeID != nil {
		filter.EmployeeID = scope.EmployeeID
	}

	requests, err := h.Service.List(r.Context(), filter)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.List(w, requests, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.RequireUser(w, r)
	if !ok {
		return
	}
	req, ok := h.load(w, r)
	if !ok {
		return
	}
	if !shared.ScopeFor(user).Allows(req.EmployeeID, req.DepartmentID) {
		shared.Forbidden(w, r)
		return
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.RequireUser(w, r)
	if !ok {
		return
	}
	requestID := middleware.GetRequestID(r.Context())

	var payload createRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.WriteError(w, r, err)
		return
	}

	// Only HR and administrators file leave on someone else's behalf.
	if !shared.IsPrivileged(user) {
		if user.EmployeeID == nil {
			shared.Forbidden(w, r)
			return
		}
		payload.EmployeeID = user.EmployeeID
	}

	v := shared.NewValidator()
	if payload.EmployeeID == nil {
		v.Add("employeeId", "is required")
	}
	v.Required("leaveType", payload.LeaveType, "is required")
	v.Enum("leaveType", payload.LeaveType, leave.Types, "must be one of "+strings.Join(leave.Types, ", "))
	v.Required("reason", payload.Reason, "is required")
	start, _ := v.Date("startDate", payload.StartDate)
	end, _ := v.Date("endDate", payload.EndDate)
	v.DateOrder("startDate", start, "endDate", end)
	if v.Reject(w, requestID) {
		return
	}

	created, err := h.Service.Create(r.Context(), leave.NewRequest{
		EmployeeID: *payload.EmployeeID,
		LeaveType:  strings.ToLower(strings.TrimSpace(payload.LeaveType)),
		StartDate:  start,
		EndDate:    end,
		Reason:     payload.Reason,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	shared.RecordAudit(r, h.Audit, "leave.create", "leave_request", created.ID, nil, created)
	api.Created(w, map[string]any{"id": created.ID, "daysRequested": created.DaysRequested}, requestID)
}

// handleUpdate serves both decisions and edits. A decision needs
// leave.decide, and a head may only decide for their own department. An edit
// is limited to HR, administrators and the requester while still pending.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.RequireUser(w, r)
	if !ok {
		return
	}
	requestID := middleware.GetRequestID(r.Context())

	var payload updateRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.WriteError(w, r, err)
		return
	}

	v := shared.NewValidator()
	if payload.Status == "" && !payload.isEdit() {
		v.Add("status", "status or leave details are required")
	}
	v.Enum("status", payload.Status, leave.Statuses, "must be one of "+strings.Join(leave.Statuses, ", "))
	v.Enum("leaveType", payload.LeaveType, leave.Types, "must be one of "+strings.Join(leave.Types, ", "))
	change := leave.Change{
		Status:    strings.ToLower(strings.TrimSpace(payload.Status)),
		LeaveType: strings.ToLower(strings.TrimSpace(payload.LeaveType)),
		StartDate: shared.OptionalDate(v, "startDate", payload.StartDate),
		EndDate:   shared.OptionalDate(v, "endDate", payload.EndDate),
		Reason:    payload.Reason,
	}
	if v.Reject(w, requestID) {
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

	if change.Status != "" {
		canDecide, err := h.Permissions.HasPermission(r.Context(), user.Role, auth.PermLeaveDecide)
		if err != nil {
			shared.WriteError(w, r, err)
			return
		}
		if !canDecide {
			shared.Forbidden(w, r)
			return
		}
		change.ApproverID = user.EmployeeID
	}
	if payload.isEdit() && !shared.IsPrivileged(user) {
		own := user.EmployeeID != nil && *user.EmployeeID == current.EmployeeID
		if !own || current.Status != leave.StatusPending {
			shared.Forbidden(w, r)
			return
		}
	}

	before, after, err := h.Service.Update(r.Context(), current.ID, change)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	shared.RecordAudit(r, h.Audit, "leave.update", "leave_request", current.ID, before, after)
	api.Message(w, "leave request updated", requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	current, ok := h.load(w, r)
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), current.ID); err != nil {
		h.writeError(w, r, err)
		return
	}
	shared.RecordAudit(r, h.Audit, "leave.delete", "leave_request", current.ID, current, nil)
	api.Message(w, "leave request deleted", middleware.GetRequestID(r.Context()))
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (leave.Request, bool) {
	id, err := shared.ParseID(r, "leaveID")
	if err != nil {
		shared.BadRequest(w, r, "invalid leave request id")
		return leave.Request{}, false
	}
	req, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return leave.Request{}, false
	}
	return req, true
}

package performancehandler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"staffrecords/internal/domain/auth"
	"staffrecords/internal/domain/core"
	"staffrecords/internal/domain/performance"
	"staffrecords/internal/transport/http/api"
	"staffrecords/internal/transport/http/middleware"
	"staffrecords/internal/transport/http/shared"
)

type Service interface {
	Create(ctx context.Context, rv performance.Review, reviewerID *int64) (performance.Review, error)
	Get(ctx context.Context, id int64) (performance.Review, error)
	List(ctx context.Context, filter performance.Filter) ([]performance.Review, error)
	Update(ctx context.Context, id int64, rv performance.Review) (performance.Review, error)
	Delete(ctx context.Context, id int64) error
	Acknowledge(ctx context.Context, id int64, employeeID *int64) (performance.Review, error)
}

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
	r.Route("/performance", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.With(middleware.RequirePermission(auth.PermPerformanceRead, h.Permissions)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermPerformanceWrite, h.Permissions)).Post("/", h.handleCreate)
		r.Route("/{reviewID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(auth.PermPerformanceWrite, h.Permissions)).Put("/", h.handleUpdate)
			r.With(middleware.RequirePermission(auth.PermPerformanceWrite, h.Permissions)).Delete("/", h.handleDelete)
			r.With(middleware.RequirePermission(auth.PermPerformanceAckOwn, h.Permissions)).Post("/acknowledge", h.handleAcknowledge)
		})
	})
}

type reviewRequest struct {
	EmployeeID   *int64  `json:"employeeId"`
	ReviewerID   *int64  `json:"reviewerId"`
	ReviewPeriod string  `json:"reviewPeriod"`
	Rating       *int    `json:"rating"`
	Strengths    *string `json:"strengths"`
	Improvements *string `json:"improvements"`
	Goals        *string `json:"goals"`
	Comments     *string `json:"comments"`
	ReviewDate   *string `json:"reviewDate"`
	Status       string  `json:"status"`
}

func (p reviewRequest) validate(v *shared.Validator) performance.Review {
	if p.EmployeeID == nil {
		v.Add("employeeId", "is required")
	}
	v.Required("reviewPeriod", p.ReviewPeriod, "is required")
	if p.Rating == nil {
		v.Add("rating", "is required")
	} else if *p.Rating < performance.MinRating || *p.Rating > performance.MaxRating {
		v.Add("rating", "must be between 1 and 5")
	}
	v.Enum("status", p.Status, performance.Statuses, "must be one of "+strings.Join(performance.Statuses, ", "))

	rv := performance.Review{
		ReviewerID:   p.ReviewerID,
		ReviewPeriod: strings.TrimSpace(p.ReviewPeriod),
		Strengths:    p.Strengths,
		Improvements: p.Improvements,
		Goals:        p.Goals,
		Comments:     p.Comments,
		Status:       strings.ToLower(strings.TrimSpace(p.Status)),
	}
	if p.EmployeeID != nil {
		rv.EmployeeID = *p.EmployeeID
	}
	if p.Rating != nil {
		rv.Rating = *p.Rating
	}
	if date := shared.OptionalDate(v, "reviewDate", p.ReviewDate); date != nil {
		rv.ReviewDate = *date
	}
	return rv
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, performance.ErrNotFound):
		shared.NotFound(w, r, "performance review not found")
	case errors.Is(err, core.ErrEmployeeNotFound):
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "employeeId", Reason: "must identify an existing employee"}})
	case errors.Is(err, performance.ErrInvalidRating), errors.Is(err, performance.ErrInvalidStatus):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
	case errors.Is(err, performance.ErrNotReviewSubject):
		api.Fail(w, http.StatusForbidden, "forbidden", err.Error(), requestID)
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
		api.List(w, []performance.Review{}, middleware.GetRequestID(r.Context()))
		return
	}
	filter := performance.Filter{EmployeeID: employeeID, DepartmentID: scope.DepartmentID}
	if scope.EmployeeID != nil {
		filter.EmployeeID = scope.EmployeeID
	}

	reviews, err := h.Service.List(r.Context(), filter)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.List(w, reviews, middleware.GetRequestID(r.Context()))
}

func (h *Handler) checkSubject(w http.ResponseWriter, r *http.Request, user auth.UserContext, employeeID int64) bool {
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

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.RequireUser(w, r)
	if !ok {
		return
	}
	requestID := middleware.GetRequestID(r.Context())
	var payload reviewRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	v := shared.NewValidator()
	rv := payload.validate(v)
	if v.Reject(w, requestID) {
		return
	}
	if !h.checkSubject(w, r, user, rv.EmployeeID) {
		return
	}

	created, err := h.Service.Create(r.Context(), rv, user.EmployeeID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	shared.RecordAudit(r, h.Audit, "performance.create", "performance_review", created.ID, nil, created)
	api.Created(w, map[string]int64{"id": created.ID}, requestID)
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

	var payload reviewRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	if payload.EmployeeID == nil {
		payload.EmployeeID = &current.EmployeeID
	}
	v := shared.NewValidator()
	rv := payload.validate(v)
	if v.Reject(w, requestID) {
		return
	}
	if rv.EmployeeID != current.EmployeeID && !h.checkSubject(w, r, user, rv.EmployeeID) {
		return
	}
	if rv.ReviewerID == nil {
		rv.ReviewerID = current.ReviewerID
	}

	updated, err := h.Service.Update(r.Context(), current.ID, rv)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	shared.RecordAudit(r, h.Audit, "performance.update", "performance_review", current.ID, current, updated)
	api.Message(w, "performance review updated", requestID)
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
	shared.RecordAudit(r, h.Audit, "performance.delete", "performance_review", current.ID, current, nil)
	api.Message(w, "performance review deleted", middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAcknowledge(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.RequireUser(w, r)
	if !ok {
		return
	}
	id, err := shared.ParseID(r, "reviewID")
	if err != nil {
		shared.BadRequest(w, r, "invalid review id")
		return
	}
	before, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	after, err := h.Service.Acknowledge(r.Context(), id, user.EmployeeID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	shared.RecordAudit(r, h.Audit, "performance.acknowledge", "performance_review", id, before, after)
	api.Success(w, after, middleware.GetRequestID(r.Context()))
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (performance.Review, bool) {
	id, err := shared.ParseID(r, "reviewID")
	if err != nil {
		shared.BadRequest(w, r, "invalid review id")
		return performance.Review{}, false
	}
	rv, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return performance.Review{}, false
	}
	return rv, true
}

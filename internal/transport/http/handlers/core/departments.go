package corehandler

import (
	"errors"
	"net/http"
	"strings"

	"staffrecords/internal/domain/core"
	"staffrecords/internal/transport/http/api"
	"staffrecords/internal/transport/http/middleware"
	"staffrecords/internal/transport/http/shared"
)

type departmentRequest struct {
	Name        string `json:"name"`
	HeadID      *int64 `json:"headId"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (p departmentRequest) validate(v *shared.Validator) core.Department {
	v.Required("name", p.Name, "is required")
	v.Enum("status", p.Status, core.Statuses, "must be active or inactive")
	return core.Department{
		Name:        strings.TrimSpace(p.Name),
		HeadID:      p.HeadID,
		Description: strings.TrimSpace(p.Description),
		Status:      strings.ToLower(strings.TrimSpace(p.Status)),
	}
}

func (h *Handler) writeDepartmentError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, core.ErrDepartmentNotFound):
		shared.NotFound(w, r, "department not found")
	case errors.Is(err, core.ErrHeadNotFound):
		api.Fail(w, http.StatusBadRequest, "invalid_head", err.Error(), requestID)
	case errors.Is(err, core.ErrDepartmentInUse):
		api.Fail(w, http.StatusConflict, "conflict", "department cannot be deleted while employees are assigned to it", requestID)
	default:
		shared.WriteError(w, r, err)
	}
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Service.ListDepartments(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.List(w, departments, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r, "departmentID")
	if err != nil {
		shared.BadRequest(w, r, "invalid department id")
		return
	}
	dep, err := h.Service.GetDepartment(r.Context(), id)
	if err != nil {
		h.writeDepartmentError(w, r, err)
		return
	}
	api.Success(w, dep, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload departmentRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	v := shared.NewValidator()
	dep := payload.validate(v)
	if v.Reject(w, requestID) {
		return
	}

	id, err := h.Service.CreateDepartment(r.Context(), dep)
	if err != nil {
		h.writeDepartmentError(w, r, err)
		return
	}
	dep.ID = id
	shared.RecordAudit(r, h.Audit, "department.create", "department", id, nil, dep)
	api.Created(w, map[string]int64{"id": id}, requestID)
}

func (h *Handler) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, err := shared.ParseID(r, "departmentID")
	if err != nil {
		shared.BadRequest(w, r, "invalid department id")
		return
	}
	var payload departmentRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	v := shared.NewValidator()
	dep := payload.validate(v)
	if v.Reject(w, requestID) {
		return
	}

	before, err := h.Service.GetDepartment(r.Context(), id)
	if err != nil {
		h.writeDepartmentError(w, r, err)
		return
	}
	if err := h.Service.UpdateDepartment(r.Context(), id, dep); err != nil {
		h.writeDepartmentError(w, r, err)
		return
	}
	dep.ID = id
	shared.RecordAudit(r, h.Audit, "department.update", "department", id, before, dep)
	api.Message(w, "department updated", requestID)
}

func (h *Handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r, "departmentID")
	if err != nil {
		shared.BadRequest(w, r, "invalid department id")
		return
	}
	before, err := h.Service.GetDepartment(r.Context(), id)
	if err != nil {
		h.writeDepartmentError(w, r, err)
		return
	}
	if err := h.Service.DeleteDepartment(r.Context(), id); err != nil {
		h.writeDepartmentError(w, r, err)
		return
	}
	shared.RecordAudit(r, h.Audit, "department.delete", "department", id, before, nil)
	api.Message(w, "department deleted", middleware.GetRequestID(r.Context()))
}

package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/clockin/internal/clockin/service"
	"github.com/aussiebroadwan/clockin/pkg/clocksdk"
	"github.com/aussiebroadwan/clockin/pkg/httpx"
)

// DepartmentHandler serves the department list. Reads are public so the
// registration form can offer them.
type DepartmentHandler struct {
	DepartmentService *service.DepartmentService
}

// HandleList godoc
//
//	@Summary	List departments
//	@Tags		Departments
//	@Produce	json
//	@Success	200	{object}	clocksdk.ListDepartmentsResponse
//	@Router		/v1/departments [get].
func (h *DepartmentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	depts, err := h.DepartmentService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := clocksdk.ListDepartmentsResponse{Departments: make([]clocksdk.DepartmentResponse, 0, len(depts))}
	for _, d := range depts {
		resp.Departments = append(resp.Departments, clocksdk.DepartmentResponse{ID: d.ID, Name: d.Name})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleCreate godoc
//
//	@Summary	Create a department
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		clocksdk.DepartmentRequest	true	"Name"
//	@Success	201		{object}	clocksdk.DepartmentResponse
//	@Failure	409		{object}	clocksdk.ErrorResponse	"A department with this name already exists"
//	@Router		/v1/admin/departments [post].
func (h *DepartmentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req clocksdk.DepartmentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	d, err := h.DepartmentService.Create(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, clocksdk.DepartmentResponse{ID: d.ID, Name: d.Name})
}

// HandleRename godoc
//
//	@Summary	Rename a department
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string						true	"Department ID"
//	@Param		request	body		clocksdk.DepartmentRequest	true	"New name"
//	@Success	200		{object}	clocksdk.DepartmentResponse
//	@Failure	404		{object}	clocksdk.ErrorResponse	"Department not found"
//	@Router		/v1/admin/departments/{id} [put].
func (h *DepartmentHandler) HandleRename(w http.ResponseWriter, r *http.Request) {
	var req clocksdk.DepartmentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	id := r.PathValue("id")
	if err := h.DepartmentService.Rename(r.Context(), id, req.Name); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clocksdk.DepartmentResponse{ID: id, Name: strings.TrimSpace(req.Name)})
}

// HandleDelete godoc
//
//	@Summary	Delete a department
//	@Tags		Admin
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Department ID"
//	@Success	204
//	@Failure	404	{object}	clocksdk.ErrorResponse	"Department not found"
//	@Router		/v1/admin/departments/{id} [delete].
func (h *DepartmentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.DepartmentService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package http

import (
	"net/http"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/service"
	"github.com/aussiebroadwan/clockin/pkg/clocksdk"
	"github.com/aussiebroadwan/clockin/pkg/httpx"
)

// StaffHandler serves the admin staff table. Every route sits behind
// RequireRole(admin).
type StaffHandler struct {
	StaffService *service.StaffService
}

// HandleList godoc
//
//	@Summary	List staff
//	@Tags		Admin
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	clocksdk.ListStaffResponse
//	@Failure	403	{object}	clocksdk.ErrorResponse	"Forbidden"
//	@Router		/v1/admin/staff [get].
func (h *StaffHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	members, err := h.StaffService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := clocksdk.ListStaffResponse{Staff: make([]clocksdk.StaffMemberResponse, 0, len(members))}
	for _, m := range members {
		resp.Staff = append(resp.Staff, clocksdk.StaffMemberResponse{
			ProfileResponse: profileView(m.Profile, m.Role),
			ClockStatus:     string(m.ClockStatus),
			Activity:        string(m.Activity),
			TodayHours:      hours(m.TodayWorked),
		})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleApprove godoc
//
//	@Summary	Approve a registration
//	@Tags		Admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{object}	clocksdk.MessageResponse
//	@Failure	404	{object}	clocksdk.ErrorResponse	"Profile not found"
//	@Router		/v1/admin/staff/{id}/approve [post].
func (h *StaffHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	if err := h.StaffService.Approve(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clocksdk.MessageResponse{Success: true})
}

// HandleWorkStatus godoc
//
//	@Summary	Set work status
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string						true	"User ID"
//	@Param		request	body		clocksdk.WorkStatusRequest	true	"active, on-leave, off-duty or off-work"
//	@Success	200		{object}	clocksdk.MessageResponse
//	@Failure	400		{object}	clocksdk.ErrorResponse	"Invalid work status"
//	@Router		/v1/admin/staff/{id}/work-status [put].
func (h *StaffHandler) HandleWorkStatus(w http.ResponseWriter, r *http.Request) {
	var req clocksdk.WorkStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if err := h.StaffService.SetWorkStatus(r.Context(), r.PathValue("id"), domain.WorkStatus(req.WorkStatus)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clocksdk.MessageResponse{Success: true})
}

// HandleRole godoc
//
//	@Summary		Set role
//	@Description	Admins cannot change their own role.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string					true	"User ID"
//	@Param			request	body		clocksdk.RoleRequest	true	"staff, supervisor or admin"
//	@Success		200		{object}	clocksdk.MessageResponse
//	@Failure		400		{object}	clocksdk.ErrorResponse	"Invalid role"
//	@Router			/v1/admin/staff/{id}/role [put].
func (h *StaffHandler) HandleRole(w http.ResponseWriter, r *http.Request) {
	var req clocksdk.RoleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if err := h.StaffService.SetRole(r.Context(), session(r), r.PathValue("id"), req.Role); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clocksdk.MessageResponse{Success: true})
}

// HandleUpdate godoc
//
//	@Summary	Edit staff details
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string							true	"User ID"
//	@Param		request	body		clocksdk.ProfileUpdateRequest	true	"Fields to change"
//	@Success	200		{object}	clocksdk.ProfileResponse
//	@Failure	409		{object}	clocksdk.ErrorResponse	"Staff number already taken"
//	@Router		/v1/admin/staff/{id} [patch].
func (h *StaffHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req clocksdk.ProfileUpdateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	ctx := r.Context()
	p, err := h.StaffService.Update(ctx, r.PathValue("id"), profileUpdate(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	role, err := service.RoleOf(ctx, h.StaffService.Store.Roles(), p.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, profileView(p, role))
}

// HandleRotateQR godoc
//
//	@Summary		Issue a new badge
//	@Description	Replaces the staff member's badge. The old badge stops working at once.
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{object}	clocksdk.RotateQRResponse
//	@Failure		404	{object}	clocksdk.ErrorResponse	"Profile not found"
//	@Router			/v1/admin/staff/{id}/qr/rotate [post].
func (h *StaffHandler) HandleRotateQR(w http.ResponseWriter, r *http.Request) {
	code, err := h.StaffService.RotateQR(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clocksdk.RotateQRResponse{QRCode: code})
}

// HandleDelete godoc
//
//	@Summary		Delete a staff member
//	@Description	Removes the profile with its role, attendance, requests and sessions.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Param			id	path	string	true	"User ID"
//	@Success		204
//	@Failure		400	{object}	clocksdk.ErrorResponse	"You cannot delete your own account"
//	@Failure		404	{object}	clocksdk.ErrorResponse	"Profile not found"
//	@Router			/v1/admin/staff/{id} [delete].
func (h *StaffHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.StaffService.Delete(r.Context(), session(r), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAttendance godoc
//
//	@Summary	Staff attendance history
//	@Tags		Admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string	true	"User ID"
//	@Param		from	query		string	false	"First day, YYYY-MM-DD or RFC 3339"
//	@Param		to		query		string	false	"Last day inclusive, YYYY-MM-DD or RFC 3339"
//	@Success	200		{object}	clocksdk.HistoryResponse
//	@Router		/v1/admin/staff/{id}/attendance [get].
func (h *StaffHandler) HandleAttendance(w http.ResponseWriter, r *http.Request) {
	from, to, ok := dateRange(r, h.StaffService.Clock.Location)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidDateRange)
		return
	}

	days, err := h.StaffService.Attendance(r.Context(), r.PathValue("id"), from, to)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dayViews(days, h.StaffService.Clock.CurrentTime()))
}

package http

import (
	"net/http"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/service"
	"github.com/aussiebroadwan/clockin/pkg/clocksdk"
	"github.com/aussiebroadwan/clockin/pkg/httpx"
)

// PasswordRequestHandler serves both sides of the password reset workflow:
// staff asking for a reset and admins deciding on it.
type PasswordRequestHandler struct {
	PasswordRequestService *service.PasswordRequestService
}

// HandleCreate godoc
//
//	@Summary	Ask for a password reset
//	@Tags		Password requests
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		clocksdk.CreatePasswordRequest	true	"Reason"
//	@Success	201		{object}	clocksdk.PasswordRequestResponse
//	@Failure	409		{object}	clocksdk.ErrorResponse	"You already have a pending request"
//	@Router		/v1/password-requests [post].
func (h *PasswordRequestHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req clocksdk.CreatePasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	pr, err := h.PasswordRequestService.Submit(r.Context(), session(r).UserID, req.Reason)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, requestView(pr))
}

// HandleListMine godoc
//
//	@Summary	List own password requests
//	@Tags		Password requests
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	clocksdk.ListPasswordRequestsResponse
//	@Router		/v1/password-requests [get].
func (h *PasswordRequestHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.PasswordRequestService.ListMine(r.Context(), session(r).UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, requestViews(reqs))
}

// HandleListAll godoc
//
//	@Summary	List password requests
//	@Tags		Admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		status	query		string	false	"pending, approved or rejected"
//	@Success	200		{object}	clocksdk.ListPasswordRequestsResponse
//	@Failure	400		{object}	clocksdk.ErrorResponse	"Invalid status"
//	@Router		/v1/admin/password-requests [get].
func (h *PasswordRequestHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.PasswordRequestService.ListAll(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, requestViews(reqs))
}

// HandleProcess godoc
//
//	@Summary		Approve or reject a password request
//	@Description	Approving emails the requester a single use reset link before the decision is stored;
//	@Description	when the email cannot be sent the request stays pending. Every failure answers 400.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		clocksdk.ProcessPasswordRequest	true	"Decision"
//	@Success		200		{object}	clocksdk.MessageResponse
//	@Failure		400		{object}	clocksdk.ErrorResponse	"Unauthorized, not an admin, unknown or already processed request"
//	@Router			/v1/admin/password-requests/process [post].
func (h *PasswordRequestHandler) HandleProcess(w http.ResponseWriter, r *http.Request) {
	var req clocksdk.ProcessPasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	msg, err := h.PasswordRequestService.Process(r.Context(), session(r), service.ProcessInput{
		RequestID:  req.RequestID,
		Action:     domain.RequestAction(req.Action),
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		writeServiceErrorAs(w, r, err, http.StatusBadRequest)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clocksdk.MessageResponse{Success: true, Message: msg})
}

// HandleReset godoc
//
//	@Summary		Reset a password
//	@Description	Redeems the recovery link from a reset email. All sessions of the user are signed out.
//	@Tags			Password requests
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clocksdk.PasswordResetRequest	true	"Recovery token and new password"
//	@Success		200		{object}	clocksdk.MessageResponse
//	@Failure		400		{object}	clocksdk.ErrorResponse	"Password too short"
//	@Failure		401		{object}	clocksdk.ErrorResponse	"Invalid or expired reset link"
//	@Router			/v1/password/reset [post].
func (h *PasswordRequestHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	var req clocksdk.PasswordResetRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := h.PasswordRequestService.ResetPassword(r.Context(), req.Email, req.TokenHash, req.Password); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clocksdk.MessageResponse{Success: true, Message: "Password updated"})
}

package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/service"
	"github.com/aussiebroadwan/clockin/pkg/clocksdk"
	"github.com/aussiebroadwan/clockin/pkg/httpx"
)

// MeHandler serves the caller's own profile.
type MeHandler struct {
	ProfileService *service.ProfileService
}

// HandleGet godoc
//
//	@Summary	Get own profile
//	@Tags		Profile
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	clocksdk.ProfileResponse
//	@Failure	401	{object}	clocksdk.ErrorResponse	"Unauthorized"
//	@Router		/v1/me [get].
func (h *MeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, role, err := h.ProfileService.Get(r.Context(), session(r).UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, profileView(p, role))
}

// HandlePatch godoc
//
//	@Summary	Update own profile
//	@Tags		Profile
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		clocksdk.ProfileUpdateRequest	true	"Fields to change"
//	@Success	200		{object}	clocksdk.ProfileResponse
//	@Failure	400		{object}	clocksdk.ErrorResponse	"Validation failed"
//	@Failure	409		{object}	clocksdk.ErrorResponse	"Staff number already taken"
//	@Router		/v1/me [patch].
func (h *MeHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	var req clocksdk.ProfileUpdateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	sess := session(r)
	p, err := h.ProfileService.Update(r.Context(), sess.UserID, profileUpdate(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, profileView(p, sess.Role))
}

// HandleBadge godoc
//
//	@Summary		Get own badge
//	@Description	Renders the caller's login badge as a QR code PNG.
//	@Tags			Profile
//	@Produce		png
//	@Security		BearerAuth
//	@Param			size	query	int	false	"Image edge in pixels"
//	@Success		200		{file}	binary
//	@Router			/v1/me/badge.png [get].
func (h *MeHandler) HandleBadge(w http.ResponseWriter, r *http.Request) {
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	if size > 1024 {
		size = 1024
	}

	img, err := h.ProfileService.Badge(r.Context(), session(r).UserID, size)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}

func profileUpdate(req clocksdk.ProfileUpdateRequest) domain.ProfileUpdate {
	return domain.ProfileUpdate{
		FullName:    req.FullName,
		Department:  req.Department,
		StaffNumber: req.StaffNumber,
	}
}

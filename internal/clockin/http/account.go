package http

import (
	"net/http"

	"github.com/aussiebroadwan/clockin/internal/clockin/service"
	"github.com/aussiebroadwan/clockin/pkg/clocksdk"
	"github.com/aussiebroadwan/clockin/pkg/httpx"
)

// RegisterHandler serves POST /v1/register. New profiles wait for an admin
// to approve them before any login succeeds.
type RegisterHandler struct {
	ProfileService *service.ProfileService
}

// ServeHTTP godoc
//
//	@Summary		Register a staff account
//	@Description	Creates an unapproved staff profile with a fresh badge.
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clocksdk.RegisterRequest	true	"New account"
//	@Success		201		{object}	clocksdk.RegisterResponse	"user_id, qr_code"
//	@Failure		400		{object}	clocksdk.ErrorResponse		"Validation failed"
//	@Failure		409		{object}	clocksdk.ErrorResponse		"Email or staff number already registered"
//	@Router			/v1/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req clocksdk.RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	p, err := h.ProfileService.Register(r.Context(), service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		Department:  req.Department,
		StaffNumber: req.StaffNumber,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, clocksdk.RegisterResponse{UserID: p.ID, QRCode: p.QRCode})
}

// TokenHandler rotates refresh tokens and ends sessions.
type TokenHandler struct {
	TokenService *service.TokenService
}

// HandleRefresh godoc
//
//	@Summary		Refresh a session
//	@Description	Exchanges a refresh token for a new token pair. The presented token is revoked;
//	@Description	presenting it again revokes the whole session.
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clocksdk.RefreshRequest		true	"Refresh token"
//	@Success		200		{object}	clocksdk.SessionResponse	"New token pair"
//	@Failure		401		{object}	clocksdk.ErrorResponse		"Invalid refresh token"
//	@Failure		403		{object}	clocksdk.ErrorResponse		"Your account is pending approval"
//	@Router			/v1/token/refresh [post].
func (h *TokenHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req clocksdk.RefreshRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	sess, err := h.TokenService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sessionView(sess))
}

// HandleLogout godoc
//
//	@Summary		Sign out
//	@Description	Revokes every refresh token of the caller's session. Access tokens expire naturally.
//	@Tags			Account
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	clocksdk.MessageResponse
//	@Failure		401	{object}	clocksdk.ErrorResponse	"Unauthorized"
//	@Router			/v1/logout [post].
func (h *TokenHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.TokenService.Logout(r.Context(), session(r).SessionID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clocksdk.MessageResponse{Success: true})
}

package http

import (
	"net/http"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/service"
	"github.com/aussiebroadwan/clockin/pkg/clocksdk"
	"github.com/aussiebroadwan/clockin/pkg/httpx"
)

func clientInfo(r *http.Request) service.ClientInfo {
	return service.ClientInfo{
		IP:        httpx.ClientIP(r),
		UserAgent: r.UserAgent(),
	}
}

func grantView(g domain.LoginGrant) clocksdk.LoginGrantResponse {
	return clocksdk.LoginGrantResponse{
		Success:   true,
		Email:     g.Email,
		TokenHash: g.TokenHash,
		Type:      string(g.Type),
		FullName:  g.FullName,
		Role:      string(g.Role),
	}
}

// LoginHandler serves the credential checks. Badge and staff number logins
// answer with a one-time token for /v1/login/verify, password logins with a
// session straight away.
type LoginHandler struct {
	LoginService *service.LoginService
}

// HandleQR godoc
//
//	@Summary		Badge login
//	@Description	Exchanges the token encoded in a staff badge for a one-time login token.
//	@Description	The badge token is never echoed back.
//	@Tags			Login
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clocksdk.QRLoginRequest		true	"Scanned badge token"
//	@Success		200		{object}	clocksdk.LoginGrantResponse	"One-time token to redeem"
//	@Failure		400		{object}	clocksdk.ErrorResponse		"QR token is required"
//	@Failure		401		{object}	clocksdk.ErrorResponse		"Invalid QR code"
//	@Failure		403		{object}	clocksdk.ErrorResponse		"Your account is pending approval"
//	@Failure		500		{object}	clocksdk.ErrorResponse		"Failed to generate login link"
//	@Router			/v1/login/qr [post].
func (h *LoginHandler) HandleQR(w http.ResponseWriter, r *http.Request) {
	var req clocksdk.QRLoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	grant, err := h.LoginService.LoginWithQR(r.Context(), req.QRToken, clientInfo(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, grantView(grant))
}

// HandleStaffNumber godoc
//
//	@Summary		Staff number login
//	@Description	Exchanges a staff number, matched case-insensitively, for a one-time login token.
//	@Tags			Login
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clocksdk.StaffNumberLoginRequest	true	"Staff number"
//	@Success		200		{object}	clocksdk.LoginGrantResponse			"One-time token to redeem, with user_id"
//	@Failure		400		{object}	clocksdk.ErrorResponse				"Staff number is required"
//	@Failure		401		{object}	clocksdk.ErrorResponse				"Invalid staff number"
//	@Failure		403		{object}	clocksdk.ErrorResponse				"Your account is pending approval"
//	@Failure		500		{object}	clocksdk.ErrorResponse				"Failed to generate login link"
//	@Router			/v1/login/staff-number [post].
func (h *LoginHandler) HandleStaffNumber(w http.ResponseWriter, r *http.Request) {
	var req clocksdk.StaffNumberLoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	grant, err := h.LoginService.LoginWithStaffNumber(r.Context(), req.StaffNumber, clientInfo(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	resp := grantView(grant)
	resp.UserID = grant.UserID
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleVerify godoc
//
//	@Summary		Redeem a one-time login token
//	@Description	Consumes the token from a badge or staff number login and starts a session.
//	@Description	A token can be redeemed once; every rejection reads "Verification failed".
//	@Tags			Login
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clocksdk.VerifyRequest		true	"Token to redeem"
//	@Success		200		{object}	clocksdk.SessionResponse	"Session tokens and client route"
//	@Failure		401		{object}	clocksdk.ErrorResponse		"Verification failed"
//	@Failure		403		{object}	clocksdk.ErrorResponse		"Your account is pending approval"
//	@Header			200		{string}	Cache-Control				"no-store"
//	@Router			/v1/login/verify [post].
func (h *LoginHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req clocksdk.VerifyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	sess, err := h.LoginService.Verify(r.Context(), req.Email, req.TokenHash, domain.LinkType(req.Type), clientInfo(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sessionView(sess))
}

// HandlePassword godoc
//
//	@Summary		Password login
//	@Tags			Login
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clocksdk.PasswordLoginRequest	true	"Credentials"
//	@Success		200		{object}	clocksdk.SessionResponse		"Session tokens and client route"
//	@Failure		400		{object}	clocksdk.ErrorResponse			"Email and password are required"
//	@Failure		401		{object}	clocksdk.ErrorResponse			"Invalid email or password"
//	@Failure		403		{object}	clocksdk.ErrorResponse			"Your account is pending approval"
//	@Router			/v1/login/password [post].
func (h *LoginHandler) HandlePassword(w http.ResponseWriter, r *http.Request) {
	var req clocksdk.PasswordLoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	sess, err := h.LoginService.LoginWithPassword(r.Context(), req.Email, req.Password, clientInfo(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sessionView(sess))
}

package http

import (
	"net/http"

	"github.com/aussiebroadwan/clockin/internal/clockin/service"
	"github.com/aussiebroadwan/clockin/pkg/clocksdk"
	"github.com/aussiebroadwan/clockin/pkg/httpx"
)

// BootstrapHandler creates the first admin of a fresh install.
type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP godoc
//
//	@Summary		Create the first admin
//	@Description	Only available when CLOCKIN_BOOTSTRAP_TOKEN is set, and only until an admin exists.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string						true	"Bootstrap token"
//	@Param			request				body		clocksdk.BootstrapRequest	true	"Admin account"
//	@Success		201					{object}	clocksdk.BootstrapResponse
//	@Failure		400					{object}	clocksdk.ErrorResponse	"Validation failed"
//	@Failure		401					{object}	clocksdk.ErrorResponse	"Missing or invalid bootstrap token"
//	@Failure		404					{object}	clocksdk.ErrorResponse	"Bootstrap not enabled"
//	@Failure		409					{object}	clocksdk.ErrorResponse	"Already bootstrapped"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req clocksdk.BootstrapRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	p, err := h.BootstrapService.Bootstrap(r.Context(), r.Header.Get("X-Bootstrap-Token"), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, clocksdk.BootstrapResponse{AdminUserID: p.ID})
}

package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/service"
	"github.com/aussiebroadwan/clockin/pkg/httpx"
)

// LoginActivityHandler serves GET /v1/admin/login-activity.
type LoginActivityHandler struct {
	ActivityService *service.ActivityService

	// Location decides where "today" starts.
	Location *time.Location
}

// ServeHTTP godoc
//
//	@Summary	Login audit trail
//	@Tags		Admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		method	query		string	false	"qr, staff_id or email"
//	@Param		range	query		string	false	"today, 7days, 30days or all"	default(all)
//	@Param		page	query		int		false	"1 based page, 10 entries each"
//	@Success	200		{object}	clocksdk.LoginActivityPage
//	@Failure	400		{object}	clocksdk.ErrorResponse	"Invalid login method or range"
//	@Router		/v1/admin/login-activity [get].
func (h *LoginActivityHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))

	res, err := h.ActivityService.List(r.Context(), service.ActivityQuery{
		Method:   domain.LoginMethod(q.Get("method")),
		Range:    service.ActivityRange(q.Get("range")),
		Page:     page,
		Location: h.Location,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, activityView(res))
}

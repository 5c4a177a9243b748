package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/service"
	"github.com/aussiebroadwan/clockin/pkg/clocksdk"
	"github.com/aussiebroadwan/clockin/pkg/httpx"
)

const msgInvalidDateRange = "Invalid date range"

// AttendanceHandler serves the caller's own clock.
type AttendanceHandler struct {
	AttendanceService *service.AttendanceService
}

// HandleStatus godoc
//
//	@Summary	Current clock status
//	@Tags		Attendance
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	clocksdk.ClockStatusResponse
//	@Router		/v1/attendance/status [get].
func (h *AttendanceHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	st, err := h.AttendanceService.Status(r.Context(), session(r).UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	now := h.AttendanceService.CurrentTime()
	httpx.WriteJSON(w, http.StatusOK, clocksdk.ClockStatusResponse{
		Status:       string(st.Status),
		Activity:     string(st.Activity),
		ClockInTime:  st.ClockIn,
		TodayHours:   hours(st.TodayWorked),
		TodayRecords: recordViews(st.TodayRecords, now),
	})
}

// HandleClockIn godoc
//
//	@Summary		Clock in
//	@Description	Opens a record for the activity. When already clocked in the open record is closed first,
//	@Description	so this also switches activity. The "break" activity puts the caller on break.
//	@Tags			Attendance
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		clocksdk.ClockInRequest	true	"Activity"
//	@Success		200		{object}	clocksdk.AttendanceRecordResponse
//	@Failure		400		{object}	clocksdk.ErrorResponse	"Invalid activity"
//	@Failure		409		{object}	clocksdk.ErrorResponse	"Clock state changed, try again"
//	@Router			/v1/attendance/clock-in [post].
func (h *AttendanceHandler) HandleClockIn(w http.ResponseWriter, r *http.Request) {
	var req clocksdk.ClockInRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	rec, err := h.AttendanceService.ClockIn(r.Context(), session(r).UserID, service.ClockInInput{
		Activity: domain.Activity(req.Activity),
		Notes:    req.Notes,
		Location: req.Location,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, recordViews([]domain.AttendanceRecord{rec}, rec.ClockIn)[0])
}

// HandleClockOut godoc
//
//	@Summary	Clock out
//	@Tags		Attendance
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	clocksdk.AttendanceRecordResponse	"The closed record"
//	@Failure	409	{object}	clocksdk.ErrorResponse				"You are not clocked in"
//	@Router		/v1/attendance/clock-out [post].
func (h *AttendanceHandler) HandleClockOut(w http.ResponseWriter, r *http.Request) {
	rec, err := h.AttendanceService.ClockOut(r.Context(), session(r).UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, recordViews([]domain.AttendanceRecord{rec}, *rec.ClockOut)[0])
}

// HandleHistory godoc
//
//	@Summary		Attendance history
//	@Description	Records grouped by day, newest first. Without bounds the last 30 days are returned.
//	@Tags			Attendance
//	@Produce		json
//	@Security		BearerAuth
//	@Param			from	query		string	false	"First day, YYYY-MM-DD or RFC 3339"
//	@Param			to		query		string	false	"Last day inclusive, YYYY-MM-DD or RFC 3339"
//	@Success		200		{object}	clocksdk.HistoryResponse
//	@Failure		400		{object}	clocksdk.ErrorResponse	"Invalid date range"
//	@Router			/v1/attendance/history [get].
func (h *AttendanceHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	from, to, ok := dateRange(r, h.AttendanceService.Location)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidDateRange)
		return
	}

	days, err := h.AttendanceService.History(r.Context(), session(r).UserID, from, to)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dayViews(days, h.AttendanceService.CurrentTime()))
}

// dateRange reads the from and to query parameters. A bare date for to
// covers that whole day.
func dateRange(r *http.Request, loc *time.Location) (from, to time.Time, ok bool) {
	if loc == nil {
		loc = time.UTC
	}
	q := r.URL.Query()

	from, _, ok = parseDate(q.Get("from"), loc)
	if !ok {
		return time.Time{}, time.Time{}, false
	}

	to, wholeDay, ok := parseDate(q.Get("to"), loc)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	if wholeDay {
		to = to.AddDate(0, 0, 1)
	}
	return from, to, true
}

func parseDate(s string, loc *time.Location) (t time.Time, dateOnly, ok bool) {
	if s == "" {
		return time.Time{}, false, true
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return t, true, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, true
	}
	return time.Time{}, false, false
}

package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/clockin/internal/clockin/service"
	"github.com/aussiebroadwan/clockin/pkg/httpx"
	"github.com/aussiebroadwan/clockin/pkg/slogx"
)

const msgInvalidBody = "Request body must be valid JSON"

// statusOf maps a service error kind to its HTTP status.
func statusOf(kind service.ErrorKind) int {
	switch kind {
	case service.KindInvalid:
		return http.StatusBadRequest
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeServiceError answers with the status of err's kind and its caller
// facing message. Upstream causes are logged here and never returned.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	writeServiceErrorAs(w, r, err, statusOf(service.KindOf(err)))
}

// writeServiceErrorAs writes err's message with a fixed status.
func writeServiceErrorAs(w http.ResponseWriter, r *http.Request, err error, code int) {
	if service.KindOf(err) == service.KindUpstream {
		slogx.FromContext(r.Context()).Error("request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}
	httpx.WriteError(w, code, service.MessageOf(err))
}

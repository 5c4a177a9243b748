package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestInstrumentLabelsByPattern(t *testing.T) {
	t.Parallel()
	m := New()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/staff/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := m.Instrument(mux)

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/staff/"+id, nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
	}

	got := testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "GET /v1/staff/{id}", "418"))
	require.Equal(t, 3.0, got)
}

func TestCountersAndHandler(t *testing.T) {
	t.Parallel()
	m := New()

	m.LoginAttempt("qr", "success")
	m.LoginAttempt("qr", "invalid")
	m.LinkIssued("magiclink")
	m.PasswordDecision("approve", "ok")
	m.Purged("login_links", 0)
	m.Purged("login_links", 4)

	require.Equal(t, 1.0, testutil.ToFloat64(m.loginAttempts.WithLabelValues("qr", "success")))
	require.Equal(t, 4.0, testutil.ToFloat64(m.housekeepingPurge.WithLabelValues("login_links")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "clockin_login_links_issued_total"))
}

func TestNilMetricsIsNoop(t *testing.T) {
	t.Parallel()
	var m *Metrics

	m.LoginAttempt("qr", "success")
	m.LinkRedeemed("ok")

	called := false
	h := m.Instrument(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.True(t, called)
}

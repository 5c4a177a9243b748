// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can build as many as they like.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpInFlight        prometheus.Gauge
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	loginAttempts     *prometheus.CounterVec
	linksIssued       *prometheus.CounterVec
	linkRedemptions   *prometheus.CounterVec
	passwordDecisions *prometheus.CounterVec
	housekeepingPurge *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "clockin_http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clockin_http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clockin_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clockin_login_attempts_total",
			Help: "Credential checks by login method and outcome.",
		}, []string{"method", "outcome"}),
		linksIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clockin_login_links_issued_total",
			Help: "One-time login links minted, by type.",
		}, []string{"type"}),
		linkRedemptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clockin_login_link_redemptions_total",
			Help: "One-time login link redemptions by outcome.",
		}, []string{"outcome"}),
		passwordDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clockin_password_request_decisions_total",
			Help: "Admin decisions on password change requests.",
		}, []string{"action", "outcome"}),
		housekeepingPurge: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clockin_housekeeping_purged_total",
			Help: "Rows removed by housekeeping.",
		}, []string{"table"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpInFlight,
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.loginAttempts,
		m.linksIssued,
		m.linkRedemptions,
		m.passwordDecisions,
		m.housekeepingPurge,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Instrument records request counts and latencies. Routes are labelled by
// their ServeMux pattern to keep label cardinality bounded.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		m.httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(sw.code)).Inc()
	})
}

func (m *Metrics) LoginAttempt(method, outcome string) {
	if m == nil {
		return
	}
	m.loginAttempts.WithLabelValues(method, outcome).Inc()
}

func (m *Metrics) LinkIssued(linkType string) {
	if m == nil {
		return
	}
	m.linksIssued.WithLabelValues(linkType).Inc()
}

func (m *Metrics) LinkRedeemed(outcome string) {
	if m == nil {
		return
	}
	m.linkRedemptions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) PasswordDecision(action, outcome string) {
	if m == nil {
		return
	}
	m.passwordDecisions.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) Purged(table string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.housekeepingPurge.WithLabelValues(table).Add(float64(n))
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

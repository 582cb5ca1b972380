package service

import (
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation and a small in-process snapshot.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	fetchDuration   *prometheus.HistogramVec
	fetchFailures   *prometheus.CounterVec
	adminMutations  *prometheus.CounterVec
	loginAttempts   *prometheus.CounterVec
	contactMessages prometheus.Counter

	requestCount         uint64
	requestDurationTotal uint64
	fetchFailureCount    uint64
	degradedPages        uint64
}

// MetricsSnapshot is the JSON summary returned by the health endpoint.
type MetricsSnapshot struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	FetchFailures            uint64    `json:"fetch_failures"`
	DegradedPages            uint64    `json:"degraded_pages"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	fetchDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "content_fetch_duration_seconds",
		Help:    "Duration of page content reads by source table",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})

	fetchFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "content_fetch_failures_total",
		Help: "Page content reads that failed and were replaced by defaults",
	}, []string{"source"})

	adminMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_mutations_total",
		Help: "Admin write operations by resource, action and outcome",
	}, []string{"resource", "action", "outcome"})

	loginAttempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_login_attempts_total",
		Help: "Login attempts by outcome",
	}, []string{"outcome"})

	contactMessages := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "contact_messages_total",
		Help: "Contact form submissions stored",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, fetchDuration, fetchFailures, adminMutations, loginAttempts, contactMessages, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		fetchDuration:   fetchDuration,
		fetchFailures:   fetchFailures,
		adminMutations:  adminMutations,
		loginAttempts:   loginAttempts,
		contactMessages: contactMessages,
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveFetch records one content read; failed reads are also counted per source.
func (m *MetricsService) ObserveFetch(source string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.fetchDuration.WithLabelValues(source).Observe(duration.Seconds())
	if err != nil {
		m.fetchFailures.WithLabelValues(source).Inc()
		atomic.AddUint64(&m.fetchFailureCount, 1)
	}
}

// MarkDegraded counts a page view served with substituted defaults.
func (m *MetricsService) MarkDegraded() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.degradedPages, 1)
}

// RecordMutation counts an admin write.
func (m *MetricsService) RecordMutation(resource, action string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.adminMutations.WithLabelValues(resource, action, outcome).Inc()
}

// RecordLogin counts a login attempt by outcome (success, invalid, locked, inactive, error).
func (m *MetricsService) RecordLogin(outcome string) {
	if m == nil {
		return
	}
	m.loginAttempts.WithLabelValues(outcome).Inc()
}

// RecordContactMessage counts a stored contact submission.
func (m *MetricsService) RecordContactMessage() {
	if m == nil {
		return
	}
	m.contactMessages.Inc()
}

// Snapshot returns aggregated metrics suitable for the health endpoint.
func (m *MetricsService) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	return MetricsSnapshot{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		FetchFailures:            atomic.LoadUint64(&m.fetchFailureCount),
		DegradedPages:            atomic.LoadUint64(&m.degradedPages),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}

// Package metrics provides Prometheus metrics collection for the fulfillment console.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// UpstreamRequestDuration tracks calls to the fulfillment API by operation and outcome.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fulfillment_upstream_request_duration_seconds",
			Help:    "Fulfillment API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation", "status"},
	)

	// UpstreamRequestsTotal counts calls to the fulfillment API.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fulfillment_upstream_requests_total",
			Help: "Total number of fulfillment API requests",
		},
		[]string{"operation", "status"},
	)

	// ConfirmationsTotal counts package and shipping confirmations.
	ConfirmationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fulfillment_confirmations_total",
			Help: "Total number of confirmations submitted",
		},
		[]string{"kind", "result"},
	)

	// ScanRejectionsTotal counts rejected scans by reason.
	ScanRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fulfillment_scan_rejections_total",
			Help: "Total number of rejected scans",
		},
		[]string{"reason"},
	)

	// ActiveWorkspaces tracks the number of live operator workspaces.
	ActiveWorkspaces = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fulfillment_active_workspaces",
			Help: "Current number of operator workspaces",
		},
	)

	// AuditEntriesTotal counts audit log entries by outcome (written, dropped, failed).
	AuditEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fulfillment_audit_entries_total",
			Help: "Total number of audit log entries by outcome",
		},
		[]string{"result"},
	)

	// CircuitBreakerState exposes the state of each circuit breaker (0 closed, 1 open, 2 half-open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)
)

// unmatchedRoute labels requests no route matched, so scanners probing
// random paths cannot grow the label set.
const unmatchedRoute = "unmatched"

// PrometheusMiddleware records the duration and count of every request,
// labelled by route template rather than raw path.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		labels := []string{c.Request.Method, route, strconv.Itoa(c.Writer.Status())}
		HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		HTTPRequestTotal.WithLabelValues(labels...).Inc()
	}
}

// RecordUpstreamRequest records metrics for a fulfillment API call.
func RecordUpstreamRequest(operation string, duration time.Duration, status string) {
	UpstreamRequestDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
	UpstreamRequestsTotal.WithLabelValues(operation, status).Inc()
}

// RecordConfirmation records a confirmation attempt.
func RecordConfirmation(kind, result string) {
	ConfirmationsTotal.WithLabelValues(kind, result).Inc()
}

// RecordScanRejection records a rejected scan.
func RecordScanRejection(reason string) {
	ScanRejectionsTotal.WithLabelValues(reason).Inc()
}

// RecordAuditEntries adds n audit entries with the given outcome.
func RecordAuditEntries(result string, n int) {
	AuditEntriesTotal.WithLabelValues(result).Add(float64(n))
}

// SetActiveWorkspaces updates the workspace gauge.
func SetActiveWorkspaces(n int) {
	ActiveWorkspaces.Set(float64(n))
}

// SetCircuitBreakerState updates the state gauge of a circuit breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMiddleware_LabelsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(PrometheusMiddleware())
	router.POST("/api/shipping/orders/:orderId/scan", func(c *gin.Context) {
		c.Status(http.StatusConflict)
	})

	tests := []struct {
		name   string
		method string
		path   string
		labels []string
	}{
		{
			name:   "route template, not order id",
			method: http.MethodPost,
			path:   "/api/shipping/orders/ORD-77/scan",
			labels: []string{http.MethodPost, "/api/shipping/orders/:orderId/scan", "409"},
		},
		{
			name:   "unknown path",
			method: http.MethodGet,
			path:   "/wp-login.php",
			labels: []string{http.MethodGet, unmatchedRoute, "404"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(HTTPRequestTotal.WithLabelValues(tt.labels...))

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestTotal.WithLabelValues(tt.labels...)))
		})
	}
}

func TestCounters(t *testing.T) {
	tests := []struct {
		name   string
		record func()
		read   func() float64
		delta  float64
	}{
		{
			name: "upstream requests",
			record: func() {
				RecordUpstreamRequest("fetch_orders", 100*time.Millisecond, "success")
				RecordUpstreamRequest("fetch_orders", 50*time.Millisecond, "success")
			},
			read:  func() float64 { return testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("fetch_orders", "success")) },
			delta: 2,
		},
		{
			name:   "confirmations",
			record: func() { RecordConfirmation("shipping", "error") },
			read:   func() float64 { return testutil.ToFloat64(ConfirmationsTotal.WithLabelValues("shipping", "error")) },
			delta:  1,
		},
		{
			name:   "scan rejections",
			record: func() { RecordScanRejection("already_scanned") },
			read:   func() float64 { return testutil.ToFloat64(ScanRejectionsTotal.WithLabelValues("already_scanned")) },
			delta:  1,
		},
		{
			name:   "audit entries",
			record: func() { RecordAuditEntries("dropped", 3) },
			read:   func() float64 { return testutil.ToFloat64(AuditEntriesTotal.WithLabelValues("dropped")) },
			delta:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.read()
			tt.record()
			assert.Equal(t, before+tt.delta, tt.read())
		})
	}
}

func TestGauges(t *testing.T) {
	SetActiveWorkspaces(3)
	SetCircuitBreakerState("fulfillment-api", 1)

	assert.Equal(t, 3.0, testutil.ToFloat64(ActiveWorkspaces))
	assert.Equal(t, 1.0, testutil.ToFloat64(CircuitBreakerState.WithLabelValues("fulfillment-api")))

	SetCircuitBreakerState("fulfillment-api", 0)
	assert.Zero(t, testutil.ToFloat64(CircuitBreakerState.WithLabelValues("fulfillment-api")))
}

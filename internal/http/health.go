package http

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-console/internal/circuitbreaker"
)

// HealthChecker defines the interface for health check operations.
type HealthChecker interface {
	Check() error
}

// WorkspaceCounter reports how many operator workspaces are live.
type WorkspaceCounter interface {
	Len() int
}

// ReadinessReport is the body of GET /readyz.
type ReadinessReport struct {
	Status     string            `json:"status"`
	Checks     map[string]string `json:"checks"`
	Workspaces *int              `json:"workspaces,omitempty"`
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	started         time.Time
	checkers        map[string]HealthChecker
	circuitBreakers map[string]*circuitbreaker.CircuitBreaker
	workspaces      WorkspaceCounter
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		started:         time.Now(),
		checkers:        make(map[string]HealthChecker),
		circuitBreakers: make(map[string]*circuitbreaker.CircuitBreaker),
	}
}

// RegisterChecker registers a dependency probed on every readiness request.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.checkers[name] = checker
}

// RegisterCircuitBreaker registers a circuit breaker for health monitoring.
// An open breaker makes the console not ready.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	if cb == nil {
		return
	}
	h.circuitBreakers[name] = cb
}

// RegisterWorkspaces adds the live workspace count to the readiness report.
func (h *HealthHandler) RegisterWorkspaces(counter WorkspaceCounter) {
	h.workspaces = counter
}

// Register registers health endpoints on the router.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles the liveness probe endpoint.
// @Summary     Liveness probe
// @Description Returns OK while the process is running, with its uptime in seconds.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]interface{} "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	})
}

// Readiness handles the readiness probe endpoint.
// @Summary     Readiness probe
// @Description Probes MongoDB when configured and reports every circuit breaker. Any failed probe or open breaker answers 503.
// @Tags        Health
// @Produce     json
// @Success     200 {object} ReadinessReport "Service is ready"
// @Failure     503 {object} ReadinessReport "Service is not ready"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	report := h.readiness()
	status := http.StatusOK
	if report.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}

// readiness runs the checkers concurrently; a slow MongoDB ping does not
// delay the breaker report beyond the ping's own timeout.
func (h *HealthHandler) readiness() ReadinessReport {
	report := ReadinessReport{Status: "ok", Checks: make(map[string]string)}

	names := make([]string, 0, len(h.checkers))
	for name := range h.checkers {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]error, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, checker HealthChecker) {
			defer wg.Done()
			results[i] = checker.Check()
		}(i, h.checkers[name])
	}
	wg.Wait()

	for i, name := range names {
		if results[i] != nil {
			report.Checks[name] = results[i].Error()
			report.Status = "degraded"
			continue
		}
		report.Checks[name] = "ok"
	}

	for name, cb := range h.circuitBreakers {
		stats := cb.GetStats()
		report.Checks[name+"_circuit"] = stats.State
		if !stats.IsHealthy {
			report.Status = "degraded"
		}
	}

	if len(report.Checks) == 0 {
		report.Checks["service"] = "ok"
	}
	if h.workspaces != nil {
		n := h.workspaces.Len()
		report.Workspaces = &n
	}
	return report
}

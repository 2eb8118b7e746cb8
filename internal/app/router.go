package app

import (
	"github.com/guttosm/fulfillment-console/config"
	"github.com/guttosm/fulfillment-console/internal/http"
	"github.com/guttosm/fulfillment-console/internal/service"
)

// RouterComponents is what http.NewRouter needs.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter builds the handlers over services. db may be nil, in
// which case history and audit endpoints answer 503 and readiness skips MongoDB.
func InitializeRouter(services *ServiceComponents, db *DatabaseComponents, cfg config.Config) *RouterComponents {
	var audit service.LoggingService
	var opts []http.HandlerOption
	if db != nil {
		audit = db.LoggingService
		if audit != nil {
			opts = append(opts, http.WithAuditLog(audit))
		}
		if db.ConfirmationService != nil {
			opts = append(opts, http.WithConfirmationService(db.ConfirmationService))
		}
	}

	return &RouterComponents{
		Handler:       http.NewHandler(services.Workspaces, services.Batches, opts...),
		HealthHandler: newHealthHandler(services, db),
		Config: http.RouterConfig{
			RateLimit:         cfg.Server.RateLimit,
			RateWindow:        cfg.Server.RateWindow,
			RequestTimeout:    cfg.Server.RequestTimeout,
			EnableIdempotency: cfg.Server.EnableIdempotency,
			CORSOrigins:       cfg.Server.CORSOrigins,
			SwaggerUser:       cfg.Server.SwaggerUser,
			SwaggerPass:       cfg.Server.SwaggerPass,
			LoggingService:    audit,
		},
	}
}

// newHealthHandler reports the upstream circuit, the workspace count and,
// with MongoDB, its ping and both repository circuits.
func newHealthHandler(services *ServiceComponents, db *DatabaseComponents) *http.HealthHandler {
	h := http.NewHealthHandler()
	h.RegisterCircuitBreaker("fulfillment_api", services.FulfillmentBreaker)
	h.RegisterWorkspaces(services.Workspaces)
	if db == nil {
		return h
	}

	h.RegisterChecker("mongodb", db)
	h.RegisterCircuitBreaker("mongodb_logs", db.LogsCircuitBreaker)
	h.RegisterCircuitBreaker("mongodb_confirmations", db.ConfirmationsCircuitBreaker)
	return h
}

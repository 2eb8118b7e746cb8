package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/guttosm/fulfillment-console/internal/domain/dto"
	"github.com/guttosm/fulfillment-console/internal/logger"
	"github.com/guttosm/fulfillment-console/internal/metrics"
	"github.com/guttosm/fulfillment-console/internal/middleware"
	"github.com/guttosm/fulfillment-console/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterConfig holds the knobs of the console's middleware stack.
type RouterConfig struct {
	// RateLimit requests per RateWindow, applied per client IP and per
	// workspace. Zero disables both limiters.
	RateLimit         int
	RateWindow        time.Duration
	RequestTimeout    time.Duration
	EnableIdempotency bool
	// CORSOrigins defaults to the local web console dev server.
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
	LoggingService service.LoggingService
}

func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:  100,
		RateWindow: time.Minute,
	}
}

var defaultCORSOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}

var registerValidatorsOnce sync.Once

func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if err := dto.RegisterValidators(v); err != nil {
			l := logger.For("router")
			l.Error().Err(err).Msg("Failed to register request validators")
		}
	})
}

// NewRouter builds the console engine: infrastructure endpoints at the root
// and the batch, package and shipping routes under /api. A nil handler
// serves the infrastructure endpoints only.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	registerValidators()

	router := gin.New()
	router.Use(globalMiddleware(cfg)...)

	healthHandler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", swaggerHandler(cfg)...)

	api := router.Group("/api", apiMiddleware(cfg)...)
	if handler == nil {
		return router
	}
	for _, group := range []RouteGroup{
		NewBatchRoutes(handler),
		NewPackageRoutes(handler),
		NewShippingRoutes(handler),
	} {
		group.RegisterRoutes(api)
	}
	return router
}

func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 {
		origins = defaultCORSOrigins
	}
	return cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Accept-Encoding", "Accept-Language",
			"Cache-Control", "X-Requested-With",
			middleware.IdempotencyKeyHeader, middleware.RequestIDHeader, middleware.WorkspaceIDHeader,
		},
		ExposeHeaders: []string{
			middleware.RequestIDHeader, middleware.WorkspaceIDHeader,
			"X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After",
		},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
}

// globalMiddleware runs on every route. Correlation ids come first so
// recovery and logging can report them.
func globalMiddleware(cfg RouterConfig) []gin.HandlerFunc {
	stack := []gin.HandlerFunc{
		cors.New(corsConfig(cfg.CORSOrigins)),
		middleware.RequestID(),
		middleware.WorkspaceID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.LoggingService),
		middleware.ErrorHandler(),
	}
	if cfg.RateLimit > 0 {
		stack = append(stack, middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow).RateLimit())
	}
	return stack
}

func apiMiddleware(cfg RouterConfig) []gin.HandlerFunc {
	var stack []gin.HandlerFunc
	if cfg.RequestTimeout > 0 {
		stack = append(stack, middleware.TimeoutWithDuration(cfg.RequestTimeout))
	}
	if cfg.RateLimit > 0 {
		stack = append(stack, middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow).WorkspaceRateLimit())
	}
	if cfg.EnableIdempotency {
		stack = append(stack, middleware.Idempotency(middleware.DefaultIdempotencyConfig()))
	}
	return stack
}

// swaggerHandler guards the docs with basic auth when credentials are set.
func swaggerHandler(cfg RouterConfig) []gin.HandlerFunc {
	docs := ginSwagger.WrapHandler(swaggerFiles.Handler)
	if cfg.SwaggerUser == "" || cfg.SwaggerPass == "" {
		return []gin.HandlerFunc{docs}
	}
	return []gin.HandlerFunc{gin.BasicAuth(gin.Accounts{cfg.SwaggerUser: cfg.SwaggerPass}), docs}
}

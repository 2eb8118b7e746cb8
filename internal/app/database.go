// Package app provides database initialization and setup.
package app

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/fulfillment-console/config"
	"github.com/guttosm/fulfillment-console/internal/circuitbreaker"
	"github.com/guttosm/fulfillment-console/internal/repository"
	"github.com/guttosm/fulfillment-console/internal/service"
	"github.com/rs/zerolog/log"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB                          *repository.MongoDB
	LoggingService              service.LoggingService
	ConfirmationService         service.ConfirmationService
	LogsCircuitBreaker          *circuitbreaker.CircuitBreaker
	ConfirmationsCircuitBreaker *circuitbreaker.CircuitBreaker
}

// Check pings MongoDB for the readiness probe.
func (d *DatabaseComponents) Check() error {
	if d.DB == nil {
		return errors.New("mongodb not connected")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return d.DB.HealthCheck(ctx)
}

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close(ctx)
}

// newCircuitBreaker builds a breaker named name from the shared thresholds.
func newCircuitBreaker(name string, cfg config.CircuitBreakerConfig, isFailure func(error) bool) *circuitbreaker.CircuitBreaker {
	cbCfg := circuitbreaker.DefaultConfig()
	if cfg.FailureThreshold > 0 {
		cbCfg.FailureThreshold = cfg.FailureThreshold
	}
	if cfg.SuccessThreshold > 0 {
		cbCfg.SuccessThreshold = cfg.SuccessThreshold
	}
	if cfg.Timeout > 0 {
		cbCfg.Timeout = cfg.Timeout
	}
	cbCfg.Name = name
	cbCfg.IsFailure = isFailure
	return circuitbreaker.New(cbCfg)
}

// InitializeDatabase connects to MongoDB and builds the audit log and
// confirmation history services on top of it.
// Returns nil if database is disabled or connection fails.
func InitializeDatabase(cfg config.DatabaseConfig, cbCfg config.CircuitBreakerConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without history")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	if err := db.SetLogsTTL(context.Background(), cfg.LogsTTL); err != nil {
		log.Warn().Err(err).Dur("retention", cfg.LogsTTL).Msg("Failed to set audit log retention")
	}

	logsCB := newCircuitBreaker("mongodb-logs", cbCfg, nil)
	confirmationsCB := newCircuitBreaker("mongodb-confirmations", cbCfg, nil)

	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)
	confirmationsRepo := repository.NewConfirmationsRepositoryWithCircuitBreaker(
		repository.NewConfirmationsRepository(db), confirmationsCB)

	return &DatabaseComponents{
		DB:                          db,
		LoggingService:              service.NewLoggingService(logsRepo),
		ConfirmationService:         service.NewConfirmationService(confirmationsRepo),
		LogsCircuitBreaker:          logsCB,
		ConfirmationsCircuitBreaker: confirmationsCB,
	}
}

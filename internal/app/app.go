// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-console/config"
	"github.com/guttosm/fulfillment-console/internal/http"
	"github.com/guttosm/fulfillment-console/internal/jobs"
	"github.com/guttosm/fulfillment-console/internal/middleware"
	"github.com/rs/zerolog/log"
)

// App is the wired console: the router plus the components that need an
// orderly shutdown.
type App struct {
	Router   *gin.Engine
	Services *ServiceComponents
	Database *DatabaseComponents
	Reaper   *jobs.ReaperJob
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) (*App, error) {
	// Initialize logger first (needed by other components)
	InitializeLogger(cfg.Log)

	// MongoDB is optional: without it the console runs with no audit trail or history
	dbComponents := InitializeDatabase(cfg.Database, cfg.CircuitBreaker)
	if dbComponents != nil {
		middleware.InitAsyncLogger(dbComponents.LoggingService, middleware.DefaultAsyncLoggerConfig())
	}

	services, err := InitializeServices(cfg, dbComponents)
	if err != nil {
		middleware.StopAsyncLogger()
		_ = dbComponents.Close(context.Background())
		return nil, err
	}

	routerComponents := InitializeRouter(services, dbComponents, cfg)

	a := &App{
		Router:   http.NewRouter(routerComponents.Handler, routerComponents.HealthHandler, routerComponents.Config),
		Services: services,
		Database: dbComponents,
	}

	if cfg.Workspace.IdleTTL > 0 {
		a.Reaper = jobs.NewReaperJob(services.Workspaces, cfg.Workspace.IdleTTL, cfg.Workspace.ReapSchedule,
			jobs.WithEntrySink(auditSink))
		if err := a.Reaper.Start(); err != nil {
			_ = a.Shutdown(context.Background())
			return nil, fmt.Errorf("start workspace reaper: %w", err)
		}
	}

	return a, nil
}

// auditSink returns the running async logger, if any.
func auditSink() jobs.EntrySink {
	if al := middleware.GetAsyncLogger(); al != nil {
		return al
	}
	return nil
}

// Shutdown stops the reaper, drains the audit log and disconnects from MongoDB.
func (a *App) Shutdown(ctx context.Context) error {
	if a.Reaper != nil {
		a.Reaper.Stop()
		a.Reaper = nil
	}
	middleware.StopAsyncLogger()

	if err := a.Database.Close(ctx); err != nil {
		return fmt.Errorf("close mongodb: %w", err)
	}
	log.Info().Int("workspaces", a.Services.Workspaces.Len()).Msg("Console shut down")
	return nil
}

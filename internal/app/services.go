// Package app provides service initialization.
package app

import (
	"fmt"

	"github.com/guttosm/fulfillment-console/config"
	"github.com/guttosm/fulfillment-console/internal/circuitbreaker"
	"github.com/guttosm/fulfillment-console/internal/fulfillment"
	"github.com/guttosm/fulfillment-console/internal/service"
	"github.com/guttosm/fulfillment-console/internal/shipping"
	"github.com/rs/zerolog/log"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Client             *fulfillment.Client
	FulfillmentBreaker *circuitbreaker.CircuitBreaker
	Catalog            *shipping.Catalog
	Workspaces         *service.Workspaces
	Batches            service.BatchService
}

// InitializeServices builds the fulfillment API client and the workspace registry.
// dbComponents may be nil, in which case confirmations are not recorded.
func InitializeServices(cfg config.Config, dbComponents *DatabaseComponents) (*ServiceComponents, error) {
	catalog := shipping.DefaultCatalog()
	if cfg.Workspace.CatalogFile != "" {
		loaded, err := shipping.LoadCatalog(cfg.Workspace.CatalogFile)
		if err != nil {
			return nil, fmt.Errorf("courier catalog %s: %w", cfg.Workspace.CatalogFile, err)
		}
		catalog = loaded
		log.Info().
			Str("file", cfg.Workspace.CatalogFile).
			Int("couriers", len(catalog.Menus())).
			Msg("Loaded courier catalog")
	}

	breaker := newCircuitBreaker("fulfillment-api", cfg.CircuitBreaker, fulfillment.IsUpstreamFailure)
	client := fulfillment.NewClient(fulfillment.NewHTTPTransport(
		cfg.Fulfillment.BaseURL,
		cfg.Fulfillment.Timeout,
		fulfillment.WithCircuitBreaker(breaker),
	))

	var recorder service.ConfirmationRecorder
	if dbComponents != nil && dbComponents.ConfirmationService != nil {
		recorder = dbComponents.ConfirmationService
	}

	return &ServiceComponents{
		Client:             client,
		FulfillmentBreaker: breaker,
		Catalog:            catalog,
		Workspaces:         service.NewWorkspaces(client, catalog, recorder),
		Batches:            service.NewBatchService(client),
	}, nil
}

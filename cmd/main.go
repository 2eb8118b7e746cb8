// Package main is the entry point for the fulfillment console API.
//
// @title           Fulfillment Console API
// @version         1.0.0
// @description     Operator console for packing and shipping fulfillment batches.
//
//	Operators load a batch, split each order into packages, scan orders and
//	record tracking numbers before confirming them with the fulfillment API.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/fulfillment-console
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @tag.name        Batches
// @tag.description Fulfillment batches available to the console
//
// @tag.name        Packages
// @tag.description Package allocation and confirmation
//
// @tag.name        Shipping
// @tag.description Order scanning, tracking numbers and shipping confirmation
//
// @tag.name        History
// @tag.description Confirmation history and audit trail per workspace
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

//go:generate swag init -g cmd/main.go -o docs -d ../

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/guttosm/fulfillment-console/docs" // swagger docs

	"github.com/guttosm/fulfillment-console/config"
	"github.com/guttosm/fulfillment-console/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal().Err(err).Msg("Failed to read .env")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	application, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize console")
	}

	server := app.NewServer(application.Router, cfg.Server.Port,
		app.WithShutdownTimeout(cfg.Server.ShutdownTimeout))
	server.OnShutdown(application.Shutdown)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}

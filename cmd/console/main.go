// Command console is the terminal scan console. It talks to the fulfillment API
// directly and drives the shipping flow of a single operator workspace.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/guttosm/fulfillment-console/config"
	"github.com/guttosm/fulfillment-console/internal/circuitbreaker"
	"github.com/guttosm/fulfillment-console/internal/fulfillment"
	"github.com/guttosm/fulfillment-console/internal/logger"
	"github.com/guttosm/fulfillment-console/internal/service"
	"github.com/guttosm/fulfillment-console/internal/shipping"
	"github.com/guttosm/fulfillment-console/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "console: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logFile := flag.String("log", "", "write logs to this file (default: discard)")
	locale := flag.String("locale", "en", "language of validation messages (en, pt, nl)")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	// The terminal belongs to the UI; logs go to a file or nowhere.
	var w io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		w = f
	}
	logger.InitWithWriter(cfg.Log.Level, false, w)

	catalog := shipping.DefaultCatalog()
	if cfg.Workspace.CatalogFile != "" {
		loaded, err := shipping.LoadCatalog(cfg.Workspace.CatalogFile)
		if err != nil {
			return fmt.Errorf("courier catalog %s: %w", cfg.Workspace.CatalogFile, err)
		}
		catalog = loaded
	}

	cbCfg := circuitbreaker.DefaultConfig()
	cbCfg.Name = "fulfillment-api"
	cbCfg.IsFailure = fulfillment.IsUpstreamFailure
	if cfg.CircuitBreaker.FailureThreshold > 0 {
		cbCfg.FailureThreshold = cfg.CircuitBreaker.FailureThreshold
	}
	if cfg.CircuitBreaker.SuccessThreshold > 0 {
		cbCfg.SuccessThreshold = cfg.CircuitBreaker.SuccessThreshold
	}
	if cfg.CircuitBreaker.Timeout > 0 {
		cbCfg.Timeout = cfg.CircuitBreaker.Timeout
	}

	client := fulfillment.NewClient(fulfillment.NewHTTPTransport(
		cfg.Fulfillment.BaseURL,
		cfg.Fulfillment.Timeout,
		fulfillment.WithCircuitBreaker(circuitbreaker.New(cbCfg)),
	))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := service.NewShippingSession(uuid.NewString(), client, catalog, nil)
	model := tui.New(ctx, service.NewBatchService(client), session, tui.WithLocale(*locale))

	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return err
	}
	return nil
}

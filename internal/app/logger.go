package app

import (
	"github.com/guttosm/fulfillment-console/config"
	"github.com/guttosm/fulfillment-console/internal/logger"
	"github.com/rs/zerolog"
)

// InitializeLogger sets up the global logger from LOG_LEVEL and LOG_PRETTY.
func InitializeLogger(cfg config.LogConfig) {
	logger.Init(cfg.Level, cfg.Pretty)
	l := logger.For("app")
	l.Debug().Str("level", zerolog.GlobalLevel().String()).Bool("pretty", cfg.Pretty).Msg("Logger ready")
}

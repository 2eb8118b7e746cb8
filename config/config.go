// Package config reads the console's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds the complete application configuration.
type Config struct {
	Server         ServerConfig
	Fulfillment    FulfillmentConfig
	CircuitBreaker CircuitBreakerConfig
	Workspace      WorkspaceConfig
	Database       DatabaseConfig
	Log            LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port              string
	RateLimit         int
	RateWindow        time.Duration
	RequestTimeout    time.Duration
	ShutdownTimeout   time.Duration
	EnableIdempotency bool
	CORSOrigins       []string
	SwaggerUser       string
	SwaggerPass       string
}

// FulfillmentConfig points at the upstream fulfillment API.
type FulfillmentConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CircuitBreakerConfig is shared by the fulfillment API and MongoDB breakers.
type CircuitBreakerConfig struct {
	FailureThreshold int
	SuccessThreshold int
	Timeout          time.Duration
}

// WorkspaceConfig controls the per-operator session registry.
type WorkspaceConfig struct {
	IdleTTL      time.Duration
	ReapSchedule string
	CatalogFile  string
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool
}

// LogConfig holds zerolog configuration.
type LogConfig struct {
	Level  string
	Pretty bool
}

// LoadDotEnv loads variables from the given .env files (".env" when none is
// given) without overriding variables already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Load reads the configuration from the environment. Unset variables take
// their defaults; a variable that is set but malformed is an error, and so
// is a configuration Validate rejects.
func Load() (Config, error) {
	var env env
	cfg := Config{
		Server: ServerConfig{
			Port:              env.str("PORT", "8080"),
			RateLimit:         env.int("RATE_LIMIT", 100),
			RateWindow:        env.duration("RATE_WINDOW", time.Minute),
			RequestTimeout:    env.duration("REQUEST_TIMEOUT", 30*time.Second),
			ShutdownTimeout:   env.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
			EnableIdempotency: env.bool("IDEMPOTENCY_ENABLED", true),
			CORSOrigins:       parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser:       env.str("SWAGGER_USER", ""),
			SwaggerPass:       env.str("SWAGGER_PASS", ""),
		},
		Fulfillment: FulfillmentConfig{
			BaseURL: strings.TrimRight(env.str("FULFILLMENT_API_URL", "http://localhost:3000/api"), "/"),
			Timeout: env.duration("FULFILLMENT_API_TIMEOUT", 10*time.Second),
		},
		CircuitBreaker: CircuitBreakerConfig{
			FailureThreshold: env.int("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			SuccessThreshold: env.int("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			Timeout:          env.duration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Workspace: WorkspaceConfig{
			IdleTTL:      env.duration("WORKSPACE_IDLE_TTL", 8*time.Hour),
			ReapSchedule: env.str("WORKSPACE_REAP_SCHEDULE", "@every 10m"),
			CatalogFile:  env.str("COURIER_CATALOG_FILE", ""),
		},
		Database: DatabaseConfig{
			URI:          env.str("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName: env.str("MONGODB_DATABASE", "fulfillment_console"),
			LogsTTL:      env.duration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			Enabled:      env.bool("MONGODB_ENABLED", false),
		},
		Log: LogConfig{
			Level:  strings.ToLower(env.str("LOG_LEVEL", "info")),
			Pretty: env.bool("LOG_PRETTY", false),
		},
	}

	if err := errors.Join(append(env.errs, cfg.Validate())...); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the values Load cannot check one variable at a time.
func (c Config) Validate() error {
	var errs []error
	if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %q is not a port number", c.Server.Port))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, errors.New("RATE_LIMIT must not be negative"))
	}
	if c.Server.RateLimit > 0 && c.Server.RateWindow <= 0 {
		errs = append(errs, errors.New("RATE_WINDOW must be positive when RATE_LIMIT is set"))
	}
	if u, err := url.Parse(c.Fulfillment.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("FULFILLMENT_API_URL %q is not an absolute URL", c.Fulfillment.BaseURL))
	}
	if c.Workspace.IdleTTL > 0 {
		if _, err := cron.ParseStandard(c.Workspace.ReapSchedule); err != nil {
			errs = append(errs, fmt.Errorf("WORKSPACE_REAP_SCHEDULE: %w", err))
		}
	}
	if (c.Server.SwaggerUser == "") != (c.Server.SwaggerPass == "") {
		errs = append(errs, errors.New("SWAGGER_USER and SWAGGER_PASS must be set together"))
	}
	return errors.Join(errs...)
}

// env reads typed variables and remembers the ones that did not parse.
type env struct {
	errs []error
}

func (e *env) lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (e *env) invalid(key, value, want string) {
	e.errs = append(e.errs, fmt.Errorf("%s=%q is not %s", key, value, want))
}

func (e *env) str(key, def string) string {
	if v, ok := e.lookup(key); ok {
		return v
	}
	return def
}

func (e *env) int(key string, def int) int {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		e.invalid(key, v, "an integer")
		return def
	}
	return i
}

func (e *env) bool(key string, def bool) bool {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.invalid(key, v, "a boolean")
		return def
	}
	return b
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.invalid(key, v, "a duration")
		return def
	}
	return d
}

// parseCORSOrigins appends the configured origins to the local dev server's.
func parseCORSOrigins(s string) []string {
	result := []string{
		"http://localhost:5173",
		"http://127.0.0.1:5173",
	}
	for _, p := range strings.Split(s, ",") {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}

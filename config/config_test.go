package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"PORT", "RATE_LIMIT", "RATE_WINDOW", "REQUEST_TIMEOUT", "SHUTDOWN_TIMEOUT", "IDEMPOTENCY_ENABLED",
	"CORS_ORIGINS", "SWAGGER_USER", "SWAGGER_PASS", "FULFILLMENT_API_URL", "FULFILLMENT_API_TIMEOUT",
	"CIRCUIT_BREAKER_FAILURE_THRESHOLD", "CIRCUIT_BREAKER_SUCCESS_THRESHOLD", "CIRCUIT_BREAKER_TIMEOUT",
	"WORKSPACE_IDLE_TTL", "WORKSPACE_REAP_SCHEDULE", "COURIER_CATALOG_FILE",
	"MONGODB_URI", "MONGODB_DATABASE", "MONGODB_LOGS_TTL", "MONGODB_ENABLED", "LOG_LEVEL", "LOG_PRETTY",
}

// cleanEnv blanks every variable Load reads, then applies vars.
func cleanEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cleanEnv(t, nil)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 100, cfg.Server.RateLimit)
	assert.Equal(t, time.Minute, cfg.Server.RateWindow)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Server.EnableIdempotency)
	assert.Equal(t, "http://localhost:3000/api", cfg.Fulfillment.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Fulfillment.Timeout)
	assert.Equal(t, 5, cfg.CircuitBreaker.FailureThreshold)
	assert.Equal(t, 8*time.Hour, cfg.Workspace.IdleTTL)
	assert.Equal(t, "@every 10m", cfg.Workspace.ReapSchedule)
	assert.Empty(t, cfg.Workspace.CatalogFile)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "fulfillment_console", cfg.Database.DatabaseName)
	assert.Equal(t, 30*24*time.Hour, cfg.Database.LogsTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
}

func TestLoad_FromEnvironment(t *testing.T) {
	cleanEnv(t, map[string]string{
		"PORT":                              "9090",
		"RATE_LIMIT":                        "50",
		"RATE_WINDOW":                       "30s",
		"REQUEST_TIMEOUT":                   "5s",
		"SHUTDOWN_TIMEOUT":                  "3s",
		"FULFILLMENT_API_URL":               "http://fulfillment:3000/api/",
		"FULFILLMENT_API_TIMEOUT":           "2s",
		"CIRCUIT_BREAKER_FAILURE_THRESHOLD": "3",
		"WORKSPACE_IDLE_TTL":                "1h",
		"WORKSPACE_REAP_SCHEDULE":           "*/5 * * * *",
		"COURIER_CATALOG_FILE":              "/etc/console/couriers.yaml",
		"MONGODB_ENABLED":                   "true",
		"MONGODB_LOGS_TTL":                  "168h",
		"LOG_LEVEL":                         " DEBUG ",
		"LOG_PRETTY":                        "true",
		"CORS_ORIGINS":                      " https://console.example.com , ",
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 50, cfg.Server.RateLimit)
	assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "http://fulfillment:3000/api", cfg.Fulfillment.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Fulfillment.Timeout)
	assert.Equal(t, 3, cfg.CircuitBreaker.FailureThreshold)
	assert.Equal(t, time.Hour, cfg.Workspace.IdleTTL)
	assert.Equal(t, "*/5 * * * *", cfg.Workspace.ReapSchedule)
	assert.Equal(t, "/etc/console/couriers.yaml", cfg.Workspace.CatalogFile)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, 7*24*time.Hour, cfg.Database.LogsTTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
	assert.Equal(t, []string{
		"http://localhost:5173",
		"http://127.0.0.1:5173",
		"https://console.example.com",
	}, cfg.Server.CORSOrigins)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		vars    map[string]string
		wantErr []string
	}{
		{
			name:    "malformed values are all reported",
			vars:    map[string]string{"RATE_LIMIT": "lots", "MONGODB_ENABLED": "yes please", "RATE_WINDOW": "1 minute"},
			wantErr: []string{`RATE_LIMIT="lots" is not an integer`, "MONGODB_ENABLED", "RATE_WINDOW"},
		},
		{
			name:    "port out of range",
			vars:    map[string]string{"PORT": "70000"},
			wantErr: []string{"PORT"},
		},
		{
			name:    "relative fulfillment URL",
			vars:    map[string]string{"FULFILLMENT_API_URL": "fulfillment/api"},
			wantErr: []string{"FULFILLMENT_API_URL"},
		},
		{
			name:    "bad reap schedule",
			vars:    map[string]string{"WORKSPACE_REAP_SCHEDULE": "every ten minutes"},
			wantErr: []string{"WORKSPACE_REAP_SCHEDULE"},
		},
		{
			name:    "half of the swagger credentials",
			vars:    map[string]string{"SWAGGER_USER": "ops"},
			wantErr: []string{"SWAGGER_USER and SWAGGER_PASS"},
		},
		{
			name:    "negative rate limit",
			vars:    map[string]string{"RATE_LIMIT": "-1"},
			wantErr: []string{"RATE_LIMIT must not be negative"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanEnv(t, tt.vars)

			_, err := Load()
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestValidate_ReaperDisabledSkipsSchedule(t *testing.T) {
	cleanEnv(t, map[string]string{"WORKSPACE_IDLE_TTL": "0s", "WORKSPACE_REAP_SCHEDULE": "never"})

	_, err := Load()
	assert.NoError(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("loads without overriding the environment", func(t *testing.T) {
		cleanEnv(t, map[string]string{"LOG_LEVEL": "error"})
		require.NoError(t, os.Unsetenv("PORT"))
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("PORT=7070\nLOG_LEVEL=warn\n"), 0o600))

		require.NoError(t, LoadDotEnv(path))
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "7070", cfg.Server.Port)
		assert.Equal(t, "error", cfg.Log.Level)
	})

	t.Run("malformed file is reported", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("BAD-KEY=1\n"), 0o600))

		assert.Error(t, LoadDotEnv(path))
	})
}

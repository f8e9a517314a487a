package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, "http://localhost:5173", cfg.API.AllowedOrigin)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "http://localhost:8080/api", cfg.Client.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Client.Timeout)
	assert.Equal(t, 10, cfg.Client.PageSize)
	assert.Equal(t, slog.LevelInfo, cfg.Client.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("API_PORT", "9090")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("ADMIN_PAGE_SIZE", "20")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 9090, cfg.API.Port)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 20, cfg.Client.PageSize)
	assert.Equal(t, slog.LevelDebug, cfg.Client.LogLevel)
	assert.Contains(t, cfg.Database.DSN(), "host=db port=5432")
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"DB_PORT", "abc"},
		{"API_PORT", "x"},
		{"CACHE_TTL_SECONDS", "soon"},
		{"CACHE_ENABLED", "maybe"},
		{"ADMIN_TIMEOUT_SECONDS", "1.5"},
		{"ADMIN_PAGE_SIZE", "ten"},
		{"LOG_LEVEL", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

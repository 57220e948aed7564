package config_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizdeck/internal/client/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.API.BaseURL)
	assert.Equal(t, config.StorageFile, cfg.Storage.Backend)
	assert.Equal(t, "127.0.0.1:3000", cfg.HTTP.GetAddress())
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("QUIZ_API_BASE_URL", "https://quiz.example.com/api/")
	t.Setenv("QUIZ_STORAGE_BACKEND", "redis")
	t.Setenv("QUIZ_HTTP_PORT", "8081")
	t.Setenv("QUIZ_LOGGER_MODE", "development")

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	// Trailing slash is trimmed by the accessor, not the loader.
	assert.Equal(t, "https://quiz.example.com/api", cfg.API.GetBaseURL())
	assert.Equal(t, config.StorageRedis, cfg.Storage.Backend)
	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, "development", cfg.Logging.Mode)
}

func TestShutdownConfig_GetTimeout(t *testing.T) {
	c := config.ShutdownConfig{Timeout: 7}
	assert.Equal(t, "7s", c.GetTimeout().String())
}

func TestRedisConfig_GetAddressString(t *testing.T) {
	c := config.RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", c.GetAddressString())
}

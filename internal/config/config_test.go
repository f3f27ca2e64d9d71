// Package config tests.
package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 1, cfg.FetchAttempts)
	assert.Equal(t, "public, max-age=3600", cfg.PageCacheControl)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ARKIDE_API_BASE_URL", "http://localhost:9999/")
	t.Setenv("ARKIDE_FETCH_ATTEMPTS", "3")
	t.Setenv("ENVIRONMENT", "production")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", cfg.APIBaseURL)
	assert.Equal(t, 3, cfg.FetchAttempts)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_WithPrefix(t *testing.T) {
	t.Setenv("VIEWER_HTTP_ADDR", ":9090")
	cfg, err := LoadWithPrefix("VIEWER")
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
}

func TestLoad_InvalidBaseURL(t *testing.T) {
	t.Setenv("ARKIDE_API_BASE_URL", "arkideapi.arc360hub.com")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APIBaseURL")
}

func TestValidate(t *testing.T) {
	cfg := Config{
		APIBaseURL:    "https://example.test",
		FetchTimeout:  time.Second,
		FetchAttempts: 1,
		HTTPAddr:      ":0",
		LogLevel:      "debug",
	}
	require.NoError(t, cfg.Validate())

	cfg.FetchAttempts = 0
	assert.Error(t, cfg.Validate())

	cfg.FetchAttempts = 1
	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Validate())

	cfg.LogLevel = "info"
	cfg.APIBaseURL = "ftp://example.test"
	assert.Error(t, cfg.Validate())
}

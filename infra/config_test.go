package infra

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("POSTOS_API_URL", "")
	t.Setenv("OSRM_URL", "")
	t.Setenv("HTTP_TIMEOUT", "")
	t.Setenv("MAX_PAGES", "")
	t.Setenv("SESSION_CACHE_SIZE", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := NewConfig()
	assert.Equal(t, "http://localhost:5000", cfg.PostosApiUrl)
	assert.Equal(t, "https://router.project-osrm.org", cfg.OsrmUrl)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 1024, cfg.MaxPages)
	assert.Equal(t, 256, cfg.SessionCacheSize)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
}

func TestNewConfigOverrides(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		value  string
		assert func(t *testing.T, cfg Config)
	}{
		{name: "timeout", key: "HTTP_TIMEOUT", value: "3s", assert: func(t *testing.T, cfg Config) {
			assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
		}},
		{name: "bad timeout", key: "HTTP_TIMEOUT", value: "logo", assert: func(t *testing.T, cfg Config) {
			assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
		}},
		{name: "pages", key: "MAX_PAGES", value: "12", assert: func(t *testing.T, cfg Config) {
			assert.Equal(t, 12, cfg.MaxPages)
		}},
		{name: "negative pages", key: "MAX_PAGES", value: "-1", assert: func(t *testing.T, cfg Config) {
			assert.Equal(t, 1024, cfg.MaxPages)
		}},
		{name: "session cache apart from pages", key: "SESSION_CACHE_SIZE", value: "32", assert: func(t *testing.T, cfg Config) {
			assert.Equal(t, 32, cfg.SessionCacheSize)
			assert.Equal(t, 1024, cfg.MaxPages)
		}},
		{name: "log level", key: "LOG_LEVEL", value: "debug", assert: func(t *testing.T, cfg Config) {
			assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
		}},
		{name: "api url", key: "POSTOS_API_URL", value: "http://api:5000", assert: func(t *testing.T, cfg Config) {
			assert.Equal(t, "http://api:5000", cfg.PostosApiUrl)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ENVIRONMENT", "test")
			t.Setenv(tt.key, tt.value)
			tt.assert(t, NewConfig())
		})
	}
}

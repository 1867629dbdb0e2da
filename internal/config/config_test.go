package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("CREDENTIAL_BACKEND", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("USERNAME_TTL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, BackendCookie, cfg.Credentials.Backend)
	assert.Equal(t, 8*time.Hour, cfg.Credentials.TokenTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.Credentials.UsernameTTL)
	assert.Equal(t, 20, cfg.Server.PageSize)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("API_BASE_URL", "http://backend.local:8000/")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("CREDENTIAL_BACKEND", "REDIS")
	t.Setenv("AUDIT_ENABLED", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "http://backend.local:8000", cfg.API.BaseURL, "trailing slash is trimmed")
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, BackendRedis, cfg.Credentials.Backend)
	assert.True(t, cfg.Audit.Enabled)
}

func TestLoadConfig_InvalidBackend(t *testing.T) {
	t.Setenv("CREDENTIAL_BACKEND", "localstorage")

	cfg, err := LoadConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "CREDENTIAL_BACKEND")
}

func TestPostgresConfig_URL(t *testing.T) {
	cfg := PostgresConfig{Host: "db", Port: "5433", Database: "panel", User: "u", Password: "p"}
	assert.Equal(t, "postgres://u:p@db:5433/panel?sslmode=disable", cfg.URL())
}

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue int
		envValue     string
		want         int
	}{
		{
			name:         "returns integer when valid",
			key:          "TEST_INT",
			defaultValue: 100,
			envValue:     "200",
			want:         200,
		},
		{
			name:         "returns default when invalid",
			key:          "TEST_INT_INVALID",
			defaultValue: 100,
			envValue:     "invalid",
			want:         100,
		},
		{
			name:         "returns default when not set",
			key:          "TEST_INT_NOTSET",
			defaultValue: 100,
			envValue:     "",
			want:         100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.envValue)
			assert.Equal(t, tt.want, getEnvAsInt(tt.key, tt.defaultValue))
		})
	}
}

func TestGetEnvAsBool(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue bool
		want         bool
	}{
		{name: "true", envValue: "true", want: true},
		{name: "numeric false", envValue: "0", defaultValue: true, want: false},
		{name: "invalid falls back", envValue: "yes please", defaultValue: true, want: true},
		{name: "unset falls back", envValue: "", defaultValue: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.envValue)
			assert.Equal(t, tt.want, getEnvAsBool("TEST_BOOL", tt.defaultValue))
		})
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue time.Duration
		want         time.Duration
	}{
		{name: "returns duration when valid", envValue: "30s", defaultValue: 10 * time.Second, want: 30 * time.Second},
		{name: "returns default when invalid", envValue: "invalid", defaultValue: 10 * time.Second, want: 10 * time.Second},
		{name: "returns default when not set", envValue: "", defaultValue: 10 * time.Second, want: 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.envValue)
			assert.Equal(t, tt.want, getEnvAsDuration("TEST_DURATION", tt.defaultValue))
		})
	}
}

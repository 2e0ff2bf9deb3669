package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: "8080", AppEnv: "production"},
		API:     APIConfig{BaseURL: "https://api.educhain.example/api", TimeoutSeconds: 30},
		Session: SessionConfig{Secret: "test-secret", TTLHours: 24},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing API base URL",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: "EDUCHAIN_API_BASE_URL is required",
		},
		{
			name:    "missing session secret",
			mutate:  func(c *Config) { c.Session.Secret = "" },
			wantErr: "SESSION_SECRET is required",
		},
		{
			name:    "missing port",
			mutate:  func(c *Config) { c.Server.Port = "" },
			wantErr: "PORT is required",
		},
		{
			name:    "non-positive API timeout",
			mutate:  func(c *Config) { c.API.TimeoutSeconds = 0 },
			wantErr: "EDUCHAIN_API_TIMEOUT_SECONDS must be positive",
		},
		{
			name:    "non-positive session TTL",
			mutate:  func(c *Config) { c.Session.TTLHours = 0 },
			wantErr: "SESSION_TTL_HOURS must be positive",
		},
		{
			name: "profiling enabled without endpoint",
			mutate: func(c *Config) {
				c.Profiling.Enabled = true
				c.Profiling.Endpoint = ""
			},
			wantErr: "O11Y_PROFILING_ENDPOINT is required when profiling is enabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("EDUCHAIN_API_BASE_URL", "https://api.educhain.example/api")
	t.Setenv("SESSION_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, 30, cfg.API.TimeoutSeconds)
	assert.Equal(t, 24, cfg.Session.TTLHours)
	assert.Equal(t, "educhain-web", cfg.Session.Issuer)
	assert.Equal(t, 60, cfg.OTP.ResendCooldownSeconds)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Session.CookieSecure)
	assert.False(t, cfg.Profiling.Enabled)
}

func TestLoad_AllowedOrigins(t *testing.T) {
	t.Setenv("EDUCHAIN_API_BASE_URL", "https://api.educhain.example/api")
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("ALLOWED_CORS_ORIGINS", "https://educhain.example, https://www.educhain.example ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://educhain.example", "https://www.educhain.example"}, cfg.Server.AllowedOrigins)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("EDUCHAIN_API_BASE_URL", "")
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected bool
	}{
		{
			name:     "development environment",
			config:   &Config{Server: ServerConfig{AppEnv: "development"}},
			expected: true,
		},
		{
			name:     "debug gin mode",
			config:   &Config{Server: ServerConfig{GinMode: "debug"}},
			expected: true,
		},
		{
			name:     "production release",
			config:   &Config{Server: ServerConfig{GinMode: "release", AppEnv: "production"}},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.IsDevelopment())
		})
	}
}

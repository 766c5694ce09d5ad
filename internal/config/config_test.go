package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProductionConfig() *Config {
	return &Config{
		Port:       "8080",
		JWTSecret:  "a-very-long-production-secret-0123456789",
		DBPassword: "s3cure-db-pass",
		DBSSLMode:  "require",
		Env:        "production",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "Valid production config",
			mutate: func(c *Config) {},
		},
		{
			name:    "Missing port",
			mutate:  func(c *Config) { c.Port = "" },
			wantErr: "PORT is required",
		},
		{
			name:    "Missing JWT secret",
			mutate:  func(c *Config) { c.JWTSecret = "" },
			wantErr: "JWT_SECRET is required",
		},
		{
			name: "Default JWT secret in production",
			mutate: func(c *Config) {
				c.JWTSecret = "your-secret-key-change-in-production"
			},
			wantErr: "JWT_SECRET must be changed from the default value in production",
		},
		{
			name:    "Short JWT secret in production",
			mutate:  func(c *Config) { c.JWTSecret = "short" },
			wantErr: "JWT_SECRET must be at least 32 characters in production",
		},
		{
			name:    "Weak DB password in production",
			mutate:  func(c *Config) { c.DBPassword = "password" },
			wantErr: "a strong DB_PASSWORD is required in production",
		},
		{
			name: "Short secret tolerated outside production",
			mutate: func(c *Config) {
				c.Env = "development"
				c.JWTSecret = "short"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validProductionConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "pustaka", cfg.DBName)
	assert.Equal(t, "localhost:6379", cfg.RedisURL)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.TracingEnabled)
	assert.Equal(t, 1.0, cfg.TracingRatio)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_SECRET", "env-provided-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "env-provided-secret", cfg.JWTSecret)
}

package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProductionConfig() *Config {
	return &Config{
		Env:        "production",
		DBDriver:   "postgres",
		DBSSLMode:  "require",
		JWTSecret:  "secure-secret-at-least-32-chars-long",
		DBPassword: "secure-password",
		Port:       "8080",
		RedisURL:   "redis://localhost:6379",
	}
}

func TestConfig_ValidateSSLMode(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		sslMode     string
		expectError bool
	}{
		{"Production with empty SSL mode", "production", "", true},
		{"Production with disable SSL mode", "production", "disable", true},
		{"Production with require SSL mode", "production", "require", false},
		{"Prod with verify-full SSL mode", "prod", "verify-full", false},
		{"Development with disable SSL mode", "development", "disable", false},
		{"Test with empty SSL mode", "test", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validProductionConfig()
			c.Env = tt.env
			c.DBSSLMode = tt.sslMode

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateProductionSecrets(t *testing.T) {
	t.Run("default secret rejected", func(t *testing.T) {
		c := validProductionConfig()
		c.JWTSecret = defaultJWTSecret
		assert.Error(t, c.Validate())
	})

	t.Run("short secret rejected", func(t *testing.T) {
		c := validProductionConfig()
		c.JWTSecret = "short"
		assert.Error(t, c.Validate())
	})

	t.Run("sqlite rejected", func(t *testing.T) {
		c := validProductionConfig()
		c.DBDriver = "sqlite"
		assert.Error(t, c.Validate())
	})

	t.Run("unknown driver rejected everywhere", func(t *testing.T) {
		c := &Config{Port: "1", JWTSecret: "x", DBDriver: "mysql"}
		assert.Error(t, c.Validate())
	})
}

func TestConfig_TimeoutsFallBackToDefaults(t *testing.T) {
	c := &Config{}
	assert.Equal(t, 5*time.Second, c.StoreTimeout())
	assert.Equal(t, 3*time.Second, c.HookTimeout())
	assert.Equal(t, time.Minute, c.LeaderboardCacheTTL())

	c = &Config{StoreTimeoutMS: 250, HookTimeoutMS: 100, LeaderboardCacheTTLSeconds: 5}
	assert.Equal(t, 250*time.Millisecond, c.StoreTimeout())
	assert.Equal(t, 100*time.Millisecond, c.HookTimeout())
	assert.Equal(t, 5*time.Second, c.LeaderboardCacheTTL())
}

func TestLoadConfig_EnvironmentOverridesAndNormalization(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_SSLMODE", "  DISABLE  ")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("STORE_TIMEOUT_MS", "1500")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "disable", c.DBSSLMode)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, 1500*time.Millisecond, c.StoreTimeout())
	assert.Equal(t, "face2geek-auth", c.JWTIssuer)
}

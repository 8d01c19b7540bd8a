package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, 24, cfg.SessionTTLHours)
	assert.NotEmpty(t, cfg.UploadDir)
	assert.NotEmpty(t, cfg.ViewsDir)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("PORT", "8080")
	t.Setenv("SESSION_TTL_HOURS", "2")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2, cfg.SessionTTLHours)
}

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Port:            "3000",
			SessionSecret:   "dev-session-secret-change-in-production",
			SessionTTLHours: 24,
			UploadDir:       "./public/image",
			Env:             "development",
		}
	}

	t.Run("development allows default secret", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("production rejects default secret", func(t *testing.T) {
		cfg := base()
		cfg.Env = "production"
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects non-positive ttl", func(t *testing.T) {
		cfg := base()
		cfg.SessionTTLHours = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects missing upload dir", func(t *testing.T) {
		cfg := base()
		cfg.UploadDir = ""
		assert.Error(t, cfg.Validate())
	})
}

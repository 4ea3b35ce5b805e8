package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"ADDR", "DB_DRIVER", "DATABASE_URL", "BADGER_PATH", "SECRET_KEY", "SECURE_COOKIES", "STATIC_DIR"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":5003", cfg.Addr)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "posts.db", cfg.DatabaseURL)
	assert.Equal(t, "data/badger", cfg.BadgerPath)
	assert.Equal(t, "static", cfg.StaticDir)
	assert.Empty(t, cfg.SecretKey)
	assert.False(t, cfg.SecureCookies)
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADDR", ":9000")
	t.Setenv("DB_DRIVER", "badger")
	t.Setenv("BADGER_PATH", "/tmp/blog")
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("SECURE_COOKIES", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, DriverBadger, cfg.DBDriver)
	assert.Equal(t, "/tmp/blog", cfg.BadgerPath)
	assert.Equal(t, "s3cret", cfg.SecretKey)
	assert.True(t, cfg.SecureCookies)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DB_DRIVER", "mongo")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "unknown DB_DRIVER")
	})

	t.Run("bad secure cookies flag", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SECURE_COOKIES", "maybe")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "SECURE_COOKIES")
	})
}

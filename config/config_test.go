package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_CONNECTION_STRING", "")
	t.Setenv("PORT", "")
	t.Setenv("ACCESS_TOKEN_TTL", "")
	t.Setenv("DEFAULT_MONTHLY_RENT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "residency.db", cfg.DBConnectionString)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, "1000", cfg.DefaultMonthlyRent.String())
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_CONNECTION_STRING", "")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("ACCESS_TOKEN_TTL", "soon")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("ACCESS_TOKEN_TTL", "1h")
	t.Setenv("DEFAULT_MONTHLY_RENT", "lots")
	_, err = Load()
	assert.Error(t, err)
}

func TestRequireSecrets(t *testing.T) {
	cfg := Config{AccessTokenSecret: "a"}
	assert.Error(t, cfg.RequireSecrets())
	cfg.RefreshTokenSecret = "b"
	assert.NoError(t, cfg.RequireSecrets())
}

func TestLoadRejectsNonPositiveTokenTTL(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DEFAULT_MONTHLY_RENT", "")

	for _, ttl := range []string{"0s", "-1h"} {
		t.Setenv("ACCESS_TOKEN_TTL", ttl)
		_, err := Load()
		assert.Error(t, err, ttl)
	}

	t.Setenv("ACCESS_TOKEN_TTL", "30m")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	t.Run("Should accept day suffix", func(t *testing.T) {
		d, err := ParseDuration("30d")
		require.NoError(t, err)
		assert.Equal(t, 30*24*time.Hour, d)
	})

	t.Run("Should accept Go durations", func(t *testing.T) {
		d, err := ParseDuration("90m")
		require.NoError(t, err)
		assert.Equal(t, 90*time.Minute, d)
	})

	t.Run("Should reject garbage", func(t *testing.T) {
		_, err := ParseDuration("xd")
		assert.Error(t, err)
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("Should fail without JWT_SECRET", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("Should read overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("JWT_EXPIRE", "2h")
		t.Setenv("JWT_COOKIE_EXPIRE", "7")
		t.Setenv("APP_ENV", "production")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 2*time.Hour, cfg.JWTExpire)
		assert.Equal(t, 7, cfg.JWTCookieExpire)
		assert.True(t, cfg.IsProduction())
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
		assert.Equal(t, 10*time.Minute, cfg.ResetTokenExpire)
	})
}

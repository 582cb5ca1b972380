package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, "bcsi_session", cfg.Session.CookieName)
	assert.Equal(t, 5, cfg.Login.MaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Login.LockoutWindow)
	assert.False(t, cfg.Redis.Enabled)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
	assert.Equal(t, AuditConfig{Workers: 2, BufferSize: 256, MaxRetries: 3}, cfg.Audit)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "https://bcsi.edu.ph, https://admin.bcsi.edu.ph ,")
	t.Setenv("JWT_EXPIRATION", "not-a-duration")
	t.Setenv("ENABLE_REDIS", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"https://bcsi.edu.ph", "https://admin.bcsi.edu.ph"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 12*time.Hour, cfg.JWT.Expiration)
	assert.True(t, cfg.Redis.Enabled)
}

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("SHEET_ID", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("CACHE_TRENDS_TTL", "")
	t.Setenv("CACHE_KEYS_TTL", "")
	t.Setenv("NATS_URL", "")
	t.Setenv("DB_ENABLED", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Minute, cfg.Cache.TrendsTTL)
	assert.Equal(t, 10*time.Minute, cfg.Cache.KeysTTL)
	assert.Equal(t, "ApiKeys", cfg.Sheets.KeysTab)
	assert.Empty(t, cfg.NATS.URL)
	assert.False(t, cfg.Database.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CACHE_TRENDS_TTL", "1m")
	t.Setenv("SERVER_CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("DB_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, time.Minute, cfg.Cache.TrendsTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CorsOrigins)
	assert.True(t, cfg.Database.Enabled)
}

func TestLoadWithoutSheetInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SHEET_ID", "")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Sheets.SheetID)
}

func TestLoadEnvFile(t *testing.T) {
	assert.NoError(t, LoadEnvFile(""))
	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env.local")
	require.NoError(t, os.WriteFile(path, []byte("TRENDPULSE_TEST_VALUE=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("TRENDPULSE_TEST_VALUE") })

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("TRENDPULSE_TEST_VALUE"))
}

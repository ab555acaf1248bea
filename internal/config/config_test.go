package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CONFIG_FILE", "PORT", "APP_VERSION", "ENVIRONMENT", "APP_ENV",
		"NODE_ENV", "APP_NAME", "METRICS_ENABLED", "READ_HEADER_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	before := time.Now()
	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "v1.0.0", cfg.Version)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "sample-app", cfg.AppName)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "0.0.0.0:3000", cfg.ListenAddr())
	assert.False(t, cfg.StartTime.Before(before))
}

func TestLoadFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("APP_VERSION", "v2.3.4")
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("READ_HEADER_TIMEOUT", "750ms")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "v2.3.4", cfg.Version)
	assert.Equal(t, "staging", cfg.Environment)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, 750*time.Millisecond, cfg.ReadHeaderTimeout)
}

func TestAppEnvWinsOverNodeEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("NODE_ENV", "production")
	t.Setenv("APP_ENV", "development")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.False(t, cfg.IsProduction())
}

func TestMalformedNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-port")
	t.Setenv("READ_HEADER_TIMEOUT", "soon")
	t.Setenv("METRICS_ENABLED", "maybe")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.ReadHeaderTimeout)
	assert.True(t, cfg.MetricsEnabled)
}

func TestPortOutOfRange(t *testing.T) {
	for _, port := range []string{"70000", "0", "-1"} {
		t.Run(port, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("PORT", port)

			_, err := LoadFromEnv()
			require.Error(t, err)
		})
	}
}

func TestConfigFileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "app.yaml")
	body := "port: 9000\nversion: v9.9.9\nenvironment: qa\nmode: production\nread_header_timeout: 5s\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("ENVIRONMENT", "prod-eu")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "v9.9.9", cfg.Version)
	assert.Equal(t, "prod-eu", cfg.Environment)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 5*time.Second, cfg.ReadHeaderTimeout)
	assert.Equal(t, "sample-app", cfg.AppName)
}

func TestConfigFileMissing(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := LoadFromEnv()
	require.Error(t, err)
}

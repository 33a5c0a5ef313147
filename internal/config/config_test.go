package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv(envBackendURL, "")
	t.Setenv(envAdminAPIKey, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "http://localhost:8082", cfg.BackendURL)
}

func TestLoadParsesYAML(t *testing.T) {
	t.Setenv(envBackendURL, "")
	t.Setenv(envAdminAPIKey, "")

	path := writeConfig(t, `
backend_url: https://backend.example.com/
listen_addr: ":9000"
request_timeout_seconds: 3
admin_api_key: secret
allowed_origins: ["https://ops.example.com"]
logging:
  level: debug
widget:
  poll_interval_seconds: 30
admin:
  domains: [" Home ", "WORK"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://backend.example.com", cfg.BackendURL)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, 3, cfg.RequestTimeoutSeconds)
	assert.Equal(t, 10, cfg.StreamIntervalSeconds)
	assert.Equal(t, "secret", cfg.AdminAPIKey)
	assert.Equal(t, []string{"https://ops.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 30, cfg.Widget.PollIntervalSeconds)
	assert.Equal(t, DefaultConsoleURL, cfg.Widget.ConsoleURL)
	assert.Equal(t, []string{"home", "work"}, cfg.Admin.Domains)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv(envBackendURL, "http://10.0.0.5:8082")
	t.Setenv(envAdminAPIKey, "from-env")

	cfg, err := Load(writeConfig(t, "backend_url: http://ignored:1\n"))
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:8082", cfg.BackendURL)
	assert.Equal(t, "from-env", cfg.AdminAPIKey)
	assert.Equal(t, "from-env", cfg.Admin.APIKey)
}

func TestLoadRejectsInvalidBackendURL(t *testing.T) {
	t.Setenv(envBackendURL, "")
	t.Setenv(envAdminAPIKey, "")

	for _, raw := range []string{"ftp://backend", "localhost:8082", "http://"} {
		_, err := Load(writeConfig(t, "backend_url: "+raw+"\n"))
		assert.Error(t, err, raw)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "backend_url: [unterminated\n"))
	assert.ErrorContains(t, err, "parse config")
}

//go:build integration

package integration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotewall/quotewall/internal/platform/config"
)

// writeConfigs lays out a configs/ directory and chdirs into its parent,
// matching how the service resolves config paths at startup.
func writeConfigs(t *testing.T, files map[string]string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "configs"), 0o750))

	for name, content := range files {
		path := filepath.Join(dir, "configs", name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	t.Chdir(dir)
}

// TestConfig_DefaultsOnly verifies a usable config materializes with no
// files present at all.
func TestConfig_DefaultsOnly(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "quotewall", cfg.App.Name)
	assert.Equal(t, config.DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, config.DefaultRateLimitRequests, cfg.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
}

// TestConfig_BaseFileOverridesDefaults verifies configs/base.yaml wins
// over built-in defaults.
func TestConfig_BaseFileOverridesDefaults(t *testing.T) {
	writeConfigs(t, map[string]string{
		"base.yaml": `
server:
  port: 9090
ratelimit:
  requests: 25
  window: 30s
`,
	})

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 25, cfg.RateLimit.Requests)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
}

// TestConfig_ProfileOverridesBase verifies the profile file wins over base.
func TestConfig_ProfileOverridesBase(t *testing.T) {
	writeConfigs(t, map[string]string{
		"base.yaml": `
log:
  level: info
database:
  driver: sqlite
  dsn: ./data/base.db
`,
		"prod.yaml": `
log:
  level: warn
database:
  driver: postgres
  dsn: host=db user=quotewall dbname=quotewall
`,
	})

	cfg, err := config.Load("prod")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Contains(t, cfg.Database.DSN, "dbname=quotewall")
}

// TestConfig_EnvOverridesEverything verifies APP_ environment variables
// win over every file layer.
func TestConfig_EnvOverridesEverything(t *testing.T) {
	writeConfigs(t, map[string]string{
		"base.yaml": `
server:
  port: 9090
auth:
  mode: jwt
  secret: file-secret
`,
	})

	t.Setenv("APP_SERVER_PORT", "7070")
	t.Setenv("APP_AUTH_SECRET", "env-secret")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.Auth.Secret)
}

// TestConfig_LoadedConfigValidates verifies a fully layered config passes
// the same validation the service runs at startup.
func TestConfig_LoadedConfigValidates(t *testing.T) {
	writeConfigs(t, map[string]string{
		"base.yaml": `
auth:
  mode: jwt
  secret: integration-secret
`,
	})

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
}

// TestConfig_RemoteModeRequiresBaseURL verifies mode-dependent validation
// on the loaded config.
func TestConfig_RemoteModeRequiresBaseURL(t *testing.T) {
	writeConfigs(t, map[string]string{
		"base.yaml": `
auth:
  mode: remote
`,
	})

	cfg, err := config.Load("")
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.base_url")
}

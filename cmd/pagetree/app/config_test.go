package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/pagetree/pkg/constants"
	"github.com/agentstation/pagetree/pkg/errors"
)

// isolate points HOME and the working directory at empty temp dirs so no
// real config or .env file leaks into the test.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Setenv("PWD", dir)
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	isolate(t)

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultStorePath, config.Store)
	assert.Equal(t, constants.CatalogKey, config.StoreKey)
	assert.Equal(t, constants.DiscoveryTimeout, config.DiscoveryTimeout)
	assert.Equal(t, constants.DefaultListenAddr, config.Listen)
	assert.Equal(t, "auto", config.LogFormat)
	assert.Equal(t, "stderr", config.LogOutput)
	assert.Empty(t, config.ConfigFile)
}

func TestLoadConfigEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("PAGETREE_STORE", "redis://localhost:6379/0")
	t.Setenv("PAGETREE_SLOT_FALLBACK", "true")
	t.Setenv("PAGETREE_AUTO_SYNC_INTERVAL", "15m")
	t.Setenv("PAGETREE_LOG_LEVEL", "debug")
	t.Setenv("PAGETREE_API_KEY", "s3cret")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "redis://localhost:6379/0", config.Store)
	assert.True(t, config.SlotFallback)
	assert.Equal(t, 15*time.Minute, config.AutoSyncInterval)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, "s3cret", config.APIKey)
}

func TestLoadConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "pagetree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store: sqlite://catalog.db
layout: layout.json
regions:
  content: Main column
cors_origins:
  - https://example.com
allow_empty_discovery: true
`), 0o600))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, path, config.ConfigFile)
	assert.Equal(t, "sqlite://catalog.db", config.Store)
	assert.Equal(t, "layout.json", config.Layout)
	assert.Equal(t, map[string]string{"content": "Main column"}, config.Regions)
	assert.Equal(t, []string{"https://example.com"}, config.CORSOrigins)
	assert.True(t, config.AllowEmptyDiscovery)
}

func TestLoadConfigEnvBeatsFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "pagetree.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: 0.0.0.0:9000\n"), 0o600))
	t.Setenv("PAGETREE_LISTEN", "127.0.0.1:9100")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9100", config.Listen)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PAGETREE_REGISTRY=from-dotenv.json\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("PAGETREE_REGISTRY") })

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.json", config.Registry)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := isolate(t)

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	var configErr *errors.ConfigError
	assert.ErrorAs(t, err, &configErr)

	t.Setenv("PAGETREE_DISCOVERY_TIMEOUT", "-1s")
	_, err = LoadConfig("")
	assert.True(t, errors.IsValidationError(err))
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{Format: "table", LogLevel: "info"}

	config.UpdateFromFlags(true, false, true, "", "")
	assert.True(t, config.Verbose)
	assert.True(t, config.NoColor)
	assert.Equal(t, "table", config.Format)
	assert.Equal(t, "info", config.LogLevel)

	config.UpdateFromFlags(false, false, false, "yaml", "trace")
	assert.True(t, config.Verbose)
	assert.Equal(t, "yaml", config.Format)
	assert.Equal(t, "trace", config.LogLevel)
}

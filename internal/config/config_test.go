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
	for _, key := range []string{
		"ECHONEST_API_KEY",
		"ECHONEST_BASE_URL",
		"ECHONEST_GENRE",
		"ECHONEST_OUTPUT_FORMAT",
		"ECHONEST_HISTORY_ENABLED",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := load(dir)
	require.NoError(t, err)

	assert.Equal(t, "table", cfg.OutputFormat)
	assert.Equal(t, 32, cfg.OutputWidth)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.Genre)
	assert.Empty(t, cfg.EchoNest.APIKey)
	assert.Empty(t, cfg.EchoNest.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.EchoNest.Timeout)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, filepath.Join(dir, "history.db"), cfg.History.Path)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	content := `
output_format: json
output_width: 48
genre: jazz
api_key: file-key
timeout: 3
history:
  enabled: false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))

	cfg, err := load(dir)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 48, cfg.OutputWidth)
	assert.Equal(t, "jazz", cfg.Genre)
	assert.Equal(t, "file-key", cfg.EchoNest.APIKey)
	assert.Equal(t, 3*time.Second, cfg.EchoNest.Timeout)
	assert.False(t, cfg.History.Enabled)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api_key: file-key\n"), 0644))
	t.Setenv("ECHONEST_API_KEY", "env-key")
	t.Setenv("ECHONEST_HISTORY_ENABLED", "false")

	cfg, err := load(dir)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.EchoNest.APIKey)
	assert.False(t, cfg.History.Enabled)
}

func TestLoad_InvalidFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api_key: [unterminated\n"), 0644))

	_, err := load(dir)
	assert.Error(t, err)
}

func TestSave(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := load(dir)
	require.NoError(t, err)

	cfg.EchoNest.APIKey = "saved-key"
	cfg.Genre = "rock"
	require.NoError(t, cfg.saveTo(dir))
	assert.FileExists(t, filepath.Join(dir, "config.yaml"))

	reloaded, err := load(dir)
	require.NoError(t, err)
	assert.Equal(t, "saved-key", reloaded.EchoNest.APIKey)
	assert.Equal(t, "rock", reloaded.Genre)
	assert.Equal(t, cfg.EchoNest.Timeout, reloaded.EchoNest.Timeout)
}

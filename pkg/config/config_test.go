package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	// Run from a directory with no config.yaml so defaults apply.
	t.Chdir(t.TempDir())

	cfg, err := Load("test")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.BindAddr)
	assert.Equal(t, "8084", cfg.Port)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "./data", cfg.Storage.DataDir)
	assert.False(t, cfg.Remote.Enabled)
	assert.Equal(t, "test", cfg.Version)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9999")
	t.Setenv("DATA_DIR", "/tmp/sitedesk-test")

	cfg, err := Load("test")
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "/tmp/sitedesk-test", cfg.Storage.DataDir)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("port: \"7070\"\nstorage:\n  data_dir: ./users\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))
	t.Chdir(dir)

	cfg, err := Load("test")
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "./users", cfg.Storage.DataDir)
}

func TestLoad_RemoteModeRequiresBaseURL(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("REMOTE_ENABLED", "true")

	_, err := Load("test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remote base_url")
}

func TestEnsureDataDir_CreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{Storage: StorageConfig{DataDir: filepath.Join(dir, "nested", "data")}}

	abs, err := cfg.EnsureDataDir()
	require.NoError(t, err)

	info, err := os.Stat(abs)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

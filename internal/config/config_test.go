package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "beats.db", cfg.DB.Path)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("server:\n  port: 9000\ndb:\n  path: /tmp/test.db\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	t.Setenv("BEATS_DB_PATH", "/tmp/override.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 9000, cfg.Server.Port)
	require.Equal(t, "/tmp/override.db", cfg.DB.Path)
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("BEATS_SERVER_PORT", "not-a-port")
	_, err := Load("")
	require.Error(t, err)
}

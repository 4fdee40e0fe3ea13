package ratbagconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-ratbag/ratbag/ratbagconfig"
)

func TestDefaultDataDirsHonorsEnv(t *testing.T) {
	t.Setenv(ratbagconfig.DataDirEnvVar, "/opt/a:/opt/b")
	cfg := ratbagconfig.Default()
	assert.Equal(t, []string{"/opt/a", "/opt/b"}, cfg.DataDirs)
}

func TestDefaultDataDirsFallback(t *testing.T) {
	t.Setenv(ratbagconfig.DataDirEnvVar, "")
	cfg := ratbagconfig.Default()
	assert.NotEmpty(t, cfg.DataDirs)
}

func TestLoadYAMLOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ratbag.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\n"), 0o644))

	cfg, err := ratbagconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 10, cfg.Holtek8WriteReadyRetries)
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ratbag.toml")
	require.NoError(t, os.WriteFile(path, []byte("log_level = \"error\"\n"), 0o644))

	cfg, err := ratbagconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ratbag.ini")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	_, err := ratbagconfig.Load(path)
	assert.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ".flowdroid.txt", cfg.Output.Suffix)
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.Debounce())
	assert.False(t, cfg.Logging.Verbose)
	assert.Empty(t, cfg.Logging.File)
}

func TestLoadExplicitPath(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
output:
  suffix: .sources-sinks.txt
logging:
  verbose: true
  file: convert.log
watch:
  debounce_ms: 50
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ".sources-sinks.txt", cfg.Output.Suffix)
	assert.True(t, cfg.Logging.Verbose)
	assert.Equal(t, "convert.log", cfg.Logging.File)
	assert.Equal(t, 50*time.Millisecond, cfg.Watch.Debounce())
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "logging:\n  verbose: true\nwatch:\n  debounce_ms: -3\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Logging.Verbose)
	assert.Equal(t, ".flowdroid.txt", cfg.Output.Suffix)
	assert.Equal(t, 500, cfg.Watch.DebounceMs)
}

func TestLoadFromWorkingDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "output:\n  suffix: .fd.txt\n")
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ".fd.txt", cfg.Output.Suffix)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)

	path := writeConfig(t, t.TempDir(), "output: [unclosed")
	_, err = Load(path)
	assert.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "appaudit-config-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, DefaultConfigPath)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(os.TempDir(), "does-not-exist", DefaultConfigPath))
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.MaxIterations)
	assert.Equal(t, ".", cfg.ReportDir)
	assert.Contains(t, cfg.ExcludeDirs, "node_modules")
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
max_iterations: 2
report_dir: reports
required_deps:
  - typescript
  - wouter
forbidden_colors:
  - "#ff"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.MaxIterations)
	assert.Equal(t, "reports", cfg.ReportDir)
	assert.Equal(t, []string{"typescript", "wouter"}, cfg.RequiredDeps)
	assert.Equal(t, []string{"#ff"}, cfg.ForbiddenColors)

	// Untouched fields keep their defaults.
	assert.Equal(t, ".appaudit/history.db", cfg.HistoryPath)
}

func TestLoad_InvalidYAMLIsAnError(t *testing.T) {
	path := writeConfig(t, "max_iterations: [broken")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_RejectsBadValues(t *testing.T) {
	path := writeConfig(t, "max_iterations: 0")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_iterations")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	cfg.ReportDir = ""
	assert.Error(t, cfg.Validate())
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "db-path: /tmp/ballast.db\nworkload:\n  underutilized-pct: 60\nmax-suggestions: 8\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg := Load(path)

	assert.Equal(t, "/tmp/ballast.db", cfg.DBPath)
	assert.Equal(t, 60.0, cfg.Workload.UnderutilizedPct)
	assert.Equal(t, 5.0, cfg.Workload.NoiseFloorPoints)
	assert.Equal(t, 8, cfg.MaxSuggestions)
}

func TestLoad_MalformedFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n  - not yaml {"), 0o644))

	cfg := Load(path)

	assert.Equal(t, Default(), cfg)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db-path: /from/file.db\n"), 0o644))
	t.Setenv("BALLAST_DB", "/from/env.db")
	t.Setenv("BALLAST_MAX_SUGGESTIONS", "3")

	cfg := Load(path)

	assert.Equal(t, "/from/env.db", cfg.DBPath)
	assert.Equal(t, 3, cfg.MaxSuggestions)
}

func TestDefaultPath_EnvOverride(t *testing.T) {
	t.Setenv("BALLAST_CONFIG", "/etc/ballast.yaml")

	assert.Equal(t, "/etc/ballast.yaml", DefaultPath())
}

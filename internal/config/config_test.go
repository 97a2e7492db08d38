package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folidity-lang/folidity/internal/config"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadAppliesOverridesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, config.FileName), []byte(`
solver_timeout_ms: 5000
build_dir: out
warnings: [unused]
`), 0o644)
	require.NoError(t, err)

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.SolverTimeoutMS)
	assert.Equal(t, "out", cfg.BuildDir)
	assert.Equal(t, []string{"unused"}, cfg.Warnings)
}

func TestLoadPartialFileFallsBackToDefaultPerField(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, config.FileName), []byte(`build_dir: out`), 0o644)
	require.NoError(t, err)

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSolverTimeoutMS, cfg.SolverTimeoutMS)
	assert.Equal(t, "out", cfg.BuildDir)
}

func TestWriteThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	want := config.Config{SolverTimeoutMS: 2000, BuildDir: "dist", Warnings: []string{"shadow"}}
	require.NoError(t, config.Write(dir, want))

	got, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

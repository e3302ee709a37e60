package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meshnodal/pkg/analysis"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meshnodal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "solver:\n  backend: sparse\nmesh: true\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sparse", cfg.Solver.Backend)
	assert.True(t, cfg.Mesh)
	assert.Equal(t, analysis.BackendSparse, cfg.Backend())
}

func TestLoad_InvalidBackend(t *testing.T) {
	path := writeConfig(t, "solver:\n  backend: quantum\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "dense", cfg.Solver.Backend)
	assert.False(t, cfg.Mesh)
	assert.Equal(t, analysis.BackendDense, cfg.Backend())
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultRebuildThresholds(t *testing.T) {
	d := DefaultRebuildThresholds()
	require.Equal(t, 0.3, d.HoleRatio)
	require.Equal(t, 0.2, d.ZombieRatio)
	require.NoError(t, d.Validate())
}

func TestWithHoleRatioDoesNotMutateReceiver(t *testing.T) {
	d := DefaultRebuildThresholds()
	c := d.WithHoleRatio(0.5)
	require.Equal(t, 0.3, d.HoleRatio)
	require.Equal(t, 0.5, c.HoleRatio)
}

func TestValidate_RejectsOutOfRange(t *testing.T) {
	require.Error(t, DefaultRebuildThresholds().WithHoleRatio(0).Validate())
	require.Error(t, DefaultRebuildThresholds().WithHoleRatio(1.5).Validate())
	require.Error(t, DefaultRebuildThresholds().WithZombieRatio(-0.1).Validate())
}

func TestLoadRebuildThresholds_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "thresholds.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hole_ratio: 0.45\n"), 0o644))

	got, err := LoadRebuildThresholds(path)
	require.NoError(t, err)
	require.Equal(t, 0.45, got.HoleRatio)
	require.Equal(t, 0.2, got.ZombieRatio)
}

func TestLoadRebuildThresholds_MissingFile(t *testing.T) {
	_, err := LoadRebuildThresholds(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadRebuildThresholds_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hole_ratio: [not a number]\n"), 0o644))

	_, err := LoadRebuildThresholds(path)
	require.Error(t, err)
}

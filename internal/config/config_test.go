package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakhaven/emberquest/internal/config"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	data := []byte("combat:\n  flee_chance: 1.0\nprogression:\n  class_threshold_level: 5\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.0, cfg.Combat.FleeChance)
	assert.Equal(t, 5, cfg.Progression.ClassThresholdLevel)
	// Untouched values keep their defaults.
	assert.Equal(t, 2.0, cfg.Combat.CritMultiplier)
	assert.Equal(t, 100, cfg.Progression.XPBase)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	require.NoError(t, os.WriteFile(path, []byte("combat:\n  flee_chance: 1.5\n"), 0o600))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestValidateDefaults(t *testing.T) {
	assert.NoError(t, config.Default().Validate())
}

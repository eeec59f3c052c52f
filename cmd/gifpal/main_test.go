package main

import (
	"os"
	"path/filepath"
	"testing"

	"gifpal/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadConfigFrom(t *testing.T, path string) (*config.Config, string) {
	t.Helper()
	prev := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = prev })

	cfg, gotPath, err := loadConfig()
	require.NoError(t, err)
	return cfg, gotPath
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, gotPath := loadConfigFrom(t, path)
	assert.Equal(t, path, gotPath)
	assert.Equal(t, config.New().DisplayInterval, cfg.DisplayInterval)
}

func TestLoadConfigCorruptFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"display_interval": }`), 0644))

	cfg, gotPath := loadConfigFrom(t, path)
	assert.Equal(t, path, gotPath)
	assert.Equal(t, config.New().DisplayInterval, cfg.DisplayInterval)
}

func TestLoadConfigInvalidValuesFallBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"display_interval": -5}`), 0644))

	cfg, _ := loadConfigFrom(t, path)
	assert.Equal(t, config.New().DisplayInterval, cfg.DisplayInterval)
}

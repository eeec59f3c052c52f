package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gifpal/internal/config"
)

func TestParseConfigDataJSON(t *testing.T) {
	data := []byte(`{"display_interval": 600, "position": "top-right"}`)

	cfg, err := parseConfigData(data, "settings.json")
	require.NoError(t, err)

	assert.Equal(t, 600, cfg.DisplayInterval)
	assert.Equal(t, "top-right", cfg.Position)
	// Unspecified fields keep their defaults.
	assert.Equal(t, config.New().GifSize, cfg.GifSize)
}

func TestParseConfigDataYAML(t *testing.T) {
	data := []byte("displayinterval: 900\nopacity: 0.5\n")

	cfg, err := parseConfigData(data, "settings.yaml")
	require.NoError(t, err)

	assert.Equal(t, 900, cfg.DisplayInterval)
	assert.Equal(t, 0.5, cfg.Opacity)
}

func TestParseConfigDataRejectsInvalid(t *testing.T) {
	_, err := parseConfigData([]byte(`{"opacity": 7}`), "settings.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")

	_, err = parseConfigData([]byte("whatever"), "settings.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file format")
}

func TestPositionNames(t *testing.T) {
	names := positionNames()
	assert.Contains(t, names, "center")
	assert.Contains(t, names, "random")
	assert.Contains(t, names, "top-left")
}

func TestEncodeConfigRoundTrip(t *testing.T) {
	cfg := config.New()
	cfg.DisplayInterval = 1234
	cfg.Position = "bottom-left"

	for _, ext := range []string{".json", ".yaml"} {
		data, err := encodeConfig(cfg, ext)
		require.NoError(t, err)

		parsed, err := parseConfigData(data, "out"+ext)
		require.NoError(t, err)
		assert.Equal(t, cfg.DisplayInterval, parsed.DisplayInterval, ext)
		assert.Equal(t, cfg.Position, parsed.Position, ext)
	}
}

package gui

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gifpal/internal/config"

	"fyne.io/fyne/v2"
	"gopkg.in/yaml.v3"
)

// parseImportedConfig parses an imported configuration file
func parseImportedConfig(reader fyne.URIReadCloser) (*config.Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return parseConfigData(data, reader.URI().Name())
}

// parseConfigData decodes a configuration from JSON or YAML based on
// the file extension, merges it over the defaults and validates it.
func parseConfigData(data []byte, name string) (*config.Config, error) {
	format := strings.ToLower(filepath.Ext(name))
	cfg := config.New()

	switch format {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported file format: %s", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// exportConfig exports the configuration to a file
func exportConfig(cfg *config.Config, writer fyne.URIWriteCloser) error {
	data, err := encodeConfig(cfg, filepath.Ext(writer.URI().Name()))
	if err != nil {
		return err
	}
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("error writing file: %w", err)
	}
	return nil
}

// encodeConfig serializes a configuration as JSON or YAML based on
// the target file extension. JSON is the default.
func encodeConfig(cfg *config.Config, ext string) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("error encoding to YAML: %w", err)
		}
		return data, nil
	default:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("error encoding to JSON: %w", err)
		}
		return data, nil
	}
}

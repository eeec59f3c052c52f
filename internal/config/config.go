package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gifpal/pkg/types"
)

// Config is the application configuration record. It is persisted as
// JSON and mutated by the settings UI at runtime.
type Config struct {
	GifPaths            []string               `json:"gif_paths"`            // the library, in insertion order
	DisplayInterval     int                    `json:"display_interval"`     // seconds between displays
	MinDisplayTime      int                    `json:"min_display_time"`     // seconds, lower duration bound
	MaxDisplayTime      int                    `json:"max_display_time"`     // seconds, upper duration bound
	Opacity             float64                `json:"opacity"`              // 0.0 to 1.0
	Position            string                 `json:"position"`             // overlay placement, see types.Positions
	AutoStart           bool                   `json:"auto_start"`           // start the companion on launch
	GifSize             int                    `json:"gif_size"`             // target overlay dimension in pixels
	AlwaysOnTop         bool                   `json:"always_on_top"`        // keep overlays above other windows
	ClickThrough        bool                   `json:"click_through"`        // pass pointer events through overlays
	PositionPersistence bool                   `json:"position_persistence"` // remember per-GIF overlay positions
	CustomPositions     map[string]types.Point `json:"custom_positions"`     // saved positions keyed by GIF file name
	DownloadLocation    string                 `json:"download_location"`    // where web downloads land
	WatchLibraryDirs    []string               `json:"watch_library_dirs"`   // folders watched for GIF changes
	SearchProvider      string                 `json:"search_provider"`      // default search source: giphy or tenor
	LastWindowSize      [2]int                 `json:"last_window_size"`     // main window width, height
	LastWindowPosition  [2]int                 `json:"last_window_position"` // main window x, y
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		GifPaths:            []string{},
		DisplayInterval:     1800, // 30 minutes
		MinDisplayTime:      5,
		MaxDisplayTime:      10,
		Opacity:             0.9,
		Position:            string(types.PositionCenter),
		AutoStart:           false,
		GifSize:             400,
		AlwaysOnTop:         true,
		ClickThrough:        false,
		PositionPersistence: true,
		CustomPositions:     map[string]types.Point{},
		DownloadLocation:    defaultDownloadDir(),
		WatchLibraryDirs:    []string{},
		SearchProvider:      "giphy",
		LastWindowSize:      [2]int{800, 600},
		LastWindowPosition:  [2]int{100, 100},
	}
}

// DefaultPath returns the default config location
// (~/.config/gifpal/config.json).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gifpal", "config.json"), nil
}

func defaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "downloads"
	}
	return filepath.Join(home, ".config", "gifpal", "downloads")
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// Missing file returns the defaults; unknown fields in the file are
// ignored and unset fields keep their default values.
func LoadConfigFile(path string) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal over the defaults so unset fields keep them
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if cfg.CustomPositions == nil {
		cfg.CustomPositions = map[string]types.Point{}
	}
	if cfg.GifPaths == nil {
		cfg.GifPaths = []string{}
	}
	if cfg.WatchLibraryDirs == nil {
		cfg.WatchLibraryDirs = []string{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}

	if c.DisplayInterval < 1 {
		return fmt.Errorf("display interval must be >= 1 second")
	}
	if c.MinDisplayTime < 1 {
		return fmt.Errorf("min display time must be >= 1 second")
	}
	if c.MinDisplayTime > c.MaxDisplayTime {
		return fmt.Errorf("min display time (%d) must not exceed max display time (%d)",
			c.MinDisplayTime, c.MaxDisplayTime)
	}
	if c.Opacity < 0 || c.Opacity > 1 {
		return fmt.Errorf("opacity must be between 0.0 and 1.0")
	}
	if !types.Position(c.Position).Valid() {
		return fmt.Errorf("invalid position: %s", c.Position)
	}
	if c.GifSize < types.MinOverlaySize || c.GifSize > types.MaxOverlaySize {
		return fmt.Errorf("gif size must be between %d and %d pixels",
			types.MinOverlaySize, types.MaxOverlaySize)
	}
	switch c.SearchProvider {
	case "giphy", "tenor":
	default:
		return fmt.Errorf("invalid search provider: %s", c.SearchProvider)
	}
	for i, dir := range c.WatchLibraryDirs {
		if dir == "" {
			return fmt.Errorf("watch directory %d: path cannot be empty", i)
		}
	}

	return nil
}

// Interval returns the display interval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.DisplayInterval) * time.Second
}

// MinDisplay returns the lower display duration bound.
func (c *Config) MinDisplay() time.Duration {
	return time.Duration(c.MinDisplayTime) * time.Second
}

// MaxDisplay returns the upper display duration bound.
func (c *Config) MaxDisplay() time.Duration {
	return time.Duration(c.MaxDisplayTime) * time.Second
}

// LibraryDirs returns the unique directories to watch for GIF
// changes: the explicitly configured watch folders, the directories
// holding library GIFs and the download location.
func (c *Config) LibraryDirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		if dir == "" || dir == "." || seen[dir] {
			return
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	for _, dir := range c.WatchLibraryDirs {
		add(dir)
	}
	for _, p := range c.GifPaths {
		add(filepath.Dir(p))
	}
	add(c.DownloadLocation)
	return dirs
}

// OverlayOptions builds the render settings for a given GIF path from
// the current configuration. Saved custom positions win when position
// persistence is on.
func (c *Config) OverlayOptions(gifPath string) types.OverlayOptions {
	opts := types.OverlayOptions{
		Size:         c.GifSize,
		Opacity:      c.Opacity,
		Position:     types.Position(c.Position),
		AlwaysOnTop:  c.AlwaysOnTop,
		ClickThrough: c.ClickThrough,
	}
	if c.PositionPersistence {
		if p, ok := c.CustomPositions[filepath.Base(gifPath)]; ok {
			saved := p
			opts.Custom = &saved
			opts.Position = types.PositionCustom
		}
	}
	return opts
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds application configuration
type Config struct {
	Theme      string            `toml:"theme"`
	Animations AnimationSettings `toml:"animations"`
	Drag       DragSettings      `toml:"drag"`
	Scroll     ScrollSettings    `toml:"scroll"`
	Settings   map[string]string `toml:"settings"`

	// Session settings (not persisted to TOML, overrides persisted settings)
	sessionSettings map[string]string
}

// AnimationSettings controls how long list transitions run, in milliseconds.
// A zero duration makes that transition instant.
type AnimationSettings struct {
	InsertMs int `toml:"insert_ms"`
	RemoveMs int `toml:"remove_ms"`
	MoveMs   int `toml:"move_ms"`

	// AsyncThreshold is the list size above which reorder computation moves
	// off the event loop. Zero keeps everything synchronous.
	AsyncThreshold int `toml:"async_threshold"`
}

// DragSettings controls drag-to-reorder behavior.
type DragSettings struct {
	// DelayMs is the hold time before a pressed row picks up. Zero picks up
	// immediately.
	DelayMs int `toml:"delay_ms"`
	// SwapPolicy is one of "half-neighbor", "half-own", "half-average".
	SwapPolicy       string `toml:"swap_policy"`
	VibrateOnPickup  bool   `toml:"vibrate_on_pickup"`
	ExclusiveCapture bool   `toml:"exclusive_capture"`
	StaticParent     bool   `toml:"static_parent"`
}

// ScrollSettings controls edge auto-scroll during a drag.
type ScrollSettings struct {
	// EdgeZone is how many rows from the top or bottom edge auto-scroll
	// engages.
	EdgeZone int `toml:"edge_zone"`
	// MaxVelocity is rows per tick at the edge itself.
	MaxVelocity float64 `toml:"max_velocity"`
}

// Load loads the config file from the standard location
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaultConfig(), nil // Return default if can't find config path
	}

	return LoadFromFile(configPath)
}

// LoadFromFile loads config from a specific file
func LoadFromFile(filePath string) (*Config, error) {
	// If file doesn't exist, return default config
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return defaultConfig(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := defaultConfig()
	err = toml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults if not specified
	if config.Theme == "" {
		config.Theme = "tokyo-night"
	}
	if config.Drag.SwapPolicy == "" {
		config.Drag.SwapPolicy = "half-neighbor"
	}

	// Initialize persisted settings if not present
	if config.Settings == nil {
		config.Settings = make(map[string]string)
	}

	// Initialize session settings
	config.sessionSettings = make(map[string]string)

	return config, nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", "listmotion", "config.toml"), nil
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	return &Config{
		Theme: "tokyo-night",
		Animations: AnimationSettings{
			InsertMs:       150,
			RemoveMs:       150,
			MoveMs:         120,
			AsyncThreshold: 500,
		},
		Drag: DragSettings{
			DelayMs:         250,
			SwapPolicy:      "half-neighbor",
			VibrateOnPickup: true,
		},
		Scroll: ScrollSettings{
			EdgeZone:    3,
			MaxVelocity: 2,
		},
		Settings:        make(map[string]string),
		sessionSettings: make(map[string]string),
	}
}

// GetConfigDir returns the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(home, ".config", "listmotion")
	return configDir, nil
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	return os.MkdirAll(configDir, 0755)
}

// Set sets a session configuration value
func (c *Config) Set(key, value string) {
	if c.sessionSettings == nil {
		c.sessionSettings = make(map[string]string)
	}
	c.sessionSettings[key] = value
}

// Get retrieves a configuration value, checking session settings first (which override persisted settings)
// Returns empty string if not found in either source
func (c *Config) Get(key string) string {
	// Check session settings first (they override persisted settings)
	if c.sessionSettings != nil {
		if val, ok := c.sessionSettings[key]; ok {
			return val
		}
	}

	// Fall back to persisted settings
	if c.Settings != nil {
		if val, ok := c.Settings[key]; ok {
			return val
		}
	}

	return ""
}

// GetAll returns all configuration values (both persisted and session)
// Session settings override persisted settings with the same key
func (c *Config) GetAll() map[string]string {
	result := make(map[string]string)

	// First, add all persisted settings
	if c.Settings != nil {
		for k, v := range c.Settings {
			result[k] = v
		}
	}

	// Then override with session settings (they take precedence)
	if c.sessionSettings != nil {
		for k, v := range c.sessionSettings {
			result[k] = v
		}
	}

	return result
}

// Save persists the configuration to the TOML file
// Note: This only persists the Settings map, not session settings
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure the config directory exists
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Marshall the config to TOML
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

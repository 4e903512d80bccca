package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSet(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	cfg.Set("autosave", "off")
	if cfg.Get("autosave") != "off" {
		t.Errorf("Expected 'off', got '%s'", cfg.Get("autosave"))
	}
}

func TestGet(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	// Test getting a value that doesn't exist
	if cfg.Get("nonexistent") != "" {
		t.Errorf("Expected empty string for nonexistent key, got '%s'", cfg.Get("nonexistent"))
	}

	// Set and then get
	cfg.Set("test", "value")
	if cfg.Get("test") != "value" {
		t.Errorf("Expected 'value', got '%s'", cfg.Get("test"))
	}
}

func TestGetAll(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	cfg.Set("key1", "value1")
	cfg.Set("key2", "value2")

	all := cfg.GetAll()
	if len(all) != 2 {
		t.Errorf("Expected 2 settings, got %d", len(all))
	}

	if all["key1"] != "value1" {
		t.Errorf("Expected 'value1', got '%s'", all["key1"])
	}

	if all["key2"] != "value2" {
		t.Errorf("Expected 'value2', got '%s'", all["key2"])
	}
}

func TestGetAllReturnsACopy(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	cfg.Set("original", "value")

	// Modify the returned map
	all := cfg.GetAll()
	all["original"] = "modified"

	// Verify the original config was not modified
	if cfg.Get("original") != "value" {
		t.Errorf("GetAll() should return a copy, not a reference")
	}
}

func TestNilSessionSettings(t *testing.T) {
	cfg := &Config{}
	// sessionSettings is nil

	// Set should initialize it
	cfg.Set("key", "value")
	if cfg.Get("key") != "value" {
		t.Errorf("Set should initialize nil sessionSettings")
	}

	// Get should handle nil gracefully
	cfg2 := &Config{}
	if cfg2.Get("key") != "" {
		t.Errorf("Get should return empty string for nil sessionSettings")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	if cfg.Theme != "tokyo-night" {
		t.Errorf("Expected default theme 'tokyo-night', got '%s'", cfg.Theme)
	}

	if cfg.Drag.SwapPolicy != "half-neighbor" {
		t.Errorf("Expected default swap policy 'half-neighbor', got '%s'", cfg.Drag.SwapPolicy)
	}

	if cfg.Animations.InsertMs <= 0 {
		t.Errorf("Expected a positive default insert duration, got %d", cfg.Animations.InsertMs)
	}

	if cfg.sessionSettings == nil {
		t.Errorf("defaultConfig should initialize sessionSettings")
	}
}

func TestLoadFromFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "no-such.toml"))
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.Drag.DelayMs != 250 {
		t.Errorf("Expected default drag delay 250, got %d", cfg.Drag.DelayMs)
	}
}

func TestLoadFromFileParsesSections(t *testing.T) {
	content := `theme = "plain"

[animations]
insert_ms = 80
move_ms = 60

[drag]
delay_ms = 300
swap_policy = "half-average"
static_parent = true

[scroll]
edge_zone = 5
max_velocity = 3.5
`
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.Theme != "plain" {
		t.Errorf("Expected theme 'plain', got '%s'", cfg.Theme)
	}
	if cfg.Animations.InsertMs != 80 || cfg.Animations.MoveMs != 60 {
		t.Errorf("Animation durations not parsed: %+v", cfg.Animations)
	}
	if cfg.Animations.RemoveMs != 150 {
		t.Errorf("Unset remove duration should keep the default, got %d", cfg.Animations.RemoveMs)
	}
	if cfg.Drag.DelayMs != 300 || cfg.Drag.SwapPolicy != "half-average" || !cfg.Drag.StaticParent {
		t.Errorf("Drag settings not parsed: %+v", cfg.Drag)
	}
	if cfg.Scroll.EdgeZone != 5 || cfg.Scroll.MaxVelocity != 3.5 {
		t.Errorf("Scroll settings not parsed: %+v", cfg.Scroll)
	}
}

package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Bodies != 25 {
		t.Errorf("expected 25 bodies, got %d", cfg.Bodies)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.TrailWindow != 0 {
		t.Error("trails should be disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero bodies", func(c *Config) { c.Bodies = 0 }},
		{"negative radius", func(c *Config) { c.Radius = -1 }},
		{"negative speed", func(c *Config) { c.Speed = -10 }},
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative trail window", func(c *Config) { c.TrailWindow = -1 }},
		{"radius larger than arena", func(c *Config) { c.Radius = 400 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box.yaml")

	cfg := DefaultConfig()
	cfg.Bodies = 40
	cfg.TrailWindow = 1.5
	cfg.Seed = 99

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Bodies != 40 || loaded.TrailWindow != 1.5 || loaded.Seed != 99 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("trails")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Bodies != 2 {
		t.Errorf("expected 2 bodies, got %d", cfg.Bodies)
	}
	if cfg.TrailWindow != 2.0 {
		t.Errorf("expected 2.0s trail window, got %f", cfg.TrailWindow)
	}
	// Fields the preset leaves unset fall back to defaults.
	if cfg.Width != DefaultWidth {
		t.Errorf("expected default width, got %f", cfg.Width)
	}
}

func TestGetPresetNotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for i := 1; i < len(names); i++ {
		if names[i] < names[i-1] {
			t.Fatal("preset names not sorted")
		}
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

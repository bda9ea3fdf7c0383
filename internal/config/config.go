package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults mirror the reference scenario: a 900x600 box with a 40 px margin,
// 25 radius-10 bodies at 180 px/s, stepped 120 times per second.
const (
	DefaultWidth       = 900.0
	DefaultHeight      = 600.0
	DefaultMargin      = 40.0
	DefaultBodies      = 25
	DefaultRadius      = 10.0
	DefaultSpeed       = 180.0
	DefaultDt          = 1.0 / 120.0
	DefaultMaxDt       = 0.05
	DefaultDuration    = 10.0
	DefaultFPS         = 60
	DefaultTrailWindow = 2.0
)

type Config struct {
	Bodies      int     `yaml:"bodies"`
	Radius      float64 `yaml:"radius"`
	Speed       float64 `yaml:"speed"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Margin      float64 `yaml:"margin"`
	Dt          float64 `yaml:"dt"`
	MaxDt       float64 `yaml:"max_dt"`
	Duration    float64 `yaml:"duration"`
	Seed        int64   `yaml:"seed"`
	FPS         int     `yaml:"fps"`
	TrailWindow float64 `yaml:"trail_window"` // 0 disables trails
}

func DefaultConfig() *Config {
	return &Config{
		Bodies:   DefaultBodies,
		Radius:   DefaultRadius,
		Speed:    DefaultSpeed,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Margin:   DefaultMargin,
		Dt:       DefaultDt,
		MaxDt:    DefaultMaxDt,
		Duration: DefaultDuration,
		FPS:      DefaultFPS,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the simulation cannot start from.
func (c *Config) Validate() error {
	if c.Bodies <= 0 {
		return fmt.Errorf("bodies must be positive, got %d", c.Bodies)
	}
	if c.Radius <= 0 {
		return fmt.Errorf("radius must be positive, got %f", c.Radius)
	}
	if c.Speed < 0 {
		return fmt.Errorf("speed must be non-negative, got %f", c.Speed)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.TrailWindow < 0 {
		return fmt.Errorf("trail window must be non-negative, got %f", c.TrailWindow)
	}
	inner := c.Width - 2*c.Margin
	if inner <= 2*c.Radius || c.Height-2*c.Margin <= 2*c.Radius {
		return fmt.Errorf("arena %gx%g with margin %g too small for radius %g",
			c.Width, c.Height, c.Margin, c.Radius)
	}
	return nil
}

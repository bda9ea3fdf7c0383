package config

import "sort"

// Presets are named scenarios; unset fields fall back to defaults when
// applied through GetPreset.
var Presets = map[string]*Config{
	// The reference gas box.
	"gas": {
		Bodies: 25, Radius: 10, Speed: 180,
	},
	// Two bodies with fading trails, the trailed reference variant.
	"trails": {
		Bodies: 2, Radius: 10, Speed: 180, TrailWindow: 2.0, Duration: 30.0,
	},
	"dense": {
		Bodies: 60, Radius: 12, Speed: 160, Duration: 20.0,
	},
	"sparse": {
		Bodies: 8, Radius: 10, Speed: 180,
	},
	"frantic": {
		Bodies: 25, Radius: 10, Speed: 420, Duration: 20.0,
	},
}

// GetPreset returns the named preset overlaid on defaults, or nil when
// unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Bodies = p.Bodies
	cfg.Radius = p.Radius
	cfg.Speed = p.Speed
	cfg.TrailWindow = p.TrailWindow
	if p.Duration != 0 {
		cfg.Duration = p.Duration
	}
	if p.Width != 0 {
		cfg.Width = p.Width
	}
	if p.Height != 0 {
		cfg.Height = p.Height
	}
	if p.Margin != 0 {
		cfg.Margin = p.Margin
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

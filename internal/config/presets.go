package config

import (
	"fmt"
	"sort"
)

// Presets are named variations on the default scene. Each entry only has to
// override what differs from Default().
var presets = map[string]func(*Config){
	"rolling": func(c *Config) {},
	"gentle": func(c *Config) {
		c.World.Terrain.Amp1 = 0.8
		c.World.Terrain.Amp2 = 0.2
		c.World.Motor.Rate = -5.0
	},
	"alpine": func(c *Config) {
		c.World.Terrain.Amp1 = 2.8
		c.World.Terrain.Freq1 = 0.25
		c.World.Terrain.Amp2 = 1.1
		c.World.Motor.MaxTorque = 110.0
		c.World.Wheel.Friction = 1.8
	},
	"moon": func(c *Config) {
		c.World.Gravity = 1.62
		c.World.Motor.Rate = -4.0
		c.World.Motor.MaxTorque = 25.0
	},
}

func Preset(name string) (*Config, error) {
	apply, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	cfg := Default()
	apply(cfg)
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

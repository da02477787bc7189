package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultGravity      = 9.81
	DefaultFixedStep    = 1.0 / 60.0
	DefaultFPS          = 30
	DefaultMaxFrameTime = 0.25
	DefaultScale        = 6.0
	DefaultMinZoom      = 0.5
	DefaultMaxZoom      = 2.0
	DefaultDamping      = 0.12
	DefaultHorizon      = 0.4
)

var ErrUnknownPreset = errors.New("config: unknown preset")

type Config struct {
	World  WorldConfig  `yaml:"world"`
	Camera CameraConfig `yaml:"camera"`
	Loop   LoopConfig   `yaml:"loop"`
}

type WorldConfig struct {
	Gravity float64       `yaml:"gravity"`
	Terrain TerrainConfig `yaml:"terrain"`
	Chassis ChassisConfig `yaml:"chassis"`
	Wheel   WheelConfig   `yaml:"wheel"`
	Motor   MotorConfig   `yaml:"motor"`
}

type TerrainConfig struct {
	XMin     float64 `yaml:"x_min"`
	XMax     float64 `yaml:"x_max"`
	Step     float64 `yaml:"step"`
	Amp1     float64 `yaml:"amp1"`
	Freq1    float64 `yaml:"freq1"`
	Amp2     float64 `yaml:"amp2"`
	Freq2    float64 `yaml:"freq2"`
	Friction float64 `yaml:"friction"`
}

type ChassisConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Density  float64 `yaml:"density"`
	Friction float64 `yaml:"friction"`
	StartX   float64 `yaml:"start_x"`
	StartY   float64 `yaml:"start_y"`
}

type WheelConfig struct {
	Radius   float64 `yaml:"radius"`
	OffsetX  float64 `yaml:"offset_x"`
	OffsetY  float64 `yaml:"offset_y"`
	Density  float64 `yaml:"density"`
	Friction float64 `yaml:"friction"`
}

type MotorConfig struct {
	Rate      float64 `yaml:"rate"`
	MaxTorque float64 `yaml:"max_torque"`
}

type CameraConfig struct {
	Scale       float64 `yaml:"scale"`
	MinZoom     float64 `yaml:"min_zoom"`
	MaxZoom     float64 `yaml:"max_zoom"`
	InitialZoom float64 `yaml:"initial_zoom"`
	Damping     float64 `yaml:"damping"`
	LookaheadX  float64 `yaml:"lookahead_x"`
	LookaheadY  float64 `yaml:"lookahead_y"`
	Horizon     float64 `yaml:"horizon"`
}

type LoopConfig struct {
	FixedStep    float64 `yaml:"fixed_step"`
	FPS          int     `yaml:"fps"`
	MaxFrameTime float64 `yaml:"max_frame_time"`
}

func Default() *Config {
	return &Config{
		World: WorldConfig{
			Gravity: DefaultGravity,
			Terrain: TerrainConfig{
				XMin:     -20.0,
				XMax:     300.0,
				Step:     0.5,
				Amp1:     1.6,
				Freq1:    0.2,
				Amp2:     0.6,
				Freq2:    0.9,
				Friction: 0.8,
			},
			Chassis: ChassisConfig{
				Width:    2.4,
				Height:   0.8,
				Density:  1.0,
				Friction: 0.3,
				StartX:   0.0,
				StartY:   6.0,
			},
			Wheel: WheelConfig{
				Radius:   0.55,
				OffsetX:  0.9,
				OffsetY:  -0.6,
				Density:  0.8,
				Friction: 1.4,
			},
			Motor: MotorConfig{
				Rate:      -7.0,
				MaxTorque: 60.0,
			},
		},
		Camera: CameraConfig{
			Scale:       DefaultScale,
			MinZoom:     DefaultMinZoom,
			MaxZoom:     DefaultMaxZoom,
			InitialZoom: 1.0,
			Damping:     DefaultDamping,
			LookaheadX:  2.5,
			LookaheadY:  0.5,
			Horizon:     DefaultHorizon,
		},
		Loop: LoopConfig{
			FixedStep:    DefaultFixedStep,
			FPS:          DefaultFPS,
			MaxFrameTime: DefaultMaxFrameTime,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
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

func (c *Config) Validate() error {
	if c.Loop.FixedStep <= 0 {
		return fmt.Errorf("config: fixed_step must be positive, got %g", c.Loop.FixedStep)
	}
	if c.Loop.FPS <= 0 {
		return fmt.Errorf("config: fps must be positive, got %d", c.Loop.FPS)
	}
	if c.Camera.MinZoom <= 0 || c.Camera.MaxZoom < c.Camera.MinZoom {
		return fmt.Errorf("config: zoom bounds [%g, %g] invalid", c.Camera.MinZoom, c.Camera.MaxZoom)
	}
	if c.Camera.Damping < 0 || c.Camera.Damping > 1 {
		return fmt.Errorf("config: damping must be in [0, 1], got %g", c.Camera.Damping)
	}
	if c.Camera.Horizon < 0 || c.Camera.Horizon > 1 {
		return fmt.Errorf("config: horizon must be in [0, 1], got %g", c.Camera.Horizon)
	}
	if c.World.Terrain.Step <= 0 {
		return fmt.Errorf("config: terrain step must be positive, got %g", c.World.Terrain.Step)
	}
	if c.World.Terrain.XMax <= c.World.Terrain.XMin {
		return fmt.Errorf("config: terrain range [%g, %g] is empty", c.World.Terrain.XMin, c.World.Terrain.XMax)
	}
	return nil
}

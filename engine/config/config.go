// Package config loads engine settings from TOML or YAML on top of the
// embedded defaults.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/joomcode/errorx"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/spaghettifunk/gridflight/engine/core"
	"github.com/spaghettifunk/gridflight/engine/math"
	"github.com/spaghettifunk/gridflight/engine/world"
)

//go:embed defaults.toml
var defaultsTOML []byte

var (
	Errors      = errorx.NewNamespace("config")
	Invalid     = Errors.NewType("invalid")
	Unsupported = Errors.NewType("unsupported_format")
)

type Config struct {
	Window    WindowConfig    `toml:"window" yaml:"window"`
	World     WorldConfig     `toml:"world" yaml:"world"`
	Camera    CameraConfig    `toml:"camera" yaml:"camera"`
	Input     InputConfig     `toml:"input" yaml:"input"`
	Log       LogConfig       `toml:"log" yaml:"log"`
	Telemetry TelemetryConfig `toml:"telemetry" yaml:"telemetry"`
	Frame     FrameConfig     `toml:"frame" yaml:"frame"`
}

type WindowConfig struct {
	Title  string `toml:"title" yaml:"title"`
	X      uint32 `toml:"x" yaml:"x"`
	Y      uint32 `toml:"y" yaml:"y"`
	Width  uint32 `toml:"width" yaml:"width"`
	Height uint32 `toml:"height" yaml:"height"`
}

type WorldConfig struct {
	MapSize float64          `toml:"map_size" yaml:"map_size"`
	Grid    world.GridConfig `toml:"grid" yaml:"grid"`
}

type CameraConfig struct {
	Start           [3]float64 `toml:"start" yaml:"start"`
	MaxAcceleration float64    `toml:"max_acceleration" yaml:"max_acceleration"`
}

// InputConfig maps raw input to camera deltas. Divisors turn mouse pixels
// into degrees; RollStep is in degrees per frame.
type InputConfig struct {
	YawDivisor   float64 `toml:"yaw_divisor" yaml:"yaw_divisor"`
	PitchDivisor float64 `toml:"pitch_divisor" yaml:"pitch_divisor"`
	AccelStep    float64 `toml:"accel_step" yaml:"accel_step"`
	RollStep     float64 `toml:"roll_step" yaml:"roll_step"`
}

type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// TelemetryConfig enables the flight recorder when Path is set.
type TelemetryConfig struct {
	Path   string `toml:"path" yaml:"path"`
	Buffer int    `toml:"buffer" yaml:"buffer"`
}

type FrameConfig struct {
	TargetFPS float64 `toml:"target_fps" yaml:"target_fps"`
	// Zero runs until the window closes.
	MaxFrames uint64 `toml:"max_frames" yaml:"max_frames"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg := &Config{}
	if err := toml.Unmarshal(defaultsTOML, cfg); err != nil {
		panic(errorx.Decorate(err, "embedded defaults"))
	}
	return cfg
}

// Load overlays the file at path on the defaults and validates the result.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errorx.Decorate(err, "reading config file")
	}
	if err := Decode(filepath.Ext(path), data, cfg); err != nil {
		return nil, errorx.Decorate(err, "parsing config file %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode unmarshals data into cfg; only keys present in data are overwritten.
func Decode(ext string, data []byte, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	default:
		return Unsupported.New("unknown config extension %q, want .toml, .yaml or .yml", ext)
	}
}

func (c *Config) Validate() error {
	if c.Window.Width == 0 || c.Window.Height == 0 {
		return Invalid.New("window size must be > 0, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if !(c.World.MapSize > 0) || !math.IsFinite(c.World.MapSize) {
		return Invalid.New("world.map_size must be > 0, got %g", c.World.MapSize)
	}
	if err := c.World.Grid.Validate(); err != nil {
		return Invalid.Wrap(err, "world.grid")
	}
	if !math.IsFinite(c.Camera.Start[0], c.Camera.Start[1], c.Camera.Start[2]) {
		return Invalid.New("camera.start must be finite")
	}
	if !(c.Camera.MaxAcceleration > 0) || !math.IsFinite(c.Camera.MaxAcceleration) {
		return Invalid.New("camera.max_acceleration must be > 0, got %g", c.Camera.MaxAcceleration)
	}
	if !(c.Input.YawDivisor > 0) || !(c.Input.PitchDivisor > 0) {
		return Invalid.New("input divisors must be > 0, got yaw %g pitch %g", c.Input.YawDivisor, c.Input.PitchDivisor)
	}
	if !math.IsFinite(c.Input.YawDivisor, c.Input.PitchDivisor, c.Input.AccelStep, c.Input.RollStep) {
		return Invalid.New("input steps must be finite")
	}
	if _, err := c.LogLevel(); err != nil {
		return Invalid.Wrap(err, "log.level")
	}
	if c.Telemetry.Buffer < 1 {
		return Invalid.New("telemetry.buffer must be >= 1, got %d", c.Telemetry.Buffer)
	}
	if !(c.Frame.TargetFPS > 0) || !math.IsFinite(c.Frame.TargetFPS) {
		return Invalid.New("frame.target_fps must be > 0, got %g", c.Frame.TargetFPS)
	}
	return nil
}

func (c *Config) LogLevel() (core.LogLevel, error) {
	return core.ParseLogLevel(c.Log.Level)
}

func (c *Config) AspectRatio() float64 {
	return float64(c.Window.Width) / float64(c.Window.Height)
}

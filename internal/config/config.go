// Package config loads the viewer settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/standviz/pkg/orbit"
	"github.com/philipparndt/standviz/pkg/scene"
	"github.com/philipparndt/standviz/pkg/stand"
	"gopkg.in/yaml.v3"
)

// Window is the native window setup
type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Camera holds the orbit camera settings
type Camera struct {
	Yaw            float64 `yaml:"yaw"`
	Pitch          float64 `yaml:"pitch"`
	Distance       float64 `yaml:"distance"`
	DragSpeed      float64 `yaml:"drag_speed"`
	ZoomSpeed      float64 `yaml:"zoom_speed"`
	VerticalOffset float64 `yaml:"vertical_offset"`
	MinPitch       float64 `yaml:"min_pitch"`
	MaxPitch       float64 `yaml:"max_pitch"`
	MinDistance    float64 `yaml:"min_distance"`
	MaxDistance    float64 `yaml:"max_distance"`
}

// Render holds the scene environment settings
type Render struct {
	Background    string  `yaml:"background"`
	GridSize      float64 `yaml:"grid_size"`
	GridDivisions int     `yaml:"grid_divisions"`
	GridCenter    string  `yaml:"grid_center"`
	GridLines     string  `yaml:"grid_lines"`
	Ambient       float64 `yaml:"ambient"`
}

// Config is the complete viewer configuration
type Config struct {
	Window   Window       `yaml:"window"`
	Camera   Camera       `yaml:"camera"`
	Render   Render       `yaml:"render"`
	Params   stand.Params `yaml:"params"`
	LogLevel string       `yaml:"log_level"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Window: Window{Width: 1280, Height: 800, Title: "Cooling Stand"},
		Camera: Camera{
			Yaw:            orbit.DefaultYaw,
			Pitch:          orbit.DefaultPitch,
			Distance:       orbit.DefaultDistance,
			DragSpeed:      orbit.DefaultDragSpeed,
			ZoomSpeed:      orbit.DefaultZoomSpeed,
			VerticalOffset: orbit.DefaultVerticalOffset,
			MinPitch:       orbit.DefaultMinPitch,
			MaxPitch:       orbit.DefaultMaxPitch,
			MinDistance:    orbit.DefaultMinDistance,
			MaxDistance:    orbit.DefaultMaxDistance,
		},
		Render: Render{
			Background:    "#f5f5f0",
			GridSize:      400,
			GridDivisions: 20,
			GridCenter:    "#cccccc",
			GridLines:     "#eeeeee",
			Ambient:       0.5,
		},
		Params:   stand.DefaultParams(),
		LogLevel: "info",
	}
}

// Load reads a configuration file on top of the defaults.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}

	cam := c.Camera
	if cam.MinPitch >= cam.MaxPitch {
		errs = append(errs, fmt.Errorf("camera pitch range [%g, %g] is empty", cam.MinPitch, cam.MaxPitch))
	}
	if cam.MinDistance <= 0 || cam.MinDistance >= cam.MaxDistance {
		errs = append(errs, fmt.Errorf("camera distance range [%g, %g] is invalid", cam.MinDistance, cam.MaxDistance))
	}
	if cam.DragSpeed <= 0 || cam.ZoomSpeed <= 0 {
		errs = append(errs, errors.New("camera speeds must be positive"))
	}

	for name, value := range map[string]string{
		"background":  c.Render.Background,
		"grid_center": c.Render.GridCenter,
		"grid_lines":  c.Render.GridLines,
	} {
		if _, err := ParseColor(value); err != nil {
			errs = append(errs, fmt.Errorf("render.%s: %w", name, err))
		}
	}
	if c.Render.GridSize <= 0 || c.Render.GridDivisions <= 0 {
		errs = append(errs, errors.New("grid size and divisions must be positive"))
	}
	if c.Render.Ambient < 0 || c.Render.Ambient > 1 {
		errs = append(errs, fmt.Errorf("ambient %g outside [0, 1]", c.Render.Ambient))
	}

	if err := c.Params.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("params: %w", err))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Controller creates an orbit camera from the camera settings
func (c Config) Controller() *orbit.Controller {
	return orbit.NewController(c.CameraOptions()...)
}

// CameraOptions returns the camera settings as controller options
func (c Config) CameraOptions() []orbit.Option {
	cam := c.Camera
	return []orbit.Option{
		orbit.WithPose(orbit.Pose{Yaw: cam.Yaw, Pitch: cam.Pitch, Distance: cam.Distance}),
		orbit.WithLimits(orbit.Limits{
			MinPitch:    cam.MinPitch,
			MaxPitch:    cam.MaxPitch,
			MinDistance: cam.MinDistance,
			MaxDistance: cam.MaxDistance,
		}),
		orbit.WithSensitivity(cam.DragSpeed, cam.ZoomSpeed),
		orbit.WithVerticalOffset(cam.VerticalOffset),
	}
}

// Environment applies the render settings to the default environment.
// Colors are validated by Validate; unparsable values keep the defaults.
func (c Config) Environment(width, height int) scene.Environment {
	env := scene.DefaultEnvironment(width, height)
	if col, err := ParseColor(c.Render.Background); err == nil {
		env.Background = col
	}
	if col, err := ParseColor(c.Render.GridCenter); err == nil {
		env.Grid.Center = col
	}
	if col, err := ParseColor(c.Render.GridLines); err == nil {
		env.Grid.Lines = col
	}
	env.Grid.Size = c.Render.GridSize
	env.Grid.Divisions = c.Render.GridDivisions
	env.Ambient = c.Render.Ambient
	return env
}

// ParseColor parses "#rrggbb" or "#rrggbbaa"
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xFF
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// ParseLevel maps a level name to a slog level
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

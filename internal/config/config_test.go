package config

import (
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/standviz/pkg/orbit"
	"github.com/philipparndt/standviz/pkg/stand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "standviz.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, stand.DefaultParams(), cfg.Params)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
window:
  title: Bench
camera:
  distance: 700
params:
  cable_gap: 30
  show_switch: false
log_level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Bench", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width, "unset fields keep defaults")
	assert.Equal(t, 700.0, cfg.Camera.Distance)
	assert.Equal(t, 30.0, cfg.Params.CableGap)
	assert.Equal(t, 10.0, cfg.Params.LipSize)
	assert.False(t, cfg.Params.ShowSwitch)

	level, err := ParseLevel(cfg.LogLevel)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "window: [unclosed"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "params:\n  cable_gap: 500\n"))
	assert.ErrorContains(t, err, "Cable gap")
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Window.Width = 0
	cfg.Camera.MinDistance = 2000
	cfg.Render.Background = "green"
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"window size", "distance range", "render.background", "log level"} {
		assert.ErrorContains(t, err, want)
	}
}

func TestControllerUsesCameraSettings(t *testing.T) {
	cfg := Default()
	cfg.Camera.Distance = 5000
	cfg.Camera.MaxDistance = 900

	c := cfg.Controller()
	assert.Equal(t, 900.0, c.Pose().Distance, "start pose is clamped to the limits")
	assert.Equal(t, orbit.DefaultYaw, c.Pose().Yaw)
}

func TestEnvironment(t *testing.T) {
	cfg := Default()
	cfg.Render.Background = "#000000"
	cfg.Render.GridDivisions = 10

	env := cfg.Environment(640, 480)
	assert.Equal(t, 640, env.Width)
	assert.Equal(t, color.NRGBA{A: 0xFF}, env.Background)
	assert.Equal(t, 10, env.Grid.Divisions)
	assert.Equal(t, color.NRGBA{R: 0xCC, G: 0xCC, B: 0xCC, A: 0xFF}, env.Grid.Center)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#f5f5f0")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xF5, G: 0xF5, B: 0xF0, A: 0xFF}, c)

	c, err = ParseColor("  4488cc40 ")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x44, G: 0x88, B: 0xCC, A: 0x40}, c)

	for _, bad := range []string{"", "#fff", "#gggggg"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

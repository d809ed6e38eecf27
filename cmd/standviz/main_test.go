package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so runs do not leak into each other
func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.LocalNonPersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(t, sub)
	}
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	resetFlags(t, rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestPartsCommand(t *testing.T) {
	out := execute(t, "parts", "--cable-gap", "30", "--no-switch", "--log-level", "error")

	assert.Contains(t, out, "cable gap 30mm")
	assert.Contains(t, out, "Primitives: 21")
	assert.Contains(t, out, "fan hole")
	assert.NotContains(t, out, "switch outline")
}

func TestRenderCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stand.png")
	out := execute(t, "render", "--out", path, "--width", "64", "--height", "48", "--log-level", "error")
	assert.Contains(t, out, "Wrote")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
}

func TestConfigFileAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "standviz.yaml")
	require.NoError(t, os.WriteFile(path, []byte("params:\n  lip_size: 15\n"), 0o644))

	out := execute(t, "parts", "--config", path, "--wall", "500", "--log-level", "error")
	assert.Contains(t, out, "lip 15mm")
	assert.Contains(t, out, "wall 120mm", "out-of-range flags are clamped")
}

func TestFlagsDoNotCarryOver(t *testing.T) {
	execute(t, "parts", "--cable-gap", "30", "--no-switch", "--log-level", "error")

	out := execute(t, "parts", "--log-level", "error")
	assert.Contains(t, out, "cable gap 50mm")
	assert.Contains(t, out, "switch outline")
	assert.Contains(t, out, "Primitives: 22")
}

func TestVersionCommand(t *testing.T) {
	assert.Contains(t, execute(t, "version"), "standviz dev")
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/philipparndt/standviz/internal/config"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	cableGap   float64
	lipSize    float64
	wallHeight float64
	noSwitch   bool

	// cfg is loaded before any command runs
	cfg   config.Config
	level = new(slog.LevelVar)
)

var rootCmd = &cobra.Command{
	Use:   "standviz",
	Short: "Interactive 3D viewer for the parametric switch cooling stand",
	Long: `standviz builds the cooling stand for a network switch from three
parameters (cable gap, lip size, wall height) and shows it in an orbit view.
Without a subcommand it opens the native window.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runView,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML config file (reloaded on change)")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.Float64Var(&cableGap, "cable-gap", 0, "clearance between fan shelf and cradle in mm")
	flags.Float64Var(&lipSize, "lip", 0, "depth of the retaining lips in mm")
	flags.Float64Var(&wallHeight, "wall", 0, "height of the cradle walls in mm")
	flags.BoolVar(&noSwitch, "no-switch", false, "hide the switch outline")
}

// loadConfig reads the config file, applies flags and sets up logging
func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		loaded.LogLevel = logLevel
	}
	if flags.Changed("cable-gap") {
		loaded.Params.CableGap = cableGap
	}
	if flags.Changed("lip") {
		loaded.Params.LipSize = lipSize
	}
	if flags.Changed("wall") {
		loaded.Params.WallHeight = wallHeight
	}
	if noSwitch {
		loaded.Params.ShowSwitch = false
	}

	lvl, err := config.ParseLevel(loaded.LogLevel)
	if err != nil {
		return err
	}
	level.Set(lvl)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := loaded.Params.Validate(); err != nil {
		clamped := loaded.Params.Clamp()
		slog.Warn("parameter out of range, clamping", "error", err, "params", clamped.String())
		loaded.Params = clamped
	}
	cfg = loaded
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

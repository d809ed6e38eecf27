package main

import (
	"github.com/philipparndt/standviz/internal/app"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the native 3D window (default)",
	Long: `Open the raylib window with the stand, a parameter panel and the orbit
camera. Drag to rotate, scroll to zoom, Home resets the camera. When --config
is set, changes to the file are applied while the window is open.`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	return app.Run(app.Options{
		Config:     cfg,
		ConfigPath: configPath,
		Level:      level,
	})
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/philipparndt/standviz/pkg/orbit"
	"github.com/philipparndt/standviz/pkg/scene"
	"github.com/philipparndt/standviz/pkg/viewer"
	"github.com/spf13/cobra"
)

var (
	renderOut      string
	renderWidth    int
	renderHeight   int
	renderYaw      float64
	renderPitch    float64
	renderDistance float64
	renderCaption  bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a PNG snapshot without opening a window",
	Long: `Render the stand with the software rasterizer and write a PNG.
The camera pose defaults to the configured start pose.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	flags := renderCmd.Flags()
	flags.StringVarP(&renderOut, "out", "o", "stand.png", "output PNG file")
	flags.IntVar(&renderWidth, "width", 1280, "image width in pixels")
	flags.IntVar(&renderHeight, "height", 800, "image height in pixels")
	flags.Float64Var(&renderYaw, "yaw", 0, "camera yaw in radians")
	flags.Float64Var(&renderPitch, "pitch", 0, "camera pitch in radians")
	flags.Float64Var(&renderDistance, "distance", 0, "camera distance in mm")
	flags.BoolVar(&renderCaption, "caption", true, "draw the parameters into the image")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	pose := orbit.Pose{Yaw: cfg.Camera.Yaw, Pitch: cfg.Camera.Pitch, Distance: cfg.Camera.Distance}
	flags := cmd.Flags()
	if flags.Changed("yaw") {
		pose.Yaw = renderYaw
	}
	if flags.Changed("pitch") {
		pose.Pitch = renderPitch
	}
	if flags.Changed("distance") {
		pose.Distance = renderDistance
	}

	camera := orbit.NewController(append(cfg.CameraOptions(), orbit.WithPose(pose))...)
	raster := viewer.NewRaster()
	if renderCaption {
		raster.SetCaption(cfg.Params.String())
	}

	session := scene.NewSession(raster, camera, cfg.Params, cfg.Environment(renderWidth, renderHeight))
	if err := session.Mount(); err != nil {
		return err
	}
	defer func() {
		if err := session.Unmount(); err != nil {
			slog.Warn("failed to unmount scene", "error", err)
		}
	}()

	f, err := os.Create(renderOut)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", renderOut, err)
	}
	if err := raster.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", renderOut, err)
	}

	slog.Info("rendered", "file", renderOut, "width", renderWidth, "height", renderHeight,
		"yaw", camera.Pose().Yaw, "pitch", camera.Pose().Pitch, "distance", camera.Pose().Distance)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", renderOut)
	return nil
}

// Package app runs the native raylib window showing the stand.
package app

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/standviz/internal/config"
	"github.com/philipparndt/standviz/pkg/orbit"
	"github.com/philipparndt/standviz/pkg/scene"
	"github.com/philipparndt/standviz/pkg/stand"
	"github.com/philipparndt/standviz/pkg/watcher"
	"github.com/philipparndt/standviz/version"
)

// Options configure Run
type Options struct {
	Config     config.Config
	ConfigPath string         // watched for changes when set
	Level      *slog.LevelVar // updated when the config file changes
}

// App is the state of one window
type App struct {
	renderer *Renderer
	session  *scene.Session
	panel    *Panel
	reload   *reloader
	font     rl.Font
	log      *slog.Logger

	summary       *stand.Summary
	width, height int
}

// Run opens the window and blocks until it is closed
func Run(opts Options) error {
	cfg := opts.Config
	log := slog.Default().With("component", "app")

	rl.SetTraceLogLevel(rl.LogWarning)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	app := &App{
		renderer: NewRenderer(),
		panel:    NewPanel(),
		font:     rl.GetFontDefault(),
		log:      log,
		width:    cfg.Window.Width,
		height:   cfg.Window.Height,
	}
	app.session = scene.NewSession(app.renderer, cfg.Controller(), cfg.Params,
		cfg.Environment(cfg.Window.Width, cfg.Window.Height))
	if err := app.session.Mount(); err != nil {
		return fmt.Errorf("failed to mount scene: %w", err)
	}
	defer func() {
		if err := app.session.Unmount(); err != nil {
			log.Warn("failed to unmount scene", "error", err)
		}
	}()
	app.summary = stand.Summarize(stand.Build(app.session.Params()))

	if opts.ConfigPath != "" {
		fw, err := watcher.NewFileWatcher(reloadDebounce)
		if err == nil {
			err = fw.Watch(opts.ConfigPath)
		}
		if err != nil {
			log.Warn("config reload unavailable", "error", err)
		} else {
			fw.Start()
			defer fw.Close()
			app.reload = newReloader(opts.ConfigPath, cfg, opts.Level, fw.Changes())
			log.Info("watching config", "file", opts.ConfigPath)
		}
	}

	log.Info("window open", "params", app.session.Params().String())
	for !rl.WindowShouldClose() {
		app.update()
		app.draw()
	}
	return nil
}

// update consumes input and reloads; all scene changes happen here on the window thread
func (app *App) update() {
	var msgs []scene.Message
	if w, h := rl.GetScreenWidth(), rl.GetScreenHeight(); w > 0 && h > 0 && (w != app.width || h != app.height) {
		app.width, app.height = w, h
		msgs = append(msgs, scene.Resize{Width: w, Height: h})
	}
	if app.reload != nil {
		msgs = append(msgs, app.reload.poll(app.width, app.height)...)
	}
	msgs = append(msgs, keyMessages()...)

	in := readPointer()
	params := app.session.Params()
	msgs = append(msgs, app.panel.Update(in, params, float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))...)

	dragging := app.session.Camera().State() == orbit.Dragging
	overPanel := app.panel.Contains(in.pos) || app.panel.Dragging()
	msgs = append(msgs, cameraMessages(in, dragging, overPanel)...)

	for _, msg := range msgs {
		if err := app.session.Handle(msg); err != nil {
			app.log.Error("failed to apply input", "message", fmt.Sprintf("%T", msg), "error", err)
		}
	}
	if app.session.Params() != params {
		app.summary = stand.Summarize(stand.Build(app.session.Params()))
	}
}

func (app *App) draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(app.renderer.Background())
	app.renderer.Frame(func() {
		if err := app.session.Render(); err != nil {
			app.log.Error("failed to render", "error", err)
		}
	})

	app.drawUI()
	app.panel.Draw(app.font, app.session.Params())
}

// drawUI draws the parameter caption, dimensions, version and FPS
func (app *App) drawUI() {
	y := float32(10)
	lineHeight := float32(20)
	textColor := rl.NewColor(60, 60, 60, 255)
	headColor := rl.NewColor(30, 90, 160, 255)

	rl.DrawTextEx(app.font, "Stand:", rl.Vector2{X: 10, Y: y}, 16, 1, headColor)
	y += lineHeight
	rl.DrawTextEx(app.font, "  "+app.session.Params().String(), rl.Vector2{X: 10, Y: y}, 14, 1, textColor)
	y += lineHeight

	if s := app.summary; s != nil {
		d := s.Dimensions
		rl.DrawTextEx(app.font, fmt.Sprintf("  Size: %.1f x %.1f x %.1f mm", d.X, d.Y, d.Z), rl.Vector2{X: 10, Y: y}, 14, 1, textColor)
		y += lineHeight
		rl.DrawTextEx(app.font, fmt.Sprintf("  Seat height: %.1f mm", s.SeatHeight), rl.Vector2{X: 10, Y: y}, 14, 1, textColor)
		y += lineHeight
		rl.DrawTextEx(app.font, fmt.Sprintf("  Primitives: %d", s.Primitives), rl.Vector2{X: 10, Y: y}, 14, 1, textColor)
	}

	// Version and FPS in bottom-left corner
	bottomY := float32(rl.GetScreenHeight()) - 30
	versionText := fmt.Sprintf("v%s", version.GetVersion())
	rl.DrawTextEx(app.font, versionText, rl.Vector2{X: 10, Y: bottomY}, 12, 1, rl.Gray)

	fpsText := fmt.Sprintf("FPS: %d", rl.GetFPS())
	versionWidth := rl.MeasureTextEx(app.font, versionText, 12, 1).X
	rl.DrawTextEx(app.font, fpsText, rl.Vector2{X: 10 + versionWidth + 15, Y: bottomY}, 12, 1, rl.DarkGreen)
}

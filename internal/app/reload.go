package app

import (
	"log/slog"
	"time"

	"github.com/philipparndt/standviz/internal/config"
	"github.com/philipparndt/standviz/pkg/scene"
)

// reloadDebounce waits for editors to finish writing the config file
const reloadDebounce = 300 * time.Millisecond

// reloader turns config file changes into scene messages on the window thread
type reloader struct {
	path    string
	current config.Config
	level   *slog.LevelVar
	changes <-chan string
	log     *slog.Logger
}

func newReloader(path string, cfg config.Config, level *slog.LevelVar, changes <-chan string) *reloader {
	return &reloader{
		path:    path,
		current: cfg,
		level:   level,
		changes: changes,
		log:     slog.Default().With("component", "reload"),
	}
}

// poll returns the messages for a pending change without blocking
func (r *reloader) poll(width, height int) []scene.Message {
	select {
	case _, ok := <-r.changes:
		if !ok {
			r.changes = nil
			return nil
		}
	default:
		return nil
	}

	cfg, err := config.Load(r.path)
	if err != nil {
		r.log.Warn("keeping previous config", "error", err)
		return nil
	}
	msgs := r.apply(cfg, width, height)
	r.log.Info("config reloaded", "file", r.path, "messages", len(msgs))
	return msgs
}

// apply diffs cfg against the current config. Parameters are only replaced
// when the file changed them, so slider edits survive unrelated reloads.
func (r *reloader) apply(cfg config.Config, width, height int) []scene.Message {
	prev := r.current
	r.current = cfg

	if r.level != nil {
		if level, err := config.ParseLevel(cfg.LogLevel); err == nil {
			r.level.Set(level)
		}
	}
	var msgs []scene.Message
	if cfg.Camera != prev.Camera {
		msgs = append(msgs, scene.ConfigureCamera{Options: cfg.CameraOptions()})
	}
	if cfg.Render != prev.Render {
		msgs = append(msgs, scene.SetEnvironment{Env: cfg.Environment(width, height)})
	}
	if cfg.Params != prev.Params {
		msgs = append(msgs, scene.SetParams{Params: cfg.Params})
	}
	return msgs
}

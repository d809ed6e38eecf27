package scene

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/philipparndt/standviz/pkg/orbit"
	"github.com/philipparndt/standviz/pkg/stand"
)

// ErrNotMounted is returned when a session is used before Mount or after Unmount
var ErrNotMounted = errors.New("scene not mounted")

// Message is an input consumed by Session.Handle.
// Valid messages are SetParam, ShowSwitch, SetParams, SetEnvironment,
// ConfigureCamera, Resize, ResetCamera and orbit.Event.
type Message interface{}

// SetParam changes one numeric parameter; the value is clamped to its range
type SetParam struct {
	ID    stand.ParamID
	Value float64
}

// ShowSwitch toggles the switch outline
type ShowSwitch struct {
	Show bool
}

// SetParams replaces the whole parameter set
type SetParams struct {
	Params stand.Params
}

// SetEnvironment remounts the renderer with new lights, grid and background.
// The surface size of the current environment is kept.
type SetEnvironment struct {
	Env Environment
}

// ConfigureCamera changes the camera limits and sensitivities in place
type ConfigureCamera struct {
	Options []orbit.Option
}

// Resize changes the surface size of the mounted renderer
type Resize struct {
	Width, Height int
}

// Resizer is implemented by renderers whose surface size is fixed at mount
type Resizer interface {
	Resize(width, height int) error
}

// ResetCamera returns the camera to its start pose
type ResetCamera struct{}

// Session drives a renderer from parameter and pointer messages
type Session struct {
	renderer Renderer
	camera   *orbit.Controller
	params   stand.Params
	env      Environment
	log      *slog.Logger

	mounted bool
	owned   []Handle
	builds  int
	stale   bool // the last build failed; the next parameter message rebuilds

	// OnChange is called with the new parameters after a rebuild, before the frame is drawn
	OnChange func(stand.Params)
}

// NewSession creates an unmounted session
func NewSession(r Renderer, camera *orbit.Controller, params stand.Params, env Environment) *Session {
	if camera == nil {
		camera = orbit.NewController()
	}
	return &Session{
		renderer: r,
		camera:   camera,
		params:   params.Clamp(),
		env:      env,
		log:      slog.Default().With("component", "scene"),
	}
}

// Params returns the current parameters
func (s *Session) Params() stand.Params {
	return s.params
}

// Camera returns the session's camera controller
func (s *Session) Camera() *orbit.Controller {
	return s.camera
}

// Environment returns the environment the session mounts with
func (s *Session) Environment() Environment {
	return s.env
}

// Live returns the number of renderer handles owned by the current build
func (s *Session) Live() int {
	return len(s.owned)
}

// Builds returns how many times the geometry has been built
func (s *Session) Builds() int {
	return s.builds
}

// Mount installs the environment, builds the stand and draws the first frame
func (s *Session) Mount() error {
	if s.mounted {
		return nil
	}
	if err := s.renderer.Mount(s.env); err != nil {
		return fmt.Errorf("failed to mount renderer: %w", err)
	}
	s.mounted = true

	if err := s.rebuild(); err != nil {
		return err
	}
	s.renderer.SetCamera(s.camera.View())
	return s.render()
}

// Handle applies one message synchronously and redraws if anything changed
func (s *Session) Handle(msg Message) error {
	if !s.mounted {
		return ErrNotMounted
	}

	switch m := msg.(type) {
	case SetParam:
		return s.update(s.params.With(m.ID, m.Value))
	case ShowSwitch:
		p := s.params
		p.ShowSwitch = m.Show
		return s.update(p)
	case SetParams:
		return s.update(m.Params.Clamp())
	case SetEnvironment:
		return s.remount(m.Env)
	case ConfigureCamera:
		before := s.camera.Pose()
		s.camera.Configure(m.Options...)
		if s.camera.Pose() != before {
			return s.moveCamera()
		}
		return nil
	case Resize:
		return s.resize(m.Width, m.Height)
	case ResetCamera:
		if s.camera.Reset() {
			return s.moveCamera()
		}
		return nil
	case orbit.Event:
		if s.camera.Handle(m) {
			return s.moveCamera()
		}
		return nil
	default:
		return fmt.Errorf("unsupported message %T", msg)
	}
}

// Render draws a frame without changing anything
func (s *Session) Render() error {
	if !s.mounted {
		return ErrNotMounted
	}
	return s.render()
}

// Unmount releases every primitive and the renderer's surface
func (s *Session) Unmount() error {
	if !s.mounted {
		return nil
	}
	s.clear()
	s.mounted = false
	if err := s.renderer.Unmount(); err != nil {
		return fmt.Errorf("failed to unmount renderer: %w", err)
	}
	return nil
}

// remount releases everything, mounts env and rebuilds the current parameters
func (s *Session) remount(env Environment) error {
	env.Width, env.Height = s.env.Width, s.env.Height
	s.clear()
	s.mounted = false
	if err := s.renderer.Unmount(); err != nil {
		return fmt.Errorf("failed to unmount renderer: %w", err)
	}
	s.env = env
	return s.Mount()
}

// resize updates the surface size so later remounts keep it
func (s *Session) resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	if width == s.env.Width && height == s.env.Height {
		return nil
	}
	if r, ok := s.renderer.(Resizer); ok {
		if err := r.Resize(width, height); err != nil {
			return fmt.Errorf("failed to resize renderer: %w", err)
		}
	}
	s.env.Width, s.env.Height = width, height
	return s.render()
}

func (s *Session) update(p stand.Params) error {
	if p == s.params && !s.stale {
		return nil
	}
	s.params = p
	if err := s.rebuild(); err != nil {
		return err
	}
	if s.OnChange != nil {
		s.OnChange(p)
	}
	return s.render()
}

// rebuild releases the previous build and adds the full placement list
func (s *Session) rebuild() error {
	s.clear()

	placements := stand.Build(s.params)
	owned := make([]Handle, 0, len(placements))
	for i, p := range placements {
		h, err := s.renderer.Add(p)
		if err != nil {
			for _, added := range owned {
				added.Release()
			}
			s.stale = true
			return fmt.Errorf("failed to add %s (#%d): %w", p.Part, i, err)
		}
		owned = append(owned, h)
	}
	s.owned = owned
	s.builds++
	s.stale = false

	s.log.Debug("rebuilt stand", "params", s.params.String(), "primitives", len(owned))
	return nil
}

// clear releases every handle of the current build
func (s *Session) clear() {
	for _, h := range s.owned {
		h.Release()
	}
	s.owned = nil
}

func (s *Session) moveCamera() error {
	s.renderer.SetCamera(s.camera.View())
	return s.render()
}

func (s *Session) render() error {
	if err := s.renderer.Render(); err != nil {
		return fmt.Errorf("failed to render frame: %w", err)
	}
	return nil
}

// Package orbit implements the orbit camera used to inspect the stand.
//
// The camera circles a fixed look-at point. Pointer drags change yaw and
// pitch incrementally; scroll changes the distance. All state lives in a
// Controller value so every window (or test) owns its own camera.
package orbit

import (
	"math"

	"github.com/philipparndt/standviz/pkg/geometry"
)

// Default camera settings
const (
	DefaultYaw            = 0.5
	DefaultPitch          = -0.4
	DefaultDistance       = 500.0
	DefaultDragSpeed      = 0.01 // radians per pixel
	DefaultZoomSpeed      = 0.5  // millimetres per scroll delta unit
	DefaultVerticalOffset = 150.0
	DefaultMinPitch       = -1.2
	DefaultMaxPitch       = 1.2
	DefaultMinDistance    = 200.0
	DefaultMaxDistance    = 1000.0
)

// Pose is the orientation of the camera around its target
type Pose struct {
	Yaw      float64
	Pitch    float64
	Distance float64
}

// View is the camera placement derived from a pose, in Y-up view space
type View struct {
	Position geometry.Vector3
	Target   geometry.Vector3
}

// Limits bound the pose
type Limits struct {
	MinPitch    float64
	MaxPitch    float64
	MinDistance float64
	MaxDistance float64
}

// State is the pointer tracking state of the controller
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Controller turns pointer and scroll input into a camera pose
type Controller struct {
	pose   Pose
	start  Pose
	limits Limits

	dragSpeed float64
	zoomSpeed float64
	offset    float64

	state        State
	lastX, lastY float64
}

// Option configures a Controller
type Option func(*Controller)

// WithPose sets the start pose (also used by Reset)
func WithPose(p Pose) Option {
	return func(c *Controller) {
		c.start = p
	}
}

// WithLimits replaces the pitch and distance limits
func WithLimits(l Limits) Option {
	return func(c *Controller) {
		c.limits = l
	}
}

// WithSensitivity sets the drag (radians per pixel) and zoom speeds
func WithSensitivity(drag, zoom float64) Option {
	return func(c *Controller) {
		c.dragSpeed = drag
		c.zoomSpeed = zoom
	}
}

// WithVerticalOffset sets the height of the look-at point
func WithVerticalOffset(offset float64) Option {
	return func(c *Controller) {
		c.offset = offset
	}
}

// DefaultLimits returns the standard pitch and distance limits
func DefaultLimits() Limits {
	return Limits{
		MinPitch:    DefaultMinPitch,
		MaxPitch:    DefaultMaxPitch,
		MinDistance: DefaultMinDistance,
		MaxDistance: DefaultMaxDistance,
	}
}

// NewController creates an idle controller at the start pose
func NewController(opts ...Option) *Controller {
	c := &Controller{
		start:     Pose{Yaw: DefaultYaw, Pitch: DefaultPitch, Distance: DefaultDistance},
		limits:    DefaultLimits(),
		dragSpeed: DefaultDragSpeed,
		zoomSpeed: DefaultZoomSpeed,
		offset:    DefaultVerticalOffset,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.start = c.clamp(c.start)
	c.pose = c.start
	return c
}

// Pose returns the current pose
func (c *Controller) Pose() Pose {
	return c.pose
}

// State returns whether a drag is in progress
func (c *Controller) State() State {
	return c.state
}

// Configure applies options to a running controller without moving the camera
// further than the new limits require. Pointer state is kept.
func (c *Controller) Configure(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
	c.start = c.clamp(c.start)
	c.pose = c.clamp(c.pose)
}

// PointerDown starts a drag at (x, y)
func (c *Controller) PointerDown(x, y float64) {
	c.state = Dragging
	c.lastX, c.lastY = x, y
}

// PointerMove rotates the camera by the movement since the last pointer
// position. It returns false while idle.
func (c *Controller) PointerMove(x, y float64) bool {
	if c.state != Dragging {
		return false
	}
	dx := x - c.lastX
	dy := y - c.lastY
	c.lastX, c.lastY = x, y

	if dx == 0 && dy == 0 {
		return false
	}

	before := c.pose
	c.pose.Yaw += dx * c.dragSpeed
	c.pose.Pitch += dy * c.dragSpeed
	c.pose = c.clamp(c.pose)
	return c.pose != before
}

// PointerUp ends a drag
func (c *Controller) PointerUp() {
	c.state = Idle
}

// PointerLeave ends a drag when the pointer leaves the surface
func (c *Controller) PointerLeave() {
	c.state = Idle
}

// Scroll zooms by deltaY (positive moves away). Valid in any state.
func (c *Controller) Scroll(deltaY float64) bool {
	before := c.pose.Distance
	c.pose.Distance += deltaY * c.zoomSpeed
	c.pose = c.clamp(c.pose)
	return c.pose.Distance != before
}

// Reset returns to the start pose and ends any drag
func (c *Controller) Reset() bool {
	c.state = Idle
	changed := c.pose != c.start
	c.pose = c.start
	return changed
}

// View computes the camera position and look-at target for the current pose
func (c *Controller) View() View {
	return ViewOf(c.pose, c.offset)
}

// ViewOf converts a pose to a camera placement around (0, offset, 0)
func ViewOf(p Pose, offset float64) View {
	cosPitch := math.Cos(p.Pitch)
	return View{
		Position: geometry.NewVector3(
			p.Distance*math.Sin(p.Yaw)*cosPitch,
			p.Distance*math.Sin(-p.Pitch)+offset,
			p.Distance*math.Cos(p.Yaw)*cosPitch,
		),
		Target: geometry.NewVector3(0, offset, 0),
	}
}

func (c *Controller) clamp(p Pose) Pose {
	p.Pitch = math.Max(c.limits.MinPitch, math.Min(c.limits.MaxPitch, p.Pitch))
	p.Distance = math.Max(c.limits.MinDistance, math.Min(c.limits.MaxDistance, p.Distance))
	return p
}

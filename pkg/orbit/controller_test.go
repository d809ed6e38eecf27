package orbit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewControllerDefaults(t *testing.T) {
	c := NewController()

	assert.Equal(t, Pose{Yaw: 0.5, Pitch: -0.4, Distance: 500}, c.Pose())
	assert.Equal(t, Idle, c.State())
}

func TestDragScenario(t *testing.T) {
	c := NewController()
	start := c.Pose()

	c.Handle(Down(100, 100))
	assert.Equal(t, Dragging, c.State())

	changed := c.Handle(Move(120, 90))
	assert.True(t, changed)
	assert.InDelta(t, start.Yaw+20*DefaultDragSpeed, c.Pose().Yaw, 1e-12)
	assert.InDelta(t, start.Pitch-10*DefaultDragSpeed, c.Pose().Pitch, 1e-12)

	c.Handle(Up())
	after := c.Pose()
	assert.False(t, c.Handle(Move(200, 200)))
	assert.Equal(t, after, c.Pose())
}

func TestDragIsIncremental(t *testing.T) {
	c := NewController()
	start := c.Pose()

	c.PointerDown(0, 0)
	c.PointerMove(10, 0)
	c.PointerMove(15, 0)

	// 10 px then 5 px, not 10 + 15
	assert.InDelta(t, start.Yaw+15*DefaultDragSpeed, c.Pose().Yaw, 1e-12)
}

func TestPointerLeaveEndsDrag(t *testing.T) {
	c := NewController()
	c.Handle(Down(0, 0))
	c.Handle(Leave())

	before := c.Pose()
	assert.False(t, c.Handle(Move(50, 50)))
	assert.Equal(t, before, c.Pose())
	assert.Equal(t, Idle, c.State())
}

func TestPitchClamp(t *testing.T) {
	c := NewController()
	c.PointerDown(0, 0)
	for y := 1; y <= 1000; y++ {
		c.PointerMove(0, float64(y*10))
		p := c.Pose().Pitch
		if p > DefaultMaxPitch || p < DefaultMinPitch {
			t.Fatalf("pitch %v escaped its range", p)
		}
	}
	assert.Equal(t, DefaultMaxPitch, c.Pose().Pitch)

	for y := 1000; y >= -1000; y-- {
		c.PointerMove(0, float64(y*10))
	}
	assert.Equal(t, DefaultMinPitch, c.Pose().Pitch)
}

func TestScrollClamp(t *testing.T) {
	c := NewController()

	for i := 0; i < 100; i++ {
		c.Handle(Wheel(-120))
		if c.Pose().Distance < DefaultMinDistance {
			t.Fatalf("distance %v below minimum", c.Pose().Distance)
		}
	}
	assert.Equal(t, DefaultMinDistance, c.Pose().Distance)
	assert.False(t, c.Scroll(-120), "scrolling at the limit is not a change")

	for i := 0; i < 100; i++ {
		c.Handle(Wheel(120))
		if c.Pose().Distance > DefaultMaxDistance {
			t.Fatalf("distance %v above maximum", c.Pose().Distance)
		}
	}
	assert.Equal(t, DefaultMaxDistance, c.Pose().Distance)
}

func TestScrollWhileDragging(t *testing.T) {
	c := NewController()
	c.PointerDown(5, 5)

	assert.True(t, c.Scroll(100))
	assert.Equal(t, 550.0, c.Pose().Distance)
	assert.Equal(t, Dragging, c.State())
}

func TestViewOf(t *testing.T) {
	v := ViewOf(Pose{Yaw: 0, Pitch: 0, Distance: 300}, 150)
	assert.InDelta(t, 0, v.Position.X, 1e-9)
	assert.InDelta(t, 150, v.Position.Y, 1e-9)
	assert.InDelta(t, 300, v.Position.Z, 1e-9)
	assert.Equal(t, 150.0, v.Target.Y)

	// Negative pitch lifts the camera above the target
	v = ViewOf(Pose{Yaw: math.Pi / 2, Pitch: -0.4, Distance: 500}, 150)
	assert.InDelta(t, 500*math.Cos(0.4), v.Position.X, 1e-9)
	assert.InDelta(t, 500*math.Sin(0.4)+150, v.Position.Y, 1e-9)
	assert.InDelta(t, 0, v.Position.Z, 1e-9)

	// The camera always sits at its distance from the target
	c := NewController()
	view := c.View()
	assert.InDelta(t, c.Pose().Distance, view.Position.Distance(view.Target), 1e-9)
}

func TestResetAndOptions(t *testing.T) {
	c := NewController(
		WithPose(Pose{Yaw: 0, Pitch: 2, Distance: 50}),
		WithSensitivity(0.02, 1),
		WithVerticalOffset(100),
	)

	// Start pose is clamped into the limits
	assert.Equal(t, Pose{Yaw: 0, Pitch: 1.2, Distance: 200}, c.Pose())
	assert.Equal(t, 100.0, c.View().Target.Y)

	c.PointerDown(0, 0)
	c.PointerMove(10, 0)
	assert.InDelta(t, 0.2, c.Pose().Yaw, 1e-12)

	assert.True(t, c.Reset())
	assert.Equal(t, Idle, c.State())
	assert.False(t, c.Reset())
}

func TestConfigureKeepsPose(t *testing.T) {
	c := NewController()
	c.Scroll(400) // 700

	c.Configure(WithLimits(Limits{MinPitch: -1, MaxPitch: 1, MinDistance: 100, MaxDistance: 600}))
	assert.Equal(t, 600.0, c.Pose().Distance)
	assert.Equal(t, DefaultYaw, c.Pose().Yaw)
}

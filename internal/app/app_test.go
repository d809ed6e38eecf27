package app

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/standviz/internal/config"
	"github.com/philipparndt/standviz/pkg/geometry"
	"github.com/philipparndt/standviz/pkg/mesh"
	"github.com/philipparndt/standviz/pkg/orbit"
	"github.com/philipparndt/standviz/pkg/scene"
	"github.com/philipparndt/standviz/pkg/stand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBakeMesh(t *testing.T) {
	env := scene.DefaultEnvironment(1, 1)
	p := stand.Build(stand.DefaultParams())[0]
	m := mesh.Build(p)

	d := bakeMesh(m.Triangles, env, p.Color)
	require.Equal(t, 12, d.triangles)
	assert.Len(t, d.vertices, 12*3*3)
	assert.Len(t, d.normals, 12*3*3)
	assert.Len(t, d.texcoords, 12*3*2)
	assert.Len(t, d.colors, 12*3*4)

	// Every vertex of a triangle carries the triangle's shade
	want := env.Shade(m.Triangles[0].Normal, p.Color)
	for v := 0; v < 3; v++ {
		assert.Equal(t, []uint8{want.R, want.G, want.B, want.A}, d.colors[v*4:v*4+4])
	}
	assert.Equal(t, float32(m.Triangles[0].V2.X), d.vertices[3])
}

func TestBakeMeshKeepsTranslucency(t *testing.T) {
	placements := stand.Build(stand.DefaultParams())
	outline := placements[len(placements)-1]
	require.True(t, outline.Translucent())

	d := bakeMesh(mesh.Build(outline).Triangles, scene.DefaultEnvironment(1, 1), outline.Color)
	assert.Equal(t, outline.Color.A, d.colors[3])
}

func TestClipPlanesCoverFullZoomOut(t *testing.T) {
	env := config.Default().Environment(800, 600)
	near, far := clipPlanes(env)
	assert.Equal(t, env.Near, near)
	assert.Equal(t, env.Far, far)

	// At the largest distance every grid corner and stand corner stays inside the far plane
	limits := orbit.DefaultLimits()
	for _, pitch := range []float64{limits.MinPitch, 0, limits.MaxPitch} {
		view := orbit.ViewOf(orbit.Pose{Yaw: 0.5, Pitch: pitch, Distance: limits.MaxDistance}, orbit.DefaultVerticalOffset)
		half := env.Grid.Size / 2
		points := []geometry.Vector3{
			geometry.NewVector3(half, 0, half), geometry.NewVector3(-half, 0, -half),
			geometry.NewVector3(half, 0, -half), geometry.NewVector3(-half, 0, half),
		}
		bounds := stand.Summarize(stand.Build(stand.DefaultParams())).BoundingBox
		points = append(points, bounds.Min.ToView(), bounds.Max.ToView())
		for _, p := range points {
			assert.Less(t, view.Position.Distance(p), far)
		}
	}
	assert.Greater(t, far, defaultFar)
}

func TestClipPlanesDefaults(t *testing.T) {
	near, far := clipPlanes(scene.Environment{})
	assert.Equal(t, defaultNear, near)
	assert.Equal(t, defaultFar, far)
}

func TestCameraMessagesDrag(t *testing.T) {
	press := pointerInput{pos: rl.Vector2{X: 100, Y: 100}, pressed: true, down: true, onScreen: true}
	assert.Equal(t, []scene.Message{orbit.Down(100, 100), orbit.Move(100, 100)}, cameraMessages(press, false, false))

	move := pointerInput{pos: rl.Vector2{X: 120, Y: 90}, down: true, onScreen: true}
	assert.Equal(t, []scene.Message{orbit.Move(120, 90)}, cameraMessages(move, true, false))
	assert.Empty(t, cameraMessages(move, false, false), "moving without a drag does nothing")

	release := pointerInput{pos: rl.Vector2{X: 120, Y: 90}, released: true, onScreen: true}
	assert.Equal(t, []scene.Message{orbit.Up()}, cameraMessages(release, true, false))
}

func TestCameraMessagesLeaveAndPanel(t *testing.T) {
	gone := pointerInput{down: true, onScreen: false}
	assert.Equal(t, []scene.Message{orbit.Leave()}, cameraMessages(gone, true, false))

	press := pointerInput{pos: rl.Vector2{X: 5, Y: 5}, pressed: true, down: true, onScreen: true, wheel: 1}
	assert.Empty(t, cameraMessages(press, false, true), "the panel swallows presses and scrolling")
}

func TestCameraMessagesWheel(t *testing.T) {
	in := pointerInput{onScreen: true, wheel: 1}
	msgs := cameraMessages(in, false, false)
	require.Len(t, msgs, 1)
	assert.Equal(t, orbit.Wheel(-100), msgs[0], "wheel up zooms in")
}

func TestSliderValue(t *testing.T) {
	track := rl.Rectangle{X: 100, Y: 0, Width: 200, Height: 8}
	r := stand.RangeOf(stand.CableGap)

	assert.Equal(t, r.Min, sliderValue(50, track, r))
	assert.Equal(t, r.Max, sliderValue(400, track, r))
	assert.Equal(t, 50.0, sliderValue(200, track, r))
}

func TestPanelDragSetsParam(t *testing.T) {
	p := NewPanel()
	params := stand.DefaultParams()
	l := layoutPanel(1280, 800)
	track := l.tracks[2] // wall height

	in := pointerInput{pos: rl.Vector2{X: track.X + track.Width, Y: track.Y + 4}, pressed: true, down: true, onScreen: true}
	msgs := p.Update(in, params, 1280, 800)
	require.True(t, p.Dragging())
	assert.Equal(t, []scene.Message{scene.SetParam{ID: stand.WallHeight, Value: 120}}, msgs)
	assert.True(t, p.Contains(in.pos))

	// The drag continues outside the track until release
	in = pointerInput{pos: rl.Vector2{X: 0, Y: 0}, down: true, onScreen: true}
	msgs = p.Update(in, params, 1280, 800)
	assert.Equal(t, []scene.Message{scene.SetParam{ID: stand.WallHeight, Value: 30}}, msgs)

	p.Update(pointerInput{released: true, onScreen: true}, params, 1280, 800)
	assert.False(t, p.Dragging())
}

func TestPanelToggle(t *testing.T) {
	p := NewPanel()
	l := layoutPanel(1280, 800)
	in := pointerInput{pos: rl.Vector2{X: l.toggle.X + 2, Y: l.toggle.Y + 2}, pressed: true, down: true, onScreen: true}

	msgs := p.Update(in, stand.DefaultParams(), 1280, 800)
	assert.Equal(t, []scene.Message{scene.ShowSwitch{Show: false}}, msgs)
	assert.False(t, p.Dragging())
}

func TestReloaderApply(t *testing.T) {
	cfg := config.Default()
	r := newReloader("standviz.yaml", cfg, nil, nil)

	assert.Empty(t, r.apply(cfg, 800, 600), "identical config changes nothing")

	next := cfg
	next.Params.CableGap = 70
	next.Render.Background = "#ffffff"
	msgs := r.apply(next, 800, 600)
	require.Len(t, msgs, 2)
	env, ok := msgs[0].(scene.SetEnvironment)
	require.True(t, ok)
	assert.Equal(t, uint8(0xFF), env.Env.Background.B)
	assert.Equal(t, scene.SetParams{Params: next.Params}, msgs[1])

	next.Camera.MaxDistance = 600
	msgs = r.apply(next, 800, 600)
	require.Len(t, msgs, 1)
	assert.IsType(t, scene.ConfigureCamera{}, msgs[0])
}

func TestReloaderPollWithoutChanges(t *testing.T) {
	changes := make(chan string)
	r := newReloader("standviz.yaml", config.Default(), nil, changes)
	assert.Empty(t, r.poll(800, 600))

	close(changes)
	assert.Empty(t, r.poll(800, 600))
	assert.Nil(t, r.changes)
}

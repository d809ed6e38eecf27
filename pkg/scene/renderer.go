// Package scene connects the stand builder and the orbit camera to a renderer.
//
// A Session owns every graphics handle created for the current build. A
// parameter change releases all of them before the new placements are added,
// so repeated edits never accumulate renderer resources.
package scene

import (
	"image/color"
	"math"

	"github.com/philipparndt/standviz/pkg/geometry"
	"github.com/philipparndt/standviz/pkg/orbit"
	"github.com/philipparndt/standviz/pkg/stand"
)

// Handle is a primitive owned by a renderer
type Handle interface {
	// Release frees the primitive's mesh and material. Calling it twice is a no-op.
	Release()
}

// Renderer draws placements. Implementations are driven from a single goroutine.
type Renderer interface {
	// Mount allocates the drawing surface and installs lights and the grid
	Mount(env Environment) error
	// Add creates the resources for one placement
	Add(p stand.Placement) (Handle, error)
	// SetCamera moves the camera
	SetCamera(view orbit.View)
	// Render draws one frame with the current primitives and camera
	Render() error
	// Unmount frees the surface and everything installed by Mount
	Unmount() error
}

// Light is a directional light shining from Position towards the origin
type Light struct {
	Position  geometry.Vector3
	Intensity float64
}

// Grid is the reference grid on the floor plane
type Grid struct {
	Size      float64
	Divisions int
	Center    color.NRGBA // the two center lines
	Lines     color.NRGBA
}

// Environment is the fixed part of the scene installed once on mount
type Environment struct {
	Width, Height int
	Background    color.NRGBA
	Ambient       float64
	Lights        []Light
	Grid          Grid
	FOV           float64 // vertical field of view in degrees
	Near, Far     float64
}

// DefaultEnvironment returns the standard lighting and grid for a surface size
func DefaultEnvironment(width, height int) Environment {
	return Environment{
		Width:      width,
		Height:     height,
		Background: color.NRGBA{R: 0xF5, G: 0xF5, B: 0xF0, A: 0xFF},
		Ambient:    0.5,
		Lights: []Light{
			{Position: geometry.NewVector3(200, 400, 300), Intensity: 0.8},
			{Position: geometry.NewVector3(-200, 200, -100), Intensity: 0.3},
		},
		Grid: Grid{
			Size:      400,
			Divisions: 20,
			Center:    color.NRGBA{R: 0xCC, G: 0xCC, B: 0xCC, A: 0xFF},
			Lines:     color.NRGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF},
		},
		FOV:  45,
		Near: 1,
		Far:  2000,
	}
}

// Shade applies ambient and diffuse lighting to a surface color.
// Alpha is preserved.
func (e Environment) Shade(normal geometry.Vector3, c color.NRGBA) color.NRGBA {
	intensity := e.Ambient
	for _, l := range e.Lights {
		intensity += l.Intensity * math.Max(0, normal.Dot(l.Position.Normalize()))
	}
	scale := func(v uint8) uint8 {
		return uint8(math.Min(255, math.Round(float64(v)*intensity)))
	}
	return color.NRGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}

// GridLines returns the grid as floor-plane segments in view space.
// The two lines through the origin come first.
func (g Grid) GridLines() (center, lines [][2]geometry.Vector3) {
	if g.Divisions <= 0 {
		return nil, nil
	}
	half := g.Size / 2
	step := g.Size / float64(g.Divisions)
	for i := 0; i <= g.Divisions; i++ {
		k := -half + float64(i)*step
		x := [2]geometry.Vector3{geometry.NewVector3(k, 0, -half), geometry.NewVector3(k, 0, half)}
		z := [2]geometry.Vector3{geometry.NewVector3(-half, 0, k), geometry.NewVector3(half, 0, k)}
		if 2*i == g.Divisions {
			center = append(center, x, z)
		} else {
			lines = append(lines, x, z)
		}
	}
	return center, lines
}

package viewer

import (
	"math"

	"github.com/philipparndt/standviz/pkg/geometry"
	"github.com/philipparndt/standviz/pkg/orbit"
)

// Camera is a perspective camera in Y-up view space
type Camera struct {
	Position geometry.Vector3
	Target   geometry.Vector3
	Up       geometry.Vector3
	FOV      float64 // vertical field of view in radians
	Near     float64

	// basis, recomputed by Look
	right, up, forward geometry.Vector3
}

// NewCamera creates a camera with the given field of view in degrees
func NewCamera(fovDegrees, near float64) *Camera {
	c := &Camera{
		Up:   geometry.NewVector3(0, 1, 0),
		FOV:  fovDegrees * math.Pi / 180,
		Near: near,
	}
	c.Look(orbit.ViewOf(orbit.Pose{Yaw: orbit.DefaultYaw, Pitch: orbit.DefaultPitch, Distance: orbit.DefaultDistance}, orbit.DefaultVerticalOffset))
	return c
}

// Look places the camera
func (c *Camera) Look(v orbit.View) {
	c.Position = v.Position
	c.Target = v.Target

	c.forward = c.Target.Sub(c.Position).Normalize()
	c.right = c.forward.Cross(c.Up).Normalize()
	c.up = c.right.Cross(c.forward).Normalize()
}

// Depth returns the distance of a point along the viewing direction
func (c *Camera) Depth(point geometry.Vector3) float64 {
	return point.Sub(c.Position).Dot(c.forward)
}

// Project projects a 3D point to 2D screen coordinates and its depth.
// Points with a depth below Near cannot be projected meaningfully; callers
// clip them first.
func (c *Camera) Project(point geometry.Vector3, width, height float64) (float64, float64, float64) {
	relative := point.Sub(c.Position)
	x := relative.Dot(c.right)
	y := relative.Dot(c.up)
	z := relative.Dot(c.forward)

	if z < c.Near {
		z = c.Near
	}

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	screenX := (x/(z*fovScale*aspect))*(width/2) + (width / 2)
	screenY := (-y/(z*fovScale))*(height/2) + (height / 2)

	return screenX, screenY, z
}

// Facing reports whether a surface with the given normal through point faces the camera
func (c *Camera) Facing(point, normal geometry.Vector3) bool {
	return normal.Dot(c.Position.Sub(point)) > 0
}

// ClipSegment trims a segment to the part in front of the near plane.
// It returns false when the whole segment is behind it.
func (c *Camera) ClipSegment(a, b geometry.Vector3) (geometry.Vector3, geometry.Vector3, bool) {
	za, zb := c.Depth(a), c.Depth(b)
	switch {
	case za < c.Near && zb < c.Near:
		return a, b, false
	case za < c.Near:
		t := (c.Near - za) / (zb - za)
		a = a.Add(b.Sub(a).Mul(t))
	case zb < c.Near:
		t := (c.Near - zb) / (za - zb)
		b = b.Add(a.Sub(b).Mul(t))
	}
	return a, b, true
}

// Package mesh tessellates stand placements into view-space triangles.
//
// Both renderers draw in a Y-up space, so the Z-up model coordinates are
// swapped on the way in. Triangles are wound counter-clockwise seen from
// outside the solid.
package mesh

import (
	"math"

	"github.com/philipparndt/standviz/pkg/geometry"
	"github.com/philipparndt/standviz/pkg/stand"
)

// CylinderSegments is the number of sides used for cylinders
const CylinderSegments = 32

// Segment is a line between two view-space points
type Segment struct {
	A, B geometry.Vector3
}

// Mesh is the view-space geometry of one placement
type Mesh struct {
	Triangles []geometry.Triangle
	Edges     []Segment // outline edges, empty unless the placement draws edges
}

// Build tessellates a placement
func Build(p stand.Placement) Mesh {
	var m Mesh
	switch p.Shape {
	case stand.Cylinder:
		m.Triangles = cylinder(p.Center.ToView(), p.Radius, p.Height, CylinderSegments)
	default:
		corners := boxCorners(p.Center.ToView(), p.Size.ToView())
		m.Triangles = box(corners)
		if p.Edges {
			m.Edges = boxEdges(corners)
		}
	}
	return m
}

// boxCorners returns the eight corners of a view-space box.
// Bit 0 selects +X, bit 1 selects +Y, bit 2 selects +Z.
func boxCorners(center, size geometry.Vector3) [8]geometry.Vector3 {
	half := size.Mul(0.5)
	var c [8]geometry.Vector3
	for i := range c {
		c[i] = center
		if i&1 != 0 {
			c[i].X += half.X
		} else {
			c[i].X -= half.X
		}
		if i&2 != 0 {
			c[i].Y += half.Y
		} else {
			c[i].Y -= half.Y
		}
		if i&4 != 0 {
			c[i].Z += half.Z
		} else {
			c[i].Z -= half.Z
		}
	}
	return c
}

// boxFaces lists each face as a quad of corner indices, counter-clockwise from outside
var boxFaces = [6][4]int{
	{1, 3, 7, 5}, // +X
	{0, 4, 6, 2}, // -X
	{2, 6, 7, 3}, // +Y
	{0, 1, 5, 4}, // -Y
	{4, 5, 7, 6}, // +Z
	{0, 2, 3, 1}, // -Z
}

func box(c [8]geometry.Vector3) []geometry.Triangle {
	tris := make([]geometry.Triangle, 0, 12)
	for _, f := range boxFaces {
		tris = append(tris,
			geometry.NewTriangle(c[f[0]], c[f[1]], c[f[2]]),
			geometry.NewTriangle(c[f[0]], c[f[2]], c[f[3]]),
		)
	}
	return tris
}

func boxEdges(c [8]geometry.Vector3) []Segment {
	edges := make([]Segment, 0, 12)
	for i := 0; i < 8; i++ {
		for _, bit := range [3]int{1, 2, 4} {
			if i&bit == 0 {
				edges = append(edges, Segment{A: c[i], B: c[i|bit]})
			}
		}
	}
	return edges
}

// cylinder builds a Y-axis cylinder: a fan for each cap and two triangles per side
func cylinder(center geometry.Vector3, r, h float64, n int) []geometry.Triangle {
	bottom := center.Sub(geometry.NewVector3(0, h/2, 0))
	top := center.Add(geometry.NewVector3(0, h/2, 0))

	ring := func(base geometry.Vector3, i int) geometry.Vector3 {
		a := 2 * math.Pi * float64(i%n) / float64(n)
		return base.Add(geometry.NewVector3(r*math.Cos(a), 0, -r*math.Sin(a)))
	}

	tris := make([]geometry.Triangle, 0, n*4)
	for i := 0; i < n; i++ {
		b1, b2 := ring(bottom, i), ring(bottom, i+1)
		t1, t2 := ring(top, i), ring(top, i+1)

		tris = append(tris,
			geometry.NewTriangle(bottom, b2, b1),
			geometry.NewTriangle(top, t1, t2),
			geometry.NewTriangle(b1, b2, t2),
			geometry.NewTriangle(b1, t2, t1),
		)
	}
	return tris
}

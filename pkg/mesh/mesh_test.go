package mesh

import (
	"math"
	"testing"

	"github.com/philipparndt/standviz/pkg/geometry"
	"github.com/philipparndt/standviz/pkg/stand"
)

func TestBoxMesh(t *testing.T) {
	p := stand.Placement{
		Shape:  stand.Box,
		Size:   geometry.NewVector3(10, 20, 30), // width, depth, height
		Center: geometry.NewVector3(0, 0, 15),
		Edges:  true,
	}

	m := Build(p)
	if len(m.Triangles) != 12 {
		t.Fatalf("expected 12 triangles, got %d", len(m.Triangles))
	}
	if len(m.Edges) != 12 {
		t.Fatalf("expected 12 edges, got %d", len(m.Edges))
	}

	bbox := geometry.NewBoundingBox()
	area := 0.0
	for _, tri := range m.Triangles {
		bbox.Extend(tri.V1)
		bbox.Extend(tri.V2)
		bbox.Extend(tri.V3)
		area += tri.Area()
	}

	// Height ends up on the view's Y axis, depth on Z
	if got := bbox.Size(); got != geometry.NewVector3(10, 30, 20) {
		t.Errorf("view-space size: got %v", got)
	}
	if bbox.Min.Y != 0 {
		t.Errorf("box should sit on the floor, min Y = %v", bbox.Min.Y)
	}

	expectedArea := 2 * (10*20 + 10*30 + 20*30.0)
	if math.Abs(area-expectedArea) > 1e-9 {
		t.Errorf("surface area: expected %v, got %v", expectedArea, area)
	}
}

func TestBoxNormalsPointOutward(t *testing.T) {
	p := stand.Placement{
		Shape:  stand.Box,
		Size:   geometry.NewVector3(4, 4, 4),
		Center: geometry.NewVector3(1, 2, 3),
	}
	center := p.Center.ToView()

	for i, tri := range Build(p).Triangles {
		out := tri.Center().Sub(center)
		if tri.Normal.Dot(out) <= 0 {
			t.Errorf("triangle %d normal %v points inward", i, tri.Normal)
		}
	}
}

func TestBoxWithoutEdges(t *testing.T) {
	p := stand.Placement{Shape: stand.Box, Size: geometry.NewVector3(1, 1, 1)}
	if edges := Build(p).Edges; len(edges) != 0 {
		t.Errorf("expected no edges, got %d", len(edges))
	}
}

func TestCylinderMesh(t *testing.T) {
	p := stand.Placement{
		Shape:  stand.Cylinder,
		Radius: 38,
		Height: 6,
		Center: geometry.NewVector3(45, 0, 162.5),
		Edges:  true,
	}
	center := p.Center.ToView()

	m := Build(p)
	if len(m.Triangles) != CylinderSegments*4 {
		t.Fatalf("expected %d triangles, got %d", CylinderSegments*4, len(m.Triangles))
	}
	if len(m.Edges) != 0 {
		t.Errorf("cylinders have no outline edges")
	}

	for i, tri := range m.Triangles {
		if tri.Normal.Dot(tri.Center().Sub(center)) <= 0 {
			t.Errorf("triangle %d normal %v points inward", i, tri.Normal)
		}
		for _, v := range []geometry.Vector3{tri.V1, tri.V2, tri.V3} {
			if math.Abs(v.Y-center.Y) > 3+1e-9 {
				t.Fatalf("vertex %v outside cylinder height", v)
			}
			r := math.Hypot(v.X-center.X, v.Z-center.Z)
			if r > 38+1e-9 {
				t.Fatalf("vertex %v outside cylinder radius", v)
			}
		}
	}
}

func TestStandMeshes(t *testing.T) {
	total := 0
	for _, p := range stand.Build(stand.DefaultParams()) {
		m := Build(p)
		if len(m.Triangles) == 0 {
			t.Fatalf("%s produced no triangles", p.Part)
		}
		if p.Part == stand.PartSwitch && len(m.Edges) != 0 {
			t.Errorf("switch outline should not draw edges")
		}
		total += len(m.Triangles)
	}

	// 20 boxes and 2 cylinders
	want := 20*12 + 2*CylinderSegments*4
	if total != want {
		t.Errorf("expected %d triangles, got %d", want, total)
	}
}

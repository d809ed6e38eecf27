package mesh

import (
	"math"
	"testing"

	"github.com/philipparndt/standviz/pkg/geometry"
	"github.com/philipparndt/standviz/pkg/stand"
)

func TestMeasureBox(t *testing.T) {
	p := stand.Placement{
		Shape:  stand.Box,
		Size:   geometry.NewVector3(10, 20, 30),
		Center: geometry.NewVector3(0, 0, 15),
		Edges:  true,
	}

	s := Measure([]stand.Placement{p})
	if s.Triangles != 12 || s.OutlineEdges != 12 {
		t.Errorf("expected 12 triangles and 12 edges, got %d and %d", s.Triangles, s.OutlineEdges)
	}
	if math.Abs(s.SurfaceArea-2200) > 1e-9 {
		t.Errorf("expected surface area 2200, got %f", s.SurfaceArea)
	}
	if s.MinEdgeLength != 10 {
		t.Errorf("expected shortest edge 10, got %f", s.MinEdgeLength)
	}
	if math.Abs(s.MaxEdgeLength-math.Sqrt(20*20+30*30)) > 1e-9 {
		t.Errorf("expected the longest face diagonal, got %f", s.MaxEdgeLength)
	}
	if s.AvgEdgeLength <= s.MinEdgeLength || s.AvgEdgeLength >= s.MaxEdgeLength {
		t.Errorf("average %f outside [min, max]", s.AvgEdgeLength)
	}
}

func TestMeasureEmpty(t *testing.T) {
	if s := Measure(nil); s != (Stats{}) {
		t.Errorf("expected zero stats, got %+v", s)
	}
}

func TestMeasureStand(t *testing.T) {
	with := Measure(stand.Build(stand.DefaultParams()))

	p := stand.DefaultParams()
	p.ShowSwitch = false
	without := Measure(stand.Build(p))

	if with.Triangles-without.Triangles != 12 {
		t.Errorf("the switch outline should add one box, got %d triangles", with.Triangles-without.Triangles)
	}
	if with.SurfaceArea <= without.SurfaceArea {
		t.Error("the switch outline should add surface area")
	}
}

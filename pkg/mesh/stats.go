package mesh

import (
	"math"

	"github.com/philipparndt/standviz/pkg/stand"
)

// Stats are tessellation measures of a placement list
type Stats struct {
	Triangles     int
	OutlineEdges  int
	SurfaceArea   float64 // mm², sum over every placement
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
}

// Measure tessellates every placement and collects triangle and edge statistics
func Measure(placements []stand.Placement) Stats {
	var s Stats
	minLength := math.MaxFloat64
	totalLength := 0.0
	edgeCount := 0

	for _, p := range placements {
		m := Build(p)
		s.Triangles += len(m.Triangles)
		s.OutlineEdges += len(m.Edges)

		for _, tri := range m.Triangles {
			s.SurfaceArea += tri.Area()
			for _, length := range [3]float64{
				tri.V1.Distance(tri.V2),
				tri.V2.Distance(tri.V3),
				tri.V3.Distance(tri.V1),
			} {
				totalLength += length
				edgeCount++
				minLength = math.Min(minLength, length)
				s.MaxEdgeLength = math.Max(s.MaxEdgeLength, length)
			}
		}
	}

	if edgeCount > 0 {
		s.MinEdgeLength = minLength
		s.AvgEdgeLength = totalLength / float64(edgeCount)
	}
	return s
}

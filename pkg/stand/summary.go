package stand

import (
	"fmt"
	"sort"

	"github.com/philipparndt/standviz/pkg/geometry"
)

// PartCount is the number of placements of one part
type PartCount struct {
	Part  Part
	Count int
}

// Summary contains the overall measures of a built stand
type Summary struct {
	BoundingBox geometry.BoundingBox
	Dimensions  geometry.Vector3
	Primitives  int
	Parts       []PartCount // in first-emitted order
	SeatHeight  float64     // height the switch rests at (top of the lips)
}

// Summarize measures a placement list as returned by Build
func Summarize(placements []Placement) *Summary {
	s := &Summary{
		BoundingBox: geometry.NewBoundingBox(),
		Primitives:  len(placements),
	}

	index := make(map[Part]int)
	for _, p := range placements {
		if p.Part != PartSwitch {
			s.BoundingBox.Union(p.Bounds())
		}

		i, ok := index[p.Part]
		if !ok {
			i = len(s.Parts)
			index[p.Part] = i
			s.Parts = append(s.Parts, PartCount{Part: p.Part})
		}
		s.Parts[i].Count++

		if p.Part == PartLip {
			s.SeatHeight = p.Bounds().Max.Z
		}
	}

	if !s.BoundingBox.IsEmpty() {
		s.Dimensions = s.BoundingBox.Size()
	}
	return s
}

// PartsByCount returns the part counts sorted by descending count, then name
func (s *Summary) PartsByCount() []PartCount {
	out := make([]PartCount, len(s.Parts))
	copy(out, s.Parts)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Part < out[j].Part
	})
	return out
}

// FormatVector formats a vector with millimetre precision
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f)", v.X, v.Y, v.Z)
}

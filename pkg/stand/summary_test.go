package stand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeDefaults(t *testing.T) {
	p := DefaultParams()
	s := Summarize(Build(p))

	assert.Equal(t, 22, s.Primitives)
	assert.Equal(t, PartCount{Part: PartRail, Count: 2}, s.Parts[0])
	assert.Equal(t, PartCount{Part: PartSwitch, Count: 1}, s.Parts[len(s.Parts)-1])

	// Footprint spans the platform; the outline is excluded from the extent
	d := Derive(p)
	assert.InDelta(t, d.PlatformWidth, s.Dimensions.X, 1e-9)
	assert.InDelta(t, 0, s.BoundingBox.Min.Z, 1e-9)
	assert.InDelta(t, d.CradleZ+p.WallHeight, s.BoundingBox.Max.Z, 1e-9)

	assert.InDelta(t, d.CradleZ+Wall, s.SeatHeight, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, 0, s.Primitives)
	assert.Empty(t, s.Parts)
	assert.Equal(t, 0.0, s.Dimensions.X)
}

func TestPartsByCount(t *testing.T) {
	s := Summarize(Build(DefaultParams()))
	sorted := s.PartsByCount()

	assert.Equal(t, 4, sorted[0].Count)
	assert.Equal(t, PartPost, sorted[0].Part) // "corner post" < "leg"
	assert.Equal(t, PartLeg, sorted[1].Part)
	assert.Equal(t, 1, sorted[len(sorted)-1].Count)
}

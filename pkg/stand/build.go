package stand

import (
	"image/color"

	"github.com/philipparndt/standviz/pkg/geometry"
)

// Physical constants of the USW-Pro-XG-8-PoE and the printed stand, in mm
const (
	SwitchWidth     = 210.4
	SwitchThickness = 43.7
	SwitchHeight    = 173.8

	FanSize = 80.0
	FanGap  = 10.0

	RailDepth  = 8.0
	RailOffset = 59.0
	RailHeight = 4.0

	FloorClearance = 155.0
	ShelfZ         = 165.0
	ShelfThickness = 5.0

	Wall      = 4.0
	Clearance = 1.5
	LegWidth  = 30.0
	LegInset  = 4.0
	PostSize  = 8.0

	BraceWidth  = 4.0
	BraceHeight = 10.0

	EndStopHeight   = 8.0
	CradleOverhang  = 10.0
	PlatformMargin  = 16.0
	PlatformOverlap = 20.0

	fanHoleInset = 2.0
)

// Shape is the primitive kind of a placement
type Shape int

const (
	Box Shape = iota
	Cylinder
)

func (s Shape) String() string {
	if s == Cylinder {
		return "cylinder"
	}
	return "box"
}

// Part names the stand component a placement belongs to
type Part string

const (
	PartRail    Part = "floor rail"
	PartLeg     Part = "leg"
	PartBrace   Part = "brace"
	PartShelf   Part = "fan shelf"
	PartFanHole Part = "fan hole"
	PartPost    Part = "corner post"
	PartWall    Part = "cradle wall"
	PartLip     Part = "lip"
	PartEndStop Part = "end stop"
	PartSwitch  Part = "switch outline"
)

// Part colors
var (
	ColorLegs   = color.NRGBA{R: 0x46, G: 0x82, B: 0xB4, A: 0xFF}
	ColorShelf  = color.NRGBA{R: 0xE8, G: 0x92, B: 0x2A, A: 0xFF}
	ColorPosts  = color.NRGBA{R: 0xD4, G: 0x83, B: 0x1F, A: 0xFF}
	ColorCradle = color.NRGBA{R: 0xE8, G: 0x92, B: 0x2A, A: 0xFF}
	ColorLip    = color.NRGBA{R: 0xFF, G: 0x6B, B: 0x35, A: 0xFF}
	ColorFan    = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF}
	ColorSwitch = color.NRGBA{R: 100, G: 200, B: 100, A: 64} // 25% opacity
)

// Placement is one renderable primitive with its full pose and appearance.
//
// Coordinates are in model space: X along the switch width, Y along its
// thickness (front to back), Z up. Center is the geometric center of the
// primitive. Boxes use Size; cylinders use Radius and Height with their axis
// along Z.
type Placement struct {
	Part   Part
	Shape  Shape
	Size   geometry.Vector3
	Radius float64
	Height float64
	Center geometry.Vector3
	Color  color.NRGBA
	Edges  bool
}

// Translucent reports whether the placement is drawn see-through
func (p Placement) Translucent() bool {
	return p.Color.A < 0xFF
}

// Bounds returns the axis-aligned extent of the placement in model space
func (p Placement) Bounds() geometry.BoundingBox {
	if p.Shape == Cylinder {
		return geometry.BoxAround(p.Center, geometry.NewVector3(2*p.Radius, 2*p.Radius, p.Height))
	}
	return geometry.BoxAround(p.Center, p.Size)
}

// Bottom returns the lowest Z of the placement
func (p Placement) Bottom() float64 {
	return p.Bounds().Min.Z
}

// Dimensions are the scalar measures derived from Params and the constants
type Dimensions struct {
	SlotWidth     float64 // inner width of the cradle slot
	PlatformWidth float64
	PlatformDepth float64
	LegX          float64 // |x| of the leg centers
	BraceZ        float64 // bottom of the cross braces
	FanX          float64 // |x| of the fan centers
	CradleZ       float64 // bottom of the cradle
	CradleWidth   float64
	WallY         float64 // |y| of the cradle wall centers
	LipY          float64 // |y| of the lip centers
	EndStopX      float64 // |x| of the end stop centers
}

// Derive computes the dimensions for a parameter set
func Derive(p Params) Dimensions {
	slot := SwitchThickness + Clearance*2
	platW := SwitchWidth + PlatformMargin
	return Dimensions{
		SlotWidth:     slot,
		PlatformWidth: platW,
		PlatformDepth: FanSize + PlatformOverlap,
		LegX:          platW/2 - LegWidth/2 - LegInset,
		BraceZ:        FloorClearance + (ShelfZ-ShelfThickness-FloorClearance)/2,
		FanX:          FanSize/2 + FanGap/2,
		CradleZ:       ShelfZ + ShelfThickness + p.CableGap,
		CradleWidth:   SwitchWidth + CradleOverhang,
		WallY:         slot/2 + Wall/2,
		LipY:          slot/2 - p.LipSize/2,
		EndStopX:      SwitchWidth/2 + Clearance + Wall/2,
	}
}

// builder accumulates placements in emission order
type builder struct {
	out []Placement
}

// box places a box whose footprint is centred on (x, y) and whose bottom sits at z
func (b *builder) box(part Part, w, d, h float64, c color.NRGBA, x, y, z float64) {
	b.out = append(b.out, Placement{
		Part:   part,
		Shape:  Box,
		Size:   geometry.NewVector3(w, d, h),
		Center: geometry.NewVector3(x, y, z+h/2),
		Color:  c,
		Edges:  c.A == 0xFF,
	})
}

// cylinder places a vertical cylinder centred on (x, y) with its bottom at z
func (b *builder) cylinder(part Part, r, h float64, c color.NRGBA, x, y, z float64) {
	b.out = append(b.out, Placement{
		Part:   part,
		Shape:  Cylinder,
		Radius: r,
		Height: h,
		Center: geometry.NewVector3(x, y, z+h/2),
		Color:  c,
	})
}

// Count returns how many placements Build emits for p
func Count(p Params) int {
	n := 21
	if p.ShowSwitch {
		n++
	}
	return n
}

// Build returns the ordered placements of the stand for p.
// The result is a fresh slice; callers own it.
func Build(p Params) []Placement {
	d := Derive(p)
	b := &builder{out: make([]Placement, 0, Count(p))}
	sides := [2]float64{-1, 1}

	for _, s := range sides {
		b.box(PartRail, d.PlatformWidth, RailDepth, RailHeight, ColorLegs, 0, s*RailOffset, 0)
	}

	for _, lx := range [2]float64{-d.LegX, d.LegX} {
		for _, s := range sides {
			b.box(PartLeg, LegWidth, RailDepth, FloorClearance, ColorLegs, lx, s*RailOffset, 0)
		}
	}

	for _, lx := range [2]float64{-d.LegX, d.LegX} {
		b.box(PartBrace, BraceWidth, RailOffset*2, BraceHeight, ColorShelf, lx, 0, d.BraceZ)
	}

	b.box(PartShelf, d.PlatformWidth, d.PlatformDepth, ShelfThickness, ColorShelf, 0, 0, ShelfZ-ShelfThickness)

	// Fan holes poke half a millimetre through both faces of the shelf
	for _, s := range sides {
		b.cylinder(PartFanHole, FanSize/2-fanHoleInset, ShelfThickness+1, ColorFan, s*d.FanX, 0, ShelfZ-ShelfThickness-0.5)
	}

	for _, dx := range sides {
		for _, dy := range sides {
			b.box(PartPost, PostSize, PostSize, p.CableGap, ColorPosts, dx*SwitchWidth/2, dy*d.WallY, ShelfZ)
		}
	}

	// Front wall, then back wall
	for _, s := range sides {
		b.box(PartWall, d.CradleWidth, Wall, p.WallHeight, ColorCradle, 0, s*d.WallY, d.CradleZ)
	}

	for _, s := range sides {
		b.box(PartLip, d.CradleWidth, p.LipSize, Wall, ColorLip, 0, s*d.LipY, d.CradleZ)
	}

	for _, dx := range sides {
		b.box(PartEndStop, Wall, d.SlotWidth+Wall*2, EndStopHeight, ColorCradle, dx*d.EndStopX, 0, d.CradleZ)
	}

	if p.ShowSwitch {
		b.box(PartSwitch, SwitchWidth, SwitchThickness, SwitchHeight, ColorSwitch, 0, 0, d.CradleZ+Wall)
	}

	return b.out
}

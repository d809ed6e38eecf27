// Package stand builds the parametric model of the switch cooling stand.
//
// The model is produced by Build as a flat, ordered list of box and cylinder
// placements. Every dimension is derived from Params and the fixed constants
// in this package; nothing else influences the result.
package stand

import (
	"fmt"
	"math"
)

// ParamID identifies one of the adjustable numeric parameters
type ParamID int

const (
	CableGap ParamID = iota
	LipSize
	WallHeight
)

// ParamIDs lists the numeric parameters in panel order
var ParamIDs = []ParamID{CableGap, LipSize, WallHeight}

// String returns the label used by the UI and CLI
func (id ParamID) String() string {
	switch id {
	case CableGap:
		return "Cable gap"
	case LipSize:
		return "Lip size"
	case WallHeight:
		return "Wall height"
	default:
		return fmt.Sprintf("ParamID(%d)", int(id))
	}
}

// Range is the valid interval of a numeric parameter in millimetres
type Range struct {
	Min  float64
	Max  float64
	Step float64
}

// Clamp limits v to the range
func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

// Contains reports whether v lies inside the range
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Normalize maps v to 0..1 within the range (sliders)
func (r Range) Normalize(v float64) float64 {
	return (r.Clamp(v) - r.Min) / (r.Max - r.Min)
}

// Denormalize maps a 0..1 slider position back to a value snapped to Step
func (r Range) Denormalize(t float64) float64 {
	v := r.Min + math.Max(0, math.Min(1, t))*(r.Max-r.Min)
	if r.Step > 0 {
		v = r.Min + math.Round((v-r.Min)/r.Step)*r.Step
	}
	return r.Clamp(v)
}

// RangeOf returns the valid range of a parameter
func RangeOf(id ParamID) Range {
	switch id {
	case CableGap:
		return Range{Min: 20, Max: 80, Step: 1}
	case LipSize:
		return Range{Min: 5, Max: 20, Step: 1}
	case WallHeight:
		return Range{Min: 30, Max: 120, Step: 1}
	default:
		panic(fmt.Sprintf("stand: unknown parameter %d", int(id)))
	}
}

// Params is the complete user-adjustable input of the geometry builder
type Params struct {
	CableGap   float64 `yaml:"cable_gap"`   // clearance between fan shelf and cradle
	LipSize    float64 `yaml:"lip_size"`    // depth of the retaining lips
	WallHeight float64 `yaml:"wall_height"` // height of the cradle walls
	ShowSwitch bool    `yaml:"show_switch"` // draw the translucent switch outline
}

// DefaultParams returns the parameters the viewer starts with
func DefaultParams() Params {
	return Params{
		CableGap:   50,
		LipSize:    10,
		WallHeight: 70,
		ShowSwitch: true,
	}
}

// Get returns the value of a numeric parameter
func (p Params) Get(id ParamID) float64 {
	switch id {
	case CableGap:
		return p.CableGap
	case LipSize:
		return p.LipSize
	case WallHeight:
		return p.WallHeight
	}
	return 0
}

// With returns a copy of p with one numeric parameter set, clamped to its range
func (p Params) With(id ParamID, value float64) Params {
	value = RangeOf(id).Clamp(value)
	switch id {
	case CableGap:
		p.CableGap = value
	case LipSize:
		p.LipSize = value
	case WallHeight:
		p.WallHeight = value
	}
	return p
}

// Clamp returns p with every numeric parameter forced into its range
func (p Params) Clamp() Params {
	for _, id := range ParamIDs {
		p = p.With(id, p.Get(id))
	}
	return p
}

// Validate reports the first parameter outside its range
func (p Params) Validate() error {
	for _, id := range ParamIDs {
		r := RangeOf(id)
		if v := p.Get(id); !r.Contains(v) {
			return fmt.Errorf("%s %.1fmm outside [%g, %g]", id, v, r.Min, r.Max)
		}
	}
	return nil
}

// String formats the parameters the way the viewer caption shows them
func (p Params) String() string {
	return fmt.Sprintf("cable gap %gmm, lip %gmm, wall %gmm, switch %t",
		p.CableGap, p.LipSize, p.WallHeight, p.ShowSwitch)
}

package app

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/standviz/pkg/scene"
	"github.com/philipparndt/standviz/pkg/stand"
)

const (
	sliderWidth        = 200.0
	sliderHeight       = 8.0
	sliderHandleRadius = 6.0
	sliderSpacing      = 40.0
	panelPadding       = 15.0
	panelTitleHeight   = 30.0
	panelWidth         = 320.0
	panelHeight        = 210.0
	toggleSize         = 16.0
)

var sliderColors = [3]rl.Color{
	rl.NewColor(80, 160, 255, 255),
	rl.NewColor(255, 170, 60, 255),
	rl.NewColor(120, 220, 120, 255),
}

// panelLayout is the screen geometry of the parameter panel
type panelLayout struct {
	bounds  rl.Rectangle
	labels  [3]rl.Vector2
	tracks  [3]rl.Rectangle
	hits    [3]rl.Rectangle // tracks grown by the handle radius
	toggle  rl.Rectangle
	helpPos rl.Vector2
}

// layoutPanel places the panel in the bottom-right corner
func layoutPanel(screenWidth, screenHeight float32) panelLayout {
	x := screenWidth - panelWidth - 20
	y := screenHeight - panelHeight - 50

	l := panelLayout{bounds: rl.Rectangle{X: x, Y: y, Width: panelWidth, Height: panelHeight}}
	rowY := y + panelTitleHeight + 15
	for i := range l.tracks {
		l.labels[i] = rl.Vector2{X: x + panelPadding, Y: rowY}
		track := rl.Rectangle{X: x + panelPadding, Y: rowY + 18, Width: sliderWidth, Height: sliderHeight}
		l.tracks[i] = track
		l.hits[i] = rl.Rectangle{
			X:      track.X - sliderHandleRadius,
			Y:      track.Y - sliderHandleRadius,
			Width:  track.Width + sliderHandleRadius*2,
			Height: track.Height + sliderHandleRadius*2,
		}
		rowY += sliderSpacing
	}
	l.toggle = rl.Rectangle{X: x + panelPadding, Y: rowY + 2, Width: toggleSize, Height: toggleSize}
	l.helpPos = rl.Vector2{X: x + panelPadding, Y: y + panelHeight - 20}
	return l
}

// sliderValue converts a pointer x position to a parameter value on a track
func sliderValue(x float32, track rl.Rectangle, r stand.Range) float64 {
	t := float64((x - track.X) / track.Width)
	return r.Denormalize(math.Max(0, math.Min(1, t)))
}

// Panel holds the slider interaction state
type Panel struct {
	layout  panelLayout
	active  int // dragged slider, -1 = none
	hovered int
}

// NewPanel creates a panel with no active slider
func NewPanel() *Panel {
	return &Panel{active: -1, hovered: -1}
}

// Contains reports whether the pointer is over the panel
func (p *Panel) Contains(pos rl.Vector2) bool {
	return rl.CheckCollisionPointRec(pos, p.layout.bounds)
}

// Dragging reports whether a slider is being dragged
func (p *Panel) Dragging() bool {
	return p.active >= 0
}

// Update lays out the panel for the screen size and maps pointer input to
// parameter messages
func (p *Panel) Update(in pointerInput, params stand.Params, screenWidth, screenHeight float32) []scene.Message {
	p.layout = layoutPanel(screenWidth, screenHeight)

	p.hovered = -1
	for i, hit := range p.layout.hits {
		if rl.CheckCollisionPointRec(in.pos, hit) {
			p.hovered = i
		}
	}

	var msgs []scene.Message
	if in.pressed {
		if p.hovered >= 0 {
			p.active = p.hovered
		} else if rl.CheckCollisionPointRec(in.pos, p.layout.toggle) {
			msgs = append(msgs, scene.ShowSwitch{Show: !params.ShowSwitch})
		}
	}

	if p.active >= 0 && (in.down || in.pressed) {
		id := stand.ParamIDs[p.active]
		value := sliderValue(in.pos.X, p.layout.tracks[p.active], stand.RangeOf(id))
		if value != params.Get(id) {
			msgs = append(msgs, scene.SetParam{ID: id, Value: value})
		}
	}
	if in.released || !in.onScreen {
		p.active = -1
	}
	return msgs
}

// Draw renders the panel with the current parameters
func (p *Panel) Draw(font rl.Font, params stand.Params) {
	l := p.layout
	rl.DrawRectangleRounded(l.bounds, 0.1, 8, rl.NewColor(20, 25, 35, 230))
	rl.DrawRectangleRoundedLines(l.bounds, 0.1, 8, rl.NewColor(80, 160, 255, 255))

	rl.DrawTextEx(font, "STAND PARAMETERS", rl.Vector2{X: l.bounds.X + panelPadding, Y: l.bounds.Y + 8}, 16, 1, rl.NewColor(100, 200, 255, 255))
	separatorY := l.bounds.Y + panelTitleHeight
	rl.DrawLineEx(
		rl.Vector2{X: l.bounds.X + panelPadding, Y: separatorY},
		rl.Vector2{X: l.bounds.X + l.bounds.Width - panelPadding, Y: separatorY},
		1,
		rl.NewColor(60, 80, 120, 150),
	)

	for i, id := range stand.ParamIDs {
		p.drawSlider(font, i, id.String(), params.Get(id), stand.RangeOf(id))
	}

	toggleColor := rl.NewColor(200, 100, 100, 255)
	if params.ShowSwitch {
		toggleColor = rl.NewColor(100, 255, 100, 255)
		inner := rl.Rectangle{X: l.toggle.X + 4, Y: l.toggle.Y + 4, Width: toggleSize - 8, Height: toggleSize - 8}
		rl.DrawRectangleRec(inner, toggleColor)
	}
	rl.DrawRectangleLinesEx(l.toggle, 1, toggleColor)
	rl.DrawTextEx(font, "Show switch outline", rl.Vector2{X: l.toggle.X + toggleSize + 8, Y: l.toggle.Y}, 14, 1, rl.LightGray)

	rl.DrawTextEx(font, "Drag: rotate | Wheel: zoom | Home: reset", l.helpPos, 10, 1, rl.NewColor(120, 140, 180, 255))
}

// drawSlider renders a single slider
func (p *Panel) drawSlider(font rl.Font, index int, label string, value float64, r stand.Range) {
	track := p.layout.tracks[index]
	color := sliderColors[index]

	rl.DrawTextEx(font, label, p.layout.labels[index], 13, 1, rl.LightGray)
	rl.DrawTextEx(font, fmt.Sprintf("%.0f mm", value), rl.Vector2{X: track.X + track.Width + 15, Y: track.Y - 3}, 13, 1, rl.LightGray)

	trackBg := rl.NewColor(40, 45, 55, 255)
	if p.hovered == index {
		trackBg = rl.NewColor(50, 55, 65, 255)
	}
	rl.DrawRectangleRounded(track, 0.5, 8, trackBg)

	handleX := track.X + float32(r.Normalize(value))*track.Width
	fill := color
	fill.A = 100
	rl.DrawRectangleRounded(rl.Rectangle{X: track.X, Y: track.Y, Width: handleX - track.X, Height: track.Height}, 0.5, 8, fill)

	handleColor := color
	if p.active == index {
		handleColor = rl.White
	} else if p.hovered == index {
		handleColor.R = uint8(math.Min(float64(handleColor.R)+30, 255))
		handleColor.G = uint8(math.Min(float64(handleColor.G)+30, 255))
		handleColor.B = uint8(math.Min(float64(handleColor.B)+30, 255))
	}
	handleY := track.Y + track.Height/2
	rl.DrawCircleV(rl.Vector2{X: handleX, Y: handleY}, sliderHandleRadius, handleColor)
	rl.DrawCircleLines(int32(handleX), int32(handleY), sliderHandleRadius, rl.NewColor(255, 255, 255, 150))
}

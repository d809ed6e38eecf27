package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/standviz/pkg/orbit"
	"github.com/philipparndt/standviz/pkg/scene"
)

// wheelScale converts raylib wheel steps to the scroll delta of one notch
const wheelScale = 100

// pointerInput is the mouse state sampled once per frame
type pointerInput struct {
	pos      rl.Vector2
	pressed  bool
	down     bool
	released bool
	onScreen bool
	wheel    float32
}

// readPointer samples raylib's mouse state
func readPointer() pointerInput {
	return pointerInput{
		pos:      rl.GetMousePosition(),
		pressed:  rl.IsMouseButtonPressed(rl.MouseLeftButton),
		down:     rl.IsMouseButtonDown(rl.MouseLeftButton),
		released: rl.IsMouseButtonReleased(rl.MouseLeftButton),
		onScreen: rl.IsCursorOnScreen(),
		wheel:    rl.GetMouseWheelMove(),
	}
}

// cameraMessages maps one frame of pointer input to camera events.
// Presses over the panel never start a drag.
func cameraMessages(in pointerInput, dragging, overPanel bool) []scene.Message {
	var msgs []scene.Message
	x, y := float64(in.pos.X), float64(in.pos.Y)

	if dragging && !in.onScreen {
		msgs = append(msgs, orbit.Leave())
		dragging = false
	}
	if in.pressed && in.onScreen && !overPanel {
		msgs = append(msgs, orbit.Down(x, y))
		dragging = true
	}
	if dragging && in.down {
		msgs = append(msgs, orbit.Move(x, y))
	}
	if dragging && in.released {
		msgs = append(msgs, orbit.Up())
	}
	if in.wheel != 0 && in.onScreen && !overPanel {
		msgs = append(msgs, orbit.Wheel(-float64(in.wheel)*wheelScale))
	}
	return msgs
}

// keyMessages maps keyboard shortcuts
func keyMessages() []scene.Message {
	if rl.IsKeyPressed(rl.KeyHome) {
		return []scene.Message{scene.ResetCamera{}}
	}
	return nil
}

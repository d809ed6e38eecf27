package orbit

import "fmt"

// EventKind is the type of pointer input
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	PointerLeave
	Scroll
)

func (k EventKind) String() string {
	switch k {
	case PointerDown:
		return "pointer-down"
	case PointerMove:
		return "pointer-move"
	case PointerUp:
		return "pointer-up"
	case PointerLeave:
		return "pointer-leave"
	case Scroll:
		return "scroll"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one pointer or scroll input in surface coordinates
type Event struct {
	Kind   EventKind
	X, Y   float64 // pointer position (down/move)
	DeltaY float64 // scroll amount, positive zooms out
}

// Down, Move, Up, Leave and Wheel build events

func Down(x, y float64) Event { return Event{Kind: PointerDown, X: x, Y: y} }
func Move(x, y float64) Event { return Event{Kind: PointerMove, X: x, Y: y} }
func Up() Event               { return Event{Kind: PointerUp} }
func Leave() Event            { return Event{Kind: PointerLeave} }
func Wheel(deltaY float64) Event {
	return Event{Kind: Scroll, DeltaY: deltaY}
}

// Handle applies an event and reports whether the pose changed
func (c *Controller) Handle(ev Event) bool {
	switch ev.Kind {
	case PointerDown:
		c.PointerDown(ev.X, ev.Y)
	case PointerMove:
		return c.PointerMove(ev.X, ev.Y)
	case PointerUp:
		c.PointerUp()
	case PointerLeave:
		c.PointerLeave()
	case Scroll:
		return c.Scroll(ev.DeltaY)
	}
	return false
}

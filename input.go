package pageflow

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// PointerKind classifies a pointer event.
type PointerKind uint8

const (
	PointerDown PointerKind = iota
	PointerUp
	PointerMove
	PointerWheel
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerUp:
		return "up"
	case PointerMove:
		return "move"
	case PointerWheel:
		return "wheel"
	default:
		return "unknown"
	}
}

// PointerEvent is a mouse or touch event in screen coordinates. Elements
// receive it in the same coordinate space as the bounds they are drawn into.
type PointerEvent struct {
	Kind           PointerKind
	X, Y           float64
	WheelX, WheelY float64
	Button         MouseButton
}

// Translate returns the event shifted by (dx, dy).
func (e PointerEvent) Translate(dx, dy float64) PointerEvent {
	e.X += dx
	e.Y += dy
	return e
}

// Handler is implemented by elements that react to pointer input. It
// returns true when the event was captured, which stops propagation to
// elements underneath.
type Handler interface {
	HandlePointer(ev PointerEvent, bounds Rect, st *LayerState, sh *Shell) bool
}

// Shell collects messages published while an event propagates.
type Shell struct {
	msgs []any
}

// Publish queues msg for delivery to the app.
func (s *Shell) Publish(msg any) {
	s.msgs = append(s.msgs, msg)
}

// Len returns the number of queued messages.
func (s *Shell) Len() int { return len(s.msgs) }

// Reset drops queued messages, keeping the buffer.
func (s *Shell) Reset() { s.msgs = s.msgs[:0] }

// Messages returns the queued messages of type M. Messages of any other type
// are logged and dropped.
func Messages[M any](s *Shell) []M {
	if len(s.msgs) == 0 {
		return nil
	}
	out := make([]M, 0, len(s.msgs))
	for _, m := range s.msgs {
		v, ok := m.(M)
		if !ok {
			Logger().Warn("dropping message of unexpected type", slog.Any("msg", m))
			continue
		}
		out = append(out, v)
	}
	return out
}

// dispatch forwards ev to el if it handles pointer input.
func dispatch(el Element, ev PointerEvent, bounds Rect, st *LayerState, sh *Shell) bool {
	h, ok := el.(Handler)
	if !ok {
		return false
	}
	return h.HandlePointer(ev, bounds, st, sh)
}

// --- Polling ---

// pointerInput turns per-frame ebiten input state into PointerEvents. The
// primary touch is treated like the left mouse button.
type pointerInput struct {
	down    bool
	lastX   float64
	lastY   float64
	button  MouseButton
	touchID ebiten.TouchID
	touch   bool

	touchIDs []ebiten.TouchID
	events   []PointerEvent
}

// poll reads ebiten's input state. Only valid inside ebiten's Update.
func (p *pointerInput) poll() []PointerEvent {
	p.events = p.events[:0]

	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	if len(p.touchIDs) > 0 || p.touch {
		var (
			pressed bool
			x, y    = p.lastX, p.lastY
		)
		for _, id := range p.touchIDs {
			if !p.touch || id == p.touchID {
				p.touch = true
				p.touchID = id
				pressed = true
				tx, ty := ebiten.TouchPosition(id)
				x, y = float64(tx), float64(ty)
				break
			}
		}
		p.step(x, y, pressed, MouseButtonLeft)
		if !pressed {
			p.touch = false
		}
		return p.events
	}

	mx, my := ebiten.CursorPosition()
	var (
		pressed bool
		button  MouseButton
	)
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		pressed, button = true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		pressed, button = true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		pressed, button = true, MouseButtonMiddle
	}
	p.step(float64(mx), float64(my), pressed, button)

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		p.events = append(p.events, PointerEvent{Kind: PointerWheel, X: float64(mx), Y: float64(my), WheelX: wx, WheelY: wy})
	}
	return p.events
}

// step appends the events implied by moving from the previous sample to
// (x, y, pressed).
func (p *pointerInput) step(x, y float64, pressed bool, button MouseButton) {
	moved := x != p.lastX || y != p.lastY
	switch {
	case pressed && !p.down:
		p.button = button
		p.events = append(p.events, PointerEvent{Kind: PointerDown, X: x, Y: y, Button: button})
	case !pressed && p.down:
		p.events = append(p.events, PointerEvent{Kind: PointerUp, X: x, Y: y, Button: p.button})
	case moved:
		p.events = append(p.events, PointerEvent{Kind: PointerMove, X: x, Y: y, Button: p.button})
	}
	p.down = pressed
	p.lastX, p.lastY = x, y
}

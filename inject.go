package pageflow

// Injected events use screen coordinates, matching what appears in
// screenshots, and are routed exactly like real mouse input.

// PressEvent is a left-button press at (x, y).
func PressEvent(x, y float64) PointerEvent {
	return PointerEvent{Kind: PointerDown, X: x, Y: y, Button: MouseButtonLeft}
}

// MoveEvent is a pointer move to (x, y) with the left button held.
func MoveEvent(x, y float64) PointerEvent {
	return PointerEvent{Kind: PointerMove, X: x, Y: y, Button: MouseButtonLeft}
}

// ReleaseEvent is a left-button release at (x, y).
func ReleaseEvent(x, y float64) PointerEvent {
	return PointerEvent{Kind: PointerUp, X: x, Y: y, Button: MouseButtonLeft}
}

// WheelEvent is a vertical wheel step at (x, y).
func WheelEvent(x, y, dy float64) PointerEvent {
	return PointerEvent{Kind: PointerWheel, X: x, Y: y, WheelY: dy}
}

// ClickEvents is a press followed by a release at the same point.
func ClickEvents(x, y float64) []PointerEvent {
	return []PointerEvent{PressEvent(x, y), ReleaseEvent(x, y)}
}

// DragEvents is a press at the start, linearly interpolated moves and a
// release at the end. The sequence spans frames events, minimum 2.
func DragEvents(fromX, fromY, toX, toY float64, frames int) []PointerEvent {
	if frames < 2 {
		frames = 2
	}
	events := make([]PointerEvent, 0, frames)
	events = append(events, PressEvent(fromX, fromY))
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		events = append(events, MoveEvent(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t))
	}
	return append(events, ReleaseEvent(toX, toY))
}

// inject queues synthetic pointer events, consumed one per frame. While the
// queue is non-empty real pointer input is ignored.
func (g *game[M]) inject(events ...PointerEvent) {
	g.injectQueue = append(g.injectQueue, events...)
}

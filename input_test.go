package pageflow

import (
	"bytes"
	"testing"
)

func TestPointerStep(t *testing.T) {
	var p pointerInput

	p.step(10, 10, false, MouseButtonLeft)
	if len(p.events) != 1 || p.events[0].Kind != PointerMove {
		t.Fatalf("first sample = %+v, want a move", p.events)
	}

	p.events = p.events[:0]
	p.step(10, 10, true, MouseButtonRight)
	if len(p.events) != 1 || p.events[0].Kind != PointerDown || p.events[0].Button != MouseButtonRight {
		t.Fatalf("press = %+v", p.events)
	}

	p.events = p.events[:0]
	p.step(20, 15, true, MouseButtonRight)
	if len(p.events) != 1 || p.events[0].Kind != PointerMove || p.events[0].X != 20 {
		t.Fatalf("drag = %+v", p.events)
	}

	p.events = p.events[:0]
	p.step(20, 15, false, MouseButtonLeft)
	if len(p.events) != 1 || p.events[0].Kind != PointerUp || p.events[0].Button != MouseButtonRight {
		t.Fatalf("release = %+v, want up with the pressed button", p.events)
	}

	p.events = p.events[:0]
	p.step(20, 15, false, MouseButtonLeft)
	if len(p.events) != 0 {
		t.Errorf("idle sample produced %+v", p.events)
	}
}

func TestPointerKindString(t *testing.T) {
	tests := map[PointerKind]string{
		PointerDown:     "down",
		PointerUp:       "up",
		PointerMove:     "move",
		PointerWheel:    "wheel",
		PointerKind(42): "unknown",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
}

func TestPointerTranslate(t *testing.T) {
	ev := PressEvent(10, 20).Translate(-5, 5)
	if ev.X != 5 || ev.Y != 25 || ev.Kind != PointerDown {
		t.Errorf("translated = %+v", ev)
	}
}

func TestMessagesFiltersType(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	defer SetLogOutput(nil)

	var sh Shell
	sh.Publish("a")
	sh.Publish(7)
	sh.Publish("b")
	got := Messages[string](&sh)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("messages = %v, want [a b]", got)
	}
	if !bytes.Contains(buf.Bytes(), []byte("unexpected type")) {
		t.Errorf("dropped message not logged: %q", buf.String())
	}

	sh.Reset()
	if sh.Len() != 0 || Messages[string](&sh) != nil {
		t.Error("reset shell should be empty")
	}
}

func TestDispatchNonHandler(t *testing.T) {
	var sh Shell
	if dispatch(Box{}, PressEvent(0, 0), screen, nil, &sh) {
		t.Error("a Box does not handle input")
	}
}

package pageflow

import (
	"testing"
)

// fakeProgram is a Program whose view and messages are set by the test.
type fakeProgram struct {
	view     Element
	updates  []string
	advances int
	reply    func(m string) Task[string]
}

func (p *fakeProgram) Update(m string) Task[string] {
	p.updates = append(p.updates, m)
	if p.reply != nil {
		return p.reply(m)
	}
	return None[string]()
}

func (p *fakeProgram) Advance() bool {
	p.advances++
	return false
}

func (p *fakeProgram) View() Element {
	if p.view == nil {
		return Box{}
	}
	return p.view
}

func newTestGame(t *testing.T, p *fakeProgram) *game[string] {
	t.Helper()
	g := newGame[string](p, RunConfig[string]{Width: 400, Height: 800, Logger: quietLogger()})
	g.poll = func() []PointerEvent { return nil }
	g.root = p.View()
	t.Cleanup(g.close)
	return g
}

func TestDragEvents(t *testing.T) {
	ev := DragEvents(0, 0, 100, 50, 6)
	if len(ev) != 6 {
		t.Fatalf("len = %d, want 6", len(ev))
	}
	if ev[0].Kind != PointerDown || ev[5].Kind != PointerUp {
		t.Errorf("first %v last %v", ev[0].Kind, ev[5].Kind)
	}
	for i := 1; i < 5; i++ {
		if ev[i].Kind != PointerMove {
			t.Errorf("event %d kind = %v", i, ev[i].Kind)
		}
	}
	if ev[1].X != 20 || ev[1].Y != 10 || ev[4].X != 80 {
		t.Errorf("interpolation wrong: %+v", ev)
	}
	if ev[5].X != 100 || ev[5].Y != 50 {
		t.Errorf("release at %v,%v", ev[5].X, ev[5].Y)
	}
}

func TestDragEventsMinimum(t *testing.T) {
	ev := DragEvents(0, 0, 10, 10, 0)
	if len(ev) != 2 || ev[0].Kind != PointerDown || ev[1].Kind != PointerUp {
		t.Errorf("events = %+v", ev)
	}
}

func TestInjectClick(t *testing.T) {
	p := &fakeProgram{view: NewButton[string](Box{}, "pressed")}
	g := newTestGame(t, p)

	g.inject(ClickEvents(50, 50)...)
	if len(g.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(g.injectQueue))
	}

	// Frame 1: press
	g.Update()
	if len(g.injectQueue) != 1 {
		t.Fatalf("expected 1 remaining event, got %d", len(g.injectQueue))
	}
	if len(p.updates) != 0 {
		t.Error("press should not publish")
	}

	// Frame 2: release
	g.Update()
	if len(g.injectQueue) != 0 {
		t.Fatalf("expected empty queue, got %d", len(g.injectQueue))
	}
	if len(p.updates) != 1 || p.updates[0] != "pressed" {
		t.Errorf("updates = %v, want [pressed]", p.updates)
	}
	if p.advances != 2 {
		t.Errorf("advances = %d, want 2", p.advances)
	}
}

func TestInjectedEventsShadowPolling(t *testing.T) {
	p := &fakeProgram{view: NewButton[string](Box{}, "pressed")}
	g := newTestGame(t, p)
	polled := 0
	g.poll = func() []PointerEvent {
		polled++
		return nil
	}

	g.inject(PressEvent(1, 1))
	g.Update()
	if polled != 0 {
		t.Error("polling should be skipped while injected events are queued")
	}
	g.Update()
	if polled != 1 {
		t.Errorf("polled = %d, want 1", polled)
	}
}

func TestGameDeliversTaskMessages(t *testing.T) {
	p := &fakeProgram{}
	p.reply = func(m string) Task[string] {
		if m == "ping" {
			return Done("pong")
		}
		return None[string]()
	}
	g := newTestGame(t, p)
	g.sched.Submit(Done("ping"))
	g.sched.Wait()

	g.Update()
	g.sched.Wait()
	g.Update()
	if len(p.updates) != 2 || p.updates[0] != "ping" || p.updates[1] != "pong" {
		t.Errorf("updates = %v, want [ping pong]", p.updates)
	}
}

// scriptedSteps is a Stepper replaying fixed steps.
type scriptedSteps struct {
	steps []ScriptStep[string]
}

func (s *scriptedSteps) Step() ScriptStep[string] {
	if len(s.steps) == 0 {
		return ScriptStep[string]{}
	}
	st := s.steps[0]
	s.steps = s.steps[1:]
	return st
}

func (s *scriptedSteps) Done() bool { return len(s.steps) == 0 }

func TestGameScriptTerminates(t *testing.T) {
	p := &fakeProgram{view: NewButton[string](Box{}, "pressed")}
	g := newTestGame(t, p)
	g.script = &scriptedSteps{steps: []ScriptStep[string]{
		{Events: ClickEvents(10, 10)},
	}}

	var err error
	frames := 0
	for err == nil && frames < 10 {
		err = g.Update()
		frames++
	}
	if err == nil {
		t.Fatal("script never terminated")
	}
	if len(p.updates) != 1 {
		t.Errorf("updates = %v, want one press", p.updates)
	}
}

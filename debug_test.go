package pageflow

import (
	"strings"
	"testing"
	"time"
)

func TestDebugOverlayText(t *testing.T) {
	calls := 0
	o := NewDebugOverlay(func() string {
		calls++
		return "page: Home"
	})
	now := time.Now()
	s := o.Text(now)
	lines := strings.Split(s, "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "FPS: ") || lines[1] != "page: Home" {
		t.Errorf("text = %q", s)
	}
	if calls != 1 {
		t.Errorf("info called %d times", calls)
	}

	if got := NewDebugOverlay(nil).Text(now); strings.Contains(got, "\n") {
		t.Errorf("nil info should add no lines, got %q", got)
	}
}

func TestFPSCounterRefresh(t *testing.T) {
	var c fpsCounter
	now := time.Now()
	first := c.line(now)
	c.text = "cached"
	if got := c.line(now.Add(fpsRefresh / 2)); got != "cached" {
		t.Errorf("line refreshed too early: %q", got)
	}
	if got := c.line(now.Add(fpsRefresh)); got == "cached" || got != first {
		t.Errorf("line = %q, want a fresh %q", got, first)
	}
}

func TestNavigatorDebugInfo(t *testing.T) {
	s, _ := newTestStack(t)
	s.Handle(NavigateTo(settings))
	info := s.DebugInfo()
	if !strings.Contains(info, "history: 1") || !strings.Contains(info, "pages: 2") {
		t.Errorf("info = %q", info)
	}
}

func TestGameDebugInfo(t *testing.T) {
	s, _ := newTestStack(t)
	g := newGame[msg](s, RunConfig[msg]{Debug: true, Logger: quietLogger()})
	g.poll = func() []PointerEvent { return nil }
	defer g.close()

	if g.overlay == nil {
		t.Fatal("debug run should create an overlay")
	}
	info := g.debugInfo()
	if !strings.HasPrefix(info, "frame: 0") || !strings.Contains(info, "page: {Home 0}") {
		t.Errorf("info = %q", info)
	}
}

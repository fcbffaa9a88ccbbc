package pageflow

import (
	"testing"
)

func TestLinearFillsShareSpace(t *testing.T) {
	children := []Element{Box{}, Box{Size: Vec2{Y: 100}}, Box{}}
	rects := linear(Rect{Width: 200, Height: 500}, children, false, 10, AlignStart)
	want := []Rect{
		{X: 0, Y: 0, Width: 200, Height: 190},
		{X: 0, Y: 200, Width: 200, Height: 100},
		{X: 0, Y: 310, Width: 200, Height: 190},
	}
	for i, w := range want {
		if rects[i] != w {
			t.Errorf("rect %d = %+v, want %+v", i, rects[i], w)
		}
	}
}

func TestLinearCrossAlignment(t *testing.T) {
	children := []Element{Box{Size: Vec2{50, 20}}, Box{Size: Vec2{50, 200}}}
	tests := []struct {
		align Alignment
		y     float64
	}{
		{AlignStart, 0},
		{AlignCenter, 40},
		{AlignEnd, 80},
	}
	for _, tt := range tests {
		rects := linear(Rect{Width: 300, Height: 100}, children, true, 0, tt.align)
		if rects[0].Y != tt.y || rects[0].Height != 20 {
			t.Errorf("align %d: rect = %+v, want y %v", tt.align, rects[0], tt.y)
		}
		if rects[1].Height != 100 {
			t.Errorf("oversized child should be clamped to the cross axis, got %+v", rects[1])
		}
		if rects[1].X != 50 {
			t.Errorf("second child x = %v, want 50", rects[1].X)
		}
	}
}

func TestLinearOverflowClamps(t *testing.T) {
	children := []Element{Box{Size: Vec2{Y: 80}}, Box{Size: Vec2{Y: 80}}}
	rects := linear(Rect{Width: 10, Height: 100}, children, false, 0, AlignStart)
	if rects[1].Height != 20 {
		t.Errorf("overflowing child height = %v, want 20", rects[1].Height)
	}
	if rects := linear(Rect{}, nil, true, 0, AlignStart); len(rects) != 0 {
		t.Errorf("rects = %v", rects)
	}
}

func TestColumnRoutesTopChildFirst(t *testing.T) {
	col := NewColumn(
		NewButton[string](Box{}, "first"),
		NewButton[string](Box{}, "second"),
	)
	col.Padding = Padding{Top: 20}

	var sh Shell
	if !col.HandlePointer(ReleaseEvent(10, 500), screen, nil, &sh) {
		t.Fatal("expected capture")
	}
	if got := Messages[string](&sh); len(got) != 1 || got[0] != "second" {
		t.Errorf("messages = %v, want [second]", got)
	}

	sh.Reset()
	if col.HandlePointer(PressEvent(10, 10), screen, nil, &sh) {
		t.Error("padding area should not be captured")
	}
}

func TestButton(t *testing.T) {
	b := NewButton[string](Box{}, "go")
	r := Rect{X: 10, Y: 10, Width: 50, Height: 20}

	var sh Shell
	if b.HandlePointer(ReleaseEvent(100, 100), r, nil, &sh) {
		t.Error("outside release captured")
	}
	if !b.HandlePointer(PressEvent(20, 20), r, nil, &sh) || sh.Len() != 0 {
		t.Error("press should capture without publishing")
	}
	if b.HandlePointer(WheelEvent(20, 20, 1), r, nil, &sh) {
		t.Error("wheel should pass through buttons")
	}
	b.HandlePointer(ReleaseEvent(20, 20), r, nil, &sh)
	if sh.Len() != 1 {
		t.Errorf("release published %d messages, want 1", sh.Len())
	}

	b.Disabled = true
	sh.Reset()
	if !b.HandlePointer(ReleaseEvent(20, 20), r, nil, &sh) || sh.Len() != 0 {
		t.Error("disabled button should capture silently")
	}
}

func TestScrollWheel(t *testing.T) {
	s := NewScroll(NewButton[string](Box{}, "item"), 1000)
	st := &LayerState{}
	r := Rect{Width: 100, Height: 400}

	var sh Shell
	s.HandlePointer(WheelEvent(10, 10, -3), r, st, &sh)
	if st.ScrollY != 60 {
		t.Errorf("scroll = %v, want 60", st.ScrollY)
	}
	for i := 0; i < 100; i++ {
		s.HandlePointer(WheelEvent(10, 10, -3), r, st, &sh)
	}
	if st.ScrollY != 600 {
		t.Errorf("scroll = %v, want clamp at 600", st.ScrollY)
	}
	s.HandlePointer(WheelEvent(10, 10, 100), r, st, &sh)
	if st.ScrollY != 0 {
		t.Errorf("scroll = %v, want 0", st.ScrollY)
	}
	if s.HandlePointer(WheelEvent(500, 10, -1), r, st, &sh) {
		t.Error("wheel outside bounds captured")
	}

	s.HandlePointer(ReleaseEvent(10, 10), r, st, &sh)
	if got := Messages[string](&sh); len(got) != 1 || got[0] != "item" {
		t.Errorf("content did not receive the click: %v", got)
	}
}

func TestLabelDebugSize(t *testing.T) {
	l := NewLabel("héllo", nil)
	if got := l.SizeHint(); got != (Vec2{30, 16}) {
		t.Errorf("hint = %v, want {30 16}", got)
	}
}

func TestRectInset(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}.Inset(UniformPadding(8))
	if r.Width != 0 || r.Height != 0 || !r.Empty() {
		t.Errorf("inset = %+v, want empty", r)
	}
	if !(Rect{Width: 10, Height: 10}).Contains(10, 10) {
		t.Error("edge point should be inside")
	}
}

func TestColorPremultiply(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0, A: 0.5}.toRGBA()
	if c.R != 128 || c.G != 64 || c.B != 0 || c.A != 128 {
		t.Errorf("rgba = %v", c)
	}
	if !ColorTransparent.IsZero() || ColorWhite.WithAlpha(0).A != 0 {
		t.Error("alpha helpers wrong")
	}
}

func TestKeyedScrollsKeepSeparateOffsets(t *testing.T) {
	top := NewScroll(Box{}, 1000)
	top.Key = "top"
	bottom := NewScroll(Box{}, 1000)
	bottom.Key = "bottom"
	col := NewColumn(top, bottom)
	st := &LayerState{}
	r := Rect{Width: 100, Height: 400}

	var sh Shell
	col.HandlePointer(WheelEvent(10, 50, -2), r, st, &sh)
	col.HandlePointer(WheelEvent(10, 300, -5), r, st, &sh)

	if got := top.Offset(st); got != 40 {
		t.Errorf("top offset = %v, want 40", got)
	}
	if got := bottom.Offset(st); got != 100 {
		t.Errorf("bottom offset = %v, want 100", got)
	}
	if st.ScrollY != 0 {
		t.Errorf("layer ScrollY = %v, keyed scrolls should not touch it", st.ScrollY)
	}
}

func TestColorScalePremultiplied(t *testing.T) {
	cs := Color{R: 1, G: 0.5, B: 0, A: 0.5}.colorScale()
	if cs.R() != 0.5 || cs.G() != 0.25 || cs.B() != 0 || cs.A() != 0.5 {
		t.Errorf("scale = (%v %v %v %v), want (0.5 0.25 0 0.5)", cs.R(), cs.G(), cs.B(), cs.A())
	}
}

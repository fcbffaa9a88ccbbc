package pageflow

import (
	"log/slog"
	"time"
)

// historyParallax is how far, in percent of the width, the page underneath
// moves while the page above it slides in.
const historyParallax = -0.4

// scrimAlpha is the opacity of the shade over the previous page at the end
// of a transition.
const scrimAlpha = 0.5

// Stack is a push/pop navigator with animated transitions. Navigating pushes
// the current page onto the history and slides the new page in from the
// right; going back slides it out again.
type Stack[K Mapper[M], M any] struct {
	base[K, M]

	transition bool
	goingBack  bool
	resetMode  bool
	animValue  float32
	frame      *Frame
	generation uint64
}

// NewStack creates a stack navigator showing initial. The returned task is
// initial's load task.
func NewStack[K Mapper[M], M any](initial K, wrap func(Action[K]) M, opts ...Option) (*Stack[K, M], Task[M]) {
	s := &Stack[K, M]{base: newBase(initial, wrap, opts)}
	s.compositor.Persist(true)
	_, load := s.ensure(initial, s.chrome)
	return s, load
}

func (s *Stack[K, M]) chrome(key K) *Header[M] {
	return s.header(key, s.backButton())
}

// Handle applies a navigation action and returns any page load work.
func (s *Stack[K, M]) Handle(a Action[K]) Task[M] {
	switch a.Kind {
	case ActionNavigate:
		_, load := s.ensure(a.Page, s.chrome)
		s.history = append(s.history, s.current)
		s.current = a.Page
		s.goingBack = false
		s.start(false)
		s.log().Debug("navigate", slog.Any("page", a.Page), slog.Int("history", len(s.history)))
		return load
	case ActionGoBack:
		s.goingBack = true
		s.start(true)
		s.log().Debug("go back", slog.Int("history", len(s.history)))
	case ActionTick:
		s.tick(a.Frame)
	case ActionDrawer:
		s.log().Debug("drawer action ignored by stack navigator")
	}
	return None[M]()
}

// start begins a new transition, superseding any in flight.
func (s *Stack[K, M]) start(reverse bool) {
	s.generation++
	f := s.newFrame(s.generation)
	s.animValue = 0
	if reverse {
		f.Reverse()
		s.animValue = 100
	}
	s.frame = f
	s.transition = true
}

// tick adopts a frame handed back by the host. Frames from superseded
// transitions are ignored.
func (s *Stack[K, M]) tick(f *Frame) {
	if f == nil || s.frame == nil || f.generation != s.generation {
		s.log().Debug("stale tick ignored", slog.Uint64("generation", s.generation))
		return
	}
	s.frame = f
	s.step(s.now())
}

// Advance samples the in-flight transition at the current time. It reports
// whether a transition is still running.
func (s *Stack[K, M]) Advance() bool {
	return s.AdvanceAt(s.now())
}

// AdvanceAt samples the in-flight transition at now.
func (s *Stack[K, M]) AdvanceAt(now time.Time) bool {
	if s.frame == nil {
		return false
	}
	s.step(now)
	return s.transition
}

func (s *Stack[K, M]) step(now time.Time) {
	s.frame.UpdateAt(now)
	s.animValue = s.frame.Value()
	if s.frame.IsComplete() {
		s.finish()
	}
}

func (s *Stack[K, M]) finish() {
	if s.goingBack {
		s.goingBack = false
		if k, ok := s.PopHistory(); ok {
			s.current = k
		}
	}
	if s.resetMode {
		s.resetMode = false
		clear(s.history)
		s.history = s.history[:0]
	}
	s.transition = false
	s.frame = nil
	s.log().Debug("transition complete", slog.Any("page", s.current), slog.Int("history", len(s.history)))
}

// ClearHistory discards the history when the next transition completes, so
// layers are not dropped mid-animation. Until then the back button is
// hidden.
func (s *Stack[K, M]) ClearHistory() {
	s.resetMode = true
}

// IsResetPending reports whether a ClearHistory is waiting for a
// transition to complete.
func (s *Stack[K, M]) IsResetPending() bool { return s.resetMode }

// IsAnimating reports whether a transition is in flight.
func (s *Stack[K, M]) IsAnimating() bool { return s.transition }

// IsGoingBack reports whether the in-flight transition is a back
// transition.
func (s *Stack[K, M]) IsGoingBack() bool { return s.goingBack }

// AnimValue returns the transition value in [0, 100].
func (s *Stack[K, M]) AnimValue() float32 { return s.animValue }

// Frame returns the in-flight frame, or nil.
func (s *Stack[K, M]) Frame() *Frame { return s.frame }

// View builds the layer stack: history pages underneath, hidden unless a
// transition is running, and the current page on top.
func (s *Stack[K, M]) View() Element {
	c := s.compositor.Begin().Persist(true)
	for i, k := range s.history {
		e := s.pages.Lookup(k)
		c.Push(e.ID, withHeader(e.Chrome, i > 0, e.Component.View()))
		c.DisableLast(true).HideLast(!s.transition)
		if s.transition {
			c.NProgressLast(s.animValue * historyParallax)
		}
	}

	e := s.pages.Lookup(s.current)
	showBack := !s.resetMode && len(s.history) > 0
	c.Push(e.ID, withHeader(e.Chrome, showBack, e.Component.View()))
	c.DisableLast(s.transition)
	if s.transition {
		c.ProgressLast(s.animValue)
		c.SetScrim(ColorBlack.WithAlpha(float64(s.animValue) / 100 * scrimAlpha))
	}
	s.root = c
	return c
}

// HandlePointer routes ev through the last view and returns the messages
// it produced.
func (s *Stack[K, M]) HandlePointer(ev PointerEvent, bounds Rect) []M {
	return s.dispatchPointer(ev, bounds)
}

package pageflow

import (
	"fmt"
	"sort"
	"time"

	"github.com/tanema/gween/ease"
)

// DefaultFrameDuration is the length of a page transition.
const DefaultFrameDuration = 300 * time.Millisecond

// Frame is a time-based progress sampler driving one transition. Its raw
// percent runs from 0 to 100 over its duration; Value applies the installed
// curve. A Frame carries the generation of the transition that created it so
// a navigator can recognise ticks from a superseded transition.
type Frame struct {
	start      time.Time
	duration   time.Duration
	percent    float64
	curve      func(float32) float32
	generation uint64
}

// NewFrame returns a frame starting now with the default duration.
func NewFrame() *Frame {
	return NewFrameAt(time.Now())
}

// NewFrameAt returns a frame whose elapsed time is measured from start.
func NewFrameAt(start time.Time) *Frame {
	return &Frame{start: start, duration: DefaultFrameDuration}
}

// Duration sets the transition length. A non-positive duration completes on
// the first update.
func (f *Frame) Duration(d time.Duration) *Frame {
	f.duration = d
	return f
}

// Map replaces the curve applied to the raw percent.
func (f *Frame) Map(fn func(float32) float32) *Frame {
	f.curve = fn
	return f
}

// Ease installs a gween easing function as the curve. The function is
// sampled over [0, 100].
func (f *Frame) Ease(fn ease.TweenFunc) *Frame {
	if fn == nil {
		return f
	}
	return f.Map(func(v float32) float32 {
		return fn(v, 0, 100, 100)
	})
}

// Reverse composes |v - 100| after the current curve, so the value runs from
// 100 down to 0.
func (f *Frame) Reverse() *Frame {
	prev := f.curve
	f.curve = func(v float32) float32 {
		if prev != nil {
			v = prev(v)
		}
		v -= 100
		if v < 0 {
			v = -v
		}
		return v
	}
	return f
}

// Update samples the wall clock.
func (f *Frame) Update() {
	f.UpdateAt(time.Now())
}

// UpdateAt samples progress at now. Progress never moves backwards.
func (f *Frame) UpdateAt(now time.Time) {
	var p float64
	elapsed := now.Sub(f.start)
	switch {
	case f.duration <= 0 || elapsed >= f.duration:
		p = 100
	case elapsed > 0:
		p = float64(elapsed) / float64(f.duration) * 100
	}
	if p > f.percent {
		f.percent = p
	}
}

// IsComplete reports whether the raw percent has reached exactly 100.
func (f *Frame) IsComplete() bool {
	return f.percent == 100
}

// Percent returns the raw progress in [0, 100].
func (f *Frame) Percent() float32 {
	return float32(f.percent)
}

// Value returns the curve applied to the raw percent.
func (f *Frame) Value() float32 {
	v := float32(f.percent)
	if f.curve != nil {
		return f.curve(v)
	}
	return v
}

// Generation identifies the transition this frame belongs to.
func (f *Frame) Generation() uint64 {
	return f.generation
}

var curves = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"in_quad":      ease.InQuad,
	"out_quad":     ease.OutQuad,
	"in_out_quad":  ease.InOutQuad,
	"in_cubic":     ease.InCubic,
	"out_cubic":    ease.OutCubic,
	"in_out_cubic": ease.InOutCubic,
	"in_quart":     ease.InQuart,
	"out_quart":    ease.OutQuart,
	"in_out_quart": ease.InOutQuart,
	"in_sine":      ease.InSine,
	"out_sine":     ease.OutSine,
	"in_out_sine":  ease.InOutSine,
	"in_expo":      ease.InExpo,
	"out_expo":     ease.OutExpo,
	"in_out_expo":  ease.InOutExpo,
	"in_circ":      ease.InCirc,
	"out_circ":     ease.OutCirc,
	"in_out_circ":  ease.InOutCirc,
	"out_back":     ease.OutBack,
	"out_bounce":   ease.OutBounce,
}

// Curve looks up an easing function by its snake_case name, as used in
// configuration files. The empty name resolves to nil (raw percent).
func Curve(name string) (ease.TweenFunc, error) {
	if name == "" {
		return nil, nil
	}
	fn, ok := curves[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCurve, name)
	}
	return fn, nil
}

// CurveNames lists the names accepted by Curve, sorted.
func CurveNames() []string {
	names := make([]string, 0, len(curves))
	for name := range curves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package pageflow

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep is a single action in a script.
type scriptStep struct {
	Action string  `json:"action" yaml:"action"`
	Page   string  `json:"page,omitempty" yaml:"page,omitempty"`
	Label  string  `json:"label,omitempty" yaml:"label,omitempty"`
	X      float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y      float64 `json:"y,omitempty" yaml:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty" yaml:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty" yaml:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty" yaml:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty" yaml:"toY,omitempty"`
	Dy     float64 `json:"dy,omitempty" yaml:"dy,omitempty"`
	Frames int     `json:"frames,omitempty" yaml:"frames,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps" yaml:"steps"`
}

// ScriptStep is what one frame of a script asks the run loop to do.
type ScriptStep[M any] struct {
	Task       Task[M]
	Events     []PointerEvent
	Screenshot string
}

// Stepper feeds scripted work to Run, one step per frame.
type Stepper[M any] interface {
	Step() ScriptStep[M]
	Done() bool
}

// ScriptTarget is the navigator a script drives.
type ScriptTarget[K comparable, M any] interface {
	Handle(Action[K]) Task[M]
	ClearHistory()
}

// ScriptRunner sequences navigation actions, injected input and
// screenshots across frames for automated visual testing.
type ScriptRunner[K comparable, M any] struct {
	steps     []scriptStep
	pages     []K
	cursor    int
	waitCount int
	done      bool
	target    ScriptTarget[K, M]
}

// LoadScript parses a JSON or YAML script. Page names in navigate steps
// are resolved up front with resolve.
func LoadScript[K comparable, M any](data []byte, target ScriptTarget[K, M], resolve func(name string) (K, bool)) (*ScriptRunner[K, M], error) {
	var sc script
	var err error
	if json.Valid(data) {
		err = json.Unmarshal(data, &sc)
	} else {
		err = yaml.Unmarshal(data, &sc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: %w", ErrEmptyScript)
	}

	pages := make([]K, len(sc.Steps))
	for i, st := range sc.Steps {
		switch st.Action {
		case "navigate":
			k, ok := resolve(st.Page)
			if !ok {
				return nil, fmt.Errorf("parse script: step %d: %w: %q", i, ErrUnknownPage, st.Page)
			}
			pages[i] = k
		case "back", "expand", "hide", "clear", "wait", "click", "drag", "scroll", "screenshot":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner[K, M]{steps: sc.Steps, pages: pages, target: target}, nil
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner[K, M]) Done() bool {
	return r.done
}

// Len returns the number of steps.
func (r *ScriptRunner[K, M]) Len() int { return len(r.steps) }

// Step advances the script by one frame.
func (r *ScriptRunner[K, M]) Step() ScriptStep[M] {
	var out ScriptStep[M]
	if r.done {
		return out
	}
	if r.waitCount > 0 {
		r.waitCount--
		return out
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return out
	}

	i := r.cursor
	st := r.steps[i]
	r.cursor++

	switch st.Action {
	case "navigate":
		out.Task = r.target.Handle(NavigateTo(r.pages[i]))
	case "back":
		out.Task = r.target.Handle(Back[K]())
	case "expand":
		out.Task = r.target.Handle(ExpandDrawer[K]())
	case "hide":
		out.Task = r.target.Handle(HideDrawer[K]())
	case "clear":
		r.target.ClearHistory()
	case "screenshot":
		out.Screenshot = st.Label
	case "click":
		out.Events = ClickEvents(st.X, st.Y)
	case "drag":
		out.Events = DragEvents(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "scroll":
		out.Events = []PointerEvent{WheelEvent(st.X, st.Y, st.Dy)}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
	return out
}

package pageflow

// LayerState is the retained state of one compositor layer. It survives
// across frames while the layer keeps its identity, which is what lets a
// page come back from history with its scroll position intact.
type LayerState struct {
	id      uint64
	created uint64

	ScrollX, ScrollY float64
	Focused          bool
	Hovered          bool

	data map[string]any
}

// ID returns the layer id the state is bound to.
func (s *LayerState) ID() uint64 { return s.id }

// Value returns a widget-defined value stored under key.
func (s *LayerState) Value(key string) (any, bool) {
	v, ok := s.data[key]
	return v, ok
}

// SetValue stores a widget-defined value under key.
func (s *LayerState) SetValue(key string, v any) {
	if s.data == nil {
		s.data = make(map[string]any)
	}
	s.data[key] = v
}

func (s *LayerState) reset(id, pass uint64) {
	*s = LayerState{id: id, created: pass, data: s.data}
	clear(s.data)
}

package pageflow

import (
	"log/slog"
	"time"
)

// TabItemSettings styles tab bar entries.
type TabItemSettings struct {
	IconSize   float64
	Color      Color
	TintColor  Color // active tab
	Horizontal bool  // icon beside the label instead of above it
}

// TabsSettings styles the tab bar.
type TabsSettings struct {
	Height     float64
	Width      float64 // zero fills the available width
	Align      Alignment
	Background Color
	Item       TabItemSettings
}

// DefaultTabsSettings returns a 56px bar with 15px icons.
func DefaultTabsSettings() TabsSettings {
	return TabsSettings{
		Height:     56,
		Align:      AlignCenter,
		Background: Color{R: 0.16, G: 0.16, B: 0.19, A: 1},
		Item: TabItemSettings{
			IconSize:  15,
			Color:     Color{R: 0.6, G: 0.62, B: 0.68, A: 1},
			TintColor: Color{R: 0.35, G: 0.6, B: 1, A: 1},
		},
	}
}

// Tabs is a navigator with a bar of page buttons. Navigation is immediate.
type Tabs[K Mapper[M], M any] struct {
	base[K, M]

	tabs     []K
	position Position
	settings TabsSettings
}

// NewTabs creates a tabs navigator over tabs, showing initial.
func NewTabs[K Mapper[M], M any](tabs []K, initial K, wrap func(Action[K]) M, opts ...Option) (*Tabs[K, M], Task[M]) {
	t := &Tabs[K, M]{
		base:     newBase(initial, wrap, opts),
		tabs:     append([]K(nil), tabs...),
		settings: DefaultTabsSettings(),
	}
	if t.opts.tabs != nil {
		t.settings = *t.opts.tabs
	}
	if t.opts.tabsPos != nil {
		t.position = *t.opts.tabsPos
	}
	t.compositor.Persist(true)
	t.applySettings(initial)
	_, load := t.ensure(initial, nil)
	return t, load
}

func (t *Tabs[K, M]) applySettings(key K) {
	if p, ok := any(key).(TabsSettingsProvider); ok {
		if s := p.TabsSettings(); s != nil {
			t.settings = *s
		}
	}
}

// SetPosition places the tab bar above or below the pages.
func (t *Tabs[K, M]) SetPosition(p Position) *Tabs[K, M] {
	t.position = p
	return t
}

// Position returns the tab bar placement.
func (t *Tabs[K, M]) Position() Position { return t.position }

// Settings returns the current tab bar settings.
func (t *Tabs[K, M]) Settings() TabsSettings { return t.settings }

// Handle applies a navigation action and returns any page load work. Tick
// and drawer actions are accepted and ignored.
func (t *Tabs[K, M]) Handle(a Action[K]) Task[M] {
	switch a.Kind {
	case ActionNavigate:
		_, load := t.ensure(a.Page, nil)
		t.applySettings(a.Page)
		t.history = append(t.history, t.current)
		t.current = a.Page
		t.log().Debug("navigate", slog.Any("page", a.Page), slog.Int("history", len(t.history)))
		return load
	case ActionGoBack:
		if k, ok := t.PopHistory(); ok {
			t.current = k
		}
	}
	return None[M]()
}

// ClearHistory discards the history immediately.
func (t *Tabs[K, M]) ClearHistory() {
	clear(t.history)
	t.history = t.history[:0]
}

// IsAnimating is always false; tabs switch immediately.
func (t *Tabs[K, M]) IsAnimating() bool { return false }

// Advance is a no-op.
func (t *Tabs[K, M]) Advance() bool { return false }

// AdvanceAt is a no-op.
func (t *Tabs[K, M]) AdvanceAt(time.Time) bool { return false }

func (t *Tabs[K, M]) bar() Element {
	s := t.settings
	items := make([]Element, 0, len(t.tabs))
	for _, k := range t.tabs {
		active := k == t.current
		clr := s.Item.Color
		if active {
			clr = s.Item.TintColor
		}
		name := IconDot
		if p, ok := any(k).(TabIconProvider); ok {
			name = p.TabIcon()
		}
		icon := Icon{Name: name, Size: s.Item.IconSize, Color: clr}
		label := &Label{Text: localize(t.opts.localizer, k.Title()), Color: clr, Align: AlignCenter}

		var content Element
		if s.Item.Horizontal {
			row := NewRow(icon, label)
			row.Align = AlignCenter
			row.Spacing = 6
			content = row
		} else {
			col := NewColumn(icon, label)
			col.Align = AlignCenter
			col.Spacing = 2
			col.Padding = Padding{Top: 8, Bottom: 6}
			content = col
		}
		btn := NewButton[M](content, t.wrap(NavigateTo(k)))
		btn.Disabled = active
		items = append(items, btn)
	}
	row := NewRow(items...)
	row.Background = s.Background
	row.Height = s.Height

	if s.Width <= 0 {
		return row
	}
	row.Width = s.Width
	outer := NewRow(row)
	outer.Height = s.Height
	outer.Background = s.Background
	switch s.Align {
	case AlignCenter:
		outer.Children = []Element{Spacer{}, row, Spacer{}}
	case AlignEnd:
		outer.Children = []Element{Spacer{}, row}
	}
	return outer
}

// View builds the page stack and the tab bar.
func (t *Tabs[K, M]) View() Element {
	c := t.compositor.Begin().Persist(true)
	for _, k := range t.history {
		e := t.pages.Lookup(k)
		c.Push(e.ID, e.Component.View())
		c.HideLast(true).DisableLast(true)
	}
	e := t.pages.Lookup(t.current)
	c.Push(e.ID, e.Component.View())

	if t.position == PositionTop {
		t.root = NewColumn(t.bar(), c)
	} else {
		t.root = NewColumn(c, t.bar())
	}
	return t.root
}

// HandlePointer routes ev through the last view and returns the messages
// it produced.
func (t *Tabs[K, M]) HandlePointer(ev PointerEvent, bounds Rect) []M {
	return t.dispatchPointer(ev, bounds)
}

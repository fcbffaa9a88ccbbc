package pageflow

import (
	"log/slog"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// drawerScrimAlpha is the opacity of the shade behind an open sliding
// drawer.
const drawerScrimAlpha = 0.6

// Layer ids of the sliding drawer overlay.
const (
	drawerPagesLayer uint64 = iota + 1
	drawerScrimLayer
	drawerPanelLayer
)

// DrawerItemSettings styles drawer entries.
type DrawerItemSettings struct {
	Height             float64
	Text               Color
	TextSelected       Color
	Background         Color
	BackgroundSelected Color
	IconSize           float64
}

// DrawerSettings styles the drawer panel.
type DrawerSettings struct {
	Width      float64
	Padding    Padding
	Spacing    float64
	Background Color
	Mode       DrawerMode
	Item       DrawerItemSettings
}

// DefaultDrawerSettings returns a 300px fixed drawer.
func DefaultDrawerSettings() DrawerSettings {
	return DrawerSettings{
		Width:      300,
		Padding:    Padding{Top: 60, Right: 10, Bottom: 10, Left: 10},
		Spacing:    4,
		Background: Color{R: 0.16, G: 0.2, B: 0.33, A: 1},
		Mode:       DrawerFixed,
		Item: DrawerItemSettings{
			Height:             40,
			Text:               Color{R: 0.8, G: 0.82, B: 0.88, A: 1},
			TextSelected:       ColorWhite,
			Background:         ColorTransparent,
			BackgroundSelected: Color{R: 1, G: 1, B: 1, A: 0.12},
			IconSize:           18,
		},
	}
}

// DrawerOption renders one drawer entry.
type DrawerOption[M any] interface {
	OptionView(title string, selected bool, onPress M, s DrawerItemSettings) Element
}

type textOption[M any] struct{}

func (textOption[M]) OptionView(title string, selected bool, onPress M, s DrawerItemSettings) Element {
	lbl := &Label{Text: title, Color: s.Text}
	bg := s.Background
	if selected {
		lbl.Color = s.TextSelected
		bg = s.BackgroundSelected
	}
	btn := NewButton[M](lbl, onPress)
	btn.Size = Vec2{Y: s.Height}
	btn.Background = bg
	btn.Padding = Padding{Left: 12, Right: 12}
	btn.Disabled = selected
	return btn
}

// Drawer is a navigator with a side panel listing its pages. In fixed mode
// the panel sits beside the pages; in sliding mode it slides in over them
// when expanded.
type Drawer[K Mapper[M], M any] struct {
	base[K, M]

	options  []K
	settings DrawerSettings

	showDrawer bool
	hiding     bool
	transition bool
	animValue  float32
	from       float32 // animValue when the in-flight frame started
	frame      *Frame
	generation uint64

	overlay *Compositor
}

// NewDrawer creates a drawer navigator listing options and showing initial.
func NewDrawer[K Mapper[M], M any](options []K, initial K, wrap func(Action[K]) M, opts ...Option) (*Drawer[K, M], Task[M]) {
	d := &Drawer[K, M]{
		base:     newBase(initial, wrap, opts),
		options:  append([]K(nil), options...),
		settings: DefaultDrawerSettings(),
		overlay:  NewCompositor().SetPaintDepth(0).SetBackground(ColorTransparent).Persist(true),
	}
	if d.opts.drawer != nil {
		d.settings = *d.opts.drawer
	}
	if p, ok := any(initial).(DrawerSettingsProvider); ok {
		if s := p.DrawerSettings(); s != nil {
			d.settings = *s
		}
	}
	d.overlay.SetDebug(d.opts.debug).SetLogger(d.opts.logger)
	_, load := d.ensure(initial, d.chrome)
	return d, load
}

func (d *Drawer[K, M]) chrome(key K) *Header[M] {
	left := d.backButton()
	if d.settings.Mode == DrawerSliding {
		left = IconButton[M]{Icon: IconBars, Message: d.wrap(ExpandDrawer[K]())}
	}
	return d.header(key, left)
}

// Settings returns the drawer settings.
func (d *Drawer[K, M]) Settings() DrawerSettings { return d.settings }

// Handle applies a navigation action and returns any page load work.
func (d *Drawer[K, M]) Handle(a Action[K]) Task[M] {
	switch a.Kind {
	case ActionNavigate:
		_, load := d.ensure(a.Page, d.chrome)
		d.history = append(d.history, d.current)
		d.current = a.Page
		if d.settings.Mode == DrawerSliding && d.showDrawer && !d.hiding {
			d.hide()
		}
		d.log().Debug("navigate", slog.Any("page", a.Page), slog.Int("history", len(d.history)))
		return load
	case ActionGoBack:
		if k, ok := d.PopHistory(); ok {
			d.current = k
		}
	case ActionTick:
		d.tick(a.Frame)
	case ActionDrawer:
		if d.settings.Mode != DrawerSliding {
			d.log().Debug("drawer action ignored in fixed mode")
			break
		}
		switch a.Drawer {
		case DrawerExpand:
			d.showDrawer = true
			d.hiding = false
			d.start(false)
		case DrawerHide:
			if d.showDrawer {
				d.hide()
			}
		}
	}
	return None[M]()
}

func (d *Drawer[K, M]) hide() {
	d.hiding = true
	d.start(true)
}

// start begins a transition from the panel's current position. The frame
// is shortened to the remaining distance so an interrupted slide keeps its
// speed and never jumps.
func (d *Drawer[K, M]) start(reverse bool) {
	d.generation++
	d.from = d.animValue
	remaining := 100 - d.from
	if reverse {
		remaining = d.from
	}
	f := d.newFrame(d.generation)
	f.Duration(time.Duration(float64(d.opts.duration) * float64(remaining) / 100))
	if reverse {
		f.Reverse()
	}
	d.frame = f
	d.transition = true
}

func (d *Drawer[K, M]) tick(f *Frame) {
	if f == nil || d.frame == nil || f.generation != d.generation {
		d.log().Debug("stale tick ignored", slog.Uint64("generation", d.generation))
		return
	}
	d.frame = f
	d.step(d.now())
}

// Advance samples the drawer animation at the current time.
func (d *Drawer[K, M]) Advance() bool {
	return d.AdvanceAt(d.now())
}

// AdvanceAt samples the drawer animation at now.
func (d *Drawer[K, M]) AdvanceAt(now time.Time) bool {
	if d.frame == nil {
		return false
	}
	d.step(now)
	return d.transition
}

func (d *Drawer[K, M]) step(now time.Time) {
	d.frame.UpdateAt(now)
	v := d.frame.Value() / 100
	if d.hiding {
		d.animValue = d.from * v
	} else {
		d.animValue = d.from + (100-d.from)*v
	}
	if d.frame.IsComplete() {
		d.animValue = 100
		if d.hiding {
			d.animValue = 0
			d.hiding = false
			d.showDrawer = false
		}
		d.transition = false
		d.frame = nil
	}
}

// ClearHistory discards the history immediately.
func (d *Drawer[K, M]) ClearHistory() {
	clear(d.history)
	d.history = d.history[:0]
}

// Dispose frees the offscreen images of the pages and the panel overlay.
func (d *Drawer[K, M]) Dispose() {
	d.base.Dispose()
	d.overlay.Dispose()
}

// IsAnimating reports whether the drawer is sliding.
func (d *Drawer[K, M]) IsAnimating() bool { return d.transition }

// IsOpen reports whether the sliding drawer is shown, including while it
// is closing.
func (d *Drawer[K, M]) IsOpen() bool { return d.showDrawer }

// AnimValue returns the drawer animation value in [0, 100].
func (d *Drawer[K, M]) AnimValue() float32 { return d.animValue }

// Frame returns the in-flight frame, or nil.
func (d *Drawer[K, M]) Frame() *Frame { return d.frame }

func (d *Drawer[K, M]) panel() Element {
	s := d.settings
	items := make([]Element, 0, len(d.options))
	for _, k := range d.options {
		var opt DrawerOption[M] = textOption[M]{}
		if p, ok := any(k).(DrawerOptionProvider[M]); ok {
			if o := p.DrawerOption(); o != nil {
				opt = o
			}
		}
		title := localize(d.opts.localizer, k.Title())
		items = append(items, opt.OptionView(title, k == d.current, d.wrap(NavigateTo(k)), s.Item))
	}
	col := NewColumn(items...)
	col.Width = s.Width
	col.Padding = s.Padding
	col.Spacing = s.Spacing
	col.Background = s.Background
	return col
}

func (d *Drawer[K, M]) pagesView() Element {
	c := d.compositor.Begin().Persist(true)
	for _, k := range d.history {
		e := d.pages.Lookup(k)
		c.Push(e.ID, e.Component.View())
		c.HideLast(true).DisableLast(true)
	}
	e := d.pages.Lookup(d.current)
	showLeft := d.settings.Mode == DrawerSliding || len(d.history) > 0
	c.Push(e.ID, withHeader(e.Chrome, showLeft, e.Component.View()))
	return c
}

// View builds the drawer panel and page stack.
func (d *Drawer[K, M]) View() Element {
	pages := d.pagesView()
	if d.settings.Mode == DrawerFixed {
		d.root = NewRow(d.panel(), pages)
		return d.root
	}

	o := d.overlay.Begin()
	o.Push(drawerPagesLayer, pages)
	o.DisableLast(d.showDrawer)
	if d.showDrawer {
		shade := NewButton[M](Box{Color: ColorBlack.WithAlpha(float64(d.animValue) / 100 * drawerScrimAlpha)}, d.wrap(HideDrawer[K]()))
		o.Push(drawerScrimLayer, shade)
		o.Push(drawerPanelLayer, &slideIn{el: d.panel(), width: d.settings.Width, t: float64(d.animValue) / 100})
		o.DisableLast(d.hiding)
	}
	d.root = o
	return o
}

// HandlePointer routes ev through the last view and returns the messages
// it produced.
func (d *Drawer[K, M]) HandlePointer(ev PointerEvent, bounds Rect) []M {
	return d.dispatchPointer(ev, bounds)
}

// slideIn draws el at the left edge, pulled out by t of its width.
type slideIn struct {
	el    Element
	width float64
	t     float64
}

func (s *slideIn) rect(r Rect) Rect {
	return Rect{X: r.X - s.width*(1-clamp01(s.t)), Y: r.Y, Width: s.width, Height: r.Height}
}

func (s *slideIn) Draw(dst *ebiten.Image, st *LayerState) {
	r := rectOf(dst)
	w, h := int(math.Ceil(s.width)), int(math.Ceil(r.Height))
	if w <= 0 || h <= 0 || s.t <= 0 {
		return
	}
	off := sharedPool.Get(w, h)
	defer sharedPool.Put(off)
	region := off.region
	s.el.Draw(region, st)

	pr := s.rect(r)
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(math.Round(pr.X), pr.Y)
	dst.DrawImage(region, &op)
}

func (s *slideIn) HandlePointer(ev PointerEvent, bounds Rect, st *LayerState, sh *Shell) bool {
	pr := s.rect(bounds)
	if !pr.Contains(ev.X, ev.Y) {
		return false
	}
	dispatch(s.el, ev, pr, st, sh)
	return true
}

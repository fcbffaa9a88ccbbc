package pageflow

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Element is anything that paints itself into the bounds of dst. Elements
// must use dst.Bounds() rather than assuming an origin of (0, 0).
type Element interface {
	Draw(dst *ebiten.Image, st *LayerState)
}

// Sizer reports an element's preferred size. A zero component means the
// element fills whatever its container offers on that axis.
type Sizer interface {
	SizeHint() Vec2
}

func sizeHint(el Element) Vec2 {
	if s, ok := el.(Sizer); ok {
		return s.SizeHint()
	}
	return Vec2{}
}

// --- Containers ---

// Column lays children out top to bottom. Children with a zero height hint
// share the remaining space equally.
type Column struct {
	Children   []Element
	Spacing    float64
	Padding    Padding
	Background Color
	Align      Alignment // cross-axis placement of children with a width hint
	Width      float64
	Height     float64
}

// NewColumn creates a column of children.
func NewColumn(children ...Element) *Column {
	return &Column{Children: children}
}

func (c *Column) SizeHint() Vec2 { return Vec2{c.Width, c.Height} }

func (c *Column) Draw(dst *ebiten.Image, st *LayerState) {
	r := rectOf(dst)
	fillRect(dst, r, c.Background)
	for i, cr := range linear(r.Inset(c.Padding), c.Children, false, c.Spacing, c.Align) {
		if cr.Empty() {
			continue
		}
		c.Children[i].Draw(subImage(dst, cr), st)
	}
}

func (c *Column) HandlePointer(ev PointerEvent, bounds Rect, st *LayerState, sh *Shell) bool {
	return route(c.Children, linear(bounds.Inset(c.Padding), c.Children, false, c.Spacing, c.Align), ev, st, sh)
}

// Row lays children out left to right. Children with a zero width hint
// share the remaining space equally.
type Row struct {
	Children   []Element
	Spacing    float64
	Padding    Padding
	Background Color
	Align      Alignment // cross-axis placement of children with a height hint
	Width      float64
	Height     float64
}

// NewRow creates a row of children.
func NewRow(children ...Element) *Row {
	return &Row{Children: children}
}

func (r *Row) SizeHint() Vec2 { return Vec2{r.Width, r.Height} }

func (r *Row) Draw(dst *ebiten.Image, st *LayerState) {
	b := rectOf(dst)
	fillRect(dst, b, r.Background)
	for i, cr := range linear(b.Inset(r.Padding), r.Children, true, r.Spacing, r.Align) {
		if cr.Empty() {
			continue
		}
		r.Children[i].Draw(subImage(dst, cr), st)
	}
}

func (r *Row) HandlePointer(ev PointerEvent, bounds Rect, st *LayerState, sh *Shell) bool {
	return route(r.Children, linear(bounds.Inset(r.Padding), r.Children, true, r.Spacing, r.Align), ev, st, sh)
}

// route offers ev to children whose rect contains it, last child first.
func route(children []Element, rects []Rect, ev PointerEvent, st *LayerState, sh *Shell) bool {
	for i := len(children) - 1; i >= 0; i-- {
		if ev.Kind != PointerUp && !rects[i].Contains(ev.X, ev.Y) {
			continue
		}
		if dispatch(children[i], ev, rects[i], st, sh) {
			return true
		}
	}
	return false
}

// linear computes child rects along one axis.
func linear(r Rect, children []Element, horizontal bool, spacing float64, align Alignment) []Rect {
	rects := make([]Rect, len(children))
	if len(children) == 0 {
		return rects
	}
	main, cross := r.Height, r.Width
	if horizontal {
		main, cross = r.Width, r.Height
	}

	fixed, fills := 0.0, 0
	hints := make([]Vec2, len(children))
	for i, ch := range children {
		h := sizeHint(ch)
		hints[i] = h
		m := h.Y
		if horizontal {
			m = h.X
		}
		if m > 0 {
			fixed += m
		} else {
			fills++
		}
	}
	fixed += spacing * float64(len(children)-1)
	share := 0.0
	if fills > 0 {
		share = math.Max(0, main-fixed) / float64(fills)
	}

	pos := 0.0
	for i := range children {
		m, c := hints[i].Y, hints[i].X
		if horizontal {
			m, c = hints[i].X, hints[i].Y
		}
		if m <= 0 {
			m = share
		}
		if m > main-pos {
			m = math.Max(0, main-pos)
		}
		off := 0.0
		if c <= 0 || c > cross {
			c = cross
		} else {
			switch align {
			case AlignCenter:
				off = (cross - c) / 2
			case AlignEnd:
				off = cross - c
			}
		}
		if horizontal {
			rects[i] = Rect{X: r.X + pos, Y: r.Y + off, Width: m, Height: c}
		} else {
			rects[i] = Rect{X: r.X + off, Y: r.Y + pos, Width: c, Height: m}
		}
		pos += m + spacing
	}
	return rects
}

// --- Leaves ---

// Spacer is an empty element. With a zero size it absorbs free space.
type Spacer struct {
	Size Vec2
}

func (s Spacer) SizeHint() Vec2                      { return s.Size }
func (s Spacer) Draw(dst *ebiten.Image, st *LayerState) {}

// Box fills its bounds with a color.
type Box struct {
	Color Color
	Size  Vec2
}

func (b Box) SizeHint() Vec2 { return b.Size }

func (b Box) Draw(dst *ebiten.Image, st *LayerState) {
	fillRect(dst, rectOf(dst), b.Color)
}

// debugGlyph is the cell size of ebitenutil's debug font.
var debugGlyph = Vec2{6, 16}

// Label draws a single line of text. Without a Face the ebitenutil debug
// font is used and Color and Size are ignored.
type Label struct {
	Text  string
	Face  text.Face
	Color Color
	Align Alignment
}

// NewLabel creates a white label using face, which may be nil.
func NewLabel(s string, face text.Face) *Label {
	return &Label{Text: s, Face: face, Color: ColorWhite}
}

func (l *Label) measure() Vec2 {
	if l.Face == nil {
		return Vec2{float64(len([]rune(l.Text))) * debugGlyph.X, debugGlyph.Y}
	}
	w, h := text.Measure(l.Text, l.Face, 0)
	return Vec2{w, h}
}

func (l *Label) SizeHint() Vec2 { return l.measure() }

func (l *Label) Draw(dst *ebiten.Image, st *LayerState) {
	if l.Text == "" {
		return
	}
	r := rectOf(dst)
	sz := l.measure()
	x := r.X
	switch l.Align {
	case AlignCenter:
		x += (r.Width - sz.X) / 2
	case AlignEnd:
		x += r.Width - sz.X
	}
	y := r.Y + (r.Height-sz.Y)/2

	if l.Face == nil {
		ebitenutil.DebugPrintAt(dst, l.Text, int(x), int(y))
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(l.Color.toRGBA())
	text.Draw(dst, l.Text, l.Face, op)
}

// Button publishes OnPress when released inside its bounds. A disabled
// button still captures events so they do not leak to layers beneath.
type Button[M any] struct {
	Content    Element
	OnPress    M
	Disabled   bool
	Background Color
	Size       Vec2
	Padding    Padding
}

// NewButton creates a button that publishes msg.
func NewButton[M any](content Element, msg M) *Button[M] {
	return &Button[M]{Content: content, OnPress: msg}
}

func (b *Button[M]) SizeHint() Vec2 { return b.Size }

func (b *Button[M]) Draw(dst *ebiten.Image, st *LayerState) {
	r := rectOf(dst)
	fillRect(dst, r, b.Background)
	if b.Content == nil {
		return
	}
	inner := r.Inset(b.Padding)
	if !inner.Empty() {
		b.Content.Draw(subImage(dst, inner), st)
	}
}

func (b *Button[M]) HandlePointer(ev PointerEvent, bounds Rect, st *LayerState, sh *Shell) bool {
	if !bounds.Contains(ev.X, ev.Y) || ev.Kind == PointerWheel {
		return false
	}
	if ev.Kind == PointerUp && !b.Disabled {
		sh.Publish(b.OnPress)
	}
	return true
}

// Scroll offsets its content vertically; wheel events inside its bounds
// move it. ContentHeight bounds the offset. Without a Key the offset is the
// layer's ScrollY. A page with several Scroll elements gives each a Key so
// every one keeps its own offset in the layer state.
type Scroll struct {
	Content       Element
	ContentHeight float64
	Step          float64
	Key           string
}

// NewScroll wraps content of the given height.
func NewScroll(content Element, contentHeight float64) *Scroll {
	return &Scroll{Content: content, ContentHeight: contentHeight, Step: 20}
}

func (s *Scroll) Draw(dst *ebiten.Image, st *LayerState) {
	r := rectOf(dst)
	y := s.clamp(r, st)
	w := int(math.Ceil(r.Width))
	h := int(math.Ceil(math.Max(s.ContentHeight, r.Height)))
	if w <= 0 || h <= 0 {
		return
	}
	off := sharedPool.Get(w, h)
	defer sharedPool.Put(off)
	region := off.region
	s.Content.Draw(region, st)

	var op ebiten.DrawImageOptions
	op.GeoM.Translate(r.X, r.Y-y)
	dst.DrawImage(region, &op)
}

func (s *Scroll) HandlePointer(ev PointerEvent, bounds Rect, st *LayerState, sh *Shell) bool {
	if !bounds.Contains(ev.X, ev.Y) {
		return false
	}
	if ev.Kind == PointerWheel {
		s.setOffset(st, s.offset(st)-ev.WheelY*s.Step)
		s.clamp(bounds, st)
		return true
	}
	y := s.offset(st)
	area := Rect{X: bounds.X, Y: bounds.Y - y, Width: bounds.Width, Height: math.Max(s.ContentHeight, bounds.Height)}
	return dispatch(s.Content, ev, area, st, sh)
}

// Offset returns the scroll offset held for s in st.
func (s *Scroll) Offset(st *LayerState) float64 { return s.offset(st) }

func (s *Scroll) offset(st *LayerState) float64 {
	if s.Key == "" {
		return st.ScrollY
	}
	v, _ := st.Value(scrollValuePrefix + s.Key)
	y, _ := v.(float64)
	return y
}

func (s *Scroll) setOffset(st *LayerState, y float64) {
	if s.Key == "" {
		st.ScrollY = y
		return
	}
	st.SetValue(scrollValuePrefix+s.Key, y)
}

// clamp keeps the offset within the content and returns it.
func (s *Scroll) clamp(r Rect, st *LayerState) float64 {
	limit := math.Max(0, s.ContentHeight-r.Height)
	y := math.Max(0, math.Min(s.offset(st), limit))
	s.setOffset(st, y)
	return y
}

const scrollValuePrefix = "scroll:"

// Expanded makes its child fill the space its container offers, ignoring
// the child's own size hint.
type Expanded struct {
	Child Element
}

func (e Expanded) Draw(dst *ebiten.Image, st *LayerState) {
	e.Child.Draw(dst, st)
}

func (e Expanded) HandlePointer(ev PointerEvent, bounds Rect, st *LayerState, sh *Shell) bool {
	return dispatch(e.Child, ev, bounds, st, sh)
}

// ebitenElement adapts a draw function to Element.
type ebitenElement struct {
	draw func(dst *ebiten.Image)
	size Vec2
}

// DrawFunc wraps a plain draw callback as an Element.
func DrawFunc(size Vec2, draw func(dst *ebiten.Image)) Element {
	return &ebitenElement{draw: draw, size: size}
}

func (e *ebitenElement) SizeHint() Vec2 { return e.size }

func (e *ebitenElement) Draw(dst *ebiten.Image, _ *LayerState) {
	e.draw(dst)
}

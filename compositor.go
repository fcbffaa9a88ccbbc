package pageflow

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultBackground is painted behind every compositor layer unless
// overridden with SetBackground.
var DefaultBackground = Color{R: 0.11, G: 0.11, B: 0.13, A: 1}

// DefaultPaintDepth is the number of topmost visible layers a compositor
// paints. Anything further down is fully covered during a transition.
const DefaultPaintDepth = 2

type layer struct {
	id       uint64
	el       Element
	progress float64
	animated bool
	hidden   bool
	disabled bool
}

// paintCommand is one entry of the sorted paint plan.
type paintCommand struct {
	layer     int
	slot      int
	elevation uint8
	offset    float64
}

// CompositorStats describes the most recent pass.
type CompositorStats struct {
	Layers    int // layers pushed
	Painted   int // layers drawn
	Isolated  int // layers drawn through an offscreen image
	Skipped   int // hidden or below the paint depth
	LiveSlots int // retained layer states
	DrawTime  time.Duration
}

// Compositor stacks full-screen layers. It is rebuilt every frame with
// Begin and Push, but keeps a LayerState per layer across frames. In
// persistent mode states are matched to layers by id; otherwise by
// position.
type Compositor struct {
	layers     []layer
	persist    bool
	elevated   int
	size       Vec2
	hint       Vec2
	hintSet    bool
	transition TransitionStyle
	background Color
	scrim      Color
	depth      int

	slots      []*LayerState
	inUse      []bool
	marked     []uint64
	free       []int
	byID       map[uint64]int
	positional []int
	prevIDs    []uint64
	layerSlots []int
	pass       uint64
	diffed     bool
	wasPersist bool

	plan      []paintCommand
	sortBuf   []paintCommand
	ops       []paintOp
	offscreen []offscreen
	pool      offscreenPool
	stats     CompositorStats

	logger *slog.Logger
	debug  bool
}

// NewCompositor creates an empty compositor painting the top two layers.
func NewCompositor() *Compositor {
	return &Compositor{
		elevated:   -1,
		background: DefaultBackground,
		depth:      DefaultPaintDepth,
		byID:       make(map[uint64]int),
	}
}

// Begin starts a new pass. Layers from the previous pass are dropped;
// their retained states are reconciled on the next Draw or HandlePointer.
func (c *Compositor) Begin() *Compositor {
	c.layers = c.layers[:0]
	c.elevated = -1
	c.scrim = Color{}
	c.hintSet = false
	c.diffed = false
	return c
}

// Push appends a layer and returns its index. The first layer of a pass
// provides the compositor's size hint.
func (c *Compositor) Push(id uint64, el Element) int {
	if !c.hintSet {
		c.hint = sizeHint(el)
		c.hintSet = true
	}
	c.layers = append(c.layers, layer{id: id, el: el})
	c.diffed = false
	return len(c.layers) - 1
}

// Len returns the number of layers in the current pass.
func (c *Compositor) Len() int { return len(c.layers) }

func (c *Compositor) at(i int) *layer {
	if i < 0 || i >= len(c.layers) {
		panic(fmt.Sprintf("pageflow: layer index %d out of range [0, %d)", i, len(c.layers)))
	}
	return &c.layers[i]
}

func (c *Compositor) last() int {
	return len(c.layers) - 1
}

// Hide skips painting layer i. Hidden layers still receive input unless
// disabled.
func (c *Compositor) Hide(i int, hidden bool) *Compositor {
	c.at(i).hidden = hidden
	return c
}

// Disable stops layer i from receiving input.
func (c *Compositor) Disable(i int, disabled bool) *Compositor {
	c.at(i).disabled = disabled
	return c
}

// Progress sets an incoming layer's transition value v in [0, 100]. At 0
// the layer is one full width to the right; at 100 it rests in place.
func (c *Compositor) Progress(i int, v float32) *Compositor {
	l := c.at(i)
	l.animated = true
	l.progress = math.Abs(float64(v)/100 - 1)
	return c
}

// NProgress sets a raw offset of v/100 widths for layer i. Negative values
// move the layer left.
func (c *Compositor) NProgress(i int, v float32) *Compositor {
	l := c.at(i)
	l.animated = true
	l.progress = float64(v) / 100
	return c
}

// HideLast applies Hide to the most recently pushed layer.
func (c *Compositor) HideLast(hidden bool) *Compositor { return c.Hide(c.last(), hidden) }

// DisableLast applies Disable to the most recently pushed layer.
func (c *Compositor) DisableLast(disabled bool) *Compositor { return c.Disable(c.last(), disabled) }

// ProgressLast applies Progress to the most recently pushed layer.
func (c *Compositor) ProgressLast(v float32) *Compositor { return c.Progress(c.last(), v) }

// NProgressLast applies NProgress to the most recently pushed layer.
func (c *Compositor) NProgressLast(v float32) *Compositor { return c.NProgress(c.last(), v) }

// Elevate paints layer i above all others and gives it input first. Its
// retained state moves with it, in positional mode too.
func (c *Compositor) Elevate(i int) *Compositor {
	c.at(i)
	c.elevated = i
	c.diffed = false
	return c
}

// Persist selects id-keyed (true) or positional (false) state retention.
func (c *Compositor) Persist(persist bool) *Compositor {
	c.persist = persist
	return c
}

// SetSize fixes the compositor's size. Zero components fall back to the
// first layer's hint, then to the available space.
func (c *Compositor) SetSize(size Vec2) *Compositor {
	c.size = size
	return c
}

// SetTransition selects how layer progress is rendered.
func (c *Compositor) SetTransition(t TransitionStyle) *Compositor {
	c.transition = t
	return c
}

// SetBackground sets the color painted behind each layer.
func (c *Compositor) SetBackground(bg Color) *Compositor {
	c.background = bg
	return c
}

// SetScrim sets a color painted between the topmost layer and the layers
// beneath it for the current pass.
func (c *Compositor) SetScrim(scrim Color) *Compositor {
	c.scrim = scrim
	return c
}

// SetPaintDepth sets how many topmost visible layers are painted. Zero
// paints every visible layer.
func (c *Compositor) SetPaintDepth(n int) *Compositor {
	if n < 0 {
		n = 0
	}
	c.depth = n
	return c
}

// SetLogger sets the logger used for per-pass debug output.
func (c *Compositor) SetLogger(l *slog.Logger) *Compositor {
	c.logger = l
	return c
}

// SetDebug enables per-pass debug logging.
func (c *Compositor) SetDebug(debug bool) *Compositor {
	c.debug = debug
	return c
}

// Stats returns counters for the most recent Draw.
func (c *Compositor) Stats() CompositorStats { return c.stats }

// SizeHint implements Sizer.
func (c *Compositor) SizeHint() Vec2 {
	h := c.hint
	if c.size.X > 0 {
		h.X = c.size.X
	}
	if c.size.Y > 0 {
		h.Y = c.size.Y
	}
	return h
}

// StateAt returns the retained state bound to layer i in the current pass.
func (c *Compositor) StateAt(i int) *LayerState {
	c.at(i)
	c.diff()
	return c.slots[c.layerSlots[i]]
}

// Dispose frees pooled offscreen images.
func (c *Compositor) Dispose() {
	c.pool.Purge()
}

func (c *Compositor) bounds(r Rect) Rect {
	h := c.SizeHint()
	if h.X > 0 && h.X < r.Width {
		r.Width = h.X
	}
	if h.Y > 0 && h.Y < r.Height {
		r.Height = h.Y
	}
	return r
}

// --- State reconciliation ---

func (c *Compositor) alloc(id uint64) int {
	var s int
	if n := len(c.free); n > 0 {
		s = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		s = len(c.slots)
		c.slots = append(c.slots, &LayerState{})
		c.inUse = append(c.inUse, false)
		c.marked = append(c.marked, 0)
	}
	c.slots[s].reset(id, c.pass)
	c.inUse[s] = true
	return s
}

func (c *Compositor) release(s int) {
	if byID, ok := c.byID[c.slots[s].id]; ok && byID == s {
		delete(c.byID, c.slots[s].id)
	}
	c.slots[s].reset(0, 0)
	c.inUse[s] = false
	c.free = append(c.free, s)
}

// diff binds every layer of the pass to a state slot and releases slots no
// layer claimed. It runs at most once per pass.
func (c *Compositor) diff() {
	if c.diffed {
		return
	}
	c.diffed = true
	c.pass++

	if c.persist != c.wasPersist {
		for s := range c.slots {
			if c.inUse[s] {
				c.release(s)
			}
		}
		c.positional = c.positional[:0]
		c.prevIDs = c.prevIDs[:0]
		c.wasPersist = c.persist
	}

	n := len(c.layers)
	if cap(c.layerSlots) < n {
		c.layerSlots = make([]int, n)
	}
	c.layerSlots = c.layerSlots[:n]

	if c.persist {
		c.diffKeyed()
	} else {
		c.diffPositional()
	}

	c.prevIDs = c.prevIDs[:0]
	for _, l := range c.layers {
		c.prevIDs = append(c.prevIDs, l.id)
	}
}

func (c *Compositor) diffKeyed() {
	// Top-most first, so the visible occurrence of a repeated id keeps the
	// registered slot.
	for i := len(c.layers) - 1; i >= 0; i-- {
		l := c.layers[i]
		s, ok := c.byID[l.id]
		if !ok || c.marked[s] == c.pass {
			// A repeated id gets a slot of its own that is not registered,
			// so it lives for one pass only.
			s = c.alloc(l.id)
			if !ok {
				c.byID[l.id] = s
			}
		}
		c.marked[s] = c.pass
		c.layerSlots[i] = s
	}
	for s := range c.slots {
		if c.inUse[s] && c.marked[s] != c.pass {
			c.release(s)
		}
	}
}

func (c *Compositor) diffPositional() {
	prev := c.positional
	n := len(c.layers)

	if e := c.elevated; e >= 0 && e < len(prev) {
		id := c.layers[e].id
		for p, pid := range c.prevIDs {
			if pid == id && p != e && p < len(prev) {
				prev[p], prev[e] = prev[e], prev[p]
				break
			}
		}
	}

	for i, l := range c.layers {
		if i < len(prev) {
			s := prev[i]
			c.slots[s].id = l.id
			c.layerSlots[i] = s
		} else {
			c.layerSlots[i] = c.alloc(l.id)
		}
		c.marked[c.layerSlots[i]] = c.pass
	}
	for i := n; i < len(prev); i++ {
		c.release(prev[i])
	}
	c.positional = append(c.positional[:0], c.layerSlots...)
}

// --- Paint plan ---

func (c *Compositor) buildPlan(visibleOnly bool) {
	c.plan = c.plan[:0]
	for i, l := range c.layers {
		if visibleOnly && l.hidden {
			continue
		}
		cmd := paintCommand{layer: i, slot: c.layerSlots[i]}
		if i == c.elevated {
			cmd.elevation = 1
		}
		if l.animated {
			cmd.offset = l.progress
		}
		c.plan = append(c.plan, cmd)
	}
	c.mergeSort()
}

// commandLessOrEqual returns true if a should paint before or at the same
// position as b. Using <= for the layer index keeps the sort stable.
func commandLessOrEqual(a, b paintCommand) bool {
	if a.elevation != b.elevation {
		return a.elevation < b.elevation
	}
	return a.layer <= b.layer
}

// mergeSort sorts c.plan in-place using c.sortBuf as scratch space.
// Bottom-up merge sort: zero allocations after the sort buffer reaches its
// high-water mark.
func (c *Compositor) mergeSort() {
	n := len(c.plan)
	if n <= 1 {
		return
	}
	if cap(c.sortBuf) < n {
		c.sortBuf = make([]paintCommand, n)
	}
	c.sortBuf = c.sortBuf[:n]

	a := c.plan
	b := c.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(c.plan, c.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []paintCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}

// paintSet returns the part of the plan that is actually painted.
func (c *Compositor) paintSet() []paintCommand {
	c.diff()
	c.buildPlan(true)
	cmds := c.plan
	if c.depth > 0 && len(cmds) > c.depth {
		cmds = cmds[len(cmds)-c.depth:]
	}
	return cmds
}

// paintOp is one resolved draw of a pass, in paint order.
type paintOp struct {
	layer    int
	slot     int
	scrim    bool    // the scrim is painted just before this layer
	isolated bool    // drawn through an offscreen image
	dx       float64 // horizontal translation in pixels
	alpha    float32
}

// paintOps resolves the paint set into draw operations for a pass of the
// given width.
func (c *Compositor) paintOps(width float64) []paintOp {
	cmds := c.paintSet()
	c.ops = c.ops[:0]
	for k, cmd := range cmds {
		op := paintOp{
			layer:    cmd.layer,
			slot:     cmd.slot,
			scrim:    k > 0 && k == len(cmds)-1,
			isolated: k > 0 || cmd.offset != 0,
			alpha:    1,
		}
		switch c.transition {
		case TransitionFade:
			op.alpha = float32(1 - clamp01(math.Abs(cmd.offset)))
		default:
			op.dx = math.Round(cmd.offset * width)
		}
		c.ops = append(c.ops, op)
	}
	return c.ops
}

// --- Element ---

// Draw implements Element. The layer state argument is unused; each layer
// receives its own retained state.
func (c *Compositor) Draw(dst *ebiten.Image, _ *LayerState) {
	start := time.Now()
	r := c.bounds(rectOf(dst))
	ops := c.paintOps(r.Width)
	c.stats = CompositorStats{
		Layers:    len(c.layers),
		Skipped:   len(c.layers) - len(ops),
		LiveSlots: len(c.slots) - len(c.free),
	}

	w, h := int(math.Ceil(r.Width)), int(math.Ceil(r.Height))
	if w <= 0 || h <= 0 {
		return
	}
	clip := subImage(dst, r)

	for _, op := range ops {
		el := c.layers[op.layer].el
		st := c.slots[op.slot]
		if op.scrim {
			fillRect(clip, r, c.scrim)
		}
		c.stats.Painted++

		if !op.isolated {
			fillRect(clip, r, c.background)
			el.Draw(clip, st)
			continue
		}

		off := c.pool.Get(w, h)
		region := off.region
		fillRect(region, Rect{Width: float64(w), Height: float64(h)}, c.background)
		el.Draw(region, st)

		var dop ebiten.DrawImageOptions
		dop.ColorScale.ScaleAlpha(op.alpha)
		dop.GeoM.Translate(op.dx+r.X, r.Y)
		clip.DrawImage(region, &dop)
		c.offscreen = append(c.offscreen, off)
		c.stats.Isolated++
	}

	for _, o := range c.offscreen {
		c.pool.Put(o)
	}
	clear(c.offscreen)
	c.offscreen = c.offscreen[:0]
	c.stats.DrawTime = time.Since(start)

	if c.debug {
		c.log().Debug("compositor pass",
			slog.Int("layers", c.stats.Layers),
			slog.Int("painted", c.stats.Painted),
			slog.Int("isolated", c.stats.Isolated),
			slog.Int("live_slots", c.stats.LiveSlots),
			slog.Duration("draw", c.stats.DrawTime),
		)
	}
}

// HandlePointer implements Handler. Layers are visited top-most first;
// disabled layers are skipped and the first capture stops propagation.
func (c *Compositor) HandlePointer(ev PointerEvent, bounds Rect, _ *LayerState, sh *Shell) bool {
	c.diff()
	c.buildPlan(false)
	r := c.bounds(bounds)

	for k := len(c.plan) - 1; k >= 0; k-- {
		cmd := c.plan[k]
		l := &c.layers[cmd.layer]
		if l.disabled {
			continue
		}
		local := ev
		if c.transition == TransitionSlide && cmd.offset != 0 {
			local = ev.Translate(-math.Round(cmd.offset*r.Width), 0)
		}
		if dispatch(l.el, local, r, c.slots[cmd.slot], sh) {
			return true
		}
	}
	return false
}

func (c *Compositor) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return Logger()
}

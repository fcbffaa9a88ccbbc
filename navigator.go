package pageflow

import (
	"log/slog"
	"slices"
	"time"
)

// base holds what every navigator shares: the current page, the back
// history and the page registry.
type base[K Mapper[M], M any] struct {
	current K
	history []K
	pages   *Registry[K, M]
	wrap    func(Action[K]) M
	opts    options

	compositor *Compositor
	root       Element
	rootState  LayerState
	shell      Shell
}

func newBase[K Mapper[M], M any](initial K, wrap func(Action[K]) M, opts []Option) base[K, M] {
	if wrap == nil {
		panic("pageflow: navigator requires an action wrapper")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := NewCompositor().
		SetTransition(o.transition).
		SetDebug(o.debug).
		SetLogger(o.logger)
	if o.background != nil {
		c.SetBackground(*o.background)
	}
	return base[K, M]{
		current:    initial,
		pages:      NewRegistry[K, M](),
		wrap:       wrap,
		opts:       o,
		compositor: c,
	}
}

func (b *base[K, M]) log() *slog.Logger {
	if b.opts.logger != nil {
		return b.opts.logger
	}
	return Logger()
}

func (b *base[K, M]) now() time.Time {
	return b.opts.clock()
}

// newFrame starts a transition frame tagged with gen.
func (b *base[K, M]) newFrame(gen uint64) *Frame {
	f := NewFrameAt(b.now()).Duration(b.opts.duration).Ease(b.opts.curve)
	f.generation = gen
	return f
}

// ensure returns the entry for key, creating it and collecting its load
// task if this is the first visit.
func (b *base[K, M]) ensure(key K, chrome func(K) *Header[M]) (*PageEntry[M], Task[M]) {
	var load Task[M]
	e, created := b.pages.GetOrCreate(key, func(k K) *PageEntry[M] {
		comp := k.Component()
		if l, ok := comp.(Loader[M]); ok {
			load = l.OnLoad()
		}
		e := &PageEntry[M]{Component: comp}
		if chrome != nil {
			e.Chrome = chrome(k)
		}
		return e
	})
	if created {
		b.log().Debug("page created", slog.Any("page", key), slog.Uint64("id", e.ID), slog.Int("load_cmds", load.Len()))
	}
	return e, load
}

// header builds the default chrome for key, honoring its optional
// provider interfaces.
func (b *base[K, M]) header(key K, left HeaderButton[M]) *Header[M] {
	h := NewHeader[M](localize(b.opts.localizer, key.Title()), left)
	if b.opts.header != nil {
		h.SetSettings(b.opts.header)
	}
	if p, ok := any(key).(HeaderSettingsProvider); ok {
		if s := p.HeaderSettings(); s != nil {
			h.SetSettings(s)
		}
	}
	if p, ok := any(key).(BackButtonProvider[M]); ok {
		h.SetLeftButton(p.BackButton())
	}
	if p, ok := any(key).(RightButtonProvider[M]); ok {
		h.SetRightButton(p.RightButton())
	}
	if p, ok := any(key).(TitleWidgetProvider); ok {
		h.SetTitleWidget(p.TitleWidget())
	}
	return h
}

// backButton is the default left header button.
func (b *base[K, M]) backButton() HeaderButton[M] {
	return IconButton[M]{Icon: IconBack, Message: b.wrap(Back[K]())}
}

// IsOnPage reports whether page is the current page.
func (b *base[K, M]) IsOnPage(page K) bool {
	return b.current == page
}

// IsOnPageAnd reports whether page is current and pred holds for it.
func (b *base[K, M]) IsOnPageAnd(page K, pred func(K) bool) bool {
	return b.current == page && pred(b.current)
}

// CurrentPage returns the current page key.
func (b *base[K, M]) CurrentPage() K {
	return b.current
}

// History returns a copy of the back history, oldest first.
func (b *base[K, M]) History() []K {
	return slices.Clone(b.history)
}

// PopHistory drops the most recent history entry without animating.
func (b *base[K, M]) PopHistory() (K, bool) {
	var zero K
	n := len(b.history)
	if n == 0 {
		return zero, false
	}
	k := b.history[n-1]
	b.history[n-1] = zero
	b.history = b.history[:n-1]
	return k, true
}

// Pages exposes the page registry.
func (b *base[K, M]) Pages() *Registry[K, M] {
	return b.pages
}

// Compositor exposes the page layer stack.
func (b *base[K, M]) Compositor() *Compositor {
	return b.compositor
}

// Dispose frees the offscreen images held by the page compositor.
func (b *base[K, M]) Dispose() {
	b.compositor.Dispose()
}

// Update forwards msg to the current page.
func (b *base[K, M]) Update(msg M) Task[M] {
	return b.pages.Lookup(b.current).Component.Update(msg)
}

// dispatchPointer routes ev through the last view.
func (b *base[K, M]) dispatchPointer(ev PointerEvent, bounds Rect) []M {
	if b.root == nil {
		return nil
	}
	b.shell.Reset()
	dispatch(b.root, ev, bounds, &b.rootState, &b.shell)
	return Messages[M](&b.shell)
}

package pageflow

import (
	"log/slog"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tanema/gween/ease"
)

type options struct {
	logger     *slog.Logger
	clock      func() time.Time
	duration   time.Duration
	curve      ease.TweenFunc
	transition TransitionStyle
	localizer  *i18n.Localizer
	header     *HeaderSettings
	drawer     *DrawerSettings
	tabs       *TabsSettings
	tabsPos    *Position
	background *Color
	debug      bool
}

func defaultOptions() options {
	return options{
		clock:    time.Now,
		duration: DefaultFrameDuration,
	}
}

// Option configures a navigator.
type Option func(*options)

// WithLogger sets the navigator's logger. The package logger is used
// otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.clock = now
		}
	}
}

// WithFrameDuration sets the transition length.
func WithFrameDuration(d time.Duration) Option {
	return func(o *options) { o.duration = d }
}

// WithCurve eases transitions with fn.
func WithCurve(fn ease.TweenFunc) Option {
	return func(o *options) { o.curve = fn }
}

// WithTransition selects slide or fade rendering.
func WithTransition(t TransitionStyle) Option {
	return func(o *options) { o.transition = t }
}

// WithLocalizer translates page titles. Titles are used as message ids.
func WithLocalizer(l *i18n.Localizer) Option {
	return func(o *options) { o.localizer = l }
}

// WithHeaderSettings sets the header settings used by pages that do not
// provide their own.
func WithHeaderSettings(s HeaderSettings) Option {
	return func(o *options) { o.header = &s }
}

// WithDrawerSettings sets the drawer settings used when the initial page
// does not provide any.
func WithDrawerSettings(s DrawerSettings) Option {
	return func(o *options) { o.drawer = &s }
}

// WithTabsSettings sets the initial tab bar settings.
func WithTabsSettings(s TabsSettings) Option {
	return func(o *options) { o.tabs = &s }
}

// WithTabsPosition places the tab bar of a tabs navigator.
func WithTabsPosition(p Position) Option {
	return func(o *options) { o.tabsPos = &p }
}

// WithBackground sets the color painted behind each page.
func WithBackground(c Color) Option {
	return func(o *options) { o.background = &c }
}

// WithDebug enables debug logging of navigation and compositing.
func WithDebug(debug bool) Option {
	return func(o *options) { o.debug = debug }
}

// WithConfig applies a loaded configuration. Options given after it
// override its values.
func WithConfig(cfg *Config) Option {
	return func(o *options) {
		if cfg == nil {
			return
		}
		cfg.apply(o)
	}
}

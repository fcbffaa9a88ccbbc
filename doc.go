// Package pageflow is page navigation for [Ebitengine] apps: a stack
// navigator with animated push and pop, a drawer navigator with a fixed or
// sliding side panel, and a tabs navigator with a tab bar.
//
// # Quick start
//
// Define a comparable page key that implements [Mapper], wrap navigator
// actions into your message type, and hand the navigator to [Run]:
//
//	type Page int
//
//	func (p Page) Title() string                   { ... }
//	func (p Page) Component() pageflow.Page[Msg]   { ... }
//
//	nav, load := pageflow.NewStack(Home, func(a pageflow.Action[Page]) Msg {
//		return Msg{Nav: &a}
//	})
//
// The app's Update routes navigation messages to [Stack.Handle] and all
// others to [Stack.Update], which forwards them to the current page.
//
// # Transitions
//
// A transition is sampled by a [Frame]: raw progress runs from 0 to 100
// over [DefaultFrameDuration] and may be shaped with a gween easing curve.
// The host calls Advance once per update tick; there is no timer. Each
// transition carries a generation, so a Tick action holding the frame of a
// superseded transition is ignored.
//
// # Layers
//
// Pages are painted by a [Compositor]. It is rebuilt every frame but keeps
// a [LayerState] per layer, matched by page id in persistent mode, so a
// page coming back from history keeps its scroll position. Only the top two
// visible layers are painted; layers other than the bottom one are drawn
// through pooled offscreen images so their translation does not disturb
// what is underneath.
//
// # Configuration
//
// [LoadConfig] reads TOML or YAML files with animation, header, drawer and
// tabs defaults; pass the result with [WithConfig]. Page titles are message
// ids for go-i18n when a localizer is set with [WithLocalizer].
//
// [Ebitengine]: https://ebitengine.org
package pageflow

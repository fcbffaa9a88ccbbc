package pageflow

import "fmt"

// ActionKind identifies the navigation request carried by an Action.
type ActionKind uint8

const (
	ActionNavigate ActionKind = iota // show Page
	ActionGoBack                     // return to the previous page
	ActionTick                       // advance the in-flight transition
	ActionDrawer                     // open or close the sliding drawer
)

func (k ActionKind) String() string {
	switch k {
	case ActionNavigate:
		return "navigate"
	case ActionGoBack:
		return "go_back"
	case ActionTick:
		return "tick"
	case ActionDrawer:
		return "drawer"
	default:
		return fmt.Sprintf("ActionKind(%d)", uint8(k))
	}
}

// DrawerOp is the payload of an ActionDrawer request.
type DrawerOp uint8

const (
	DrawerExpand DrawerOp = iota
	DrawerHide
)

// Action is a request to a navigator. Apps wrap actions into their own
// message type with the function given to the navigator constructor, and
// route them back through Handle.
type Action[K comparable] struct {
	Kind   ActionKind
	Page   K      // ActionNavigate only
	Frame  *Frame // ActionTick only
	Drawer DrawerOp
}

// NavigateTo requests that page becomes the current page.
func NavigateTo[K comparable](page K) Action[K] {
	return Action[K]{Kind: ActionNavigate, Page: page}
}

// Back requests a return to the previous page.
func Back[K comparable]() Action[K] {
	return Action[K]{Kind: ActionGoBack}
}

// TickWith hands a frame back to the navigator that issued it.
func TickWith[K comparable](f *Frame) Action[K] {
	return Action[K]{Kind: ActionTick, Frame: f}
}

// ExpandDrawer opens a sliding drawer.
func ExpandDrawer[K comparable]() Action[K] {
	return Action[K]{Kind: ActionDrawer, Drawer: DrawerExpand}
}

// HideDrawer closes a sliding drawer.
func HideDrawer[K comparable]() Action[K] {
	return Action[K]{Kind: ActionDrawer, Drawer: DrawerHide}
}

func (a Action[K]) String() string {
	switch a.Kind {
	case ActionNavigate:
		return fmt.Sprintf("navigate(%v)", a.Page)
	case ActionDrawer:
		if a.Drawer == DrawerExpand {
			return "drawer(expand)"
		}
		return "drawer(hide)"
	default:
		return a.Kind.String()
	}
}

// Navigator is the query surface shared by the stack, drawer and tabs
// navigators.
type Navigator[K comparable] interface {
	// IsOnPage reports whether page is the current page.
	IsOnPage(page K) bool
	// IsOnPageAnd reports whether page is current and pred holds for it.
	IsOnPageAnd(page K, pred func(K) bool) bool
	// ClearHistory discards the back history.
	ClearHistory()
	// PopHistory drops the most recent history entry without animating.
	PopHistory() (K, bool)
	CurrentPage() K
	// History returns a copy of the back history, oldest first.
	History() []K
}

package pageflow

// Page is a screen owned by a navigator. View is called every frame while the
// page is part of the layer stack; Update receives messages forwarded by the
// navigator's Update.
type Page[M any] interface {
	View() Element
	Update(msg M) Task[M]
}

// Loader is implemented by pages that need work done when they are first
// created. The task runs once per page instance.
type Loader[M any] interface {
	OnLoad() Task[M]
}

// Mapper is the app-defined page key. Values are compared for equality to
// find an existing page instance; Component builds a new one.
type Mapper[M any] interface {
	comparable
	Title() string
	Component() Page[M]
}

// The interfaces below are optional. A page key may implement any of them to
// customise its chrome; the navigator falls back to its defaults otherwise.

// HeaderSettingsProvider overrides the header settings for a stack page.
type HeaderSettingsProvider interface {
	HeaderSettings() *HeaderSettings
}

// BackButtonProvider replaces the header's left button.
type BackButtonProvider[M any] interface {
	BackButton() HeaderButton[M]
}

// RightButtonProvider adds a button to the right of the header.
type RightButtonProvider[M any] interface {
	RightButton() HeaderButton[M]
}

// TitleWidgetProvider replaces the header title.
type TitleWidgetProvider interface {
	TitleWidget() TitleElement
}

// DrawerSettingsProvider supplies drawer settings. Only the initial page of a
// drawer navigator is consulted.
type DrawerSettingsProvider interface {
	DrawerSettings() *DrawerSettings
}

// DrawerOptionProvider replaces the drawer entry rendered for a page.
type DrawerOptionProvider[M any] interface {
	DrawerOption() DrawerOption[M]
}

// TabsSettingsProvider supplies tab bar settings. The settings of the page
// being navigated to replace the bar's settings.
type TabsSettingsProvider interface {
	TabsSettings() *TabsSettings
}

// TabIconProvider names the icon shown for a page in the tab bar.
type TabIconProvider interface {
	TabIcon() string
}

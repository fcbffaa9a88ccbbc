package pageflow

import "github.com/hajimehoshi/ebiten/v2/text/v2"

// ButtonSettings styles header buttons.
type ButtonSettings struct {
	Width      float64
	Height     float64
	Background Color
	IconColor  Color
	IconSize   float64
}

// TitleSettings styles the header title.
type TitleSettings struct {
	Color Color
	Face  text.Face // nil selects the debug font
	Align Alignment
}

// HeaderSettings styles a page header.
type HeaderSettings struct {
	Height     float64
	Background Color
	ShowHeader bool
	Button     ButtonSettings
	Title      TitleSettings
}

// DefaultHeaderSettings returns a 50px transparent header with white
// 20px icons and a white title.
func DefaultHeaderSettings() HeaderSettings {
	return HeaderSettings{
		Height:     50,
		Background: ColorTransparent,
		ShowHeader: true,
		Button: ButtonSettings{
			Width:     40,
			Height:    30,
			IconColor: ColorWhite,
			IconSize:  20,
		},
		Title: TitleSettings{Color: ColorWhite},
	}
}

// HeaderButton renders a header button for the given settings.
type HeaderButton[M any] interface {
	ButtonView(s ButtonSettings) Element
}

// TitleElement renders a header title.
type TitleElement interface {
	TitleView(title string, s TitleSettings) Element
}

// IconButton is a header button showing an icon that publishes Message.
type IconButton[M any] struct {
	Icon    string
	Message M
}

func (b IconButton[M]) ButtonView(s ButtonSettings) Element {
	btn := NewButton[M](Icon{Name: b.Icon, Size: s.IconSize, Color: s.IconColor}, b.Message)
	btn.Size = Vec2{s.Width, s.Height}
	btn.Background = s.Background
	return btn
}

type textTitle struct{}

func (textTitle) TitleView(title string, s TitleSettings) Element {
	return &Label{Text: title, Face: s.Face, Color: s.Color, Align: s.Align}
}

// Header is the title bar shown above a stack or drawer page.
type Header[M any] struct {
	title    string
	widget   TitleElement
	left     HeaderButton[M]
	right    HeaderButton[M]
	settings HeaderSettings
}

// NewHeader creates a header with the given title and left button.
func NewHeader[M any](title string, left HeaderButton[M]) *Header[M] {
	return &Header[M]{
		title:    title,
		widget:   textTitle{},
		left:     left,
		settings: DefaultHeaderSettings(),
	}
}

// Title returns the header's (localized) title.
func (h *Header[M]) Title() string { return h.title }

// Settings returns the current settings.
func (h *Header[M]) Settings() HeaderSettings { return h.settings }

// SetSettings replaces the settings. Nil restores the defaults.
func (h *Header[M]) SetSettings(s *HeaderSettings) *Header[M] {
	if s == nil {
		h.settings = DefaultHeaderSettings()
		return h
	}
	h.settings = *s
	return h
}

// SetLeftButton replaces the left (back) button.
func (h *Header[M]) SetLeftButton(b HeaderButton[M]) *Header[M] {
	h.left = b
	return h
}

// SetRightButton sets an optional right button.
func (h *Header[M]) SetRightButton(b HeaderButton[M]) *Header[M] {
	h.right = b
	return h
}

// SetTitleWidget replaces the title renderer.
func (h *Header[M]) SetTitleWidget(w TitleElement) *Header[M] {
	if w == nil {
		w = textTitle{}
	}
	h.widget = w
	return h
}

// Visible reports whether the header should be shown at all.
func (h *Header[M]) Visible() bool { return h.settings.ShowHeader }

// View builds the header row. The left button is omitted when showLeft is
// false; its slot keeps its width so the title does not jump.
func (h *Header[M]) View(showLeft bool) Element {
	s := h.settings
	slot := Vec2{s.Button.Width, s.Button.Height}

	var left Element = Spacer{Size: slot}
	if showLeft && h.left != nil {
		left = h.left.ButtonView(s.Button)
	}
	var right Element = Spacer{Size: slot}
	if h.right != nil {
		right = h.right.ButtonView(s.Button)
	}

	row := NewRow(left, Expanded{Child: h.widget.TitleView(h.title, s.Title)}, right)
	row.Height = s.Height
	row.Background = s.Background
	row.Align = AlignCenter
	row.Spacing = 8
	row.Padding = Padding{Left: 5, Right: 5}
	return row
}

// withHeader stacks header above content when the header is visible.
func withHeader[M any](h *Header[M], showLeft bool, content Element) Element {
	if h == nil || !h.Visible() {
		return content
	}
	return NewColumn(h.View(showLeft), content)
}

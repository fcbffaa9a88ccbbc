package pageflow

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color is handed to ebiten.
type Color struct {
	R, G, B, A float64
}

var (
	// ColorWhite is opaque white.
	ColorWhite = Color{1, 1, 1, 1}
	// ColorBlack is opaque black.
	ColorBlack = Color{0, 0, 0, 1}
	// ColorTransparent paints nothing.
	ColorTransparent = Color{}
)

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// IsZero reports whether c is fully transparent.
func (c Color) IsZero() bool {
	return c.A <= 0
}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for positions, offsets and size hints. A zero
// component in a size hint means "fill the available space".
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Inset shrinks r by the given padding.
func (r Rect) Inset(p Padding) Rect {
	r.X += p.Left
	r.Y += p.Top
	r.Width -= p.Left + p.Right
	r.Height -= p.Top + p.Bottom
	if r.Width < 0 {
		r.Width = 0
	}
	if r.Height < 0 {
		r.Height = 0
	}
	return r
}

func (r Rect) image() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)), int(math.Ceil(r.Y+r.Height)),
	)
}

// rectOf returns the bounds of img as a Rect.
func rectOf(img *ebiten.Image) Rect {
	b := img.Bounds()
	return Rect{X: float64(b.Min.X), Y: float64(b.Min.Y), Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// Padding defines spacing on all four sides of an element.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// UniformPadding creates a Padding with the same value on all sides.
func UniformPadding(v float64) Padding {
	return Padding{Top: v, Right: v, Bottom: v, Left: v}
}

// TransitionStyle selects how the compositor renders layer progress.
type TransitionStyle uint8

const (
	TransitionSlide TransitionStyle = iota // horizontal translation by progress * width
	TransitionFade                         // opacity 1 - |progress|
)

// Position places the tab bar relative to the pages.
type Position uint8

const (
	PositionBottom Position = iota // tab bar under the pages (default)
	PositionTop                    // tab bar above the pages
)

// DrawerMode selects how the drawer panel is laid out.
type DrawerMode uint8

const (
	DrawerFixed   DrawerMode = iota // panel always visible beside the pages
	DrawerSliding                   // panel slides over the pages on demand
)

// Alignment positions content along an axis.
type Alignment uint8

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// subImage returns the part of dst covered by r.
func subImage(dst *ebiten.Image, r Rect) *ebiten.Image {
	return dst.SubImage(r.image()).(*ebiten.Image)
}

// whitePixel is scaled and tinted to blend translucent fills.
var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(color.White)
}

// colorScale converts to a premultiplied ebiten color scale.
func (c Color) colorScale() ebiten.ColorScale {
	var cs ebiten.ColorScale
	a := clamp01(c.A)
	cs.SetR(float32(clamp01(c.R) * a))
	cs.SetG(float32(clamp01(c.G) * a))
	cs.SetB(float32(clamp01(c.B) * a))
	cs.SetA(float32(a))
	return cs
}

// fillRect paints r with c. Opaque colors replace what is underneath,
// translucent ones are blended over it and transparent ones are skipped.
func fillRect(dst *ebiten.Image, r Rect, c Color) {
	if c.IsZero() || r.Empty() {
		return
	}
	if c.A >= 1 {
		subImage(dst, r).Fill(c.toRGBA())
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale = c.colorScale()
	subImage(dst, r).DrawImage(whitePixel, &op)
}

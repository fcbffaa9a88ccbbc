package pageflow

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Built-in icon names.
const (
	IconBack  = "chevron-left"
	IconBars  = "bars"
	IconDot   = "circle"
	IconHouse = "house"
	IconGear  = "gear"
	IconList  = "list"
)

// Icons are drawn white on a 24x24 grid and tinted at draw time.
var iconSources = map[string]string{
	IconBack: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
<path fill="#ffffff" d="M15.4 4.6 8 12l7.4 7.4-1.8 1.8L4.4 12l9.2-9.2z"/></svg>`,
	IconBars: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
<path fill="#ffffff" d="M3 5h18v2.5H3zM3 10.75h18v2.5H3zM3 16.5h18V19H3z"/></svg>`,
	IconDot: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
<circle fill="#ffffff" cx="12" cy="12" r="7"/></svg>`,
	IconHouse: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
<path fill="#ffffff" d="M12 3 2 12h3v8h5v-6h4v6h5v-8h3z"/></svg>`,
	IconGear: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
<path fill="#ffffff" d="M10 2h4l.6 2.6 2.2 1.3 2.5-.9 2 3.4-2 1.8v2.6l2 1.8-2 3.4-2.5-.9-2.2 1.3L14 22h-4l-.6-2.6-2.2-1.3-2.5.9-2-3.4 2-1.8v-2.6l-2-1.8 2-3.4 2.5.9 2.2-1.3zM12 8.5a3.5 3.5 0 1 0 0 7 3.5 3.5 0 0 0 0-7z"/></svg>`,
	IconList: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
<path fill="#ffffff" d="M3 5h3v3H3zM8 5.5h13v2H8zM3 10.5h3v3H3zM8 11h13v2H8zM3 16h3v3H3zM8 16.5h13v2H8z"/></svg>`,
}

// RegisterIcon adds or replaces an icon. The SVG should be drawn in white so
// that tinting produces the requested color.
func RegisterIcon(name, svg string) {
	iconSources[name] = svg
	icons.Purge()
}

// rasterizeIcon renders the named icon into a size x size RGBA image.
func rasterizeIcon(name string, size int) (*image.RGBA, error) {
	src, ok := iconSources[name]
	if !ok {
		return nil, fmt.Errorf("pageflow: unknown icon %q", name)
	}
	icon, err := oksvg.ReadIconStream(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("pageflow: parse icon %q: %w", name, err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1)
	return img, nil
}

// --- Cache ---

const defaultIconCacheSize = 32

// iconCache keeps rasterized icons keyed by name and pixel size, evicting
// the least recently used entry when full.
type iconCache struct {
	images  map[string]*ebiten.Image
	order   []string
	maxSize int
}

var icons = newIconCache(defaultIconCacheSize)

func newIconCache(maxSize int) *iconCache {
	return &iconCache{
		images:  make(map[string]*ebiten.Image),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
	}
}

func iconKey(name string, size int) string {
	return fmt.Sprintf("%s@%d", name, size)
}

func (c *iconCache) Get(key string) *ebiten.Image {
	if img, ok := c.images[key]; ok {
		c.moveToEnd(key)
		return img
	}
	return nil
}

func (c *iconCache) Set(key string, img *ebiten.Image) {
	if _, ok := c.images[key]; ok {
		c.images[key] = img
		c.moveToEnd(key)
		return
	}
	if len(c.order) >= c.maxSize {
		c.evictOldest()
	}
	c.images[key] = img
	c.order = append(c.order, key)
}

func (c *iconCache) Len() int { return len(c.order) }

func (c *iconCache) moveToEnd(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, key)
			return
		}
	}
}

func (c *iconCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	if img, ok := c.images[oldest]; ok {
		img.Deallocate()
		delete(c.images, oldest)
	}
}

// Purge deallocates every cached image.
func (c *iconCache) Purge() {
	for _, img := range c.images {
		img.Deallocate()
	}
	clear(c.images)
	c.order = c.order[:0]
}

// iconImage returns the cached rasterization of name at size pixels.
func iconImage(name string, size int) (*ebiten.Image, error) {
	key := iconKey(name, size)
	if img := icons.Get(key); img != nil {
		return img, nil
	}
	rgba, err := rasterizeIcon(name, size)
	if err != nil {
		return nil, err
	}
	img := ebiten.NewImageFromImage(rgba)
	icons.Set(key, img)
	return img, nil
}

// missingIcons holds names already reported as unavailable.
var missingIcons sync.Map

// Icon draws a built-in or registered icon centered in its bounds. Icons
// are rasterized white and tinted with Color when drawn, so one cached
// image serves every color.
type Icon struct {
	Name  string
	Size  float64
	Color Color
}

// NewIcon creates a white icon.
func NewIcon(name string, size float64) Icon {
	return Icon{Name: name, Size: size, Color: ColorWhite}
}

func (i Icon) SizeHint() Vec2 { return Vec2{i.Size, i.Size} }

func (i Icon) Draw(dst *ebiten.Image, _ *LayerState) {
	px := int(math.Round(i.Size))
	if px <= 0 {
		return
	}
	img, err := iconImage(i.Name, px)
	if err != nil {
		if _, seen := missingIcons.LoadOrStore(i.Name, struct{}{}); !seen {
			Logger().Warn("icon unavailable", slog.String("icon", i.Name), slog.Any("error", err))
		}
		return
	}
	r := rectOf(dst)
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(math.Round(r.X+(r.Width-float64(px))/2), math.Round(r.Y+(r.Height-float64(px))/2))
	op.ColorScale.ScaleWithColor(i.Color.toRGBA())
	dst.DrawImage(img, &op)
}

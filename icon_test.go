package pageflow

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestRasterizeIcon(t *testing.T) {
	img, err := rasterizeIcon(IconBars, 24)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 24 {
		t.Fatalf("bounds = %v", b)
	}
	if a := img.RGBAAt(12, 6).A; a == 0 {
		t.Error("bar pixel should be painted")
	}
	if a := img.RGBAAt(12, 9).A; a != 0 {
		t.Errorf("gap pixel alpha = %d, want 0", a)
	}
}

func TestRasterizeBuiltins(t *testing.T) {
	for _, name := range []string{IconBack, IconBars, IconDot, IconHouse, IconGear, IconList} {
		img, err := rasterizeIcon(name, 16)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		painted := false
		for i := 3; i < len(img.Pix); i += 4 {
			if img.Pix[i] != 0 {
				painted = true
				break
			}
		}
		if !painted {
			t.Errorf("%s rasterized to an empty image", name)
		}
	}
}

func TestRasterizeUnknownIcon(t *testing.T) {
	if _, err := rasterizeIcon("nope", 16); err == nil {
		t.Error("expected error for unknown icon")
	}
}

func TestRegisterIcon(t *testing.T) {
	RegisterIcon("square", `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><rect fill="#ffffff" x="0" y="0" width="24" height="24"/></svg>`)
	defer delete(iconSources, "square")

	img, err := rasterizeIcon("square", 8)
	if err != nil {
		t.Fatal(err)
	}
	if img.RGBAAt(4, 4).A != 255 {
		t.Errorf("center alpha = %d", img.RGBAAt(4, 4).A)
	}
}

func TestIconCacheLRU(t *testing.T) {
	c := newIconCache(2)
	a := ebiten.NewImage(1, 1)
	b := ebiten.NewImage(1, 1)
	d := ebiten.NewImage(1, 1)

	c.Set("a", a)
	c.Set("b", b)
	if c.Get("a") != a {
		t.Fatal("a missing")
	}
	c.Set("d", d)
	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}
	if c.Get("b") != nil {
		t.Error("least recently used entry should be evicted")
	}
	if c.Get("a") != a || c.Get("d") != d {
		t.Error("recent entries should survive")
	}

	c.Purge()
	if c.Len() != 0 || c.Get("a") != nil {
		t.Error("purge should empty the cache")
	}
}

func TestIconKey(t *testing.T) {
	if got := iconKey(IconGear, 20); got != "gear@20" {
		t.Errorf("key = %q", got)
	}
	if got := NewIcon(IconDot, 12).SizeHint(); got != (Vec2{12, 12}) {
		t.Errorf("hint = %v", got)
	}
}

func TestIconColorsShareCacheEntry(t *testing.T) {
	icons.Purge()
	dst := ebiten.NewImage(32, 32)
	defer dst.Deallocate()

	Icon{Name: IconGear, Size: 24, Color: Color{R: 1, A: 1}}.Draw(dst, nil)
	Icon{Name: IconGear, Size: 24, Color: Color{B: 1, A: 1}}.Draw(dst, nil)
	if icons.Len() != 1 {
		t.Errorf("cached icons = %d, want one tinted per draw", icons.Len())
	}
}

func TestUnknownIconWarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	t.Cleanup(func() { SetLogOutput(nil) })

	dst := ebiten.NewImage(16, 16)
	defer dst.Deallocate()
	for range 3 {
		NewIcon("never-registered", 12).Draw(dst, nil)
	}
	if n := strings.Count(buf.String(), "icon unavailable"); n != 1 {
		t.Errorf("warnings = %d, want 1:\n%s", n, buf.String())
	}
	if !strings.Contains(buf.String(), `"icon":"never-registered"`) {
		t.Errorf("warning should name the icon: %s", buf.String())
	}
}

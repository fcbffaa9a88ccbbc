package pageflow

import (
	"image"
	"math/bits"

	"github.com/hajimehoshi/ebiten/v2"
)

// offscreen is a pooled backing image and the (w, h) region of it that was
// asked for. Elements draw into region; the backing image goes back to the
// pool.
type offscreen struct {
	backing *ebiten.Image
	region  *ebiten.Image
}

// offscreenPool recycles unmanaged images used to isolate a layer or a
// clipped element for one draw. Backing images are bucketed by
// power-of-two size so a resize by a few pixels still hits the pool.
type offscreenPool struct {
	free   map[image.Point][]*ebiten.Image
	hits   int
	misses int
}

// sharedPool backs offscreen work for elements that have no compositor of
// their own, such as Scroll. Used only from the ebiten goroutine.
var sharedPool offscreenPool

// sizeClass rounds both dimensions up to a power of two.
func sizeClass(w, h int) image.Point {
	return image.Point{X: ceilPow2(w), Y: ceilPow2(h)}
}

// Get returns a cleared region of at least w by h pixels.
func (p *offscreenPool) Get(w, h int) offscreen {
	class := sizeClass(w, h)
	var img *ebiten.Image
	if list := p.free[class]; len(list) > 0 {
		img = list[len(list)-1]
		list[len(list)-1] = nil
		p.free[class] = list[:len(list)-1]
		img.Clear()
		p.hits++
	} else {
		img = ebiten.NewImageWithOptions(image.Rectangle{Max: class}, &ebiten.NewImageOptions{Unmanaged: true})
		p.misses++
	}
	return offscreen{
		backing: img,
		region:  img.SubImage(image.Rect(0, 0, w, h)).(*ebiten.Image),
	}
}

// Put hands o's backing image back for reuse. It is cleared by the next Get.
func (p *offscreenPool) Put(o offscreen) {
	if o.backing == nil {
		return
	}
	if p.free == nil {
		p.free = make(map[image.Point][]*ebiten.Image)
	}
	class := o.backing.Bounds().Size()
	p.free[class] = append(p.free[class], o.backing)
}

// Len returns the number of idle images held.
func (p *offscreenPool) Len() int {
	n := 0
	for _, list := range p.free {
		n += len(list)
	}
	return n
}

// Purge deallocates every idle image.
func (p *offscreenPool) Purge() {
	for class, list := range p.free {
		for _, img := range list {
			img.Deallocate()
		}
		delete(p.free, class)
	}
}

// ceilPow2 returns the smallest power of two >= n, minimum 1.
func ceilPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

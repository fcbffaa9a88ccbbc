package pageflow

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// fpsRefresh is how often the counter text is recomputed.
const fpsRefresh = 500 * time.Millisecond

// fpsCounter caches the FPS/TPS line so it does not flicker every frame.
type fpsCounter struct {
	last time.Time
	text string
}

func (c *fpsCounter) line(now time.Time) string {
	if c.text == "" || now.Sub(c.last) >= fpsRefresh {
		c.last = now
		c.text = fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	}
	return c.text
}

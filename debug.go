package pageflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// DebugOverlay draws frame rate and navigation state in the top-left
// corner.
type DebugOverlay struct {
	info func() string
	fps  fpsCounter
}

// NewDebugOverlay creates an overlay that appends info's lines below the
// frame rate. info may be nil.
func NewDebugOverlay(info func() string) *DebugOverlay {
	return &DebugOverlay{info: info}
}

// Text returns the overlay text for now.
func (o *DebugOverlay) Text(now time.Time) string {
	s := o.fps.line(now)
	if o.info != nil {
		if extra := o.info(); extra != "" {
			s += "\n" + extra
		}
	}
	return s
}

func (o *DebugOverlay) Draw(dst *ebiten.Image, _ *LayerState) {
	s := o.Text(time.Now())
	lines := strings.Count(s, "\n") + 1
	width := 0
	for _, l := range strings.Split(s, "\n") {
		width = max(width, len(l))
	}
	r := rectOf(dst)
	fillRect(dst, Rect{X: r.X, Y: r.Y, Width: float64(width)*debugGlyph.X + 8, Height: float64(lines)*debugGlyph.Y + 4}, ColorBlack.WithAlpha(0.5))
	ebitenutil.DebugPrintAt(dst, s, int(r.X)+4, int(r.Y)+2)
}

func (g *game[M]) debugInfo() string {
	s := fmt.Sprintf("frame: %d  tasks: %d  failed: %d", g.frames, g.sched.Pending(), g.sched.Failed())
	if d, ok := g.program.(DebugInfoer); ok {
		s += "\n" + d.DebugInfo()
	}
	return s
}

// DebugInfo summarises the navigator state for the debug overlay.
func (b *base[K, M]) DebugInfo() string {
	st := b.compositor.Stats()
	return fmt.Sprintf("page: %v  history: %d  pages: %d\nlayers: %d  painted: %d  offscreen: %d",
		b.current, len(b.history), b.pages.Len(), st.Layers, st.Painted, st.Isolated)
}

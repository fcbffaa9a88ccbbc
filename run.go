package pageflow

import (
	"context"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
)

// Program is an app driven by Run. Update handles one message, Advance
// steps animations once per tick and View builds the frame.
type Program[M any] interface {
	Update(msg M) Task[M]
	Advance() bool
	View() Element
}

// DebugInfoer is implemented by programs that want extra lines in the debug
// overlay.
type DebugInfoer interface {
	DebugInfo() string
}

// Disposer is implemented by programs holding GPU images that should be
// freed when Run returns. Navigators implement it.
type Disposer interface {
	Dispose()
}

// RunConfig configures Run.
type RunConfig[M any] struct {
	Title         string
	Width         int
	Height        int
	Background    Color
	Debug         bool        // draw the debug overlay and log compositor passes
	Init          Task[M]     // submitted before the first update
	TaskLimit     int         // concurrent commands; zero means unlimited
	Script        Stepper[M]  // optional scripted input
	ScreenshotDir string      // defaults to "screenshots"
	Logger        *slog.Logger
}

// Run opens a window and drives p until the window is closed or the
// script finishes.
func Run[M any](p Program[M], cfg RunConfig[M]) error {
	g := newGame(p, cfg)
	defer g.close()

	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = 480
	}
	if h <= 0 {
		h = 800
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	err := ebiten.RunGame(g)
	if err == ebiten.Termination {
		return nil
	}
	return err
}

// game adapts a Program to ebiten.Game.
type game[M any] struct {
	program Program[M]
	sched   *Scheduler[M]
	logger  *slog.Logger

	pointer     pointerInput
	poll        func() []PointerEvent
	injectQueue []PointerEvent
	script      Stepper[M]

	root  Element
	state LayerState
	shell Shell

	width, height int
	background    Color

	screenshotDir   string
	screenshotQueue []string

	debug   bool
	overlay *DebugOverlay
	frames  uint64
}

func newGame[M any](p Program[M], cfg RunConfig[M]) *game[M] {
	logger := cfg.Logger
	if logger == nil {
		logger = Logger()
	}
	g := &game[M]{
		program:       p,
		sched:         NewScheduler[M](context.Background(), cfg.TaskLimit, logger),
		logger:        logger,
		script:        cfg.Script,
		width:         cfg.Width,
		height:        cfg.Height,
		background:    cfg.Background,
		screenshotDir: cfg.ScreenshotDir,
		debug:         cfg.Debug,
	}
	if g.screenshotDir == "" {
		g.screenshotDir = "screenshots"
	}
	g.poll = g.pointer.poll
	if cfg.Debug {
		g.overlay = NewDebugOverlay(g.debugInfo)
	}
	g.sched.Submit(cfg.Init)
	return g
}

func (g *game[M]) close() {
	if err := g.sched.Close(); err != nil {
		g.logger.Warn("scheduler close", slog.Any("error", err))
	}
	if d, ok := g.program.(Disposer); ok {
		d.Dispose()
	}
	sharedPool.Purge()
}

// Update implements ebiten.Game.
func (g *game[M]) Update() error {
	g.frames++
	if g.script != nil {
		if g.script.Done() && len(g.injectQueue) == 0 && len(g.screenshotQueue) == 0 {
			g.logger.Info("script finished", slog.Uint64("frames", g.frames))
			return ebiten.Termination
		}
		if len(g.injectQueue) == 0 {
			st := g.script.Step()
			g.sched.Submit(st.Task)
			g.inject(st.Events...)
			if st.Screenshot != "" {
				g.screenshot(st.Screenshot)
			}
		}
	}

	msgs := g.sched.Drain()
	msgs = append(msgs, g.pointerMessages()...)
	for _, msg := range msgs {
		g.sched.Submit(g.program.Update(msg))
	}
	g.program.Advance()
	return nil
}

// pointerMessages routes this frame's pointer events through the last
// view. Injected events take precedence, one per frame.
func (g *game[M]) pointerMessages() []M {
	var events []PointerEvent
	if len(g.injectQueue) > 0 {
		events = []PointerEvent{g.injectQueue[0]}
		g.injectQueue = g.injectQueue[1:]
	} else {
		events = g.poll()
	}
	if g.root == nil || len(events) == 0 {
		return nil
	}
	bounds := Rect{Width: float64(g.width), Height: float64(g.height)}
	g.shell.Reset()
	for _, ev := range events {
		dispatch(g.root, ev, bounds, &g.state, &g.shell)
	}
	return Messages[M](&g.shell)
}

// Draw implements ebiten.Game.
func (g *game[M]) Draw(screen *ebiten.Image) {
	if !g.background.IsZero() {
		screen.Fill(g.background.toRGBA())
	}
	g.root = g.program.View()
	g.root.Draw(screen, &g.state)
	if g.overlay != nil {
		g.overlay.Draw(screen, &g.state)
	}
	g.flushScreenshots(screen)
}

// Layout implements ebiten.Game.
func (g *game[M]) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

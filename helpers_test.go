package pageflow

import (
	"context"
	"time"
)

// msg is the app message type used across navigator tests.
type msg struct {
	nav  *Action[page]
	text string
}

func wrap(a Action[page]) msg { return msg{nav: &a} }

type page struct {
	name string
	n    int
}

func (p page) Title() string { return p.name }

func (p page) Component() Page[msg] { return &testPage{key: p} }

var (
	home     = page{name: "Home"}
	settings = page{name: "Settings"}
	profile  = page{name: "Profile"}
)

func details(n int) page { return page{name: "Details", n: n} }

type testPage struct {
	key     page
	updates []msg
}

func (tp *testPage) View() Element { return Box{} }

func (tp *testPage) Update(m msg) Task[msg] {
	tp.updates = append(tp.updates, m)
	return None[msg]()
}

func (tp *testPage) OnLoad() Task[msg] {
	return Done(msg{text: "loaded:" + tp.key.name})
}

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func runTask(t Task[msg]) []msg {
	out, _ := t.RunSync(context.Background())
	return out
}

var screen = Rect{Width: 400, Height: 800}

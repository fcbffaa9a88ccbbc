package pageflow

import (
	"testing"
	"time"
)

type styledTab struct{ page }

func (styledTab) Component() Page[msg] { return &testPage{} }

func (styledTab) TabIcon() string { return IconGear }

func (styledTab) TabsSettings() *TabsSettings {
	s := DefaultTabsSettings()
	s.Height = 80
	return &s
}

func newTestTabs(t *testing.T) *Tabs[page, msg] {
	t.Helper()
	tabs, load := NewTabs([]page{home, settings, profile}, home, wrap)
	if load.Len() != 1 {
		t.Fatalf("initial load cmds = %d, want 1", load.Len())
	}
	return tabs
}

func TestTabsNavigate(t *testing.T) {
	tabs := newTestTabs(t)
	tabs.Handle(NavigateTo(settings))
	tabs.Handle(NavigateTo(profile))
	if !tabs.IsOnPage(profile) || len(tabs.History()) != 2 {
		t.Fatalf("current=%v history=%v", tabs.CurrentPage(), tabs.History())
	}
	tabs.Handle(Back[page]())
	if !tabs.IsOnPage(settings) {
		t.Errorf("after back current = %v", tabs.CurrentPage())
	}
	tabs.ClearHistory()
	if len(tabs.History()) != 0 {
		t.Error("tabs ClearHistory should be immediate")
	}
}

func TestTabsIgnoreTickAndDrawer(t *testing.T) {
	tabs := newTestTabs(t)
	if !tabs.Handle(TickWith[page](NewFrame())).IsNone() || !tabs.Handle(ExpandDrawer[page]()).IsNone() {
		t.Error("tick and drawer actions should return no task")
	}
	if tabs.IsAnimating() || tabs.AdvanceAt(time.Now()) {
		t.Error("tabs never animate")
	}
	if !tabs.IsOnPage(home) || len(tabs.History()) != 0 {
		t.Error("ignored actions should not change state")
	}
}

func TestTabsSettingsFollowTarget(t *testing.T) {
	a, b := styledTab{page{name: "A"}}, styledTab{page{name: "B"}}
	tabs, _ := NewTabs([]styledTab{a, b}, a, func(Action[styledTab]) msg { return msg{} })
	if got := tabs.Settings().Height; got != 80 {
		t.Fatalf("height = %v, want 80 from the initial page", got)
	}
	tabs.Handle(NavigateTo(b))
	if got := tabs.Settings().Height; got != 80 {
		t.Errorf("height = %v, want 80", got)
	}
}

func TestTabsBarClick(t *testing.T) {
	tabs := newTestTabs(t)
	tabs.View()

	// Bottom bar, 56px tall, three equal tabs across 400px.
	got := tabs.HandlePointer(ReleaseEvent(200, 770), screen)
	if len(got) != 1 || got[0].nav == nil || got[0].nav.Page != settings {
		t.Fatalf("tab click = %+v, want navigate(Settings)", got)
	}
	if got := tabs.HandlePointer(ReleaseEvent(60, 770), screen); len(got) != 0 {
		t.Errorf("active tab should not be pressable, got %+v", got)
	}
	if got := tabs.HandlePointer(ReleaseEvent(200, 300), screen); len(got) != 0 {
		t.Errorf("page area click = %+v, want none", got)
	}

	tabs.SetPosition(PositionTop)
	tabs.View()
	got = tabs.HandlePointer(ReleaseEvent(350, 20), screen)
	if len(got) != 1 || got[0].nav == nil || got[0].nav.Page != profile {
		t.Fatalf("top bar click = %+v, want navigate(Profile)", got)
	}
}

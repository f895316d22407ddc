package render

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/thorn14/bamboo/internal/app"
	"github.com/thorn14/bamboo/internal/config"
)

func newTestScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init failed: %v", err)
	}
	screen.SetSize(width, height)
	t.Cleanup(screen.Fini)
	return screen
}

func newTestState(t *testing.T, panes int) *app.State {
	t.Helper()
	cfg := &config.Config{DefaultShell: "/bin/sh"}
	for i := 0; i < panes; i++ {
		cfg.Panes = append(cfg.Panes, config.PaneConfig{Command: "cat"})
	}
	s, err := app.New(cfg, 80, 24, nil)
	if err != nil {
		t.Fatalf("app.New failed: %v", err)
	}
	t.Cleanup(func() {
		for _, p := range s.Panes {
			p.Close()
		}
	})
	return s
}

func cellAt(screen tcell.SimulationScreen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func TestFrameZeroSizeIsNoop(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	screen.SetSize(0, 0)
	s := newTestState(t, 1)

	Frame(screen, s) // must not panic
}

func TestFrameDrawsBoxCorners(t *testing.T) {
	screen := newTestScreen(t, 40, 20)
	s := newTestState(t, 1)

	Frame(screen, s)
	screen.Show()

	if got := cellAt(screen, 0, 0); got != tcell.RuneULCorner {
		t.Errorf("corner at (0,0) = %q, want upper-left corner", got)
	}
}

func TestFrameShowsAboveIndicatorWhenViewportScrolled(t *testing.T) {
	screen := newTestScreen(t, 40, 20)
	s := newTestState(t, 3)
	s.Focus(1)
	s.ViewportStart = 1

	Frame(screen, s)
	screen.Show()

	if got := cellAt(screen, 1, 0); got != '▲' {
		t.Errorf("row 0 should start with the above-indicator glyph, got %q", got)
	}
}

func TestFrameShowsBelowIndicatorWhenPanesHidden(t *testing.T) {
	screen := newTestScreen(t, 40, 8)
	s := newTestState(t, 6)

	Frame(screen, s)
	screen.Show()

	_, height := screen.Size()
	if got := cellAt(screen, 1, height-1); got != '▼' {
		t.Errorf("bottom row should show the below-indicator glyph, got %q", got)
	}
}

func TestFrameCollapsedPaneShowsCollapsedToggle(t *testing.T) {
	screen := newTestScreen(t, 40, 20)
	s := newTestState(t, 1)
	s.Panes[0].Collapsed = true

	Frame(screen, s)
	screen.Show()

	if got := cellAt(screen, 1, 0); got != '[' {
		t.Errorf("toggle glyph start = %q, want '['", got)
	}
	if got := cellAt(screen, 2, 0); got != '▸' {
		t.Errorf("collapsed toggle should render ▸, got %q", got)
	}
}

func TestFrameExpandedPaneShowsExpandedToggle(t *testing.T) {
	screen := newTestScreen(t, 40, 20)
	s := newTestState(t, 1)

	Frame(screen, s)
	screen.Show()

	if got := cellAt(screen, 2, 0); got != '▾' {
		t.Errorf("expanded toggle should render ▾, got %q", got)
	}
}

func TestPaneStatusShowsScrollOffset(t *testing.T) {
	s := newTestState(t, 1)
	s.Panes[0].Name = "shell"
	s.Panes[0].SnapshotScrollback()
	s.Panes[0].ScrollOffset = 5

	got := paneStatus(s.Panes[0])
	want := "shell [scroll: -5]"
	if got != want {
		t.Errorf("paneStatus = %q, want %q", got, want)
	}
}

func TestPaneStatusShowsWeightWhenLive(t *testing.T) {
	s := newTestState(t, 1)
	s.Panes[0].Name = "shell"
	s.Panes[0].Weight = 4

	got := paneStatus(s.Panes[0])
	want := "shell (w:4)"
	if got != want {
		t.Errorf("paneStatus = %q, want %q", got, want)
	}
}

func TestPaneStatusCollapsedShowsNameOnly(t *testing.T) {
	s := newTestState(t, 1)
	s.Panes[0].Name = "shell"
	s.Panes[0].Collapsed = true

	got := paneStatus(s.Panes[0])
	if got != "shell" {
		t.Errorf("paneStatus = %q, want %q", got, "shell")
	}
}

func TestConvertColorNilIsDefault(t *testing.T) {
	if got := convertColor(nil); got != tcell.ColorDefault {
		t.Errorf("convertColor(nil) = %v, want ColorDefault", got)
	}
}

func TestConvertColorRGB(t *testing.T) {
	got := convertColor(color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff})
	want := tcell.NewRGBColor(0x10, 0x20, 0x30)
	if got != want {
		t.Errorf("convertColor(rgb) = %v, want %v", got, want)
	}
}

func TestConvertColorTransparentIsDefault(t *testing.T) {
	if got := convertColor(color.RGBA{A: 0}); got != tcell.ColorDefault {
		t.Errorf("convertColor(transparent) = %v, want ColorDefault", got)
	}
}

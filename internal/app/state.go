// Package app holds the App state (C5): the ordered pane sequence,
// focus, viewport, and the layout engine (C8) that turns that state
// into a screen's worth of pane rectangles. App state is owned
// exclusively by the main loop; every mutation below is called from
// there, so none of it needs its own locking.
package app

import (
	"log/slog"

	"github.com/thorn14/bamboo/internal/config"
	"github.com/thorn14/bamboo/internal/pane"
)

// Rect is a screen rectangle, shared between the layout engine and the
// renderer's mouse hit-testing.
type Rect struct {
	X, Y, Width, Height int
}

// PaneArea pairs a pane's index with its last-rendered rectangle.
type PaneArea struct {
	PaneIndex int
	Area      Rect
}

// State is the App State component: an ordered sequence of panes plus
// the cursor-like fields (focus, viewport, term size) that drive
// layout and input routing.
type State struct {
	Panes []*pane.Pane

	Focused       int
	ViewportStart int

	TermCols, TermRows int

	DefaultShell string
	nextPaneID   int

	ShouldQuit bool

	// LastPaneAreas is the most recent layout, published by the
	// renderer for the input router's mouse hit-testing.
	LastPaneAreas []PaneArea

	Logger *slog.Logger
}

// New builds the initial App state from a loaded configuration,
// spawning one pane per configured entry.
func New(cfg *config.Config, cols, rows int, logger *slog.Logger) (*State, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &State{
		DefaultShell: cfg.DefaultShell,
		TermCols:     cols,
		TermRows:     rows,
		Logger:       logger,
	}

	for _, paneCfg := range cfg.Panes {
		if err := s.addConfiguredPane(paneCfg, cols, rows); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *State) addConfiguredPane(paneCfg config.PaneConfig, cols, rows int) error {
	id := s.takeNextPaneID()
	p, err := pane.Spawn(id, paneCfg, s.DefaultShell, cols, rows, s.Logger)
	if err != nil {
		return err
	}
	s.Panes = append(s.Panes, p)
	return nil
}

func (s *State) takeNextPaneID() int {
	id := s.nextPaneID
	s.nextPaneID++
	return id
}

// Focus sets the focused pane by index; out-of-range indices are
// ignored.
func (s *State) Focus(idx int) {
	if idx >= 0 && idx < len(s.Panes) {
		s.Focused = idx
	}
}

// FocusNext cycles focus forward, wrapping around. No-op when empty.
func (s *State) FocusNext() {
	if len(s.Panes) == 0 {
		return
	}
	s.Focused = (s.Focused + 1) % len(s.Panes)
}

// FocusPrev cycles focus backward, wrapping around. No-op when empty.
func (s *State) FocusPrev() {
	if len(s.Panes) == 0 {
		return
	}
	s.Focused = (s.Focused + len(s.Panes) - 1) % len(s.Panes)
}

// ToggleCollapseFocused flips the focused pane's collapsed flag.
func (s *State) ToggleCollapseFocused() {
	if p := s.FocusedPane(); p != nil {
		p.ToggleCollapse()
	}
}

// ToggleCollapseAt flips the collapsed flag on the pane at idx.
func (s *State) ToggleCollapseAt(idx int) {
	if idx >= 0 && idx < len(s.Panes) {
		s.Panes[idx].ToggleCollapse()
	}
}

// GrowFocusedWeight grows the focused pane's weight, saturating at 50.
// A no-op on a collapsed pane.
func (s *State) GrowFocusedWeight(delta int) {
	if p := s.FocusedPane(); p != nil {
		p.GrowWeight(delta)
	}
}

// ShrinkFocusedWeight shrinks the focused pane's weight, saturating at
// 1. A no-op on a collapsed pane.
func (s *State) ShrinkFocusedWeight(delta int) {
	if p := s.FocusedPane(); p != nil {
		p.ShrinkWeight(delta)
	}
}

// AddPane appends a newly spawned pane and focuses it.
func (s *State) AddPane(p *pane.Pane) {
	s.Panes = append(s.Panes, p)
	s.Focused = len(s.Panes) - 1
}

// SpawnPane opens a new pane running the default shell, assigns it the
// next pane id, appends it, and focuses it. Spawn failures are
// returned so the caller can swallow them per the "spawn new pane"
// failure semantics (the UI stays responsive; no new pane appears).
func (s *State) SpawnPane(cols, rows int) error {
	id := s.takeNextPaneID()
	p, err := pane.Spawn(id, config.PaneConfig{}, s.DefaultShell, cols, rows, s.Logger)
	if err != nil {
		return err
	}
	s.AddPane(p)
	return nil
}

// ClosePane removes the pane at idx. It refuses when only one pane
// remains or idx is out of range, returning false in either case.
func (s *State) ClosePane(idx int) bool {
	if len(s.Panes) <= 1 || idx < 0 || idx >= len(s.Panes) {
		return false
	}

	_ = s.Panes[idx].Close()
	s.Panes = append(s.Panes[:idx], s.Panes[idx+1:]...)

	if s.Focused > idx {
		s.Focused--
	} else if s.Focused >= len(s.Panes) {
		s.Focused = len(s.Panes) - 1
	}

	if s.ViewportStart > 0 && s.ViewportStart >= len(s.Panes) {
		s.ViewportStart = len(s.Panes) - 1
	}

	return true
}

// RemoveFocusedPane closes the currently focused pane.
func (s *State) RemoveFocusedPane() bool {
	return s.ClosePane(s.Focused)
}

// PageViewportUp shifts the viewport up by the number of panes
// currently visible (at least one), clamped at zero.
func (s *State) PageViewportUp() {
	page := s.visiblePaneCount()
	if page < 1 {
		page = 1
	}
	s.ViewportStart -= page
	if s.ViewportStart < 0 {
		s.ViewportStart = 0
	}
}

// PageViewportDown shifts the viewport down by the number of panes
// currently visible (at least one), clamped at the last pane.
func (s *State) PageViewportDown() {
	page := s.visiblePaneCount()
	if page < 1 {
		page = 1
	}
	max := len(s.Panes) - 1
	if max < 0 {
		max = 0
	}
	s.ViewportStart += page
	if s.ViewportStart > max {
		s.ViewportStart = max
	}
}

func (s *State) visiblePaneCount() int {
	return len(s.LastPaneAreas)
}

// FocusedPane returns the currently focused pane, or nil when empty.
func (s *State) FocusedPane() *pane.Pane {
	if s.Focused < 0 || s.Focused >= len(s.Panes) {
		return nil
	}
	return s.Panes[s.Focused]
}

// PaneByID looks up a pane by its stable id, since the event hub tags PTY
// events with id rather than slice position (which shifts on ClosePane).
func (s *State) PaneByID(id int) *pane.Pane {
	for _, p := range s.Panes {
		if p.ID == id {
			return p
		}
	}
	return nil
}

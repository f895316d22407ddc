package app

import "testing"

func TestComputeLayoutSinglePaneFillsHeight(t *testing.T) {
	s := newTestState(t, 1)

	layout := s.ComputeLayout(0, 0, 80, 24)
	if len(layout.Areas) != 1 {
		t.Fatalf("Areas = %d, want 1", len(layout.Areas))
	}
	if got := layout.Areas[0].Area.Height; got != 24 {
		t.Errorf("Height = %d, want 24 (single pane absorbs full budget)", got)
	}
	if layout.VisibleEnd != 1 {
		t.Errorf("VisibleEnd = %d, want 1", layout.VisibleEnd)
	}
}

func TestComputeLayoutAdmitsAtLeastOnePane(t *testing.T) {
	s := newTestState(t, 5)

	layout := s.ComputeLayout(0, 0, 80, 2)
	if len(layout.Areas) != 1 {
		t.Fatalf("Areas = %d, want 1 (always admit at least one pane)", len(layout.Areas))
	}
}

func TestComputeLayoutDistributesWeightWithLastAbsorbingRemainder(t *testing.T) {
	s := newTestState(t, 2)
	s.Panes[0].Weight = 1
	s.Panes[1].Weight = 1

	layout := s.ComputeLayout(0, 0, 80, 20)
	if len(layout.Areas) != 2 {
		t.Fatalf("Areas = %d, want 2", len(layout.Areas))
	}

	total := 0
	for _, a := range layout.Areas {
		total += a.Area.Height
	}
	if total != 20 {
		t.Errorf("total height = %d, want 20 (heights must sum to the budget exactly)", total)
	}
}

func TestComputeLayoutReservesIndicatorRows(t *testing.T) {
	s := newTestState(t, 4)
	s.Focus(1)
	s.ViewportStart = 1

	// Small budget: only enough for the first visible pane plus
	// above/below indicator rows.
	layout := s.ComputeLayout(0, 0, 80, 7)
	if layout.Areas[0].Area.Y != 1 {
		t.Errorf("first pane Y = %d, want 1 (row 0 reserved for 'more above')", layout.Areas[0].Area.Y)
	}
}

func TestComputeLayoutCollapsedPaneGetsFixedHeight(t *testing.T) {
	s := newTestState(t, 2)
	s.Panes[0].Collapsed = true

	layout := s.ComputeLayout(0, 0, 80, 24)
	if got := layout.Areas[0].Area.Height; got != collapsedHeight {
		t.Errorf("collapsed pane height = %d, want %d", got, collapsedHeight)
	}
}

func TestEnsureFocusedVisibleScrollsViewportIntoRange(t *testing.T) {
	s := newTestState(t, 10)
	s.Focus(9)

	// A small terminal that can only fit a couple of panes forces the
	// viewport to advance until pane 9 is included.
	layout := s.ComputeLayout(0, 0, 80, 12)

	found := false
	for _, a := range layout.Areas {
		if a.PaneIndex == s.Focused {
			found = true
		}
	}
	if !found {
		t.Error("focused pane should be included in the computed layout")
	}
}

func TestEnsureFocusedVisibleJumpsBackWhenFocusedAboveViewport(t *testing.T) {
	s := newTestState(t, 10)
	s.ViewportStart = 5
	s.Focus(0)

	s.ComputeLayout(0, 0, 80, 24)
	if s.ViewportStart != 0 {
		t.Errorf("ViewportStart = %d, want 0 (jump back to focused)", s.ViewportStart)
	}
}

package app

// Layout engine (C8): turns the current pane sequence and viewport
// into a set of visible pane rectangles, reserving rows for "more
// above/below" indicators and distributing leftover vertical space
// across expanded panes proportionally to weight.

const (
	collapsedHeight   = 3
	minExpandedHeight = 5
	indicatorHeight   = 1
)

// VisibleLayout is the output of a layout pass: the rectangles for
// every currently visible pane, plus the index of the first pane
// below the visible window (len(Panes) when nothing is hidden below).
type VisibleLayout struct {
	Areas      []PaneArea
	VisibleEnd int
}

// ComputeLayout adjusts ViewportStart so the focused pane is included
// (ensure-focused-visible), runs the fit-and-distribute pass, and
// publishes the result on LastPaneAreas for mouse hit-testing. This is
// the per-frame renderer entry point for C8.
func (s *State) ComputeLayout(x, y, width, height int) VisibleLayout {
	s.ensureFocusedVisible(height)
	layout := s.computeVisibleLayout(x, y, width, height)
	s.LastPaneAreas = layout.Areas
	return layout
}

func (s *State) ensureFocusedVisible(totalHeight int) {
	if len(s.Panes) == 0 {
		return
	}

	if s.Focused < s.ViewportStart {
		s.ViewportStart = s.Focused
		return
	}

	for {
		end := s.computeVisibleEnd(s.ViewportStart, totalHeight)
		if s.Focused < end {
			return
		}
		s.ViewportStart++
		if s.ViewportStart >= len(s.Panes) {
			s.ViewportStart = len(s.Panes) - 1
			return
		}
	}
}

// computeVisibleEnd runs the fit pass alone (no height/weight
// distribution) to find how many panes from start would be admitted
// into a window of totalHeight rows.
func (s *State) computeVisibleEnd(start, totalHeight int) int {
	hasAbove := start > 0
	remaining := totalHeight
	if hasAbove {
		remaining -= indicatorHeight
	}
	end := start

	for i := start; i < len(s.Panes); i++ {
		minH := minExpandedHeight
		if s.Panes[i].Collapsed {
			minH = collapsedHeight
		}
		belowAfter := len(s.Panes) - (i + 1)
		reserved := 0
		if belowAfter > 0 {
			reserved = indicatorHeight
		}

		if remaining < minH+reserved && end > start {
			break
		}
		remaining -= minH
		end = i + 1
	}

	return end
}

func (s *State) computeVisibleLayout(originX, originY, width, totalHeight int) VisibleLayout {
	start := s.ViewportStart
	hasAbove := start > 0

	usableTop := originY
	if hasAbove {
		usableTop += indicatorHeight
	}

	remaining := totalHeight
	if hasAbove {
		remaining -= indicatorHeight
	}

	var visible []int
	var expandedIdx []int
	totalWeight := 0

	for i := start; i < len(s.Panes); i++ {
		minH := minExpandedHeight
		if s.Panes[i].Collapsed {
			minH = collapsedHeight
		}
		belowAfter := len(s.Panes) - (i + 1)
		reserved := 0
		if belowAfter > 0 {
			reserved = indicatorHeight
		}

		if remaining < minH+reserved && len(visible) > 0 {
			break
		}

		remaining -= minH
		if !s.Panes[i].Collapsed {
			expandedIdx = append(expandedIdx, len(visible))
			totalWeight += s.Panes[i].Weight
		}
		visible = append(visible, i)
	}

	visibleEnd := start
	if len(visible) > 0 {
		visibleEnd = visible[len(visible)-1] + 1
	}
	hasBelow := visibleEnd < len(s.Panes)
	if hasBelow {
		remaining -= indicatorHeight
	}

	heights := make([]int, len(visible))
	for j, i := range visible {
		if s.Panes[i].Collapsed {
			heights[j] = collapsedHeight
		} else {
			heights[j] = minExpandedHeight
		}
	}

	if len(expandedIdx) > 0 && remaining > 0 && totalWeight > 0 {
		distributed := 0
		for j, idx := range expandedIdx {
			paneIdx := visible[idx]
			w := s.Panes[paneIdx].Weight
			var bonus int
			if j == len(expandedIdx)-1 {
				bonus = remaining - distributed
			} else {
				bonus = (remaining * w) / totalWeight
			}
			heights[idx] += bonus
			distributed += bonus
		}
	}

	areas := make([]PaneArea, 0, len(visible))
	cursorY := usableTop
	for j, paneIdx := range visible {
		h := heights[j]
		areas = append(areas, PaneArea{
			PaneIndex: paneIdx,
			Area:      Rect{X: originX, Y: cursorY, Width: width, Height: h},
		})
		cursorY += h
	}

	return VisibleLayout{Areas: areas, VisibleEnd: visibleEnd}
}

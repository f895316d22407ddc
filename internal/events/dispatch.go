package events

import (
	"github.com/gdamore/tcell/v2"

	"github.com/thorn14/bamboo/internal/app"
)

// SpawnFunc opens a new pane sized for the current terminal, per the
// Alt+n "spawn new pane" command's sizing rule.
type SpawnFunc func(cols, rows int) error

// DispatchKey is the Input Router (C7) for key events. It applies the
// global hotkey table, falls back to byte-encoding and forwarding to
// the focused pane's PTY, and otherwise drops the key.
func DispatchKey(ev *tcell.EventKey, state *app.State, spawn SpawnFunc) {
	ctrl := ev.Modifiers()&tcell.ModCtrl != 0
	alt := ev.Modifiers()&tcell.ModAlt != 0

	if ctrl && ev.Key() == tcell.KeyCtrlQ {
		state.ShouldQuit = true
		return
	}

	if ctrl {
		switch ev.Key() {
		case tcell.KeyUp:
			state.GrowFocusedWeight(2)
			return
		case tcell.KeyDown:
			state.ShrinkFocusedWeight(2)
			return
		}
	}

	if alt {
		switch ev.Rune() {
		case 'j', 'l':
			state.FocusNext()
			return
		case 'k', 'h':
			state.FocusPrev()
			return
		case 'n':
			spawnNewPane(state, spawn)
			return
		case 'w':
			state.RemoveFocusedPane()
			return
		case 'c':
			state.ToggleCollapseFocused()
			return
		}
	}

	if bytes, ok := EncodeKey(ev); ok {
		if p := state.FocusedPane(); p != nil {
			p.WriteInput(bytes)
		}
	}
}

// spawnNewPane implements Alt+n's sizing rule: cols = term_cols-2
// (floor 10), rows distributed over n+1 panes (floor 5). Spawn
// failures are swallowed; the UI stays responsive and no pane appears.
func spawnNewPane(state *app.State, spawn SpawnFunc) {
	cols := state.TermCols - 2
	if cols < 10 {
		cols = 10
	}

	nPanes := len(state.Panes) + 1
	rows := state.TermRows/nPanes - 2
	if rows < 5 {
		rows = 5
	}

	_ = spawn(cols, rows)
}

// DispatchMouse is the Input Router (C7) for mouse events.
func DispatchMouse(ev *tcell.EventMouse, state *app.State) {
	col, row := ev.Position()

	switch ev.Buttons() {
	case tcell.Button1:
		handleLeftClick(state, col, row)
	case tcell.WheelUp:
		if p := state.FocusedPane(); p != nil {
			p.ScrollUp(3)
		}
	case tcell.WheelDown:
		if p := state.FocusedPane(); p != nil {
			p.ScrollDown(3)
		}
	}
}

func handleLeftClick(state *app.State, col, row int) {
	if state.ViewportStart > 0 && row == 0 {
		state.PageViewportUp()
		return
	}

	hasBelow := len(state.LastPaneAreas) > 0 &&
		state.LastPaneAreas[len(state.LastPaneAreas)-1].PaneIndex+1 < len(state.Panes)
	if hasBelow && row == state.TermRows-1 {
		state.PageViewportDown()
		return
	}

	for _, pa := range state.LastPaneAreas {
		area := pa.Area
		if row == area.Y && col >= area.X && col < area.X+area.Width {
			if area.Width >= 8 {
				closeStart := area.X + area.Width - 4
				closeEnd := area.X + area.Width - 2
				if col >= closeStart && col <= closeEnd {
					state.ClosePane(pa.PaneIndex)
					return
				}
			}
			if col >= area.X+1 && col <= area.X+3 {
				state.Focus(pa.PaneIndex)
				state.ToggleCollapseAt(pa.PaneIndex)
				return
			}
			state.Focus(pa.PaneIndex)
			return
		}

		if col >= area.X && col < area.X+area.Width && row > area.Y && row < area.Y+area.Height {
			state.Focus(pa.PaneIndex)
			return
		}
	}
}

// DispatchResize records the new terminal size. The actual pane
// resize happens in the renderer when it next computes inner areas.
func DispatchResize(ev *tcell.EventResize, state *app.State) {
	cols, rows := ev.Size()
	state.TermCols = cols
	state.TermRows = rows
}

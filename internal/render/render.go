// Package render implements the Renderer (C9): drawing pane chrome,
// terminal cells, scrollback, and viewport indicators onto the host
// terminal screen each frame.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/thorn14/bamboo/internal/app"
	"github.com/thorn14/bamboo/internal/pane"
	"github.com/thorn14/bamboo/internal/vt100"
)

var (
	focusedBorderStyle   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	unfocusedBorderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	toggleStyle          = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	focusedNameStyle     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	unfocusedNameStyle   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	closeStyle           = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	indicatorStyle       = tcell.StyleDefault.Foreground(tcell.ColorTeal).Bold(true)
)

// Frame draws one full frame: ensure-focused-visible, layout, every
// visible pane's chrome and cells, and the viewport indicators.
func Frame(screen tcell.Screen, state *app.State) {
	width, height := screen.Size()
	if width == 0 || height == 0 {
		return
	}

	layout := state.ComputeLayout(0, 0, width, height)

	for _, pa := range layout.Areas {
		p := state.Panes[pa.PaneIndex]
		renderPane(screen, p, pa.Area, pa.PaneIndex == state.Focused)
	}

	aboveCount := state.ViewportStart
	if aboveCount > 0 {
		drawText(screen, 0, 0, fmt.Sprintf(" ▲ %d more above ", aboveCount), indicatorStyle)
	}

	belowCount := len(state.Panes) - layout.VisibleEnd
	if belowCount > 0 {
		drawText(screen, 0, height-1, fmt.Sprintf(" ▼ %d more below ", belowCount), indicatorStyle)
	}
}

func renderPane(screen tcell.Screen, p *pane.Pane, area app.Rect, focused bool) {
	borderStyle := unfocusedBorderStyle
	nameStyle := unfocusedNameStyle
	if focused {
		borderStyle = focusedBorderStyle
		nameStyle = focusedNameStyle
	}

	drawBox(screen, area.X, area.Y, area.Width, area.Height, borderStyle)

	ty := area.Y
	toggle := "[▾]"
	if p.Collapsed {
		toggle = "[▸]"
	}
	drawText(screen, area.X+1, ty, toggle, toggleStyle)

	status := paneStatus(p)
	maxLen := area.Width - 10
	if maxLen < 0 {
		maxLen = 0
	}
	if len(status) > maxLen {
		status = status[:maxLen]
	}
	drawText(screen, area.X+5, ty, status, nameStyle)

	if area.Width >= 8 {
		drawText(screen, area.X+area.Width-4, ty, "[x]", closeStyle)
	}

	innerX := area.X + 1
	innerY := area.Y + 1
	innerWidth := area.Width - 2
	innerHeight := area.Height - 2
	if innerWidth <= 0 || innerHeight <= 0 {
		return
	}

	if p.Collapsed {
		renderLastTerminalLine(screen, p, innerX, innerY, innerWidth)
		return
	}

	if rows, cols := p.Parser().Size(); cols != innerWidth || rows != innerHeight {
		p.Resize(innerWidth, innerHeight)
	}

	renderTerminalCells(screen, p, innerX, innerY, innerWidth, innerHeight)
}

func paneStatus(p *pane.Pane) string {
	if p.Collapsed {
		return p.Name
	}
	if off := p.ScrollOffset; off > 0 {
		return fmt.Sprintf("%s [scroll: -%d]", p.Name, off)
	}
	return fmt.Sprintf("%s (w:%d)", p.Name, p.Weight)
}

func renderTerminalCells(screen tcell.Screen, p *pane.Pane, x, y, width, height int) {
	if p.ScrollOffset == 0 {
		grid := p.Parser().Grid()
		for row := 0; row < height && row < len(grid); row++ {
			line := grid[row]
			for col := 0; col < width && col < len(line); col++ {
				setCell(screen, x+col, y+row, line[col])
			}
		}
		return
	}

	scrollback := p.Scrollback()
	liveRows, _ := p.Parser().Size()
	totalRows := len(scrollback) + liveRows
	viewportEnd := totalRows - p.ScrollOffset
	viewportStart := viewportEnd - height

	for displayRow := 0; viewportStart+displayRow < viewportEnd; displayRow++ {
		if displayRow >= height {
			break
		}
		sourceRow := viewportStart + displayRow
		if sourceRow < 0 {
			continue
		}

		if sourceRow < len(scrollback) {
			line := scrollback[sourceRow]
			for col := 0; col < width && col < len(line); col++ {
				setCell(screen, x+col, y+displayRow, line[col])
			}
			continue
		}

		liveRow := sourceRow - len(scrollback)
		row := p.Parser().Row(liveRow)
		for col := 0; col < width && col < len(row); col++ {
			setCell(screen, x+col, y+displayRow, row[col])
		}
	}
}

func renderLastTerminalLine(screen tcell.Screen, p *pane.Pane, x, y, width int) {
	parser := p.Parser()
	rows, cols := parser.Size()
	if rows == 0 || cols == 0 {
		return
	}

	targetRow := -1
	for row := rows - 1; row >= 0; row-- {
		line := parser.Row(row)
		for _, c := range line {
			if !c.Absent && c.Text != "" {
				targetRow = row
				break
			}
		}
		if targetRow != -1 {
			break
		}
	}
	if targetRow == -1 {
		cursorRow, _ := parser.CursorPosition()
		targetRow = cursorRow
		if targetRow >= rows {
			targetRow = rows - 1
		}
	}

	line := parser.Row(targetRow)
	for col := 0; col < width && col < len(line); col++ {
		setCell(screen, x+col, y, line[col])
	}
}

func setCell(screen tcell.Screen, x, y int, c vt100.Cell) {
	style := cellStyle(c)
	if c.Absent || c.Text == "" {
		screen.SetContent(x, y, ' ', nil, style)
		return
	}
	runes := []rune(c.Text)
	if len(runes) == 0 {
		screen.SetContent(x, y, ' ', nil, style)
		return
	}
	screen.SetContent(x, y, runes[0], runes[1:], style)
}

func cellStyle(c vt100.Cell) tcell.Style {
	style := tcell.StyleDefault
	if c.FG != nil {
		style = style.Foreground(convertColor(c.FG))
	}
	if c.BG != nil {
		style = style.Background(convertColor(c.BG))
	}
	if c.Bold {
		style = style.Bold(true)
	}
	if c.Italic {
		style = style.Italic(true)
	}
	if c.Underline {
		style = style.Underline(true)
	}
	return style
}

// convertColor maps an emulator color to a renderer color: nil or a
// fully transparent color becomes the terminal's default color, and
// every other color is converted to 24-bit RGB from its RGBA value.
// Palette colors are not mapped to the terminal's named or indexed
// colors; they are sent as their RGB equivalents.
func convertColor(c interface{ RGBA() (r, g, b, a uint32) }) tcell.Color {
	if c == nil {
		return tcell.ColorDefault
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

func drawBox(screen tcell.Screen, x, y, width, height int, style tcell.Style) {
	if width < 2 || height < 2 {
		return
	}
	screen.SetContent(x, y, tcell.RuneULCorner, nil, style)
	screen.SetContent(x+width-1, y, tcell.RuneURCorner, nil, style)
	screen.SetContent(x, y+height-1, tcell.RuneLLCorner, nil, style)
	screen.SetContent(x+width-1, y+height-1, tcell.RuneLRCorner, nil, style)

	for i := x + 1; i < x+width-1; i++ {
		screen.SetContent(i, y, tcell.RuneHLine, nil, style)
		screen.SetContent(i, y+height-1, tcell.RuneHLine, nil, style)
	}
	for i := y + 1; i < y+height-1; i++ {
		screen.SetContent(x, i, tcell.RuneVLine, nil, style)
		screen.SetContent(x+width-1, i, tcell.RuneVLine, nil, style)
	}
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		screen.SetContent(col, y, r, nil, style)
		col++
	}
}

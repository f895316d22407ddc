// Package vt100 wraps github.com/charmbracelet/x/vt, a VT-100-family
// terminal emulator, behind the narrow cell-grid accessor surface the
// renderer and pane layers need. It does not keep a scrollback of its
// own; that is the pane's responsibility.
package vt100

import (
	"image/color"
	"sync"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/vt"
)

// Cell is a single styled terminal cell, or the zero value with Absent
// set to true when the emulator has nothing at that coordinate.
type Cell struct {
	Text      string
	FG        color.Color
	BG        color.Color
	Bold      bool
	Italic    bool
	Underline bool
	Absent    bool
}

// Parser holds a VT emulator instance behind a mutex. The mutex is
// taken briefly by Process for every chunk of PTY output and by the
// renderer's reads on every frame; no caller holds it longer than a
// single call.
type Parser struct {
	mu   sync.Mutex
	term vt.Terminal
	rows int
	cols int
}

// New creates a parser sized to rows x cols.
func New(rows, cols int) *Parser {
	return &Parser{
		term: vt.NewSafeEmulator(cols, rows),
		rows: rows,
		cols: cols,
	}
}

// Process feeds raw PTY output into the emulator.
func (p *Parser) Process(data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.term.Write(data)
}

// Size returns the current grid dimensions.
func (p *Parser) Size() (rows, cols int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rows, p.cols
}

// SetSize resizes the emulator's grid in place; the pane's own
// scrollback of record is unaffected by this call.
func (p *Parser) SetSize(rows, cols int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rows = rows
	p.cols = cols
	p.term.Resize(cols, rows)
}

// CursorPosition returns the 0-indexed cursor row and column.
func (p *Parser) CursorPosition() (row, col int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pos := p.term.CursorPosition()
	return pos.Y, pos.X
}

// Cell returns the styled contents at (row, col). The second return
// value is false when the coordinate is out of range.
func (p *Parser) Cell(row, col int) (Cell, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cellLocked(row, col)
}

func (p *Parser) cellLocked(row, col int) (Cell, bool) {
	if row < 0 || row >= p.rows || col < 0 || col >= p.cols {
		return Cell{}, false
	}
	cell := p.term.CellAt(col, row)
	if cell == nil {
		return Cell{Absent: true}, true
	}
	return Cell{
		Text:      cell.Content,
		FG:        cell.Style.Fg,
		BG:        cell.Style.Bg,
		Bold:      cell.Style.Attrs&uv.AttrBold != 0,
		Italic:    cell.Style.Attrs&uv.AttrItalic != 0,
		Underline: cell.Style.Attrs&uv.AttrUnderline != 0,
	}, true
}

// Row returns every cell in a row, left to right.
func (p *Parser) Row(row int) []Cell {
	p.mu.Lock()
	defer p.mu.Unlock()
	cells := make([]Cell, p.cols)
	for col := 0; col < p.cols; col++ {
		c, ok := p.cellLocked(row, col)
		if !ok {
			c = Cell{Absent: true}
		}
		cells[col] = c
	}
	return cells
}

// Grid returns the full rows x cols cell grid.
func (p *Parser) Grid() [][]Cell {
	p.mu.Lock()
	defer p.mu.Unlock()
	grid := make([][]Cell, p.rows)
	for row := 0; row < p.rows; row++ {
		cells := make([]Cell, p.cols)
		for col := 0; col < p.cols; col++ {
			c, ok := p.cellLocked(row, col)
			if !ok {
				c = Cell{Absent: true}
			}
			cells[col] = c
		}
		grid[row] = cells
	}
	return grid
}

// FormattedDump renders the current screen as an SGR-preserving ANSI
// string, used to re-seed a freshly resized parser (see
// pane.Pane.Resize) without losing on-screen colors and attributes.
func (p *Parser) FormattedDump() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.term.Render()
}

// Package pane holds per-session state: the PTY session, its VT
// parser, and the scrollback, scroll position, and chrome flags the
// renderer and layout engine read every frame.
package pane

import (
	"log/slog"

	"github.com/thorn14/bamboo/internal/config"
	"github.com/thorn14/bamboo/internal/ptyio"
	"github.com/thorn14/bamboo/internal/vt100"
)

// MaxScrollback is the maximum number of evicted rows kept per pane.
// Oldest rows are evicted first once the limit is reached.
const MaxScrollback = 10000

const (
	minWeight     = 1
	maxWeight     = 50
	defaultWeight = 10
)

// Pane is one interactive session: a child process attached to a PTY,
// the VT parser tracking its screen, and the chrome state (scroll
// position, collapse, weight) the layout engine and renderer consume.
type Pane struct {
	ID   int
	Name string

	session *ptyio.Session
	parser  *vt100.Parser

	// events is the take-once receive endpoint for this pane's PTY
	// events; ownership transfers to the event hub at wiring time via
	// TakeEvents and is thereafter absent here.
	events <-chan ptyio.Event

	ScrollOffset int
	Cols, Rows   int

	scrollback [][]vt100.Cell

	Closed    bool
	Collapsed bool
	Weight    int
}

// Spawn opens a PTY for the given pane config and returns a new Pane
// wired to it. The caller must call TakeEvents before it can observe
// PTY output or child exit.
func Spawn(id int, paneCfg config.PaneConfig, defaultShell string, cols, rows int, logger *slog.Logger) (*Pane, error) {
	name := paneCfg.Name
	if name == "" {
		name = paneCfg.Command
	}
	if name == "" {
		name = defaultShell
	}

	sess, events, err := ptyio.Open(ptyio.Spec{
		Command: paneCfg.Command,
		Cwd:     paneCfg.Cwd,
		Env:     paneCfg.Env,
	}, defaultShell, cols, rows, logger)
	if err != nil {
		return nil, err
	}

	return &Pane{
		ID:      id,
		Name:    name,
		session: sess,
		parser:  vt100.New(rows, cols),
		events:  events,
		Cols:    cols,
		Rows:    rows,
		Weight:  defaultWeight,
	}, nil
}

// TakeEvents returns this pane's PTY event channel and clears it, so a
// second call returns nil. The event hub calls this once per pane at
// wiring time.
func (p *Pane) TakeEvents() <-chan ptyio.Event {
	ch := p.events
	p.events = nil
	return ch
}

// Parser exposes the VT parser adapter for the renderer.
func (p *Pane) Parser() *vt100.Parser {
	return p.parser
}

// Feed processes raw PTY output bytes through this pane's parser. It
// is called by the main loop when it receives a Data event for this
// pane; the parser takes its own mutex internally.
func (p *Pane) Feed(data []byte) {
	p.parser.Process(data)
}

// MarkClosed latches Closed once the reader task reports EOF; the
// frozen grid remains viewable afterward.
func (p *Pane) MarkClosed() {
	p.Closed = true
}

// Resize is a no-op if the size is zero or unchanged; otherwise it
// resizes the PTY and replaces the parser with a fresh one re-fed from
// the outgoing parser's formatted screen dump. This is lossy for
// anything already scrolled out of the parser's own history; the
// pane's own scrollback of record is unaffected.
func (p *Pane) Resize(cols, rows int) {
	if cols <= 0 || rows <= 0 || (cols == p.Cols && rows == p.Rows) {
		return
	}

	dump := p.parser.FormattedDump()
	if err := p.session.Resize(cols, rows); err != nil {
		return
	}

	fresh := vt100.New(rows, cols)
	fresh.Process([]byte(dump))

	p.parser = fresh
	p.Cols = cols
	p.Rows = rows
}

// ScrollUp moves the view n lines further back into scrollback,
// clamped to the available history.
func (p *Pane) ScrollUp(n int) {
	p.ScrollOffset += n
	if max := len(p.scrollback); p.ScrollOffset > max {
		p.ScrollOffset = max
	}
}

// ScrollDown moves the view n lines toward the live screen, clamped at
// zero (live view).
func (p *Pane) ScrollDown(n int) {
	p.ScrollOffset -= n
	if p.ScrollOffset < 0 {
		p.ScrollOffset = 0
	}
}

// ScrollToBottom resets the view to live.
func (p *Pane) ScrollToBottom() {
	p.ScrollOffset = 0
}

// WriteInput sends bytes to the child over the mutex-guarded writer.
// Partial writes are not retried and write errors are swallowed.
func (p *Pane) WriteInput(data []byte) {
	p.session.Write(data)
}

// Scrollback returns the rows evicted from the top of the emulator
// grid so far, oldest first.
func (p *Pane) Scrollback() [][]vt100.Cell {
	return p.scrollback
}

// SnapshotScrollback copies the current parser grid row-by-row onto
// the end of scrollback, then truncates it FIFO to MaxScrollback rows.
// Neither Resize nor the renderer calls it, so scrollback only grows
// when a caller invokes it explicitly.
func (p *Pane) SnapshotScrollback() {
	grid := p.parser.Grid()
	p.scrollback = append(p.scrollback, grid...)

	if over := len(p.scrollback) - MaxScrollback; over > 0 {
		p.scrollback = p.scrollback[over:]
	}
}

// GrowWeight increases the pane's weight by delta, saturating at 50.
// A collapsed pane is unaffected.
func (p *Pane) GrowWeight(delta int) {
	if p.Collapsed {
		return
	}
	p.Weight += delta
	if p.Weight > maxWeight {
		p.Weight = maxWeight
	}
}

// ShrinkWeight decreases the pane's weight by delta, saturating at 1.
// A collapsed pane is unaffected.
func (p *Pane) ShrinkWeight(delta int) {
	if p.Collapsed {
		return
	}
	p.Weight -= delta
	if p.Weight < minWeight {
		p.Weight = minWeight
	}
}

// ToggleCollapse flips the collapsed flag.
func (p *Pane) ToggleCollapse() {
	p.Collapsed = !p.Collapsed
}

// Close kills the child process and releases the PTY.
func (p *Pane) Close() error {
	return p.session.Close()
}

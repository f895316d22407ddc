// Package events implements the Event Hub (C6) and Input Router (C7):
// merging host-terminal input, per-pane PTY output, and a render
// heartbeat into one ordered stream, and translating host input into
// app-state commands or PTY writes.
package events

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/thorn14/bamboo/internal/ptyio"
)

// tickInterval is the render heartbeat used by the ticker goroutine.
// tcell's PollEvent blocks indefinitely rather than offering a
// poll-with-timeout, so unlike a poll loop that reports "no event"
// after 20ms, a dedicated ticker goroutine supplies the Tick source
// instead; the two goroutines both feed the same unified channel.
const tickInterval = 20 * time.Millisecond

// Kind distinguishes the three sources merged onto the unified channel.
type Kind int

const (
	KindTerminal Kind = iota
	KindPTY
	KindTick
)

// Event is the unified envelope every source wraps itself in before
// being sent to the main loop.
type Event struct {
	Kind     Kind
	Terminal tcell.Event
	PaneID   int
	PTY      ptyio.Event
}

// Hub merges the host-terminal poll goroutine, every pane's PTY
// adapter goroutine, and a render ticker into one buffered channel.
// The main loop is the sole reader.
type Hub struct {
	out    chan Event
	quit   chan struct{}
	screen tcell.Screen
}

// NewHub creates a Hub bound to the host terminal screen. Call Run to
// start the terminal-poll and ticker goroutines.
func NewHub(screen tcell.Screen) *Hub {
	return &Hub{
		out:    make(chan Event, 256),
		quit:   make(chan struct{}),
		screen: screen,
	}
}

// Events returns the merged event stream.
func (h *Hub) Events() <-chan Event {
	return h.out
}

// Stop shuts down the hub's own goroutines. Pane adapter goroutines
// started by AddPane exit on their own once their source channel
// closes or emits Closed.
func (h *Hub) Stop() {
	close(h.quit)
}

// Run starts the host-terminal poll goroutine and the tick goroutine.
// It returns immediately; both goroutines run until Stop is called,
// and the poll goroutine also exits when the screen's PollEvent
// returns nil (host terminal torn down).
func (h *Hub) Run() {
	go h.pollTerminal()
	go h.runTicks()
}

func (h *Hub) pollTerminal() {
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case h.out <- Event{Kind: KindTerminal, Terminal: ev}:
		case <-h.quit:
			return
		}
	}
}

func (h *Hub) runTicks() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			select {
			case h.out <- Event{Kind: KindTick}:
			case <-h.quit:
				return
			}
		case <-h.quit:
			return
		}
	}
}

// AddPane starts a forwarder goroutine for one pane's PTY event
// channel (the pane's take-once pty_rx, transferred here at wiring
// time). The goroutine forwards every event tagged with paneID until
// it forwards a Closed event, then exits.
func (h *Hub) AddPane(paneID int, source <-chan ptyio.Event) {
	go func() {
		for ev := range source {
			select {
			case h.out <- Event{Kind: KindPTY, PaneID: paneID, PTY: ev}:
			case <-h.quit:
				return
			}
			if ev.Kind == ptyio.Closed {
				return
			}
		}
	}()
}

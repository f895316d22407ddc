// Command bamboo is a terminal multiplexer: panes of PTY-backed shells
// and commands arranged in a single scrollable column, driven entirely
// by one cell-grid renderer and one event loop.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/thorn14/bamboo/internal/app"
	"github.com/thorn14/bamboo/internal/config"
	"github.com/thorn14/bamboo/internal/events"
	"github.com/thorn14/bamboo/internal/ptyio"
	"github.com/thorn14/bamboo/internal/render"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd builds the `bamboo [--config PATH]` root command.
func NewRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:     "bamboo",
		Short:   "A terminal multiplexer for PTY-backed panes",
		Version: Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a bamboo.toml config file")
	return cmd
}

func run(configPath string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil)).
		With("run_id", uuid.NewString())

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("bamboo requires an interactive terminal on stdin")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.Clear()

	// Scoped terminal-restore guard: runs on both a clean quit and a
	// panic unwind, so the host terminal is never left in raw/alt-screen
	// mode.
	restored := false
	restore := func() {
		if restored {
			return
		}
		restored = true
		screen.Fini()
	}
	defer restore()
	defer func() {
		if r := recover(); r != nil {
			restore()
			fmt.Fprintf(os.Stderr, "bamboo: panic: %v\n", r)
			os.Exit(1)
		}
	}()

	cols, rows := screen.Size()
	state, err := app.New(cfg, cols, rows, logger)
	if err != nil {
		return fmt.Errorf("start panes: %w", err)
	}

	hub := events.NewHub(screen)
	for _, p := range state.Panes {
		hub.AddPane(p.ID, p.TakeEvents())
	}
	hub.Run()

	spawn := func(cols, rows int) error {
		if err := state.SpawnPane(cols, rows); err != nil {
			return err
		}
		newPane := state.Panes[len(state.Panes)-1]
		hub.AddPane(newPane.ID, newPane.TakeEvents())
		return nil
	}

	render.Frame(screen, state)
	screen.Show()

	for ev := range hub.Events() {
		switch ev.Kind {
		case events.KindTerminal:
			handleTerminalEvent(ev.Terminal, state, screen, spawn)
		case events.KindPTY:
			handlePTYEvent(ev.PaneID, ev.PTY, state)
		case events.KindTick:
			// nothing to do beyond the redraw below
		}

		if state.ShouldQuit {
			break
		}

		render.Frame(screen, state)
		screen.Show()
	}

	// Restore and exit immediately rather than returning, so reader and
	// forwarder goroutines attached to still-running child processes
	// never delay shutdown.
	restore()
	os.Exit(0)
	return nil
}

func handleTerminalEvent(ev tcell.Event, state *app.State, screen tcell.Screen, spawn events.SpawnFunc) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		events.DispatchKey(ev, state, spawn)
	case *tcell.EventMouse:
		events.DispatchMouse(ev, state)
	case *tcell.EventResize:
		events.DispatchResize(ev, state)
		screen.Sync()
	}
}

func handlePTYEvent(paneID int, ev ptyio.Event, state *app.State) {
	p := state.PaneByID(paneID)
	if p == nil {
		return
	}
	switch ev.Kind {
	case ptyio.Closed:
		p.MarkClosed()
	case ptyio.Data:
		p.Feed(ev.Data)
	}
}

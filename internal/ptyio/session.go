// Package ptyio opens a pseudo-terminal for a configured pane and runs
// the blocking reader task that pumps child output into the event hub.
package ptyio

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/creack/pty"

	"github.com/thorn14/bamboo/internal/config"
)

// EventKind distinguishes the two events a reader task ever emits.
type EventKind int

const (
	// Data carries bytes read from the PTY. The reader task does not
	// feed a parser; the receiver passes the payload to the pane's
	// parser.
	Data EventKind = iota
	// Closed means the PTY reached EOF or a read error; it is always
	// the last event a reader task emits.
	Closed
)

// Event is what a reader task sends on its output channel.
type Event struct {
	Kind EventKind
	Data []byte
}

// Spec describes one pane's process to launch, taken from the pane's
// configuration entry.
type Spec struct {
	Command string
	Cwd     string
	Env     map[string]string
}

// Session owns the master side of a spawned PTY and the child process
// attached to its slave side.
type Session struct {
	master *os.File
	cmd    *exec.Cmd

	writeMu sync.Mutex

	cols, rows int

	logger *slog.Logger
}

// Open spawns a child process under a new PTY sized to cols x rows and
// starts its reader task. The returned channel is the session's only
// output stream; it is never closed, and Closed is the last event sent
// on it.
//
// On PTY or spawn failure the error is returned directly; startup
// callers treat this as fatal, "spawn new pane" callers swallow it.
func Open(spec Spec, defaultShell string, cols, rows int, logger *slog.Logger) (*Session, <-chan Event, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fields := strings.Fields(spec.Command)
	if len(fields) == 0 {
		fields = strings.Fields(defaultShell)
	}
	if len(fields) == 0 {
		return nil, nil, fmt.Errorf("open pty: no command and no default shell configured")
	}

	cmd := exec.Command(fields[0], fields[1:]...)
	cmd.Dir = config.ResolveCwd(spec.Cwd)
	cmd.Env = os.Environ()
	for k, v := range spec.Env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	master, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open pty: %w", err)
	}

	s := &Session{
		master: master,
		cmd:    cmd,
		cols:   cols,
		rows:   rows,
		logger: logger,
	}

	events := make(chan Event, 64)
	go s.readerLoop(events)

	return s, events, nil
}

// readerLoop is the Reader Task (C3): one dedicated blocking goroutine
// per pane. It reads up to 4 KiB at a time and forwards Data and,
// finally, Closed. There is no retry; PTY read errors are terminal.
func (s *Session) readerLoop(events chan<- Event) {
	buf := make([]byte, 4096)
	for {
		n, err := s.master.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			events <- Event{Kind: Data, Data: chunk}
		}
		if err != nil {
			if err != io.EOF {
				s.logger.Debug("pty read error", "error", err)
			}
			events <- Event{Kind: Closed}
			return
		}
	}
}

// Write sends input bytes to the child. Partial writes are not
// retried and write errors are swallowed, matching the pane's
// write_input semantics.
func (s *Session) Write(p []byte) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_, _ = s.master.Write(p)
}

// Resize propagates a new size to the kernel PTY.
func (s *Session) Resize(cols, rows int) error {
	s.cols = cols
	s.rows = rows
	return pty.Setsize(s.master, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
}

// Size returns the last size applied to the PTY.
func (s *Session) Size() (cols, rows int) {
	return s.cols, s.rows
}

// Close kills the child process and releases the master file. It does
// not wait for the reader goroutine; the goroutine exits on its own
// once the read returns an error after the master is closed.
func (s *Session) Close() error {
	if s.cmd != nil && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
		go s.cmd.Wait()
	}
	return s.master.Close()
}

// Package progress provides progress indication for long-running git calls.
//
// Indicators render to stderr so stdout stays clean for piping and --json.
// Callers decide whether stderr is a terminal; see [Enabled].
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/mattn/go-isatty"
)

// stopTimeout bounds how long Stop waits for the program to exit.
const stopTimeout = 500 * time.Millisecond

// Enabled reports whether f is an interactive terminal.
func Enabled(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// runner owns a background Bubbletea program fed through a channel.
// Updates sent before Start are kept as the initial state by the caller.
type runner[T any] struct {
	out       io.Writer
	updates   chan T
	done      chan struct{}
	program   *tea.Program
	mu        sync.Mutex
	isRunning bool
}

func newRunner[T any]() *runner[T] {
	return &runner[T]{
		out:     os.Stderr,
		updates: make(chan T, 10),
		done:    make(chan struct{}),
	}
}

func (r *runner[T]) start(model tea.Model) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isRunning {
		return false
	}

	profile := colorprofile.Detect(os.Stderr, os.Environ())
	r.program = tea.NewProgram(model,
		tea.WithoutSignalHandler(),
		tea.WithInput(nil),
		tea.WithOutput(r.out),
		tea.WithColorProfile(profile),
	)
	r.isRunning = true

	go func() {
		_, _ = r.program.Run()
		close(r.done)
	}()
	return true
}

// send delivers an update if running. It never blocks: a full channel
// drops the update. Returns false when not running.
func (r *runner[T]) send(v T) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isRunning {
		return false
	}
	select {
	case r.updates <- v:
	default:
	}
	return true
}

func (r *runner[T]) stop() {
	r.mu.Lock()
	if !r.isRunning {
		r.mu.Unlock()
		return
	}
	r.isRunning = false
	// Closed under the mutex so send never writes to a closed channel
	close(r.updates)
	r.mu.Unlock()

	if r.program != nil {
		r.program.Quit()
	}

	select {
	case <-r.done:
	case <-time.After(stopTimeout):
	}

	fmt.Fprint(r.out, "\r\033[K")
}

// wait returns a command that blocks for the next update.
// A closed channel quits the program.
func wait[T any](ch <-chan T) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-ch
		if !ok {
			return tea.Quit()
		}
		return v
	}
}

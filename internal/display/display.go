// Package display shows waveform plots to the user.
package display

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/HamletTheHamster/waveplot/internal/render"
	"github.com/HamletTheHamster/waveplot/internal/wave"
)

// Display modes.
const (
	ModeWindow   = "window"
	ModeTerminal = "terminal"
	ModeNone     = "none"
)

// Modes lists the accepted display modes.
var Modes = []string{ModeWindow, ModeTerminal, ModeNone}

// ErrWindowUnavailable is returned by New for ModeWindow when no window
// displayer has been registered.
var ErrWindowUnavailable = errors.New("window display not built in (rebuild with -tags gnuplot)")

// Displayer shows a waveform, plus any extra series, and returns once the
// viewer is done with it.
type Displayer interface {
	Show(ctx context.Context, w *wave.Waveform, series []render.Series) error
}

// Factory builds a Displayer that prompts on out and waits on in.
type Factory func(in io.Reader, out io.Writer) Displayer

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

// Register makes a displayer available under mode. It is meant to be
// called from an init function and panics on a duplicate or built-in mode.
func Register(mode string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if mode == ModeTerminal || mode == ModeNone {
		panic("display: cannot override built-in mode " + mode)
	}
	if _, dup := registry[mode]; dup {
		panic("display: Register called twice for mode " + mode)
	}
	registry[mode] = f
}

func lookup(mode string) (Factory, bool) {
	mu.RLock()
	defer mu.RUnlock()
	f, ok := registry[mode]
	return f, ok
}

// DefaultMode is ModeWindow when a window displayer is registered and
// ModeTerminal otherwise.
func DefaultMode() string {
	if _, ok := lookup(ModeWindow); ok {
		return ModeWindow
	}
	return ModeTerminal
}

// New returns the Displayer for mode, reading from stdin and writing to
// stdout.
func New(mode string) (Displayer, error) {
	switch mode {
	case ModeTerminal:
		return &Terminal{Out: os.Stdout}, nil
	case ModeNone:
		return None{}, nil
	}
	if f, ok := lookup(mode); ok {
		return f(os.Stdin, os.Stdout), nil
	}
	if mode == ModeWindow {
		return nil, ErrWindowUnavailable
	}
	return nil, fmt.Errorf("unknown display mode %q", mode)
}

// None discards the plot.
type None struct{}

func (None) Show(context.Context, *wave.Waveform, []render.Series) error { return nil }

// WaitForEnter blocks until a line is read from r, r is exhausted or ctx
// is cancelled.
//
// A cancelled wait leaves the reading goroutine blocked in r.Read until r
// returns. For os.Stdin that is process exit, so callers wanting a clean
// shutdown should pass a reader they can close.
func WaitForEnter(ctx context.Context, r io.Reader) error {
	done := make(chan error, 1)
	go func() {
		var b [1]byte
		for {
			n, err := r.Read(b[:])
			if n == 1 && b[0] == '\n' {
				done <- nil
				return
			}
			if err == io.EOF {
				done <- nil
				return
			}
			if err != nil {
				done <- err
				return
			}
		}
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

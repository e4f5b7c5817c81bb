package output

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/term"
)

// Spinner displays a progress animation. It draws only when its writer
// is a terminal; otherwise every method is a no-op apart from the final
// Success/Fail line.
type Spinner struct {
	w       io.Writer
	message string
	frames  []string
	enabled bool

	started  atomic.Bool
	done     chan struct{}
	finished chan struct{}
	stopOnce sync.Once
}

// NewSpinner creates a new spinner.
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:        w,
		message:  message,
		frames:   []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		enabled:  IsTerminal(w),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Start starts the spinner animation.
func (s *Spinner) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	if !s.enabled {
		close(s.finished)
		return
	}
	go func() {
		defer close(s.finished)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for i := 0; ; i++ {
			fmt.Fprintf(s.w, "\r%s %s", s.frames[i%len(s.frames)], s.message)
			select {
			case <-s.done:
				return
			case <-ticker.C:
			}
		}
	}()
}

// stop ends the animation and waits for the last frame. Safe to call twice.
func (s *Spinner) stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		if !s.started.Load() {
			return
		}
		<-s.finished
		if s.enabled {
			fmt.Fprint(s.w, "\r\033[K")
		}
	})
}

// Stop stops the spinner and clears the line.
func (s *Spinner) Stop() {
	s.stop()
}

// Success stops the spinner with a success message.
func (s *Spinner) Success(message string) {
	s.stop()
	fmt.Fprintf(s.w, "✓ %s\n", message)
}

// Fail stops the spinner with a failure message.
func (s *Spinner) Fail(message string) {
	s.stop()
	fmt.Fprintf(s.w, "✗ %s\n", message)
}

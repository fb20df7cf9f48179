// Package progress defines the spinner capability the scan loop reports
// through, with a terminal implementation and a noop for verbose runs and
// tests.
package progress

import (
	"fmt"
	"io"
)

type SpinnerProgressTracker interface {
	SetMessage(msg string)
	SetDone(n int)
	SetError(err error)
	MarkFinished()
}

type NoopSpinnerProgressTracker struct{}

var _ SpinnerProgressTracker = NoopSpinnerProgressTracker{}

func (n NoopSpinnerProgressTracker) SetMessage(msg string) {}
func (n NoopSpinnerProgressTracker) SetDone(n2 int)        {}
func (n NoopSpinnerProgressTracker) SetError(err error)    {}
func (n NoopSpinnerProgressTracker) MarkFinished()         {}

// TermSpinner redraws a single braille-frame spinner line in place. Not
// safe for concurrent use; the scan loop is single-threaded.
type TermSpinner struct {
	w       io.Writer
	frames  []rune
	current int
	message string
	done    int
	total   int
}

var _ SpinnerProgressTracker = (*TermSpinner)(nil)

// NewTermSpinner returns a spinner writing to w. A total of 0 hides the
// (done/total) suffix.
func NewTermSpinner(w io.Writer, total int) *TermSpinner {
	return &TermSpinner{
		w:      w,
		frames: []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏"),
		total:  total,
	}
}

func (s *TermSpinner) SetMessage(msg string) {
	s.message = msg
	s.render()
}

func (s *TermSpinner) SetDone(n int) {
	s.done = n
	s.render()
}

func (s *TermSpinner) SetError(err error) {}

// MarkFinished clears the spinner line.
func (s *TermSpinner) MarkFinished() {
	fmt.Fprint(s.w, "\r\033[K")
}

func (s *TermSpinner) render() {
	frame := s.frames[s.current]
	s.current = (s.current + 1) % len(s.frames)
	if s.total > 0 {
		fmt.Fprintf(s.w, "\r%c %s (%d/%d) ", frame, s.message, s.done, s.total)
		return
	}
	fmt.Fprintf(s.w, "\r%c %s ", frame, s.message)
}

package progress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTermSpinnerRendersProgress(t *testing.T) {
	var buf bytes.Buffer
	s := NewTermSpinner(&buf, 3)

	s.SetMessage("calculating directory sizes")
	s.SetDone(1)
	s.SetDone(2)
	s.MarkFinished()

	out := buf.String()
	assert.Contains(t, out, "calculating directory sizes")
	assert.Contains(t, out, "(2/3)")
	assert.True(t, strings.HasSuffix(out, "\r\033[K"), "finish clears the line")
}

func TestTermSpinnerWithoutTotal(t *testing.T) {
	var buf bytes.Buffer
	s := NewTermSpinner(&buf, 0)
	s.SetMessage("scanning")

	assert.Contains(t, buf.String(), "scanning")
	assert.NotContains(t, buf.String(), "(0/0)")
}

func TestNoopTrackerIsSilent(t *testing.T) {
	assert.NotPanics(t, func() {
		var tr SpinnerProgressTracker = NoopSpinnerProgressTracker{}
		tr.SetMessage("x")
		tr.SetDone(1)
		tr.SetError(nil)
		tr.MarkFinished()
	})
}

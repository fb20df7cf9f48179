package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerboseLoggerEmits(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true)

	log.Info("scanning started")
	log.Warning("something odd")

	out := buf.String()
	assert.Contains(t, out, "scanning started")
	assert.Contains(t, out, "something odd")
}

func TestQuietLoggerDropsEverything(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)

	log.Info("scanning started")
	log.Warning("something odd")

	assert.Empty(t, buf.String())
}

func TestNopLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().Info("x")
		Nop().Warning("y")
	})
}

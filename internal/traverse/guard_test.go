package traverse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lss-dev/lss/internal/fsident"
)

func TestCycleGuard(t *testing.T) {
	guard := newCycleGuard()
	a := fsident.Identity{NodeID: 1, VolumeID: 7}
	b := fsident.Identity{NodeID: 2, VolumeID: 7}

	assert.True(t, guard.enter(a))
	assert.False(t, guard.enter(a), "re-entering an active identity is a cycle")
	assert.True(t, guard.onPath(a))
	assert.True(t, guard.enter(b))

	// Once a subtree finishes, its identity may legitimately reappear via a
	// different parent and must be computable again.
	guard.leave(a)
	assert.False(t, guard.onPath(a))
	assert.True(t, guard.enter(a))

	guard.leave(b)
	guard.leave(b) // leave is idempotent
	assert.False(t, guard.onPath(b))
}

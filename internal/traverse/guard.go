package traverse

import "github.com/lss-dev/lss/internal/fsident"

// cycleGuard tracks the identities currently on the active recursion path
// of one top-level traversal. It is not an ever-seen set: an identity is
// removed as soon as its subtree finishes, so reaching the same directory
// again through a different parent is computed normally while a true
// ancestor-reappearing-as-descendant cycle is flagged.
type cycleGuard struct {
	active map[fsident.Identity]struct{}
}

func newCycleGuard() *cycleGuard {
	return &cycleGuard{active: make(map[fsident.Identity]struct{})}
}

// enter marks id active. It reports false when id is already on the path,
// meaning the caller is about to recurse into one of its own ancestors.
func (g *cycleGuard) enter(id fsident.Identity) bool {
	if _, ok := g.active[id]; ok {
		return false
	}
	g.active[id] = struct{}{}
	return true
}

// leave unmarks id. Safe to call for identities that were never entered.
func (g *cycleGuard) leave(id fsident.Identity) {
	delete(g.active, id)
}

// onPath reports whether id is on the active recursion path.
func (g *cycleGuard) onPath(id fsident.Identity) bool {
	_, ok := g.active[id]
	return ok
}

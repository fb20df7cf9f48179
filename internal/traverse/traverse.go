// Package traverse implements the recursive directory-size engine: a
// depth-first accumulator over the filesystem that consults the size cache,
// breaks cycles, and tolerates per-entry failures.
package traverse

import (
	"fmt"
	"io/fs"
	"math/bits"
	"os"
	"path/filepath"

	"github.com/lss-dev/lss/internal/fsident"
	"github.com/lss-dev/lss/internal/logging"
	"github.com/lss-dev/lss/internal/sizecache"
)

// errorCap is the number of per-entry failures reported verbatim for one
// directory before the remainder collapses into a rollup count.
const errorCap = 5

// IgnoreFunc decides whether a path is excluded from a scan. The engine
// knows nothing about pattern syntax, only this yes/no answer.
type IgnoreFunc func(path string) bool

// Stats are the diagnostic counts accumulated over a Context's lifetime.
type Stats struct {
	Cycles int // cyclic edges skipped
	Errors int // per-entry failures tolerated
}

// Context carries everything a traversal needs: the cache store, the
// logger, and the configuration pair threaded through every call. One
// Context serves a whole process run; the cycle guard is created fresh for
// each top-level entry. Contexts are single-threaded by design.
type Context struct {
	Cache          *sizecache.Store
	Log            logging.Logger
	IgnoreSymlinks bool
	ForceRecompute bool

	Stats Stats
}

// ScanRoot enumerates the immediate children of root, applying the ignore
// predicate. Failure to list root is fatal to the run and returned as an
// error; per-child stat failures are logged and the child is dropped.
func (c *Context) ScanRoot(root string, ignore IgnoreFunc) ([]*Entry, error) {
	children, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("could not read directory %q: %w", root, err)
	}

	out := make([]*Entry, 0, len(children))
	for _, child := range children {
		path := filepath.Join(root, child.Name())
		if ignore != nil && ignore(path) {
			c.Log.Info(fmt.Sprintf("ignoring %s", path))
			continue
		}
		e, err := NewEntry(path, child.Name(), c.IgnoreSymlinks)
		if err != nil {
			c.Stats.Errors++
			c.Log.Warning(fmt.Sprintf("could not stat %q: %v", path, err))
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// ResolveSize resolves the byte size of entry. Non-directories return
// their raw length immediately with no cache involvement; directories are
// accumulated depth-first under a fresh cycle guard and the total is
// written back to both entry.Size and the cache store.
func (c *Context) ResolveSize(entry *Entry) uint64 {
	if !entry.IsDir() {
		return entry.Size
	}
	return c.resolveDir(entry, newCycleGuard())
}

func (c *Context) resolveDir(entry *Entry, guard *cycleGuard) uint64 {
	id, err := fsident.Of(entry.Path)
	if err != nil {
		c.Stats.Errors++
		c.Log.Warning(fmt.Sprintf("could not resolve identity of %q: %v", entry.Path, err))
		return 0
	}

	if !guard.enter(id) {
		c.Stats.Cycles++
		c.Log.Warning(fmt.Sprintf("directory cycle detected at %s", entry.Path))
		return 0
	}

	key := sizecache.KeyFor(id)
	if !c.ForceRecompute {
		if size, ok := c.Cache.Lookup(key, id.VolumeID); ok {
			guard.leave(id)
			entry.Size = size
			return size
		}
	}

	children, err := os.ReadDir(entry.Path)
	if err != nil {
		c.Stats.Errors++
		c.Log.Warning(fmt.Sprintf("could not read directory %q: %v", entry.Path, err))
		guard.leave(id)
		return 0
	}

	errs := 0
	warn := func(format string, args ...any) {
		errs++
		if errs <= errorCap {
			c.Log.Warning(fmt.Sprintf(format, args...))
		}
	}

	var total uint64
	for _, child := range children {
		path := filepath.Join(entry.Path, child.Name())

		info, err := statEntry(path, c.IgnoreSymlinks)
		if err != nil {
			warn("could not get metadata for %q: %v", path, err)
			continue
		}

		if info.IsDir() {
			childID := fsident.FromFileInfo(info, path)
			if childID == id || guard.onPath(childID) {
				// Self-referential alias or an ancestor reappearing below
				// itself. Skip the edge, keep the rest of the directory.
				c.Stats.Cycles++
				c.Log.Warning(fmt.Sprintf("directory cycle detected at %s", path))
				continue
			}
			sub, err := NewEntry(path, child.Name(), c.IgnoreSymlinks)
			if err != nil {
				warn("could not stat %q: %v", path, err)
				continue
			}
			total = saturatingAdd(total, c.resolveDir(sub, guard))
			continue
		}

		if c.IgnoreSymlinks && info.Mode()&fs.ModeSymlink != 0 {
			continue
		}
		total = saturatingAdd(total, uint64(info.Size()))
	}

	if errs > errorCap {
		c.Log.Warning(fmt.Sprintf("%d additional errors in %q", errs-errorCap, entry.Path))
	}
	c.Stats.Errors += errs

	entry.Size = total
	c.Cache.Insert(key, total, id.VolumeID, id.NodeID)
	guard.leave(id)

	c.Log.Info(fmt.Sprintf("directory %q: %d entries, %d errors, %d bytes",
		entry.Name, len(children), errs, total))
	return total
}

// saturatingAdd clamps at the maximum uint64 instead of wrapping.
func saturatingAdd(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return ^uint64(0)
	}
	return sum
}

// Package sizecache holds previously computed directory sizes across runs.
// The in-memory Store maps digest-derived keys to size records; the codec
// in this package persists the whole store as a flat binary record stream.
package sizecache

import (
	"encoding/hex"
	"math/bits"
	"strconv"

	"github.com/google/btree"
	sha256 "github.com/minio/sha256-simd"

	"github.com/lss-dev/lss/internal/fsident"
)

// Key is the persisted map key: the lowercase hex form of a SHA-256 digest
// over the decimal strings of node-id then volume-id. Deriving keys from a
// digest keeps the on-disk key field at a bounded, predictable length.
type Key string

// KeyFor derives the cache key for an identity.
func KeyFor(id fsident.Identity) Key {
	h := sha256.New()
	h.Write([]byte(strconv.FormatUint(id.NodeID, 10)))
	h.Write([]byte(strconv.FormatUint(id.VolumeID, 10)))
	return Key(hex.EncodeToString(h.Sum(nil)))
}

// Entry is one persisted size record.
type Entry struct {
	Key       Key
	Magnitude uint64
	Unit      Unit
	VolumeID  uint64
	NodeID    uint64
}

// Store is the in-memory cache. It is ordered by key so that persisting it
// produces a deterministic byte stream.
type Store struct {
	tree *btree.BTreeG[Entry]
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		tree: btree.NewG(32, func(a, b Entry) bool { return a.Key < b.Key }),
	}
}

// Lookup returns the scaled byte size recorded under key, but only when the
// stored volume-id matches the live one. A mismatch means the filesystem
// identity was reused (remount, different disk) and the record cannot be
// trusted, so it reads as a miss.
func (s *Store) Lookup(key Key, liveVolumeID uint64) (uint64, bool) {
	e, ok := s.tree.Get(Entry{Key: key})
	if !ok || e.VolumeID != liveVolumeID {
		return 0, false
	}
	return saturatingMul(e.Magnitude, e.Unit.Scale()), true
}

// Insert records size bytes for key, overwriting any previous record. New
// records are always stored in raw-byte form.
func (s *Store) Insert(key Key, size uint64, volumeID, nodeID uint64) {
	s.tree.ReplaceOrInsert(Entry{
		Key:       key,
		Magnitude: size,
		Unit:      UnitBytes,
		VolumeID:  volumeID,
		NodeID:    nodeID,
	})
}

// put inserts a decoded record as-is, preserving its unit tag.
func (s *Store) put(e Entry) {
	s.tree.ReplaceOrInsert(e)
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	return s.tree.Len()
}

// Ascend visits every record in ascending key order until fn returns false.
func (s *Store) Ascend(fn func(Entry) bool) {
	s.tree.Ascend(btree.ItemIteratorG[Entry](fn))
}

// saturatingMul clamps at the maximum uint64 instead of wrapping.
func saturatingMul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return ^uint64(0)
	}
	return lo
}

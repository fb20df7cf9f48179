package sizecache

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lss-dev/lss/internal/fsident"
)

func TestKeyFor(t *testing.T) {
	id := fsident.Identity{NodeID: 12345, VolumeID: 67}

	key := KeyFor(id)
	assert.Len(t, string(key), 64, "hex sha-256 digest")
	assert.Equal(t, key, KeyFor(id), "key derivation must be deterministic")

	other := KeyFor(fsident.Identity{NodeID: 12345, VolumeID: 68})
	assert.NotEqual(t, key, other)
}

func TestStoreLookupInsert(t *testing.T) {
	store := NewStore()
	key := KeyFor(fsident.Identity{NodeID: 1, VolumeID: 7})

	_, ok := store.Lookup(key, 7)
	assert.False(t, ok, "empty store must miss")

	store.Insert(key, 350, 7, 1)
	size, ok := store.Lookup(key, 7)
	require.True(t, ok)
	assert.Equal(t, uint64(350), size)

	// A record is trusted only when the stored volume-id matches the live
	// one; a remounted or swapped volume reads as a miss.
	_, ok = store.Lookup(key, 8)
	assert.False(t, ok)

	store.Insert(key, 500, 7, 1)
	size, ok = store.Lookup(key, 7)
	require.True(t, ok)
	assert.Equal(t, uint64(500), size, "insert overwrites")
	assert.Equal(t, 1, store.Len())
}

func TestStoreLookupScalesUnits(t *testing.T) {
	store := NewStore()
	key := Key("somekey")
	store.put(Entry{Key: key, Magnitude: 2, Unit: UnitKibibytes, VolumeID: 7, NodeID: 1})

	size, ok := store.Lookup(key, 7)
	require.True(t, ok)
	assert.Equal(t, uint64(2048), size)

	store.put(Entry{Key: key, Magnitude: 3, Unit: UnitMegabytes, VolumeID: 7, NodeID: 1})
	size, ok = store.Lookup(key, 7)
	require.True(t, ok)
	assert.Equal(t, uint64(3_000_000), size)
}

func TestStoreLookupSaturatesOnScale(t *testing.T) {
	store := NewStore()
	key := Key("hugekey")
	store.put(Entry{Key: key, Magnitude: math.MaxUint64 / 2, Unit: UnitTebibytes, VolumeID: 7})

	size, ok := store.Lookup(key, 7)
	require.True(t, ok)
	assert.Equal(t, uint64(math.MaxUint64), size, "scaling must clamp, not wrap")
}

func TestStoreAscendOrdered(t *testing.T) {
	store := NewStore()
	store.put(Entry{Key: "b"})
	store.put(Entry{Key: "a"})
	store.put(Entry{Key: "c"})

	var keys []Key
	store.Ascend(func(e Entry) bool {
		keys = append(keys, e.Key)
		return true
	})
	assert.Equal(t, []Key{"a", "b", "c"}, keys)
}

func TestUnitScale(t *testing.T) {
	assert.Equal(t, uint64(1), UnitBytes.Scale())
	assert.Equal(t, uint64(1_000), UnitKilobytes.Scale())
	assert.Equal(t, uint64(1_000_000_000_000), UnitTerabytes.Scale())
	assert.Equal(t, uint64(1024), UnitKibibytes.Scale())
	assert.Equal(t, uint64(1<<40), UnitTebibytes.Scale())
	assert.Equal(t, uint64(1), Unit(0xbeef).Scale(), "unknown tags scale as bytes")

	assert.True(t, UnitBytes.Valid())
	assert.True(t, UnitGibibytes.Valid())
	assert.False(t, Unit(0).Valid())
	assert.False(t, Unit(0x0205).Valid())
}

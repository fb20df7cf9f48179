package sizecache

// Unit tags the magnitude scale of a persisted size. The high byte selects
// the family (0x00 decimal, 0x01 binary) and the low byte the magnitude
// order. New records are always written as UnitBytes; the remaining tags
// exist for compatibility with caches written by older tools.
type Unit uint16

const (
	UnitBytes     Unit = 0x0001
	UnitKilobytes Unit = 0x0002
	UnitMegabytes Unit = 0x0003
	UnitGigabytes Unit = 0x0004
	UnitTerabytes Unit = 0x0005
	UnitKibibytes Unit = 0x0101
	UnitMebibytes Unit = 0x0102
	UnitGibibytes Unit = 0x0103
	UnitTebibytes Unit = 0x0104
)

// Scale returns the byte multiplier for u. Unknown tags scale as raw bytes
// so a damaged unit field degrades to a pessimistic but safe value.
func (u Unit) Scale() uint64 {
	switch u {
	case UnitKilobytes:
		return 1_000
	case UnitMegabytes:
		return 1_000_000
	case UnitGigabytes:
		return 1_000_000_000
	case UnitTerabytes:
		return 1_000_000_000_000
	case UnitKibibytes:
		return 1 << 10
	case UnitMebibytes:
		return 1 << 20
	case UnitGibibytes:
		return 1 << 30
	case UnitTebibytes:
		return 1 << 40
	default:
		return 1
	}
}

// Valid reports whether u is one of the nine known tags.
func (u Unit) Valid() bool {
	switch u {
	case UnitBytes, UnitKilobytes, UnitMegabytes, UnitGigabytes, UnitTerabytes,
		UnitKibibytes, UnitMebibytes, UnitGibibytes, UnitTebibytes:
		return true
	}
	return false
}

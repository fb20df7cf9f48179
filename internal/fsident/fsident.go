// Package fsident resolves filesystem paths to stable (node, volume)
// identity pairs. Identities are the basis for both cycle detection and
// cache validation: two paths with equal Identity refer to the same
// physical filesystem object within one process run.
package fsident

// Identity names a physical filesystem object.
type Identity struct {
	NodeID   uint64
	VolumeID uint64
}

// IsZero reports whether id is the sentinel returned on metadata failure.
func (id Identity) IsZero() bool {
	return id == Identity{}
}

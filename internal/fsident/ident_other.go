//go:build !unix

package fsident

import (
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// Of synthesizes an identity on platforms without native inode and device
// numbers. The node component is derived from content-stable inputs (mtime
// nanos mixed with size) and the volume component from a hash of the
// path's volume root. Distinct objects may alias under this scheme; it is
// a best-effort fallback, not a guarantee.
func Of(path string) (Identity, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Identity{}, err
	}
	return FromFileInfo(info, path), nil
}

// FromFileInfo derives a synthetic identity from an already-resolved
// FileInfo and the path it was resolved for.
func FromFileInfo(info os.FileInfo, path string) Identity {
	return Identity{
		NodeID:   uint64(info.ModTime().UnixNano())*31 ^ uint64(info.Size()),
		VolumeID: xxhash.Sum64String(volumeRoot(path)),
	}
}

func volumeRoot(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if root := filepath.VolumeName(abs); root != "" {
		return root
	}
	return string(filepath.Separator)
}

//go:build unix

package fsident

import (
	"os"
	"syscall"
)

// Of stats path and returns its native (inode, device) identity. The zero
// Identity is returned alongside the error when the stat fails.
func Of(path string) (Identity, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Identity{}, err
	}
	return FromFileInfo(info, path), nil
}

// FromFileInfo extracts an identity from an already-resolved FileInfo,
// avoiding a second stat when the caller holds one.
func FromFileInfo(info os.FileInfo, _ string) Identity {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok || stat == nil {
		return Identity{}
	}
	return Identity{
		NodeID:   uint64(stat.Ino),
		VolumeID: uint64(stat.Dev), // #nosec G115 -- platform-defined but representable in uint64
	}
}

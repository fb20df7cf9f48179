//go:build unix

package traverse

import (
	"os"
	"syscall"
)

func metadataOf(info os.FileInfo) Metadata {
	m := Metadata{Mode: info.Mode()}
	if stat, ok := info.Sys().(*syscall.Stat_t); ok && stat != nil {
		m.Nlink = uint64(stat.Nlink)
		m.UID = stat.Uid
		m.GID = stat.Gid
	}
	return m
}

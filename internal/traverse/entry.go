package traverse

import (
	"io/fs"
	"os"
)

// Kind classifies a scanned node.
type Kind string

const (
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
	KindSymlink   Kind = "symlink"
	KindOther     Kind = "other"
)

// Metadata is the ownership and permission bundle shown in the listing.
type Metadata struct {
	Mode  fs.FileMode
	Nlink uint64
	UID   uint32
	GID   uint32
}

// Entry is one scanned node. Size is authoritative for files at discovery
// time; for directories it is whatever ResolveSize last computed. All
// other fields are set once at discovery.
type Entry struct {
	Name string
	Path string
	Size uint64
	Kind Kind
	Meta Metadata
}

// IsDir reports whether the entry is a directory.
func (e *Entry) IsDir() bool {
	return e.Kind == KindDirectory
}

// NewEntry stats path and builds its Entry. With ignoreSymlinks set the
// link itself is described instead of its target.
func NewEntry(path, name string, ignoreSymlinks bool) (*Entry, error) {
	info, err := statEntry(path, ignoreSymlinks)
	if err != nil {
		return nil, err
	}
	return &Entry{
		Name: name,
		Path: path,
		Size: uint64(info.Size()),
		Kind: classify(info),
		Meta: metadataOf(info),
	}, nil
}

func statEntry(path string, ignoreSymlinks bool) (os.FileInfo, error) {
	if ignoreSymlinks {
		return os.Lstat(path)
	}
	return os.Stat(path)
}

func classify(info os.FileInfo) Kind {
	switch {
	case info.IsDir():
		return KindDirectory
	case info.Mode()&fs.ModeSymlink != 0:
		return KindSymlink
	case info.Mode().IsRegular():
		return KindFile
	default:
		return KindOther
	}
}

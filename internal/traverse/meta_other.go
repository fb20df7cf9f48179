//go:build !unix

package traverse

import "os"

// metadataOf on non-unix platforms has no link count or ownership to
// report; the mode is all the listing gets.
func metadataOf(info os.FileInfo) Metadata {
	return Metadata{Mode: info.Mode(), Nlink: 1}
}

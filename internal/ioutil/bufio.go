// Package ioutil provides small io helpers shared by the cache codec.
package ioutil

import (
	"bufio"
	"io"
)

const DefaultBufioSize = 64 * 1024 // 64KB

// WithBufferedWrites wraps w in a buffer that is flushed by Close. Close
// does not close the underlying writer.
func WithBufferedWrites(w io.Writer) io.WriteCloser {
	bufw := bufio.NewWriterSize(w, DefaultBufioSize)
	return &writeCloser{Writer: bufw, closer: bufw.Flush}
}

// WithBufferedReads wraps r in a read buffer.
func WithBufferedReads(r io.Reader) io.Reader {
	return bufio.NewReaderSize(r, DefaultBufioSize)
}

type writeCloser struct {
	io.Writer
	closer func() error
}

var _ io.WriteCloser = (*writeCloser)(nil)

func (wc *writeCloser) Close() error {
	return wc.closer()
}

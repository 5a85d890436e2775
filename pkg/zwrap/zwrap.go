// Package zwrap lets database readers not care whether a file on disk
// was gzipped. Wrap a seekable stream and you get a reader that
// decompresses when needed and closes both layers in the right order.

package zwrap

import (
	"compress/gzip"
	"errors"
	"io"
)

// Reader is what comes back from WrapMaybe. When the source was not
// compressed it is a thin pass-through.
type Reader struct {
	src  io.ReadCloser
	zrdr *gzip.Reader // nil when the source is plain
}

// Read pulls from the decompressor when there is one, otherwise from
// the underlying stream.
func (r *Reader) Read(p []byte) (int, error) {
	if r.zrdr != nil {
		return r.zrdr.Read(p)
	}
	return r.src.Read(p)
}

// Close shuts the decompressor first, then the backing stream, and
// reports whichever failed.
func (r *Reader) Close() error {
	if r.zrdr == nil {
		return r.src.Close()
	}
	var s string
	if e := r.zrdr.Close(); e != nil {
		s = e.Error()
	}
	if e := r.src.Close(); e != nil {
		s = s + " " + e.Error()
	}
	if s == "" {
		return nil
	}
	return errors.New(s)
}

// ReadSeekCloser is what WrapMaybe needs: it has to rewind after a
// failed gzip probe.
type ReadSeekCloser interface {
	io.Reader
	io.Seeker
	io.Closer
}

// WrapMaybe sniffs the stream for gzip and wraps accordingly. A
// compressed source loses seekability, that is the price of reading
// through the decompressor.
func WrapMaybe(src ReadSeekCloser) (*Reader, error) {
	if zr, err := gzip.NewReader(src); err == nil {
		return &Reader{src: src, zrdr: zr}, nil
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return &Reader{src: src}, nil
}

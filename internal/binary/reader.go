// Package binary provides bounds-checked reading primitives for container
// headers built from fixed-width ASCII fields and big-endian binary payloads.
package binary

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SafeReader wraps io.ReaderAt with bounds checking and helpful error messages.
type SafeReader struct {
	r    io.ReaderAt
	path string
	size int64
}

// NewSafeReader creates a new SafeReader.
func NewSafeReader(r io.ReaderAt, size int64, path string) *SafeReader {
	return &SafeReader{
		r:    r,
		size: size,
		path: path,
	}
}

// Path returns the file path associated with this reader.
func (sr *SafeReader) Path() string {
	return sr.path
}

// Size returns the total number of readable bytes.
func (sr *SafeReader) Size() int64 {
	return sr.size
}

// ReadAt reads bytes at the given offset with context for error messages.
func (sr *SafeReader) ReadAt(b []byte, off int64, what string) error {
	if off < 0 || off >= sr.size {
		return fmt.Errorf("%s: offset %d out of bounds (file size: %d) while reading %s",
			sr.path, off, sr.size, what)
	}

	if off+int64(len(b)) > sr.size {
		return fmt.Errorf("%s: read of %d bytes at offset %d would exceed file size %d while reading %s",
			sr.path, len(b), off, sr.size, what)
	}

	n, err := sr.r.ReadAt(b, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%s: failed to read %s at offset %d: %w", sr.path, what, off, err)
	}

	if n < len(b) {
		return fmt.Errorf("%s: short read for %s at offset %d: got %d bytes, expected %d",
			sr.path, what, off, n, len(b))
	}

	return nil
}

// ReadBytes reads length bytes at off into a freshly allocated slice.
func (sr *SafeReader) ReadBytes(off, length int64, what string) ([]byte, error) {
	if length < 0 {
		return nil, fmt.Errorf("%s: negative length %d while reading %s", sr.path, length, what)
	}
	if length == 0 {
		return []byte{}, nil
	}
	buf := make([]byte, length)
	if err := sr.ReadAt(buf, off, what); err != nil {
		return nil, err
	}
	return buf, nil
}

// Window reads length bytes at off with a single ReadAt on the underlying
// source and returns a SafeReader serving that range from memory. Offsets
// stay absolute, so fields are addressed exactly as in the full file. Reads
// that leave the window fail as if the file ended there.
func (sr *SafeReader) Window(off, length int64, what string) (*SafeReader, error) {
	buf, err := sr.ReadBytes(off, length, what)
	if err != nil {
		return nil, err
	}
	return &SafeReader{
		r:    &window{base: off, buf: buf},
		path: sr.path,
		size: off + int64(len(buf)),
	}, nil
}

type window struct {
	base int64
	buf  []byte
}

func (w *window) ReadAt(p []byte, off int64) (int, error) {
	if off < w.base {
		return 0, fmt.Errorf("offset %d precedes buffered range at %d", off, w.base)
	}
	rel := off - w.base
	if rel >= int64(len(w.buf)) {
		return 0, io.EOF
	}
	n := copy(p, w.buf[rel:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Reader provides sequential reading with automatic offset tracking.
type Reader struct {
	*SafeReader
	offset int64
}

// NewReader creates a new Reader starting at the given offset.
func NewReader(sr *SafeReader, offset int64) *Reader {
	return &Reader{
		SafeReader: sr,
		offset:     offset,
	}
}

// ReadString reads a fixed-width field and advances the offset.
// Trailing spaces used as field padding are removed.
func (r *Reader) ReadString(length int, what string) (string, error) {
	buf := make([]byte, length)
	if err := r.SafeReader.ReadAt(buf, r.offset, what); err != nil {
		return "", err
	}

	r.offset += int64(length)
	return strings.TrimRight(string(buf), " "), nil
}

// ReadInt reads a fixed-width ASCII decimal field and advances the offset.
func (r *Reader) ReadInt(length int, what string) (int64, error) {
	start := r.offset
	s, err := r.ReadString(length, what)
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid numeric field %s %q at offset %d",
			r.path, what, s, start)
	}
	return v, nil
}

// Skip advances the offset by n bytes.
func (r *Reader) Skip(n int64) {
	r.offset += n
}

// Offset returns the current offset.
func (r *Reader) Offset() int64 {
	return r.offset
}

// ChainReader allows chaining multiple reads with deferred error checking.
// This avoids repetitive "if err != nil" checks.
type ChainReader struct {
	*Reader
	err error
}

// NewChainReader creates a new ChainReader.
func NewChainReader(r *Reader) *ChainReader {
	return &ChainReader{Reader: r}
}

// String reads a string, accumulating any error.
func (cr *ChainReader) String(length int, what string) string {
	if cr.err != nil {
		return ""
	}

	val, err := cr.Reader.ReadString(length, what)
	if err != nil {
		cr.err = err
		return ""
	}

	return val
}

// Int reads an ASCII decimal field, accumulating any error.
// If a previous read failed, returns zero without attempting the read.
func (cr *ChainReader) Int(length int, what string) int64 {
	if cr.err != nil {
		return 0
	}

	val, err := cr.Reader.ReadInt(length, what)
	if err != nil {
		cr.err = err
		return 0
	}

	return val
}

// Skip advances past length bytes unless an error is already pending.
func (cr *ChainReader) Skip(length int64) {
	if cr.err != nil {
		return
	}
	cr.Reader.Skip(length)
}

// Fail records err unless an error is already pending. Subsequent reads are
// skipped.
func (cr *ChainReader) Fail(err error) {
	if cr.err == nil {
		cr.err = err
	}
}

// Error returns the accumulated error, if any.
func (cr *ChainReader) Error() error {
	return cr.err
}

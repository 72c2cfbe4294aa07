// Package source opens product files for reading and transparently expands
// gzip, zstd and lz4 wrapped products into memory.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the wrapper around a product, if any.
type Compression uint8

const (
	// CompressionNone means the bytes are read in place.
	CompressionNone Compression = iota
	// CompressionGzip is an RFC 1952 gzip stream.
	CompressionGzip
	// CompressionZstd is a zstd frame.
	CompressionZstd
	// CompressionLZ4 is an lz4 frame.
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "none"
	}
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// ErrTooLarge is returned when a decompressed product exceeds the limit
// passed to Open or Wrap.
var ErrTooLarge = errors.New("decompressed product exceeds size limit")

// Sniff identifies the wrapper from the leading bytes of a file.
func Sniff(head []byte) Compression {
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(head, lz4Magic):
		return CompressionLZ4
	case bytes.HasPrefix(head, gzipMagic):
		return CompressionGzip
	default:
		return CompressionNone
	}
}

// Handle is a readable product. Size is the length of the (decompressed)
// content visible through ReaderAt.
type Handle struct {
	io.ReaderAt
	Size        int64
	Path        string
	Compression Compression

	closer io.Closer
}

// Close releases the underlying file, if the handle owns one.
func (h *Handle) Close() error {
	if h.closer == nil {
		return nil
	}
	err := h.closer.Close()
	h.closer = nil
	return err
}

// Open opens path. Compressed products are expanded into memory, bounded by
// limit bytes when limit > 0, and the file is closed before returning.
func Open(path string, limit int64) (*Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat file: %w", err)
	}

	h, err := Wrap(f, stat.Size(), path, limit)
	if err != nil {
		f.Close()
		return nil, err
	}
	if h.Compression == CompressionNone {
		h.closer = f
		return h, nil
	}

	// Content now lives in memory.
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close file: %w", err)
	}
	return h, nil
}

// Wrap sniffs r and returns a handle over its content. Uncompressed input is
// returned as is; compressed input is expanded into memory. Wrap never
// closes r.
func Wrap(r io.ReaderAt, size int64, path string, limit int64) (*Handle, error) {
	head := make([]byte, 4)
	n, err := r.ReadAt(head, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: read signature: %w", path, err)
	}

	kind := Sniff(head[:n])
	if kind == CompressionNone {
		return &Handle{ReaderAt: r, Size: size, Path: path}, nil
	}

	data, err := Expand(kind, io.NewSectionReader(r, 0, size), limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", path, kind, err)
	}
	return &Handle{
		ReaderAt:    bytes.NewReader(data),
		Size:        int64(len(data)),
		Path:        path,
		Compression: kind,
	}, nil
}

// Expand decompresses the whole of src. A limit > 0 caps the output size.
func Expand(kind Compression, src io.Reader, limit int64) ([]byte, error) {
	var rd io.Reader
	switch kind {
	case CompressionGzip:
		zr, err := gzip.NewReader(src)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		rd = zr
	case CompressionZstd:
		opts := []zstd.DOption{zstd.WithDecoderConcurrency(1)}
		if limit > 0 {
			opts = append(opts, zstd.WithDecoderMaxMemory(uint64(limit)))
		}
		zr, err := zstd.NewReader(src, opts...)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		rd = zr
	case CompressionLZ4:
		rd = lz4.NewReader(src)
	default:
		return io.ReadAll(src)
	}

	if limit <= 0 {
		return io.ReadAll(rd)
	}

	// Read one byte past the limit to detect overflow.
	data, err := io.ReadAll(io.LimitReader(rd, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, ErrTooLarge
	}
	return data, nil
}

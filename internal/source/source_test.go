package source

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var payload = bytes.Repeat([]byte("NITF02.10 complex samples "), 512)

func compress(t *testing.T, kind Compression, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	var w io.WriteCloser
	switch kind {
	case CompressionGzip:
		w = gzip.NewWriter(&buf)
	case CompressionZstd:
		enc, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		w = enc
	case CompressionLZ4:
		w = lz4.NewWriter(&buf)
	default:
		return data
	}

	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestSniff(t *testing.T) {
	tests := []struct {
		head []byte
		want Compression
	}{
		{[]byte("NITF"), CompressionNone},
		{[]byte{0x1f, 0x8b, 0x08, 0x00}, CompressionGzip},
		{[]byte{0x28, 0xb5, 0x2f, 0xfd}, CompressionZstd},
		{[]byte{0x04, 0x22, 0x4d, 0x18}, CompressionLZ4},
		{[]byte{0x1f}, CompressionNone},
		{nil, CompressionNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Sniff(tt.head), "head % x", tt.head)
	}
}

func TestWrap(t *testing.T) {
	for _, kind := range []Compression{CompressionNone, CompressionGzip, CompressionZstd, CompressionLZ4} {
		t.Run(kind.String(), func(t *testing.T) {
			raw := compress(t, kind, payload)

			h, err := Wrap(bytes.NewReader(raw), int64(len(raw)), "mem", 0)
			require.NoError(t, err)
			defer h.Close()

			assert.Equal(t, kind, h.Compression)
			assert.Equal(t, int64(len(payload)), h.Size)

			got := make([]byte, h.Size)
			_, err = h.ReadAt(got, 0)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}
}

func TestWrap_Limit(t *testing.T) {
	raw := compress(t, CompressionGzip, payload)

	_, err := Wrap(bytes.NewReader(raw), int64(len(raw)), "mem", int64(len(payload)-1))
	assert.True(t, errors.Is(err, ErrTooLarge), "got %v", err)

	h, err := Wrap(bytes.NewReader(raw), int64(len(raw)), "mem", int64(len(payload)))
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), h.Size)
}

func TestWrap_CorruptStream(t *testing.T) {
	raw := compress(t, CompressionGzip, payload)
	raw = raw[:len(raw)/2]

	_, err := Wrap(bytes.NewReader(raw), int64(len(raw)), "half.gz", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "half.gz")
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "plain.ntf")
	require.NoError(t, os.WriteFile(plain, payload, 0o644))
	packed := filepath.Join(dir, "packed.ntf.zst")
	require.NoError(t, os.WriteFile(packed, compress(t, CompressionZstd, payload), 0o644))

	h, err := Open(plain, 0)
	require.NoError(t, err)
	assert.Equal(t, CompressionNone, h.Compression)
	assert.Equal(t, int64(len(payload)), h.Size)
	require.NoError(t, h.Close())
	assert.NoError(t, h.Close(), "second close is a no-op")

	h, err = Open(packed, 0)
	require.NoError(t, err)
	assert.Equal(t, CompressionZstd, h.Compression)
	assert.Equal(t, int64(len(payload)), h.Size)
	assert.NoError(t, h.Close())
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.ntf"), 0)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

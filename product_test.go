package sicd_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/sicd"
	"github.com/simonhull/sicd/internal/testutil"
	v1 "github.com/simonhull/sicd/schema/v1"
)

type segment struct {
	rows, cols int
	seed float32
}

func buildProduct(ns string, segs ...segment) []byte {
	n := testutil.NITF{
		DataExtensions: []testutil.DataExtension{{Data: testutil.MetadataXML(ns, 4, 4)}},
	}
	for _, s := range segs {
		n.Images = append(n.Images, testutil.Image{
			Rows: s.rows,
			Cols: s.cols,
			Data: testutil.EncodeSamples(testutil.Ramp(s.rows, s.cols, s.seed)),
		})
	}
	return n.Bytes()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestOpen_MultiSegment(t *testing.T) {
	segs := []segment{{2, 3, 0}, {4, 2, 100}, {1, 5, 200}}
	path := writeFile(t, "multi.ntf", buildProduct("urn:SICD:1.2.1", segs...))

	p, err := sicd.Open(path)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, sicd.V1_2_1, p.Version())
	assert.Equal(t, sicd.V1_2_1, p.Metadata().Version())
	assert.Equal(t, sicd.FormatNITF21, p.Format)
	assert.Equal(t, "none", p.Compression)

	images := p.Images()
	require.Len(t, images, len(segs))
	for i, s := range segs {
		assert.Equal(t, s.rows, images[i].Rows, "segment %d rows", i)
		assert.Equal(t, s.cols, images[i].Cols, "segment %d cols", i)
		assert.Equal(t, testutil.Ramp(s.rows, s.cols, s.seed), images[i].Data, "segment %d samples", i)
	}

	c := p.Container()
	assert.Equal(t, 3, c.Header.NumImages)
	assert.Len(t, c.Images, 3)
	assert.Len(t, c.DataExtensions, 1)
	assert.Equal(t, "XML_DATA_CONTENT", c.DataExtensions[0].ID)
}

func TestOpen_MetadataAccessors(t *testing.T) {
	tests := []struct {
		ns      string
		version sicd.Version
		schema  sicd.Schema
	}{
		{"urn:SICD:0.4.0", sicd.V0_4_0, sicd.SchemaV040},
		{"urn:SICD:0.5.0", sicd.V0_5_0, sicd.SchemaV050},
		{"urn:SICD:1.0.0", sicd.V1_0_0, sicd.SchemaV1},
		{"urn:SICD:1.3.0", sicd.V1_3_0, sicd.SchemaV1},
	}

	for _, tt := range tests {
		t.Run(tt.version.String(), func(t *testing.T) {
			data := buildProduct(tt.ns, segment{2, 2, 0})
			p, err := sicd.OpenReader(bytes.NewReader(data), int64(len(data)))
			require.NoError(t, err)

			assert.Equal(t, tt.version, p.Version())
			assert.Equal(t, tt.schema, p.Metadata().Schema())

			_, is040 := p.MetadataV040()
			_, is050 := p.MetadataV050()
			_, isV1 := p.MetadataV1()
			assert.Equal(t, tt.schema == sicd.SchemaV040, is040)
			assert.Equal(t, tt.schema == sicd.SchemaV050, is050)
			assert.Equal(t, tt.schema == sicd.SchemaV1, isV1)
		})
	}
}

func TestMetadataAs(t *testing.T) {
	data := buildProduct("urn:SICD:1.1.0", segment{1, 1, 0})
	p, err := sicd.OpenReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	doc, ok := sicd.MetadataAs[*v1.SICD](p)
	require.True(t, ok)
	assert.Equal(t, "CORE0001", doc.CollectionInfo.CoreName)

	_, ok = sicd.MetadataAs[string](p)
	assert.False(t, ok)
}

func TestOpen_Failures(t *testing.T) {
	valid := testutil.Image{Rows: 2, Cols: 2, Data: testutil.EncodeSamples(testutil.Ramp(2, 2, 0))}

	tests := []struct {
		name  string
		nitf  testutil.NITF
		opts  []sicd.Option
		check func(t *testing.T, err error)
	}{
		{
			name: "unknown namespace",
			nitf: testutil.NITF{
				Images:         []testutil.Image{valid},
				DataExtensions: []testutil.DataExtension{{Data: testutil.MetadataXML("urn:SICD:9.9.9", 2, 2)}},
			},
			check: func(t *testing.T, err error) {
				var verr *sicd.VersionError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "urn:SICD:9.9.9", verr.Token)
			},
		},
		{
			name: "unimplemented version",
			nitf: testutil.NITF{
				Images:         []testutil.Image{valid},
				DataExtensions: []testutil.DataExtension{{Data: testutil.MetadataXML("urn:SICD:0.4.1", 2, 2)}},
			},
			check: func(t *testing.T, err error) {
				var uerr *sicd.UnimplementedError
				require.ErrorAs(t, err, &uerr)
				assert.Equal(t, sicd.V0_4_1, uerr.Version)
			},
		},
		{
			name: "malformed metadata",
			nitf: testutil.NITF{
				Images:         []testutil.Image{valid},
				DataExtensions: []testutil.DataExtension{{Data: []byte(`<SICD xmlns="urn:SICD:1.3.0"><ImageData>`)}},
			},
			check: func(t *testing.T, err error) {
				var perr *sicd.MetadataParseError
				require.ErrorAs(t, err, &perr)
				assert.Equal(t, sicd.V1_3_0, perr.Version)
			},
		},
		{
			name: "no metadata segment",
			nitf: testutil.NITF{Images: []testutil.Image{valid}},
			check: func(t *testing.T, err error) {
				var merr *sicd.MissingSegmentError
				require.ErrorAs(t, err, &merr)
				assert.Equal(t, "metadata", merr.Kind)
			},
		},
		{
			name: "second segment too short",
			nitf: testutil.NITF{
				Images: []testutil.Image{
					valid,
					{Rows: 4, Cols: 4, Data: testutil.EncodeSamples(testutil.Ramp(4, 3, 0))},
				},
				DataExtensions: []testutil.DataExtension{{Data: testutil.MetadataXML("urn:SICD:1.3.0", 2, 2)}},
			},
			check: func(t *testing.T, err error) {
				var serr *sicd.ShapeMismatchError
				require.ErrorAs(t, err, &serr)
				assert.Equal(t, 1, serr.Segment)
				assert.Equal(t, int64(128), serr.Expected)
				assert.Equal(t, int64(96), serr.Actual)
			},
		},
		{
			name: "strict pixel type",
			nitf: testutil.NITF{
				Images:         []testutil.Image{{Rows: 2, Cols: 2, PixelType: "SI", Data: valid.Data}},
				DataExtensions: []testutil.DataExtension{{Data: testutil.MetadataXML("urn:SICD:1.3.0", 2, 2)}},
			},
			opts: []sicd.Option{sicd.WithStrictPixelType()},
			check: func(t *testing.T, err error) {
				var ferr *sicd.UnsupportedFormatError
				require.ErrorAs(t, err, &ferr)
				assert.Contains(t, ferr.Reason, "pixel value type")
			},
		},
		{
			name: "image over limit",
			nitf: testutil.NITF{
				Images:         []testutil.Image{valid},
				DataExtensions: []testutil.DataExtension{{Data: testutil.MetadataXML("urn:SICD:1.3.0", 2, 2)}},
			},
			opts: []sicd.Option{sicd.WithMaxImageBytes(16)},
			check: func(t *testing.T, err error) {
				var ferr *sicd.UnsupportedFormatError
				require.ErrorAs(t, err, &ferr)
				assert.Contains(t, ferr.Reason, "limit")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.nitf.Bytes()
			p, err := sicd.OpenReader(bytes.NewReader(data), int64(len(data)), tt.opts...)
			require.Error(t, err)
			assert.Nil(t, p)
			tt.check(t, err)
		})
	}
}

func TestOpen_LenientPixelType(t *testing.T) {
	n := testutil.NITF{
		Images: []testutil.Image{{
			Rows: 2, Cols: 2, PixelType: "SI",
			Data: testutil.EncodeSamples(testutil.Ramp(2, 2, 0)),
		}},
		DataExtensions: []testutil.DataExtension{{Data: testutil.MetadataXML("urn:SICD:1.3.0", 2, 2)}},
	}
	data := n.Bytes()

	p, err := sicd.OpenReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Len(t, p.Images(), 1)
}

func TestOpen_FirstDataExtensionIsMetadata(t *testing.T) {
	n := testutil.NITF{
		Images: []testutil.Image{{Rows: 1, Cols: 1, Data: testutil.EncodeSamples(testutil.Ramp(1, 1, 0))}},
		DataExtensions: []testutil.DataExtension{
			{ID: "SICD_XML", Data: testutil.MetadataXML("urn:SICD:1.0.1", 1, 1)},
			{Data: []byte("<ignored/>")},
		},
	}
	data := n.Bytes()

	p, err := sicd.OpenReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, sicd.V1_0_1, p.Version())
}

func TestOpen_NoImages(t *testing.T) {
	data := buildProduct("urn:SICD:1.3.0")

	p, err := sicd.OpenReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Empty(t, p.Images())
	assert.Equal(t, 0, p.Container().Header.NumImages)
}

func TestOpen_NSIF(t *testing.T) {
	n := testutil.NITF{
		Profile:        "NSIF01.00",
		Images:         []testutil.Image{{Rows: 1, Cols: 2, Data: testutil.EncodeSamples(testutil.Ramp(1, 2, 0))}},
		DataExtensions: []testutil.DataExtension{{Data: testutil.MetadataXML("urn:SICD:1.3.0", 1, 2)}},
	}
	path := writeFile(t, "nsif.ntf", n.Bytes())

	p, err := sicd.Open(path)
	require.NoError(t, err)
	defer p.Close()
	assert.Equal(t, sicd.FormatNSIF10, p.Format)
}

func TestOpen_Compressed(t *testing.T) {
	raw := buildProduct("urn:SICD:1.2.0", segment{3, 3, 7})

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	_, err := gw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	var zs bytes.Buffer
	zw, err := zstd.NewWriter(&zs)
	require.NoError(t, err)
	_, err = zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	t.Run("gzip file", func(t *testing.T) {
		p, err := sicd.Open(writeFile(t, "collect.ntf.gz", gz.Bytes()))
		require.NoError(t, err)
		defer p.Close()

		assert.Equal(t, "gzip", p.Compression)
		assert.Equal(t, int64(len(raw)), p.Size)
		assert.Equal(t, testutil.Ramp(3, 3, 7), p.Images()[0].Data)
	})

	t.Run("zstd reader", func(t *testing.T) {
		p, err := sicd.OpenReader(bytes.NewReader(zs.Bytes()), int64(zs.Len()))
		require.NoError(t, err)
		assert.Equal(t, "zstd", p.Compression)
		assert.Equal(t, sicd.V1_2_0, p.Version())
	})

	t.Run("limit", func(t *testing.T) {
		_, err := sicd.OpenReader(bytes.NewReader(gz.Bytes()), int64(gz.Len()),
			sicd.WithMaxDecompressedBytes(int64(len(raw)/2)))
		assert.Error(t, err)
	})
}

func TestOpen_WorkerCountIndependent(t *testing.T) {
	data := buildProduct("urn:SICD:1.3.0", segment{300, 257, 1})

	var want []complex64
	for _, workers := range []int{1, 2, 7, 0} {
		p, err := sicd.OpenReader(bytes.NewReader(data), int64(len(data)), sicd.WithDecodeWorkers(workers))
		require.NoError(t, err)

		got := p.Images()[0].Data
		if want == nil {
			want = got
			continue
		}
		assert.Equal(t, want, got, "workers=%d", workers)
	}
}

func TestOpen_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	data := buildProduct("urn:SICD:1.3.0", segment{2, 2, 0})
	_, err := sicd.OpenReader(bytes.NewReader(data), int64(len(data)), sicd.WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "resolved version")
	assert.Contains(t, out, "version=1.3.0")
	assert.Contains(t, out, "decoded image segment")
}

func TestOpenContext_Cancelled(t *testing.T) {
	path := writeFile(t, "c.ntf", buildProduct("urn:SICD:1.3.0", segment{2, 2, 0}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p, err := sicd.OpenContext(ctx, path)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	assert.Nil(t, p)
}

func TestProduct_CloseIdempotent(t *testing.T) {
	path := writeFile(t, "c.ntf", buildProduct("urn:SICD:1.3.0", segment{2, 2, 0}))

	p, err := sicd.Open(path)
	require.NoError(t, err)
	require.NoError(t, p.Close())
	assert.NoError(t, p.Close())

	// Decoded data outlives the file handle.
	assert.Len(t, p.Images()[0].Data, 4)
}

func TestParseVersion(t *testing.T) {
	for _, v := range sicd.Versions() {
		got, err := sicd.ParseVersion(v.URN())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

package sicd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/simonhull/sicd/internal/decode"
	"github.com/simonhull/sicd/internal/nitf"
	"github.com/simonhull/sicd/internal/types"
	"github.com/simonhull/sicd/internal/xmlmeta"
)

// Product is an opened SICD product: its metadata and every decoded image
// segment, in container order.
//
// Always call Close() when done to release the underlying file:
//
//	p, err := sicd.Open("collect.ntf")
//	if err != nil {
//		return err
//	}
//	defer p.Close()
type Product struct {
	// Path the product was read from
	Path string

	// Container profile (NITF 2.1 or NSIF 1.0)
	Format Format

	// Size of the container in bytes, after any decompression
	Size int64

	// Compression wrapped around the container on disk ("none" if read in place)
	Compression string

	version   Version
	metadata  Metadata
	images    []*Image
	container *nitf.File
	closer    io.Closer
}

// Version returns the schema version declared by the metadata.
func (p *Product) Version() Version {
	return p.version
}

// Metadata returns the parsed metadata document.
func (p *Product) Metadata() Metadata {
	return p.metadata
}

// Images returns the decoded image segments in container order.
//
// The returned slice should not be modified.
func (p *Product) Images() []*Image {
	return p.images
}

// Container returns the framing the product was read from.
func (p *Product) Container() Container {
	return Container{
		Header:         p.container.Header,
		Images:         slices.Clone(p.container.Images),
		DataExtensions: slices.Clone(p.container.DataExtensions),
	}
}

// Close releases resources held by the product.
//
// Decoded images and metadata remain valid after Close.
func (p *Product) Close() error {
	if p.closer == nil {
		return nil
	}
	err := p.closer.Close()
	p.closer = nil
	return err
}

// assemble builds a Product from a parsed container: the first data
// extension segment carries the metadata, and every image segment is decoded
// in order. Any failure aborts; no partial Product is returned.
func assemble(ctx context.Context, f *nitf.File, o *openOptions) (*Product, error) {
	log := o.logger.With(slog.String("path", f.Path()))

	if len(f.DataExtensions) == 0 {
		return nil, &MissingSegmentError{
			Path:   f.Path(),
			Kind:   "metadata",
			Reason: "container has no data extension segments",
		}
	}

	text, err := f.DESData(0)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	version, err := xmlmeta.Resolve(text)
	if err != nil {
		log.Debug("version resolution failed", slog.Any("error", err))
		return nil, err
	}
	log.Debug("resolved version",
		slog.String("version", version.String()),
		slog.String("schema", version.Schema().String()),
		slog.String("desid", f.DataExtensions[0].ID))

	meta, err := xmlmeta.Dispatch(version, text)
	if err != nil {
		log.Debug("metadata dispatch failed", slog.Any("error", err))
		return nil, err
	}

	images := make([]*Image, 0, len(f.Images))
	for i := range f.Images {
		img, err := decodeSegment(ctx, f, i, o)
		if err != nil {
			log.Debug("image decode failed", slog.Int("segment", i), slog.Any("error", err))
			return nil, err
		}
		log.Debug("decoded image segment",
			slog.Int("segment", i),
			slog.Int("rows", img.Rows),
			slog.Int("cols", img.Cols))
		images = append(images, img)
	}

	// Parse builds one image entry per NUMI length pair.
	if len(images) != f.Header.NumImages {
		return nil, &MissingSegmentError{
			Path:   f.Path(),
			Kind:   "image",
			Reason: fmt.Sprintf("decoded %d of %d image segments", len(images), f.Header.NumImages),
		}
	}

	return &Product{
		Path:      f.Path(),
		Format:    formatOf(f.Header.Profile),
		Size:      f.Size(),
		version:   version,
		metadata:  meta,
		images:    images,
		container: f,
	}, nil
}

// decodeSegment reads image segment i and decodes it. The raw buffer is
// dropped as soon as the samples are decoded.
func decodeSegment(ctx context.Context, f *nitf.File, i int, o *openOptions) (*Image, error) {
	seg := f.Images[i]

	if o.strictPixelType {
		if err := checkPixelType(f.Path(), seg); err != nil {
			return nil, err
		}
	}

	if o.maxImageBytes > 0 && seg.DataLength > o.maxImageBytes {
		return nil, &UnsupportedFormatError{
			Path:   f.Path(),
			Reason: fmt.Sprintf("image segment %d is %d bytes, limit is %d", i, seg.DataLength, o.maxImageBytes),
		}
	}

	// Reject before reading a payload that cannot match.
	if want, ok := decode.ByteLen(seg.Rows, seg.Cols); !ok || want != seg.DataLength {
		if !ok {
			want = -1
		}
		return nil, &ShapeMismatchError{
			Segment:  i,
			Rows:     seg.Rows,
			Cols:     seg.Cols,
			Expected: want,
			Actual:   seg.DataLength,
		}
	}

	buf, err := f.ImageData(i)
	if err != nil {
		return nil, fmt.Errorf("read image segment %d: %w", i, err)
	}

	img, err := decode.Decode(ctx, buf, seg.Rows, seg.Cols, o.decodeWorkers)
	if err != nil {
		var shape *types.ShapeMismatchError
		if errors.As(err, &shape) {
			shape.Segment = i
		}
		return nil, err
	}
	return img, nil
}

func checkPixelType(path string, seg nitf.ImageSegment) error {
	var reason string
	switch {
	case seg.PixelValueType != "R":
		reason = fmt.Sprintf("pixel value type %q, want R", seg.PixelValueType)
	case seg.BitsPerPixel != 32:
		reason = fmt.Sprintf("%d bits per pixel, want 32", seg.BitsPerPixel)
	case seg.Compression != "NC":
		reason = fmt.Sprintf("compression %q, want NC", seg.Compression)
	case seg.BlocksPerRow > 1 || seg.BlocksPerColumn > 1:
		reason = fmt.Sprintf("%dx%d blocks, want 1x1", seg.BlocksPerRow, seg.BlocksPerColumn)
	default:
		return nil
	}
	return &UnsupportedFormatError{
		Path:   path,
		Reason: fmt.Sprintf("image segment %d: %s", seg.Index, reason),
	}
}

package sicd

import (
	"io"
	"log/slog"
)

// Option configures behavior when opening products.
//
// Options use the functional options pattern:
//
//	p, err := sicd.Open("collect.ntf",
//	    sicd.WithDecodeWorkers(4),
//	    sicd.WithStrictPixelType(),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening products.
type openOptions struct {
	logger          *slog.Logger
	decodeWorkers   int   // goroutines per image decode, 0 = runtime.NumCPU()
	maxImageBytes   int64 // per image segment, 0 = no limit
	maxExpandBytes  int64 // decompressed product size, 0 = no limit
	strictPixelType bool
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func applyOptions(opts []Option) *openOptions {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger used while reading a product.
//
// Assembly steps (resolved version, per-segment decode, aborts) are logged
// at debug level. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *openOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDecodeWorkers bounds the goroutines used to decode one image segment.
//
// Default is runtime.NumCPU(). The decoded samples are identical for any
// worker count.
func WithDecodeWorkers(n int) Option {
	return func(o *openOptions) {
		o.decodeWorkers = n
	}
}

// WithMaxImageBytes rejects image segments whose payload exceeds n bytes
// before any of it is read.
//
// Default is 0 (no limit).
//
// Example:
//
//	// Refuse segments larger than 2 GiB
//	p, err := sicd.Open("collect.ntf", sicd.WithMaxImageBytes(2<<30))
func WithMaxImageBytes(n int64) Option {
	return func(o *openOptions) {
		o.maxImageBytes = n
	}
}

// WithMaxDecompressedBytes caps the in-memory size of gzip, zstd or lz4
// wrapped products.
//
// Default is 0 (no limit).
func WithMaxDecompressedBytes(n int64) Option {
	return func(o *openOptions) {
		o.maxExpandBytes = n
	}
}

// WithStrictPixelType verifies each image subheader declares uncompressed,
// unblocked 32-bit real pixels before decoding.
//
// By default only the payload length is checked against the segment
// dimensions.
func WithStrictPixelType() Option {
	return func(o *openOptions) {
		o.strictPixelType = true
	}
}

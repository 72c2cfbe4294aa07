package sicd

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/sicd/internal/nitf"
	"github.com/simonhull/sicd/internal/source"
)

// Open reads the SICD product at path.
//
// The metadata is parsed and every image segment is decoded before Open
// returns. Products wrapped in gzip, zstd or lz4 are expanded in memory.
//
// Example:
//
//	p, err := sicd.Open("collect.ntf")
//	if err != nil {
//		return err
//	}
//	defer p.Close()
//	fmt.Println(p.Version(), len(p.Images()))
func Open(path string, opts ...Option) (*Product, error) {
	return OpenContext(context.Background(), path, opts...)
}

// OpenContext is Open with cancellation. The context is checked before
// starting and is observed while image segments are decoded.
//
//	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//
//	p, err := sicd.OpenContext(ctx, "collect.ntf")
func OpenContext(ctx context.Context, path string, opts ...Option) (*Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o := applyOptions(opts)

	h, err := source.Open(path, o.maxExpandBytes)
	if err != nil {
		return nil, err
	}

	p, err := openHandle(ctx, h, o)
	if err != nil {
		h.Close()
		return nil, err
	}

	// Keep the handle so Close releases the file.
	p.closer = h
	return p, nil
}

// OpenReader reads a product from any random access source, such as an
// object store handle or an in-memory buffer.
//
// The caller keeps ownership of r; Product.Close does not close it.
func OpenReader(r io.ReaderAt, size int64, opts ...Option) (*Product, error) {
	return OpenReaderContext(context.Background(), r, size, "reader", opts...)
}

// OpenReaderContext is OpenReader with cancellation. name identifies the
// source in error messages.
func OpenReaderContext(ctx context.Context, r io.ReaderAt, size int64, name string, opts ...Option) (*Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o := applyOptions(opts)

	h, err := source.Wrap(r, size, name, o.maxExpandBytes)
	if err != nil {
		return nil, err
	}
	return openHandle(ctx, h, o)
}

func openHandle(ctx context.Context, h *source.Handle, o *openOptions) (*Product, error) {
	f, err := nitf.Parse(h, h.Size, h.Path)
	if err != nil {
		return nil, fmt.Errorf("parse container: %w", err)
	}

	p, err := assemble(ctx, f, o)
	if err != nil {
		return nil, err
	}
	p.Compression = h.Compression.String()
	return p, nil
}

// OpenMany opens multiple products concurrently.
//
// Products are read in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths.
//
// If any product fails to open, all successfully opened products are closed
// and an error is returned.
//
// Example:
//
//	products, err := sicd.OpenMany(ctx, paths...)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer func() {
//		for _, p := range products {
//			p.Close()
//		}
//	}()
func OpenMany(ctx context.Context, paths ...string) ([]*Product, error) {
	return OpenManyWith(ctx, paths, nil)
}

// OpenManyWith is OpenMany with options applied to every product.
func OpenManyWith(ctx context.Context, paths []string, opts []Option) ([]*Product, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*Product, len(paths))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			p, err := OpenContext(ctx, path, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, p := range results {
			if p != nil {
				p.Close()
			}
		}
		return nil, err
	}

	return results, nil
}

// Package decode converts raw image segment bytes into complex samples.
//
// Each sample is 8 bytes: a big-endian float32 real part followed by a
// big-endian float32 imaginary part, laid out row-major. Every output cell
// depends only on its own 8-byte window, so bands of rows are decoded
// concurrently without coordination.
package decode

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/sicd/internal/binary"
	"github.com/simonhull/sicd/internal/types"
)

// parallelThreshold is the sample count below which decoding stays on the
// calling goroutine.
const parallelThreshold = 1 << 16

// ByteLen returns rows*cols*8, or false if the dimensions are negative or
// the product overflows int64.
func ByteLen(rows, cols int) (int64, bool) {
	if rows < 0 || cols < 0 {
		return 0, false
	}
	r, c := int64(rows), int64(cols)
	if c != 0 && r > math.MaxInt64/binary.ComplexSize/c {
		return 0, false
	}
	return r * c * binary.ComplexSize, true
}

// Decode reinterprets buf as a rows x cols grid of complex samples.
//
// len(buf) must equal rows*cols*8, otherwise a *types.ShapeMismatchError is
// returned and nothing is allocated. workers bounds the number of goroutines;
// zero or less means runtime.NumCPU(). The result never aliases buf.
//
// A cancelled ctx aborts the decode and returns ctx.Err(); no partially
// decoded image is ever returned.
func Decode(ctx context.Context, buf []byte, rows, cols, workers int) (*types.Image, error) {
	expected, ok := ByteLen(rows, cols)
	if !ok || expected != int64(len(buf)) {
		if !ok {
			expected = -1
		}
		return nil, &types.ShapeMismatchError{
			Segment:  -1,
			Rows:     rows,
			Cols:     cols,
			Expected: expected,
			Actual:   int64(len(buf)),
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	im := types.NewImage(rows, cols)

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers == 1 || rows < 2 || im.Len() < parallelThreshold {
		decodeSpan(im.Data, buf)
		return im, nil
	}

	bands := min(workers, rows)
	rowsPerBand := (rows + bands - 1) / bands

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < rows; start += rowsPerBand {
		lo := start * cols
		hi := min(start+rowsPerBand, rows) * cols
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			decodeSpan(im.Data[lo:hi], buf[lo*binary.ComplexSize:hi*binary.ComplexSize])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return im, nil
}

// decodeSpan fills dst from src; len(src) == len(dst)*8.
func decodeSpan(dst []complex64, src []byte) {
	for i := range dst {
		off := i * binary.ComplexSize
		dst[i] = binary.Complex64BE(src[off : off+binary.ComplexSize])
	}
}

package types

import "math/cmplx"

// Image is one decoded image segment: a row-major grid of complex samples.
//
// Image owns Data; it never aliases the buffer it was decoded from.
type Image struct {
	Data []complex64
	Rows int
	Cols int
}

// NewImage allocates a zeroed rows x cols image.
func NewImage(rows, cols int) *Image {
	return &Image{
		Rows: rows,
		Cols: cols,
		Data: make([]complex64, rows*cols),
	}
}

// At returns the sample at (row, col). It panics if either index is out of
// range, like a slice index would.
func (im *Image) At(row, col int) complex64 {
	if row < 0 || row >= im.Rows || col < 0 || col >= im.Cols {
		panic("sicd: image index out of range")
	}
	return im.Data[row*im.Cols+col]
}

// Row returns the samples of one row. The returned slice shares storage
// with the image.
func (im *Image) Row(row int) []complex64 {
	start := row * im.Cols
	return im.Data[start : start+im.Cols : start+im.Cols]
}

// Len returns the number of samples.
func (im *Image) Len() int {
	return len(im.Data)
}

// Magnitude returns the per-sample amplitude |z| in row-major order.
func (im *Image) Magnitude() []float32 {
	out := make([]float32, len(im.Data))
	for i, z := range im.Data {
		out[i] = float32(cmplx.Abs(complex128(z)))
	}
	return out
}

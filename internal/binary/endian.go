package binary

import (
	"encoding/binary"
	"math"
)

// ComplexSize is the number of bytes in one complex float32 sample.
const ComplexSize = 8

// Float32BE interprets the first 4 bytes of b as a big-endian IEEE-754 float.
//
// Panics if len(b) < 4, matching encoding/binary.
func Float32BE(b []byte) float32 {
	return math.Float32frombits(binary.BigEndian.Uint32(b))
}

// Complex64BE interprets the first 8 bytes of b as a complex sample: a
// big-endian float32 real part followed by a big-endian float32 imaginary part.
//
// Example:
//
//	for i := 0; i+binary.ComplexSize <= len(buf); i += binary.ComplexSize {
//		out = append(out, binary.Complex64BE(buf[i:i+binary.ComplexSize]))
//	}
func Complex64BE(b []byte) complex64 {
	_ = b[7] // bounds check hint
	return complex(Float32BE(b[0:4]), Float32BE(b[4:8]))
}

// PutComplex64BE encodes c into the first 8 bytes of b using the layout
// read by Complex64BE.
func PutComplex64BE(b []byte, c complex64) {
	_ = b[7]
	binary.BigEndian.PutUint32(b[0:4], math.Float32bits(real(c)))
	binary.BigEndian.PutUint32(b[4:8], math.Float32bits(imag(c)))
}

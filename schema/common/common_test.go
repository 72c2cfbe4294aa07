package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoly1D_Eval(t *testing.T) {
	// 2 + 3x + 0.5x^3, coefficients listed out of order.
	p := Poly1D{
		Order1: 3,
		Coefs: []Coef1D{
			{Exponent1: 3, Value: 0.5},
			{Exponent1: 0, Value: 2},
			{Exponent1: 1, Value: 3},
		},
	}

	assert.InDelta(t, 2.0, p.Eval(0), 1e-12)
	assert.InDelta(t, 5.5, p.Eval(1), 1e-12)
	assert.InDelta(t, 12.0, p.Eval(2), 1e-12)
	assert.InDelta(t, 0.0, Poly1D{}.Eval(10), 1e-12)
}

func TestPoly2D_Eval(t *testing.T) {
	// 1 + x*y + 2y^2
	p := Poly2D{
		Order1: 1,
		Order2: 2,
		Coefs: []Coef2D{
			{Exponent1: 0, Exponent2: 0, Value: 1},
			{Exponent1: 1, Exponent2: 1, Value: 1},
			{Exponent1: 0, Exponent2: 2, Value: 2},
		},
	}

	assert.InDelta(t, 1.0, p.Eval(0, 0), 1e-12)
	assert.InDelta(t, 1.0+6+18, p.Eval(2, 3), 1e-12)
}

func TestXYZPoly_Eval(t *testing.T) {
	p := XYZPoly{
		X: Poly1D{Coefs: []Coef1D{{Exponent1: 0, Value: 7e6}, {Exponent1: 1, Value: 10}}},
		Y: Poly1D{Coefs: []Coef1D{{Exponent1: 1, Value: -1}}},
	}

	got := p.Eval(3)
	assert.Equal(t, XYZ{X: 7e6 + 30, Y: -3, Z: 0}, got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		ci      *CollectionInfo
		id      *ImageData
		missing string
	}{
		{name: "complete", ci: &CollectionInfo{}, id: &ImageData{NumRows: 1, NumCols: 1}},
		{name: "no collection info", id: &ImageData{NumRows: 1, NumCols: 1}, missing: "CollectionInfo"},
		{name: "no image data", ci: &CollectionInfo{}, missing: "ImageData"},
		{name: "zero rows", ci: &CollectionInfo{}, id: &ImageData{NumCols: 1}, missing: "ImageData/NumRows"},
		{name: "zero cols", ci: &CollectionInfo{}, id: &ImageData{NumRows: 1}, missing: "ImageData/NumCols"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.ci, tt.id)
			if tt.missing == "" {
				assert.NoError(t, err)
				return
			}

			var merr *MissingElementError
			if assert.True(t, errors.As(err, &merr)) {
				assert.Equal(t, tt.missing, merr.Element)
				assert.Contains(t, err.Error(), tt.missing)
			}
		})
	}
}

func TestUnmarshal_DeclaredEncoding(t *testing.T) {
	// 0xB0 is the degree sign in ISO-8859-1.
	text := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><!-- 45\xb0 --><LatLon><Lat>1.5</Lat><Lon>-2</Lon></LatLon>")

	var ll LatLon
	require.NoError(t, Unmarshal(text, &ll))
	assert.InDelta(t, 1.5, ll.Lat, 1e-12)
	assert.InDelta(t, -2.0, ll.Lon, 1e-12)

	var bad LatLon
	err := Unmarshal([]byte(`<?xml version="1.0" encoding="EBCDIC-XYZ"?><LatLon/>`), &bad)
	assert.Error(t, err)
}

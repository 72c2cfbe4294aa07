package common

// XYZ is an Earth-centered, Earth-fixed position or vector in meters.
type XYZ struct {
	X float64 `xml:"X"`
	Y float64 `xml:"Y"`
	Z float64 `xml:"Z"`
}

// LLH is a geodetic position: latitude and longitude in degrees, height
// above the ellipsoid in meters.
type LLH struct {
	Lat float64 `xml:"Lat"`
	Lon float64 `xml:"Lon"`
	HAE float64 `xml:"HAE"`
}

// LatLon is a geodetic latitude/longitude pair in degrees.
type LatLon struct {
	Lat float64 `xml:"Lat"`
	Lon float64 `xml:"Lon"`
}

// IndexedLatLon is a LatLon carrying its vertex index.
type IndexedLatLon struct {
	Index int     `xml:"index,attr"`
	Lat   float64 `xml:"Lat"`
	Lon   float64 `xml:"Lon"`
}

// RowCol is an integer pixel location.
type RowCol struct {
	Row int `xml:"Row"`
	Col int `xml:"Col"`
}

// IndexedRowCol is a RowCol carrying its vertex index.
type IndexedRowCol struct {
	Index int `xml:"index,attr"`
	Row   int `xml:"Row"`
	Col   int `xml:"Col"`
}

// Parameter is a free-form name/value pair.
type Parameter struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

// Coef1D is one coefficient of a one dimensional polynomial.
type Coef1D struct {
	Exponent1 int     `xml:"exponent1,attr"`
	Value     float64 `xml:",chardata"`
}

// Poly1D is a one dimensional polynomial stored as sparse coefficients.
type Poly1D struct {
	Order1 int      `xml:"order1,attr"`
	Coefs  []Coef1D `xml:"Coef"`
}

// Eval evaluates the polynomial at x.
func (p Poly1D) Eval(x float64) float64 {
	var sum float64
	for _, c := range p.Coefs {
		sum += c.Value * pow(x, c.Exponent1)
	}
	return sum
}

// Coef2D is one coefficient of a two dimensional polynomial.
type Coef2D struct {
	Exponent1 int     `xml:"exponent1,attr"`
	Exponent2 int     `xml:"exponent2,attr"`
	Value     float64 `xml:",chardata"`
}

// Poly2D is a two dimensional polynomial stored as sparse coefficients.
type Poly2D struct {
	Order1 int      `xml:"order1,attr"`
	Order2 int      `xml:"order2,attr"`
	Coefs  []Coef2D `xml:"Coef"`
}

// Eval evaluates the polynomial at (x, y).
func (p Poly2D) Eval(x, y float64) float64 {
	var sum float64
	for _, c := range p.Coefs {
		sum += c.Value * pow(x, c.Exponent1) * pow(y, c.Exponent2)
	}
	return sum
}

// XYZPoly is a vector valued polynomial of one variable, usually time.
type XYZPoly struct {
	X Poly1D `xml:"X"`
	Y Poly1D `xml:"Y"`
	Z Poly1D `xml:"Z"`
}

// Eval evaluates each component at t.
func (p XYZPoly) Eval(t float64) XYZ {
	return XYZ{X: p.X.Eval(t), Y: p.Y.Eval(t), Z: p.Z.Eval(t)}
}

func pow(x float64, n int) float64 {
	r := 1.0
	for ; n > 0; n-- {
		r *= x
	}
	return r
}

package common

// CollectionInfo describes the collector and the collection.
type CollectionInfo struct {
	CollectorName   string      `xml:"CollectorName"`
	IlluminatorName string      `xml:"IlluminatorName,omitempty"`
	CoreName        string      `xml:"CoreName"`
	CollectType     string      `xml:"CollectType,omitempty"`
	RadarMode       RadarMode   `xml:"RadarMode"`
	Classification  string      `xml:"Classification"`
	CountryCodes    []string    `xml:"CountryCode"`
	Parameters      []Parameter `xml:"Parameter"`
}

// RadarMode identifies the collection mode (SPOTLIGHT, STRIPMAP, ...).
type RadarMode struct {
	ModeType string `xml:"ModeType"`
	ModeID   string `xml:"ModeID,omitempty"`
}

// ImageCreation records how and when the product was formed.
type ImageCreation struct {
	Application string `xml:"Application,omitempty"`
	DateTime    string `xml:"DateTime,omitempty"`
	Site        string `xml:"Site,omitempty"`
	Profile     string `xml:"Profile,omitempty"`
}

// ImageData describes the pixel grid stored in the image segments.
type ImageData struct {
	PixelType string     `xml:"PixelType"`
	NumRows   int        `xml:"NumRows"`
	NumCols   int        `xml:"NumCols"`
	FirstRow  int        `xml:"FirstRow"`
	FirstCol  int        `xml:"FirstCol"`
	FullImage FullImage  `xml:"FullImage"`
	SCPPixel  RowCol     `xml:"SCPPixel"`
	ValidData *ValidData `xml:"ValidData"`
}

// FullImage is the size of the complete formed image.
type FullImage struct {
	NumRows int `xml:"NumRows"`
	NumCols int `xml:"NumCols"`
}

// ValidData is a pixel polygon bounding valid samples.
type ValidData struct {
	Size     int             `xml:"size,attr"`
	Vertices []IndexedRowCol `xml:"Vertex"`
}

// GeoData locates the scene on the Earth.
type GeoData struct {
	EarthModel   string          `xml:"EarthModel"`
	SCP          SCP             `xml:"SCP"`
	ImageCorners []Corner        `xml:"ImageCorners>ICP"`
	ValidData    []IndexedLatLon `xml:"ValidData>Vertex"`
}

// Corner is one image corner point; Index is of the form "1:FRFC".
type Corner struct {
	Index string  `xml:"index,attr"`
	Lat   float64 `xml:"Lat"`
	Lon   float64 `xml:"Lon"`
}

// SCP is the scene center point.
type SCP struct {
	ECF XYZ `xml:"ECF"`
	LLH LLH `xml:"LLH"`
}

// Timeline gives the collection start and the inter-pulse period sets.
type Timeline struct {
	CollectStart    string   `xml:"CollectStart"`
	CollectDuration float64  `xml:"CollectDuration"`
	IPP             []IPPSet `xml:"IPP>Set"`
}

// IPPSet is one constant-PRF interval of the collection.
type IPPSet struct {
	Index    int     `xml:"index,attr"`
	TStart   float64 `xml:"TStart"`
	TEnd     float64 `xml:"TEnd"`
	IPPStart int     `xml:"IPPStart"`
	IPPEnd   int     `xml:"IPPEnd"`
	IPPPoly  Poly1D  `xml:"IPPPoly"`
}

// Position gives the platform trajectory as polynomials of time.
type Position struct {
	ARPPoly   XYZPoly  `xml:"ARPPoly"`
	GRPPoly   *XYZPoly `xml:"GRPPoly"`
	TxAPCPoly *XYZPoly `xml:"TxAPCPoly"`
}

// SCPCOA is the geometry at the scene center point's center of aperture.
type SCPCOA struct {
	SCPTime        float64 `xml:"SCPTime"`
	ARPPos         XYZ     `xml:"ARPPos"`
	ARPVel         XYZ     `xml:"ARPVel"`
	ARPAcc         XYZ     `xml:"ARPAcc"`
	SideOfTrack    string  `xml:"SideOfTrack"`
	SlantRange     float64 `xml:"SlantRange"`
	GroundRange    float64 `xml:"GroundRange"`
	DopplerConeAng float64 `xml:"DopplerConeAng"`
	GrazeAng       float64 `xml:"GrazeAng"`
	IncidenceAng   float64 `xml:"IncidenceAng"`
	TwistAng       float64 `xml:"TwistAng"`
	SlopeAng       float64 `xml:"SlopeAng"`
	AzimAng        float64 `xml:"AzimAng"`
	LayoverAng     float64 `xml:"LayoverAng"`
}

// RgAzComp holds range/azimuth compression parameters.
type RgAzComp struct {
	AzSF    float64 `xml:"AzSF"`
	KazPoly Poly1D  `xml:"KazPoly"`
}

// PFA holds polar format algorithm parameters.
type PFA struct {
	FPN               XYZ     `xml:"FPN"`
	IPN               XYZ     `xml:"IPN"`
	PolarAngRefTime   float64 `xml:"PolarAngRefTime"`
	PolarAngPoly      Poly1D  `xml:"PolarAngPoly"`
	SpatialFreqSFPoly Poly1D  `xml:"SpatialFreqSFPoly"`
	Krg1              float64 `xml:"Krg1"`
	Krg2              float64 `xml:"Krg2"`
	Kaz1              float64 `xml:"Kaz1"`
	Kaz2              float64 `xml:"Kaz2"`
}

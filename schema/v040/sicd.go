// Package v040 is the SICD 0.4.0 metadata schema.
//
// Importing the package registers its decoder with the reader.
package v040

import (
	"encoding/xml"

	"github.com/simonhull/sicd/internal/registry"
	"github.com/simonhull/sicd/internal/types"
	"github.com/simonhull/sicd/schema/common"
)

// SICD is the root of a 0.4.0 metadata document.
type SICD struct {
	XMLName         xml.Name               `xml:"SICD"`
	CollectionInfo  *common.CollectionInfo `xml:"CollectionInfo"`
	ImageCreation   *common.ImageCreation  `xml:"ImageCreation"`
	ImageData       *common.ImageData      `xml:"ImageData"`
	GeoData         *common.GeoData        `xml:"GeoData"`
	Grid            *Grid                  `xml:"Grid"`
	Timeline        *common.Timeline       `xml:"Timeline"`
	Position        *common.Position       `xml:"Position"`
	RadarCollection *RadarCollection       `xml:"RadarCollection"`
	ImageFormation  *ImageFormation        `xml:"ImageFormation"`
	SCPCOA          *common.SCPCOA         `xml:"SCPCOA"`
	RgAzComp        *common.RgAzComp       `xml:"RgAzComp"`
	PFA             *common.PFA            `xml:"PFA"`
}

// Grid describes the image sample grid. In 0.4.0 the spatial frequency
// offset polynomial is named KCOAPoly.
type Grid struct {
	ImagePlane  string        `xml:"ImagePlane"`
	Type        string        `xml:"Type"`
	TimeCOAPoly common.Poly2D `xml:"TimeCOAPoly"`
	Row         DirParam      `xml:"Row"`
	Col         DirParam      `xml:"Col"`
}

// DirParam holds the sampling parameters of one grid direction.
type DirParam struct {
	UVectECF   common.XYZ     `xml:"UVectECF"`
	SS         float64        `xml:"SS"`
	ImpRespWid float64        `xml:"ImpRespWid"`
	Sgn        int            `xml:"Sgn"`
	ImpRespBW  float64        `xml:"ImpRespBW"`
	KCtr       float64        `xml:"KCtr"`
	DeltaK1    float64        `xml:"DeltaK1"`
	DeltaK2    float64        `xml:"DeltaK2"`
	KCOAPoly   *common.Poly2D `xml:"KCOAPoly"`
	WgtType    string         `xml:"WgtType"`
}

// RadarCollection describes the transmitted band and receive channels.
type RadarCollection struct {
	TxFrequency    TxFrequency    `xml:"TxFrequency"`
	TxPolarization string         `xml:"TxPolarization"`
	Waveform       []WFParameters `xml:"Waveform>WFParameters"`
	RcvChannels    []ChanParams   `xml:"RcvChannels>ChanParameters"`
}

// TxFrequency is the transmitted frequency band in Hz.
type TxFrequency struct {
	Min float64 `xml:"Min"`
	Max float64 `xml:"Max"`
}

// WFParameters describes one transmitted waveform.
type WFParameters struct {
	Index         int     `xml:"index,attr"`
	TxPulseLength float64 `xml:"TxPulseLength"`
	TxRFBandwidth float64 `xml:"TxRFBandwidth"`
	TxFreqStart   float64 `xml:"TxFreqStart"`
	TxFMRate      float64 `xml:"TxFMRate"`
}

// ChanParams describes one receive channel.
type ChanParams struct {
	Index             int    `xml:"index,attr"`
	TxRcvPolarization string `xml:"TxRcvPolarization"`
}

// ImageFormation records the processing that formed the image.
type ImageFormation struct {
	TxRcvPolarizationProc string  `xml:"TxRcvPolarizationProc"`
	TStartProc            float64 `xml:"TStartProc"`
	TEndProc              float64 `xml:"TEndProc"`
	ImageFormAlgo         string  `xml:"ImageFormAlgo"`
	STBeamComp            string  `xml:"STBeamComp"`
	ImageBeamComp         string  `xml:"ImageBeamComp"`
	AzAutofocus           string  `xml:"AzAutofocus"`
	RgAutofocus           string  `xml:"RgAutofocus"`
}

// Decode parses a 0.4.0 metadata document.
func Decode(text []byte) (*SICD, error) {
	var doc SICD
	if err := common.Unmarshal(text, &doc); err != nil {
		return nil, err
	}
	if err := common.Validate(doc.CollectionInfo, doc.ImageData); err != nil {
		return nil, err
	}
	return &doc, nil
}

func init() {
	registry.Register(types.SchemaV040, registry.DecoderFunc(func(text []byte) (any, error) {
		doc, err := Decode(text)
		if err != nil {
			return nil, err
		}
		return doc, nil
	}))
}

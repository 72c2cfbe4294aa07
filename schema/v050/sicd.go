// Package v050 is the SICD 0.5.0 metadata schema.
//
// Importing the package registers its decoder with the reader.
package v050

import (
	"encoding/xml"

	"github.com/simonhull/sicd/internal/registry"
	"github.com/simonhull/sicd/internal/types"
	"github.com/simonhull/sicd/schema/common"
)

// SICD is the root of a 0.5.0 metadata document.
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
	Radiometric     *Radiometric           `xml:"Radiometric"`
	RgAzComp        *common.RgAzComp       `xml:"RgAzComp"`
	PFA             *common.PFA            `xml:"PFA"`
	RMA             *RMA                   `xml:"RMA"`
}

// Grid describes the image sample grid.
type Grid struct {
	ImagePlane  string        `xml:"ImagePlane"`
	Type        string        `xml:"Type"`
	TimeCOAPoly common.Poly2D `xml:"TimeCOAPoly"`
	Row         DirParam      `xml:"Row"`
	Col         DirParam      `xml:"Col"`
}

// DirParam holds the sampling parameters of one grid direction.
type DirParam struct {
	UVectECF      common.XYZ     `xml:"UVectECF"`
	SS            float64        `xml:"SS"`
	ImpRespWid    float64        `xml:"ImpRespWid"`
	Sgn           int            `xml:"Sgn"`
	ImpRespBW     float64        `xml:"ImpRespBW"`
	KCtr          float64        `xml:"KCtr"`
	DeltaK1       float64        `xml:"DeltaK1"`
	DeltaK2       float64        `xml:"DeltaK2"`
	DeltaKCOAPoly *common.Poly2D `xml:"DeltaKCOAPoly"`
	WgtType       string         `xml:"WgtType"`
	WgtFunct      []float64      `xml:"WgtFunct>Wgt"`
}

// RadarCollection describes the transmitted waveform and receive channels.
type RadarCollection struct {
	RefFreqIndex   *int           `xml:"RefFreqIndex"`
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
	RcvDemodType  string  `xml:"RcvDemodType"`
	ADCSampleRate float64 `xml:"ADCSampleRate"`
}

// ChanParams describes one receive channel.
type ChanParams struct {
	Index             int    `xml:"index,attr"`
	TxRcvPolarization string `xml:"TxRcvPolarization"`
}

// ImageFormation records the processing that formed the image.
type ImageFormation struct {
	RcvChanProc           RcvChanProc     `xml:"RcvChanProc"`
	TxRcvPolarizationProc string          `xml:"TxRcvPolarizationProc"`
	TStartProc            float64         `xml:"TStartProc"`
	TEndProc              float64         `xml:"TEndProc"`
	TxFrequencyProc       TxFrequencyProc `xml:"TxFrequencyProc"`
	ImageFormAlgo         string          `xml:"ImageFormAlgo"`
	STBeamComp            string          `xml:"STBeamComp"`
	ImageBeamComp         string          `xml:"ImageBeamComp"`
	AzAutofocus           string          `xml:"AzAutofocus"`
	RgAutofocus           string          `xml:"RgAutofocus"`
}

// RcvChanProc lists the receive channels used in processing.
type RcvChanProc struct {
	NumChanProc    int      `xml:"NumChanProc"`
	PRFScaleFactor *float64 `xml:"PRFScaleFactor"`
	ChanIndex      []int    `xml:"ChanIndex"`
}

// TxFrequencyProc is the processed frequency band in Hz.
type TxFrequencyProc struct {
	MinProc float64 `xml:"MinProc"`
	MaxProc float64 `xml:"MaxProc"`
}

// Radiometric holds calibration polynomials.
type Radiometric struct {
	NoisePoly       *common.Poly2D `xml:"NoisePoly"`
	RCSSFPoly       *common.Poly2D `xml:"RCSSFPoly"`
	BetaZeroSFPoly  *common.Poly2D `xml:"BetaZeroSFPoly"`
	SigmaZeroSFPoly *common.Poly2D `xml:"SigmaZeroSFPoly"`
	GammaZeroSFPoly *common.Poly2D `xml:"GammaZeroSFPoly"`
}

// RMA holds range migration algorithm parameters.
type RMA struct {
	RMAlgoType string `xml:"RMAlgoType"`
	ImageType  string `xml:"ImageType"`
	INCA       *INCA  `xml:"INCA"`
}

// INCA describes the imaging near closest approach geometry.
type INCA struct {
	TimeCAPoly      common.Poly1D  `xml:"TimeCAPoly"`
	RCAScp          float64        `xml:"R_CA_SCP"`
	FreqZero        float64        `xml:"FreqZero"`
	DRateSFPoly     common.Poly2D  `xml:"DRateSFPoly"`
	DopCentroidPoly *common.Poly2D `xml:"DopCentroidPoly"`
}

// Decode parses a 0.5.0 metadata document.
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
	registry.Register(types.SchemaV050, registry.DecoderFunc(func(text []byte) (any, error) {
		doc, err := Decode(text)
		if err != nil {
			return nil, err
		}
		return doc, nil
	}))
}

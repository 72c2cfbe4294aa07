// Package testutil builds synthetic SICD containers for tests.
package testutil

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/simonhull/sicd/internal/binary"
)

// Image describes one image segment to write.
type Image struct {
	Data      []byte
	PixelType string // PVTYPE, default "R"
	Rows      int
	Cols      int
	NBPP      int // default 32
	Blocks    int // blocks per row and per column, default 1
}

// DataExtension describes one data extension segment to write.
type DataExtension struct {
	ID   string // default "XML_DATA_CONTENT"
	Data []byte
}

// NITF describes a container to build.
type NITF struct {
	Profile        string // "NITF02.10" (default) or "NSIF01.00"
	Images         []Image
	DataExtensions []DataExtension
}

const (
	securityLen   = 166
	headerPrefix  = 360 // bytes before NUMI
	imageSubLen   = 512
	desSubLen     = 200
	desSubPadding = desSubLen - (2 + 25 + 2 + 1 + securityLen + 4)
)

// Bytes renders the container.
func (n NITF) Bytes() []byte {
	profile := n.Profile
	if profile == "" {
		profile = "NITF02.10"
	}

	headerLen := headerPrefix + 3 + 16*len(n.Images) + 3 + 3 + 3 + 3 + 13*len(n.DataExtensions) + 3 + 5 + 5

	var body bytes.Buffer
	for _, im := range n.Images {
		body.Write(imageSubheader(im))
		body.Write(im.Data)
	}
	for _, de := range n.DataExtensions {
		body.Write(desSubheader(de))
		body.Write(de.Data)
	}

	var h bytes.Buffer
	h.WriteString(profile)
	h.WriteString("03")
	h.WriteString("BF01")
	field(&h, "TESTSTA", 10)
	h.WriteString("20240101120000")
	field(&h, "synthetic SICD", 80)
	h.WriteString("U")
	h.WriteString(strings.Repeat(" ", securityLen))
	h.WriteString("00000") // FSCOP
	h.WriteString("00000") // FSCPYS
	h.WriteString("0")     // ENCRYP
	h.Write([]byte{0, 0, 0})
	field(&h, "sicd tests", 24)
	field(&h, "", 18)
	num(&h, int64(headerLen+body.Len()), 12)
	num(&h, int64(headerLen), 6)

	num(&h, int64(len(n.Images)), 3)
	for _, im := range n.Images {
		num(&h, imageSubLen, 6)
		num(&h, int64(len(im.Data)), 10)
	}
	h.WriteString("000") // NUMS
	h.WriteString("000") // NUMX
	h.WriteString("000") // NUMT
	num(&h, int64(len(n.DataExtensions)), 3)
	for _, de := range n.DataExtensions {
		num(&h, desSubLen, 4)
		num(&h, int64(len(de.Data)), 9)
	}
	h.WriteString("000")   // NUMRES
	h.WriteString("00000") // UDHDL
	h.WriteString("00000") // XHDL

	if h.Len() != headerLen {
		panic(fmt.Sprintf("testutil: header is %d bytes, want %d", h.Len(), headerLen))
	}

	h.Write(body.Bytes())
	return h.Bytes()
}

func imageSubheader(im Image) []byte {
	pvtype := im.PixelType
	if pvtype == "" {
		pvtype = "R"
	}
	nbpp := im.NBPP
	if nbpp == 0 {
		nbpp = 32
	}
	blocks := im.Blocks
	if blocks == 0 {
		blocks = 1
	}

	var b bytes.Buffer
	b.WriteString("IM")
	field(&b, "SICD000", 10)
	b.WriteString("20240101120000")
	field(&b, "", 17)
	field(&b, "SICD: synthetic", 80)
	b.WriteString("U")
	b.WriteString(strings.Repeat(" ", securityLen))
	b.WriteString("0")
	field(&b, "SAR", 42)
	num(&b, int64(im.Rows), 8)
	num(&b, int64(im.Cols), 8)
	field(&b, pvtype, 3)
	field(&b, "NODISPLY", 8)
	field(&b, "SAR", 8)
	num(&b, int64(nbpp), 2) // ABPP
	b.WriteString("R")
	b.WriteString("G")
	field(&b, "", 60) // IGEOLO
	b.WriteString("0") // NICOM
	b.WriteString("NC")
	b.WriteString("2")
	for _, sub := range []string{"I", "Q"} {
		field(&b, "", 2)
		field(&b, sub, 6)
		b.WriteString("N")
		field(&b, "", 3)
		b.WriteString("0")
	}
	b.WriteString("0") // ISYNC
	b.WriteString("P")
	num(&b, int64(blocks), 4)
	num(&b, int64(blocks), 4)
	b.WriteString("0000") // NPPBH
	b.WriteString("0000") // NPPBV
	num(&b, int64(nbpp), 2)
	b.WriteString("001")        // IDLVL
	b.WriteString("000")        // IALVL
	b.WriteString("0000000000") // ILOC
	b.WriteString("1.0 ")       // IMAG
	b.WriteString("00000")      // UDIDL
	b.WriteString("00000")      // IXSHDL

	return pad(b.Bytes(), imageSubLen)
}

func desSubheader(de DataExtension) []byte {
	id := de.ID
	if id == "" {
		id = "XML_DATA_CONTENT"
	}

	var b bytes.Buffer
	b.WriteString("DE")
	field(&b, id, 25)
	b.WriteString("01")
	b.WriteString("U")
	b.WriteString(strings.Repeat(" ", securityLen))
	b.WriteString("0000")
	field(&b, "", desSubPadding)
	return pad(b.Bytes(), desSubLen)
}

func pad(b []byte, n int) []byte {
	if len(b) > n {
		panic(fmt.Sprintf("testutil: subheader is %d bytes, limit %d", len(b), n))
	}
	return append(b, bytes.Repeat([]byte{' '}, n-len(b))...)
}

func field(b *bytes.Buffer, s string, width int) {
	if len(s) > width {
		s = s[:width]
	}
	b.WriteString(s)
	b.WriteString(strings.Repeat(" ", width-len(s)))
}

func num(b *bytes.Buffer, v int64, width int) {
	fmt.Fprintf(b, "%0*d", width, v)
}

// EncodeSamples renders values as big-endian float32 pairs.
func EncodeSamples(values []complex64) []byte {
	buf := make([]byte, len(values)*binary.ComplexSize)
	for i, v := range values {
		binary.PutComplex64BE(buf[i*binary.ComplexSize:], v)
	}
	return buf
}

// Ramp returns rows*cols distinct samples; seed offsets every value so
// different segments can be told apart.
func Ramp(rows, cols int, seed float32) []complex64 {
	out := make([]complex64, rows*cols)
	for i := range out {
		out[i] = complex(seed+float32(i), -seed-float32(i)/2)
	}
	return out
}

// MetadataXML returns a minimal metadata document declaring namespace ns.
func MetadataXML(ns string, rows, cols int) []byte {
	return []byte(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<SICD xmlns="%s">
  <CollectionInfo>
    <CollectorName>SYNTH-1</CollectorName>
    <CoreName>CORE0001</CoreName>
    <CollectType>MONOSTATIC</CollectType>
    <RadarMode><ModeType>SPOTLIGHT</ModeType></RadarMode>
    <Classification>UNCLASSIFIED</Classification>
    <CountryCode>US</CountryCode>
    <Parameter name="PROCESSOR">unit-test</Parameter>
  </CollectionInfo>
  <ImageData>
    <PixelType>RE32F_IM32F</PixelType>
    <NumRows>%d</NumRows>
    <NumCols>%d</NumCols>
    <FirstRow>0</FirstRow>
    <FirstCol>0</FirstCol>
    <FullImage><NumRows>%d</NumRows><NumCols>%d</NumCols></FullImage>
    <SCPPixel><Row>%d</Row><Col>%d</Col></SCPPixel>
  </ImageData>
  <GeoData>
    <EarthModel>WGS_84</EarthModel>
    <SCP>
      <ECF><X>6378137</X><Y>0</Y><Z>0</Z></ECF>
      <LLH><Lat>0</Lat><Lon>0</Lon><HAE>0</HAE></LLH>
    </SCP>
    <ImageCorners>
      <ICP index="1:FRFC"><Lat>0.01</Lat><Lon>-0.01</Lon></ICP>
      <ICP index="2:FRLC"><Lat>0.01</Lat><Lon>0.01</Lon></ICP>
      <ICP index="3:LRLC"><Lat>-0.01</Lat><Lon>0.01</Lon></ICP>
      <ICP index="4:LRFC"><Lat>-0.01</Lat><Lon>-0.01</Lon></ICP>
    </ImageCorners>
  </GeoData>
  <Grid>
    <ImagePlane>SLANT</ImagePlane>
    <Type>RGZERO</Type>
    <TimeCOAPoly order1="0" order2="0"><Coef exponent1="0" exponent2="0">1.5</Coef></TimeCOAPoly>
    <Row><SS>0.5</SS><ImpRespBW>2.0</ImpRespBW><Sgn>-1</Sgn><KCtr>64.0</KCtr></Row>
    <Col><SS>0.25</SS><ImpRespBW>4.0</ImpRespBW><Sgn>-1</Sgn><KCtr>0</KCtr></Col>
  </Grid>
  <Timeline>
    <CollectStart>2024-01-01T12:00:00.000000Z</CollectStart>
    <CollectDuration>3.0</CollectDuration>
  </Timeline>
  <Position>
    <ARPPoly>
      <X order1="1"><Coef exponent1="0">7000000</Coef><Coef exponent1="1">10</Coef></X>
      <Y order1="0"><Coef exponent1="0">0</Coef></Y>
      <Z order1="0"><Coef exponent1="0">0</Coef></Z>
    </ARPPoly>
  </Position>
  <SCPCOA>
    <SCPTime>1.5</SCPTime>
    <SideOfTrack>R</SideOfTrack>
    <SlantRange>621863.0</SlantRange>
    <GrazeAng>45.0</GrazeAng>
  </SCPCOA>
</SICD>
`, ns, rows, cols, rows, cols, rows/2, cols/2))
}

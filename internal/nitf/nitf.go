// Package nitf parses the framing of NITF 2.1 / NSIF 1.0 containers: the
// file header, the segment length tables, and the image and data extension
// subheader fields a SICD reader needs. Segment payloads are read on demand.
package nitf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/simonhull/sicd/internal/binary"
	"github.com/simonhull/sicd/internal/types"
)

// Field widths shared by the file header and subheaders.
const (
	securityLen = 166 // security fields following the classification byte
	commentLen  = 80
	igeoloLen   = 60

	// Fixed-width file header fields end with HL at this offset.
	hlOffset       = 354
	headerFixedLen = hlOffset + 6
)

// Header holds the file header fields.
type Header struct {
	Profile         string // "NITF" or "NSIF"
	Version         string // "02.10" or "01.00"
	ComplexityLevel int
	StandardType    string
	OriginStationID string
	DateTime        string
	Title           string
	Classification  string
	OriginatorName  string
	FileLength      int64
	HeaderLength    int64
	NumImages       int
	NumGraphics     int
	NumText         int
	NumDES          int
	NumRES          int
}

// ImageSegment describes one image segment.
type ImageSegment struct {
	ID              string // IID1
	DateTime        string
	Source          string
	PixelValueType  string // PVTYPE
	Representation  string // IREP
	Category        string // ICAT
	Compression     string // IC
	Mode            string // IMODE
	BandSubcats     []string
	Index           int
	Rows            int
	Cols            int
	Bands           int
	BitsPerPixel    int // NBPP
	BlocksPerRow    int
	BlocksPerColumn int
	SubheaderOffset int64
	SubheaderLength int64
	DataOffset      int64
	DataLength      int64
}

// DESegment describes one data extension segment.
type DESegment struct {
	ID              string // DESID
	Version         int    // DESVER
	Index           int
	SubheaderOffset int64
	SubheaderLength int64
	DataOffset      int64
	DataLength      int64
}

// File is a parsed container. Payloads stay in the underlying reader until
// requested.
type File struct {
	sr             *binary.SafeReader
	Header         Header
	Images         []ImageSegment
	DataExtensions []DESegment
}

type segmentLength struct {
	sub  int64
	data int64
}

// Detect checks the file signature and returns the profile and version.
func Detect(r io.ReaderAt, size int64, path string) (string, string, error) {
	if size < 9 {
		return "", "", &types.UnsupportedFormatError{Path: path, Reason: "file too small"}
	}

	sr := binary.NewSafeReader(r, size, path)
	magic := make([]byte, 9)
	if err := sr.ReadAt(magic, 0, "file signature"); err != nil {
		return "", "", &types.UnsupportedFormatError{Path: path, Reason: "failed to read file header"}
	}

	switch string(magic) {
	case "NITF02.10":
		return "NITF", "02.10", nil
	case "NSIF01.00":
		return "NSIF", "01.00", nil
	case "NITF02.00":
		return "", "", &types.UnsupportedFormatError{Path: path, Reason: "NITF 2.0 containers are not supported"}
	default:
		return "", "", &types.UnsupportedFormatError{Path: path, Reason: "not a NITF/NSIF file"}
	}
}

// Parse reads the file header, the segment tables and every image and data
// extension subheader.
//
// The file header and each subheader are fetched with one ReadAt apiece,
// which keeps the request count low on ranged-read sources such as object
// stores.
func Parse(r io.ReaderAt, size int64, path string) (*File, error) {
	f := &File{sr: binary.NewSafeReader(r, size, path)}

	fixed, err := f.sr.ReadBytes(0, min(size, headerFixedLen), "file header")
	if err != nil {
		return nil, f.corrupt(0, err.Error())
	}
	if _, _, err := Detect(bytes.NewReader(fixed), int64(len(fixed)), path); err != nil {
		return nil, err
	}

	hlField := binary.NewReader(binary.NewSafeReader(bytes.NewReader(fixed), int64(len(fixed)), path), hlOffset)
	hl, err := hlField.ReadInt(6, "HL")
	if err != nil {
		return nil, f.corrupt(hlOffset, "file header: "+err.Error())
	}
	if hl > size {
		return nil, f.corrupt(hlOffset, fmt.Sprintf("header length %d exceeds file size %d", hl, size))
	}
	if hl < headerFixedLen {
		return nil, f.corrupt(hlOffset, fmt.Sprintf("header length %d is shorter than the fixed fields (%d bytes)", hl, headerFixedLen))
	}

	hdr, err := f.sr.Window(0, hl, "file header")
	if err != nil {
		return nil, f.corrupt(0, err.Error())
	}
	imageLens, desLens, otherLens, err := f.parseHeader(hdr)
	if err != nil {
		return nil, err
	}

	// Segments follow the header in file order: images, graphics, text,
	// data extensions, reserved extensions.
	off := f.Header.HeaderLength
	for i, l := range imageLens {
		seg, err := f.parseImageSubheader(i, off, l)
		if err != nil {
			return nil, err
		}
		f.Images = append(f.Images, seg)
		off += l.sub + l.data
	}
	for _, l := range otherLens {
		off += l.sub + l.data
	}
	for i, l := range desLens {
		seg, err := f.parseDESubheader(i, off, l)
		if err != nil {
			return nil, err
		}
		f.DataExtensions = append(f.DataExtensions, seg)
		off += l.sub + l.data
	}

	return f, nil
}

// Path returns the path the file was opened from.
func (f *File) Path() string {
	return f.sr.Path()
}

// Size returns the container size in bytes.
func (f *File) Size() int64 {
	return f.sr.Size()
}

// ImageData reads the payload of image segment i into a new buffer.
func (f *File) ImageData(i int) ([]byte, error) {
	if i < 0 || i >= len(f.Images) {
		return nil, &types.MissingSegmentError{
			Path:   f.Path(),
			Kind:   "image",
			Reason: fmt.Sprintf("index %d out of range (%d segments)", i, len(f.Images)),
		}
	}
	seg := f.Images[i]
	return f.sr.ReadBytes(seg.DataOffset, seg.DataLength, fmt.Sprintf("image segment %d", i))
}

// DESData reads the payload of data extension segment i into a new buffer.
func (f *File) DESData(i int) ([]byte, error) {
	if i < 0 || i >= len(f.DataExtensions) {
		return nil, &types.MissingSegmentError{
			Path:   f.Path(),
			Kind:   "metadata",
			Reason: fmt.Sprintf("index %d out of range (%d segments)", i, len(f.DataExtensions)),
		}
	}
	seg := f.DataExtensions[i]
	return f.sr.ReadBytes(seg.DataOffset, seg.DataLength, fmt.Sprintf("data extension segment %d", i))
}

func (f *File) parseHeader(hdr *binary.SafeReader) (images, des, other []segmentLength, err error) {
	cr := binary.NewChainReader(binary.NewReader(hdr, 0))
	h := &f.Header

	h.Profile = cr.String(4, "FHDR")
	h.Version = cr.String(5, "FVER")
	h.ComplexityLevel = int(cr.Int(2, "CLEVEL"))
	h.StandardType = cr.String(4, "STYPE")
	h.OriginStationID = cr.String(10, "OSTAID")
	h.DateTime = cr.String(14, "FDT")
	h.Title = cr.String(80, "FTITLE")
	h.Classification = cr.String(1, "FSCLAS")
	cr.Skip(securityLen)
	cr.Skip(5 + 5 + 1 + 3) // FSCOP, FSCPYS, ENCRYP, FBKGC
	h.OriginatorName = cr.String(24, "ONAME")
	cr.Skip(18) // OPHONE
	h.FileLength = cr.Int(12, "FL")
	h.HeaderLength = cr.Int(6, "HL")

	h.NumImages = count(cr, "NUMI")
	images = readLengths(cr, h.NumImages, 6, 10, "LISH", "LI")

	h.NumGraphics = count(cr, "NUMS")
	other = readLengths(cr, h.NumGraphics, 4, 6, "LSSH", "LS")

	if numx := cr.Int(3, "NUMX"); numx != 0 && cr.Error() == nil {
		return nil, nil, nil, f.corrupt(cr.Offset(), fmt.Sprintf("reserved NUMX field is %d, want 0", numx))
	}

	h.NumText = count(cr, "NUMT")
	other = append(other, readLengths(cr, h.NumText, 4, 5, "LTSH", "LT")...)

	h.NumDES = count(cr, "NUMDES")
	des = readLengths(cr, h.NumDES, 4, 9, "LDSH", "LD")

	h.NumRES = count(cr, "NUMRES")
	_ = readLengths(cr, h.NumRES, 4, 7, "LRESH", "LRE")

	if err := cr.Error(); err != nil {
		return nil, nil, nil, f.corrupt(cr.Offset(), "file header: "+err.Error())
	}
	return images, des, other, nil
}

// count reads a three-digit segment count. A negative count fails the chain.
func count(cr *binary.ChainReader, name string) int {
	start := cr.Offset()
	n := cr.Int(3, name)
	if n < 0 {
		cr.Fail(fmt.Errorf("negative segment count %s=%d at offset %d", name, n, start))
		return 0
	}
	return int(n)
}

func readLengths(cr *binary.ChainReader, n int, subWidth, dataWidth int, subName, dataName string) []segmentLength {
	if n <= 0 {
		return nil
	}
	lens := make([]segmentLength, n)
	for i := range lens {
		lens[i].sub = cr.Int(subWidth, fmt.Sprintf("%s%03d", subName, i+1))
		lens[i].data = cr.Int(dataWidth, fmt.Sprintf("%s%03d", dataName, i+1))
	}
	return lens
}

func (f *File) parseImageSubheader(index int, off int64, l segmentLength) (ImageSegment, error) {
	seg := ImageSegment{
		Index:           index,
		SubheaderOffset: off,
		SubheaderLength: l.sub,
		DataOffset:      off + l.sub,
		DataLength:      l.data,
	}
	if err := f.checkBounds(off, l, fmt.Sprintf("image segment %d", index)); err != nil {
		return seg, err
	}

	sub, err := f.sr.Window(off, l.sub, fmt.Sprintf("image subheader %d", index))
	if err != nil {
		return seg, f.corrupt(off, err.Error())
	}
	cr := binary.NewChainReader(binary.NewReader(sub, off))
	if im := cr.String(2, "IM"); im != "IM" && cr.Error() == nil {
		return seg, f.corrupt(off, fmt.Sprintf("image subheader %d starts with %q, want \"IM\"", index, im))
	}
	seg.ID = cr.String(10, "IID1")
	seg.DateTime = cr.String(14, "IDATIM")
	cr.Skip(17 + 80) // TGTID, IID2
	cr.Skip(1 + securityLen)
	cr.Skip(1) // ENCRYP
	seg.Source = cr.String(42, "ISORCE")
	seg.Rows = int(cr.Int(8, "NROWS"))
	seg.Cols = int(cr.Int(8, "NCOLS"))
	seg.PixelValueType = cr.String(3, "PVTYPE")
	seg.Representation = cr.String(8, "IREP")
	seg.Category = cr.String(8, "ICAT")
	cr.Skip(2 + 1) // ABPP, PJUST
	if icords := cr.String(1, "ICORDS"); icords != "" {
		cr.Skip(igeoloLen)
	}
	cr.Skip(cr.Int(1, "NICOM") * commentLen)
	seg.Compression = cr.String(2, "IC")
	if seg.Compression != "NC" && seg.Compression != "NM" && cr.Error() == nil {
		cr.Skip(4) // COMRAT
	}
	seg.Bands = int(cr.Int(1, "NBANDS"))
	if seg.Bands == 0 && cr.Error() == nil {
		seg.Bands = int(cr.Int(5, "XBANDS"))
	}
	for b := 0; b < seg.Bands && cr.Error() == nil; b++ {
		cr.Skip(2) // IREPBAND
		seg.BandSubcats = append(seg.BandSubcats, cr.String(6, "ISUBCAT"))
		cr.Skip(1 + 3) // IFC, IMFLT
		if nluts := cr.Int(1, "NLUTS"); nluts > 0 {
			if nelut := cr.Int(5, "NELUT"); nelut < 0 {
				cr.Fail(fmt.Errorf("band %d: negative NELUT %d", b+1, nelut))
			} else {
				cr.Skip(nluts * nelut)
			}
		}
	}
	cr.Skip(1) // ISYNC
	seg.Mode = cr.String(1, "IMODE")
	seg.BlocksPerRow = int(cr.Int(4, "NBPR"))
	seg.BlocksPerColumn = int(cr.Int(4, "NBPC"))
	cr.Skip(4 + 4) // NPPBH, NPPBV
	seg.BitsPerPixel = int(cr.Int(2, "NBPP"))

	if err := cr.Error(); err != nil {
		return seg, f.corrupt(off, fmt.Sprintf("image subheader %d: %v", index, err))
	}
	if seg.Rows < 0 || seg.Cols < 0 {
		return seg, f.corrupt(off, fmt.Sprintf("image subheader %d: negative dimensions %dx%d", index, seg.Rows, seg.Cols))
	}
	return seg, nil
}

func (f *File) parseDESubheader(index int, off int64, l segmentLength) (DESegment, error) {
	seg := DESegment{
		Index:           index,
		SubheaderOffset: off,
		SubheaderLength: l.sub,
		DataOffset:      off + l.sub,
		DataLength:      l.data,
	}
	if err := f.checkBounds(off, l, fmt.Sprintf("data extension segment %d", index)); err != nil {
		return seg, err
	}

	sub, err := f.sr.Window(off, l.sub, fmt.Sprintf("data extension subheader %d", index))
	if err != nil {
		return seg, f.corrupt(off, err.Error())
	}
	cr := binary.NewChainReader(binary.NewReader(sub, off))
	if de := cr.String(2, "DE"); de != "DE" && cr.Error() == nil {
		return seg, f.corrupt(off, fmt.Sprintf("data extension subheader %d starts with %q, want \"DE\"", index, de))
	}
	seg.ID = cr.String(25, "DESID")
	seg.Version = int(cr.Int(2, "DESVER"))

	if err := cr.Error(); err != nil {
		return seg, f.corrupt(off, fmt.Sprintf("data extension subheader %d: %v", index, err))
	}
	return seg, nil
}

func (f *File) checkBounds(off int64, l segmentLength, what string) error {
	if l.sub < 0 || l.data < 0 {
		return f.corrupt(off, fmt.Sprintf("%s has negative length", what))
	}
	length := l.sub + l.data
	if off+length > f.sr.Size() {
		return &types.OutOfBoundsError{
			Path:   f.Path(),
			What:   what,
			Offset: off,
			Length: length,
			Size:   f.sr.Size(),
		}
	}
	return nil
}

func (f *File) corrupt(off int64, reason string) error {
	return &types.CorruptedFileError{Path: f.Path(), Offset: off, Reason: reason}
}

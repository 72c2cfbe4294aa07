package sicd

import (
	"io"

	"github.com/simonhull/sicd/internal/nitf"
)

// Format identifies the container profile a product is framed in.
type Format int

const (
	FormatUnknown Format = iota
	FormatNITF21         // NITF 2.1
	FormatNSIF10         // NSIF 1.0, the NATO profile of NITF 2.1
)

func (f Format) String() string {
	switch f {
	case FormatNITF21:
		return "NITF 2.1"
	case FormatNSIF10:
		return "NSIF 1.0"
	default:
		return "unknown"
	}
}

// DetectFormat reads the container signature without parsing the rest of
// the file. Anything other than NITF 2.1 or NSIF 1.0 returns an
// *UnsupportedFormatError.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	profile, _, err := nitf.Detect(r, size, path)
	if err != nil {
		return FormatUnknown, err
	}
	return formatOf(profile), nil
}

func formatOf(profile string) Format {
	switch profile {
	case "NITF":
		return FormatNITF21
	case "NSIF":
		return FormatNSIF10
	default:
		return FormatUnknown
	}
}

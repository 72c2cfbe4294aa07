package sicd

import (
	"github.com/simonhull/sicd/internal/nitf"
	"github.com/simonhull/sicd/internal/types"
)

// Version identifies a SICD metadata schema version.
type Version = types.Version

// Known SICD versions in historical order.
const (
	V0_3_1 = types.V0_3_1
	V0_4_0 = types.V0_4_0
	V0_4_1 = types.V0_4_1
	V0_5_0 = types.V0_5_0
	V1_0_0 = types.V1_0_0
	V1_0_1 = types.V1_0_1
	V1_1_0 = types.V1_1_0
	V1_2_0 = types.V1_2_0
	V1_2_1 = types.V1_2_1
	V1_3_0 = types.V1_3_0
)

// Schema names the metadata layout shared by one or more versions.
type Schema = types.Schema

// Schema families.
const (
	SchemaNone = types.SchemaNone
	SchemaV040 = types.SchemaV040
	SchemaV050 = types.SchemaV050
	SchemaV1   = types.SchemaV1
)

// Metadata is a parsed metadata document tagged with its version.
type Metadata = types.Metadata

// Image is one decoded image segment.
type Image = types.Image

// ParseVersion maps a namespace token such as "urn:SICD:1.2.1" to a Version.
func ParseVersion(token string) (Version, error) {
	return types.ParseVersion(token)
}

// Versions returns every known version in historical order.
func Versions() []Version {
	return types.Versions()
}

// ContainerHeader is the NITF/NSIF file header.
type ContainerHeader = nitf.Header

// ImageSubheader describes one image segment of the container.
type ImageSubheader = nitf.ImageSegment

// DataExtensionSubheader describes one data extension segment.
type DataExtensionSubheader = nitf.DESegment

// Container is a snapshot of the container framing a product was read from.
type Container struct {
	Header         ContainerHeader
	Images         []ImageSubheader
	DataExtensions []DataExtensionSubheader
}

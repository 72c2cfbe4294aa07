// Package types provides the core data structures shared by the SICD reader:
// schema versions, decoded images, metadata and error types.
package types

import "strings"

// URNPrefix is the namespace prefix every SICD metadata document declares
// ahead of its version number.
const URNPrefix = "urn:SICD:"

// Version identifies a SICD metadata schema version.
//
// The zero value is not a valid version; use ParseVersion.
type Version int

// Known versions in historical order.
const (
	VersionUnknown Version = iota
	V0_3_1
	V0_4_0
	V0_4_1
	V0_5_0
	V1_0_0
	V1_0_1
	V1_1_0
	V1_2_0
	V1_2_1
	V1_3_0
)

// Schema names the deserialization target shared by one or more versions.
type Schema int

const (
	// SchemaNone means the version has no schema implementation.
	SchemaNone Schema = iota
	// SchemaV040 is the 0.4.0 document layout.
	SchemaV040
	// SchemaV050 is the 0.5.0 document layout.
	SchemaV050
	// SchemaV1 is the backward compatible layout shared by every 1.x release.
	SchemaV1
)

func (s Schema) String() string {
	switch s {
	case SchemaV040:
		return "v0.4.0"
	case SchemaV050:
		return "v0.5.0"
	case SchemaV1:
		return "v1"
	default:
		return "none"
	}
}

type versionInfo struct {
	token  string
	schema Schema
}

// versions is the closed table of known releases.
// 0.3.1 and 0.4.1 are recognized but have no schema.
var versions = [...]versionInfo{
	V0_3_1: {token: "0.3.1", schema: SchemaNone},
	V0_4_0: {token: "0.4.0", schema: SchemaV040},
	V0_4_1: {token: "0.4.1", schema: SchemaNone},
	V0_5_0: {token: "0.5.0", schema: SchemaV050},
	V1_0_0: {token: "1.0.0", schema: SchemaV1},
	V1_0_1: {token: "1.0.1", schema: SchemaV1},
	V1_1_0: {token: "1.1.0", schema: SchemaV1},
	V1_2_0: {token: "1.2.0", schema: SchemaV1},
	V1_2_1: {token: "1.2.1", schema: SchemaV1},
	V1_3_0: {token: "1.3.0", schema: SchemaV1},
}

// Versions returns every known version in historical order.
func Versions() []Version {
	out := make([]Version, 0, len(versions)-1)
	for v := V0_3_1; v <= V1_3_0; v++ {
		out = append(out, v)
	}
	return out
}

// ParseVersion maps a namespace token such as "urn:SICD:1.3.0" (or the bare
// "1.3.0") to its Version.
//
// Unknown tokens return a *VersionError carrying the token unchanged.
func ParseVersion(token string) (Version, error) {
	bare := strings.TrimPrefix(token, URNPrefix)
	for v := V0_3_1; v <= V1_3_0; v++ {
		if versions[v].token == bare {
			return v, nil
		}
	}
	return VersionUnknown, &VersionError{Token: token}
}

// Valid reports whether v is one of the known versions.
func (v Version) Valid() bool {
	return v >= V0_3_1 && v <= V1_3_0
}

// String returns the dotted version number, e.g. "1.2.1".
func (v Version) String() string {
	if !v.Valid() {
		return "unknown"
	}
	return versions[v].token
}

// URN returns the namespace URN declared by documents of this version.
func (v Version) URN() string {
	return URNPrefix + v.String()
}

// Schema returns the deserialization target for v.
func (v Version) Schema() Schema {
	if !v.Valid() {
		return SchemaNone
	}
	return versions[v].schema
}

// Implemented reports whether metadata of this version can be parsed.
func (v Version) Implemented() bool {
	return v.Schema() != SchemaNone
}

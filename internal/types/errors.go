package types

import "fmt"

// VersionError is returned when the metadata declares a namespace that does
// not match any known SICD version.
type VersionError struct {
	Token string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("unknown sicd version %q", e.Token)
}

// UnimplementedError is returned for versions that are recognized but whose
// metadata cannot be parsed. Unlike VersionError, support may be added later.
type UnimplementedError struct {
	Version Version
}

func (e *UnimplementedError) Error() string {
	return fmt.Sprintf("metadata for version %s is not implemented", e.Version)
}

// MetadataParseError is returned when the metadata text does not deserialize
// against the schema selected for its version.
type MetadataParseError struct {
	Err     error
	Version Version
}

func (e *MetadataParseError) Error() string {
	if e.Version.Valid() {
		return fmt.Sprintf("parse sicd %s metadata: %v", e.Version, e.Err)
	}
	return fmt.Sprintf("parse sicd metadata: %v", e.Err)
}

func (e *MetadataParseError) Unwrap() error {
	return e.Err
}

// ShapeMismatchError is returned when an image buffer's length does not equal
// rows*cols*8.
type ShapeMismatchError struct {
	Segment  int // image segment index, -1 outside a container
	Rows     int
	Cols     int
	Expected int64
	Actual   int64
}

func (e *ShapeMismatchError) Error() string {
	if e.Segment >= 0 {
		return fmt.Sprintf("image segment %d: %dx%d samples need %d bytes, buffer has %d",
			e.Segment, e.Rows, e.Cols, e.Expected, e.Actual)
	}
	return fmt.Sprintf("%dx%d samples need %d bytes, buffer has %d",
		e.Rows, e.Cols, e.Expected, e.Actual)
}

// MissingSegmentError is returned when a required segment is absent.
type MissingSegmentError struct {
	Path   string
	Kind   string // "metadata" or "image"
	Reason string
}

func (e *MissingSegmentError) Error() string {
	return fmt.Sprintf("%s: missing %s segment: %s", e.Path, e.Kind, e.Reason)
}

// UnsupportedFormatError is returned when the input is not a NITF/NSIF
// container or stores pixels other than complex float32 pairs.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// CorruptedFileError is returned when container structure is invalid.
type CorruptedFileError struct {
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedFileError) Error() string {
	return fmt.Sprintf("%s: corrupted file at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// OutOfBoundsError is returned when a segment extends past the end of file.
type OutOfBoundsError struct {
	Path   string
	What   string
	Offset int64
	Length int64
	Size   int64
}

func (e *OutOfBoundsError) Error() string {
	if e.Offset >= e.Size {
		return fmt.Sprintf("%s: offset %d out of bounds (file size: %d) while reading %s",
			e.Path, e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("%s: read of %d bytes at offset %d would exceed file size %d while reading %s",
		e.Path, e.Length, e.Offset, e.Size, e.What)
}

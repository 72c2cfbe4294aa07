package sicd

import (
	"github.com/simonhull/sicd/internal/types"
)

// VersionError is an alias to types.VersionError.
// It reports a metadata namespace that names no known SICD version.
type VersionError = types.VersionError

// UnimplementedError is an alias to types.UnimplementedError.
// It reports a recognized version whose metadata schema is not supported.
type UnimplementedError = types.UnimplementedError

// MetadataParseError is an alias to types.MetadataParseError.
type MetadataParseError = types.MetadataParseError

// ShapeMismatchError is an alias to types.ShapeMismatchError.
type ShapeMismatchError = types.ShapeMismatchError

// MissingSegmentError is an alias to types.MissingSegmentError.
type MissingSegmentError = types.MissingSegmentError

// OutOfBoundsError is an alias to types.OutOfBoundsError.
type OutOfBoundsError = types.OutOfBoundsError

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
type UnsupportedFormatError = types.UnsupportedFormatError

// CorruptedFileError is an alias to types.CorruptedFileError.
type CorruptedFileError = types.CorruptedFileError

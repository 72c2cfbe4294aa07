// Package xmlmeta resolves the schema version declared by a SICD metadata
// document and dispatches the document to the matching schema decoder.
package xmlmeta

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/simonhull/sicd/internal/registry"
	"github.com/simonhull/sicd/internal/types"
	"github.com/simonhull/sicd/schema/common"
)

// Namespace returns the namespace URI of the document's root element.
//
// Both default (xmlns="...") and prefixed (xmlns:sicd="...") declarations
// resolve to the URI. A root element without a namespace yields "".
// Documents declaring a non-UTF-8 encoding are transcoded first.
func Namespace(text []byte) (string, error) {
	dec := common.NewDecoder(text)
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", &types.MetadataParseError{Err: errors.New("no root element")}
			}
			return "", &types.MetadataParseError{Err: err}
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Space, nil
		}
	}
}

// Resolve extracts the root namespace of text and maps it to a Version.
func Resolve(text []byte) (types.Version, error) {
	ns, err := Namespace(text)
	if err != nil {
		return types.VersionUnknown, err
	}
	return types.ParseVersion(ns)
}

// Dispatch deserializes text against the schema for v.
//
// Recognized versions without a schema fail with *types.UnimplementedError
// before any parsing. Decoder failures are wrapped in
// *types.MetadataParseError. The returned Metadata is always tagged with v.
func Dispatch(v types.Version, text []byte) (types.Metadata, error) {
	if !v.Valid() {
		return types.Metadata{}, &types.VersionError{Token: v.String()}
	}
	if !v.Implemented() {
		return types.Metadata{}, &types.UnimplementedError{Version: v}
	}

	decoder := registry.ForVersion(v)
	if decoder == nil {
		// Schema package not linked into the binary.
		return types.Metadata{}, &types.UnimplementedError{Version: v}
	}

	doc, err := decoder.Decode(text)
	if err != nil {
		return types.Metadata{}, &types.MetadataParseError{Version: v, Err: err}
	}
	if doc == nil {
		return types.Metadata{}, &types.MetadataParseError{
			Version: v,
			Err:     fmt.Errorf("%s decoder returned no document", v.Schema()),
		}
	}

	return types.NewMetadata(v, doc), nil
}

// Parse resolves the version of text and dispatches it in one step.
func Parse(text []byte) (types.Metadata, error) {
	v, err := Resolve(text)
	if err != nil {
		return types.Metadata{}, err
	}
	return Dispatch(v, text)
}

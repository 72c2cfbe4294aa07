package common

import "fmt"

// MissingElementError reports a mandatory element absent from a document.
type MissingElementError struct {
	Element string
}

func (e *MissingElementError) Error() string {
	return fmt.Sprintf("missing required element %s", e.Element)
}

// Validate checks the sections every SICD version requires: without them the
// image segments cannot be interpreted.
func Validate(ci *CollectionInfo, id *ImageData) error {
	if ci == nil {
		return &MissingElementError{Element: "CollectionInfo"}
	}
	if id == nil {
		return &MissingElementError{Element: "ImageData"}
	}
	if id.NumRows <= 0 {
		return &MissingElementError{Element: "ImageData/NumRows"}
	}
	if id.NumCols <= 0 {
		return &MissingElementError{Element: "ImageData/NumCols"}
	}
	return nil
}

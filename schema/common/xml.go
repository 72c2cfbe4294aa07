package common

import (
	"bytes"
	"encoding/xml"

	"golang.org/x/net/html/charset"
)

// NewDecoder returns an XML decoder over text that honors the encoding
// named in the XML declaration, such as ISO-8859-1 or windows-1252.
func NewDecoder(text []byte) *xml.Decoder {
	dec := xml.NewDecoder(bytes.NewReader(text))
	dec.CharsetReader = charset.NewReaderLabel
	return dec
}

// Unmarshal decodes the root element of text into v.
func Unmarshal(text []byte, v any) error {
	return NewDecoder(text).Decode(v)
}

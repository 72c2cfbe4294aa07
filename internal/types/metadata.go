package types

// Metadata is the parsed SICD XML document tagged with the version it was
// parsed as.
//
// Document holds exactly one of the registered schema types (for example
// *v1.SICD); the tag and the document type always agree because both are
// set once by the dispatcher.
type Metadata struct {
	doc     any
	version Version
}

// NewMetadata pairs a parsed document with its version.
func NewMetadata(version Version, doc any) Metadata {
	return Metadata{version: version, doc: doc}
}

// Version returns the version the document was parsed as.
func (m Metadata) Version() Version {
	return m.version
}

// Schema returns the schema family of the document.
func (m Metadata) Schema() Schema {
	return m.version.Schema()
}

// Document returns the parsed schema value.
func (m Metadata) Document() any {
	return m.doc
}

// IsZero reports whether m holds no document.
func (m Metadata) IsZero() bool {
	return m.doc == nil
}

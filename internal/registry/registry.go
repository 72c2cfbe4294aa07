// Package registry manages the schema decoders used to deserialize SICD
// metadata, keyed by schema family.
package registry

import (
	"sync"

	"github.com/simonhull/sicd/internal/types"
)

// SchemaDecoder deserializes metadata text into a version-specific document.
type SchemaDecoder interface {
	// Decode parses text and returns a pointer to the schema struct.
	Decode(text []byte) (any, error)
}

// DecoderFunc adapts an ordinary function to SchemaDecoder.
type DecoderFunc func(text []byte) (any, error)

// Decode calls f(text).
func (f DecoderFunc) Decode(text []byte) (any, error) {
	return f(text)
}

var (
	mu       sync.RWMutex
	decoders = make(map[types.Schema]SchemaDecoder)
)

// Register registers a decoder for a schema family.
// This is called by schema packages during initialization (init functions).
func Register(schema types.Schema, decoder SchemaDecoder) {
	mu.Lock()
	defer mu.Unlock()
	decoders[schema] = decoder
}

// Get returns the decoder for a schema family.
// Returns nil if no decoder is registered for it.
func Get(schema types.Schema) SchemaDecoder {
	mu.RLock()
	defer mu.RUnlock()
	return decoders[schema]
}

// ForVersion returns the decoder that handles v, or nil when v has no
// schema or its schema package was not linked in.
func ForVersion(v types.Version) SchemaDecoder {
	if !v.Implemented() {
		return nil
	}
	return Get(v.Schema())
}

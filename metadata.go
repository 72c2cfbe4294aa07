package sicd

// The schema imports also register their decoders.
import (
	"github.com/simonhull/sicd/schema/v040"
	"github.com/simonhull/sicd/schema/v050"
	v1 "github.com/simonhull/sicd/schema/v1"
)

// MetadataV040 returns the metadata as a 0.4.0 document.
// ok is false when the product declares another schema.
func (p *Product) MetadataV040() (*v040.SICD, bool) {
	return MetadataAs[*v040.SICD](p)
}

// MetadataV050 returns the metadata as a 0.5.0 document.
func (p *Product) MetadataV050() (*v050.SICD, bool) {
	return MetadataAs[*v050.SICD](p)
}

// MetadataV1 returns the metadata as a 1.x document. Every 1.x version
// shares this layout.
func (p *Product) MetadataV1() (*v1.SICD, bool) {
	return MetadataAs[*v1.SICD](p)
}

// MetadataAs returns the product's metadata document as T.
//
//	doc, ok := sicd.MetadataAs[*v1.SICD](p)
//	if ok {
//		fmt.Println(doc.CollectionInfo.CoreName)
//	}
func MetadataAs[T any](p *Product) (T, bool) {
	doc, ok := p.metadata.Document().(T)
	return doc, ok
}

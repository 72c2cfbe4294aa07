// Package v1 is the metadata schema shared by every SICD 1.x release
// (1.0.0 through 1.3.0). The 1.x line is backward compatible, so documents
// of any minor version deserialize into the same SICD struct; elements added
// in later minors are optional here.
//
// Importing the package registers its decoder with the reader.
package v1

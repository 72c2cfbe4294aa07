// Package common holds the XML element types shared by every SICD schema
// version: geometric primitives, polynomials, and the sections whose layout
// did not change between releases.
package common

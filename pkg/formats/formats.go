// Package formats provides parsers for 3D mesh file formats.
package formats

// Note: STL (stereolithography), binary and ASCII, is implemented in stl.go

// Package meshtest builds small closed and open STL meshes for tests.
package meshtest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/amc-preselect/pkg/formats"
)

type v3 = [3]float32

func quad(a, b, c, d v3) []formats.STLTriangle {
	return []formats.STLTriangle{
		{Vertices: [3]v3{a, b, c}},
		{Vertices: [3]v3{a, c, d}},
	}
}

// Box returns the 12 outward-facing triangles of an axis-aligned box.
// Its compactness is 1.
func Box(lo, hi v3) []formats.STLTriangle {
	p := func(i, j, k int) v3 {
		pick := func(axis, sel int) float32 {
			if sel == 0 {
				return lo[axis]
			}
			return hi[axis]
		}
		return v3{pick(0, i), pick(1, j), pick(2, k)}
	}

	var tris []formats.STLTriangle
	tris = append(tris, quad(p(0, 0, 0), p(0, 1, 0), p(1, 1, 0), p(1, 0, 0))...) // -Z
	tris = append(tris, quad(p(0, 0, 0), p(1, 0, 0), p(1, 0, 1), p(0, 0, 1))...) // -Y
	tris = append(tris, quad(p(0, 0, 0), p(0, 0, 1), p(0, 1, 1), p(0, 1, 0))...) // -X
	tris = append(tris, quad(p(1, 0, 0), p(1, 1, 0), p(1, 1, 1), p(1, 0, 1))...) // +X
	tris = append(tris, quad(p(0, 1, 0), p(0, 1, 1), p(1, 1, 1), p(1, 1, 0))...) // +Y
	tris = append(tris, quad(p(0, 0, 1), p(1, 0, 1), p(1, 1, 1), p(0, 1, 1))...) // +Z
	return tris
}

// Cube returns a box with side s at the origin.
func Cube(s float32) []formats.STLTriangle {
	return Box(v3{0, 0, 0}, v3{s, s, s})
}

// OpenBox returns a cube with side s whose top face is missing.
func OpenBox(s float32) []formats.STLTriangle {
	tris := Cube(s)
	return tris[:len(tris)-2]
}

// Tetrahedron returns the corner tetrahedron with legs of length s.
// Its compactness is 1/6.
func Tetrahedron(s float32) []formats.STLTriangle {
	o, x, y, z := v3{0, 0, 0}, v3{s, 0, 0}, v3{0, s, 0}, v3{0, 0, s}
	return []formats.STLTriangle{
		{Vertices: [3]v3{o, y, x}},
		{Vertices: [3]v3{o, x, z}},
		{Vertices: [3]v3{o, z, y}},
		{Vertices: [3]v3{x, y, z}},
	}
}

// Wedge returns a right triangular prism with legs and height s.
// Its compactness is 1/2.
func Wedge(s float32) []formats.STLTriangle {
	o, x, y := v3{0, 0, 0}, v3{s, 0, 0}, v3{0, s, 0}
	o2, x2, y2 := v3{0, 0, s}, v3{s, 0, s}, v3{0, s, s}

	tris := []formats.STLTriangle{
		{Vertices: [3]v3{o, y, x}},
		{Vertices: [3]v3{o2, x2, y2}},
	}
	tris = append(tris, quad(o, x, x2, o2)...)
	tris = append(tris, quad(o, o2, y2, y)...)
	tris = append(tris, quad(x, y, y2, x2)...)
	return tris
}

// Flat returns a single square in the z=0 plane; its bounding box has no volume.
func Flat(s float32) []formats.STLTriangle {
	return quad(v3{0, 0, 0}, v3{s, 0, 0}, v3{s, s, 0}, v3{0, s, 0})
}

// Flip reverses the winding of triangle i.
func Flip(tris []formats.STLTriangle, i int) []formats.STLTriangle {
	out := append([]formats.STLTriangle(nil), tris...)
	v := out[i].Vertices
	out[i].Vertices = [3]v3{v[0], v[2], v[1]}
	return out
}

// Encode returns tris as a binary STL padded with trailing zeros to at
// least size bytes.
func Encode(tris []formats.STLTriangle, size int) []byte {
	var buf bytes.Buffer
	if err := formats.WriteBinarySTL(&buf, &formats.STL{Header: "meshtest", Triangles: tris}); err != nil {
		panic(err)
	}
	if pad := size - buf.Len(); pad > 0 {
		buf.Write(make([]byte, pad))
	}
	return buf.Bytes()
}

// WriteSTL writes tris to dir/name, padded to at least size bytes, and
// returns the path.
func WriteSTL(tb testing.TB, dir, name string, tris []formats.STLTriangle, size int) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Encode(tris, size), 0644); err != nil {
		tb.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// WriteFile writes size filler bytes to dir/name and returns the path.
func WriteFile(tb testing.TB, dir, name string, size int) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, make([]byte, size), 0644); err != nil {
		tb.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

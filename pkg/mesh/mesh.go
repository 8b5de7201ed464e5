// Package mesh provides an indexed triangle mesh with the bounding-box,
// scaling and enclosed-volume queries used to score CAD models.
package mesh

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/amc-preselect/pkg/formats"
	"github.com/Faultbox/amc-preselect/pkg/math"
)

// Geometry errors.
var (
	ErrEmptyMesh     = errors.New("mesh has no triangles")
	ErrNotWatertight = errors.New("mesh is not watertight")
	ErrNotOrientable = errors.New("mesh is not orientable")
)

// TriangleMesh is an indexed triangle mesh. Vertices with identical
// coordinates are shared between triangles.
type TriangleMesh struct {
	Vertices  []math.Vec3
	Triangles [][3]int

	// Triangles dropped while welding because two corners collapsed
	// onto the same vertex.
	Degenerate int
}

// FromSTL welds the triangle soup of an STL file into an indexed mesh.
func FromSTL(stl *formats.STL) *TriangleMesh {
	m := &TriangleMesh{
		Triangles: make([][3]int, 0, len(stl.Triangles)),
	}
	index := make(map[[3]float32]int, len(stl.Triangles)/2)

	for _, tri := range stl.Triangles {
		var ids [3]int
		for c, v := range tri.Vertices {
			id, ok := index[v]
			if !ok {
				id = len(m.Vertices)
				index[v] = id
				m.Vertices = append(m.Vertices, math.Vec3{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])})
			}
			ids[c] = id
		}
		if ids[0] == ids[1] || ids[1] == ids[2] || ids[0] == ids[2] {
			m.Degenerate++
			continue
		}
		m.Triangles = append(m.Triangles, ids)
	}

	return m
}

// ReadTriangleMesh reads an STL file from disk into an indexed mesh.
func ReadTriangleMesh(path string) (*TriangleMesh, error) {
	stl, err := formats.ParseSTLFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mesh %s: %w", path, err)
	}
	return FromSTL(stl), nil
}

// IsEmpty returns true if the mesh has no triangles.
func (m *TriangleMesh) IsEmpty() bool {
	return len(m.Triangles) == 0
}

// MinBound returns the component-wise minimum over all vertices.
func (m *TriangleMesh) MinBound() math.Vec3 {
	if len(m.Vertices) == 0 {
		return math.Vec3{}
	}
	lo := m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		lo = lo.Min(v)
	}
	return lo
}

// MaxBound returns the component-wise maximum over all vertices.
func (m *TriangleMesh) MaxBound() math.Vec3 {
	if len(m.Vertices) == 0 {
		return math.Vec3{}
	}
	hi := m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		hi = hi.Max(v)
	}
	return hi
}

// Center returns the mean of the vertex positions.
func (m *TriangleMesh) Center() math.Vec3 {
	if len(m.Vertices) == 0 {
		return math.Vec3{}
	}
	var sum math.Vec3
	for _, v := range m.Vertices {
		sum = sum.Add(v)
	}
	return sum.Scale(1 / float64(len(m.Vertices)))
}

// AxisAlignedBoundingBox returns the tight box around all vertices.
func (m *TriangleMesh) AxisAlignedBoundingBox() AABB {
	return AABB{Min: m.MinBound(), Max: m.MaxBound()}
}

// Scale scales every vertex by factor about center, in place.
func (m *TriangleMesh) Scale(factor float64, center math.Vec3) {
	for i, v := range m.Vertices {
		m.Vertices[i] = v.Sub(center).Scale(factor).Add(center)
	}
}

// Volume returns the enclosed volume. The mesh must be closed and
// consistently oriented; otherwise the interior is undefined and an
// error is returned.
func (m *TriangleMesh) Volume() (float64, error) {
	if m.IsEmpty() {
		return 0, ErrEmptyMesh
	}
	if !m.IsWatertight() {
		return 0, ErrNotWatertight
	}
	if !m.IsOrientable() {
		return 0, ErrNotOrientable
	}

	// Sum of signed tetrahedra spanned with the origin.
	var six float64
	for _, t := range m.Triangles {
		a, b, c := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
		six += a.Dot(b.Cross(c))
	}
	return gomath.Abs(six) / 6, nil
}

type edge struct{ a, b int }

func undirected(a, b int) edge {
	if a > b {
		a, b = b, a
	}
	return edge{a, b}
}

// IsWatertight reports whether every edge is shared by exactly two triangles.
func (m *TriangleMesh) IsWatertight() bool {
	if m.IsEmpty() {
		return false
	}
	counts := make(map[edge]int, len(m.Triangles)*3/2)
	for _, t := range m.Triangles {
		for i := 0; i < 3; i++ {
			counts[undirected(t[i], t[(i+1)%3])]++
		}
	}
	for _, n := range counts {
		if n != 2 {
			return false
		}
	}
	return true
}

// IsOrientable reports whether the triangle windings agree: every
// directed edge is used once and its reverse is used by the neighbour.
// Only meaningful for edge-manifold meshes.
func (m *TriangleMesh) IsOrientable() bool {
	seen := make(map[edge]struct{}, len(m.Triangles)*3)
	for _, t := range m.Triangles {
		for i := 0; i < 3; i++ {
			e := edge{t[i], t[(i+1)%3]}
			if _, dup := seen[e]; dup {
				return false
			}
			seen[e] = struct{}{}
		}
	}
	for e := range seen {
		if _, ok := seen[edge{e.b, e.a}]; !ok {
			return false
		}
	}
	return true
}

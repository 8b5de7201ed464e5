package selector

import (
	gomath "math"

	"github.com/Faultbox/amc-preselect/pkg/mesh"
)

// Score is the outcome of a compactness evaluation: either a defined
// value or the reason none could be computed.
type Score struct {
	value float64
	err   error
}

// Defined returns a successful score.
func Defined(v float64) Score {
	return Score{value: v}
}

// Undefined returns a failed score carrying err.
func Undefined(err error) Score {
	return Score{err: err}
}

// Value returns the compactness and whether it is defined.
func (s Score) Value() (float64, bool) {
	return s.value, s.err == nil
}

// Err returns the failure reason, or nil for a defined score.
func (s Score) Err() error {
	return s.err
}

// Passes reports whether the score is defined and at least threshold.
func (s Score) Passes(threshold float64) bool {
	v, ok := s.Value()
	return ok && v >= threshold
}

// Scorer computes the compactness of the mesh stored at path.
type Scorer interface {
	Evaluate(path string) Score
}

// Evaluator scores STL files read from disk.
type Evaluator struct{}

// Evaluate loads the mesh at path and scores it. Read and geometry
// failures come back as an undefined score wrapping a *GeometryError.
func (Evaluator) Evaluate(path string) Score {
	m, err := mesh.ReadTriangleMesh(path)
	if err != nil {
		return Undefined(&GeometryError{Path: path, Err: err})
	}
	v, err := Compactness(m)
	if err != nil {
		return Undefined(&GeometryError{Path: path, Err: err})
	}
	return Defined(v)
}

// Compactness normalizes m in place so its largest bounding-box extent is
// 1, then returns enclosed volume over bounding-box volume.
func Compactness(m *mesh.TriangleMesh) (float64, error) {
	if m.IsEmpty() {
		return 0, mesh.ErrEmptyMesh
	}

	maxExtent := m.AxisAlignedBoundingBox().MaxExtent()
	if !(maxExtent > 0) || gomath.IsInf(maxExtent, 0) {
		return 0, ErrDegenerateBoundingBox
	}
	m.Scale(1/maxExtent, m.Center())

	box := m.AxisAlignedBoundingBox()
	boxVolume := box.Volume()
	if !(boxVolume > 0) || !box.Extent().IsFinite() {
		return 0, ErrDegenerateBoundingBox
	}

	volume, err := m.Volume()
	if err != nil {
		return 0, err
	}
	return volume / boxVolume, nil
}

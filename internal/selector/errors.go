package selector

import (
	"errors"
	"fmt"
)

// Fatal errors. Both abort a selection with no partial result.
var (
	ErrConfiguration = errors.New("invalid selector configuration")
	ErrNotFound      = errors.New("input directory not found")
)

// ErrDegenerateBoundingBox marks a mesh whose bounding box has zero (or
// non-finite) volume along some axis, so compactness has no meaning.
var ErrDegenerateBoundingBox = errors.New("degenerate bounding box")

// GeometryError is a per-file failure to score a mesh. It never aborts a
// selection; the file is dropped from the candidate set.
type GeometryError struct {
	Path string
	Err  error
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("geometry %s: %v", e.Path, e.Err)
}

func (e *GeometryError) Unwrap() error {
	return e.Err
}

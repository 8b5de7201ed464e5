package mesh

import "github.com/Faultbox/amc-preselect/pkg/math"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max math.Vec3
}

// Extent returns the box size along each axis.
func (b AABB) Extent() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Volume returns the product of the extents.
func (b AABB) Volume() float64 {
	return b.Extent().Product()
}

// Center returns the midpoint of the box.
func (b AABB) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// MaxExtent returns the largest side length.
func (b AABB) MaxExtent() float64 {
	return b.Extent().MaxComponent()
}

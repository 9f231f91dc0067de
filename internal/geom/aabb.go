// Package geom holds the bounding-volume and ray primitives used by picking.
package geom

import (
	"math"

	"mesh-picker/internal/mathutil"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min mathutil.Vec3
	Max mathutil.Vec3
}

// EmptyAABB returns a box with Min=+Inf and Max=-Inf, ready to be expanded.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: mathutil.Vec3{inf, inf, inf},
		Max: mathutil.Vec3{-inf, -inf, -inf},
	}
}

// AABBFromPoints returns the tightest box containing pts.
func AABBFromPoints(pts []mathutil.Vec3) AABB {
	b := EmptyAABB()
	for _, p := range pts {
		b = b.Expand(p)
	}
	return b
}

// Expand returns b grown to include p.
func (b AABB) Expand(p mathutil.Vec3) AABB {
	return AABB{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// IsEmpty reports whether max < min on any axis.
func (b AABB) IsEmpty() bool {
	return b.Max[0] < b.Min[0] || b.Max[1] < b.Min[1] || b.Max[2] < b.Min[2]
}

func (b AABB) Center() mathutil.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Extents returns the half-size along each axis.
func (b AABB) Extents() mathutil.Vec3 {
	return b.Max.Sub(b.Min).Scale(0.5)
}

// Contains reports whether p lies inside or on the box.
func (b AABB) Contains(p mathutil.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

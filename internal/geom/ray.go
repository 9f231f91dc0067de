package geom

import (
	"math"

	"mesh-picker/internal/mathutil"
)

// Ray is a half-line Origin + t·Dir, t >= 0.
type Ray struct {
	Origin mathutil.Vec3
	Dir    mathutil.Vec3
}

// At returns the point at parameter t.
func (r Ray) At(t float64) mathutil.Vec3 {
	return r.Origin.MulAdd(r.Dir, t)
}

// IntersectAABB runs the slab test against b. Only forward intersections count:
// the entry parameter starts at 0, so a ray starting inside the box hits with t = 0.
func (r Ray) IntersectAABB(b AABB) (float64, bool) {
	tmin := 0.0
	tmax := math.Inf(1)

	for i := 0; i < 3; i++ {
		if math.Abs(r.Dir[i]) < mathutil.Epsilon {
			// Parallel to this slab: must already be between its planes.
			if r.Origin[i] < b.Min[i] || r.Origin[i] > b.Max[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / r.Dir[i]
		t1 := (b.Min[i] - r.Origin[i]) * inv
		t2 := (b.Max[i] - r.Origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

// IntersectTriangle is the Möller–Trumbore test. Both faces count; there is no culling.
// Returns the ray parameter of the hit, which is never negative.
func (r Ray) IntersectTriangle(v0, v1, v2 mathutil.Vec3) (float64, bool) {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)

	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < mathutil.Epsilon {
		return 0, false
	}
	invDet := 1 / det

	s := r.Origin.Sub(v0)
	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(e1)
	v := r.Dir.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := e2.Dot(q) * invDet
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Package picking resolves which triangle lies under a screen pixel.
//
// The test runs in two phases per object: a slab test against the object's
// local bounding box, then a ray/triangle test over every triangle of the
// objects whose box was hit. The nearest hit over all objects wins.
package picking

import (
	"mesh-picker/internal/camera"
	"mesh-picker/internal/geom"
	"mesh-picker/internal/mathutil"
	"mesh-picker/internal/scene"
)

// Result is the outcome of a pick.
type Result struct {
	Hit           bool
	ObjectID      scene.ID
	TriangleIndex int     // zero-based triangle number within the object's index buffer
	Distance      float64 // ray parameter in the hit object's local space
}

// StartIndex is the first index of the hit triangle in the object's index buffer.
func (r Result) StartIndex() int {
	return 3 * r.TriangleIndex
}

// Apply points h at the picked triangle, or hides it on a miss.
func (r Result) Apply(h *scene.Highlight) {
	if !r.Hit {
		h.Hide()
		return
	}
	h.Show(r.ObjectID, r.TriangleIndex)
}

// ViewRay returns the pick ray through screen point (sx, sy) in view space:
// origin at the eye, unnormalized direction with z = 1.
func ViewRay(sx, sy float64, width, height int, proj mathutil.Mat4) geom.Ray {
	vx := (2*sx/float64(width) - 1) / proj.At(0, 0)
	vy := (-2*sy/float64(height) + 1) / proj.At(1, 1)
	return geom.Ray{Dir: mathutil.Vec3{vx, vy, 1}}
}

// Pick finds the nearest triangle under (sx, sy) among objects, skipping
// invisible ones. The camera's view must be up to date; Pick panics otherwise.
func Pick(sx, sy float64, width, height int, cam *camera.Camera, objects []*scene.Object) Result {
	viewRay := ViewRay(sx, sy, width, height, cam.Proj())
	invView := cam.View().Inverse()

	best := Result{Distance: mathutil.Infinity}
	for _, obj := range objects {
		if !obj.Visible || obj.Mesh == nil {
			continue
		}

		toLocal := mathutil.Mat4Mul(invView, obj.World.Inverse())
		ray := geom.Ray{
			Origin: toLocal.TransformPoint(viewRay.Origin),
			Dir:    toLocal.TransformVector(viewRay.Dir).Normalize(),
		}

		if _, ok := ray.IntersectAABB(obj.Mesh.Bounds); !ok {
			continue
		}

		m := obj.Mesh
		for i := 0; i < m.TriangleCount(); i++ {
			v0, v1, v2 := m.Triangle(i)
			t, ok := ray.IntersectTriangle(v0, v1, v2)
			if !ok || t >= best.Distance {
				continue
			}
			best = Result{
				Hit:           true,
				ObjectID:      obj.ID,
				TriangleIndex: i,
				Distance:      t,
			}
		}
	}

	if !best.Hit {
		return Result{}
	}
	return best
}

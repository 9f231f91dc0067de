package picking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesh-picker/internal/camera"
	"mesh-picker/internal/geom"
	"mesh-picker/internal/mathutil"
	"mesh-picker/internal/mesh"
	"mesh-picker/internal/scene"
)

const (
	width  = 800
	height = 600
)

func newCamera(eye, target mathutil.Vec3) *camera.Camera {
	c := camera.New()
	c.SetLens(0.25*math.Pi, float64(width)/float64(height), 1, 1000)
	c.LookAt(eye, target, mathutil.AxisY)
	c.UpdateViewMatrix()
	return c
}

func addCube(s *scene.Scene, name string, world mathutil.Mat4) scene.ID {
	return s.Add(&scene.Object{
		Name:     name,
		Mesh:     mesh.Box(1, 1, 1),
		World:    world,
		Visible:  true,
		Pickable: true,
	})
}

// project maps a world point to pixel coordinates.
func project(c *camera.Camera, p mathutil.Vec3) (float64, float64) {
	clip := c.ViewProj().TransformVec4(mathutil.Vec4{p[0], p[1], p[2], 1})
	ndcX, ndcY := clip[0]/clip[3], clip[1]/clip[3]
	return (ndcX + 1) * 0.5 * width, (1 - ndcY) * 0.5 * height
}

func TestPickCubeCenter(t *testing.T) {
	s := scene.New()
	id := addCube(s, "cube", mathutil.Mat4Identity())
	cam := newCamera(mathutil.Vec3{0, 0, -5}, mathutil.Vec3{})

	// A few pixels off center keeps the ray off the face's shared diagonal.
	res := Pick(width/2+12, height/2-5, width, height, cam, s.Objects())
	require.True(t, res.Hit)
	assert.Equal(t, id, res.ObjectID)
	assert.InDelta(t, 4.5, res.Distance, 0.01)

	obj, _ := s.Get(id)
	require.Less(t, res.TriangleIndex, obj.Mesh.TriangleCount())
	v0, v1, v2 := obj.Mesh.Triangle(res.TriangleIndex)
	for _, v := range []mathutil.Vec3{v0, v1, v2} {
		assert.Equal(t, -0.5, v[2], "hit triangle is on the face toward the camera")
	}
	assert.Equal(t, 3*res.TriangleIndex, res.StartIndex())
}

func TestPickMiss(t *testing.T) {
	s := scene.New()
	addCube(s, "cube", mathutil.Mat4Identity())
	cam := newCamera(mathutil.Vec3{0, 0, -5}, mathutil.Vec3{})

	res := Pick(5, 5, width, height, cam, s.Objects())
	assert.False(t, res.Hit)
	assert.Equal(t, Result{}, res)

	assert.False(t, Pick(width/2, height/2, width, height, cam, nil).Hit)
}

func TestPickOffCenterPoint(t *testing.T) {
	s := scene.New()
	addCube(s, "cube", mathutil.Mat4Identity())
	eye := mathutil.Vec3{0, 0, -5}
	cam := newCamera(eye, mathutil.Vec3{})

	target := mathutil.Vec3{0.3, -0.2, -0.5}
	sx, sy := project(cam, target)
	res := Pick(sx, sy, width, height, cam, s.Objects())
	require.True(t, res.Hit)
	assert.InDelta(t, target.Sub(eye).Len(), res.Distance, 1e-6)
}

func TestPickNearestWins(t *testing.T) {
	s := scene.New()
	far := addCube(s, "far", mathutil.Translation(mathutil.Vec3{0, 0.1, 3}))
	near := addCube(s, "near", mathutil.Translation(mathutil.Vec3{0.2, 0, 0}))
	cam := newCamera(mathutil.Vec3{0, 0, -5}, mathutil.Vec3{})

	res := Pick(width/2, height/2, width, height, cam, s.Objects())
	require.True(t, res.Hit)
	assert.Equal(t, near, res.ObjectID)
	assert.NotEqual(t, far, res.ObjectID)

	// Brute force every triangle of every object: nothing is closer.
	ray := ViewRay(width/2, height/2, width, height, cam.Proj())
	invView := cam.View().Inverse()
	hits := 0
	for _, o := range s.Objects() {
		toLocal := mathutil.Mat4Mul(invView, o.World.Inverse())
		local := geom.Ray{
			Origin: toLocal.TransformPoint(ray.Origin),
			Dir:    toLocal.TransformVector(ray.Dir).Normalize(),
		}
		for i := 0; i < o.Mesh.TriangleCount(); i++ {
			v0, v1, v2 := o.Mesh.Triangle(i)
			if d, ok := local.IntersectTriangle(v0, v1, v2); ok {
				hits++
				assert.LessOrEqual(t, res.Distance, d)
			}
		}
	}
	assert.GreaterOrEqual(t, hits, 4, "both cubes are crossed front and back")
}

func TestPickSkipsInvisible(t *testing.T) {
	s := scene.New()
	far := addCube(s, "far", mathutil.Translation(mathutil.Vec3{0, 0.1, 3}))
	near := addCube(s, "near", mathutil.Mat4Identity())
	o, _ := s.Get(near)
	o.Visible = false
	cam := newCamera(mathutil.Vec3{0, 0, -5}, mathutil.Vec3{})

	res := Pick(width/2, height/2, width, height, cam, s.Objects())
	require.True(t, res.Hit)
	assert.Equal(t, far, res.ObjectID)
	assert.InDelta(t, 7.5, res.Distance, 1e-9)
}

func TestPickFromInsideHitsBackFaces(t *testing.T) {
	s := scene.New()
	id := s.Add(&scene.Object{Mesh: mesh.Box(10, 10, 10), World: mathutil.Mat4Identity(), Visible: true})
	cam := newCamera(mathutil.Vec3{1, 2, 0}, mathutil.Vec3{1, 2, 1})

	res := Pick(width/2, height/2, width, height, cam, s.Objects())
	require.True(t, res.Hit)
	assert.Equal(t, id, res.ObjectID)
	assert.InDelta(t, 5.0, res.Distance, 1e-9)
}

func TestPickDistanceIsLocal(t *testing.T) {
	s := scene.New()
	addCube(s, "big", mathutil.Mat4Mul(mathutil.Scaling(mathutil.Vec3{2, 2, 2}), mathutil.Translation(mathutil.Vec3{0.3, 0, 0})))
	cam := newCamera(mathutil.Vec3{0, 0, -5}, mathutil.Vec3{})

	res := Pick(width/2, height/2, width, height, cam, s.Objects())
	require.True(t, res.Hit)
	// World hit is 4 units away; in the cube's half-scale local space that is 2.
	assert.InDelta(t, 2.0, res.Distance, 1e-9)
}

func TestPickRotatedCamera(t *testing.T) {
	s := scene.New()
	addCube(s, "cube", mathutil.Translation(mathutil.Vec3{0, 0.1, 0}))
	cam := newCamera(mathutil.Vec3{5, 0, 0}, mathutil.Vec3{})

	res := Pick(width/2, height/2, width, height, cam, s.Objects())
	require.True(t, res.Hit)
	o := s.Objects()[0]
	v0, v1, v2 := o.Mesh.Triangle(res.TriangleIndex)
	for _, v := range []mathutil.Vec3{v0, v1, v2} {
		assert.Equal(t, 0.5, v[0])
	}
}

func TestPickRequiresCleanView(t *testing.T) {
	s := scene.New()
	addCube(s, "cube", mathutil.Mat4Identity())
	cam := newCamera(mathutil.Vec3{0, 0, -5}, mathutil.Vec3{})
	cam.Walk(1)
	assert.Panics(t, func() { Pick(0, 0, width, height, cam, s.Objects()) })
}

func TestApply(t *testing.T) {
	var h scene.Highlight
	Result{Hit: true, ObjectID: 3, TriangleIndex: 4}.Apply(&h)
	assert.Equal(t, scene.Highlight{Visible: true, ObjectID: 3, IndexCount: 3, StartIndex: 12}, h)

	Result{}.Apply(&h)
	assert.False(t, h.Visible)
}

func TestViewRay(t *testing.T) {
	proj := mathutil.PerspectiveFovLH(0.5*math.Pi, 1, 1, 100)
	r := ViewRay(0, 0, 100, 100, proj)
	// 90° fov, square viewport: the top-left corner is at 45° on both axes.
	assert.InDelta(t, -1.0, r.Dir[0], 1e-9)
	assert.InDelta(t, 1.0, r.Dir[1], 1e-9)
	assert.Equal(t, 1.0, r.Dir[2])
	assert.Equal(t, mathutil.Vec3{}, r.Origin)
}

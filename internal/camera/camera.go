// Package camera implements a first-person camera with a lazily rebuilt view matrix.
//
// Matrices follow the row-vector, left-handed convention of mathutil.Mat4: the camera
// looks down +Z in view space and projects depth into [0, 1].
//
// A Camera is not safe for concurrent use. Every mutation must be followed by
// UpdateViewMatrix before View is read again.
package camera

import (
	"math"

	"mesh-picker/internal/mathutil"
)

// Default lens parameters applied by Init.
const (
	DefaultFovY   = 0.25 * math.Pi
	DefaultAspect = 1.0
	DefaultNearZ  = 1.0
	DefaultFarZ   = 1000.0
)

// Camera owns the pose (position plus right/up/look basis) and the lens.
type Camera struct {
	position mathutil.Vec3
	right    mathutil.Vec3
	up       mathutil.Vec3
	look     mathutil.Vec3

	nearZ            float64
	farZ             float64
	aspect           float64
	fovY             float64
	nearWindowHeight float64
	farWindowHeight  float64

	viewDirty bool

	view mathutil.Mat4
	proj mathutil.Mat4
}

// New returns a camera initialized with Init.
func New() *Camera {
	c := &Camera{}
	c.Init()
	return c
}

// Init places the camera at the origin looking down +Z with the default lens.
func (c *Camera) Init() {
	c.position = mathutil.Vec3{}
	c.right = mathutil.AxisX
	c.up = mathutil.AxisY
	c.look = mathutil.AxisZ
	c.view = mathutil.Mat4Identity()
	c.viewDirty = true
	c.SetLens(DefaultFovY, DefaultAspect, DefaultNearZ, DefaultFarZ)
}

// SetLens stores the frustum and rebuilds the projection. The view stays as it is.
func (c *Camera) SetLens(fovY, aspect, nearZ, farZ float64) {
	c.fovY = fovY
	c.aspect = aspect
	c.nearZ = nearZ
	c.farZ = farZ

	c.nearWindowHeight = 2 * nearZ * math.Tan(0.5*fovY)
	c.farWindowHeight = 2 * farZ * math.Tan(0.5*fovY)

	c.proj = mathutil.PerspectiveFovLH(fovY, aspect, nearZ, farZ)
}

// LookAt orients the camera at eye toward target. worldUp must not be parallel
// to target-eye; the resulting basis is degenerate otherwise.
func (c *Camera) LookAt(eye, target, worldUp mathutil.Vec3) {
	look := target.Sub(eye).Normalize()
	right := worldUp.Cross(look).Normalize()
	up := look.Cross(right)

	c.position = eye
	c.look = look
	c.right = right
	c.up = up
	c.viewDirty = true
}

// SetPosition moves the camera without changing its orientation.
func (c *Camera) SetPosition(x, y, z float64) {
	c.position = mathutil.Vec3{x, y, z}
	c.viewDirty = true
}

// Strafe moves the camera d units along its right vector.
func (c *Camera) Strafe(d float64) {
	c.position = c.position.MulAdd(c.right, d)
	c.viewDirty = true
}

// Walk moves the camera d units along its look vector.
func (c *Camera) Walk(d float64) {
	c.position = c.position.MulAdd(c.look, d)
	c.viewDirty = true
}

// Pitch rotates up and look about the right vector.
func (c *Camera) Pitch(angle float64) {
	r := mathutil.RotAxis(c.right, angle)
	c.up = r.MulVec3(c.up)
	c.look = r.MulVec3(c.look)
	c.viewDirty = true
}

// RotateY yaws the whole basis about the world Y axis, independent of pitch.
// Repeated calls may let the basis drift; UpdateViewMatrix restores it.
func (c *Camera) RotateY(angle float64) {
	r := mathutil.RotY(angle)
	c.right = r.MulVec3(c.right)
	c.up = r.MulVec3(c.up)
	c.look = r.MulVec3(c.look)
	c.viewDirty = true
}

// UpdateViewMatrix rebuilds the view matrix if the pose changed since the last call.
func (c *Camera) UpdateViewMatrix() {
	if !c.viewDirty {
		return
	}

	// look is authoritative; up and right are re-derived from it.
	l := c.look.Normalize()
	u := l.Cross(c.right).Normalize()
	r := u.Cross(l)

	x := -c.position.Dot(r)
	y := -c.position.Dot(u)
	z := -c.position.Dot(l)

	c.right = r
	c.up = u
	c.look = l

	c.view = mathutil.Mat4{
		r[0], u[0], l[0], 0,
		r[1], u[1], l[1], 0,
		r[2], u[2], l[2], 0,
		x, y, z, 1,
	}
	c.viewDirty = false
}

// Dirty reports whether the pose changed since the last UpdateViewMatrix.
func (c *Camera) Dirty() bool { return c.viewDirty }

// View returns the world-to-view matrix. It panics if the view is stale.
func (c *Camera) View() mathutil.Mat4 {
	if c.viewDirty {
		panic("camera: view matrix read before UpdateViewMatrix")
	}
	return c.view
}

// Proj returns the projection matrix.
func (c *Camera) Proj() mathutil.Mat4 { return c.proj }

// ViewProj returns View() × Proj(). It panics if the view is stale.
func (c *Camera) ViewProj() mathutil.Mat4 {
	return mathutil.Mat4Mul(c.View(), c.proj)
}

func (c *Camera) Position() mathutil.Vec3 { return c.position }
func (c *Camera) Right() mathutil.Vec3    { return c.right }
func (c *Camera) Up() mathutil.Vec3       { return c.up }
func (c *Camera) Look() mathutil.Vec3     { return c.look }

func (c *Camera) NearZ() float64  { return c.nearZ }
func (c *Camera) FarZ() float64   { return c.farZ }
func (c *Camera) Aspect() float64 { return c.aspect }
func (c *Camera) FovY() float64   { return c.fovY }

// FovX returns the horizontal field of view in radians.
func (c *Camera) FovX() float64 {
	halfWidth := 0.5 * c.NearWindowWidth()
	return 2 * math.Atan(halfWidth/c.nearZ)
}

func (c *Camera) NearWindowWidth() float64  { return c.aspect * c.nearWindowHeight }
func (c *Camera) NearWindowHeight() float64 { return c.nearWindowHeight }
func (c *Camera) FarWindowWidth() float64   { return c.aspect * c.farWindowHeight }
func (c *Camera) FarWindowHeight() float64  { return c.farWindowHeight }

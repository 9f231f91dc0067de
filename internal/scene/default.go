package scene

import (
	"mesh-picker/internal/mathutil"
	"mesh-picker/internal/mesh"
)

// Default returns the built-in demo scene: a floor grid that cannot be picked,
// with a box, a sphere, and a column standing on it.
func Default() *Scene {
	s := New()
	s.Add(&Object{
		Name:    "floor",
		Mesh:    mesh.Grid(20, 20, 20, 20),
		World:   mathutil.Mat4Identity(),
		Color:   [3]uint8{120, 128, 120},
		Visible: true,
	})
	s.Add(&Object{
		Name:     "box",
		Mesh:     mesh.Box(2, 2, 2),
		World:    WorldMatrix(mathutil.Vec3{1, 1, 1}, mathutil.Vec3{0, mathutil.Deg2Rad(30), 0}, mathutil.Vec3{0, 1, 0}),
		Color:    [3]uint8{200, 90, 60},
		Visible:  true,
		Pickable: true,
	})
	s.Add(&Object{
		Name:     "sphere",
		Mesh:     mesh.Sphere(1, 24, 16),
		World:    mathutil.Translation(mathutil.Vec3{-3, 1, 2}),
		Color:    [3]uint8{70, 120, 210},
		Visible:  true,
		Pickable: true,
	})
	s.Add(&Object{
		Name:     "column",
		Mesh:     mesh.Cylinder(0.6, 0.4, 3, 20, 4),
		World:    mathutil.Translation(mathutil.Vec3{3, 1.5, 3}),
		Color:    [3]uint8{210, 200, 150},
		Visible:  true,
		Pickable: true,
	})
	return s
}

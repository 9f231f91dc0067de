package mathutil

import "math"

// RotX returns a 3×3 rotation matrix around the X axis. Angle in radians.
// Positive angles tip +Z toward -Y, which is a downward pitch for a camera looking along +Z.
func RotX(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

// RotY returns a 3×3 rotation matrix around the Y axis.
// Positive angles turn +Z toward +X.
func RotY(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}

// RotZ returns a 3×3 rotation matrix around the Z axis.
func RotZ(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// RotAxis returns the rotation of angle a about an arbitrary axis (Rodrigues).
// The axis is normalized first. RotAxis(AxisX, a) == RotX(a).
func RotAxis(axis Vec3, a float64) Mat3 {
	k := axis.Normalize()
	x, y, z := k[0], k[1], k[2]
	c, s := math.Cos(a), math.Sin(a)
	t := 1 - c
	return Mat3{
		t*x*x + c, t*x*y - s*z, t*x*z + s*y,
		t*x*y + s*z, t*y*y + c, t*y*z - s*x,
		t*x*z - s*y, t*y*z + s*x, t*z*z + c,
	}
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}

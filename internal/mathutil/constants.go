package mathutil

import "math"

// Epsilon is the tolerance used for near-zero checks in geometric tests.
const Epsilon = 1e-9

// Infinity is a convenience alias for +Inf.
var Infinity = math.Inf(1)

// World axes in the left-handed, Y-up frame used throughout.
var (
	AxisX = Vec3{1, 0, 0}
	AxisY = Vec3{0, 1, 0}
	AxisZ = Vec3{0, 0, 1}
)


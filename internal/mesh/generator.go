// Package mesh holds indexed triangle meshes and procedural shape generators.
//
// Generators emit positions, normals, and texture coordinates, centered on the
// origin. Winding is clockwise seen from outside (front faces in a left-handed frame).
package mesh

import (
	"math"

	"mesh-picker/internal/mathutil"
)

// Box returns an axis-aligned box with 24 vertices (4 per face) and 36 indices.
func Box(width, height, depth float64) *Mesh {
	w, h, d := 0.5*width, 0.5*height, 0.5*depth

	type face struct {
		n   mathutil.Vec3
		pos [4]mathutil.Vec3
	}
	faces := [6]face{
		{mathutil.Vec3{0, 0, -1}, [4]mathutil.Vec3{{-w, -h, -d}, {-w, +h, -d}, {+w, +h, -d}, {+w, -h, -d}}},
		{mathutil.Vec3{0, 0, 1}, [4]mathutil.Vec3{{+w, -h, +d}, {+w, +h, +d}, {-w, +h, +d}, {-w, -h, +d}}},
		{mathutil.Vec3{0, 1, 0}, [4]mathutil.Vec3{{-w, +h, -d}, {-w, +h, +d}, {+w, +h, +d}, {+w, +h, -d}}},
		{mathutil.Vec3{0, -1, 0}, [4]mathutil.Vec3{{-w, -h, +d}, {-w, -h, -d}, {+w, -h, -d}, {+w, -h, +d}}},
		{mathutil.Vec3{-1, 0, 0}, [4]mathutil.Vec3{{-w, -h, +d}, {-w, +h, +d}, {-w, +h, -d}, {-w, -h, -d}}},
		{mathutil.Vec3{1, 0, 0}, [4]mathutil.Vec3{{+w, -h, -d}, {+w, +h, -d}, {+w, +h, +d}, {+w, -h, +d}}},
	}
	uvs := [4][2]float64{{0, 1}, {0, 0}, {1, 0}, {1, 1}}

	verts := make([]Vertex, 0, 24)
	idx := make([]uint32, 0, 36)
	for _, f := range faces {
		base := uint32(len(verts))
		for k := 0; k < 4; k++ {
			verts = append(verts, Vertex{Pos: f.pos[k], Normal: f.n, UV: uvs[k]})
		}
		idx = append(idx, base, base+1, base+2, base, base+2, base+3)
	}
	return New(verts, idx, true)
}

// Grid returns a flat rows×cols vertex grid in the XZ plane at y=0.
func Grid(width, depth float64, rows, cols int) *Mesh {
	if rows < 2 {
		rows = 2
	}
	if cols < 2 {
		cols = 2
	}
	halfW, halfD := 0.5*width, 0.5*depth
	dx := width / float64(cols-1)
	dz := depth / float64(rows-1)
	du := 1.0 / float64(cols-1)
	dv := 1.0 / float64(rows-1)

	verts := make([]Vertex, 0, rows*cols)
	for i := 0; i < rows; i++ {
		z := halfD - float64(i)*dz
		for j := 0; j < cols; j++ {
			x := -halfW + float64(j)*dx
			verts = append(verts, Vertex{
				Pos:    mathutil.Vec3{x, 0, z},
				Normal: mathutil.AxisY,
				UV:     [2]float64{float64(j) * du, float64(i) * dv},
			})
		}
	}

	idx := make([]uint32, 0, 6*(rows-1)*(cols-1))
	n := uint32(cols)
	for i := uint32(0); i < uint32(rows-1); i++ {
		for j := uint32(0); j < n-1; j++ {
			idx = append(idx,
				i*n+j, i*n+j+1, (i+1)*n+j,
				(i+1)*n+j, i*n+j+1, (i+1)*n+j+1,
			)
		}
	}
	return New(verts, idx, true)
}

// Sphere returns a UV sphere with poles on the Y axis.
func Sphere(radius float64, slices, stacks int) *Mesh {
	if slices < 3 {
		slices = 3
	}
	if stacks < 2 {
		stacks = 2
	}

	verts := []Vertex{{Pos: mathutil.Vec3{0, radius, 0}, Normal: mathutil.AxisY, UV: [2]float64{0, 0}}}
	phiStep := math.Pi / float64(stacks)
	thetaStep := 2 * math.Pi / float64(slices)
	for i := 1; i < stacks; i++ {
		phi := float64(i) * phiStep
		for j := 0; j <= slices; j++ {
			theta := float64(j) * thetaStep
			p := mathutil.Vec3{
				radius * math.Sin(phi) * math.Cos(theta),
				radius * math.Cos(phi),
				radius * math.Sin(phi) * math.Sin(theta),
			}
			verts = append(verts, Vertex{
				Pos:    p,
				Normal: p.Normalize(),
				UV:     [2]float64{theta / (2 * math.Pi), phi / math.Pi},
			})
		}
	}
	verts = append(verts, Vertex{Pos: mathutil.Vec3{0, -radius, 0}, Normal: mathutil.Vec3{0, -1, 0}, UV: [2]float64{0, 1}})

	var idx []uint32
	ring := uint32(slices + 1)
	for j := uint32(1); j <= uint32(slices); j++ {
		idx = append(idx, 0, j+1, j)
	}
	base := uint32(1)
	for i := uint32(0); i < uint32(stacks-2); i++ {
		for j := uint32(0); j < uint32(slices); j++ {
			idx = append(idx,
				base+i*ring+j, base+i*ring+j+1, base+(i+1)*ring+j,
				base+(i+1)*ring+j, base+i*ring+j+1, base+(i+1)*ring+j+1,
			)
		}
	}
	south := uint32(len(verts) - 1)
	base = south - ring
	for j := uint32(0); j < uint32(slices); j++ {
		idx = append(idx, south, base+j, base+j+1)
	}
	return New(verts, idx, true)
}

// Cylinder returns a capped (possibly tapered) cylinder along Y, centered on the origin.
func Cylinder(bottomRadius, topRadius, height float64, slices, stacks int) *Mesh {
	if slices < 3 {
		slices = 3
	}
	if stacks < 1 {
		stacks = 1
	}
	stackHeight := height / float64(stacks)
	radiusStep := (topRadius - bottomRadius) / float64(stacks)
	dTheta := 2 * math.Pi / float64(slices)
	dr := bottomRadius - topRadius

	var verts []Vertex
	for i := 0; i <= stacks; i++ {
		y := -0.5*height + float64(i)*stackHeight
		r := bottomRadius + float64(i)*radiusStep
		for j := 0; j <= slices; j++ {
			c, s := math.Cos(float64(j)*dTheta), math.Sin(float64(j)*dTheta)
			verts = append(verts, Vertex{
				Pos:    mathutil.Vec3{r * c, y, r * s},
				Normal: mathutil.Vec3{height * c, dr, height * s}.Normalize(),
				UV:     [2]float64{float64(j) / float64(slices), 1 - float64(i)/float64(stacks)},
			})
		}
	}

	var idx []uint32
	ring := uint32(slices + 1)
	for i := uint32(0); i < uint32(stacks); i++ {
		for j := uint32(0); j < uint32(slices); j++ {
			idx = append(idx,
				i*ring+j, (i+1)*ring+j, (i+1)*ring+j+1,
				i*ring+j, (i+1)*ring+j+1, i*ring+j+1,
			)
		}
	}

	verts, idx = appendCap(verts, idx, topRadius, 0.5*height, slices, true)
	verts, idx = appendCap(verts, idx, bottomRadius, -0.5*height, slices, false)
	return New(verts, idx, true)
}

func appendCap(verts []Vertex, idx []uint32, radius, y float64, slices int, top bool) ([]Vertex, []uint32) {
	n := mathutil.Vec3{0, -1, 0}
	if top {
		n = mathutil.AxisY
	}
	base := uint32(len(verts))
	dTheta := 2 * math.Pi / float64(slices)
	for j := 0; j <= slices; j++ {
		c, s := math.Cos(float64(j)*dTheta), math.Sin(float64(j)*dTheta)
		verts = append(verts, Vertex{
			Pos:    mathutil.Vec3{radius * c, y, radius * s},
			Normal: n,
			UV:     [2]float64{0.5*c + 0.5, 0.5*s + 0.5},
		})
	}
	center := uint32(len(verts))
	verts = append(verts, Vertex{Pos: mathutil.Vec3{0, y, 0}, Normal: n, UV: [2]float64{0.5, 0.5}})
	for j := uint32(0); j < uint32(slices); j++ {
		if top {
			idx = append(idx, center, base+j+1, base+j)
		} else {
			idx = append(idx, center, base+j, base+j+1)
		}
	}
	return verts, idx
}

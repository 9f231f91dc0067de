package mesh

import (
	"fmt"

	"mesh-picker/internal/geom"
	"mesh-picker/internal/mathutil"
)

// Vertex holds one vertex in object-local space.
type Vertex struct {
	Pos    mathutil.Vec3
	Normal mathutil.Vec3
	UV     [2]float64
}

// Mesh is an indexed triangle list. Every three indices form one triangle.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   geom.AABB // local-space bounds of Vertices
	HasUV    bool
}

// New builds a mesh and computes its bounds.
func New(vertices []Vertex, indices []uint32, hasUV bool) *Mesh {
	m := &Mesh{Vertices: vertices, Indices: indices, HasUV: hasUV}
	m.ComputeBounds()
	return m
}

// ComputeBounds recomputes Bounds as the componentwise min/max of all positions.
func (m *Mesh) ComputeBounds() {
	b := geom.EmptyAABB()
	for i := range m.Vertices {
		b = b.Expand(m.Vertices[i].Pos)
	}
	m.Bounds = b
}

// TriangleCount returns len(Indices)/3.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the positions of triangle i.
func (m *Mesh) Triangle(i int) (mathutil.Vec3, mathutil.Vec3, mathutil.Vec3) {
	base := 3 * i
	return m.Vertices[m.Indices[base]].Pos,
		m.Vertices[m.Indices[base+1]].Pos,
		m.Vertices[m.Indices[base+2]].Pos
}

// Validate checks that the index buffer is a whole number of triangles and in range.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh: index count %d is not a multiple of 3", len(m.Indices))
	}
	n := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("mesh: index %d at position %d out of range (%d vertices)", idx, i, n)
		}
	}
	return nil
}

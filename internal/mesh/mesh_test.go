package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesh-picker/internal/mathutil"
)

func TestBox(t *testing.T) {
	m := Box(2, 4, 6)
	require.NoError(t, m.Validate())
	assert.Len(t, m.Vertices, 24)
	assert.Len(t, m.Indices, 36)
	assert.Equal(t, 12, m.TriangleCount())
	assert.Equal(t, mathutil.Vec3{-1, -2, -3}, m.Bounds.Min)
	assert.Equal(t, mathutil.Vec3{1, 2, 3}, m.Bounds.Max)
	assert.True(t, m.HasUV)

	// Each face's triangles lie in the plane of its normal.
	for i := 0; i < m.TriangleCount(); i++ {
		v0, v1, v2 := m.Triangle(i)
		n := m.Vertices[m.Indices[3*i]].Normal
		d := v0.Dot(n)
		assert.InDelta(t, d, v1.Dot(n), 1e-12)
		assert.InDelta(t, d, v2.Dot(n), 1e-12)
	}
}

func TestGrid(t *testing.T) {
	m := Grid(10, 20, 5, 3)
	require.NoError(t, m.Validate())
	assert.Len(t, m.Vertices, 15)
	assert.Equal(t, 2*4*2, m.TriangleCount())
	assert.Equal(t, mathutil.Vec3{-5, 0, -10}, m.Bounds.Min)
	assert.Equal(t, mathutil.Vec3{5, 0, 10}, m.Bounds.Max)
}

func TestSphere(t *testing.T) {
	slices, stacks := 12, 8
	m := Sphere(1.5, slices, stacks)
	require.NoError(t, m.Validate())
	assert.Len(t, m.Vertices, 2+(stacks-1)*(slices+1))
	assert.Equal(t, 2*slices*(stacks-1), m.TriangleCount())
	for _, v := range m.Vertices {
		assert.InDelta(t, 1.5, v.Pos.Len(), 1e-9)
	}
	assert.InDelta(t, 1.5, m.Bounds.Max[1], 1e-12)
	assert.InDelta(t, -1.5, m.Bounds.Min[1], 1e-12)
}

func TestCylinder(t *testing.T) {
	slices, stacks := 10, 3
	m := Cylinder(1, 0.5, 4, slices, stacks)
	require.NoError(t, m.Validate())
	assert.Len(t, m.Vertices, (stacks+1)*(slices+1)+2*(slices+2))
	assert.Equal(t, 2*stacks*slices+2*slices, m.TriangleCount())
	assert.InDelta(t, -2.0, m.Bounds.Min[1], 1e-12)
	assert.InDelta(t, 2.0, m.Bounds.Max[1], 1e-12)
}

func TestValidate(t *testing.T) {
	verts := []Vertex{{}, {}, {}}
	assert.NoError(t, New(verts, []uint32{0, 1, 2}, false).Validate())
	assert.Error(t, New(verts, []uint32{0, 1}, false).Validate())
	assert.Error(t, New(verts, []uint32{0, 1, 3}, false).Validate())
}

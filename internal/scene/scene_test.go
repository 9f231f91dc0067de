package scene

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesh-picker/internal/mathutil"
)

func TestAddGetRemove(t *testing.T) {
	s := New()
	a := s.Add(&Object{Name: "a"})
	b := s.Add(&Object{Name: "b", Pickable: true})
	c := s.Add(&Object{Name: "c", Pickable: true})
	assert.Equal(t, ID(1), a)
	assert.Equal(t, ID(2), b)
	assert.Equal(t, ID(3), c)
	assert.Equal(t, 3, s.Len())

	o, ok := s.Get(b)
	require.True(t, ok)
	assert.Equal(t, "b", o.Name)

	require.True(t, s.Remove(b))
	assert.False(t, s.Remove(b))
	_, ok = s.Get(b)
	assert.False(t, ok)

	d := s.Add(&Object{Name: "d"})
	assert.Equal(t, ID(4), d, "IDs are not reused")

	var names []string
	for _, o := range s.Objects() {
		names = append(names, o.Name)
	}
	assert.Equal(t, []string{"a", "c", "d"}, names)

	require.Len(t, s.Pickables(), 1)
	assert.Equal(t, "c", s.Pickables()[0].Name)
}

func TestWorldMatrix(t *testing.T) {
	w := WorldMatrix(mathutil.Vec3{2, 2, 2}, mathutil.Vec3{0, math.Pi / 2, 0}, mathutil.Vec3{1, 0, 0})
	// (0,0,1) → scale (0,0,2) → yaw 90° (2,0,0) → translate (3,0,0)
	p := w.TransformPoint(mathutil.Vec3{0, 0, 1})
	assert.InDelta(t, 3.0, p[0], 1e-9)
	assert.InDelta(t, 0.0, p[1], 1e-9)
	assert.InDelta(t, 0.0, p[2], 1e-9)
}

func TestHighlight(t *testing.T) {
	var h Highlight
	h.Show(7, 5)
	assert.Equal(t, Highlight{Visible: true, ObjectID: 7, IndexCount: 3, StartIndex: 15}, h)
	h.Hide()
	assert.Equal(t, Highlight{}, h)
}

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, 4, s.Len())
	assert.Len(t, s.Pickables(), 3)
	for _, o := range s.Objects() {
		require.NoError(t, o.Mesh.Validate(), o.Name)
	}
}

const jsonScene = `{
  "objects": [
    {"name": "floor", "mesh": "grid", "size": [10, 10], "subdivisions": [4, 4], "pickable": false},
    {"name": "crate", "mesh": "box", "size": [1, 2, 3], "position": [0, 1, 0], "rotation": [0, 90, 0], "color": [1, 0, 0]},
    {"name": "ball", "mesh": "sphere", "radius": 2, "visible": false}
  ]
}`

const tomlScene = `
[[objects]]
name = "floor"
mesh = "grid"
size = [10.0, 10.0]
subdivisions = [4, 4]
pickable = false

[[objects]]
name = "crate"
mesh = "box"
size = [1.0, 2.0, 3.0]
position = [0.0, 1.0, 0.0]
rotation = [0.0, 90.0, 0.0]
color = [1.0, 0.0, 0.0]

[[objects]]
name = "ball"
mesh = "sphere"
radius = 2.0
visible = false
`

const yamlScene = `
objects:
  - name: floor
    mesh: grid
    size: [10, 10]
    subdivisions: [4, 4]
    pickable: false
  - name: crate
    mesh: box
    size: [1, 2, 3]
    position: [0, 1, 0]
    rotation: [0, 90, 0]
    color: [1, 0, 0]
  - name: ball
    mesh: sphere
    radius: 2
    visible: false
`

func TestLoadFormats(t *testing.T) {
	for ext, src := range map[string]string{".json": jsonScene, ".toml": tomlScene, ".yaml": yamlScene} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scene"+ext)
			require.NoError(t, os.WriteFile(path, []byte(src), 0644))

			s, err := Load(path)
			require.NoError(t, err)
			objs := s.Objects()
			require.Len(t, objs, 3)

			assert.False(t, objs[0].Pickable)
			assert.True(t, objs[0].Visible)
			assert.Equal(t, 16, len(objs[0].Mesh.Vertices))

			crate := objs[1]
			assert.True(t, crate.Pickable)
			assert.Equal(t, [3]uint8{255, 0, 0}, crate.Color)
			assert.Equal(t, mathutil.Vec3{-0.5, -1, -1.5}, crate.Mesh.Bounds.Min)
			p := crate.World.TransformPoint(mathutil.Vec3{0, 0, 1})
			assert.InDelta(t, 1.0, p[0], 1e-9)
			assert.InDelta(t, 1.0, p[1], 1e-9)

			assert.False(t, objs[2].Visible)
			assert.InDelta(t, 2.0, objs[2].Mesh.Bounds.Max[1], 1e-9)
		})
	}
}

func TestBuildModelFile(t *testing.T) {
	dir := t.TempDir()
	model := "VertexCount: 3\nTriangleCount: 1\nVertexList (pos, normal)\n{\n0 0 0 0 0 -1\n0 1 0 0 0 -1\n1 0 0 0 0 -1\n}\nTriangleList\n{\n0 1 2\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tri.txt"), []byte(model), 0644))

	desc := Description{Objects: []ObjectDesc{
		{Name: "a", Mesh: "tri.txt"},
		{Name: "b", Mesh: "tri.txt", Scale: []float64{3}},
	}}
	s, err := Build(desc, dir)
	require.NoError(t, err)
	objs := s.Objects()
	require.Len(t, objs, 2)
	assert.Same(t, objs[0].Mesh, objs[1].Mesh, "model files are loaded once")
	assert.Equal(t, mathutil.Vec3{3, 3, 0}, objs[1].World.TransformPoint(mathutil.Vec3{1, 1, 0}))
}

func TestBuildErrors(t *testing.T) {
	tests := map[string]ObjectDesc{
		"no mesh":       {Name: "x"},
		"missing model": {Name: "x", Mesh: "nope.txt"},
		"bad position":  {Name: "x", Mesh: "box", Position: []float64{1, 2}},
		"bad box size":  {Name: "x", Mesh: "box", Size: []float64{1, 2}},
	}
	for name, od := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Build(Description{Objects: []ObjectDesc{od}}, t.TempDir())
			assert.Error(t, err)
		})
	}
}

func TestBuildRejectsZeroScale(t *testing.T) {
	for _, scale := range [][]float64{{1, 0, 1}, {0}, {2, 2, -1e-12}} {
		_, err := Build(Description{Objects: []ObjectDesc{{Name: "flat", Mesh: "box", Scale: scale}}}, t.TempDir())
		assert.ErrorContains(t, err, `object "flat" scale: zero component`)
	}

	s, err := Build(Description{Objects: []ObjectDesc{{Name: "mirrored", Mesh: "box", Scale: []float64{-1, 1, 1}}}}, t.TempDir())
	require.NoError(t, err)
	assert.NotZero(t, s.Objects()[0].World.Det())
}

func TestLoadDescriptionErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadDescription(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "scene.ini")
	require.NoError(t, os.WriteFile(bad, []byte("x=1"), 0644))
	_, err = LoadDescription(bad)
	assert.Error(t, err)

	broken := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(broken, []byte("{"), 0644))
	_, err = LoadDescription(broken)
	assert.Error(t, err)
}


package input

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesh-picker/internal/camera"
	"mesh-picker/internal/mathutil"
	"mesh-picker/internal/mesh"
	"mesh-picker/internal/scene"
)

func setup(t *testing.T) (*Controller, scene.ID) {
	t.Helper()
	sc := scene.New()
	sc.Add(&scene.Object{Name: "floor", Mesh: mesh.Grid(20, 20, 4, 4), World: mathutil.Translation(mathutil.Vec3{0, -3, 0}), Visible: true})
	id := sc.Add(&scene.Object{Name: "cube", Mesh: mesh.Box(1, 1, 1), World: mathutil.Translation(mathutil.Vec3{0.1, 0.05, 0}), Visible: true, Pickable: true})

	cam := camera.New()
	cam.LookAt(mathutil.Vec3{0, 0, -5}, mathutil.Vec3{}, mathutil.AxisY)
	return NewController(cam, sc, &scene.Highlight{}, 640, 480), id
}

func TestResizeSetsAspect(t *testing.T) {
	c, _ := setup(t)
	assert.InDelta(t, 640.0/480.0, c.Camera.Aspect(), 1e-12)
	c.Resize(100, 50)
	assert.Equal(t, 2.0, c.Camera.Aspect())
	assert.Equal(t, 1.0, c.Camera.NearZ())
}

func TestKeys(t *testing.T) {
	c, _ := setup(t)
	require.NoError(t, c.Key("w", 0.1))
	assert.InDelta(t, -4.0, c.Camera.Position()[2], 1e-12)
	require.NoError(t, c.Key("S", 0.2))
	assert.InDelta(t, -6.0, c.Camera.Position()[2], 1e-12)
	require.NoError(t, c.Key("d", 0.05))
	assert.InDelta(t, 0.5, c.Camera.Position()[0], 1e-12)
	require.NoError(t, c.Key("a", 0.05))
	assert.InDelta(t, 0.0, c.Camera.Position()[0], 1e-12)

	assert.Error(t, c.Key("q", 1))
}

func TestMouseDrag(t *testing.T) {
	c, _ := setup(t)
	c.MouseMove(10, 10)
	c.Camera.UpdateViewMatrix()
	assert.False(t, c.Camera.Dirty(), "moves without a held button do nothing")

	c.MouseDown(10, 10)
	c.MouseMove(370, 10) // 360 px → 90° of yaw
	c.MouseUp()
	c.Camera.UpdateViewMatrix()
	l := c.Camera.Look()
	assert.InDelta(t, 1.0, l[0], 1e-9)
	assert.InDelta(t, 0.0, l[2], 1e-9)
}

func TestRightClickHighlights(t *testing.T) {
	c, id := setup(t)
	res := c.RightClick(320, 240)
	require.True(t, res.Hit)
	assert.Equal(t, id, res.ObjectID)
	assert.Equal(t, scene.Highlight{Visible: true, ObjectID: id, IndexCount: 3, StartIndex: res.StartIndex()}, *c.Highlight)

	// The floor is not pickable, so a click below the cube clears the highlight.
	res = c.RightClick(320, 470)
	assert.False(t, res.Hit)
	assert.False(t, c.Highlight.Visible)
}

func TestApplyEvents(t *testing.T) {
	c, id := setup(t)
	events := []Event{
		{Key: "w", DT: 0.1},
		{Drag: []float64{40, 0}},
		{Drag: []float64{-40, 0}},
		{Click: []float64{320, 240}},
	}
	for i, ev := range events {
		res, err := c.Apply(ev)
		require.NoError(t, err, "event %d", i)
		if i < 3 {
			assert.Nil(t, res)
			continue
		}
		require.NotNil(t, res)
		assert.True(t, res.Hit)
		assert.Equal(t, id, res.ObjectID)
	}
	assert.InDelta(t, 0.0, c.Camera.Look()[0], 1e-9)
	assert.InDelta(t, math.Abs(c.Camera.Look()[2]), 1.0, 1e-9)

	_, err := c.Apply(Event{})
	assert.Error(t, err)
	_, err = c.Apply(Event{Drag: []float64{1}})
	assert.Error(t, err)
}

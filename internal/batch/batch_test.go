package batch

import (
	"encoding/json"
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesh-picker/internal/input"
	"mesh-picker/internal/scene"
)

func TestLoadShots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shots.json")
	data := `[
  {"name": "front", "eye": [0, 2, -8], "target": [0, 1, 0], "fov_y_deg": 60,
   "inputs": [{"key": "w", "dt": 0.1}, {"drag": [10, -5]}], "click": [40, 30]},
  {"eye": [1, 1, 1], "target": [0, 0, 0]}
]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	shots, err := LoadShots(path)
	require.NoError(t, err)
	require.Len(t, shots, 2)

	assert.Equal(t, "front", shots[0].Name)
	assert.Equal(t, 60.0, shots[0].FovYDeg)
	require.Len(t, shots[0].Inputs, 2)
	assert.Equal(t, "w", shots[0].Inputs[0].Key)
	assert.Equal(t, []float64{10, -5}, shots[0].Inputs[1].Drag)
	assert.Equal(t, []float64{40, 30}, shots[0].Click)
	assert.Equal(t, "shot-001", shots[1].Name)
}

func TestLoadShotsErrors(t *testing.T) {
	_, err := LoadShots(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	_, err = LoadShots(path)
	assert.Error(t, err)
}

func TestNewCameraValidation(t *testing.T) {
	_, err := Shot{Name: "x", Eye: []float64{0, 0}, Target: []float64{0, 0, 1}}.newCamera()
	assert.ErrorContains(t, err, "eye")

	_, err = Shot{Name: "x", Eye: []float64{1, 2, 3}, Target: []float64{1, 2, 3}}.newCamera()
	assert.ErrorContains(t, err, "coincide")

	cam, err := Shot{Eye: []float64{0, 0, -5}, Target: []float64{0, 0, 0}, FovYDeg: 90}.newCamera()
	require.NoError(t, err)
	assert.InDelta(t, 1.5707963, cam.FovY(), 1e-6)
}

func TestRunDefaultShots(t *testing.T) {
	const w, h = 160, 120
	out := t.TempDir()
	sc := scene.Default()

	shots := append(DefaultShots(w, h), Shot{
		Name:   "broken",
		Eye:    []float64{0, 1},
		Target: []float64{0, 0, 0},
	}, Shot{
		Name:   "bad-key",
		Eye:    []float64{0, 4, -10},
		Target: []float64{0, 1, 0},
		Inputs: []input.Event{{Key: "q", DT: 1}},
	})

	results := Run(Config{
		Scene:       sc,
		OutputDir:   out,
		Width:       w,
		Height:      h,
		Supersample: 2,
		Workers:     2,
	}, shots)
	require.Len(t, results, 5)

	for _, r := range results[:3] {
		require.True(t, r.Success, "%s: %s", r.Name, r.Error)
		data, err := os.ReadFile(filepath.Join(out, r.Image))
		require.NoError(t, err)
		require.Greater(t, len(data), 12)
		assert.Equal(t, "RIFF", string(data[0:4]))
		assert.Equal(t, "WEBP", string(data[8:12]))
	}

	overview := results[0]
	require.NotNil(t, overview.Pick)
	require.True(t, overview.Pick.Hit)
	obj, ok := sc.Get(overview.Pick.ObjectID)
	require.True(t, ok)
	assert.Equal(t, "box", obj.Name)

	sky := results[2]
	require.NotNil(t, sky.Pick)
	assert.False(t, sky.Pick.Hit)

	assert.False(t, results[3].Success)
	assert.Contains(t, results[3].Error, "eye")
	assert.False(t, results[4].Success)
	assert.Contains(t, results[4].Error, "unknown key")

	manifest := filepath.Join(out, "manifest.json")
	require.NoError(t, WriteManifest(manifest, results, sc))

	data, err := os.ReadFile(manifest)
	require.NoError(t, err)
	var entries []ManifestEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 5)
	assert.Equal(t, "overview", entries[0].Name)
	require.NotNil(t, entries[0].Pick)
	assert.Equal(t, "box", entries[0].Pick.Object)
	assert.Equal(t, 3*entries[0].Pick.TriangleIndex, entries[0].Pick.StartIndex)
	assert.False(t, entries[2].Pick.Hit)
	assert.Nil(t, entries[3].Pick)
	assert.NotEmpty(t, entries[3].Error)
}

func TestEncodeFailureRemovesPartialFile(t *testing.T) {
	orig := encodeImage
	t.Cleanup(func() { encodeImage = orig })
	encodeImage = func(w io.Writer, _ image.Image) error {
		if _, err := w.Write([]byte("RIFF\x00\x00")); err != nil {
			return err
		}
		return errors.New("disk full")
	}

	out := t.TempDir()
	results := Run(Config{Scene: scene.Default(), OutputDir: out, Width: 32, Height: 24, Workers: 1}, []Shot{{
		Name:   "partial",
		Eye:    []float64{0, 4, -10},
		Target: []float64{0, 1, 0},
	}})
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "WebP encode: disk full")

	_, err := os.Stat(filepath.Join(out, "partial.webp"))
	assert.True(t, os.IsNotExist(err), "partial output should be removed")
}

func TestWriteImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ok.webp")
	require.NoError(t, writeImage(path, image.NewNRGBA(image.Rect(0, 0, 4, 4))))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.Error(t, writeImage(filepath.Join(t.TempDir(), "missing", "x.webp"), image.NewNRGBA(image.Rect(0, 0, 1, 1))))
}

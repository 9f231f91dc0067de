package batch

import (
	"encoding/json"
	"fmt"
	"os"

	"mesh-picker/internal/camera"
	"mesh-picker/internal/input"
	"mesh-picker/internal/mathutil"
)

// Shot is one camera pose to render: where the eye is, the inputs replayed
// after placing it, and an optional right click at the end.
type Shot struct {
	Name    string        `json:"name"`
	Eye     []float64     `json:"eye"`
	Target  []float64     `json:"target"`
	Up      []float64     `json:"up,omitempty"`
	FovYDeg float64       `json:"fov_y_deg,omitempty"`
	Inputs  []input.Event `json:"inputs,omitempty"`
	Click   []float64     `json:"click,omitempty"` // x, y in output pixels
}

// LoadShots reads a JSON array of shots. Unnamed shots are named by position.
func LoadShots(path string) ([]Shot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("batch: read shots %s: %w", path, err)
	}

	var shots []Shot
	if err := json.Unmarshal(data, &shots); err != nil {
		return nil, fmt.Errorf("batch: parse shots %s: %w", path, err)
	}
	for i := range shots {
		if shots[i].Name == "" {
			shots[i].Name = fmt.Sprintf("shot-%03d", i)
		}
	}
	return shots, nil
}

// DefaultShots returns a small tour of the default scene for a width×height
// viewport: a centered pick, a moved camera with a pick, and a click on sky.
func DefaultShots(width, height int) []Shot {
	cx, cy := float64(width)/2, float64(height)/2
	return []Shot{
		{
			Name:   "overview",
			Eye:    []float64{0, 4, -10},
			Target: []float64{0, 1, 0},
			Click:  []float64{cx + 3, cy + 2},
		},
		{
			Name:   "walk-and-turn",
			Eye:    []float64{0, 4, -10},
			Target: []float64{0, 1, 0},
			Inputs: []input.Event{
				{Key: "w", DT: 0.2},
				{Key: "a", DT: 0.1},
				{Drag: []float64{-40, 10}},
			},
			Click: []float64{cx, cy},
		},
		{
			Name:   "sky",
			Eye:    []float64{0, 4, -10},
			Target: []float64{0, 1, 0},
			Click:  []float64{2, 2},
		},
	}
}

// newCamera places a fresh camera for s. The lens aspect is set later by the
// input controller.
func (s Shot) newCamera() (*camera.Camera, error) {
	eye, err := vec3(s.Eye, "eye")
	if err != nil {
		return nil, err
	}
	target, err := vec3(s.Target, "target")
	if err != nil {
		return nil, err
	}
	up := mathutil.AxisY
	if s.Up != nil {
		if up, err = vec3(s.Up, "up"); err != nil {
			return nil, err
		}
	}
	if target.Sub(eye).Len() < mathutil.Epsilon {
		return nil, fmt.Errorf("batch: shot %q: eye and target coincide", s.Name)
	}

	fov := camera.DefaultFovY
	if s.FovYDeg > 0 {
		fov = mathutil.Deg2Rad(s.FovYDeg)
	}

	cam := camera.New()
	cam.SetLens(fov, camera.DefaultAspect, camera.DefaultNearZ, camera.DefaultFarZ)
	cam.LookAt(eye, target, up)
	return cam, nil
}

func vec3(v []float64, field string) (mathutil.Vec3, error) {
	if len(v) != 3 {
		return mathutil.Vec3{}, fmt.Errorf("batch: %s needs 3 components, got %d", field, len(v))
	}
	return mathutil.Vec3{v[0], v[1], v[2]}, nil
}

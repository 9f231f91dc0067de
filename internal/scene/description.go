package scene

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"mesh-picker/internal/mathutil"
	"mesh-picker/internal/mesh"
	"mesh-picker/internal/meshfile"
)

// Description is the on-disk form of a scene.
type Description struct {
	Objects []ObjectDesc `json:"objects" toml:"objects" yaml:"objects"`
}

// ObjectDesc describes one object. Mesh is "box", "grid", "sphere", "cylinder",
// or a path to a model file (relative to the description file).
type ObjectDesc struct {
	Name string `json:"name" toml:"name" yaml:"name"`
	Mesh string `json:"mesh" toml:"mesh" yaml:"mesh"`

	// Shape parameters; unused ones are ignored.
	Size         []float64 `json:"size,omitempty" toml:"size,omitempty" yaml:"size,omitempty"` // box w,h,d or grid w,d
	Radius       float64   `json:"radius,omitempty" toml:"radius,omitempty" yaml:"radius,omitempty"`
	TopRadius    float64   `json:"top_radius,omitempty" toml:"top_radius,omitempty" yaml:"top_radius,omitempty"`
	Height       float64   `json:"height,omitempty" toml:"height,omitempty" yaml:"height,omitempty"`
	Slices       int       `json:"slices,omitempty" toml:"slices,omitempty" yaml:"slices,omitempty"`
	Stacks       int       `json:"stacks,omitempty" toml:"stacks,omitempty" yaml:"stacks,omitempty"`
	Subdivisions []int     `json:"subdivisions,omitempty" toml:"subdivisions,omitempty" yaml:"subdivisions,omitempty"` // grid rows, cols

	Position []float64 `json:"position,omitempty" toml:"position,omitempty" yaml:"position,omitempty"`
	Rotation []float64 `json:"rotation,omitempty" toml:"rotation,omitempty" yaml:"rotation,omitempty"` // Euler XYZ degrees
	Scale    []float64 `json:"scale,omitempty" toml:"scale,omitempty" yaml:"scale,omitempty"`
	Color    []float64 `json:"color,omitempty" toml:"color,omitempty" yaml:"color,omitempty"` // RGB 0..1
	Texture  string    `json:"texture,omitempty" toml:"texture,omitempty" yaml:"texture,omitempty"`
	Visible  *bool     `json:"visible,omitempty" toml:"visible,omitempty" yaml:"visible,omitempty"`
	Pickable *bool     `json:"pickable,omitempty" toml:"pickable,omitempty" yaml:"pickable,omitempty"`
}

// LoadDescription reads a scene description, picking the decoder by extension.
func LoadDescription(path string) (Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Description{}, fmt.Errorf("scene: read %s: %w", path, err)
	}

	var desc Description
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &desc)
	case ".toml":
		err = toml.Unmarshal(data, &desc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &desc)
	default:
		return Description{}, fmt.Errorf("scene: unsupported description format %q", ext)
	}
	if err != nil {
		return Description{}, fmt.Errorf("scene: parse %s: %w", path, err)
	}
	return desc, nil
}

// Load reads a description and builds it, resolving model paths next to the file.
func Load(path string) (*Scene, error) {
	desc, err := LoadDescription(path)
	if err != nil {
		return nil, err
	}
	return Build(desc, filepath.Dir(path))
}

// Build turns a description into a scene. Model files are loaded once per path.
func Build(desc Description, baseDir string) (*Scene, error) {
	s := New()
	models := make(map[string]*mesh.Mesh)

	for i, od := range desc.Objects {
		name := od.Name
		if name == "" {
			name = fmt.Sprintf("object%d", i)
		}

		m, err := buildMesh(od, baseDir, models)
		if err != nil {
			return nil, fmt.Errorf("scene: object %q: %w", name, err)
		}

		scale, err := vec3Of(od.Scale, mathutil.Vec3{1, 1, 1})
		if err != nil {
			return nil, fmt.Errorf("scene: object %q scale: %w", name, err)
		}
		for _, c := range scale {
			if math.Abs(c) < mathutil.Epsilon {
				return nil, fmt.Errorf("scene: object %q scale: zero component", name)
			}
		}
		rotDeg, err := vec3Of(od.Rotation, mathutil.Vec3{})
		if err != nil {
			return nil, fmt.Errorf("scene: object %q rotation: %w", name, err)
		}
		pos, err := vec3Of(od.Position, mathutil.Vec3{})
		if err != nil {
			return nil, fmt.Errorf("scene: object %q position: %w", name, err)
		}
		col, err := vec3Of(od.Color, mathutil.Vec3{0.7, 0.7, 0.7})
		if err != nil {
			return nil, fmt.Errorf("scene: object %q color: %w", name, err)
		}

		rot := mathutil.Vec3{mathutil.Deg2Rad(rotDeg[0]), mathutil.Deg2Rad(rotDeg[1]), mathutil.Deg2Rad(rotDeg[2])}
		s.Add(&Object{
			Name:     name,
			Mesh:     m,
			World:    WorldMatrix(scale, rot, pos),
			Color:    [3]uint8{unit8(col[0]), unit8(col[1]), unit8(col[2])},
			Texture:  od.Texture,
			Visible:  boolOr(od.Visible, true),
			Pickable: boolOr(od.Pickable, true),
		})
	}
	return s, nil
}

func buildMesh(od ObjectDesc, baseDir string, models map[string]*mesh.Mesh) (*mesh.Mesh, error) {
	switch strings.ToLower(od.Mesh) {
	case "box":
		size, err := vec3Of(od.Size, mathutil.Vec3{1, 1, 1})
		if err != nil {
			return nil, fmt.Errorf("size: %w", err)
		}
		return mesh.Box(size[0], size[1], size[2]), nil
	case "grid":
		w, d := 20.0, 20.0
		if len(od.Size) >= 2 {
			w, d = od.Size[0], od.Size[1]
		}
		rows, cols := 20, 20
		if len(od.Subdivisions) >= 2 {
			rows, cols = od.Subdivisions[0], od.Subdivisions[1]
		}
		return mesh.Grid(w, d, rows, cols), nil
	case "sphere":
		return mesh.Sphere(floatOr(od.Radius, 0.5), intOr(od.Slices, 20), intOr(od.Stacks, 20)), nil
	case "cylinder":
		bottom := floatOr(od.Radius, 0.5)
		top := floatOr(od.TopRadius, bottom)
		return mesh.Cylinder(bottom, top, floatOr(od.Height, 1), intOr(od.Slices, 20), intOr(od.Stacks, 1)), nil
	case "":
		return nil, fmt.Errorf("no mesh given")
	}

	path := od.Mesh
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	if m, ok := models[path]; ok {
		return m, nil
	}
	m, err := meshfile.Load(path)
	if err != nil {
		return nil, err
	}
	models[path] = m
	return m, nil
}

func vec3Of(v []float64, def mathutil.Vec3) (mathutil.Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 1:
		return mathutil.Vec3{v[0], v[0], v[0]}, nil
	case 3:
		return mathutil.Vec3{v[0], v[1], v[2]}, nil
	}
	return mathutil.Vec3{}, fmt.Errorf("want 1 or 3 components, got %d", len(v))
}

func unit8(f float64) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f*255 + 0.5)
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func floatOr(f, def float64) float64 {
	if f <= 0 {
		return def
	}
	return f
}

func intOr(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}

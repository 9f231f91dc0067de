// Package raster is a software z-buffer renderer for a scene seen through a
// camera. It draws the same view a picking ray is cast into.
package raster

import (
	"image"

	"mesh-picker/internal/camera"
	"mesh-picker/internal/mathutil"
	"mesh-picker/internal/scene"
	"mesh-picker/internal/texture"
)

var (
	// DefaultBackground is the clear color.
	DefaultBackground = [3]uint8{176, 196, 222}
	// DefaultHighlight is the fill color of the picked triangle.
	DefaultHighlight = [3]uint8{255, 230, 0}
)

// Options controls a Render call. Nil colors fall back to the defaults.
type Options struct {
	Width      int
	Height     int
	Background *[3]uint8
	Highlight  *[3]uint8
	Textures   texture.Resolver
}

// Render draws every visible object of sc, then the highlighted triangle on
// top of the surface it belongs to. cam must have an up-to-date view matrix.
func Render(sc *scene.Scene, hl *scene.Highlight, cam *camera.Camera, opts Options) *image.NRGBA {
	bg := DefaultBackground
	if opts.Background != nil {
		bg = *opts.Background
	}
	hc := DefaultHighlight
	if opts.Highlight != nil {
		hc = *opts.Highlight
	}

	fb := NewFrameBuffer(opts.Width, opts.Height)
	fb.Clear(bg)
	if opts.Width <= 0 || opts.Height <= 0 {
		return fb.Image()
	}

	viewProj := cam.ViewProj()
	lc := DefaultLightConfig()
	lc.SetView(cam.Look())

	for _, obj := range sc.Objects() {
		if !obj.Visible || obj.Mesh == nil {
			continue
		}
		mat := Material{R: obj.Color[0], G: obj.Color[1], B: obj.Color[2]}
		if opts.Textures != nil && obj.Texture != "" && obj.Mesh.HasUV {
			mat.Tex = opts.Textures.Resolve(obj.Texture)
		}
		drawObject(fb, obj, viewProj, &mat, &lc, 0, obj.Mesh.TriangleCount(), DepthLess)
	}

	if hl != nil && hl.Visible {
		if obj, ok := sc.Get(hl.ObjectID); ok && obj.Mesh != nil {
			mat := Material{R: hc[0], G: hc[1], B: hc[2]}
			first := hl.StartIndex / 3
			drawObject(fb, obj, viewProj, &mat, &lc, first, hl.IndexCount/3, DepthLessEqual)
		}
	}

	return fb.Image()
}

// drawObject rasterizes count triangles of obj starting at triangle first.
func drawObject(fb *FrameBuffer, obj *scene.Object, viewProj mathutil.Mat4, mat *Material, lc *LightConfig, first, count int, depth DepthTest) {
	m := obj.Mesh
	wvp := mathutil.Mat4Mul(obj.World, viewProj)
	total := m.TriangleCount()
	if first < 0 {
		first = 0
	}
	end := first + count
	if end > total {
		end = total
	}

	for t := first; t < end; t++ {
		var sv [3]ScreenVertex
		var world [3]mathutil.Vec3
		clipped := false
		for k := 0; k < 3; k++ {
			vert := m.Vertices[m.Indices[3*t+k]]
			world[k] = obj.World.TransformPoint(vert.Pos)
			p, ok := project(wvp, vert.Pos, fb.Width, fb.Height)
			if !ok {
				clipped = true
				break
			}
			p.U, p.V = vert.UV[0], vert.UV[1]
			sv[k] = p
		}
		if clipped {
			continue
		}

		n := world[1].Sub(world[0]).Cross(world[2].Sub(world[0])).Normalize()
		if n == (mathutil.Vec3{}) {
			continue
		}
		RasterizeTriangle(fb, sv, mat, lc.ComputeShade(n), lc, depth)
	}
}

// project maps a local-space point to pixel coordinates. It reports false for
// points at or behind the eye and for depths outside [0, 1].
func project(wvp mathutil.Mat4, p mathutil.Vec3, w, h int) (ScreenVertex, bool) {
	c := wvp.TransformVec4(mathutil.Vec4{p[0], p[1], p[2], 1})
	if c[3] <= mathutil.Epsilon {
		return ScreenVertex{}, false
	}
	inv := 1 / c[3]
	z := c[2] * inv
	if z < 0 || z > 1 {
		return ScreenVertex{}, false
	}
	return ScreenVertex{
		X:    (c[0]*inv + 1) * 0.5 * float64(w),
		Y:    (1 - c[1]*inv) * 0.5 * float64(h),
		Z:    z,
		InvW: inv,
	}, true
}

package raster

import (
	"image"
	"math"
)

// ScreenVertex is a projected vertex ready for rasterization.
type ScreenVertex struct {
	X, Y float64 // pixel coordinates, y down
	Z    float64 // NDC depth in [0, 1], smaller is nearer
	InvW float64 // 1/w of the clip-space position
	U, V float64
}

// DepthTest selects how a fragment's depth is compared against the z-buffer.
type DepthTest int

const (
	DepthLess DepthTest = iota
	DepthLessEqual
)

func (d DepthTest) pass(z, stored float64) bool {
	if d == DepthLessEqual {
		return z <= stored
	}
	return z < stored
}

// Material is the surface a triangle is filled with. Tex may be nil.
type Material struct {
	Tex     *image.NRGBA
	R, G, B uint8
}

// RasterizeTriangle fills one projected triangle with z-buffering, sRGB color
// space, flat shading, and ACES tone mapping. UVs are interpolated
// perspective-correctly.
//
// This is the hot path: no allocation in the pixel loop.
func RasterizeTriangle(fb *FrameBuffer, v [3]ScreenVertex, mat *Material, shade float64, lc *LightConfig, depth DepthTest) {
	x0, y0 := v[0].X, v[0].Y
	x1, y1 := v[1].X, v[1].Y
	x2, y2 := v[2].X, v[2].Y

	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2)))
	maxX := int(math.Ceil(math.Max(math.Max(x0, x1), x2)))
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2)))
	maxY := int(math.Ceil(math.Max(math.Max(y0, y1), y2)))

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-12 && det < 1e-12 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	hasUV := mat.Tex != nil && mat.Tex.Rect.Dx() > 0 && mat.Tex.Rect.Dy() > 0
	uw0, vw0 := v[0].U*v[0].InvW, v[0].V*v[0].InvW
	uw1, vw1 := v[1].U*v[1].InvW, v[1].V*v[1].InvW
	uw2, vw2 := v[2].U*v[2].InvW, v[2].V*v[2].InvW

	exposure := lc.Exposure
	invGamma := lc.InvGamma

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			// NDC depth is affine in screen space.
			z := w0*v[0].Z + w1*v[1].Z + w2*v[2].Z
			zIdx := rowOff + sx
			if !depth.pass(z, fb.ZBuf[zIdx]) {
				continue
			}

			cr, cg, cb, ca := mat.R, mat.G, mat.B, uint8(255)
			if hasUV {
				iw := w0*v[0].InvW + w1*v[1].InvW + w2*v[2].InvW
				u := (w0*uw0 + w1*uw1 + w2*uw2) / iw
				tv := (w0*vw0 + w1*vw1 + w2*vw2) / iw
				cr, cg, cb, ca = SampleTexture(mat.Tex, u, tv)
			}

			// Skip transparent texels
			if ca < 8 {
				continue
			}
			fb.ZBuf[zIdx] = z

			// sRGB decode → linear (LUT), shade, tone map, re-encode
			tr := ACESTonemap(srgbToLinear[cr] * shade * exposure)
			tg := ACESTonemap(srgbToLinear[cg] * shade * exposure)
			tb := ACESTonemap(srgbToLinear[cb] * shade * exposure)

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = clamp255(math.Pow(tr, invGamma) * 255)
			fb.Color[pxIdx+1] = clamp255(math.Pow(tg, invGamma) * 255)
			fb.Color[pxIdx+2] = clamp255(math.Pow(tb, invGamma) * 255)
			fb.Color[pxIdx+3] = 255
		}
	}
}

func clamp255(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

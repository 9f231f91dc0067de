package raster

import (
	"math"

	"mesh-picker/internal/mathutil"
)

// LightConfig holds precomputed lighting parameters.
type LightConfig struct {
	LightDir  mathutil.Vec3 // direction toward the key light
	RimDir    mathutil.Vec3
	HalfMain  mathutil.Vec3 // precomputed half-vector for Blinn-Phong
	Ambient   float64
	Hemi      float64
	Direct    float64
	Rim       float64
	SpecInt   float64
	SpecPow   float64
	Exposure  float64
	SRGBGamma float64
	InvGamma  float64
}

// DefaultLightConfig returns a three-point style setup for a Y-up world.
func DefaultLightConfig() LightConfig {
	lc := LightConfig{
		LightDir:  mathutil.Vec3{0.57735, 0.57735, -0.57735}.Normalize(),
		RimDir:    mathutil.Vec3{-0.4, 0.3, 0.8}.Normalize(),
		Ambient:   0.25,
		Hemi:      0.30,
		Direct:    0.90,
		Rim:       0.25,
		SpecInt:   0.25,
		SpecPow:   16.0,
		Exposure:  1.0,
		SRGBGamma: 2.2,
		InvGamma:  1.0 / 2.2,
	}
	lc.SetView(mathutil.AxisZ)
	return lc
}

// SetView recomputes the specular half-vector for a camera looking along look.
func (lc *LightConfig) SetView(look mathutil.Vec3) {
	lc.HalfMain = lc.LightDir.Sub(look.Normalize()).Normalize()
}

// ComputeShade returns the combined lighting scalar for a face normal.
// Both sides of a face are lit alike.
func (lc *LightConfig) ComputeShade(normal mathutil.Vec3) float64 {
	ndlMain := math.Abs(normal.Dot(lc.LightDir))
	ndlRim := math.Abs(normal.Dot(lc.RimDir))

	// Hemisphere fill: brighter for faces turned toward the sky.
	hemi := math.Abs(normal[1])*0.5 + 0.5
	hemiLight := hemi * lc.Hemi

	ndh := math.Abs(normal.Dot(lc.HalfMain))
	spec := math.Pow(ndh, lc.SpecPow) * lc.SpecInt

	return lc.Ambient + hemiLight + ndlMain*lc.Direct + ndlRim*lc.Rim + spec
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

package raster

import (
	"math"

	"github.com/DavidArayan/gfx/internal/mathutil"
)

// LightConfig holds precomputed lighting parameters. Directions are world space.
type LightConfig struct {
	LightDir mathutil.Vec3
	RimDir   mathutil.Vec3
	HalfMain mathutil.Vec3 // precomputed half-vector for Blinn-Phong
	Ambient  float64
	Hemi     float64
	Direct   float64
	Rim      float64
	SpecInt  float64
	SpecPow  float64
	Exposure float64
	InvGamma float64
}

// DefaultLightConfig returns a key light from the upper right and a rim light
// from behind, for a viewer on +Z.
func DefaultLightConfig() LightConfig {
	lightDir := mathutil.Vec3{0.45, 0.65, 0.35}.Normalize()
	rimDir := mathutil.Vec3{-0.4, 0.3, -0.5}.Normalize()
	viewDir := mathutil.Vec3{0, 0, 1}

	return LightConfig{
		LightDir: lightDir,
		RimDir:   rimDir,
		HalfMain: lightDir.Add(viewDir).Normalize(),
		Ambient:  0.25,
		Hemi:     0.30,
		Direct:   1.10,
		Rim:      0.35,
		SpecInt:  0.35,
		SpecPow:  12.0,
		Exposure: 1.0,
		InvGamma: 1.0 / 2.2,
	}
}

// ComputeShade returns the combined lighting scalar for a unit face normal.
func (lc *LightConfig) ComputeShade(normal mathutil.Vec3) float64 {
	ndlMain := math.Max(normal.Dot(lc.LightDir), 0)
	ndlRim := math.Max(normal.Dot(lc.RimDir), 0)

	// Hemisphere fill: brighter facing up
	hemi := (normal[1] + 1) * 0.5 * lc.Hemi

	ndh := normal.Dot(lc.HalfMain)
	if ndh < 0 {
		ndh = 0
	}
	spec := math.Pow(ndh, lc.SpecPow) * lc.SpecInt

	return lc.Ambient + hemi + ndlMain*lc.Direct + ndlRim*lc.Rim + spec
}

// Shade converts an sRGB color to the lit, tone-mapped sRGB output.
func (lc *LightConfig) Shade(c [4]uint8, shade float64) [4]uint8 {
	var out [4]uint8
	for k := 0; k < 3; k++ {
		lin := srgbToLinear[c[k]] * shade * lc.Exposure
		out[k] = clamp255(math.Pow(ACESTonemap(lin), lc.InvGamma) * 255)
	}
	out[3] = c[3]
	return out
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

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

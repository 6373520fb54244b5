package lakeengine

import (
	"image/color"
	"math"
)

// InterpFunc maps a normalized position in [0, 1] to a color.
type InterpFunc func(t float64) color.RGBA

// DefaultInterpolator is the registry fallback for unknown names.
const DefaultInterpolator = "viridis"

// interpolators is the fixed registry of named color interpolators. Variable
// configs reference entries by name; lookups that miss fall back to viridis
// instead of failing the render.
var interpolators = map[string]InterpFunc{
	"viridis": gradient([]color.RGBA{
		{68, 1, 84, 255},
		{72, 35, 116, 255},
		{64, 67, 135, 255},
		{52, 94, 141, 255},
		{41, 120, 142, 255},
		{32, 144, 140, 255},
		{34, 167, 132, 255},
		{68, 190, 112, 255},
		{121, 209, 81, 255},
		{189, 222, 38, 255},
		{253, 231, 37, 255},
	}),
	"plasma": gradient([]color.RGBA{
		{13, 8, 135, 255},
		{75, 3, 161, 255},
		{125, 3, 168, 255},
		{168, 34, 150, 255},
		{203, 70, 121, 255},
		{229, 107, 93, 255},
		{248, 148, 65, 255},
		{253, 195, 40, 255},
		{240, 249, 33, 255},
	}),
	"inferno": gradient([]color.RGBA{
		{0, 0, 4, 255},
		{40, 11, 84, 255},
		{101, 21, 110, 255},
		{159, 42, 99, 255},
		{212, 72, 66, 255},
		{245, 125, 21, 255},
		{250, 193, 39, 255},
		{252, 255, 164, 255},
	}),
	"blues": gradient([]color.RGBA{
		{247, 251, 255, 255},
		{198, 219, 239, 255},
		{107, 174, 214, 255},
		{33, 113, 181, 255},
		{8, 48, 107, 255},
	}),
}

// InterpolatorByName resolves a named interpolator, falling back to the
// default entry when the name is unknown or empty.
func InterpolatorByName(name string) InterpFunc {
	if f, ok := interpolators[name]; ok {
		return f
	}
	return interpolators[DefaultInterpolator]
}

// gradient builds a linear multi-stop interpolator over the given colors.
func gradient(stops []color.RGBA) InterpFunc {
	return func(t float64) color.RGBA {
		if t <= 0 || math.IsNaN(t) {
			return stops[0]
		}
		if t >= 1 {
			return stops[len(stops)-1]
		}
		idx := t * float64(len(stops)-1)
		lower := int(idx)
		upper := lower + 1
		if upper >= len(stops) {
			upper = len(stops) - 1
		}
		frac := idx - float64(lower)
		return lerpRGBA(stops[lower], stops[upper], frac)
	}
}

func lerpRGBA(c1, c2 color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c1.R) + t*(float64(c2.R)-float64(c1.R))),
		G: uint8(float64(c1.G) + t*(float64(c2.G)-float64(c1.G))),
		B: uint8(float64(c1.B) + t*(float64(c2.B)-float64(c1.B))),
		A: 255,
	}
}

// ColorScale is a continuous value-to-color mapping over a [Min, Max] domain.
type ColorScale struct {
	Interp   InterpFunc
	Min, Max float64
}

// NewColorScale builds a scale from an interpolator name and a domain. A
// degenerate domain (Max <= Min) is widened slightly so every value still
// maps somewhere sensible.
func NewColorScale(name string, min, max float64) ColorScale {
	if max <= min {
		max = min + 1e-9
	}
	return ColorScale{Interp: InterpolatorByName(name), Min: min, Max: max}
}

// Color maps a value to a color, clamping to the domain ends.
func (s ColorScale) Color(v float64) color.RGBA {
	t := (v - s.Min) / (s.Max - s.Min)
	return s.Interp(t)
}

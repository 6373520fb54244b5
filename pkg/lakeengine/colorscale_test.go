package lakeengine

import (
	"image/color"
	"math"
	"testing"
)

func TestInterpolatorByNameFallback(t *testing.T) {
	viridis := InterpolatorByName("viridis")
	for _, name := range []string{"", "nope", "VIRIDIS"} {
		f := InterpolatorByName(name)
		if f(0) != viridis(0) || f(1) != viridis(1) {
			t.Errorf("InterpolatorByName(%q) did not fall back to viridis", name)
		}
	}
	if InterpolatorByName("plasma")(0) == viridis(0) {
		t.Error("plasma resolved to the viridis ramp")
	}
}

func TestGradientEndpointsAndClamping(t *testing.T) {
	f := InterpolatorByName("viridis")
	first := color.RGBA{68, 1, 84, 255}
	last := color.RGBA{253, 231, 37, 255}

	tests := []struct {
		t    float64
		want color.RGBA
	}{
		{0, first},
		{-0.5, first},
		{math.NaN(), first},
		{1, last},
		{2.5, last},
	}
	for _, tt := range tests {
		if got := f(tt.t); got != tt.want {
			t.Errorf("viridis(%f) = %v; want %v", tt.t, got, tt.want)
		}
	}

	// Interior samples are never one of the clamped endpoints' exact inputs.
	mid := f(0.5)
	if mid == first || mid == last {
		t.Errorf("viridis(0.5) = %v; want an interior color", mid)
	}
}

func TestColorScaleClamps(t *testing.T) {
	s := NewColorScale("viridis", 1.0, 1.25)
	if s.Color(0.5) != s.Color(1.0) {
		t.Error("Below-domain value did not clamp to Min color")
	}
	if s.Color(9.9) != s.Color(1.25) {
		t.Error("Above-domain value did not clamp to Max color")
	}
	if s.Color(1.0) == s.Color(1.25) {
		t.Error("Domain endpoints map to the same color")
	}
}

func TestNewColorScaleDegenerateDomain(t *testing.T) {
	// Max <= Min gets widened instead of dividing by zero.
	s := NewColorScale("viridis", 1.1, 1.1)
	c := s.Color(1.1)
	if c.A != 255 {
		t.Errorf("Degenerate-domain color = %v; want an opaque color", c)
	}
	s = NewColorScale("viridis", 2, 1)
	if got := s.Color(2); got.A != 255 {
		t.Errorf("Inverted-domain color = %v; want an opaque color", got)
	}
}

package lakeengine

import (
	"math"
	"testing"
)

func TestInterpolateExactMatch(t *testing.T) {
	points := []DataPoint{
		{X: 10, Y: 10, Value: 1.05},
		{X: 200, Y: 150, Value: 1.20},
	}

	v, ok := Interpolate(10, 10, points, DefaultPower)
	if !ok {
		t.Fatal("Expected ok at a station position")
	}
	if v != 1.05 {
		t.Errorf("Interpolate at station = %f; want exact value 1.05", v)
	}

	// Within the coincidence epsilon the station value still wins.
	v, ok = Interpolate(10+1e-6, 10, points, DefaultPower)
	if !ok || v != 1.05 {
		t.Errorf("Interpolate near station = (%f, %v); want (1.05, true)", v, ok)
	}
}

func TestInterpolateEmpty(t *testing.T) {
	if v, ok := Interpolate(5, 5, nil, DefaultPower); ok {
		t.Errorf("Interpolate with no points = (%f, true); want not-ok", v)
	}
	if v, ok := Interpolate(5, 5, []DataPoint{}, DefaultPower); ok {
		t.Errorf("Interpolate with empty points = (%f, true); want not-ok", v)
	}
}

func TestInterpolateEqualValues(t *testing.T) {
	points := []DataPoint{
		{X: 0, Y: 0, Value: 1.17},
		{X: 100, Y: 0, Value: 1.17},
		{X: 50, Y: 80, Value: 1.17},
	}

	// A weighted average of equal values is that value everywhere.
	samples := [][2]float64{{50, 40}, {1, 1}, {99, 79}, {-20, -20}}
	for _, s := range samples {
		v, ok := Interpolate(s[0], s[1], points, DefaultPower)
		if !ok {
			t.Fatalf("Interpolate(%f, %f) not ok", s[0], s[1])
		}
		if math.Abs(v-1.17) > 1e-12 {
			t.Errorf("Interpolate(%f, %f) = %.15f; want 1.17", s[0], s[1], v)
		}
	}
}

func TestInterpolateCloserDominates(t *testing.T) {
	points := []DataPoint{
		{X: 0, Y: 0, Value: 1.0},
		{X: 100, Y: 0, Value: 2.0},
	}
	v, ok := Interpolate(10, 0, points, DefaultPower)
	if !ok {
		t.Fatal("Expected ok")
	}
	if v >= 1.5 {
		t.Errorf("Value at x=10 is %f; the nearer station should dominate (< 1.5)", v)
	}
	v, _ = Interpolate(90, 0, points, DefaultPower)
	if v <= 1.5 {
		t.Errorf("Value at x=90 is %f; the nearer station should dominate (> 1.5)", v)
	}
}

func TestInterpolateMalformedPoints(t *testing.T) {
	// NaN coordinates poison their weight and the cell stays undefined.
	nanPoints := []DataPoint{{X: math.NaN(), Y: 0, Value: 1.0}}
	if v, ok := Interpolate(5, 5, nanPoints, DefaultPower); ok {
		t.Errorf("Interpolate over NaN point = (%f, true); want not-ok", v)
	}

	// Infinite distance yields zero weight, and a zero weight sum is not-ok.
	infPoints := []DataPoint{{X: math.Inf(1), Y: 0, Value: 1.0}}
	if v, ok := Interpolate(5, 5, infPoints, DefaultPower); ok {
		t.Errorf("Interpolate over infinite point = (%f, true); want not-ok", v)
	}

	// A good point alongside a bad one still produces its value.
	mixed := []DataPoint{{X: math.NaN(), Y: 0, Value: 9.0}, {X: 10, Y: 10, Value: 1.1}}
	v, ok := Interpolate(5, 5, mixed, DefaultPower)
	if !ok {
		t.Fatal("Expected ok with one finite point present")
	}
	if math.Abs(v-1.1) > 1e-12 {
		t.Errorf("Interpolate over mixed points = %f; want 1.1", v)
	}
}

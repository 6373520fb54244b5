package lakeengine

import "math"

// coincidentEpsilon is the squared-distance threshold below which a grid cell
// is considered to sit exactly on a station. Returning the measured value
// directly both avoids the 1/0 weight and keeps station pixels honest.
const coincidentEpsilon = 1e-8

// DefaultPower is the inverse-distance exponent used by the rasterizer.
const DefaultPower = 2.0

// Interpolate computes the inverse-distance-weighted value at (x, y) from the
// given points. The second return is false when no value is defined there:
// the point list is empty, or every weight is non-finite, or the weight sum
// degenerates to zero. Callers must leave such cells unpainted.
//
// Points are expected to be pre-partitioned by region; this function never
// reasons about region membership.
func Interpolate(x, y float64, points []DataPoint, power float64) (float64, bool) {
	if len(points) == 0 {
		return 0, false
	}

	var weightSum, valueSum float64
	for _, p := range points {
		dx, dy := x-p.X, y-p.Y
		d2 := dx*dx + dy*dy
		if d2 < coincidentEpsilon {
			return p.Value, true
		}
		// 1/d²^(power/2): for the default power of 2 this is just 1/d²,
		// so no square root is ever taken.
		w := 1 / math.Pow(d2, power/2)
		if math.IsInf(w, 0) || math.IsNaN(w) {
			continue
		}
		weightSum += w
		valueSum += w * p.Value
	}

	if weightSum == 0 || math.IsNaN(weightSum) || math.IsInf(weightSum, 0) {
		return 0, false
	}
	return valueSum / weightSum, true
}

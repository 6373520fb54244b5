package lakeengine

import "math"

// GeoBounds is a rectangular geographic bounding box in lon/lat degrees.
type GeoBounds struct {
	MinLon, MinLat float64
	MaxLon, MaxLat float64
}

// emptyBounds starts inverted so the first Extend sets all four edges.
func emptyBounds() GeoBounds {
	return GeoBounds{
		MinLon: math.Inf(1), MinLat: math.Inf(1),
		MaxLon: math.Inf(-1), MaxLat: math.Inf(-1),
	}
}

func (b *GeoBounds) Extend(lon, lat float64) {
	b.MinLon = math.Min(b.MinLon, lon)
	b.MaxLon = math.Max(b.MaxLon, lon)
	b.MinLat = math.Min(b.MinLat, lat)
	b.MaxLat = math.Max(b.MaxLat, lat)
}

func (b GeoBounds) Empty() bool {
	return b.MinLon > b.MaxLon || b.MinLat > b.MaxLat
}

// Viewport owns the pan/zoom state and maps lon/lat to screen pixels. The
// mapping is viewport-dependent, so callers must re-project on every pass
// instead of caching screen coordinates.
//
// The projection is a locally-corrected plate carrée: one degree of latitude
// is scale pixels, one degree of longitude is scale*cos(centerLat) pixels,
// which keeps shapes honest at lake extents.
type Viewport struct {
	width, height int

	centerLon float64
	centerLat float64
	scale     float64 // pixels per degree of latitude

	ready bool
}

func NewViewport(width, height int) *Viewport {
	return &Viewport{width: width, height: height}
}

// Ready reports whether the viewport has been fitted to geometry. Render
// passes must be skipped until it returns true; projecting through an
// unfitted viewport would put everything at the origin.
func (v *Viewport) Ready() bool {
	return v.ready && v.scale > 0 && v.width > 0 && v.height > 0
}

// Size returns the viewport pixel dimensions.
func (v *Viewport) Size() (int, int) {
	return v.width, v.height
}

// FitBounds centers the viewport on the bounds and picks the largest scale
// that keeps them fully visible with the given fractional padding. Fitting
// also flips the viewport to ready.
func (v *Viewport) FitBounds(b GeoBounds, padding float64) {
	if b.Empty() || v.width <= 0 || v.height <= 0 {
		return
	}
	v.centerLon = (b.MinLon + b.MaxLon) / 2
	v.centerLat = (b.MinLat + b.MaxLat) / 2

	lonSpan := (b.MaxLon - b.MinLon) * v.lonStretch()
	latSpan := b.MaxLat - b.MinLat
	if lonSpan <= 0 && latSpan <= 0 {
		return
	}
	usableW := float64(v.width) * (1 - padding)
	usableH := float64(v.height) * (1 - padding)
	scaleX, scaleY := math.Inf(1), math.Inf(1)
	if lonSpan > 0 {
		scaleX = usableW / lonSpan
	}
	if latSpan > 0 {
		scaleY = usableH / latSpan
	}
	v.scale = math.Min(scaleX, scaleY)
	v.ready = true
}

// lonStretch is the cos(latitude) correction applied to longitude spans.
func (v *Viewport) lonStretch() float64 {
	return math.Cos(v.centerLat * math.Pi / 180)
}

// Project maps a lon/lat pair to screen pixel coordinates under the current
// pan/zoom state. It is a pure function of the viewport state and never
// caches anything.
func (v *Viewport) Project(lon, lat float64) (x, y float64) {
	x = float64(v.width)/2 + (lon-v.centerLon)*v.scale*v.lonStretch()
	y = float64(v.height)/2 - (lat-v.centerLat)*v.scale
	return x, y
}

// Pan shifts the view by a pixel delta (positive dx moves the map content
// right, i.e. the center west).
func (v *Viewport) Pan(dx, dy float64) {
	if !v.Ready() {
		return
	}
	v.centerLon -= dx / (v.scale * v.lonStretch())
	v.centerLat += dy / v.scale
}

// Zoom scales the view about its center. Factors above 1 zoom in.
func (v *Viewport) Zoom(factor float64) {
	if !v.Ready() || factor <= 0 {
		return
	}
	v.scale *= factor
}

// Resize updates the pixel dimensions, keeping the geographic center and
// scale so a window resize does not jump the view.
func (v *Viewport) Resize(width, height int) {
	v.width, v.height = width, height
}

package lakeengine

import (
	"image"
	"math"
	"sort"
)

// Fixed interpolation grid resolution. Every region gets the same grid
// regardless of zoom, which bounds the cost of a render pass.
const (
	RasterWidth  = 600
	RasterHeight = 375
)

// RegionRaster is one region's painted interpolation grid plus where it
// lands on screen. The bitmap spans the region's projected geographic
// bounding box and is scaled to ScreenW×ScreenH pixels when composited.
type RegionRaster struct {
	Img     *image.RGBA
	ScreenX float64
	ScreenY float64
	ScreenW float64
	ScreenH float64

	// PaintedCells counts cells that received a color; zero means the
	// region contributed no heatmap this pass.
	PaintedCells int
}

// RasterizeRegion interpolates the region's point subset over the fixed grid
// and paints each in-silhouette cell through the color scale. Cells outside
// the clip silhouette or without a defined interpolated value stay fully
// transparent. The boolean is false when the projected bounding box is
// degenerate (zero width or height), in which case the region is skipped
// silently.
//
// The returned buffer is freshly allocated on every call; rasters are never
// reused across passes.
func RasterizeRegion(vp *Viewport, region Region, points []DataPoint, scale ColorScale, power float64) (RegionRaster, bool) {
	if region.Bounds.Empty() {
		return RegionRaster{}, false
	}

	// The projection is monotonic in both axes, so the projected corners of
	// the geographic bbox bound the projected region.
	x0, y0 := vp.Project(region.Bounds.MinLon, region.Bounds.MaxLat)
	x1, y1 := vp.Project(region.Bounds.MaxLon, region.Bounds.MinLat)
	screenW, screenH := x1-x0, y1-y0
	if screenW <= 0 || screenH <= 0 {
		return RegionRaster{}, false
	}

	rr := RegionRaster{
		Img:     image.NewRGBA(image.Rect(0, 0, RasterWidth, RasterHeight)),
		ScreenX: x0,
		ScreenY: y0,
		ScreenW: screenW,
		ScreenH: screenH,
	}

	mask := silhouetteMask(vp, region, x0, y0, screenW, screenH)

	if len(points) == 0 {
		// No contributing stations: outline still renders, heatmap doesn't.
		return rr, true
	}

	cellW := screenW / RasterWidth
	cellH := screenH / RasterHeight
	for gy := 0; gy < RasterHeight; gy++ {
		sy := y0 + (float64(gy)+0.5)*cellH
		for gx := 0; gx < RasterWidth; gx++ {
			if !mask[gy*RasterWidth+gx] {
				continue
			}
			sx := x0 + (float64(gx)+0.5)*cellW
			v, ok := Interpolate(sx, sy, points, power)
			if !ok {
				continue
			}
			c := scale.Color(v)
			off := gy*rr.Img.Stride + gx*4
			rr.Img.Pix[off], rr.Img.Pix[off+1], rr.Img.Pix[off+2], rr.Img.Pix[off+3] = c.R, c.G, c.B, c.A
			rr.PaintedCells++
		}
	}
	return rr, true
}

// silhouetteMask rasterizes the region polygon into grid space with an
// even-odd scanline fill, so only cells inside the clip silhouette are
// painted. Holes in the polygon fall out of the even-odd rule naturally.
func silhouetteMask(vp *Viewport, region Region, x0, y0, screenW, screenH float64) []bool {
	mask := make([]bool, RasterWidth*RasterHeight)

	type point struct{ x, y float64 }
	projected := make([][]point, len(region.Rings))
	for i, ring := range region.Rings {
		projected[i] = make([]point, 0, len(ring))
		for _, pt := range ring {
			if len(pt) < 2 {
				continue
			}
			sx, sy := vp.Project(pt[0], pt[1])
			// Screen to grid coordinates.
			gx := (sx - x0) / screenW * RasterWidth
			gy := (sy - y0) / screenH * RasterHeight
			projected[i] = append(projected[i], point{gx, gy})
		}
	}

	for gy := 0; gy < RasterHeight; gy++ {
		fy := float64(gy) + 0.5
		var nodes []float64
		for _, ring := range projected {
			n := len(ring)
			for i := 0; i < n; i++ {
				j := (i + 1) % n
				if (ring[i].y < fy && ring[j].y >= fy) || (ring[j].y < fy && ring[i].y >= fy) {
					nodeX := ring[i].x + (fy-ring[i].y)/(ring[j].y-ring[i].y)*(ring[j].x-ring[i].x)
					nodes = append(nodes, nodeX)
				}
			}
		}
		sort.Float64s(nodes)
		for i := 0; i+1 < len(nodes); i += 2 {
			xs := int(math.Ceil(nodes[i] - 0.5))
			xe := int(math.Floor(nodes[i+1] - 0.5))
			if xs < 0 {
				xs = 0
			}
			if xe >= RasterWidth {
				xe = RasterWidth - 1
			}
			for x := xs; x <= xe; x++ {
				mask[gy*RasterWidth+x] = true
			}
		}
	}
	return mask
}

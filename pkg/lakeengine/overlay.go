package lakeengine

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Overlay palette. The background is dark water-on-dark like a basemap at
// night; heatmap colors come from the active scale, never from here.
var (
	colorBackground = color.RGBA{8, 10, 15, 255}
	colorOutline    = color.RGBA{96, 110, 130, 255}
	colorNoData     = color.RGBA{120, 120, 120, 255}
	colorMarkerRim  = color.RGBA{15, 17, 22, 255}
	colorLabel      = color.RGBA{255, 255, 255, 255}
	colorMessage    = color.RGBA{200, 205, 215, 255}
)

// markerRadius is the station circle radius in pixels.
const markerRadius = 6

// defaultLabelOffset places labels up-right of the marker; per-station
// overrides come from the engine's LabelOffsets table.
var defaultLabelOffset = [2]float64{10, -8}

// blitRaster scales a region bitmap onto its projected screen rectangle with
// nearest-neighbor sampling, preserving the hard cell edges of the grid.
func blitRaster(dst *image.RGBA, rr RegionRaster) {
	if rr.Img == nil || rr.PaintedCells == 0 {
		return
	}
	dr := image.Rect(
		int(math.Floor(rr.ScreenX)),
		int(math.Floor(rr.ScreenY)),
		int(math.Ceil(rr.ScreenX+rr.ScreenW)),
		int(math.Ceil(rr.ScreenY+rr.ScreenH)),
	)
	draw.NearestNeighbor.Scale(dst, dr, rr.Img, rr.Img.Bounds(), draw.Over, nil)
}

// drawRegionOutline strokes every ring of the region through the live
// projection.
func drawRegionOutline(img *image.RGBA, vp *Viewport, region Region, c color.RGBA) {
	for _, ring := range region.Rings {
		for i := 0; i+1 < len(ring); i++ {
			if len(ring[i]) < 2 || len(ring[i+1]) < 2 {
				continue
			}
			x1, y1 := vp.Project(ring[i][0], ring[i][1])
			x2, y2 := vp.Project(ring[i+1][0], ring[i+1][1])
			drawLine(img, int(x1), int(y1), int(x2), int(y2), c)
		}
	}
}

// drawLine is a clipped Bresenham line.
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, c color.RGBA) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	dx, dy := math.Abs(float64(x2-x1)), math.Abs(float64(y2-y1))
	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}
	errAcc := dx - dy
	for {
		if x1 >= 0 && x1 < w && y1 >= 0 && y1 < h {
			off := y1*img.Stride + x1*4
			img.Pix[off], img.Pix[off+1], img.Pix[off+2], img.Pix[off+3] = c.R, c.G, c.B, c.A
		}
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * errAcc
		if e2 > -dy {
			errAcc -= dy
			x1 += sx
		}
		if e2 < dx {
			errAcc += dx
			y1 += sy
		}
	}
}

// fillCircle paints a filled disc, clipped to the image.
func fillCircle(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	r2 := r * r
	for dy := -r; dy <= r; dy++ {
		y := cy + dy
		if y < 0 || y >= h {
			continue
		}
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r2 {
				continue
			}
			x := cx + dx
			if x < 0 || x >= w {
				continue
			}
			off := y*img.Stride + x*4
			img.Pix[off], img.Pix[off+1], img.Pix[off+2], img.Pix[off+3] = c.R, c.G, c.B, c.A
		}
	}
}

// drawMarker paints a station circle with a dark rim so it reads on top of
// both the heatmap and bare water.
func drawMarker(img *image.RGBA, x, y int, fill color.RGBA) {
	fillCircle(img, x, y, markerRadius+1, colorMarkerRim)
	fillCircle(img, x, y, markerRadius, fill)
}

// drawText draws a string with its baseline at (x, y).
func drawText(img *image.RGBA, face font.Face, x, y int, s string, c color.RGBA) {
	if face == nil {
		return
	}
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// drawCenteredText centers a string horizontally and vertically in the image.
func drawCenteredText(img *image.RGBA, face font.Face, s string, c color.RGBA) {
	if face == nil {
		return
	}
	b := img.Bounds()
	width := font.MeasureString(face, s).Ceil()
	m := face.Metrics()
	x := b.Dx()/2 - width/2
	y := b.Dy()/2 + m.Ascent.Ceil()/2
	drawText(img, face, x, y, s, c)
}

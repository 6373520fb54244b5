package lakeengine

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	geojson "github.com/paulmach/go.geojson"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Engine owns the whole render pipeline: viewport, lake geometry, station
// data, the current (variable, timePoint) selection, and the composited
// frame. It implements ebiten.Game for the interactive viewer, and exposes
// RenderFrame for the batch renderer, which never opens a window.
//
// Every render pass clears and fully repaints the overlay; there is no
// incremental diffing. The grid resolution is fixed, so a pass is bounded
// regardless of zoom.
type Engine struct {
	Width, Height int

	// PlaybackInterval is the auto-advance period for the time animation.
	PlaybackInterval time.Duration

	mu sync.Mutex
	vp *Viewport

	matchers       []RegionMatcher
	regions        []Region
	stationRegions map[string]string
	labelOffsets   map[string][2]float64

	stations    []Station
	timePoints  []string
	allData     map[string]map[string]StationDataValues
	temperature map[string]map[string]float64
	dataRanges  map[string][2]float64

	variables []VariableConfig
	varIdx    int

	playback *Playback

	dirty      bool
	frame      *image.RGBA
	frameStale bool
	markers    []markerHit
	passes     uint64

	display    *ebiten.Image
	fontSource *text.GoTextFaceSource
	labelFace  font.Face

	dragging   bool
	lastMouseX int
	lastMouseY int
}

// markerHit is a rendered station marker plus everything the tooltip needs.
type markerHit struct {
	X, Y     float64
	Station  Station
	Tooltip  string
	TempLine string
}

func NewEngine(width, height int) *Engine {
	e := &Engine{
		Width:            width,
		Height:           height,
		PlaybackInterval: 800 * time.Millisecond,
		vp:               NewViewport(width, height),
		matchers:         DefaultMatchers(),
		stationRegions:   DefaultStationRegions(),
		labelOffsets:     map[string][2]float64{},
		variables:        DefaultVariables(),
	}
	e.playback = NewPlayback(0, func(int) { e.MarkDirty() })

	if src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF)); err == nil {
		e.fontSource = src
	}
	if ft, err := opentype.Parse(goregular.TTF); err == nil {
		face, err := opentype.NewFace(ft, &opentype.FaceOptions{Size: 12, DPI: 72, Hinting: font.HintingFull})
		if err == nil {
			e.labelFace = face
		}
	}
	return e
}

// SetGeometry installs (or reloads) the lake outline. Region resolution is
// rerun from scratch: source geometry may have changed shape or names. The
// first successful load fits the viewport and flips it to ready.
func (e *Engine) SetGeometry(fc *geojson.FeatureCollection) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.regions = ResolveRegions(fc, e.matchers)
	if !e.vp.Ready() {
		e.vp.FitBounds(CombinedBounds(e.regions), 0.12)
	}
	e.dirty = true
}

// SetStations installs the station list. Stations are immutable for the
// session once loaded.
func (e *Engine) SetStations(stations []Station) {
	e.mu.Lock()
	e.stations = stations
	e.dirty = true
	e.mu.Unlock()
}

// SetData installs the measurement slices: per-variable per-timepoint value
// maps, the display-only temperature series, and observed data ranges.
func (e *Engine) SetData(timePoints []string, allData map[string]map[string]StationDataValues, temperature map[string]map[string]float64, dataRanges map[string][2]float64) {
	e.mu.Lock()
	e.timePoints = timePoints
	e.allData = allData
	e.temperature = temperature
	e.dataRanges = dataRanges
	e.playback.SetLastIndex(len(timePoints) - 1)
	e.dirty = true
	e.mu.Unlock()
}

// SetStationRegions replaces the fixed station-to-region assignment table.
func (e *Engine) SetStationRegions(assignment map[string]string) {
	e.mu.Lock()
	e.stationRegions = assignment
	e.dirty = true
	e.mu.Unlock()
}

// SetLabelOffsets replaces the per-station label offset table.
func (e *Engine) SetLabelOffsets(offsets map[string][2]float64) {
	e.mu.Lock()
	e.labelOffsets = offsets
	e.dirty = true
	e.mu.Unlock()
}

// SetVariable selects the active data-bearing variable by key.
func (e *Engine) SetVariable(key string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, v := range e.variables {
		if v.Key == key {
			e.varIdx = i
			e.dirty = true
			return nil
		}
	}
	return fmt.Errorf("unknown variable %q", key)
}

// CycleVariable advances to the next configured variable.
func (e *Engine) CycleVariable() {
	e.mu.Lock()
	e.varIdx = (e.varIdx + 1) % len(e.variables)
	e.dirty = true
	e.mu.Unlock()
}

// Variable returns the active variable config.
func (e *Engine) Variable() VariableConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.variables[e.varIdx]
}

// Playback exposes the animation state for scrub/play control.
func (e *Engine) Playback() *Playback {
	return e.playback
}

// TimePoints returns the ordered month keys.
func (e *Engine) TimePoints() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timePoints
}

// CurrentTimePoint returns the "YYYY-MM" key at the playback index, or ""
// when no data is loaded.
func (e *Engine) CurrentTimePoint() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentTimePointLocked()
}

func (e *Engine) currentTimePointLocked() string {
	idx := e.playback.Index()
	if idx < 0 || idx >= len(e.timePoints) {
		return ""
	}
	return e.timePoints[idx]
}

// MarkDirty schedules a full repaint on the next Update. Viewport changes
// and data changes funnel through the same flag: if both land before a pass
// runs, the pass simply sees the latest state.
func (e *Engine) MarkDirty() {
	e.mu.Lock()
	e.dirty = true
	e.mu.Unlock()
}

// Resize changes the internal render resolution and repaints.
func (e *Engine) Resize(width, height int) {
	e.mu.Lock()
	e.Width, e.Height = width, height
	e.vp.Resize(width, height)
	e.dirty = true
	e.mu.Unlock()
}

// Viewport returns the engine's viewport for direct pan/zoom control.
func (e *Engine) Viewport() *Viewport {
	return e.vp
}

// Stop releases the playback ticker. Call on shutdown.
func (e *Engine) Stop() {
	e.playback.Stop()
}

// RenderFrame runs a full synchronous render pass and returns the composited
// frame. It returns nil while the viewport is not ready (geometry not loaded
// yet); callers retry on the next trigger. This is the entry point the batch
// renderer uses directly.
func (e *Engine) RenderFrame() *image.RGBA {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderPassLocked()
	return e.frame
}

// renderPassLocked recomputes every layer from current state: projected data
// points, per-region rasters, outlines, markers, labels. Buffers are
// allocated fresh each pass.
func (e *Engine) renderPassLocked() {
	if !e.vp.Ready() {
		return
	}
	w, h := e.vp.Size()
	frame := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(frame.Pix); i += 4 {
		frame.Pix[i], frame.Pix[i+1], frame.Pix[i+2], frame.Pix[i+3] = colorBackground.R, colorBackground.G, colorBackground.B, 255
	}

	varCfg := e.variables[e.varIdx]
	tp := e.currentTimePointLocked()
	var values StationDataValues
	if byTP, ok := e.allData[varCfg.Key]; ok {
		values = byTP[tp]
	}
	scale := e.scaleForLocked(varCfg)

	pointsByRegion, markers := e.buildPointsLocked(values, scale, tp, varCfg)

	painted := 0
	for _, r := range e.regions {
		if r.ID == "" {
			continue // unmatched: outline only
		}
		rr, ok := RasterizeRegion(e.vp, r, pointsByRegion[r.ID], scale, DefaultPower)
		if !ok {
			continue
		}
		blitRaster(frame, rr)
		painted += rr.PaintedCells
	}

	for _, r := range e.regions {
		drawRegionOutline(frame, e.vp, r, colorOutline)
	}

	for _, m := range markers {
		fill := colorNoData
		if v, ok := values[m.Station.ID]; ok {
			fill = scale.Color(v)
		}
		drawMarker(frame, int(m.X), int(m.Y), fill)
		off, ok := e.labelOffsets[m.Station.ID]
		if !ok {
			off = defaultLabelOffset
		}
		drawText(frame, e.labelFace, int(m.X+off[0]), int(m.Y+off[1]), m.Station.Name, colorLabel)
	}

	e.drawLegendLocked(frame, varCfg, scale, tp)

	if painted == 0 && len(e.stations) > 0 {
		drawCenteredText(frame, e.labelFace, "no data for this date", colorMessage)
	}

	e.frame = frame
	e.markers = markers
	e.dirty = false
	e.frameStale = true
	e.passes++
}

// scaleForLocked builds the active color scale: observed data range when the
// loader provided one, else the variable's default range.
func (e *Engine) scaleForLocked(varCfg VariableConfig) ColorScale {
	rng := varCfg.DefaultRange
	if r, ok := e.dataRanges[varCfg.Key]; ok && r[1] > r[0] {
		rng = r
	}
	return NewColorScale(varCfg.Interpolator, rng[0], rng[1])
}

// buildPointsLocked projects every station through the live viewport and
// partitions the ones with readings by region assignment. Stations with
// missing or malformed coordinates are skipped individually; stations
// without a reading become no-data markers but contribute no DataPoint.
func (e *Engine) buildPointsLocked(values StationDataValues, scale ColorScale, tp string, varCfg VariableConfig) (map[string][]DataPoint, []markerHit) {
	points := make(map[string][]DataPoint)
	var markers []markerHit
	for _, st := range e.stations {
		if !st.HasCoords() {
			continue
		}
		lon, lat := *st.Longitude, *st.Latitude
		if math.IsNaN(lon) || math.IsNaN(lat) {
			log.Printf("[stations] skipping %s: malformed coordinates", st.ID)
			continue
		}
		x, y := e.vp.Project(lon, lat)

		m := markerHit{X: x, Y: y, Station: st}
		if v, ok := values[st.ID]; ok {
			m.Tooltip = fmt.Sprintf("%s: %s", st.Name, varCfg.FormatValue(v))
			if region, ok := e.stationRegions[st.ID]; ok {
				points[region] = append(points[region], DataPoint{X: x, Y: y, Value: v})
			}
		} else {
			m.Tooltip = fmt.Sprintf("%s: No data", st.Name)
		}
		if byStation, ok := e.temperature[tp]; ok {
			if t, ok := byStation[st.ID]; ok {
				m.TempLine = fmt.Sprintf("temperature: %.1f °C", t)
			}
		}
		markers = append(markers, m)
	}
	return points, markers
}

// drawLegendLocked paints the color ramp with its domain ends and the
// current selection under it.
func (e *Engine) drawLegendLocked(frame *image.RGBA, varCfg VariableConfig, scale ColorScale, tp string) {
	if e.labelFace == nil {
		return
	}
	const barW, barH = 160, 10
	w, h := frame.Bounds().Dx(), frame.Bounds().Dy()
	x0, y0 := w-barW-24, h-52
	if x0 < 0 || y0 < 0 {
		return
	}
	for i := 0; i < barW; i++ {
		c := scale.Interp(float64(i) / float64(barW-1))
		for j := 0; j < barH; j++ {
			off := (y0+j)*frame.Stride + (x0+i)*4
			frame.Pix[off], frame.Pix[off+1], frame.Pix[off+2], frame.Pix[off+3] = c.R, c.G, c.B, 255
		}
	}
	drawText(frame, e.labelFace, x0, y0+barH+14, fmt.Sprintf("%.*f", varCfg.Precision, scale.Min), colorMessage)
	maxLabel := fmt.Sprintf("%.*f", varCfg.Precision, scale.Max)
	maxW := font.MeasureString(e.labelFace, maxLabel).Ceil()
	drawText(frame, e.labelFace, x0+barW-maxW, y0+barH+14, maxLabel, colorMessage)
	title := fmt.Sprintf("%s (%s)", varCfg.Label, varCfg.Unit)
	if tp != "" {
		title = fmt.Sprintf("%s — %s", title, tp)
	}
	drawText(frame, e.labelFace, x0, y0-6, title, colorMessage)
}

// Update implements ebiten.Game: it handles input and, when anything marked
// the state dirty, runs exactly one synchronous render pass. If multiple
// triggers landed since the last pass, only the latest state is rendered;
// intermediate animation frames are dropped, never queued.
func (e *Engine) Update() error {
	e.handleInput()

	e.mu.Lock()
	if e.dirty {
		e.renderPassLocked()
	}
	e.mu.Unlock()
	return nil
}

func (e *Engine) handleInput() {
	// Wheel zoom about the view center.
	if _, wy := ebiten.Wheel(); wy != 0 {
		e.vp.Zoom(1 + wy*0.1)
		e.MarkDirty()
	}

	// Drag pan.
	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if e.dragging && (x != e.lastMouseX || y != e.lastMouseY) {
			e.vp.Pan(float64(x-e.lastMouseX), float64(y-e.lastMouseY))
			e.MarkDirty()
		}
		e.dragging = true
		e.lastMouseX, e.lastMouseY = x, y
	} else {
		e.dragging = false
	}

	// Space toggles playback; scrubbing with the arrow keys cancels it.
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if e.playback.Playing() {
			e.playback.Stop()
		} else {
			e.playback.Start(e.PlaybackInterval)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		e.playback.SetIndex(e.playback.Index() + 1)
		e.MarkDirty()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		e.playback.SetIndex(e.playback.Index() - 1)
		e.MarkDirty()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		e.CycleVariable()
	}
}

// Draw implements ebiten.Game: it uploads the latest composited frame and
// draws the GPU-side extras (HUD line, hover tooltip) on top.
func (e *Engine) Draw(screen *ebiten.Image) {
	e.mu.Lock()
	if e.frame != nil && e.frameStale {
		b := e.frame.Bounds()
		if e.display == nil || e.display.Bounds().Dx() != b.Dx() || e.display.Bounds().Dy() != b.Dy() {
			e.display = ebiten.NewImage(b.Dx(), b.Dy())
		}
		e.display.WritePixels(e.frame.Pix)
		e.frameStale = false
	}
	display := e.display
	markers := e.markers
	tp := e.currentTimePointLocked()
	varCfg := e.variables[e.varIdx]
	playing := e.playback.Playing()
	e.mu.Unlock()

	if display != nil {
		screen.DrawImage(display, nil)
	}
	e.drawHUD(screen, tp, varCfg, playing)
	e.drawTooltip(screen, markers)
}

func (e *Engine) drawHUD(screen *ebiten.Image, tp string, varCfg VariableConfig, playing bool) {
	if e.fontSource == nil {
		return
	}
	state := "paused"
	if playing {
		state = "playing"
	}
	if tp == "" {
		tp = "no data"
	}
	line := fmt.Sprintf("%s · %s · %s  (space: play, ←/→: scrub, tab: variable)", tp, varCfg.Label, state)
	face := &text.GoTextFace{Source: e.fontSource, Size: 14}
	op := &text.DrawOptions{}
	op.GeoM.Translate(16, float64(e.Height)-28)
	op.ColorScale.Scale(1, 1, 1, 0.8)
	text.Draw(screen, line, face, op)
}

// drawTooltip shows "name: value unit" (plus the display-only temperature
// line when one exists) for the marker under the cursor.
func (e *Engine) drawTooltip(screen *ebiten.Image, markers []markerHit) {
	if e.fontSource == nil {
		return
	}
	cx, cy := ebiten.CursorPosition()
	const hitRadius = markerRadius + 3
	for _, m := range markers {
		dx, dy := float64(cx)-m.X, float64(cy)-m.Y
		if dx*dx+dy*dy > hitRadius*hitRadius {
			continue
		}
		face := &text.GoTextFace{Source: e.fontSource, Size: 14}
		lines := []string{m.Tooltip}
		if m.TempLine != "" {
			lines = append(lines, m.TempLine)
		}
		boxW := 0.0
		for _, l := range lines {
			if w, _ := text.Measure(l, face, 0); w > boxW {
				boxW = w
			}
		}
		boxH := float64(len(lines))*20 + 10
		bx, by := m.X+12, m.Y-boxH-4
		vector.DrawFilledRect(screen, float32(bx-6), float32(by-4), float32(boxW+12), float32(boxH), color.RGBA{0, 0, 0, 190}, false)
		vector.StrokeRect(screen, float32(bx-6), float32(by-4), float32(boxW+12), float32(boxH), 1, color.RGBA{36, 42, 53, 255}, false)
		for i, l := range lines {
			op := &text.DrawOptions{}
			op.GeoM.Translate(bx, by+float64(i)*20)
			op.ColorScale.Scale(1, 1, 1, 0.9)
			text.Draw(screen, l, face, op)
		}
		return
	}
}

// Layout implements ebiten.Game with a fixed internal resolution; the window
// scales the result.
func (e *Engine) Layout(outsideWidth, outsideHeight int) (int, int) {
	return e.Width, e.Height
}

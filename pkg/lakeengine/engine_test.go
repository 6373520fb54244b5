package lakeengine

import (
	"testing"
)

func f64(v float64) *float64 { return &v }

func testStations() []Station {
	return []Station{
		{ID: "SJ-1", Name: "Spiral Jetty", Longitude: f64(-112.65), Latitude: f64(41.55), Source: CoordsGeom},
		{ID: "GSL-BR", Name: "Bear River Bay", Longitude: f64(-112.75), Latitude: f64(41.22), Source: CoordsGeom},
		{ID: "AC3", Name: "Antelope Causeway", Longitude: f64(-112.55), Latitude: f64(40.85), Source: CoordsUTM},
		{ID: "AIS", Name: "Antelope Island", Longitude: f64(-112.55), Latitude: f64(41.05), Source: CoordsDefault},
	}
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(640, 480)
	t.Cleanup(e.Stop)
	e.SetGeometry(testGeometry())
	e.SetStations(testStations())
	e.SetData(
		[]string{"2023-01", "2023-02"},
		map[string]map[string]StationDataValues{
			"density": {
				"2023-01": {"SJ-1": 1.21, "GSL-BR": 1.19, "AC3": 1.09},
				"2023-02": {},
			},
			"salinity": {
				"2023-01": {"SJ-1": 310, "GSL-BR": 290, "AC3": 115},
			},
		},
		map[string]map[string]float64{"2023-01": {"SJ-1": 4.5}},
		map[string][2]float64{"density": {1.05, 1.25}},
	)
	return e
}

func TestRenderFrameRequiresGeometry(t *testing.T) {
	e := NewEngine(640, 480)
	defer e.Stop()
	if frame := e.RenderFrame(); frame != nil {
		t.Error("RenderFrame produced a frame before any geometry was loaded")
	}
}

func TestRenderFramePipeline(t *testing.T) {
	e := testEngine(t)

	frame := e.RenderFrame()
	if frame == nil {
		t.Fatal("RenderFrame returned nil with geometry and data loaded")
	}
	if frame.Bounds().Dx() != 640 || frame.Bounds().Dy() != 480 {
		t.Errorf("Frame size = %v; want 640x480", frame.Bounds())
	}

	// The north arm holds two stations with readings, so its interior must
	// not be bare background anymore.
	x, y := e.Viewport().Project(-112.7, 41.45)
	if frame.RGBAAt(int(x), int(y)) == colorBackground {
		t.Error("North arm interior is still background; heatmap did not paint")
	}

	// AIS has no reading this month: its marker fills with the neutral
	// no-data color, not a scale color.
	mx, my := e.Viewport().Project(-112.55, 41.05)
	if frame.RGBAAt(int(mx), int(my)) != colorNoData {
		t.Errorf("No-data marker color = %v; want %v", frame.RGBAAt(int(mx), int(my)), colorNoData)
	}
}

func TestRenderFrameRepaintIdentical(t *testing.T) {
	e := testEngine(t)
	first := e.RenderFrame()
	second := e.RenderFrame()
	if first == second {
		t.Fatal("Frame buffer was reused across passes")
	}
	if len(first.Pix) != len(second.Pix) {
		t.Fatal("Frame sizes differ")
	}
	for i := range first.Pix {
		if first.Pix[i] != second.Pix[i] {
			t.Fatal("Identical state produced different frames")
		}
	}
}

func TestRenderFrameEmptyTimePoint(t *testing.T) {
	e := testEngine(t)

	// 2023-02 carries an empty value map: every marker goes neutral and the
	// pass still completes.
	e.Playback().SetIndex(1)
	frame := e.RenderFrame()
	if frame == nil {
		t.Fatal("RenderFrame returned nil for an empty slice")
	}
	// Sample the markers that sit clear of the centered message text.
	for _, st := range testStations() {
		if st.ID == "GSL-BR" {
			continue
		}
		x, y := e.Viewport().Project(*st.Longitude, *st.Latitude)
		if got := frame.RGBAAt(int(x), int(y)); got != colorNoData {
			t.Errorf("Marker for %s = %v; want neutral %v", st.ID, got, colorNoData)
		}
	}
}

func TestSetVariable(t *testing.T) {
	e := testEngine(t)
	if err := e.SetVariable("salinity"); err != nil {
		t.Fatalf("SetVariable(salinity) failed: %v", err)
	}
	if e.Variable().Key != "salinity" {
		t.Errorf("Active variable = %q; want salinity", e.Variable().Key)
	}
	if err := e.SetVariable("turbidity"); err == nil {
		t.Error("SetVariable accepted an unknown key")
	}
	if e.Variable().Key != "salinity" {
		t.Error("Failed SetVariable changed the active variable")
	}
}

func TestCycleVariableWraps(t *testing.T) {
	e := testEngine(t)
	start := e.Variable().Key
	n := len(DefaultVariables())
	for i := 0; i < n; i++ {
		e.CycleVariable()
	}
	if e.Variable().Key != start {
		t.Errorf("Cycling %d times landed on %q; want %q", n, e.Variable().Key, start)
	}
}

func TestCurrentTimePoint(t *testing.T) {
	e := testEngine(t)
	if tp := e.CurrentTimePoint(); tp != "2023-01" {
		t.Errorf("CurrentTimePoint = %q; want 2023-01", tp)
	}
	e.Playback().SetIndex(5) // clamps to the last index
	if tp := e.CurrentTimePoint(); tp != "2023-02" {
		t.Errorf("CurrentTimePoint after scrub = %q; want 2023-02", tp)
	}

	empty := NewEngine(100, 100)
	defer empty.Stop()
	if tp := empty.CurrentTimePoint(); tp != "" {
		t.Errorf("CurrentTimePoint without data = %q; want empty", tp)
	}
}

func TestScaleForPrefersObservedRange(t *testing.T) {
	e := testEngine(t)
	e.mu.Lock()
	scale := e.scaleForLocked(e.variables[0])
	e.mu.Unlock()
	if scale.Min != 1.05 || scale.Max != 1.25 {
		t.Errorf("Density scale domain = [%f, %f]; want observed [1.05, 1.25]", scale.Min, scale.Max)
	}

	// Salinity has no observed range and falls back to the default.
	if err := e.SetVariable("salinity"); err != nil {
		t.Fatal(err)
	}
	e.mu.Lock()
	scale = e.scaleForLocked(e.variables[e.varIdx])
	e.mu.Unlock()
	def := DefaultVariables()[1].DefaultRange
	if scale.Min != def[0] || scale.Max != def[1] {
		t.Errorf("Salinity scale domain = [%f, %f]; want default %v", scale.Min, scale.Max, def)
	}
}

func TestBuildPointsPartition(t *testing.T) {
	e := testEngine(t)
	e.mu.Lock()
	varCfg := e.variables[0]
	values := e.allData["density"]["2023-01"]
	scale := e.scaleForLocked(varCfg)
	points, markers := e.buildPointsLocked(values, scale, "2023-01", varCfg)
	e.mu.Unlock()

	if len(points[RegionNorth]) != 2 {
		t.Errorf("North points = %d; want 2", len(points[RegionNorth]))
	}
	if len(points[RegionSouth]) != 1 {
		t.Errorf("South points = %d; want 1 (AIS has no reading)", len(points[RegionSouth]))
	}
	if len(markers) != 4 {
		t.Fatalf("Markers = %d; want one per station with coordinates", len(markers))
	}

	byID := map[string]markerHit{}
	for _, m := range markers {
		byID[m.Station.ID] = m
	}
	if byID["AIS"].Tooltip != "Antelope Island: No data" {
		t.Errorf("AIS tooltip = %q", byID["AIS"].Tooltip)
	}
	if byID["SJ-1"].Tooltip != "Spiral Jetty: 1.210 g/cm³" {
		t.Errorf("SJ-1 tooltip = %q", byID["SJ-1"].Tooltip)
	}
	if byID["SJ-1"].TempLine != "temperature: 4.5 °C" {
		t.Errorf("SJ-1 temperature line = %q", byID["SJ-1"].TempLine)
	}
	if byID["AC3"].TempLine != "" {
		t.Errorf("AC3 has a temperature line %q without a reading", byID["AC3"].TempLine)
	}
}

func TestBuildPointsSkipsMissingCoords(t *testing.T) {
	e := testEngine(t)
	stations := append(testStations(), Station{ID: "RD1", Name: "Black Rock", Source: CoordsNone})
	e.SetStations(stations)

	e.mu.Lock()
	varCfg := e.variables[0]
	_, markers := e.buildPointsLocked(e.allData["density"]["2023-01"], e.scaleForLocked(varCfg), "2023-01", varCfg)
	e.mu.Unlock()

	for _, m := range markers {
		if m.Station.ID == "RD1" {
			t.Fatal("Station without coordinates produced a marker")
		}
	}
}

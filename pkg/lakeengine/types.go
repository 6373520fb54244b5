// Package lakeengine renders time-animated chemistry heatmaps for lake
// monitoring stations: sparse point measurements are interpolated into a
// continuous color field per lake arm, clipped to the arm's outline and
// composited with station markers on top of the lake geometry.
package lakeengine

import "fmt"

// CoordsSource records where a station's coordinates came from during
// normalization, in decreasing order of trust.
type CoordsSource int

const (
	CoordsNone CoordsSource = iota
	CoordsGeom
	CoordsUTM
	CoordsDefault
	CoordsMock
)

func (s CoordsSource) String() string {
	switch s {
	case CoordsGeom:
		return "geom"
	case CoordsUTM:
		return "utm"
	case CoordsDefault:
		return "default"
	case CoordsMock:
		return "mock"
	default:
		return "none"
	}
}

// Station is one monitoring site. Longitude/Latitude are nil when the source
// record carried no usable position; such stations are skipped at render time
// but stay in the list so their readings still show up in tooltips elsewhere.
type Station struct {
	ID        string
	Name      string
	Longitude *float64
	Latitude  *float64
	Source    CoordsSource
}

// HasCoords reports whether the station can be projected at all.
func (s Station) HasCoords() bool {
	return s.Longitude != nil && s.Latitude != nil
}

// VariableConfig describes one selectable measurement variable.
type VariableConfig struct {
	Key          string
	Label        string
	Unit         string
	Precision    int
	Interpolator string
	DefaultRange [2]float64
}

// FormatValue renders a reading for labels and tooltips, e.g. "1.085 g/cm³".
func (v VariableConfig) FormatValue(val float64) string {
	return fmt.Sprintf("%.*f %s", v.Precision, val, v.Unit)
}

// DefaultVariables matches the measurement program: density and salinity are
// interpolated, temperature is display-only (tooltips, never a heatmap).
func DefaultVariables() []VariableConfig {
	return []VariableConfig{
		{Key: "density", Label: "Density", Unit: "g/cm³", Precision: 3, Interpolator: "viridis", DefaultRange: [2]float64{1.00, 1.25}},
		{Key: "salinity", Label: "Salinity", Unit: "g/L", Precision: 1, Interpolator: "plasma", DefaultRange: [2]float64{0, 350}},
	}
}

// StationDataValues maps station ID to its reading for one
// (variable, timePoint) pair. A missing key means no reading was taken; it is
// never zero-filled, and renderers must treat absence differently from 0.
type StationDataValues map[string]float64

// DataPoint is a station's screen-projected position plus its current value.
// DataPoints are rebuilt from the live viewport on every render pass and are
// never cached across passes: the lon/lat to pixel mapping moves with the view.
type DataPoint struct {
	X, Y  float64
	Value float64
}

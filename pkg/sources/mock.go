package sources

import (
	"fmt"
	"math"

	"github.com/limnoviz/lakemap/pkg/lakeengine"
)

// mockStations mirrors the monitoring program's site list. Coordinates come
// from the default table; every mock station is tagged CoordsMock so the UI
// can tell synthetic positions from real ones.
var mockStations = []struct {
	id, name string
}{
	{"LVG4", "Little Valley Harbor"},
	{"SJ-1", "Spiral Jetty"},
	{"RT4", "Rozel Point"},
	{"GSL-BR", "Bear River Bay"},
	{"RD2", "Saltair Boat Harbor"},
	{"AC3", "Antelope Causeway"},
	{"AS2", "Antelope Island South"},
	{"FB2", "Fremont Bay"},
	{"RD1", "Black Rock"},
	{"AIS", "Antelope Island"},
	{"GSL-FAR", "Farmington Bay Outflow"},
}

// MockDataset builds a fully deterministic offline dataset: two years of
// monthly density, salinity and temperature readings with a seasonal cycle
// and a fixed north/south split. No randomness, so renders and tests are
// reproducible.
func MockDataset() *Dataset {
	ds := &Dataset{
		AllData: map[string]map[string]lakeengine.StationDataValues{
			"density":  {},
			"salinity": {},
		},
		Temperature:   map[string]map[string]float64{},
		DataRanges:    map[string][2]float64{},
		UsingMockData: true,
	}

	for _, ms := range mockStations {
		c := defaultCoords[ms.id]
		lon, lat := c[0], c[1]
		ds.Stations = append(ds.Stations, lakeengine.Station{
			ID:        ms.id,
			Name:      ms.name,
			Longitude: &lon,
			Latitude:  &lat,
			Source:    lakeengine.CoordsMock,
		})
	}

	northIDs := map[string]bool{"LVG4": true, "SJ-1": true, "RT4": true, "GSL-BR": true}

	densMin, densMax := math.Inf(1), math.Inf(-1)
	salMin, salMax := math.Inf(1), math.Inf(-1)
	for year := 2023; year <= 2024; year++ {
		for month := 1; month <= 12; month++ {
			tp := fmt.Sprintf("%04d-%02d", year, month)
			ds.TimePoints = append(ds.TimePoints, tp)

			density := lakeengine.StationDataValues{}
			salinity := lakeengine.StationDataValues{}
			temps := map[string]float64{}
			season := math.Sin(float64(month-4) / 12 * 2 * math.Pi)
			for i, ms := range mockStations {
				// The north arm sits behind the causeway and runs markedly
				// denser and saltier than the south arm.
				base := 1.10
				salBase := 120.0
				if northIDs[ms.id] {
					base = 1.21
					salBase = 300.0
				}
				jitter := float64(i%5) * 0.004
				density[ms.id] = base + 0.01*season + jitter
				salinity[ms.id] = salBase + 12*season + jitter*800
				temps[ms.id] = 11 + 10*season

				densMin = math.Min(densMin, density[ms.id])
				densMax = math.Max(densMax, density[ms.id])
				salMin = math.Min(salMin, salinity[ms.id])
				salMax = math.Max(salMax, salinity[ms.id])
			}
			// One station per summer month goes unsampled, exercising the
			// "no reading" path distinctly from a zero value.
			if month == 7 {
				delete(density, "AIS")
				delete(salinity, "AIS")
			}
			ds.AllData["density"][tp] = density
			ds.AllData["salinity"][tp] = salinity
			ds.Temperature[tp] = temps
		}
	}
	ds.DataRanges["density"] = [2]float64{densMin, densMax}
	ds.DataRanges["salinity"] = [2]float64{salMin, salMax}
	return ds
}

package sources

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/limnoviz/lakemap/pkg/lakeengine"
	"github.com/limnoviz/lakemap/pkg/utils"
)

// Dataset is the normalized output of the data layer: everything the render
// core needs for one session.
type Dataset struct {
	Stations   []lakeengine.Station
	TimePoints []string

	// AllData maps variable key -> "YYYY-MM" -> station values. Exactly one
	// value map exists per (variable, timePoint); stations without a reading
	// are simply absent from it.
	AllData map[string]map[string]lakeengine.StationDataValues

	// Temperature maps "YYYY-MM" -> station -> °C. Display-only.
	Temperature map[string]map[string]float64

	// DataRanges holds the observed [min, max] per variable.
	DataRanges map[string][2]float64

	UsingMockData bool
}

// sitePayload is the wire shape of the readings endpoint.
type sitePayload struct {
	Sites []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Geometry *struct {
			Type        string    `json:"type"`
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		UTM *struct {
			Easting  float64 `json:"easting"`
			Northing float64 `json:"northing"`
			Zone     int     `json:"zone"`
			Southern bool    `json:"southern"`
		} `json:"utm"`
	} `json:"sites"`
	Months      []string                                 `json:"months"`
	Readings    map[string]map[string]map[string]float64 `json:"readings"`
	Temperature map[string]map[string]float64            `json:"temperature"`
}

// LoadSiteAndTempData fetches and normalizes the station readings dataset.
func LoadSiteAndTempData(baseURL string, cache *utils.DatasetCache) (*Dataset, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	payload, err := utils.CachedGet(baseURL+readingsPath, cache, "[readings]")
	if err != nil {
		return nil, err
	}
	var p sitePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("parsing readings payload: %w", err)
	}
	return normalize(&p), nil
}

// LoadOrMock falls back to the deterministic mock dataset when the upstream
// service cannot be reached, so the viewer still runs offline.
func LoadOrMock(baseURL string, cache *utils.DatasetCache) *Dataset {
	ds, err := LoadSiteAndTempData(baseURL, cache)
	if err == nil {
		return ds
	}
	log.Printf("[readings] Upstream readings unavailable (%v); using mock data", err)
	return MockDataset()
}

// normalize resolves station coordinates (geometry, then UTM, then the
// default table, then none), orders and dedups the month keys, converts the
// readings into per-slice value maps and derives the observed data ranges.
func normalize(p *sitePayload) *Dataset {
	ds := &Dataset{
		AllData:     map[string]map[string]lakeengine.StationDataValues{},
		Temperature: p.Temperature,
		DataRanges:  map[string][2]float64{},
	}
	if ds.Temperature == nil {
		ds.Temperature = map[string]map[string]float64{}
	}

	for _, site := range p.Sites {
		st := lakeengine.Station{ID: site.ID, Name: site.Name, Source: lakeengine.CoordsNone}
		switch {
		case site.Geometry != nil && len(site.Geometry.Coordinates) >= 2 &&
			!math.IsNaN(site.Geometry.Coordinates[0]) && !math.IsNaN(site.Geometry.Coordinates[1]):
			lon, lat := site.Geometry.Coordinates[0], site.Geometry.Coordinates[1]
			st.Longitude, st.Latitude = &lon, &lat
			st.Source = lakeengine.CoordsGeom
		case site.UTM != nil && site.UTM.Zone > 0:
			lon, lat := utmToLonLat(site.UTM.Easting, site.UTM.Northing, site.UTM.Zone, site.UTM.Southern)
			st.Longitude, st.Latitude = &lon, &lat
			st.Source = lakeengine.CoordsUTM
		default:
			if c, ok := defaultCoords[site.ID]; ok {
				lon, lat := c[0], c[1]
				st.Longitude, st.Latitude = &lon, &lat
				st.Source = lakeengine.CoordsDefault
			}
		}
		ds.Stations = append(ds.Stations, st)
	}

	monthSet := map[string]bool{}
	for _, m := range p.Months {
		if validMonth(m) {
			monthSet[m] = true
		}
	}
	for variable, byMonth := range p.Readings {
		slices := map[string]lakeengine.StationDataValues{}
		min, max := math.Inf(1), math.Inf(-1)
		for month, byStation := range byMonth {
			if !validMonth(month) {
				log.Printf("[readings] dropping %s slice with bad month key %q", variable, month)
				continue
			}
			monthSet[month] = true
			values := lakeengine.StationDataValues{}
			for id, v := range byStation {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					continue
				}
				values[id] = v
				min = math.Min(min, v)
				max = math.Max(max, v)
			}
			slices[month] = values
		}
		ds.AllData[variable] = slices
		if min <= max {
			ds.DataRanges[variable] = [2]float64{min, max}
		}
	}

	for m := range monthSet {
		ds.TimePoints = append(ds.TimePoints, m)
	}
	sort.Strings(ds.TimePoints)
	return ds
}

// validMonth accepts "YYYY-MM" keys only.
func validMonth(m string) bool {
	if len(m) != 7 || m[4] != '-' {
		return false
	}
	for i, r := range m {
		if i == 4 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// defaultCoords backs stations whose source records carry no usable
// position. Keyed by station ID.
var defaultCoords = map[string][2]float64{
	"LVG4":    {-112.85, 41.40},
	"SJ-1":    {-112.65, 41.55},
	"RT4":     {-112.60, 41.30},
	"GSL-BR":  {-112.75, 41.22},
	"RD2":     {-112.21, 40.75},
	"AC3":     {-112.55, 40.85},
	"AS2":     {-112.40, 40.95},
	"FB2":     {-112.30, 41.05},
	"RD1":     {-112.15, 40.80},
	"AIS":     {-112.55, 41.05},
	"GSL-FAR": {-112.75, 40.95},
}

// utmToLonLat converts WGS84 UTM coordinates to lon/lat degrees.
func utmToLonLat(easting, northing float64, zone int, southern bool) (lon, lat float64) {
	const (
		a  = 6378137.0
		f  = 1 / 298.257223563
		k0 = 0.9996
	)
	e2 := f * (2 - f)
	ep2 := e2 / (1 - e2)

	x := easting - 500000
	y := northing
	if southern {
		y -= 10000000
	}

	m := y / k0
	mu := m / (a * (1 - e2/4 - 3*e2*e2/64 - 5*e2*e2*e2/256))

	e1 := (1 - math.Sqrt(1-e2)) / (1 + math.Sqrt(1-e2))
	phi1 := mu +
		(3*e1/2-27*e1*e1*e1/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*e1*e1*e1*e1/32)*math.Sin(4*mu) +
		(151*e1*e1*e1/96)*math.Sin(6*mu)

	sinPhi1, cosPhi1 := math.Sin(phi1), math.Cos(phi1)
	tanPhi1 := sinPhi1 / cosPhi1

	c1 := ep2 * cosPhi1 * cosPhi1
	t1 := tanPhi1 * tanPhi1
	n1 := a / math.Sqrt(1-e2*sinPhi1*sinPhi1)
	r1 := a * (1 - e2) / math.Pow(1-e2*sinPhi1*sinPhi1, 1.5)
	d := x / (n1 * k0)

	latRad := phi1 - (n1*tanPhi1/r1)*(d*d/2-
		(5+3*t1+10*c1-4*c1*c1-9*ep2)*d*d*d*d/24+
		(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*d*d*d*d*d*d/720)
	lonOrigin := float64((zone-1)*6 - 180 + 3)
	lonRad := (d - (1+2*t1+c1)*d*d*d/6 +
		(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*d*d*d*d*d/120) / cosPhi1

	lat = latRad * 180 / math.Pi
	lon = lonOrigin + lonRad*180/math.Pi
	return lon, lat
}

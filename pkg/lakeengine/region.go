package lakeengine

import (
	"log"
	"strings"

	geojson "github.com/paulmach/go.geojson"
)

// Region is one named sub-polygon of the lake (an "arm") treated as an
// independent interpolation domain. Rings are GeoJSON-style lon/lat rings;
// multiple outer rings are allowed for multipolygon arms. An empty ID marks
// an unmatched feature: its outline still draws but it is never rasterized.
type Region struct {
	ID     string
	Name   string
	Rings  [][][]float64
	Bounds GeoBounds
}

// FeatureProps is the explicit shape read out of a GeoJSON property bag. The
// layer name is the only required field; everything else stays in Extra.
type FeatureProps struct {
	LayerName string
	Extra     map[string]interface{}
}

// PropsFromFeature extracts FeatureProps, trying the property keys the lake
// geometry sources actually use for the feature name.
func PropsFromFeature(f *geojson.Feature) FeatureProps {
	p := FeatureProps{Extra: map[string]interface{}{}}
	for k, v := range f.Properties {
		p.Extra[k] = v
	}
	for _, key := range []string{"layer", "Layer", "name", "Name"} {
		if s, err := f.PropertyString(key); err == nil && s != "" {
			p.LayerName = s
			break
		}
	}
	return p
}

// Slugify derives a stable clip identifier from a feature name: lowercase,
// runs of non-alphanumerics become single hyphens, edges trimmed.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // swallow leading separators
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// RegionMatcher binds a region ID to a predicate over feature slugs. The
// matcher table is explicit configuration resolved per geometry load, not a
// substring scan buried at call sites.
type RegionMatcher struct {
	ID    string
	Match func(slug string) bool
}

// RegionNorth and RegionSouth are the two interpolation domains of the lake.
const (
	RegionNorth = "north-arm"
	RegionSouth = "south-arm"
)

// DefaultMatchers identifies the north and south arms by slug substring.
func DefaultMatchers() []RegionMatcher {
	return []RegionMatcher{
		{ID: RegionNorth, Match: func(slug string) bool { return strings.Contains(slug, "north") }},
		{ID: RegionSouth, Match: func(slug string) bool { return strings.Contains(slug, "south") }},
	}
}

// ResolveRegions maps polygonal features to regions through the matcher
// table. The result is deterministic for a given input and is recomputed on
// every geometry load, since reloaded source data may reshape the arms.
// Features that match no matcher are logged and kept with an empty ID so
// their outlines still render; non-polygonal features are dropped.
func ResolveRegions(fc *geojson.FeatureCollection, matchers []RegionMatcher) []Region {
	if fc == nil {
		return nil
	}
	var regions []Region
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		var rings [][][]float64
		switch {
		case f.Geometry.IsPolygon():
			rings = f.Geometry.Polygon
		case f.Geometry.IsMultiPolygon():
			for _, poly := range f.Geometry.MultiPolygon {
				rings = append(rings, poly...)
			}
		default:
			continue
		}
		if len(rings) == 0 {
			continue
		}

		props := PropsFromFeature(f)
		slug := Slugify(props.LayerName)
		r := Region{Name: props.LayerName, Rings: rings, Bounds: ringBounds(rings)}
		for _, m := range matchers {
			if m.Match(slug) {
				r.ID = m.ID
				break
			}
		}
		if r.ID == "" {
			log.Printf("[regions] no matcher for feature %q (slug %q); outline only", props.LayerName, slug)
		}
		regions = append(regions, r)
	}
	return regions
}

func ringBounds(rings [][][]float64) GeoBounds {
	b := emptyBounds()
	for _, ring := range rings {
		for _, pt := range ring {
			if len(pt) < 2 {
				continue
			}
			b.Extend(pt[0], pt[1])
		}
	}
	return b
}

// CombinedBounds unions the bounds of all regions, for viewport fitting.
func CombinedBounds(regions []Region) GeoBounds {
	b := emptyBounds()
	for _, r := range regions {
		if r.Bounds.Empty() {
			continue
		}
		b.Extend(r.Bounds.MinLon, r.Bounds.MinLat)
		b.Extend(r.Bounds.MaxLon, r.Bounds.MaxLat)
	}
	return b
}

// DefaultStationRegions is the fixed station-to-arm assignment. Region
// membership is configuration, never a nearest-polygon test: a station on
// the causeway still belongs to exactly one arm's chemistry.
func DefaultStationRegions() map[string]string {
	return map[string]string{
		"LVG4":    RegionNorth,
		"SJ-1":    RegionNorth,
		"RT4":     RegionNorth,
		"GSL-BR":  RegionNorth,
		"RD2":     RegionSouth,
		"AC3":     RegionSouth,
		"AS2":     RegionSouth,
		"FB2":     RegionSouth,
		"RD1":     RegionSouth,
		"AIS":     RegionSouth,
		"GSL-FAR": RegionSouth,
	}
}

// Package sources is the data-loading layer for the lake map: it fetches and
// normalizes the lake outline and the station readings, falling back to
// bundled geometry and a deterministic mock dataset when the upstream
// service is unreachable. The render core consumes its output and never
// talks to the network itself.
package sources

import (
	"fmt"
	"log"

	geojson "github.com/paulmach/go.geojson"

	"github.com/limnoviz/lakemap/pkg/utils"
)

// LoadGeoJSON fetches and parses the lake outline feature collection.
func LoadGeoJSON(baseURL string, cache *utils.DatasetCache) (*geojson.FeatureCollection, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	payload, err := utils.CachedGet(baseURL+geometryPath, cache, "[geojson]")
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(payload)
	if err != nil {
		return nil, fmt.Errorf("parsing lake geometry: %w", err)
	}
	return fc, nil
}

// LoadGeoJSONOrFallback tries the upstream geometry and falls back to the
// bundled outline, logging the downgrade.
func LoadGeoJSONOrFallback(baseURL string, cache *utils.DatasetCache) *geojson.FeatureCollection {
	fc, err := LoadGeoJSON(baseURL, cache)
	if err == nil {
		return fc
	}
	log.Printf("[geojson] Upstream geometry unavailable (%v); using bundled outline", err)
	return FallbackGeoJSON()
}

// FallbackGeoJSON parses the bundled lake outline. The asset is compiled in,
// so a parse failure is a build defect and panics.
func FallbackGeoJSON() *geojson.FeatureCollection {
	fc, err := geojson.UnmarshalFeatureCollection(fallbackGeoJSON)
	if err != nil {
		panic(fmt.Sprintf("bundled lake.geo.json is invalid: %v", err))
	}
	return fc
}

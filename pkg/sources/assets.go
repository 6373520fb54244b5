package sources

import _ "embed"

// Bundled lake outline, used when the geometry endpoint is unreachable so
// the viewer still has something to clip and draw against.
//
//go:embed data/lake.geo.json
var fallbackGeoJSON []byte

package sources

// DefaultBaseURL is the upstream data service. Both endpoints below are
// resolved against it; cmds expose a flag to point elsewhere.
const DefaultBaseURL = "https://data.limnoviz.dev/lake"

const (
	geometryPath = "/geometry/lake.geo.json"
	readingsPath = "/readings/sites.json"
)

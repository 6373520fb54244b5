// lake-render batch-renders one PNG frame per time point, the headless
// counterpart of the interactive viewer. Frames can be assembled into a
// video with e.g.:
// ffmpeg -framerate 6 -pattern_type glob -i 'frames/lake-*.png' lake.mp4
package main

import (
	"flag"
	"log"
	"os"

	"github.com/limnoviz/lakemap/pkg/lakeengine"
	"github.com/limnoviz/lakemap/pkg/sources"
	"github.com/limnoviz/lakemap/pkg/utils"
)

var (
	renderWidth  = flag.Int("width", 1280, "Frame width")
	renderHeight = flag.Int("height", 800, "Frame height")
	outDir       = flag.String("out", "frames", "Output directory for PNG frames")
	variableFlag = flag.String("variable", "density", "Variable to render (density or salinity)")
	baseURL      = flag.String("base-url", sources.DefaultBaseURL, "Data service base URL")
	cacheDir     = flag.String("cache-dir", "data/cache", "Dataset cache directory (empty disables caching)")
)

func main() {
	flag.Parse()
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	var cache *utils.DatasetCache
	if *cacheDir != "" {
		c, err := utils.OpenDatasetCache(*cacheDir)
		if err != nil {
			log.Printf("Dataset cache unavailable at %s: %v", *cacheDir, err)
		} else {
			cache = c
			defer c.Close()
		}
	}

	fc := sources.LoadGeoJSONOrFallback(*baseURL, cache)
	ds := sources.LoadOrMock(*baseURL, cache)
	if len(ds.TimePoints) == 0 {
		log.Fatal("No time points in dataset; nothing to render")
	}

	engine := lakeengine.NewEngine(*renderWidth, *renderHeight)
	engine.SetGeometry(fc)
	engine.SetStations(ds.Stations)
	engine.SetData(ds.TimePoints, ds.AllData, ds.Temperature, ds.DataRanges)
	if err := engine.SetVariable(*variableFlag); err != nil {
		log.Fatalf("Cannot render %q: %v", *variableFlag, err)
	}

	for i, tp := range ds.TimePoints {
		engine.Playback().SetIndex(i)
		frame := engine.RenderFrame()
		if frame == nil {
			log.Fatalf("Render pass produced no frame for %s (geometry missing?)", tp)
		}
		path, err := lakeengine.SaveFrame(frame, *outDir, tp)
		if err != nil {
			log.Fatalf("Saving frame for %s: %v", tp, err)
		}
		log.Printf("Rendered %s", path)
	}
	log.Printf("Done: %d frames in %s", len(ds.TimePoints), *outDir)
}

package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	_ "github.com/silbinarywolf/preferdiscretegpu"

	"github.com/limnoviz/lakemap/pkg/lakeengine"
	"github.com/limnoviz/lakemap/pkg/sources"
	"github.com/limnoviz/lakemap/pkg/utils"
)

var (
	renderWidth  = flag.Int("width", 1280, "Internal rendering width")
	renderHeight = flag.Int("height", 800, "Internal rendering height")
	windowWidth  = flag.Int("window-width", 1280, "Initial window width")
	windowHeight = flag.Int("window-height", 800, "Initial window height")
	baseURL      = flag.String("base-url", sources.DefaultBaseURL, "Data service base URL")
	cacheDir     = flag.String("cache-dir", "data/cache", "Dataset cache directory (empty disables caching)")
	tpsFlag      = flag.Int("tps", 30, "Ticks per second (engine updates)")
	intervalFlag = flag.Duration("interval", 800*time.Millisecond, "Playback step interval")
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
	if ds.UsingMockData {
		log.Println("Running on mock data; readings are synthetic.")
	}

	engine := lakeengine.NewEngine(*renderWidth, *renderHeight)
	engine.PlaybackInterval = *intervalFlag
	engine.SetGeometry(fc)
	engine.SetStations(ds.Stations)
	engine.SetData(ds.TimePoints, ds.AllData, ds.Temperature, ds.DataRanges)
	defer engine.Stop()

	ebiten.SetTPS(*tpsFlag)
	ebiten.SetWindowSize(*windowWidth, *windowHeight)
	ebiten.SetWindowTitle("Lake Chemistry Map")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(engine); err != nil {
		log.Fatal(err)
	}
}

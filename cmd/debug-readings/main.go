// debug-readings fetches the station dataset and prints a coverage summary,
// useful for checking what the service is serving without opening the viewer.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/limnoviz/lakemap/pkg/sources"
	"github.com/limnoviz/lakemap/pkg/utils"
)

var (
	baseURL  = flag.String("base-url", sources.DefaultBaseURL, "Data service base URL")
	cacheDir = flag.String("cache-dir", "", "Dataset cache directory (empty disables caching)")
	useMock  = flag.Bool("mock", false, "Inspect the built-in mock dataset instead of fetching")
)

func main() {
	flag.Parse()
	log.SetOutput(os.Stderr)

	var ds *sources.Dataset
	if *useMock {
		ds = sources.MockDataset()
	} else {
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
		var err error
		ds, err = sources.LoadSiteAndTempData(*baseURL, cache)
		if err != nil {
			log.Fatalf("Loading readings: %v", err)
		}
	}

	fmt.Printf("stations: %d\n", len(ds.Stations))
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOORDS\tLON\tLAT")
	for _, st := range ds.Stations {
		if st.HasCoords() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.4f\t%.4f\n", st.ID, st.Name, st.Source, *st.Longitude, *st.Latitude)
		} else {
			fmt.Fprintf(w, "%s\t%s\t%s\t-\t-\n", st.ID, st.Name, st.Source)
		}
	}
	w.Flush()

	if len(ds.TimePoints) > 0 {
		fmt.Printf("\ntime points: %d (%s .. %s)\n",
			len(ds.TimePoints), ds.TimePoints[0], ds.TimePoints[len(ds.TimePoints)-1])
	} else {
		fmt.Println("\ntime points: 0")
	}

	variables := make([]string, 0, len(ds.AllData))
	for v := range ds.AllData {
		variables = append(variables, v)
	}
	sort.Strings(variables)
	for _, v := range variables {
		total, present := 0, 0
		for _, tp := range ds.TimePoints {
			values := ds.AllData[v][tp]
			total += len(ds.Stations)
			present += len(values)
		}
		pct := 0.0
		if total > 0 {
			pct = 100 * float64(present) / float64(total)
		}
		if r, ok := ds.DataRanges[v]; ok {
			fmt.Printf("%-10s coverage %5.1f%%  range [%.3f, %.3f]\n", v, pct, r[0], r[1])
		} else {
			fmt.Printf("%-10s coverage %5.1f%%  range (none)\n", v, pct)
		}
	}
}

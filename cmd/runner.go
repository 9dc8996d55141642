package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"

	"github.com/Flokey82/genworldplanar"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
var memprofile = flag.String("memprofile", "", "write memory profile to this file")

var (
	configPath = flag.String("config", "", "JSON config file, defaults are used if empty")
	seed       = flag.String("seed", "", "seed, overrides the config (numbers are used as is, text is hashed)")
	width      = flag.Float64("width", 0, "map width, overrides the config")
	height     = flag.Float64("height", 0, "map height, overrides the config")
	outDir     = flag.String("out", "out", "output directory")
	layers     = flag.String("layers", strings.Join(genworldplanar.Layers, ","), "comma separated layers to render")
	scale      = flag.Float64("scale", 2, "pixels per map unit")
	format     = flag.String("format", "png", "image format, png or svg")
	geoJSON    = flag.Bool("geojson", false, "also export the cells, rivers and wind as GeoJSON")
	snapshot   = flag.Bool("snapshot", false, "also write a binary snapshot of the terrain")
)

func main() {
	flag.Parse()
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	cfg := genworldplanar.NewConfig()
	if *configPath != "" {
		var err error
		if cfg, err = genworldplanar.LoadConfig(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *seed != "" {
		cfg.Seed = genworldplanar.SeedFromString(*seed)
	}
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}

	t, err := genworldplanar.Generate(cfg)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(t.Stats())

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal(err)
	}
	if err := cfg.Save(filepath.Join(*outDir, "config.json")); err != nil {
		log.Fatal(err)
	}

	// One image per layer.
	for _, layer := range strings.Split(*layers, ",") {
		layer = strings.TrimSpace(layer)
		if layer == "" {
			continue
		}
		path := filepath.Join(*outDir, fmt.Sprintf("%d_%s.%s", cfg.Seed, layer, *format))
		switch *format {
		case "svg":
			err = t.ExportSVG(path, layer, *scale)
		default:
			err = t.ExportPNG(path, layer, *scale)
		}
		if err != nil {
			log.Fatal(err)
		}
		log.Println("Wrote", path)
	}

	if *geoJSON {
		exports := map[string]func() ([]byte, error){
			"cells":      t.GeoJSONCells,
			"rivers":     t.GeoJSONRivers,
			"wind":       t.GeoJSONWind,
			"coastlines": t.GeoJSONCoastlines,
		}
		for name, fn := range exports {
			data, err := fn()
			if err != nil {
				log.Fatal(err)
			}
			path := filepath.Join(*outDir, fmt.Sprintf("%d_%s.geojson", cfg.Seed, name))
			if err := os.WriteFile(path, data, 0o644); err != nil {
				log.Fatal(err)
			}
		}
	}

	if *snapshot {
		f, err := os.Create(filepath.Join(*outDir, fmt.Sprintf("%d.terrain", cfg.Seed)))
		if err != nil {
			log.Fatal(err)
		}
		if err := t.Write(f); err != nil {
			log.Fatal(err)
		}
		f.Close()
	}

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
		return
	}
}

// Package genworldplanar generates a planar terrain mesh and simulates
// simplified physical layers on top of it: plate tectonics and noise based
// elevation, solar temperature, pressure, prevailing winds, moisture
// transport, erosion and biomes.
package genworldplanar

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/Flokey82/genworldplanar/mesh"
	"github.com/Flokey82/genworldplanar/noise"
	"github.com/Flokey82/go_gens/vectors"
)

// FeatureType is the kind of connected region a cell belongs to.
type FeatureType int

// The feature types.
const (
	FeatureNone FeatureType = iota
	FeatureOcean
	FeatureLand
	FeatureLake
)

func (f FeatureType) String() string {
	switch f {
	case FeatureOcean:
		return "Ocean"
	case FeatureLand:
		return "Land"
	case FeatureLake:
		return "Lake"
	}
	return "None"
}

// IsWater returns true for oceans and lakes.
func (f FeatureType) IsWater() bool {
	return f == FeatureOcean || f == FeatureLake
}

// Wind is the wind state of a cell.
type Wind struct {
	Force    vectors.Vec2 // Wind force vector
	Velocity float64      // Length of Force
	Target   int          // Cell the wind blows into, -1 if none
}

// Downhill is the drainage state of a cell.
type Downhill struct {
	Target      int     // Lowest lower neighbor, -1 if none
	Slope       float64 // Elevation drop per distance towards Target
	Flux        float64 // Accumulated water throughflow
	ErosionRate float64
}

// Cell is a mesh cell together with all simulated attributes. Relations to
// other cells are indices into Terrain.Cells.
type Cell struct {
	*mesh.Cell
	Elevation            float64 // Normalized elevation [0, 1]
	Step                 float64 // Island mask value
	FeatureType          FeatureType
	FeatureIndex         int     // Index of the feature within its type
	Temperature          float64 // Normalized temperature [0, 1]
	RadiantTemperature   float64 // Temperature before the altitude lapse
	ElevationTemperature float64 // Altitude lapse component
	Latitude             float64 // Degrees, 90 at the top edge
	SolarInsolation      float64 // kWh/m²/day
	Pressure             float64 // kPa
	Wind                 Wind
	Moisture             float64 // Deposited moisture (mm)
	AbsoluteHumidity     float64 // g/m³
	RelativeHumidity     float64
	Downhill             Downhill
	IsRiver              bool
	Biome                int // Index into climate.LifeZones, -1 for water
	WhittakerBiome       int // genbiome Whittaker biome, -1 for water
}

// StageTiming records how long a pipeline stage took.
type StageTiming struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration"`
}

// Terrain is the result of a generation run.
type Terrain struct {
	Config   *Config       // Configuration used for the run
	Seed     int64         // Seed of Rand and the noise
	Rand     *rand.Rand    // Shared random source, consumed in stage order
	Mesh     *mesh.Mesh    // Terrain mesh
	Plates   *Plates       // Plates mesh, nil if plates are disabled
	Cells    []Cell        // Cells of the terrain mesh
	Features []Feature     // Connected features found by the last classification
	Stages   []StageTiming // Timings of the completed stages

	// WindIterations is the number of relaxation passes the wind stage
	// needed to reach every cell, or its iteration limit.
	WindIterations int

	noise *noise.Noise
}

// Generate runs the full pipeline for the given config. A nil config uses
// the defaults.
func Generate(cfg *Config) (*Terrain, error) {
	return GenerateWithProgress(cfg, nil)
}

// GenerateWithProgress is like Generate but calls progress after every
// completed stage.
func GenerateWithProgress(cfg *Config, progress func(StageTiming)) (*Terrain, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t, err := newTerrain(cfg, progress)
	if err != nil {
		return nil, err
	}
	if err := t.generate(progress); err != nil {
		return nil, err
	}
	return t, nil
}

func newTerrain(cfg *Config, progress func(StageTiming)) (*Terrain, error) {
	seed := int64(cfg.Seed)
	t := &Terrain{
		Config: cfg,
		Seed:   seed,
		Rand:   rand.New(rand.NewSource(seed)),
		noise:  noise.NewNoise(seed, cfg.Width, cfg.Height),
	}

	start := time.Now()
	m, err := mesh.Build(t.Rand, cfg.Width, cfg.Height, cfg.PDSMaxDistance)
	if err != nil {
		return nil, err
	}
	t.Mesh = m
	t.Cells = make([]Cell, len(m.Cells))
	for i, c := range m.Cells {
		t.Cells[i] = Cell{
			Cell:           c,
			Wind:           Wind{Target: -1},
			Downhill:       Downhill{Target: -1},
			Biome:          -1,
			WhittakerBiome: -1,
		}
	}
	t.finishStage("mesh", start, progress)
	log.Printf("Terrain mesh has %d cells and %d edges", len(m.Cells), len(m.Edges))

	if cfg.Elevation.Plates.Apply {
		start = time.Now()
		pm, err := mesh.Build(t.Rand, cfg.Width, cfg.Height, t.plateDistance())
		if err != nil {
			return nil, err
		}
		t.Plates = newPlates(pm)
		t.finishStage("plates mesh", start, progress)
	}
	return t, nil
}

// plateDistance returns the point distance of the plates mesh. It is capped
// so that small maps still get enough plates for a triangulation.
func (t *Terrain) plateDistance() float64 {
	d := t.Config.Elevation.Plates.MaxDistance
	if limit := math.Min(t.Config.Width, t.Config.Height) / 3; d > limit {
		log.Printf("Plate distance %g capped to %g", d, limit)
		d = limit
	}
	return d
}

func (t *Terrain) generate(progress func(StageTiming)) error {
	stages := []struct {
		name string
		run  func()
	}{
		{"elevation", t.assignElevation},
		{"features", t.assignFeatures},
		{"temperature", t.assignTemperature},
		{"pressure", t.assignPressure},
		{"wind", t.assignWind},
		{"moisture", t.assignMoisture},
		{"erosion", t.assignErosion},
		{"reclassification", t.assignFeatures},
		{"biomes", t.assignBiomes},
	}
	for _, s := range stages {
		start := time.Now()
		s.run()
		if err := t.checkCells(s.name); err != nil {
			return err
		}
		t.finishStage(s.name, start, progress)
	}
	t.logSummary()
	return nil
}

func (t *Terrain) finishStage(name string, start time.Time, progress func(StageTiming)) {
	st := StageTiming{Name: name, Duration: time.Since(start)}
	log.Println("Done "+name+" in ", st.Duration.String())
	t.Stages = append(t.Stages, st)
	if progress != nil {
		progress(st)
	}
}

// neighbors returns the neighbor indices of cell i.
func (t *Terrain) neighbors(i int) []int {
	return t.Cells[i].Neighbors
}

// smooth replaces every value with the mean of itself and its neighbors.
func (t *Terrain) smooth(values []float64) []float64 {
	res := make([]float64, len(values))
	for i, v := range values {
		sum := v
		for _, nb := range t.neighbors(i) {
			sum += values[nb]
		}
		res[i] = sum / float64(len(t.neighbors(i))+1)
	}
	return res
}

// channel returns a copy of a per cell value.
func (t *Terrain) channel(get func(c *Cell) float64) []float64 {
	res := make([]float64, len(t.Cells))
	for i := range t.Cells {
		res[i] = get(&t.Cells[i])
	}
	return res
}

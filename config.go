package genworldplanar

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/Flokey82/genworldplanar/noise"
)

// Config holds all configuration options for the terrain generation.
// Stages only read from it.
type Config struct {
	Seed           Seed               `json:"seed"`           // Seed for noise and random numbers
	Width          float64            `json:"width"`          // Map width in abstract units
	Height         float64            `json:"height"`         // Map height in abstract units
	PDSMaxDistance float64            `json:"pdsMaxDistance"` // Minimum point distance of the terrain mesh
	SeaLevel       float64            `json:"seaLevel"`       // Elevation threshold between water and land
	Elevation      *ElevationConfig   `json:"elevation"`
	Rivers         *RiversConfig      `json:"rivers"`
	Temperature    *TemperatureConfig `json:"temperature"`
	Wind           *WindConfig        `json:"wind"`
	Moisture       *MoistureConfig    `json:"moisture"`
	Erosion        *ErosionConfig     `json:"erosion"`
}

// NewConfig returns a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Seed:           1515445179725,
		Width:          400,
		Height:         400,
		PDSMaxDistance: 4,
		SeaLevel:       0.2,
		Elevation:      NewElevationConfig(),
		Rivers:         NewRiversConfig(),
		Temperature:    NewTemperatureConfig(),
		Wind:           NewWindConfig(),
		Moisture:       NewMoistureConfig(),
		Erosion:        NewErosionConfig(),
	}
}

// LoadConfig reads a JSON config from the given file. Options missing from
// the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Save writes the config as JSON to the given file.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate returns an error if the config can't produce a terrain.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid map size %gx%g", c.Width, c.Height)
	}
	if c.PDSMaxDistance <= 0 || c.PDSMaxDistance > math.Min(c.Width, c.Height) {
		return fmt.Errorf("invalid pdsMaxDistance %g", c.PDSMaxDistance)
	}
	if c.SeaLevel < 0 || c.SeaLevel >= 1 {
		return fmt.Errorf("seaLevel %g outside of [0,1)", c.SeaLevel)
	}
	if c.Elevation == nil || c.Rivers == nil || c.Temperature == nil || c.Wind == nil || c.Moisture == nil || c.Erosion == nil {
		return errors.New("incomplete config")
	}
	if p := c.Elevation.Plates; p.Apply && p.MaxDistance <= 0 {
		return fmt.Errorf("invalid plates maxDistance %g", p.MaxDistance)
	}
	if c.Wind.MaxIterations < 1 {
		return fmt.Errorf("invalid wind maxIterations %d", c.Wind.MaxIterations)
	}
	switch c.Wind.SourceSet {
	case SourceMapEdge, SourceOcean, SourceAll:
	default:
		return fmt.Errorf("unknown wind sourceSet %q", c.Wind.SourceSet)
	}
	if err := c.Wind.Bands.Validate(); err != nil {
		return err
	}
	if c.Moisture.Iterations < 0 {
		return fmt.Errorf("invalid moisture iterations %d", c.Moisture.Iterations)
	}
	if c.Erosion.MaxErosionRate <= 0 {
		return fmt.Errorf("invalid maxErosionRate %g", c.Erosion.MaxErosionRate)
	}
	return nil
}

// Seed is the seed of a generation run. In JSON it can be given as a number
// or as a string; strings that are not numbers are hashed.
type Seed int64

// SeedFromString returns the seed for the given string.
func SeedFromString(s string) Seed {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Seed(v)
	}
	h := fnv.New64a()
	h.Write([]byte(s))
	return Seed(h.Sum64())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Seed) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = SeedFromString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("seed must be a number or a string: %w", err)
	}
	if v, err := num.Int64(); err == nil {
		*s = Seed(v)
		return nil
	}
	f, err := num.Float64()
	if err != nil {
		return err
	}
	*s = Seed(int64(f))
	return nil
}

// ElevationConfig holds the options of the elevation stage.
type ElevationConfig struct {
	Octavation       OctavationConfig `json:"octavation"`
	Sculpting        SculptingConfig  `json:"sculpting"`
	IslandMask       IslandMaskConfig `json:"islandMask"`
	Plates           PlatesConfig     `json:"plates"`
	Normalize        Toggle           `json:"normalize"`
	Step             Toggle           `json:"step"`
	CleanUpCoastline CoastlineConfig  `json:"cleanUpCoastline"`
}

// NewElevationConfig returns the default elevation options.
func NewElevationConfig() *ElevationConfig {
	return &ElevationConfig{
		Octavation: OctavationConfig{
			Apply: true,
			OctaveConfig: noise.OctaveConfig{
				Iterations:    10,
				Frequency:     2,
				Persistence:   0.5,
				Lacunarity:    2,
				StandardRatio: 1,
			},
		},
		Sculpting:        SculptingConfig{Apply: true, Amount: 2},
		IslandMask:       IslandMaskConfig{Apply: true, Margin: 5},
		Plates:           PlatesConfig{Apply: true, MaxDistance: 125, ForceScale: 100},
		Normalize:        Toggle{Apply: true},
		Step:             Toggle{Apply: true},
		CleanUpCoastline: CoastlineConfig{Apply: true, Iterations: 4},
	}
}

// Toggle is an option that can only be switched on or off.
type Toggle struct {
	Apply bool `json:"apply"`
}

// OctavationConfig configures the fractal noise added to the elevation.
type OctavationConfig struct {
	Apply bool `json:"apply"`
	noise.OctaveConfig
}

// SculptingConfig configures the exponent applied to the elevation.
type SculptingConfig struct {
	Apply  bool    `json:"apply"`
	Amount float64 `json:"amount"`
}

// IslandMaskConfig configures the mask that pushes the map edges under
// water.
type IslandMaskConfig struct {
	Apply  bool    `json:"apply"`
	Margin float64 `json:"margin"`
}

// PlatesConfig configures the plate tectonics.
type PlatesConfig struct {
	Apply       bool    `json:"apply"`
	MaxDistance float64 `json:"maxDistance"` // Minimum point distance of the plates mesh
	ForceScale  float64 `json:"forceScale"`  // Maximum plate motion magnitude
}

// CoastlineConfig configures the coastline cleanup.
type CoastlineConfig struct {
	Apply      bool `json:"apply"`
	Iterations int  `json:"iterations"`
}

// RiversConfig holds the options for river marking.
type RiversConfig struct {
	MinimumFlux float64 `json:"minimumFlux"` // Flux a land cell needs to count as a river
}

// NewRiversConfig returns the default river options.
func NewRiversConfig() *RiversConfig {
	return &RiversConfig{MinimumFlux: 2500}
}

// TemperatureConfig holds the options of the temperature stage.
type TemperatureConfig struct {
	GlobalModifier float64 `json:"globalModifier"` // Added to every normalized temperature, 0.01 = 1°C
}

// NewTemperatureConfig returns the default temperature options.
func NewTemperatureConfig() *TemperatureConfig {
	return &TemperatureConfig{}
}

// Wind source sets.
const (
	SourceMapEdge = "mapEdge" // Cells touching the map boundary
	SourceOcean   = "ocean"   // Ocean cells
	SourceAll     = "all"     // Every cell
)

// WindConfig holds the options of the wind stage.
type WindConfig struct {
	MaxIterations int       `json:"maxIterations"`
	SourceSet     string    `json:"sourceSet"`
	Bands         WindBands `json:"bands"`
}

// NewWindConfig returns the default wind options with six prevailing wind
// bands.
func NewWindConfig() *WindConfig {
	return &WindConfig{
		MaxIterations: 500,
		SourceSet:     SourceMapEdge,
		Bands: WindBands{
			{Name: "northernPolarEasterlies", StartLatitude: 60, EndLatitude: 90, Angle: 270, Velocity: 5, Influence: 0.5},
			{Name: "northernWesterlies", StartLatitude: 30, EndLatitude: 60, Angle: 80, Velocity: 15, Influence: 0.5},
			{Name: "northernTradeWinds", StartLatitude: 0, EndLatitude: 30, Angle: 225, Velocity: 10, Influence: 1},
			{Name: "southernTradeWinds", StartLatitude: -30, EndLatitude: 0, Angle: 315, Velocity: 10, Influence: 1},
			{Name: "southernWesterlies", StartLatitude: -60, EndLatitude: -30, Angle: 100, Velocity: 15, Influence: 0.5},
			{Name: "southernPolarEasterlies", StartLatitude: -90, EndLatitude: -60, Angle: 90, Velocity: 5, Influence: 0.5},
		},
	}
}

// UnmarshalJSON implements json.Unmarshaler. Besides the "bands" list, bands
// can be given as objects keyed by their name, like
// "northernWesterlies": {"startLatitude": 30, ...}. A named band that
// already exists is updated in place.
func (c *WindConfig) UnmarshalJSON(data []byte) error {
	type plain WindConfig
	if err := json.Unmarshal(data, (*plain)(c)); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var named int
	for key, msg := range raw {
		switch key {
		case "maxIterations", "sourceSet", "bands":
			continue
		}
		if trimmed := bytes.TrimSpace(msg); len(trimmed) == 0 || trimmed[0] != '{' {
			continue
		}
		if _, ok := raw["bands"]; ok {
			return fmt.Errorf("wind band %q given next to a bands list", key)
		}
		idx := -1
		for i := range c.Bands {
			if c.Bands[i].Name == key {
				idx = i
				break
			}
		}
		if idx < 0 {
			c.Bands = append(c.Bands, WindBand{})
			idx = len(c.Bands) - 1
		}
		b := c.Bands[idx]
		if err := json.Unmarshal(msg, &b); err != nil {
			return fmt.Errorf("wind band %q: %w", key, err)
		}
		b.Name = key
		c.Bands[idx] = b
		named++
	}
	if named > 0 {
		sort.SliceStable(c.Bands, func(i, j int) bool {
			return c.Bands[i].StartLatitude > c.Bands[j].StartLatitude
		})
	}
	return nil
}

// MoistureConfig holds the options of the moisture stage.
type MoistureConfig struct {
	Iterations int `json:"iterations"` // Number of ocean and land sweeps
}

// NewMoistureConfig returns the default moisture options.
func NewMoistureConfig() *MoistureConfig {
	return &MoistureConfig{Iterations: 10}
}

// ErosionConfig holds the options of the erosion stage.
type ErosionConfig struct {
	Apply                bool    `json:"apply"`
	RiverFactor          float64 `json:"riverFactor"`
	CreepFactor          float64 `json:"creepFactor"`
	MaxErosionRate       float64 `json:"maxErosionRate"`
	DefaultErosionAmount float64 `json:"defaultErosionAmount"`
}

// NewErosionConfig returns the default erosion options.
func NewErosionConfig() *ErosionConfig {
	return &ErosionConfig{
		RiverFactor:          100,
		CreepFactor:          100,
		MaxErosionRate:       50,
		DefaultErosionAmount: 0.1,
	}
}

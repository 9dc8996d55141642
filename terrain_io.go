package genworldplanar

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Flokey82/genworldplanar/mesh"
	"github.com/Flokey82/genworldplanar/noise"
	"github.com/Flokey82/genworldplanar/various"
	"github.com/Flokey82/go_gens/vectors"
)

// snapshotVersion is bumped whenever the snapshot layout changes.
const snapshotVersion = 1

type floatChannel struct {
	get func(c *Cell) float64
	set func(c *Cell, v float64)
}

var snapshotFloats = []floatChannel{
	{func(c *Cell) float64 { return c.Elevation }, func(c *Cell, v float64) { c.Elevation = v }},
	{func(c *Cell) float64 { return c.Step }, func(c *Cell, v float64) { c.Step = v }},
	{func(c *Cell) float64 { return c.Temperature }, func(c *Cell, v float64) { c.Temperature = v }},
	{func(c *Cell) float64 { return c.RadiantTemperature }, func(c *Cell, v float64) { c.RadiantTemperature = v }},
	{func(c *Cell) float64 { return c.ElevationTemperature }, func(c *Cell, v float64) { c.ElevationTemperature = v }},
	{func(c *Cell) float64 { return c.Latitude }, func(c *Cell, v float64) { c.Latitude = v }},
	{func(c *Cell) float64 { return c.SolarInsolation }, func(c *Cell, v float64) { c.SolarInsolation = v }},
	{func(c *Cell) float64 { return c.Pressure }, func(c *Cell, v float64) { c.Pressure = v }},
	{func(c *Cell) float64 { return c.Wind.Force.X }, func(c *Cell, v float64) { c.Wind.Force.X = v }},
	{func(c *Cell) float64 { return c.Wind.Force.Y }, func(c *Cell, v float64) { c.Wind.Force.Y = v }},
	{func(c *Cell) float64 { return c.Wind.Velocity }, func(c *Cell, v float64) { c.Wind.Velocity = v }},
	{func(c *Cell) float64 { return c.Moisture }, func(c *Cell, v float64) { c.Moisture = v }},
	{func(c *Cell) float64 { return c.AbsoluteHumidity }, func(c *Cell, v float64) { c.AbsoluteHumidity = v }},
	{func(c *Cell) float64 { return c.RelativeHumidity }, func(c *Cell, v float64) { c.RelativeHumidity = v }},
	{func(c *Cell) float64 { return c.Downhill.Slope }, func(c *Cell, v float64) { c.Downhill.Slope = v }},
	{func(c *Cell) float64 { return c.Downhill.Flux }, func(c *Cell, v float64) { c.Downhill.Flux = v }},
	{func(c *Cell) float64 { return c.Downhill.ErosionRate }, func(c *Cell, v float64) { c.Downhill.ErosionRate = v }},
}

type intChannel struct {
	get func(c *Cell) int
	set func(c *Cell, v int)
}

var snapshotInts = []intChannel{
	{func(c *Cell) int { return int(c.FeatureType) }, func(c *Cell, v int) { c.FeatureType = FeatureType(v) }},
	{func(c *Cell) int { return c.FeatureIndex }, func(c *Cell, v int) { c.FeatureIndex = v }},
	{func(c *Cell) int { return c.Wind.Target }, func(c *Cell, v int) { c.Wind.Target = v }},
	{func(c *Cell) int { return c.Downhill.Target }, func(c *Cell, v int) { c.Downhill.Target = v }},
	{func(c *Cell) int { return c.Biome }, func(c *Cell, v int) { c.Biome = v }},
	{func(c *Cell) int { return c.WhittakerBiome }, func(c *Cell, v int) { c.WhittakerBiome = v }},
}

// Write writes a binary snapshot of the terrain to w.
func (t *Terrain) Write(w io.Writer) error {
	if err := various.WriteInt(w, snapshotVersion); err != nil {
		return err
	}
	cfg, err := json.Marshal(t.Config)
	if err != nil {
		return err
	}
	if err := various.WriteInt(w, len(cfg)); err != nil {
		return err
	}
	if _, err := w.Write(cfg); err != nil {
		return err
	}
	if err := t.Mesh.Write(w); err != nil {
		return err
	}
	hasPlates := t.Plates != nil
	if err := various.WriteBoolSlice(w, []bool{hasPlates}); err != nil {
		return err
	}
	if hasPlates {
		if err := t.Plates.Mesh.Write(w); err != nil {
			return err
		}
		motion := make([][2]float64, len(t.Plates.Motion))
		for i, m := range t.Plates.Motion {
			motion[i] = various.FromVec2(m)
		}
		if err := various.Write2FloatSlice(w, motion); err != nil {
			return err
		}
	}

	for _, ch := range snapshotFloats {
		values := make([]float64, len(t.Cells))
		for i := range t.Cells {
			values[i] = ch.get(&t.Cells[i])
		}
		if err := various.WriteFloatSlice(w, values); err != nil {
			return err
		}
	}
	for _, ch := range snapshotInts {
		values := make([]int, len(t.Cells))
		for i := range t.Cells {
			values[i] = ch.get(&t.Cells[i])
		}
		if err := various.WriteIntSlice(w, values); err != nil {
			return err
		}
	}
	rivers := make([]bool, len(t.Cells))
	for i := range t.Cells {
		rivers[i] = t.Cells[i].IsRiver
	}
	return various.WriteBoolSlice(w, rivers)
}

// ReadTerrain reads a snapshot written by (*Terrain).Write. The meshes are
// rebuilt from their sites and the features are classified again.
func ReadTerrain(r io.Reader) (*Terrain, error) {
	version, err := various.ReadInt(r)
	if err != nil {
		return nil, err
	}
	if version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", version)
	}
	n, err := various.ReadLength(r)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot config: %w", err)
	}
	data := make([]byte, n)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("reading snapshot config: %w", err)
	}

	m, err := mesh.ReadMesh(r)
	if err != nil {
		return nil, err
	}
	t := &Terrain{
		Config: cfg,
		Seed:   int64(cfg.Seed),
		Mesh:   m,
		Cells:  make([]Cell, len(m.Cells)),
		noise:  noise.NewNoise(int64(cfg.Seed), cfg.Width, cfg.Height),
	}
	for i, c := range m.Cells {
		t.Cells[i].Cell = c
	}

	hasPlates, err := various.ReadBoolSlice(r)
	if err != nil {
		return nil, err
	}
	if len(hasPlates) == 1 && hasPlates[0] {
		pm, err := mesh.ReadMesh(r)
		if err != nil {
			return nil, err
		}
		t.Plates = newPlates(pm)
		motion, err := various.Read2FloatSlice(r)
		if err != nil {
			return nil, err
		}
		if len(motion) != len(pm.Cells) {
			return nil, fmt.Errorf("snapshot has %d plate motions for %d plates", len(motion), len(pm.Cells))
		}
		t.Plates.Motion = make([]vectors.Vec2, len(motion))
		for i, mv := range motion {
			t.Plates.Motion[i] = various.ToVec2(mv)
		}
		t.Plates.assignBoundaries()
	}

	for _, ch := range snapshotFloats {
		values, err := various.ReadFloatSlice(r)
		if err != nil {
			return nil, err
		}
		if len(values) != len(t.Cells) {
			return nil, fmt.Errorf("snapshot channel has %d values for %d cells", len(values), len(t.Cells))
		}
		for i, v := range values {
			ch.set(&t.Cells[i], v)
		}
	}
	for _, ch := range snapshotInts {
		values, err := various.ReadIntSlice(r)
		if err != nil {
			return nil, err
		}
		if len(values) != len(t.Cells) {
			return nil, fmt.Errorf("snapshot channel has %d values for %d cells", len(values), len(t.Cells))
		}
		for i, v := range values {
			ch.set(&t.Cells[i], v)
		}
	}
	rivers, err := various.ReadBoolSlice(r)
	if err != nil {
		return nil, err
	}
	if len(rivers) != len(t.Cells) {
		return nil, fmt.Errorf("snapshot has %d river flags for %d cells", len(rivers), len(t.Cells))
	}
	for i, v := range rivers {
		t.Cells[i].IsRiver = v
	}
	t.classifyFeatures()
	return t, nil
}

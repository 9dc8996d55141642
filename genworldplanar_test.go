package genworldplanar

import (
	"errors"
	"math"
	"sync"
	"testing"
)

var (
	genOnce    sync.Once
	genTerrain *Terrain
	genErr     error
)

// generated returns the shared 256x256 terrain for seed 42. Tests must not
// modify it.
func generated(t *testing.T) *Terrain {
	t.Helper()
	genOnce.Do(func() {
		cfg := NewConfig()
		cfg.Seed = 42
		cfg.Width = 256
		cfg.Height = 256
		cfg.PDSMaxDistance = 4
		genTerrain, genErr = Generate(cfg)
	})
	if genErr != nil {
		t.Fatalf("Generate: %v", genErr)
	}
	return genTerrain
}

// smallConfig returns a config for a quick 100x100 terrain.
func smallConfig() *Config {
	cfg := NewConfig()
	cfg.Seed = 7
	cfg.Width = 100
	cfg.Height = 100
	cfg.PDSMaxDistance = 5
	cfg.Elevation.Plates.MaxDistance = 30
	return cfg
}

// newTestTerrain builds the meshes for cfg without running any stage.
func newTestTerrain(t *testing.T, cfg *Config) *Terrain {
	t.Helper()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	tr, err := newTerrain(cfg, nil)
	if err != nil {
		t.Fatalf("newTerrain: %v", err)
	}
	return tr
}

func TestGenerateScenario(t *testing.T) {
	tr := generated(t)
	if len(tr.Cells) == 0 {
		t.Fatal("no cells")
	}

	start := tr.lowestBoundaryCell()
	if tr.Cells[start].FeatureType != FeatureOcean {
		t.Fatalf("lowest boundary cell %d is %v, want Ocean", start, tr.Cells[start].FeatureType)
	}

	var numOcean, numLand int
	for i := range tr.Cells {
		switch tr.Cells[i].FeatureType {
		case FeatureOcean:
			numOcean++
		case FeatureLand:
			numLand++
		case FeatureNone:
			t.Fatalf("cell %d has no feature type", i)
		}
	}
	if numLand == 0 {
		t.Error("no land cells")
	}

	// The ocean is a single component reachable from the start cell.
	seen := map[int]bool{start: true}
	queue := []int{start}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, nb := range tr.Cells[c].Neighbors {
			if !seen[nb] && tr.Cells[nb].FeatureType == FeatureOcean {
				seen[nb] = true
				queue = append(queue, nb)
			}
		}
	}
	if len(seen) != numOcean {
		t.Errorf("ocean reachable from boundary has %d cells, want %d", len(seen), numOcean)
	}

	wantStages := []string{"mesh", "plates mesh", "elevation", "features", "temperature", "pressure", "wind", "moisture", "erosion", "reclassification", "biomes"}
	if len(tr.Stages) != len(wantStages) {
		t.Fatalf("got %d stages, want %d", len(tr.Stages), len(wantStages))
	}
	for i, st := range tr.Stages {
		if st.Name != wantStages[i] {
			t.Errorf("stage %d is %q, want %q", i, st.Name, wantStages[i])
		}
	}
}

func TestGenerateCellInvariants(t *testing.T) {
	tr := generated(t)
	for i := range tr.Cells {
		c := &tr.Cells[i]
		if c.Elevation < 0 || c.Elevation > 1 || math.IsNaN(c.Elevation) {
			t.Fatalf("cell %d elevation %v outside [0,1]", i, c.Elevation)
		}
		if c.Temperature < 0 || c.Temperature > 1 {
			t.Fatalf("cell %d temperature %v outside [0,1]", i, c.Temperature)
		}
		if c.Moisture < 0 || c.AbsoluteHumidity < 0 || math.IsNaN(c.Moisture) {
			t.Fatalf("cell %d has invalid moisture %v / humidity %v", i, c.Moisture, c.AbsoluteHumidity)
		}
		if c.FeatureType.IsWater() && c.Biome != -1 {
			t.Errorf("water cell %d has biome %d", i, c.Biome)
		}
		if c.FeatureType == FeatureLand && c.Biome < 0 {
			t.Errorf("land cell %d has no biome", i)
		}
		if c.IsRiver && (c.FeatureType != FeatureLand || c.Downhill.Target < 0) {
			t.Errorf("cell %d is a river without land or downhill target", i)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(smallConfig())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(smallConfig())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(a.Cells) != len(b.Cells) {
		t.Fatalf("cell counts differ: %d != %d", len(a.Cells), len(b.Cells))
	}
	for i := range a.Cells {
		ca, cb := &a.Cells[i], &b.Cells[i]
		if ca.Site != cb.Site {
			t.Fatalf("cell %d site differs", i)
		}
		if ca.Elevation != cb.Elevation || ca.Temperature != cb.Temperature || ca.Pressure != cb.Pressure {
			t.Fatalf("cell %d fields differ", i)
		}
		if ca.Wind != cb.Wind {
			t.Fatalf("cell %d wind differs: %+v != %+v", i, ca.Wind, cb.Wind)
		}
		if ca.Moisture != cb.Moisture || ca.Biome != cb.Biome {
			t.Fatalf("cell %d moisture or biome differs", i)
		}
	}
}

func TestGenerateProgress(t *testing.T) {
	var names []string
	tr, err := GenerateWithProgress(smallConfig(), func(st StageTiming) {
		names = append(names, st.Name)
	})
	if err != nil {
		t.Fatalf("GenerateWithProgress: %v", err)
	}
	if len(names) != len(tr.Stages) {
		t.Fatalf("progress called %d times for %d stages", len(names), len(tr.Stages))
	}
}

func TestGenerateInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Width = 0
	if _, err := Generate(cfg); err == nil {
		t.Fatal("expected error for zero width")
	}
}

func TestCheckCells(t *testing.T) {
	tr := newTestTerrain(t, smallConfig())
	if err := tr.checkCells("test"); err != nil {
		t.Fatalf("fresh terrain: %v", err)
	}
	tr.Cells[3].Moisture = math.NaN()
	err := tr.checkCells("moisture")
	var se *StageError
	if !errors.As(err, &se) {
		t.Fatalf("got %v, want *StageError", err)
	}
	if se.Stage != "moisture" || se.Cell != 3 || se.Field != "moisture" {
		t.Errorf("unexpected stage error %+v", se)
	}

	tr.Cells[3].Moisture = 0
	tr.Cells[5].Elevation = -0.1
	if err := tr.checkCells("elevation"); !errors.As(err, &se) || se.Cell != 5 {
		t.Errorf("negative elevation not reported: %v", err)
	}
}

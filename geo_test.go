package genworldplanar

import (
	"math"
	"testing"
)

func TestConversions(t *testing.T) {
	cfg := NewConfig()
	if got := TemperatureInCelsius(0.5); got != 0 {
		t.Errorf("TemperatureInCelsius(0.5) = %v, want 0", got)
	}
	if got := cfg.ElevationInMetersAsl(cfg.SeaLevel); got != 0 {
		t.Errorf("ElevationInMetersAsl(seaLevel) = %v, want 0", got)
	}
	if got := cfg.ElevationInMetersAsl(1); got != MaxElevationMeters {
		t.Errorf("ElevationInMetersAsl(1) = %v, want %v", got, MaxElevationMeters)
	}
	if got := cfg.ElevationInMetersAsl(0.1); got != 0 {
		t.Errorf("ElevationInMetersAsl below sea level = %v, want 0", got)
	}

	prevT, prevE := math.Inf(-1), -1.0
	for x := 0.0; x <= 1; x += 0.01 {
		tc := TemperatureInCelsius(x)
		if tc <= prevT {
			t.Fatalf("TemperatureInCelsius not increasing at %v", x)
		}
		prevT = tc
		e := cfg.ElevationInMetersAsl(x)
		if e < prevE {
			t.Fatalf("ElevationInMetersAsl decreasing at %v", x)
		}
		prevE = e
	}

	for _, m := range []float64{1, 500, 2000, 8000} {
		if got := cfg.ElevationInMetersAsl(cfg.ElevationFromMetersAsl(m)); math.Abs(got-m) > 1e-6 {
			t.Errorf("meters %v -> elevation -> %v", m, got)
		}
	}
	if got := CelsiusToTemperature(TemperatureInCelsius(0.3)); math.Abs(got-0.3) > 1e-12 {
		t.Errorf("CelsiusToTemperature round trip = %v", got)
	}
}

func TestPressure(t *testing.T) {
	cfg := NewConfig()
	if got := cfg.PressureAt(0); got != SeaLevelPressure {
		t.Errorf("PressureAt(0) = %v, want %v", got, SeaLevelPressure)
	}
	want := SeaLevelPressure * math.Exp(-0.00012*MaxElevationMeters)
	if got := cfg.PressureAt(1); math.Abs(got-want) > 1e-9 {
		t.Errorf("PressureAt(1) = %v, want %v", got, want)
	}
}

func TestNormalizedElevation(t *testing.T) {
	cfg := smallConfig()
	cfg.Elevation.Plates.Apply = false
	cfg.Elevation.Sculpting.Apply = false
	cfg.Elevation.Step.Apply = false
	cfg.Elevation.CleanUpCoastline.Apply = false
	tr := newTestTerrain(t, cfg)
	tr.assignElevation()

	min, max := bounds(tr.elevations())
	if min != 0 || max != 1 {
		t.Errorf("normalized elevation spans [%v, %v], want [0, 1]", min, max)
	}
}

func TestIslandMask(t *testing.T) {
	cfg := smallConfig()
	tr := newTestTerrain(t, cfg)
	if got := tr.islandMask(50, 50); got != 0 {
		t.Errorf("mask at center = %v, want 0", got)
	}
	mw := cfg.Width*0.55 - cfg.Elevation.IslandMask.Margin
	want := (50 / mw) * (50 / mw)
	if got := tr.islandMask(0, 50); math.Abs(got-want) > 1e-12 {
		t.Errorf("mask at edge = %v, want %v", got, want)
	}
}

func TestPlateMotions(t *testing.T) {
	tr := newTestTerrain(t, smallConfig())
	if tr.Plates == nil {
		t.Fatal("no plates mesh")
	}
	tr.Plates.assignMotions(tr.Rand, 100)
	for i, m := range tr.Plates.Motion {
		if l := math.Hypot(m.X, m.Y); l > 100 {
			t.Errorf("plate %d motion %v exceeds force scale", i, l)
		}
	}
	tr.Plates.assignBoundaries()
	for _, b := range tr.Plates.Boundaries {
		e := tr.Plates.Edges[b.Edge]
		if e.IsBoundary() {
			t.Fatalf("plate boundary on map edge %d", b.Edge)
		}
		if b.Parallel < 0 || b.Orthogonal < 0 {
			t.Errorf("negative stress components %+v", b)
		}
		if got := math.Hypot(b.Parallel, b.Orthogonal); math.Abs(got-b.Magnitude) > 1e-9 {
			t.Errorf("stress components %v do not add up to magnitude %v", got, b.Magnitude)
		}
	}
}

func TestCleanUpCoastline(t *testing.T) {
	tr := newTestTerrain(t, smallConfig())
	for i := range tr.Cells {
		tr.Cells[i].Elevation = 0.5
	}

	// A single interior pit under water.
	pit := tr.Mesh.FindCell(50, 50)
	tr.Cells[pit].Elevation = 0.1

	// A single island cell surrounded by water elsewhere.
	island := tr.Mesh.FindCell(20, 20)
	for _, nb := range tr.Cells[island].Neighbors {
		tr.Cells[nb].Elevation = 0.1
	}

	tr.cleanUpCoastline()
	if got := tr.Cells[pit].Elevation; got != 0.5 {
		t.Errorf("pit raised to %v, want 0.5", got)
	}
	if got := tr.Cells[island].Elevation; got != 0.5 {
		t.Errorf("island changed to %v, cleanup must only raise cells under water", got)
	}
}

func TestClassifyFlat(t *testing.T) {
	tr := newTestTerrain(t, smallConfig())
	for i := range tr.Cells {
		tr.Cells[i].Elevation = 0.3
	}
	tr.classifyFeatures()

	if len(tr.Features) != 1 {
		t.Fatalf("got %d features, want 1", len(tr.Features))
	}
	f := tr.Features[0]
	if f.Type != FeatureLand || f.Size != len(tr.Cells) {
		t.Errorf("got feature %+v, want one land feature with %d cells", f, len(tr.Cells))
	}
	if f.Name == "" {
		t.Error("land feature has no name")
	}
}

func TestClassifyComponents(t *testing.T) {
	tr := generated(t)
	cfg := tr.Config

	// Neighbors on the same side of the sea level share a feature.
	for i := range tr.Cells {
		a := &tr.Cells[i]
		for _, nb := range a.Neighbors {
			b := &tr.Cells[nb]
			if cfg.IsBelowSeaLevel(a.Elevation) != cfg.IsBelowSeaLevel(b.Elevation) {
				continue
			}
			if a.FeatureType != b.FeatureType || a.FeatureIndex != b.FeatureIndex {
				t.Fatalf("neighbors %d and %d are in different features", i, nb)
			}
		}
	}

	// Every feature is connected.
	for fi := range tr.Features {
		f := &tr.Features[fi]
		cells := tr.FeatureCells(f)
		if len(cells) != f.Size {
			t.Fatalf("feature %+v has %d cells", f, len(cells))
		}
		seen := map[int]bool{f.Root: true}
		queue := []int{f.Root}
		for len(queue) > 0 {
			c := queue[0]
			queue = queue[1:]
			for _, nb := range tr.Cells[c].Neighbors {
				n := &tr.Cells[nb]
				if !seen[nb] && n.FeatureType == f.Type && n.FeatureIndex == f.Index {
					seen[nb] = true
					queue = append(queue, nb)
				}
			}
		}
		if len(seen) != f.Size {
			t.Errorf("feature %v/%d: %d of %d cells connected", f.Type, f.Index, len(seen), f.Size)
		}
	}
}

func TestMarkRivers(t *testing.T) {
	tr := newTestTerrain(t, smallConfig())
	for i := range tr.Cells {
		tr.Cells[i].Elevation = 0.3
	}
	tr.classifyFeatures()
	tr.Cells[0].Downhill = Downhill{Target: 1, Flux: tr.Config.Rivers.MinimumFlux + 1}
	tr.Cells[1].Downhill = Downhill{Target: -1, Flux: tr.Config.Rivers.MinimumFlux + 1}
	tr.Cells[2].Downhill = Downhill{Target: 1, Flux: tr.Config.Rivers.MinimumFlux}
	tr.markRivers()
	if !tr.Cells[0].IsRiver {
		t.Error("cell 0 should be a river")
	}
	if tr.Cells[1].IsRiver {
		t.Error("cell without downhill target marked as river")
	}
	if tr.Cells[2].IsRiver {
		t.Error("flux at the threshold marked as river")
	}
}

func TestFillSinks(t *testing.T) {
	tr := newTestTerrain(t, smallConfig())
	tr.assignElevation()
	filled := tr.FillSinks()
	for i := range tr.Cells {
		if filled[i] < tr.Cells[i].Elevation {
			t.Fatalf("cell %d lowered from %v to %v", i, tr.Cells[i].Elevation, filled[i])
		}
		if tr.Cells[i].OnBoundary {
			if filled[i] != tr.Cells[i].Elevation {
				t.Fatalf("boundary cell %d changed", i)
			}
			continue
		}
		lower := false
		for _, nb := range tr.Cells[i].Neighbors {
			if filled[nb] < filled[i] {
				lower = true
				break
			}
		}
		if !lower {
			t.Fatalf("interior cell %d is a sink at %v", i, filled[i])
		}
	}
}

func TestDownhillAndFlux(t *testing.T) {
	tr := newTestTerrain(t, smallConfig())
	tr.assignElevation()
	tr.assignFeatures()
	for i := range tr.Cells {
		tr.Cells[i].Moisture = 1
	}
	tr.assignErosion()

	var total float64
	for i := range tr.Cells {
		c := &tr.Cells[i]
		if c.Downhill.Target < 0 {
			continue
		}
		d := &tr.Cells[c.Downhill.Target]
		if d.Elevation >= c.Elevation {
			t.Fatalf("cell %d drains uphill into %d", i, c.Downhill.Target)
		}
		if c.Downhill.Slope <= 0 {
			t.Errorf("cell %d has slope %v", i, c.Downhill.Slope)
		}
		if c.Downhill.ErosionRate > tr.Config.Erosion.MaxErosionRate {
			t.Errorf("cell %d erosion rate %v above maximum", i, c.Downhill.ErosionRate)
		}
		if c.Downhill.Flux < 1 {
			t.Errorf("cell %d flux %v below its own moisture", i, c.Downhill.Flux)
		}
		total += c.Downhill.Flux
	}
	if total == 0 {
		t.Error("no flux")
	}
}

// runUntilErosion runs all stages up to and including the erosion stage.
func runUntilErosion(t *testing.T, tr *Terrain) {
	t.Helper()
	stages := []func(){
		tr.assignElevation,
		tr.assignFeatures,
		tr.assignTemperature,
		tr.assignPressure,
		tr.assignWind,
		tr.assignMoisture,
		tr.assignErosion,
	}
	for _, run := range stages {
		run()
	}
	if err := tr.checkCells("erosion"); err != nil {
		t.Fatal(err)
	}
}

func TestErosionApply(t *testing.T) {
	plain := newTestTerrain(t, smallConfig())
	runUntilErosion(t, plain)

	cfg := smallConfig()
	cfg.Erosion.Apply = true
	eroded := newTestTerrain(t, cfg)
	runUntilErosion(t, eroded)

	// Both runs agree up to the erosion step, so the eroded terrain is the
	// smoothed filled terrain minus smoothed non-negative erosion.
	base := plain.smooth(plain.elevations())
	var sumBase, sumEroded float64
	for i := range eroded.Cells {
		e := eroded.Cells[i].Elevation
		if e < 0 || e > 1 {
			t.Fatalf("cell %d elevation %v outside of [0,1]", i, e)
		}
		if e > base[i]+1e-12 {
			t.Errorf("cell %d rose from %v to %v", i, base[i], e)
		}
		if r := eroded.Cells[i].Downhill.ErosionRate; r != plain.Cells[i].Downhill.ErosionRate {
			t.Fatalf("cell %d erosion rate %v, want %v", i, r, plain.Cells[i].Downhill.ErosionRate)
		}
		sumBase += base[i]
		sumEroded += e
	}
	if sumEroded >= sumBase {
		t.Errorf("total elevation %v, want less than %v", sumEroded, sumBase)
	}

	// The full pipeline accepts the eroded terrain.
	tr, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i := range tr.Cells {
		if e := tr.Cells[i].Elevation; e < 0 || e > 1 {
			t.Fatalf("cell %d elevation %v outside of [0,1]", i, e)
		}
	}
}

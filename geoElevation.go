package genworldplanar

import (
	"math"

	"github.com/Flokey82/genworldplanar/various"
)

// assignElevation builds the elevation of every cell from plate stress,
// fractal noise and the island mask.
func (t *Terrain) assignElevation() {
	cfg := t.Config.Elevation
	for i := range t.Cells {
		t.Cells[i].Elevation = 0
		t.Cells[i].Step = 0
	}

	if cfg.Plates.Apply && t.Plates != nil {
		t.Plates.assignMotions(t.Rand, cfg.Plates.ForceScale)
		t.Plates.assignBoundaries()
		various.KickOffChunkWorkers(len(t.Cells), func(start, end int) {
			for i := start; i < end; i++ {
				t.Cells[i].Elevation += t.Plates.plateDelta(t.Cells[i].Site)
			}
		})
		t.setElevations(t.smooth(t.elevations()))
	}

	if cfg.Octavation.Apply {
		for i := range t.Cells {
			c := &t.Cells[i]
			c.Elevation += t.noise.Octavate(c.Site[0], c.Site[1], cfg.Octavation.OctaveConfig)
		}
	}

	if cfg.Normalize.Apply {
		t.normalizeElevation()
	}

	if cfg.Sculpting.Apply {
		for i := range t.Cells {
			c := &t.Cells[i]
			c.Elevation = math.Pow(math.Max(c.Elevation, 0), cfg.Sculpting.Amount)
		}
	}

	if cfg.Step.Apply {
		for i := range t.Cells {
			c := &t.Cells[i]
			if cfg.IslandMask.Apply {
				c.Step = t.islandMask(c.Site[0], c.Site[1])
			}
			c.Elevation *= math.Max(0, 1-c.Step)
		}
	}

	if cfg.CleanUpCoastline.Apply {
		for i := 0; i < cfg.CleanUpCoastline.Iterations; i++ {
			if t.cleanUpCoastline() == 0 {
				break
			}
		}
	}

	for i := range t.Cells {
		t.Cells[i].Elevation = various.Clamp(t.Cells[i].Elevation, 0, 1)
	}
}

func (t *Terrain) elevations() []float64 {
	return t.channel(func(c *Cell) float64 { return c.Elevation })
}

func (t *Terrain) setElevations(values []float64) {
	for i, v := range values {
		t.Cells[i].Elevation = v
	}
}

// normalizeElevation rescales the elevation to [0, 1].
func (t *Terrain) normalizeElevation() {
	values := t.elevations()
	min, max := bounds(values)
	normalizeChannel(values, min, max)
	t.setElevations(values)
}

// islandMask returns the squared, normalized distance of (x, y) from the map
// center using the maximum norm.
func (t *Terrain) islandMask(x, y float64) float64 {
	w, h := t.Config.Width, t.Config.Height
	d := math.Max(math.Abs(x-w*0.5), math.Abs(y-h*0.5))
	mw := w*0.55 - t.Config.Elevation.IslandMask.Margin
	if mw <= 0 {
		return 1
	}
	delta := d / mw
	return delta * delta
}

// cleanUpCoastline raises every cell below sea level that is surrounded by
// a majority of land to the highest neighbor elevation. Cells above sea
// level are never lowered. Returns the number of raised cells.
func (t *Terrain) cleanUpCoastline() int {
	values := t.elevations()
	var raised int
	for i := range t.Cells {
		if !t.Config.IsBelowSeaLevel(values[i]) {
			continue
		}
		nbs := t.neighbors(i)
		var above int
		max := values[i]
		for _, nb := range nbs {
			if !t.Config.IsBelowSeaLevel(values[nb]) {
				above++
			}
			max = math.Max(max, values[nb])
		}
		if above*2 > len(nbs) {
			t.Cells[i].Elevation = max
			raised++
		}
	}
	return raised
}

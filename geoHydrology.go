package genworldplanar

import (
	"log"
	"math"
	"sort"

	"github.com/Flokey82/genworldplanar/various"
)

// sinkEpsilon is the minimum drop between a filled cell and its outflow.
const sinkEpsilon = 1e-5

// assignErosion fills sinks, routes water downhill, accumulates the flux and,
// if enabled, erodes the terrain.
func (t *Terrain) assignErosion() {
	filled := t.FillSinks()
	for i := range t.Cells {
		if t.Cells[i].FeatureType != FeatureOcean {
			t.Cells[i].Elevation = math.Min(filled[i], 1)
		}
	}
	t.assignDownhill()
	t.assignFlux()

	cfg := t.Config.Erosion
	if !cfg.Apply {
		return
	}
	_, maxRate := minMax(t.channel(func(c *Cell) float64 { return c.Downhill.ErosionRate }))
	if maxRate <= 0 {
		log.Println("No erosion, all slopes are flat")
		return
	}
	for i := range t.Cells {
		c := &t.Cells[i]
		c.Elevation -= cfg.DefaultErosionAmount * (c.Downhill.ErosionRate / maxRate)
	}
	values := t.smooth(t.elevations())
	for i := range values {
		values[i] = various.Clamp(values[i], 0, 1)
	}
	t.setElevations(values)
}

// FillSinks returns the elevation of every cell raised just enough so that
// each cell not on the map boundary has a neighbor that is lower by at least
// sinkEpsilon. Cells on the map boundary keep their elevation.
//
// See: "A fast, simple and versatile algorithm to fill the depressions of
// digital elevation models" by Olivier Planchon and Frédéric Darboux.
func (t *Terrain) FillSinks() []float64 {
	inf := math.Inf(0)
	elevation := t.elevations()
	newHeight := make([]float64, len(elevation))
	for i := range newHeight {
		if t.Cells[i].OnBoundary {
			newHeight[i] = elevation[i]
		} else {
			newHeight[i] = inf
		}
	}

	// Loop until no more changes are made.
	for {
		changed := false
		for r := range newHeight {
			// Skip all cells that already have their final elevation.
			if newHeight[r] == elevation[r] {
				continue
			}
			for _, nb := range t.neighbors(r) {
				// The cell is high enough to drain into the neighbor as is.
				if elevation[r] >= newHeight[nb]+sinkEpsilon {
					newHeight[r] = elevation[r]
					changed = true
					break
				}

				// Otherwise the cell needs to be raised, but only if the
				// neighbor offers a lower outflow than what we have so far.
				if oh := newHeight[nb] + sinkEpsilon; newHeight[r] > oh && oh > elevation[r] {
					newHeight[r] = oh
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return newHeight
}

// assignDownhill sets the downhill target of every cell to its lowest
// neighbor below it.
func (t *Terrain) assignDownhill() {
	for i := range t.Cells {
		c := &t.Cells[i]
		c.Downhill = Downhill{Target: -1}
		lowest := i
		for _, nb := range t.neighbors(i) {
			if t.Cells[nb].Elevation < t.Cells[lowest].Elevation {
				lowest = nb
			}
		}
		if lowest == i {
			continue
		}
		l := &t.Cells[lowest]
		dist := various.Dist2(c.Site, l.Site)
		if dist == 0 {
			dist = sinkEpsilon
		}
		c.Downhill = Downhill{
			Target: lowest,
			Slope:  (c.Elevation - l.Elevation) / dist,
			Flux:   c.Moisture,
		}
	}
}

// assignFlux passes the flux of every cell that is not ocean on to its
// downhill target, highest cells first, and derives the erosion rate.
func (t *Terrain) assignFlux() {
	cfg := t.Config.Erosion
	order := make([]int, len(t.Cells))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return t.Cells[order[a]].Elevation > t.Cells[order[b]].Elevation
	})
	for _, i := range order {
		c := &t.Cells[i]
		if c.FeatureType == FeatureOcean || c.Downhill.Target < 0 {
			continue
		}
		t.Cells[c.Downhill.Target].Downhill.Flux += c.Downhill.Flux

		river := math.Sqrt(c.Downhill.Flux) * c.Downhill.Slope * cfg.RiverFactor
		creep := c.Downhill.Slope * c.Downhill.Slope * cfg.CreepFactor
		c.Downhill.ErosionRate = math.Min(river+creep, cfg.MaxErosionRate)
	}
}

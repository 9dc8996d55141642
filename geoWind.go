package genworldplanar

import (
	"log"
	"math"

	"github.com/Flokey82/genworldplanar/mesh"
	"github.com/Flokey82/genworldplanar/various"
	"github.com/Flokey82/go_gens/vectors"
)

// assignWind relaxes the wind field outwards from the source cells until
// every cell carries wind or the iteration limit is reached. This stops on
// coverage, not on a fixed point, so the result is an approximation.
func (t *Terrain) assignWind() {
	cfg := t.Config.Wind
	n := len(t.Cells)

	bandForce := make([]vectors.Vec2, n)
	bandInfluence := make([]float64, n)
	for i := range t.Cells {
		b := t.windBand(t.Cells[i].Latitude)
		bandForce[i] = b.Force()
		bandInfluence[i] = b.Influence
	}
	sources := t.windSources()

	force := make([]vectors.Vec2, n)
	sum := make([]vectors.Vec2, n)
	maxMag := make([]float64, n)
	received := make([]bool, n)

	var iterations int
	for iterations < cfg.MaxIterations {
		iterations++
		for i := range sum {
			sum[i] = vectors.Vec2{}
			maxMag[i] = 0
			received[i] = false
			if sources[i] {
				force[i] = bandForce[i]
			}
		}

		// Push the wind of every cell over its forward edges.
		for i := range t.Cells {
			if force[i].Len() == 0 {
				continue
			}
			dir := various.FromVec2(various.UnitVec2(force[i]))
			c := &t.Cells[i]
			for _, s := range c.Sides {
				if s.Other < 0 || windCross(c.Site, dir, s) <= 0 {
					continue
				}
				scalar := t.windForceScalar(i, s.Other, force[i])
				scalar += (t.Cells[s.Other].Temperature - c.Temperature) * 4
				sum[s.Other] = sum[s.Other].Add(various.ToVec2(s.MidDir).Mul(scalar))
				maxMag[s.Other] = math.Max(maxMag[s.Other], math.Abs(scalar))
				received[s.Other] = true
			}
		}

		covered := true
		for i := range t.Cells {
			if !sources[i] && received[i] {
				f := sum[i].Add(bandForce[i].Mul(bandInfluence[i]))
				force[i] = various.UnitVec2(f).Mul(maxMag[i])
			}
			if force[i].Len() == 0 {
				covered = false
			}
		}
		if covered {
			break
		}
	}
	t.WindIterations = iterations
	if iterations == cfg.MaxIterations {
		log.Printf("Wind stopped at the limit of %d iterations", iterations)
	} else {
		log.Printf("Wind covered the map after %d iterations", iterations)
	}

	for i := range t.Cells {
		c := &t.Cells[i]
		c.Wind = Wind{
			Force:    force[i],
			Velocity: force[i].Len(),
			Target:   t.windTarget(i, force[i]),
		}
	}
}

// windBand returns the wind band for the given latitude. Latitudes outside
// of all bands use the closest band.
func (t *Terrain) windBand(lat float64) *WindBand {
	bands := t.Config.Wind.Bands
	if b := bands.Lookup(lat); b != nil {
		return b
	}
	return bands.Nearest(lat)
}

// windSources flags the cells whose wind is forced to their band vector.
func (t *Terrain) windSources() []bool {
	res := make([]bool, len(t.Cells))
	for i := range t.Cells {
		switch t.Config.Wind.SourceSet {
		case SourceMapEdge:
			res[i] = t.Cells[i].OnBoundary
		case SourceOcean:
			res[i] = t.Cells[i].FeatureType == FeatureOcean
		case SourceAll:
			res[i] = true
		}
	}
	return res
}

// windCross returns the absolute cross product of the unit wind direction
// and the edge if a unit step along the wind from the cell center moves
// closer to the edge, and 0 otherwise.
func windCross(center, dir [2]float64, s mesh.Side) float64 {
	cross := math.Abs(various.Cross2(dir, s.Unit))
	if cross == 0 {
		return 0
	}
	if various.DistToSegment2(s.A, s.B, various.Add2(center, dir)) >= s.CenterDist {
		return 0
	}
	return cross
}

// windTarget returns the neighbor the wind of cell i blows into, or -1 if
// the wind blows off the map or away from every edge.
func (t *Terrain) windTarget(i int, force vectors.Vec2) int {
	if force.Len() == 0 {
		return -1
	}
	c := &t.Cells[i]
	dir := various.FromVec2(various.UnitVec2(force))
	target := -1
	var crossMax float64
	for _, s := range c.Sides {
		if cross := windCross(c.Site, dir, s); cross > crossMax {
			crossMax = cross
			target = s.Other
		}
	}
	return target
}

// windForceScalar returns the wind speed carried from cell from into cell to.
func (t *Terrain) windForceScalar(from, to int, force vectors.Vec2) float64 {
	fromHeight := t.Config.ElevationInMetersAsl(t.Cells[from].Elevation)
	toHeight := t.Config.ElevationInMetersAsl(t.Cells[to].Elevation)
	speed := windProfile(fromHeight, toHeight, force.Len())
	friction := 0.6
	if t.Cells[to].FeatureType == FeatureOcean {
		friction = 1
	}
	return speed * friction
}

// windProfile adjusts a wind speed measured at sourceHeight to targetHeight
// using the wind profile power law.
func windProfile(sourceHeight, targetHeight, speed float64) float64 {
	if sourceHeight == 0 || targetHeight == 0 {
		sourceHeight += 0.01
		targetHeight += 0.01
	}
	return speed * math.Pow(targetHeight/sourceHeight, 0.143)
}

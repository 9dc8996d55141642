package genworldplanar

import (
	"log"
)

// assignFeatures partitions all cells into connected Ocean, Land and Lake
// features and marks rivers.
func (t *Terrain) assignFeatures() {
	t.classifyFeatures()
	t.markRivers()

	var numLand, numLake int
	for _, f := range t.Features {
		switch f.Type {
		case FeatureLand:
			numLand++
		case FeatureLake:
			numLake++
		}
	}
	log.Printf("Found %d land masses and %d lakes", numLand, numLake)
}

// classifyFeatures clears and reassigns the feature type and index of every
// cell.
func (t *Terrain) classifyFeatures() {
	for i := range t.Cells {
		t.Cells[i].FeatureType = FeatureNone
		t.Cells[i].FeatureIndex = -1
	}
	t.Features = t.Features[:0]

	// The ocean grows from the lowest cell on the map boundary.
	if start := t.lowestBoundaryCell(); start >= 0 && t.Config.IsBelowSeaLevel(t.Cells[start].Elevation) {
		size := t.floodFill(start, FeatureOcean, 0)
		t.Features = append(t.Features, Feature{Type: FeatureOcean, Index: 0, Root: start, Size: size})
	}

	var landIndex, lakeIndex int
	for i := range t.Cells {
		if t.Cells[i].FeatureType != FeatureNone {
			continue
		}
		var ft FeatureType
		var idx int
		if t.Config.IsBelowSeaLevel(t.Cells[i].Elevation) {
			ft, idx = FeatureLake, lakeIndex
			lakeIndex++
		} else {
			ft, idx = FeatureLand, landIndex
			landIndex++
		}
		size := t.floodFill(i, ft, idx)
		t.Features = append(t.Features, Feature{Type: ft, Index: idx, Root: i, Size: size})
	}
	t.nameFeatures()
}

// lowestBoundaryCell returns the map boundary cell with the lowest
// elevation, or -1 if there is none.
func (t *Terrain) lowestBoundaryCell() int {
	best := -1
	for i := range t.Cells {
		if !t.Cells[i].OnBoundary {
			continue
		}
		if best < 0 || t.Cells[i].Elevation < t.Cells[best].Elevation {
			best = i
		}
	}
	return best
}

// floodFill assigns the feature type and index to all unmarked cells
// connected to start that are on the same side of the sea level. Returns the
// number of cells marked.
func (t *Terrain) floodFill(start int, ft FeatureType, idx int) int {
	below := t.Config.IsBelowSeaLevel(t.Cells[start].Elevation)
	t.Cells[start].FeatureType = ft
	t.Cells[start].FeatureIndex = idx
	queue := []int{start}
	size := 1
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, nb := range t.neighbors(c) {
			n := &t.Cells[nb]
			if n.FeatureType != FeatureNone || t.Config.IsBelowSeaLevel(n.Elevation) != below {
				continue
			}
			n.FeatureType = ft
			n.FeatureIndex = idx
			queue = append(queue, nb)
			size++
		}
	}
	return size
}

// markRivers flags land cells that drain into a neighbor and carry enough
// water.
func (t *Terrain) markRivers() {
	for i := range t.Cells {
		c := &t.Cells[i]
		c.IsRiver = c.FeatureType == FeatureLand && c.Downhill.Target >= 0 && c.Downhill.Flux > t.Config.Rivers.MinimumFlux
	}
}

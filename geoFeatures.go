package genworldplanar

import (
	"github.com/Flokey82/go_gens/genlanguage"
)

// Feature is a connected set of cells of the same FeatureType.
type Feature struct {
	Type  FeatureType `json:"type"`
	Index int         `json:"index"` // Index within features of the same type
	Root  int         `json:"root"`  // Cell the flood fill started from
	Size  int         `json:"size"`  // Number of cells
	Name  string      `json:"name"`
}

// nameFeatures gives every land mass and lake a generated name. The names
// only depend on the seed and the position of the feature in the list.
func (t *Terrain) nameFeatures() {
	for i := range t.Features {
		f := &t.Features[i]
		if f.Type == FeatureOcean {
			f.Name = "Ocean"
			continue
		}
		lang := genlanguage.GenLanguage(t.Seed + int64(f.Root))
		f.Name = lang.MakeName()
	}
}

// FeatureOf returns the feature the given cell belongs to, or nil.
func (t *Terrain) FeatureOf(cell int) *Feature {
	c := &t.Cells[cell]
	for i := range t.Features {
		if f := &t.Features[i]; f.Type == c.FeatureType && f.Index == c.FeatureIndex {
			return f
		}
	}
	return nil
}

// FeatureCells returns the indices of all cells of the given feature.
func (t *Terrain) FeatureCells(f *Feature) []int {
	var res []int
	for i := range t.Cells {
		if t.Cells[i].FeatureType == f.Type && t.Cells[i].FeatureIndex == f.Index {
			res = append(res, i)
		}
	}
	return res
}

// Coastline returns the edges separating the cells of the given land
// feature from other cells or from the map boundary.
func (t *Terrain) Coastline(f *Feature) []int {
	var res []int
	for _, ci := range t.FeatureCells(f) {
		c := &t.Cells[ci]
		for _, s := range c.Sides {
			if s.Other < 0 {
				res = append(res, s.Edge)
				continue
			}
			o := &t.Cells[s.Other]
			if o.FeatureType != f.Type || o.FeatureIndex != f.Index {
				res = append(res, s.Edge)
			}
		}
	}
	return res
}

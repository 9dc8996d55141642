package genworldplanar

import (
	"errors"
	"math"

	goastar "github.com/beefsack/go-astar"

	"github.com/Flokey82/genworldplanar/various"
)

// ErrNoPath is returned if two cells are not connected over land.
var ErrNoPath = errors.New("no overland path")

// FindPath returns the cheapest overland path between two land cells and its
// cost. Walking uphill costs more than walking downhill.
func (t *Terrain) FindPath(from, to int) ([]int, float64, error) {
	if from < 0 || from >= len(t.Cells) || to < 0 || to >= len(t.Cells) {
		return nil, 0, errors.New("cell index out of range")
	}
	if t.Cells[from].FeatureType != FeatureLand || t.Cells[to].FeatureType != FeatureLand {
		return nil, 0, ErrNoPath
	}
	pf := &pathFinder{t: t, nodes: make(map[int]*pathCell)}
	path, cost, found := goastar.Path(pf.node(from), pf.node(to))
	if !found {
		return nil, 0, ErrNoPath
	}

	res := make([]int, len(path))
	for i, p := range path {
		res[i] = p.(*pathCell).index
	}
	// go-astar walks back from the destination.
	if res[0] != from {
		for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
			res[i], res[j] = res[j], res[i]
		}
	}
	return res, cost, nil
}

type pathFinder struct {
	t     *Terrain
	nodes map[int]*pathCell
}

func (pf *pathFinder) node(i int) *pathCell {
	if n, ok := pf.nodes[i]; ok {
		return n
	}
	n := &pathCell{pf: pf, index: i}
	pf.nodes[i] = n
	return n
}

type pathCell struct {
	pf    *pathFinder
	index int
}

// PathNeighbors returns the neighboring land cells.
func (n *pathCell) PathNeighbors() []goastar.Pather {
	t := n.pf.t
	nbs := make([]goastar.Pather, 0, 6)
	for _, nb := range t.neighbors(n.index) {
		if t.Cells[nb].FeatureType == FeatureLand {
			nbs = append(nbs, n.pf.node(nb))
		}
	}
	return nbs
}

// PathNeighborCost calculates the exact movement cost to neighbor nodes.
func (n *pathCell) PathNeighborCost(to goastar.Pather) float64 {
	t := n.pf.t
	a, b := &t.Cells[n.index], &t.Cells[to.(*pathCell).index]
	dist := various.Dist2(a.Site, b.Site)

	// Altitude changes come with a cost (downhill is cheaper than uphill).
	climb := (t.Config.ElevationInMetersAsl(b.Elevation) - t.Config.ElevationInMetersAsl(a.Elevation)) / 1000
	return dist * math.Max(0.5, 1+climb)
}

// PathEstimatedCost is a heuristic method for estimating movement costs
// between non-adjacent nodes.
func (n *pathCell) PathEstimatedCost(to goastar.Pather) float64 {
	t := n.pf.t
	return 0.5 * various.Dist2(t.Cells[n.index].Site, t.Cells[to.(*pathCell).index].Site)
}

// Package mesh builds the planar cell mesh the terrain is simulated on: a
// relaxed blue noise point set, its Delaunay triangulation and the Voronoi
// cells clipped to the map rectangle.
package mesh

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/Flokey82/genworldplanar/various"
)

// ErrTooFewPoints is returned if fewer than three distinct points are left
// to build a mesh from.
var ErrTooFewPoints = errors.New("mesh: at least three distinct points are required")

// numRelaxations is the number of Lloyd relaxation rounds applied by Build.
const numRelaxations = 2

// Edge is an edge of the planar subdivision. Right is -1 if the edge lies on
// the map boundary.
type Edge struct {
	A, B  [2]float64
	Left  int
	Right int
}

// IsBoundary returns true if the edge has only one incident cell.
func (e Edge) IsBoundary() bool {
	return e.Right < 0
}

// Other returns the cell on the other side of the edge as seen from cell c,
// or -1 if there is none.
func (e Edge) Other(c int) int {
	switch c {
	case e.Left:
		return e.Right
	case e.Right:
		return e.Left
	}
	return -1
}

// Side caches the geometry of an edge as seen from one of its cells.
type Side struct {
	Edge       int        // Index of the edge
	Other      int        // Cell across the edge, -1 on the map boundary
	A, B       [2]float64 // Edge end points
	Unit       [2]float64 // Unit vector from B to A
	CenterDist float64    // Distance from the cell site to the edge segment
	MidDir     [2]float64 // Unit vector from the cell site to the edge midpoint
}

// Cell is a single polygon of the mesh.
type Cell struct {
	ID         int
	Site       [2]float64   // Generating point, used as the cell center
	Centroid   [2]float64   // Area weighted centroid of the polygon
	Area       float64      // Polygon area
	Polygon    [][2]float64 // Ordered boundary vertices
	Neighbors  []int        // Cells sharing an edge
	Edges      []int        // Indices into Mesh.Edges
	Sides      []Side       // Per edge geometry, same order as Edges
	OnBoundary bool         // Cell touches the map rectangle
}

// Mesh is a planar subdivision of the rectangle [0,Width]x[0,Height].
type Mesh struct {
	Width  float64
	Height float64
	Cells  []*Cell
	Edges  []Edge
	*TriangleMesh
}

// Build samples blue noise points with the given minimum distance, relaxes
// them twice and returns the resulting mesh.
func Build(rnd *rand.Rand, width, height, minDist float64) (*Mesh, error) {
	points := SampleBlueNoise(rnd, width, height, minDist)
	for i := 0; i < numRelaxations; i++ {
		var err error
		if points, err = Relax(points, width, height); err != nil {
			return nil, err
		}
	}
	return NewMesh(points, width, height)
}

// Relax performs one round of Lloyd relaxation: every point is replaced by
// the centroid of its Voronoi cell.
func Relax(points [][2]float64, width, height float64) ([][2]float64, error) {
	points, err := prepare(points, width, height)
	if err != nil {
		return nil, err
	}
	tm, err := triangulate(points)
	if err != nil {
		return nil, err
	}
	relaxed := make([][2]float64, len(points))
	for i, poly := range voronoiCells(points, tm, width, height) {
		centroid, area := polygonCentroid(vertices(poly))
		if area == 0 {
			centroid = points[i]
		}
		relaxed[i] = centroid
	}
	return relaxed, nil
}

// NewMesh builds the mesh for the given points. Duplicate points are
// dropped.
func NewMesh(points [][2]float64, width, height float64) (*Mesh, error) {
	points, err := prepare(points, width, height)
	if err != nil {
		return nil, err
	}
	tm, err := triangulate(points)
	if err != nil {
		return nil, err
	}

	m := &Mesh{
		Width:        width,
		Height:       height,
		Cells:        make([]*Cell, len(points)),
		TriangleMesh: tm,
	}
	polys := voronoiCells(points, tm, width, height)
	for i, poly := range polys {
		if len(poly) < 3 {
			return nil, fmt.Errorf("mesh: cell %d at %v is degenerate", i, points[i])
		}
		verts := vertices(poly)
		centroid, area := polygonCentroid(verts)
		m.Cells[i] = &Cell{
			ID:       i,
			Site:     points[i],
			Centroid: centroid,
			Area:     math.Abs(area),
			Polygon:  verts,
		}
	}

	// Every shared edge is created once, by whichever of its two cells
	// reaches it first.
	shared := make(map[[2]int]int)
	for i, poly := range polys {
		for k, v := range poly {
			next := poly[(k+1)%len(poly)]
			if v.label == boundaryLabel {
				m.addEdge(Edge{A: v.p, B: next.p, Left: i, Right: -1})
				continue
			}
			key := [2]int{min(i, v.label), max(i, v.label)}
			if _, ok := shared[key]; ok {
				continue
			}
			shared[key] = m.addEdge(Edge{A: v.p, B: next.p, Left: i, Right: v.label})
		}
	}

	for _, c := range m.Cells {
		m.assignSides(c)
	}
	return m, nil
}

func (m *Mesh) addEdge(e Edge) int {
	idx := len(m.Edges)
	m.Edges = append(m.Edges, e)
	left := m.Cells[e.Left]
	left.Edges = append(left.Edges, idx)
	if e.Right < 0 {
		left.OnBoundary = true
		return idx
	}
	right := m.Cells[e.Right]
	right.Edges = append(right.Edges, idx)
	left.Neighbors = append(left.Neighbors, e.Right)
	right.Neighbors = append(right.Neighbors, e.Left)
	return idx
}

// assignSides computes the per edge geometry cache of c.
func (m *Mesh) assignSides(c *Cell) {
	c.Sides = make([]Side, len(c.Edges))
	for i, ei := range c.Edges {
		e := m.Edges[ei]
		c.Sides[i] = Side{
			Edge:       ei,
			Other:      e.Other(c.ID),
			A:          e.A,
			B:          e.B,
			Unit:       various.Normalize2(various.Sub2(e.A, e.B)),
			CenterDist: various.DistToSegment2(e.A, e.B, c.Site),
			MidDir:     various.Normalize2(various.Sub2(various.Mid2(e.A, e.B), c.Site)),
		}
	}
}

// Sites returns the generating points of all cells.
func (m *Mesh) Sites() [][2]float64 {
	sites := make([][2]float64, len(m.Cells))
	for i, c := range m.Cells {
		sites[i] = c.Site
	}
	return sites
}

// BoundaryCells returns the indices of all cells touching the map boundary.
func (m *Mesh) BoundaryCells() []int {
	var res []int
	for _, c := range m.Cells {
		if c.OnBoundary {
			res = append(res, c.ID)
		}
	}
	return res
}

// FindCell returns the index of the cell whose site is closest to (x, y).
// It walks the triangulation greedily, starting at cell 0.
func (m *Mesh) FindCell(x, y float64) int {
	if len(m.Cells) == 0 {
		return -1
	}
	p := [2]float64{x, y}
	cur := 0
	curDist := various.Dist2(m.Cells[cur].Site, p)
	var nbs []int
	for {
		best, bestDist := cur, curDist
		nbs = m.r_circulate_r(nbs, cur)
		for _, nb := range nbs {
			if d := various.Dist2(m.Cells[nb].Site, p); d < bestDist {
				best, bestDist = nb, d
			}
		}
		if best == cur {
			return cur
		}
		cur, curDist = best, bestDist
	}
}

// prepare drops duplicate points and validates the rest.
func prepare(points [][2]float64, width, height float64) ([][2]float64, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("mesh: invalid extent %gx%g", width, height)
	}
	seen := make(map[[2]float64]bool, len(points))
	res := make([][2]float64, 0, len(points))
	for _, p := range points {
		if !various.IsFinite(p[0]) || !various.IsFinite(p[1]) {
			return nil, fmt.Errorf("mesh: invalid point %v", p)
		}
		if p[0] < 0 || p[0] > width || p[1] < 0 || p[1] > height {
			return nil, fmt.Errorf("mesh: point %v outside of %gx%g", p, width, height)
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		res = append(res, p)
	}
	if len(res) < 3 {
		return nil, ErrTooFewPoints
	}
	return res, nil
}

func vertices(poly []clipVertex) [][2]float64 {
	res := make([][2]float64, len(poly))
	for i, v := range poly {
		res[i] = v.p
	}
	return res
}

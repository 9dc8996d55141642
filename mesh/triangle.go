package mesh

import (
	"fmt"

	"github.com/fogleman/delaunay"
)

// TriangleMesh is the half-edge form of a Delaunay triangulation. Regions
// are the input points, sides are the directed edges of the triangles.
type TriangleMesh struct {
	RegInSide            []int
	Triangles            []int
	Halfedges            []int
	RegionNeighborsCache [][]int
	numSides             int
	numRegions           int
	numTriangles         int
}

// NewTriangleMesh takes the triangles and halfedges produced by the
// triangulation and fills in the rest.
func NewTriangleMesh(numRegions int, tris, halfEdges []int) *TriangleMesh {
	tm := &TriangleMesh{
		Triangles:            tris,
		Halfedges:            halfEdges,
		RegionNeighborsCache: make([][]int, numRegions),
		numRegions:           numRegions,
		numSides:             len(tris),
		numTriangles:         len(tris) / 3,
	}

	// Index an incoming side for each region. Hull sides are preferred so
	// that circulating around a hull region starts at the hull.
	tm.RegInSide = make([]int, tm.numRegions)
	for r := range tm.RegInSide {
		tm.RegInSide[r] = -1
	}
	for s := 0; s < len(tm.Triangles); s++ {
		endpoint := tm.Triangles[s_next_s(s)]
		if tm.RegInSide[endpoint] == -1 || tm.Halfedges[s] == -1 {
			tm.RegInSide[endpoint] = s
		}
	}

	for r := 0; r < tm.numRegions; r++ {
		tm.RegionNeighborsCache[r] = tm.r_circulate_r_no_cache(nil, r)
	}
	return tm
}

// triangulate returns the triangle mesh of the given points.
func triangulate(points [][2]float64) (*TriangleMesh, error) {
	pts := make([]delaunay.Point, len(points))
	for i, p := range points {
		pts[i] = delaunay.Point{X: p[0], Y: p[1]}
	}
	tri, err := delaunay.Triangulate(pts)
	if err != nil {
		return nil, fmt.Errorf("mesh: triangulating %d points: %w", len(points), err)
	}
	return NewTriangleMesh(len(points), tri.Triangles, tri.Halfedges), nil
}

// NumRegions returns the number of regions (input points).
func (tm *TriangleMesh) NumRegions() int {
	return tm.numRegions
}

// NumTriangles returns the number of triangles.
func (tm *TriangleMesh) NumTriangles() int {
	return tm.numTriangles
}

func s_next_s(s int) int {
	if s%3 == 2 {
		return s - 2
	}
	return s + 1
}

// r_circulate_r returns the regions adjacent to r using the cached
// neighbors.
func (tm *TriangleMesh) r_circulate_r(out_r []int, r int) []int {
	return append(out_r[:0], tm.RegionNeighborsCache[r]...)
}

// r_circulate_r_no_cache walks the sides around r. On the convex hull the
// walk stops at the hull side, whose end region is the last neighbor.
func (tm *TriangleMesh) r_circulate_r_no_cache(out_r []int, r int) []int {
	out_r = out_r[:0]
	s0 := tm.RegInSide[r]
	if s0 == -1 {
		return out_r
	}
	incoming := s0
	for {
		out_r = append(out_r, tm.s_begin_r(incoming))
		outgoing := s_next_s(incoming)
		incoming = tm.Halfedges[outgoing]
		if incoming == -1 {
			out_r = append(out_r, tm.s_end_r(outgoing))
			break
		}
		if incoming == s0 {
			break
		}
	}
	return out_r
}

func (tm *TriangleMesh) t_circulate_r(out_r []int, t int) []int {
	out_r = out_r[:0]
	for i := 0; i < 3; i++ {
		out_r = append(out_r, tm.Triangles[3*t+i])
	}
	return out_r
}

func (tm *TriangleMesh) s_end_r(s int) int {
	return tm.Triangles[s_next_s(s)]
}

func (tm *TriangleMesh) s_begin_r(s int) int {
	return tm.Triangles[s]
}

// RegionNeighbors returns the Delaunay neighbors of region r.
func (tm *TriangleMesh) RegionNeighbors(r int) []int {
	return tm.r_circulate_r(nil, r)
}

// TriangleRegions returns the three regions of triangle t.
func (tm *TriangleMesh) TriangleRegions(t int) []int {
	return tm.t_circulate_r(nil, t)
}

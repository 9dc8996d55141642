package mesh

import (
	"math"

	"github.com/Flokey82/genworldplanar/various"
)

// boundaryLabel marks polygon edges that lie on the map rectangle.
const boundaryLabel = -1

// clipVertex is a polygon vertex together with the label of the edge that
// starts at it (the neighboring region across that edge, or boundaryLabel).
type clipVertex struct {
	p     [2]float64
	label int
}

// voronoiCells computes the Voronoi cell of every region of tm, clipped to
// the rectangle [0,width]x[0,height].
//
// Each cell starts as the map rectangle and is cut by the perpendicular
// bisector between its site and every Delaunay neighbor. The edge labels
// record which neighbor produced each polygon edge.
func voronoiCells(points [][2]float64, tm *TriangleMesh, width, height float64) [][]clipVertex {
	eps := 1e-9 * math.Max(width, height)
	cells := make([][]clipVertex, len(points))
	var nbs []int
	for r, site := range points {
		poly := []clipVertex{
			{p: [2]float64{0, 0}, label: boundaryLabel},
			{p: [2]float64{width, 0}, label: boundaryLabel},
			{p: [2]float64{width, height}, label: boundaryLabel},
			{p: [2]float64{0, height}, label: boundaryLabel},
		}
		nbs = tm.r_circulate_r(nbs, r)
		for _, nb := range nbs {
			poly = clipHalfPlane(poly, site, points[nb], nb)
		}
		cells[r] = removeShortEdges(poly, eps)
	}
	return cells
}

// clipHalfPlane keeps the part of poly that is closer to site than to other.
// Edges created along the bisector are labeled with label.
func clipHalfPlane(poly []clipVertex, site, other [2]float64, label int) []clipVertex {
	n := various.Sub2(other, site)
	c := various.Dot2(n, various.Mid2(site, other))
	dist := func(p [2]float64) float64 {
		return various.Dot2(n, p) - c
	}

	out := make([]clipVertex, 0, len(poly)+1)
	for k, cur := range poly {
		next := poly[(k+1)%len(poly)]
		dc, dn := dist(cur.p), dist(next.p)
		if dc <= 0 {
			out = append(out, cur)
			if dn > 0 {
				out = append(out, clipVertex{p: intersect(cur.p, next.p, dc, dn), label: label})
			}
		} else if dn <= 0 {
			out = append(out, clipVertex{p: intersect(cur.p, next.p, dc, dn), label: cur.label})
		}
	}
	return out
}

func intersect(a, b [2]float64, da, db float64) [2]float64 {
	t := da / (da - db)
	return [2]float64{a[0] + t*(b[0]-a[0]), a[1] + t*(b[1]-a[1])}
}

// removeShortEdges drops every vertex whose outgoing edge is shorter than
// eps. The following vertex keeps its own label.
func removeShortEdges(poly []clipVertex, eps float64) []clipVertex {
	for changed := true; changed && len(poly) > 0; {
		changed = false
		for k := 0; k < len(poly); k++ {
			next := poly[(k+1)%len(poly)]
			if various.Dist2(poly[k].p, next.p) < eps {
				poly = append(poly[:k], poly[k+1:]...)
				changed = true
				break
			}
		}
	}
	return poly
}

// polygonCentroid returns the area weighted centroid and the signed area of
// the given polygon. Degenerate polygons return the vertex mean.
func polygonCentroid(poly [][2]float64) ([2]float64, float64) {
	if len(poly) == 0 {
		return [2]float64{}, 0
	}
	var x, y, k float64
	b := poly[len(poly)-1]
	for _, p := range poly {
		a := b
		b = p
		c := a[0]*b[1] - b[0]*a[1]
		k += c
		x += (a[0] + b[0]) * c
		y += (a[1] + b[1]) * c
	}
	if math.Abs(k) < 1e-12 {
		var mean [2]float64
		for _, p := range poly {
			mean[0] += p[0]
			mean[1] += p[1]
		}
		return various.Scale2(mean, 1/float64(len(poly))), 0
	}
	k *= 3
	return [2]float64{x / k, y / k}, k / 6
}

package genworldplanar

import (
	"math"
	"math/rand"

	"github.com/Flokey82/genworldplanar/mesh"
	"github.com/Flokey82/genworldplanar/various"
	"github.com/Flokey82/go_gens/vectors"
)

// Plates is the coarse mesh of tectonic plates. Every cell of the mesh is
// one plate.
type Plates struct {
	*mesh.Mesh
	Motion     []vectors.Vec2  // Motion vector per plate
	Boundaries []PlateBoundary // Edges between two plates
}

// PlateBoundary describes the relative motion of the two plates sharing an
// edge.
type PlateBoundary struct {
	Edge       int          // Index into Plates.Edges
	Stress     vectors.Vec2 // Motion of the left plate relative to the right one
	Magnitude  float64      // Length of Stress
	Parallel   float64      // Stress along the edge
	Orthogonal float64      // Stress across the edge, also the influence radius
	Divergent  bool         // The plates move apart
}

func newPlates(m *mesh.Mesh) *Plates {
	return &Plates{Mesh: m}
}

// assignMotions gives every plate a random direction scaled by a random
// magnitude up to scale.
func (p *Plates) assignMotions(rnd *rand.Rand, scale float64) {
	p.Motion = make([]vectors.Vec2, len(p.Cells))
	for i := range p.Motion {
		dir := various.UnitVec2(vectors.NewVec2(0.5-rnd.Float64(), 0.5-rnd.Float64()))
		p.Motion[i] = dir.Mul(rnd.Float64() * scale)
	}
}

// assignBoundaries derives the stress of every edge shared by two plates.
func (p *Plates) assignBoundaries() {
	p.Boundaries = p.Boundaries[:0]
	for i, e := range p.Edges {
		if e.IsBoundary() {
			continue
		}
		edgeVec := various.Normalize2(various.Sub2(e.A, e.B))
		left, right := p.Motion[e.Left], p.Motion[e.Right]
		stress := left.Sub(right)
		s := various.FromVec2(stress)

		dir := various.Normalize2(various.Sub2(p.Cells[e.Right].Site, p.Cells[e.Left].Site))
		directionality := various.Dot2(dir, various.FromVec2(various.UnitVec2(right)))

		p.Boundaries = append(p.Boundaries, PlateBoundary{
			Edge:       i,
			Stress:     stress,
			Magnitude:  stress.Len(),
			Parallel:   math.Abs(various.Dot2(s, edgeVec)),
			Orthogonal: math.Abs(various.Cross2(s, edgeVec)),
			Divergent:  directionality >= 0,
		})
	}
}

// PlateAt returns the plate containing the point (x, y).
func (p *Plates) PlateAt(x, y float64) int {
	return p.FindCell(x, y)
}

// plateDelta returns the elevation change at point pt caused by all plate
// boundaries whose influence radius reaches it.
func (p *Plates) plateDelta(pt [2]float64) float64 {
	var delta float64
	for _, b := range p.Boundaries {
		if b.Orthogonal <= 0 {
			continue
		}
		e := p.Edges[b.Edge]
		d := various.DistToSegment2(e.A, e.B, pt)
		if d >= b.Orthogonal {
			continue
		}
		n := d / b.Orthogonal
		amount := 0.1 * math.Pow(1-n*n, 2)
		if b.Divergent {
			delta -= amount
		} else {
			delta += amount
		}
	}
	return delta
}

package mesh

import (
	"bytes"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/Flokey82/genworldplanar/various"
)

func TestSampleBlueNoise(t *testing.T) {
	const w, h, r = 60.0, 40.0, 4.0
	pts := SampleBlueNoise(rand.New(rand.NewSource(1)), w, h, r)
	if len(pts) < 50 {
		t.Fatalf("expected a dense sample, got %d points", len(pts))
	}
	for i, a := range pts {
		if a[0] < 0 || a[0] >= w || a[1] < 0 || a[1] >= h {
			t.Fatalf("point %v outside of the map", a)
		}
		for _, b := range pts[i+1:] {
			if d := various.Dist2(a, b); d < r {
				t.Fatalf("points %v and %v are only %f apart", a, b, d)
			}
		}
	}

	again := SampleBlueNoise(rand.New(rand.NewSource(1)), w, h, r)
	if len(again) != len(pts) || again[len(again)-1] != pts[len(pts)-1] {
		t.Fatal("sampling is not deterministic for a fixed seed")
	}
}

func TestNewMeshTooFewPoints(t *testing.T) {
	_, err := NewMesh([][2]float64{{1, 1}, {2, 2}, {1, 1}}, 10, 10)
	if !errors.Is(err, ErrTooFewPoints) {
		t.Fatalf("expected ErrTooFewPoints, got %v", err)
	}
	if _, err := NewMesh([][2]float64{{1, 1}, {2, 2}, {30, 3}}, 10, 10); err == nil {
		t.Fatal("expected an error for a point outside of the map")
	}
}

func TestNewMeshGrid(t *testing.T) {
	m, err := NewMesh([][2]float64{{2.5, 2.5}, {7.5, 2.5}, {2.5, 7.5}, {7.5, 7.5}}, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Cells) != 4 {
		t.Fatalf("expected 4 cells, got %d", len(m.Cells))
	}
	for _, c := range m.Cells {
		if math.Abs(c.Area-25) > 1e-9 {
			t.Errorf("cell %d has area %f, want 25", c.ID, c.Area)
		}
		if len(c.Neighbors) != 2 {
			t.Errorf("cell %d has neighbors %v, want 2", c.ID, c.Neighbors)
		}
		if !c.OnBoundary {
			t.Errorf("cell %d should touch the boundary", c.ID)
		}
		if various.Dist2(c.Centroid, c.Site) > 1e-9 {
			t.Errorf("cell %d centroid %v differs from site %v", c.ID, c.Centroid, c.Site)
		}
	}
}

func TestMeshInvariants(t *testing.T) {
	const w, h = 120.0, 80.0
	m, err := Build(rand.New(rand.NewSource(42)), w, h, 5)
	if err != nil {
		t.Fatal(err)
	}

	var area float64
	for _, c := range m.Cells {
		area += c.Area
		if len(c.Sides) != len(c.Edges) {
			t.Fatalf("cell %d has %d sides for %d edges", c.ID, len(c.Sides), len(c.Edges))
		}
		for _, nb := range c.Neighbors {
			if nb == c.ID {
				t.Fatalf("cell %d is its own neighbor", c.ID)
			}
			if !contains(m.Cells[nb].Neighbors, c.ID) {
				t.Fatalf("cell %d lists %d as neighbor but not vice versa", c.ID, nb)
			}
		}
		for _, s := range c.Sides {
			if math.Abs(various.Len2(s.Unit)-1) > 1e-9 {
				t.Fatalf("cell %d has a non unit edge vector %v", c.ID, s.Unit)
			}
		}
	}
	if math.Abs(area-w*h) > 1e-6*w*h {
		t.Errorf("cells cover %f, want %f", area, w*h)
	}

	eps := 1e-6
	onBorder := func(p [2]float64) bool {
		return p[0] < eps || p[0] > w-eps || p[1] < eps || p[1] > h-eps
	}
	for i, e := range m.Edges {
		if e.Left < 0 {
			t.Fatalf("edge %d has no left cell", i)
		}
		if !contains(m.Cells[e.Left].Edges, i) {
			t.Fatalf("edge %d missing from its left cell", i)
		}
		if e.IsBoundary() {
			if !onBorder(e.A) || !onBorder(e.B) {
				t.Fatalf("boundary edge %d (%v, %v) is not on the map border", i, e.A, e.B)
			}
			continue
		}
		if e.Left == e.Right {
			t.Fatalf("edge %d has the same cell on both sides", i)
		}
		if !contains(m.Cells[e.Right].Edges, i) {
			t.Fatalf("edge %d missing from its right cell", i)
		}
	}
}

func TestFindCell(t *testing.T) {
	m, err := Build(rand.New(rand.NewSource(3)), 50, 50, 4)
	if err != nil {
		t.Fatal(err)
	}
	rnd := rand.New(rand.NewSource(9))
	for i := 0; i < 200; i++ {
		p := [2]float64{rnd.Float64() * 50, rnd.Float64() * 50}
		best, bestDist := -1, math.Inf(1)
		for _, c := range m.Cells {
			if d := various.Dist2(c.Site, p); d < bestDist {
				best, bestDist = c.ID, d
			}
		}
		if got := m.FindCell(p[0], p[1]); various.Dist2(m.Cells[got].Site, p) != bestDist {
			t.Fatalf("FindCell(%v) = %d, want %d", p, got, best)
		}
	}
}

func TestMeshIO(t *testing.T) {
	m, err := Build(rand.New(rand.NewSource(5)), 40, 30, 4)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := m.Write(&buf); err != nil {
		t.Fatal(err)
	}
	m2, err := ReadMesh(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(m2.Cells) != len(m.Cells) || len(m2.Edges) != len(m.Edges) {
		t.Fatalf("read back %d cells / %d edges, want %d / %d", len(m2.Cells), len(m2.Edges), len(m.Cells), len(m.Edges))
	}
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

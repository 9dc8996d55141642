package genworldplanar

import (
	"fmt"
	"math"
	"sort"

	"github.com/Flokey82/genworldplanar/various"
	"github.com/Flokey82/go_gens/vectors"
)

// WindBand is a latitude band with a prevailing wind.
type WindBand struct {
	Name          string  `json:"name"`
	StartLatitude float64 `json:"startLatitude"` // Inclusive lower latitude in degrees
	EndLatitude   float64 `json:"endLatitude"`   // Exclusive upper latitude in degrees
	Angle         float64 `json:"angle"`         // Bearing in degrees, 0 = north, clockwise
	Velocity      float64 `json:"velocity"`
	Influence     float64 `json:"influence"` // Weight of the band force in cells that are not sources
}

// Contains returns true if lat lies within [StartLatitude, EndLatitude).
func (b *WindBand) Contains(lat float64) bool {
	return lat >= b.StartLatitude && lat < b.EndLatitude
}

// Force returns the band wind vector.
func (b *WindBand) Force() vectors.Vec2 {
	return various.Bearing2(b.Angle).Mul(b.Velocity)
}

// WindBands is the set of prevailing wind bands. The bands must not overlap
// and together cover [-90, 90].
type WindBands []WindBand

// Validate checks that the bands tile [-90, 90] without gaps or overlaps.
func (bs WindBands) Validate() error {
	if len(bs) == 0 {
		return fmt.Errorf("no wind bands")
	}
	sorted := make(WindBands, len(bs))
	copy(sorted, bs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartLatitude < sorted[j].StartLatitude
	})
	prev := -90.0
	for _, b := range sorted {
		if b.EndLatitude <= b.StartLatitude {
			return fmt.Errorf("wind band %q is empty: [%g, %g)", b.Name, b.StartLatitude, b.EndLatitude)
		}
		if b.StartLatitude != prev {
			return fmt.Errorf("wind bands leave a gap or overlap at latitude %g (band %q)", prev, b.Name)
		}
		if b.Velocity < 0 || math.IsNaN(b.Velocity) {
			return fmt.Errorf("wind band %q has invalid velocity %g", b.Name, b.Velocity)
		}
		prev = b.EndLatitude
	}
	if prev < 90 {
		return fmt.Errorf("wind bands end at latitude %g instead of 90", prev)
	}
	return nil
}

// Lookup returns the band containing the given latitude, or nil if there is
// none. Latitude 90 lies outside of every half-open band.
func (bs WindBands) Lookup(lat float64) *WindBand {
	for i := range bs {
		if bs[i].Contains(lat) {
			return &bs[i]
		}
	}
	return nil
}

// Nearest is like Lookup but falls back to the band closest to the given
// latitude, so it never returns nil for a non-empty set.
func (bs WindBands) Nearest(lat float64) *WindBand {
	if b := bs.Lookup(lat); b != nil {
		return b
	}
	var best *WindBand
	bestDist := math.Inf(1)
	for i := range bs {
		b := &bs[i]
		d := math.Min(math.Abs(lat-b.StartLatitude), math.Abs(lat-b.EndLatitude))
		if d < bestDist {
			best, bestDist = b, d
		}
	}
	return best
}

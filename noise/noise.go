package noise

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// Noise is a wrapper for opensimplex.Noise, initialized with a given seed
// and the extent of the map so that sample positions can be given in map
// coordinates.
type Noise struct {
	Seed   int64
	Width  float64
	Height float64
	OS     opensimplex.Noise
}

// NewNoise returns a new Noise for a map of the given size.
func NewNoise(seed int64, width, height float64) *Noise {
	return &Noise{
		Seed:   seed,
		Width:  width,
		Height: height,
		OS:     opensimplex.New(seed),
	}
}

// Eval2 returns the raw coherent noise value at the given point in [-1, 1].
func (n *Noise) Eval2(x, y float64) float64 {
	return math.Max(-1, math.Min(1, n.OS.Eval2(x, y)))
}

// OctaveConfig holds the parameters of a fractal noise sum.
type OctaveConfig struct {
	Iterations    int     `json:"iterations"`
	Frequency     float64 `json:"frequency"`
	Persistence   float64 `json:"persistence"`
	Lacunarity    float64 `json:"lacunarity"`
	StandardRatio float64 `json:"standardRatio"`
	BillowedRatio float64 `json:"billowedRatio"`
	RidgedRatio   float64 `json:"ridgedRatio"`
}

// Octaves sums n octaves of noise at the map position (x, y).
//
// Each octave blends the standard noise value, its absolute value (billowed)
// and one minus the absolute value (ridged) using the given ratios. After
// each octave the amplitude is multiplied by persistence and the frequency by
// lacunarity. The position is normalized by the map size first.
func (n *Noise) Octaves(x, y float64, iterations int, frequency, persistence, lacunarity, standardRatio, billowedRatio, ridgedRatio float64) float64 {
	x /= n.Width
	y /= n.Height

	amplitude := 1.0
	var sum float64
	for i := 0; i < iterations; i++ {
		sn := n.Eval2(frequency*x, frequency*y)
		bn := math.Abs(sn)
		rn := 1 - bn
		sum += (sn*standardRatio + bn*billowedRatio + rn*ridgedRatio) * amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	return sum
}

// Octavate is Octaves with the parameters taken from cfg.
func (n *Noise) Octavate(x, y float64, cfg OctaveConfig) float64 {
	return n.Octaves(x, y, cfg.Iterations, cfg.Frequency, cfg.Persistence, cfg.Lacunarity, cfg.StandardRatio, cfg.BillowedRatio, cfg.RidgedRatio)
}

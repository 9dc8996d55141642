package mesh

import (
	"math"
	"math/rand"
)

// maxSampleTries is the number of candidates tried around an active point
// before it is retired.
const maxSampleTries = 30

// SampleBlueNoise returns Poisson disk distributed points within
// [0,width)x[0,height) with a minimum distance of minDist between any two
// points, using Bridson's algorithm and the given random source.
func SampleBlueNoise(rnd *rand.Rand, width, height, minDist float64) [][2]float64 {
	if minDist <= 0 || width <= 0 || height <= 0 {
		return nil
	}

	// A cell size of r/sqrt(2) guarantees at most one point per grid cell.
	cellSize := minDist / math.Sqrt2
	gridW := int(math.Ceil(width / cellSize))
	gridH := int(math.Ceil(height / cellSize))
	grid := make([]int, gridW*gridH)
	for i := range grid {
		grid[i] = -1
	}

	toGrid := func(p [2]float64) (int, int) {
		gx := int(p[0] / cellSize)
		gy := int(p[1] / cellSize)
		if gx >= gridW {
			gx = gridW - 1
		}
		if gy >= gridH {
			gy = gridH - 1
		}
		return gx, gy
	}

	points := make([][2]float64, 0, gridW*gridH/2)
	active := make([]int, 0, 128)
	minDist2 := minDist * minDist

	isValid := func(p [2]float64) bool {
		if p[0] < 0 || p[0] >= width || p[1] < 0 || p[1] >= height {
			return false
		}
		gx, gy := toGrid(p)
		for dy := -2; dy <= 2; dy++ {
			for dx := -2; dx <= 2; dx++ {
				nx, ny := gx+dx, gy+dy
				if nx < 0 || nx >= gridW || ny < 0 || ny >= gridH {
					continue
				}
				if idx := grid[ny*gridW+nx]; idx != -1 {
					ddx := points[idx][0] - p[0]
					ddy := points[idx][1] - p[1]
					if ddx*ddx+ddy*ddy < minDist2 {
						return false
					}
				}
			}
		}
		return true
	}

	insert := func(p [2]float64) {
		idx := len(points)
		points = append(points, p)
		active = append(active, idx)
		gx, gy := toGrid(p)
		grid[gy*gridW+gx] = idx
	}

	insert([2]float64{rnd.Float64() * width, rnd.Float64() * height})
	for len(active) > 0 {
		ai := rnd.Intn(len(active))
		p := points[active[ai]]

		found := false
		for k := 0; k < maxSampleTries; k++ {
			// Candidate in the annulus [r, 2r] around p.
			angle := rnd.Float64() * 2 * math.Pi
			dist := minDist + rnd.Float64()*minDist
			candidate := [2]float64{
				p[0] + dist*math.Cos(angle),
				p[1] + dist*math.Sin(angle),
			}
			if isValid(candidate) {
				insert(candidate)
				found = true
				break
			}
		}
		if !found {
			active[ai] = active[len(active)-1]
			active = active[:len(active)-1]
		}
	}
	return points
}

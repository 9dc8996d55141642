package various

import (
	"math"

	"github.com/Flokey82/go_gens/vectors"
)

// Dist2 returns the eucledian distance between two points.
func Dist2(a, b [2]float64) float64 {
	return math.Hypot(a[0]-b[0], a[1]-b[1])
}

// Dot2 returns the dot product of two vectors.
func Dot2(a, b [2]float64) float64 {
	return a[0]*b[0] + a[1]*b[1]
}

// Len2 returns the length of the given vector.
func Len2(a [2]float64) float64 {
	return math.Hypot(a[0], a[1])
}

// Normalize2 returns the normalized vector of the given vector.
// A zero vector is returned unchanged.
func Normalize2(a [2]float64) [2]float64 {
	l := Len2(a)
	if l == 0 {
		return a
	}
	return [2]float64{a[0] / l, a[1] / l}
}

// Add2 returns the sum of two vectors.
func Add2(a, b [2]float64) [2]float64 {
	return [2]float64{a[0] + b[0], a[1] + b[1]}
}

// Sub2 returns the difference of two vectors.
func Sub2(a, b [2]float64) [2]float64 {
	return [2]float64{a[0] - b[0], a[1] - b[1]}
}

// Scale2 returns the scaled vector of the given vector.
func Scale2(v [2]float64, s float64) [2]float64 {
	return [2]float64{v[0] * s, v[1] * s}
}

// Mid2 returns the point halfway between a and b.
func Mid2(a, b [2]float64) [2]float64 {
	return [2]float64{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2}
}

// Cross2 returns the cross product of two vectors.
func Cross2(a, b [2]float64) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// DistToSegment2 returns the distance between a point p and a line
// segment defined by the points v and w.
func DistToSegment2(v, w, p [2]float64) float64 {
	l := Dist2(v, w)
	if l == 0 {
		// Degenerate segment, use the distance to either end.
		return Dist2(p, v)
	}
	t := math.Max(0, math.Min(1, ((p[0]-v[0])*(w[0]-v[0])+(p[1]-v[1])*(w[1]-v[1]))/(l*l)))
	return Dist2(p, [2]float64{v[0] + t*(w[0]-v[0]), v[1] + t*(w[1]-v[1])})
}

// ToVec2 converts a point into a vectors.Vec2.
func ToVec2(p [2]float64) vectors.Vec2 {
	return vectors.Vec2{X: p[0], Y: p[1]}
}

// FromVec2 converts a vectors.Vec2 into a point.
func FromVec2(v vectors.Vec2) [2]float64 {
	return [2]float64{v.X, v.Y}
}

// UnitVec2 returns v scaled to length 1, or v itself if it has no length.
func UnitVec2(v vectors.Vec2) vectors.Vec2 {
	if v.Len() == 0 {
		return v
	}
	return vectors.Normalize(v)
}

// Bearing2 returns the unit vector for a compass bearing in degrees
// (0 = north, clockwise) on a map whose y axis points down.
func Bearing2(deg float64) vectors.Vec2 {
	rad := DegToRad(deg)
	return vectors.NewVec2(math.Sin(rad), -math.Cos(rad))
}

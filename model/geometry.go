package model

import "math"

// Vec is a 2D point or direction in world units.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec       { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec       { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vec) Scale(k float64) Vec { return Vec{X: v.X * k, Y: v.Y * k} }
func (v Vec) Dot(o Vec) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec) Len() float64        { return math.Hypot(v.X, v.Y) }
func (v Vec) Finite() bool        { return finite(v.X) && finite(v.Y) }

// Distance is the Euclidean distance between a and b.
func Distance(a, b Vec) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Bearing returns the angle in degrees from a to b, 0° along +x and 90°
// along +y. The result is in (-180, 180].
func Bearing(a, b Vec) float64 {
	return Degrees(math.Atan2(b.Y-a.Y, b.X-a.X))
}

// Heading returns the unit vector for an angle in degrees.
func Heading(deg float64) Vec {
	r := Radians(deg)
	return Vec{X: math.Cos(r), Y: math.Sin(r)}
}

// HeadingOf returns the direction of v in degrees.
func HeadingOf(v Vec) float64 {
	return Degrees(math.Atan2(v.Y, v.X))
}

func Degrees(rad float64) float64 { return rad * 180 / math.Pi }
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Nearest returns the index of the target closest to from and its distance.
// Ties go to the earliest target. An empty slice yields (-1, +Inf).
func Nearest[T any](from Vec, targets []T, pos func(T) Vec) (int, float64) {
	best := -1
	bestDist := math.Inf(1)
	for i, t := range targets {
		d := Distance(from, pos(t))
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, bestDist
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

package model

import "math"

// SensorRange caps ray-cast distances when the engine does not say otherwise.
const SensorRange = 300.0

// SensorSpread is the angle between the front ray and each side ray.
const SensorSpread = 30.0

// Contains reports whether p lies inside or on the edge of the wall.
func (w Wall) Contains(p Vec) bool {
	return p.X >= w.X && p.X <= w.X+w.Width && p.Y >= w.Y && p.Y <= w.Y+w.Height
}

// intersect returns the distance along a unit ray to the wall's boundary,
// or ok=false if the ray misses. The origin must lie outside the wall.
func (w Wall) intersect(origin, dir Vec) (float64, bool) {
	tMin, tMax := math.Inf(-1), math.Inf(1)

	axes := [2]struct{ o, d, lo, hi float64 }{
		{origin.X, dir.X, w.X, w.X + w.Width},
		{origin.Y, dir.Y, w.Y, w.Y + w.Height},
	}
	for _, a := range axes {
		if math.Abs(a.d) < 1e-12 {
			if a.o < a.lo || a.o > a.hi {
				return 0, false
			}
			continue
		}
		t1 := (a.lo - a.o) / a.d
		t2 := (a.hi - a.o) / a.d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
	}

	if tMin < 0 || tMax < tMin {
		return 0, false
	}
	return tMin, true
}

// CastRay returns the distance from origin to the nearest wall along the
// heading angleDeg, capped at maxRange. An origin inside a wall reads 0.
func CastRay(origin Vec, angleDeg float64, walls []Wall, maxRange float64) float64 {
	dir := Heading(angleDeg)
	best := maxRange
	for _, w := range walls {
		if w.Contains(origin) {
			return 0
		}
		if d, ok := w.intersect(origin, dir); ok && d < best {
			best = d
		}
	}
	return best
}

// CastSensors builds the three-ray reading the engine would supply for a
// tank at self: front along the facing, left at -30° and right at +30°.
func CastSensors(self Self, walls []Wall, maxRange float64) Sensors {
	origin := self.Pos()
	return Sensors{
		Front: CastRay(origin, self.Angle, walls, maxRange),
		Left:  CastRay(origin, self.Angle-SensorSpread, walls, maxRange),
		Right: CastRay(origin, self.Angle+SensorSpread, walls, maxRange),
	}
}

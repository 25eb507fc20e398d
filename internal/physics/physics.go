// Package physics provides collision detection and distance utilities.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// Length returns the magnitude of a vector.
func Length(vx, vy float64) float64 {
	return math.Sqrt(vx*vx + vy*vy)
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}

// CirclesOverlap checks if two circles overlap.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// RectsOverlap checks if two axis-aligned boxes overlap.
// Boxes that only share an edge do not overlap.
func RectsOverlap(ax, ay, aw, ah, bx, by, bw, bh float64) bool {
	return ax < bx+bw && bx < ax+aw && ay < by+bh && by < ay+ah
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Approach moves v toward target by at most step.
func Approach(v, target, step float64) float64 {
	if v < target {
		return math.Min(target, v+step)
	}
	return math.Max(target, v-step)
}

// Decay counts a timer down by dt without going below zero.
func Decay(timer, dt float64) float64 {
	return math.Max(0, timer-dt)
}

// Oscillate moves v by step between 0 and limit, reversing at each bound.
// rising selects the current direction; the updated direction is returned.
func Oscillate(v float64, rising bool, step, limit float64) (float64, bool) {
	if rising {
		v += step
		if v >= limit {
			return limit, false
		}
		return v, true
	}
	v -= step
	if v <= 0 {
		return 0, true
	}
	return v, false
}

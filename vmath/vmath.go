package vmath

import "math"

// Angle conversion factors
const (
	Deg2Rad = math.Pi / 180
	Rad2Deg = 180 / math.Pi
)

// Epsilon is the tolerance used by near-zero checks on lengths and dot products
const Epsilon = 1e-9

// --- Scalar ---

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Lerp interpolates between a and b with t clamped to [0, 1]
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*Clamp01(t)
}

// LerpUnclamped interpolates between a and b without limiting t
func LerpUnclamped(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Sign returns -1 for negative input and 1 otherwise
// Zero maps to 1, callers gate the result with a deadzone
func Sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// --- Angles (degrees) ---

// Repeat wraps t into [0, length)
func Repeat(t, length float64) float64 {
	return Clamp(t-math.Floor(t/length)*length, 0, length)
}

// DeltaAngle returns the shortest signed difference from current to target in degrees, in (-180, 180]
func DeltaAngle(current, target float64) float64 {
	delta := Repeat(target-current, 360)
	if delta > 180 {
		delta -= 360
	}
	return delta
}

// LerpAngle interpolates between two angles in degrees along the shortest arc
// t is clamped to [0, 1]
func LerpAngle(a, b, t float64) float64 {
	return a + DeltaAngle(a, b)*Clamp01(t)
}

// WrapAngle maps degrees into [0, 360)
func WrapAngle(deg float64) float64 {
	w := Repeat(deg, 360)
	if w >= 360 {
		return 0
	}
	return w
}

package core

import "math"

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Lerp interpolates linearly between a and b. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// InverseLerp returns where v sits between a and b, clamped to [0, 1].
// A degenerate range returns 1 once v reaches a.
func InverseLerp(a, b, v float64) float64 {
	if a == b {
		if v >= a {
			return 1
		}
		return 0
	}
	return ClampF((v-a)/(b-a), 0, 1)
}

// Smoothstep is the cubic Hermite ramp 3t²-2t³ of v between edge0 and edge1.
func Smoothstep(edge0, edge1, v float64) float64 {
	t := InverseLerp(edge0, edge1, v)
	return t * t * (3 - 2*t)
}

// EaseOutBack overshoots slightly past 1 before settling, for t in [0, 1].
func EaseOutBack(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	t = ClampF(t, 0, 1)
	u := t - 1
	return 1 + c3*u*u*u + c1*u*u
}

// Sign returns -1, 0 or 1. Zero maps to zero.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// SignNonZero returns -1 for negative values and 1 otherwise.
func SignNonZero(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

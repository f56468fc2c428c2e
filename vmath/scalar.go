package vmath

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

// Clamp01 limits v to the unit interval.
func Clamp01(v float64) float64 { return Clamp(v, 0, 1) }

// Lerp interpolates a→b by t; t is not clamped.
func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

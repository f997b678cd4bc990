package moremath

// ClampFloat returns f limited to the range [lo, hi].
func ClampFloat(f, lo, hi float64) float64 {
	if f < lo {
		return lo
	}
	if f > hi {
		return hi
	}
	return f
}

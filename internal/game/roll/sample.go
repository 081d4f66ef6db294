package roll

// Sample draws one value from src and returns the index of the first outcome
// whose cumulative rate exceeds the draw. When the draw lands in the
// unassigned remainder (1 - sum(rates)) Sample returns len(rates).
//
// Precondition: every rate is >= 0 and sum(rates) <= 1; src must be non-nil.
// Postcondition: 0 <= result <= len(rates).
func Sample(rates []float64, src Source) int {
	return sampleAt(rates, src.Float64())
}

func sampleAt(rates []float64, v float64) int {
	threshold := 0.0
	for i, r := range rates {
		threshold += r
		if v < threshold {
			return i
		}
	}
	return len(rates)
}

// Chance reports whether a single Bernoulli trial with probability p succeeds.
//
// Postcondition: p <= 0 never succeeds; p >= 1 always succeeds without
// consuming a draw.
func Chance(p float64, src Source) bool {
	switch {
	case p <= 0:
		return false
	case p >= 1:
		return true
	default:
		return src.Float64() < p
	}
}

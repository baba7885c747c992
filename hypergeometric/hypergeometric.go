// Package hypergeometric draws single hypergeometric variates: the
// number of "red" balls seen when drawing n balls without replacement
// from an urn of N balls containing K red ones. Every urn implementation
// in package urn uses this as a black box for its without-replacement
// bulk sampling; the only requirement is distributional correctness and
// numerical stability up to N ~ 1e10.
package hypergeometric

import (
	"math"
	"math/rand"
)

// Sample returns one variate of Hypergeometric(total, red, draws):
// drawing `draws` balls without replacement from `total` balls of which
// `red` are red, how many of the drawn balls are red. Requires
// 0 <= red <= total and 0 <= draws <= total.
//
// Implemented by chop-down inversion starting at the distribution's
// mode and walking outward via the pmf ratio recurrence, which avoids
// recomputing log-gamma terms at every step and keeps the expected
// number of steps proportional to the distribution's standard deviation
// rather than its support size.
func Sample(rng *rand.Rand, red, total, draws int64) int64 {
	if total < 0 || red < 0 || red > total || draws < 0 || draws > total {
		panic("hypergeometric: arguments out of range")
	}
	if draws == 0 || red == 0 {
		return 0
	}
	if red == total {
		return draws
	}
	if draws == total {
		return red
	}

	lo := maxInt64(0, draws-(total-red))
	hi := minInt64(draws, red)
	if lo == hi {
		return lo
	}

	// Computed in float64 rather than int64: (draws+1)*(red+1) overflows
	// int64 well before total reaches 1e10 (e.g. red=draws=5e9).
	mode := int64(float64(draws+1) * float64(red+1) / float64(total+2))
	if mode < lo {
		mode = lo
	}
	if mode > hi {
		mode = hi
	}

	logPMF := func(x int64) float64 {
		return logBinomial(red, x) + logBinomial(total-red, draws-x) - logBinomial(total, draws)
	}

	u := rng.Float64()

	pMode := math.Exp(logPMF(mode))
	cumulative := pMode
	if cumulative >= u {
		return mode
	}

	left, right := mode, mode
	pLeft, pRight := pMode, pMode

	for left > lo || right < hi {
		if right < hi {
			x := right
			pRight *= float64(red-x) * float64(draws-x) / (float64(x+1) * float64(total-red-draws+x+1))
			right++
			cumulative += pRight
			if cumulative >= u {
				return right
			}
		}
		if left > lo {
			x := left
			pLeft *= float64(x) * float64(total-red-draws+x) / (float64(red-x+1) * float64(draws-x+1))
			left--
			cumulative += pLeft
			if cumulative >= u {
				return left
			}
		}
	}

	// Numerical slack exhausted the support without reaching u (can
	// happen only through floating point rounding at the very tail);
	// the mass has to be at one of the two extremes by then.
	if u < 0.5 {
		return lo
	}
	return hi
}

func logBinomial(n, k int64) float64 {
	if k < 0 || k > n {
		return math.Inf(-1)
	}
	l1, _ := math.Lgamma(float64(n + 1))
	l2, _ := math.Lgamma(float64(k + 1))
	l3, _ := math.Lgamma(float64(n - k + 1))
	return l1 - l2 - l3
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

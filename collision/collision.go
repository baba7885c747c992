// Package collision draws "interactions until the next collision": given
// an urn of n balls where g are already red (already touched by this
// epoch's batch) and the rest green, how many more replace-with-red
// draws occur before a red ball is drawn again. The batch simulator uses
// this to jump straight to the next colliding interaction instead of
// simulating every non-colliding one individually.
package collision

import (
	"math"
	"math/rand"
)

const (
	numStages    = 16
	numEstimates = 64
)

type bounds struct {
	lo, hi int64
}

// Distribution is a table-accelerated inverse-CDF sampler for the
// collision gap distribution. Grounded on pps::CollisionDisitribution
// (original_source/include/pps/CollisionDistribution.hpp): with
// nGreen = n - g balls still green, the survival function is
//
//	P(X >= k) = exp(lgamma(nGreen) - lgamma(nGreen-k) - k*log(n))
//
// and sampling inverts it via bisection (or, once n_green is large
// enough to amortize the extra function evaluation, regula falsi) over a
// bracket read from a 16-stage x 64-estimate lookup table built once at
// construction.
type Distribution struct {
	n           int64
	logN        float64
	stageFactor float64

	nGreen         int64
	loggammaNGreen float64

	currentStage int

	stages      [numStages][numEstimates]bounds
	smallStages [numStages][numEstimates]bounds

	SearchIters int64
	Searches    int64
}

// New builds a Distribution for an urn of n balls, g of which start red,
// with its lookup table sized to support SetRed being called with any
// value up to maxG.
func New(n, g, maxG int64) *Distribution {
	if maxG < numStages {
		maxG = numStages
	}
	d := &Distribution{
		n:           n,
		logN:        math.Log(float64(n)),
		stageFactor: float64(maxG / numStages),
	}
	d.SetRed(g)

	for stage := 0; stage < numStages; stage++ {
		redLower := int64(float64(stage) * d.stageFactor)
		redUpper := minInt64(int64((float64(stage)+1)*d.stageFactor+1), maxG)

		lgGreenUpper, _ := math.Lgamma(float64(n - redUpper))
		lgGreenLower, _ := math.Lgamma(float64(n - redLower))

		for i := 0; i < numEstimates; i++ {
			randLower := math.Max(float64(i)/float64(numEstimates), math.Nextafter(0, 1))
			randUpper := float64(i+1) / float64(numEstimates)

			lo := d.bisection(targetFunc(randUpper, n-redUpper, lgGreenUpper, d.logN), 0, n+1)
			hi := d.bisection(targetFunc(randLower, n-redLower, lgGreenLower, d.logN), 0, n+1) + 1
			d.stages[stage][i] = bounds{lo, hi}
		}

		for i := 0; i < numEstimates; i++ {
			randLower := math.Max(float64(i)/float64(numEstimates*numEstimates), math.Nextafter(0, 1))
			randUpper := float64(i+1) / float64(numEstimates*numEstimates)

			lo := d.bisection(targetFunc(randUpper, n-redUpper, lgGreenUpper, d.logN), 0, n+1)
			hi := d.bisection(targetFunc(randLower, n-redLower, lgGreenLower, d.logN), 0, n+1) + 1
			d.smallStages[stage][i] = bounds{lo, hi}
		}
	}

	d.SearchIters = 0
	return d
}

// SetRed updates how many balls are currently red, re-selecting which
// precomputed stage bracket Draw starts its root search from.
func (d *Distribution) SetRed(g int64) {
	if g > d.n {
		panic("collision: red count exceeds urn size")
	}
	d.currentStage = int(float64(g) / d.stageFactor)
	if d.currentStage >= numStages {
		d.currentStage = numStages - 1
	}
	d.nGreen = d.n - g
	d.loggammaNGreen, _ = math.Lgamma(float64(d.nGreen))
}

// Draw samples one collision gap under the currently set red count.
func (d *Distribution) Draw(rng *rand.Rand) int64 {
	u := rng.Float64()
	if u == 0 {
		u = math.Nextafter(0, 1)
	}
	return d.compute(u)
}

func (d *Distribution) compute(uniform float64) int64 {
	forceBisection := false

	var b bounds
	if uniform*numEstimates < 1.0 {
		forceBisection = true
		idx := int(uniform * (numEstimates * numEstimates))
		b = d.smallStages[d.currentStage][idx]
	} else {
		idx := int(uniform * numEstimates)
		b = d.stages[d.currentStage][idx]
	}

	f := targetFunc(uniform, d.nGreen, d.loggammaNGreen, d.logN)
	counting := func(x float64) float64 {
		d.SearchIters++
		return f(x)
	}

	var res int64
	if float64(d.nGreen) < 1e6 || forceBisection {
		res = d.bisection(counting, b.lo, b.hi)
	} else {
		res = d.regFalsi(counting, b.lo, b.hi)
	}

	d.Searches++
	return res
}

// targetFunc closes over the equation we root-find:
//
//	f(k) = log(rand) - lgamma(nGreen) + lgamma(nGreen - k) + k*logN
//
// f is increasing in k; its unique root (rounded down) is the
// sampled gap.
func targetFunc(rand float64, nGreen int64, loggammaNGreen, logN float64) func(float64) float64 {
	target := math.Log(rand) - loggammaNGreen
	return func(k float64) float64 {
		lg, _ := math.Lgamma(float64(nGreen) - k)
		return target + lg + k*logN
	}
}

func (d *Distribution) bisection(f func(float64) float64, left, right int64) int64 {
	for left+1 < right {
		mid := left + (right-left)/2
		value := f(float64(mid))
		d.SearchIters++
		if value > 0 {
			right = mid
		} else {
			left = mid
		}
	}
	return left
}

func (d *Distribution) regFalsi(f func(float64) float64, x0int, x1int int64) int64 {
	if x0int+1 >= x1int {
		return x0int
	}

	mid := x0int + (x1int-x0int)/2
	val := f(float64(mid))

	var f0, f1, x0, x1 float64
	if val < 0.0 {
		x0, f0 = float64(mid), val
		x1 = float64(x1int)
		f1 = f(x1)
	} else {
		x0 = float64(x0int)
		f0 = f(x0)
		x1 = float64(mid)
		f1 = val
	}

	if f0 == 0.0 {
		return x0int
	}

	for i := 0; i < 15; i++ {
		if x0+1.0 >= x1 {
			return int64(x0)
		}
		newX := (x0*f1 - x1*f0) / (f1 - f0)
		newF := f(newX)
		if !(x0 < newX && newX < x1) {
			break
		}
		if newF < 0.0 {
			x0, f0 = newX, newF
		} else {
			x1, f1 = newX, newF
		}
	}

	hi := x1int
	if v := int64(x1) + 1; v < hi {
		hi = v
	}
	return d.bisection(f, int64(x0), hi)
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

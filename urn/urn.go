// Package urn implements the multiset-of-colored-balls data structures
// the simulator package samples agent interactions from: a dense
// WeightedUrn/LinearUrn baseline, a Fenwick-tree TreeUrn for O(log S)
// sampling, and an AliasUrn with drift-triggered rebuilds for O(1)
// amortized sampling. All four share the Urn interface.
package urn

import "math/rand"

// Urn is the shared contract every urn implementation satisfies: a
// multiset over colors [0, S), with uniform draw, draw-and-remove,
// additive updates and whole-urn addition. Draw operations require
// Total() > 0; calling them on an empty urn is a programming error and
// panics rather than returning an error.
type Urn interface {
	// NumColors returns S, fixed at construction.
	NumColors() int
	// Total returns N, the current number of balls across all colors.
	Total() int64
	// Count returns n_c, the number of balls of color c.
	Count(c int) int64
	// Empty reports whether Total() == 0.
	Empty() bool
	// AddBalls adds n balls of color c. n may be negative to subtract,
	// as long as the result stays non-negative.
	AddBalls(c int, n int64)
	// RemoveBalls removes n balls of color c; n must not exceed Count(c).
	RemoveBalls(c int, n int64)
	// Draw picks a ball uniformly at random and returns its color,
	// without removing it.
	Draw(rng *rand.Rand) int
	// DrawAndRemove is Draw followed by removing the drawn ball.
	DrawAndRemove(rng *rand.Rand) int
	// Clear empties the urn, resetting every color's count to zero.
	Clear()
	// SampleWithoutReplacement draws exactly k balls without replacement
	// and without removing them from the urn, invoking cb once per
	// color in increasing color order with the number of balls of that
	// color drawn. When callOnEmpty is true, cb is also invoked (with
	// count 0) for colors that were not drawn at all. Requires
	// k <= Total().
	SampleWithoutReplacement(k int64, rng *rand.Rand, callOnEmpty bool, cb func(color int, n int64))
}

// BulkInserter is implemented by urns that can defer index maintenance
// across a batch of insertions (currently only AliasUrn). Urns that
// don't implement it behave as if BulkAdd were AddBalls and BulkCommit a
// no-op — callers can type-assert for the optimization and fall back to
// AddBalls otherwise.
type BulkInserter interface {
	BulkAdd(c int, n int64)
	BulkCommit()
}

// WholeAdder is implemented by urns that can add another urn's contents
// in one call cheaper than looping AddBalls per color (all four urn
// types in this package implement it).
type WholeAdder interface {
	AddUrn(other Urn)
}

// RemoveRandomBalls is sample-without-replacement that also removes the
// drawn balls from u, matching the urns' remove_random_balls contract.
func RemoveRandomBalls(u Urn, k int64, rng *rand.Rand, callOnEmpty bool, cb func(color int, n int64)) {
	u.SampleWithoutReplacement(k, rng, callOnEmpty, func(color int, n int64) {
		if n > 0 {
			u.RemoveBalls(color, n)
		}
		cb(color, n)
	})
}

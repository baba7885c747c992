package urn

import (
	"fmt"
	"math/rand"
)

// LinearUrn is the benchmark-comparable twin of WeightedUrn: identical
// O(S) scan algorithm, kept as a separate type (rather than folded into
// WeightedUrn) so package simulator can benchmark strategies against a
// stable baseline implementation even if WeightedUrn's internals change.
// Grounded on original_source/include/pps/LinearUrn.hpp.
type LinearUrn struct {
	counts []int64
	total  int64
}

func NewLinearUrn(numColors int) *LinearUrn {
	if numColors < 2 {
		panic("urn: number of colors must be at least 2")
	}
	return &LinearUrn{counts: make([]int64, numColors)}
}

func NewLinearUrnFromCounts(freqs []int64) *LinearUrn {
	u := &LinearUrn{counts: append([]int64(nil), freqs...)}
	for _, c := range freqs {
		if c < 0 {
			panic("urn: negative initial count")
		}
		u.total += c
	}
	return u
}

func (u *LinearUrn) NumColors() int   { return len(u.counts) }
func (u *LinearUrn) Total() int64     { return u.total }
func (u *LinearUrn) Count(c int) int64 { return u.counts[c] }
func (u *LinearUrn) Empty() bool      { return u.total == 0 }

func (u *LinearUrn) AddBalls(c int, n int64) {
	u.counts[c] += n
	u.total += n
	if u.counts[c] < 0 || u.total < 0 {
		panic("urn: ball count went negative")
	}
}

func (u *LinearUrn) RemoveBalls(c int, n int64) {
	if n > u.counts[c] {
		panic(fmt.Sprintf("urn: cannot remove %d balls of color %d, only %d present", n, c, u.counts[c]))
	}
	u.counts[c] -= n
	u.total -= n
}

func (u *LinearUrn) Draw(rng *rand.Rand) int {
	if u.total == 0 {
		panic("urn: draw from empty urn")
	}
	v := rng.Int63n(u.total)
	for c, n := range u.counts {
		if v < n {
			return c
		}
		v -= n
	}
	panic("urn: draw fell off the end of the color vector")
}

func (u *LinearUrn) DrawAndRemove(rng *rand.Rand) int {
	c := u.Draw(rng)
	u.counts[c]--
	u.total--
	return c
}

func (u *LinearUrn) Clear() {
	for i := range u.counts {
		u.counts[i] = 0
	}
	u.total = 0
}

func (u *LinearUrn) AddUrn(other Urn) {
	if other.NumColors() != u.NumColors() {
		panic("urn: add_urn size mismatch")
	}
	for c := 0; c < u.NumColors(); c++ {
		u.AddBalls(c, other.Count(c))
	}
}

func (u *LinearUrn) SampleWithoutReplacement(k int64, rng *rand.Rand, callOnEmpty bool, cb func(color int, n int64)) {
	sampleWithoutReplacement(u.counts, u.total, k, rng, callOnEmpty, cb)
}

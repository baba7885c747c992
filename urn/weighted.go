package urn

import (
	"fmt"
	"math/rand"

	"github.com/popsim/ppsim/hypergeometric"
)

// WeightedUrn is the baseline urn: a dense vector of per-color counts,
// O(S) sampling via a linear prefix-sum scan, O(1) updates. Grounded on
// original_source/include/pps/WeightedUrn.hpp.
type WeightedUrn struct {
	counts []int64
	total  int64
}

// NewWeightedUrn builds an empty urn with the given number of colors.
func NewWeightedUrn(numColors int) *WeightedUrn {
	if numColors < 2 {
		panic("urn: number of colors must be at least 2")
	}
	return &WeightedUrn{counts: make([]int64, numColors)}
}

// NewWeightedUrnFromCounts builds an urn whose per-color counts are
// exactly freqs. The urn keeps its own copy of freqs, so later changes
// to the caller's slice do not affect it.
func NewWeightedUrnFromCounts(freqs []int64) *WeightedUrn {
	u := &WeightedUrn{counts: append([]int64(nil), freqs...)}
	for _, c := range freqs {
		if c < 0 {
			panic("urn: negative initial count")
		}
		u.total += c
	}
	return u
}

func (u *WeightedUrn) NumColors() int   { return len(u.counts) }
func (u *WeightedUrn) Total() int64     { return u.total }
func (u *WeightedUrn) Count(c int) int64 { return u.counts[c] }
func (u *WeightedUrn) Empty() bool      { return u.total == 0 }

func (u *WeightedUrn) AddBalls(c int, n int64) {
	u.counts[c] += n
	u.total += n
	if u.counts[c] < 0 || u.total < 0 {
		panic("urn: ball count went negative")
	}
}

func (u *WeightedUrn) RemoveBalls(c int, n int64) {
	if n > u.counts[c] {
		panic(fmt.Sprintf("urn: cannot remove %d balls of color %d, only %d present", n, c, u.counts[c]))
	}
	u.counts[c] -= n
	u.total -= n
}

func (u *WeightedUrn) Draw(rng *rand.Rand) int {
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

func (u *WeightedUrn) DrawAndRemove(rng *rand.Rand) int {
	c := u.Draw(rng)
	u.counts[c]--
	u.total--
	return c
}

func (u *WeightedUrn) Clear() {
	for i := range u.counts {
		u.counts[i] = 0
	}
	u.total = 0
}

func (u *WeightedUrn) AddUrn(other Urn) {
	if other.NumColors() != u.NumColors() {
		panic("urn: add_urn size mismatch")
	}
	for c := 0; c < u.NumColors(); c++ {
		u.AddBalls(c, other.Count(c))
	}
}

// SampleWithoutReplacement implements the hypergeometric-walk pattern
// shared by WeightedUrn and TreeUrn (see sample_without_replacement in
// WeightedUrn.hpp and TreeUrn.hpp): scan colors left to right, peeling
// off a hypergeometric number of the remaining draws from each color in
// turn so the joint outcome matches drawing k balls uniformly without
// replacement.
func (u *WeightedUrn) SampleWithoutReplacement(k int64, rng *rand.Rand, callOnEmpty bool, cb func(color int, n int64)) {
	sampleWithoutReplacement(u.counts, u.total, k, rng, callOnEmpty, cb)
}

// sampleWithoutReplacement is shared by WeightedUrn, LinearUrn and
// AliasUrn, whose counts are all stored as a dense []int64 per color.
func sampleWithoutReplacement(counts []int64, total, k int64, rng *rand.Rand, callOnEmpty bool, cb func(color int, n int64)) {
	if total == 0 || k == 0 {
		if callOnEmpty {
			for c := range counts {
				cb(c, 0)
			}
		}
		return
	}
	if k > total {
		panic("urn: cannot sample more balls than present without replacement")
	}

	leftToSample := k
	unconsidered := total

	c := 0
	for leftToSample > 0 {
		ballsWithColor := counts[c]
		unconsidered -= ballsWithColor

		var numSelected int64
		switch {
		case ballsWithColor == 0:
			numSelected = 0
		case unconsidered == 0:
			numSelected = min64(leftToSample, ballsWithColor)
		default:
			numSelected = hypergeometric.Sample(rng, ballsWithColor, ballsWithColor+unconsidered, leftToSample)
		}

		if callOnEmpty || numSelected > 0 {
			cb(c, numSelected)
		}

		leftToSample -= numSelected
		c++
	}

	if callOnEmpty {
		for ; c < len(counts); c++ {
			cb(c, 0)
		}
	}
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

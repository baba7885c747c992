package urn

import (
	"fmt"
	"math/rand"

	"github.com/popsim/ppsim/hypergeometric"
)

// TreeUrn stores per-color counts in a Fenwick (binary-indexed) tree over
// [0, S), giving O(log S) draw, update and prefix-sum queries instead of
// WeightedUrn's O(S) linear scan. Grounded on
// original_source/include/pps/TreeUrn.hpp.
type TreeUrn struct {
	// tree is 1-indexed internally; tree[i] (i>=1) covers a range of
	// colors determined by the low set bit of i, per the standard
	// Fenwick layout.
	tree  []int64
	total int64
	n     int
}

func NewTreeUrn(numColors int) *TreeUrn {
	if numColors < 2 {
		panic("urn: number of colors must be at least 2")
	}
	return &TreeUrn{tree: make([]int64, numColors+1), n: numColors}
}

func NewTreeUrnFromCounts(freqs []int64) *TreeUrn {
	u := NewTreeUrn(len(freqs))
	for c, n := range freqs {
		if n < 0 {
			panic("urn: negative initial count")
		}
		u.AddBalls(c, n)
	}
	return u
}

func (u *TreeUrn) NumColors() int { return u.n }
func (u *TreeUrn) Total() int64   { return u.total }
func (u *TreeUrn) Empty() bool    { return u.total == 0 }

// Count recovers n_c as the difference of two prefix sums; O(log S).
func (u *TreeUrn) Count(c int) int64 {
	return u.prefixSum(c+1) - u.prefixSum(c)
}

func (u *TreeUrn) AddBalls(c int, n int64) {
	if n == 0 {
		return
	}
	for i := c + 1; i <= u.n; i += i & (-i) {
		u.tree[i] += n
	}
	u.total += n
	if u.Count(c) < 0 || u.total < 0 {
		panic("urn: ball count went negative")
	}
}

func (u *TreeUrn) RemoveBalls(c int, n int64) {
	if n > u.Count(c) {
		panic(fmt.Sprintf("urn: cannot remove %d balls of color %d, only %d present", n, c, u.Count(c)))
	}
	u.AddBalls(c, -n)
}

// prefixSum returns the sum of counts of colors [0, upto).
func (u *TreeUrn) prefixSum(upto int) int64 {
	var sum int64
	for i := upto; i > 0; i -= i & (-i) {
		sum += u.tree[i]
	}
	return sum
}

// findByPrefix returns the smallest color c such that the cumulative
// count of colors [0, c] exceeds target, walking the Fenwick tree
// top-down in O(log S) instead of doing O(log S) binary-search steps
// each with its own O(log S) prefixSum call.
func (u *TreeUrn) findByPrefix(target int64) int {
	pos := 0
	remaining := target
	// highest power of two <= n
	logN := 1
	for logN*2 <= u.n {
		logN *= 2
	}
	for step := logN; step > 0; step /= 2 {
		next := pos + step
		if next <= u.n && u.tree[next] <= remaining {
			pos = next
			remaining -= u.tree[next]
		}
	}
	if pos >= u.n {
		return u.n - 1
	}
	return pos
}

func (u *TreeUrn) Draw(rng *rand.Rand) int {
	if u.total == 0 {
		panic("urn: draw from empty urn")
	}
	v := rng.Int63n(u.total)
	return u.findByPrefix(v)
}

func (u *TreeUrn) DrawAndRemove(rng *rand.Rand) int {
	c := u.Draw(rng)
	u.RemoveBalls(c, 1)
	return c
}

func (u *TreeUrn) Clear() {
	for i := range u.tree {
		u.tree[i] = 0
	}
	u.total = 0
}

func (u *TreeUrn) AddUrn(other Urn) {
	if other.NumColors() != u.NumColors() {
		panic("urn: add_urn size mismatch")
	}

	// Two tree urns can sum their Fenwick arrays directly, O(S) total
	// instead of O(S log S) from looping AddBalls per color.
	if t, ok := other.(*TreeUrn); ok {
		for i := range u.tree {
			u.tree[i] += t.tree[i]
		}
		u.total += t.total
		return
	}

	for c := 0; c < u.NumColors(); c++ {
		if n := other.Count(c); n != 0 {
			u.AddBalls(c, n)
		}
	}
}

// SampleWithoutReplacement walks colors in increasing order the same way
// WeightedUrn does, but reads each color's count via the tree rather than
// a dense slice. The asymptotic win over WeightedUrn is in Draw/AddBalls;
// this walk costs O(S log S) per call in the worst case, since the
// hypergeometric peel-off may visit every color and each tree count read
// is O(log S), matching the
// original's implementation choice of not special-casing this method.
func (u *TreeUrn) SampleWithoutReplacement(k int64, rng *rand.Rand, callOnEmpty bool, cb func(color int, n int64)) {
	if u.total == 0 || k == 0 {
		if callOnEmpty {
			for c := 0; c < u.n; c++ {
				cb(c, 0)
			}
		}
		return
	}
	if k > u.total {
		panic("urn: cannot sample more balls than present without replacement")
	}

	leftToSample := k
	unconsidered := u.total

	c := 0
	for leftToSample > 0 {
		ballsWithColor := u.Count(c)
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
		for ; c < u.n; c++ {
			cb(c, 0)
		}
	}
}

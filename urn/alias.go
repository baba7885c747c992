package urn

import (
	"fmt"
	"math/rand"
)

// AliasUrn provides O(1) amortized Draw via Vose's alias method, at the
// cost of deferred exactness after mutation: AddBalls/RemoveBalls track
// how far the live counts have drifted from the table built at the last
// rebuild, and Draw rebuilds once that drift could bias the alias-table
// probabilities beyond tolerance. BulkAdd/BulkCommit let callers batch
// many insertions behind a single rebuild instead of one per call.
// Grounded on original_source/include/pps/AliasUrnSimple.hpp.
type AliasUrn struct {
	counts []int64
	total  int64

	prob  []float64
	alias []int

	snapshotTotal int64
	drift         int64
	stale         bool
}

func NewAliasUrn(numColors int) *AliasUrn {
	if numColors < 2 {
		panic("urn: number of colors must be at least 2")
	}
	return &AliasUrn{
		counts: make([]int64, numColors),
		prob:   make([]float64, numColors),
		alias:  make([]int, numColors),
		stale:  true,
	}
}

func NewAliasUrnFromCounts(freqs []int64) *AliasUrn {
	u := NewAliasUrn(len(freqs))
	copy(u.counts, freqs)
	for _, c := range freqs {
		if c < 0 {
			panic("urn: negative initial count")
		}
		u.total += c
	}
	u.rebuild()
	return u
}

func (u *AliasUrn) NumColors() int    { return len(u.counts) }
func (u *AliasUrn) Total() int64      { return u.total }
func (u *AliasUrn) Count(c int) int64 { return u.counts[c] }
func (u *AliasUrn) Empty() bool       { return u.total == 0 }

func (u *AliasUrn) AddBalls(c int, n int64) {
	u.counts[c] += n
	u.total += n
	if u.counts[c] < 0 || u.total < 0 {
		panic("urn: ball count went negative")
	}
	u.markDirty(n)
}

func (u *AliasUrn) RemoveBalls(c int, n int64) {
	if n > u.counts[c] {
		panic(fmt.Sprintf("urn: cannot remove %d balls of color %d, only %d present", n, c, u.counts[c]))
	}
	u.counts[c] -= n
	u.total -= n
	u.markDirty(n)
}

// BulkAdd accumulates an insertion without forcing a rebuild; BulkCommit
// rebuilds once after a batch instead of once per BulkAdd call.
func (u *AliasUrn) BulkAdd(c int, n int64) {
	u.counts[c] += n
	u.total += n
	u.drift += absInt64(n)
}

func (u *AliasUrn) BulkCommit() {
	if u.drift > 0 {
		u.rebuild()
	}
}

func (u *AliasUrn) markDirty(n int64) {
	u.drift += absInt64(n)
	// Rebuild once drift reaches a constant fraction of the snapshot
	// total: beyond that point some bucket's sampling probability could
	// have strayed from the current truth by more than a safe tolerance.
	if u.snapshotTotal == 0 || u.drift*4 > u.snapshotTotal {
		u.stale = true
	}
}

func (u *AliasUrn) Draw(rng *rand.Rand) int {
	if u.total == 0 {
		panic("urn: draw from empty urn")
	}
	if u.stale {
		u.rebuild()
	}
	i := rng.Intn(len(u.counts))
	if rng.Float64() < u.prob[i] {
		return i
	}
	return u.alias[i]
}

func (u *AliasUrn) DrawAndRemove(rng *rand.Rand) int {
	c := u.Draw(rng)
	u.RemoveBalls(c, 1)
	return c
}

func (u *AliasUrn) Clear() {
	for i := range u.counts {
		u.counts[i] = 0
	}
	u.total = 0
	u.stale = true
	u.drift = 0
	u.snapshotTotal = 0
}

func (u *AliasUrn) AddUrn(other Urn) {
	if other.NumColors() != u.NumColors() {
		panic("urn: add_urn size mismatch")
	}
	for c := 0; c < u.NumColors(); c++ {
		if n := other.Count(c); n != 0 {
			u.BulkAdd(c, n)
		}
	}
	u.BulkCommit()
}

func (u *AliasUrn) SampleWithoutReplacement(k int64, rng *rand.Rand, callOnEmpty bool, cb func(color int, n int64)) {
	sampleWithoutReplacement(u.counts, u.total, k, rng, callOnEmpty, cb)
}

// rebuild constructs Vose's alias table from the current counts with the
// standard linear-time overfull/underfull worklist construction.
func (u *AliasUrn) rebuild() {
	n := len(u.counts)
	u.snapshotTotal = u.total
	u.drift = 0
	u.stale = false

	if u.total == 0 {
		for i := range u.prob {
			u.prob[i] = 1
			u.alias[i] = i
		}
		return
	}

	scaled := make([]float64, n)
	small := make([]int, 0, n)
	large := make([]int, 0, n)
	for i, c := range u.counts {
		scaled[i] = float64(c) * float64(n) / float64(u.total)
		if scaled[i] < 1 {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}

	for len(small) > 0 && len(large) > 0 {
		l := small[len(small)-1]
		small = small[:len(small)-1]
		g := large[len(large)-1]
		large = large[:len(large)-1]

		u.prob[l] = scaled[l]
		u.alias[l] = g

		scaled[g] = scaled[g] + scaled[l] - 1
		if scaled[g] < 1 {
			small = append(small, g)
		} else {
			large = append(large, g)
		}
	}
	for _, g := range large {
		u.prob[g] = 1
		u.alias[g] = g
	}
	for _, l := range small {
		// Only floating-point rounding should land a color here; the
		// worklist invariant keeps every other bucket exactly resolved.
		u.prob[l] = 1
		u.alias[l] = l
	}
}

func absInt64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

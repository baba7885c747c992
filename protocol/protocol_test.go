package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// swapProtocol is a trivial TwoWayDeterministic protocol that swaps the
// two agents' states, used to exercise the generic helpers without
// depending on package protocols.
type swapProtocol struct{ numStates int }

func (p swapProtocol) NumStates() int      { return p.numStates }
func (p swapProtocol) IsDeterministic() bool { return true }
func (p swapProtocol) IsOneWay() bool        { return false }
func (p swapProtocol) Apply(first, second int) (int, int) { return second, first }

// incrementOneWay increments the first agent's state by one (mod S) and
// leaves the second unchanged: a minimal OneWayDeterministic fixture.
type incrementOneWay struct{ numStates int }

func (p incrementOneWay) NumStates() int      { return p.numStates }
func (p incrementOneWay) IsDeterministic() bool { return true }
func (p incrementOneWay) IsOneWay() bool        { return true }
func (p incrementOneWay) Apply(first, second int) int { return (first + 1) % p.numStates }

// coinFlipRandomized is a Randomized, two-way protocol: for k interactions
// it emits first and second each with multiplicity k, so every
// interaction leaves both agents unchanged and tests stay reproducible.
type coinFlipRandomized struct{ numStates int }

func (p coinFlipRandomized) NumStates() int      { return p.numStates }
func (p coinFlipRandomized) IsDeterministic() bool { return false }
func (p coinFlipRandomized) IsOneWay() bool        { return false }
func (p coinFlipRandomized) Apply(first, second, k int, emit func(state, multiplicity int)) {
	emit(first, k)
	emit(second, k)
}

func TestTransitionDispatchesTwoWayDeterministic(t *testing.T) {
	p := swapProtocol{numStates: 4}
	a, b := Transition(p, 1, 2)
	assert.Equal(t, 2, a)
	assert.Equal(t, 1, b)
}

func TestTransitionDispatchesOneWayDeterministic(t *testing.T) {
	p := incrementOneWay{numStates: 5}
	a, b := Transition(p, 3, 1)
	assert.Equal(t, 4, a)
	assert.Equal(t, 1, b)
}

func TestTransitionDispatchesRandomized(t *testing.T) {
	p := coinFlipRandomized{numStates: 3}
	a, b := Transition(p, 0, 2)
	assert.Equal(t, 0, a)
	assert.Equal(t, 2, b)
}

func TestTransitionPanicsOnUnrecognizedProtocol(t *testing.T) {
	type bareProtocol struct{}
	assert.Panics(t, func() {
		Transition(struct {
			Protocol
		}{}, 0, 0)
	})
	_ = bareProtocol{}
}

func TestTransactionsWithoutChangeFindsFixedPoints(t *testing.T) {
	p := swapProtocol{numStates: 3}
	skip, total := TransactionsWithoutChange(p)
	// swap(first, first) is always a no-op; swap(a, b) for a != b is also
	// a no-op under the "states swapped" rule.
	require.Equal(t, 9, total)
	assert.Len(t, skip[0], 3)
}

func TestPartitionOneWayGroupsByImage(t *testing.T) {
	p := incrementOneWay{numStates: 4}
	partitions := PartitionOneWay(p)
	require.Len(t, partitions, 4)
	for first, groups := range partitions {
		require.Len(t, groups, 1, "first=%d", first)
		assert.Equal(t, (first+1)%4, groups[0].Image)
		assert.Len(t, groups[0].Preimage, 4)
	}
}

func TestPartitionOneWayPanicsWhenSecondChanges(t *testing.T) {
	p := swapProtocol{numStates: 2}
	assert.Panics(t, func() { PartitionOneWay(p) })
}

func TestTransitionMatrixRendersEveryPair(t *testing.T) {
	p := swapProtocol{numStates: 2}
	out := TransitionMatrix(p)
	assert.Contains(t, out, "(0,0)")
	assert.Contains(t, out, "(1,1)")
	assert.Contains(t, out, "(0,1)")
	assert.Contains(t, out, "(1,0)")
}

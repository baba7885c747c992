// Package protocol defines the population-protocol transition contract
// consumed by the simulator package: a stateless mapping from a pair of
// agent states to an updated pair, plus the classification and
// precomputation helpers the batch simulator needs to skip no-op
// transitions and partition one-way outputs.
package protocol

import "fmt"

// Protocol is the capability set every transition rule must expose.
// NumStates returns S, the number of distinct agent states in [0, S).
// IsDeterministic/IsOneWay classify the rule so the simulator can pick
// the cheapest applicable dispatch path and precompute skip/partition
// tables.
type Protocol interface {
	NumStates() int
	IsDeterministic() bool
	IsOneWay() bool
}

// TwoWayDeterministic is a pure function (s1, s2) -> (s1', s2'). Both
// agents may change state.
type TwoWayDeterministic interface {
	Protocol
	Apply(first, second int) (int, int)
}

// OneWayDeterministic is a pure function (s1, s2) -> s1'. The second
// agent's state is invariant under the transition.
type OneWayDeterministic interface {
	Protocol
	Apply(first, second int) int
}

// Randomized protocols report their outputs through a callback rather
// than a return value so the simulator can request k independent
// applications in bulk (emit is then invoked with the aggregate
// multiplicity per resulting state, total multiplicity 2k for two-way
// protocols or k for one-way).
type Randomized interface {
	Protocol
	Apply(first, second, k int, emit func(state, multiplicity int))
}

// Transition dispatches a single interaction to whichever apply path the
// protocol implements, mirroring Protocols::transition's compile-time
// dispatch with a runtime type switch (see DESIGN.md).
func Transition(p Protocol, first, second int) (int, int) {
	switch proto := p.(type) {
	case TwoWayDeterministic:
		return proto.Apply(first, second)
	case OneWayDeterministic:
		return proto.Apply(first, second), second
	case Randomized:
		var outs [2]int
		n := 0
		proto.Apply(first, second, 1, func(state, multiplicity int) {
			for i := 0; i < multiplicity; i++ {
				if n >= 2 {
					panic(fmt.Sprintf("protocol: randomized apply emitted more than %d states for a single interaction", len(outs)))
				}
				outs[n] = state
				n++
			}
		})
		if p.IsOneWay() {
			if n != 1 {
				panic(fmt.Sprintf("protocol: one-way randomized apply emitted %d states, want 1", n))
			}
			return outs[0], second
		}
		if n != 2 {
			panic(fmt.Sprintf("protocol: two-way randomized apply emitted %d states, want 2", n))
		}
		return outs[0], outs[1]
	default:
		panic("protocol: value does not implement TwoWayDeterministic, OneWayDeterministic or Randomized")
	}
}

// TransitionMatrix renders a protocol's full S×S transition table, one
// row per first-agent state. Debug/test-diagnostic helper for deterministic
// protocols small enough to print in full.
func TransitionMatrix(p Protocol) string {
	s := p.NumStates()
	out := ""
	for first := 0; first < s; first++ {
		for second := 0; second < s; second++ {
			to1, to2 := Transition(p, first, second)
			if p.IsOneWay() {
				out += fmt.Sprintf("%d, ", to1)
			} else {
				out += fmt.Sprintf("(%d,%d), ", to1, to2)
			}
		}
		out += "\n"
	}
	return out
}

// TransactionsWithoutChange enumerates all (s1, s2) pairs of a
// deterministic protocol and records, per first-agent state, the
// second-agent states for which the transition is a no-op (the output
// equals the input, possibly with the two agents swapped). The returned
// skips table is what the batch simulator's skip heuristic consults; the
// total skip count is used to decide whether the heuristic is worth
// paying for at all.
func TransactionsWithoutChange(p Protocol) (skip [][]int, totalSkips int) {
	s := p.NumStates()
	skip = make([][]int, s)
	for first := 0; first < s; first++ {
		for second := 0; second < s; second++ {
			to1, to2 := Transition(p, first, second)
			noChange := (to1 == first && to2 == second) || (to1 == second && to2 == first)
			if noChange {
				totalSkips++
				skip[first] = append(skip[first], second)
			}
		}
	}
	return skip, totalSkips
}

// PartitionGroup is one group of a one-way protocol's output partition:
// every second-agent state in Preimage maps the given first-agent state
// to the same Image state.
type PartitionGroup struct {
	Preimage []int
	Image    int
}

// PartitionOneWay groups, for each first-agent state, the second-agent
// states by the image state they produce. The batch simulator's
// deterministic-and-one-way fast path uses this to resolve a whole group
// of second-agent states with a single hypergeometric draw instead of
// iterating state-by-state.
func PartitionOneWay(p Protocol) [][]PartitionGroup {
	s := p.NumStates()
	partitions := make([][]PartitionGroup, s)
	for first := 0; first < s; first++ {
		byImage := make(map[int][]int)
		order := make([]int, 0, s)
		for second := 0; second < s; second++ {
			to1, to2 := Transition(p, first, second)
			if to2 != second {
				panic("protocol: PartitionOneWay called on a protocol whose second agent changes")
			}
			if _, seen := byImage[to1]; !seen {
				order = append(order, to1)
			}
			byImage[to1] = append(byImage[to1], second)
		}
		groups := make([]PartitionGroup, 0, len(order))
		for _, image := range order {
			groups = append(groups, PartitionGroup{Preimage: byImage[image], Image: image})
		}
		partitions[first] = groups
	}
	return partitions
}

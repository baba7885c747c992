// Package protocols holds the concrete transition rules exercised by the
// benchmark CLI and the package's own tests: variations on counting,
// leader election, majority opinion, a digital clock, and randomly
// generated tables. Grounded on original_source/include/protocols/*.hpp.
package protocols

// IncrementOneStrategy selects which of an interacting pair of agents
// increments their state.
type IncrementOneStrategy int

const (
	OneWay IncrementOneStrategy = iota
	TwoWayFirst
	TwoWaySecond
	TwoWayBoth
)

// IncrementOne increments agent state(s) by one on every interaction,
// wrapping around modulo the number of states passed to NewIncrementOne.
// OneWay only ever increments the first agent and
// leaves the second untouched, matching a one-way protocol's contract;
// the other three strategies increment one or both agents symmetrically.
type IncrementOne struct {
	Strategy  IncrementOneStrategy
	numStates int
}

// NewIncrementOne builds an IncrementOne protocol over states [0, numStates).
func NewIncrementOne(strategy IncrementOneStrategy, numStates int) *IncrementOne {
	return &IncrementOne{Strategy: strategy, numStates: numStates}
}

func (p *IncrementOne) NumStates() int        { return p.numStates }
func (p *IncrementOne) IsDeterministic() bool { return true }
func (p *IncrementOne) IsOneWay() bool        { return p.Strategy == OneWay }

// Apply implements protocol.TwoWayDeterministic for every strategy:
// OneWay increments only the first agent and returns second unchanged,
// which is exactly what protocol.Transition's one-way path would do with
// an OneWayDeterministic Apply method, so a single implementation covers
// all four strategies.
func (p *IncrementOne) Apply(first, second int) (int, int) {
	increaseFirst := p.Strategy == OneWay || p.Strategy == TwoWayFirst || p.Strategy == TwoWayBoth
	increaseSecond := p.Strategy == TwoWaySecond || p.Strategy == TwoWayBoth
	out1, out2 := first, second
	if increaseFirst {
		out1 = (out1 + 1) % p.numStates
	}
	if increaseSecond {
		out2 = (out2 + 1) % p.numStates
	}
	return out1, out2
}

package protocols

// AgentCounts is the minimal view of an agent population Clock's
// MaxGap needs: how many agents currently hold a given state. Any urn
// implementation satisfies this without protocols importing package urn.
type AgentCounts interface {
	Count(color int) int64
}

// AgentAdder is the minimal view CreateUniformDistribution needs to seed
// a population.
type AgentAdder interface {
	AddBalls(color int, n int64)
}

// Clock is a one-way deterministic digital-clock protocol: an active
// agent's clock digit advances past a passive agent's digit (using
// modular "greater than" comparison) or matches an already-marked
// passive digit. Clock wraps back to 0 at digitsOnClock. Grounded on
// ClockProtocol (clock_protocol.hpp); the marked bit occupies the high
// half of the state space (states [0,digits) unmarked, [digits,2*digits)
// marked).
type Clock struct {
	digitsOnClock int
}

// NewClock builds a Clock protocol with the given number of digits.
func NewClock(digitsOnClock int) *Clock {
	if digitsOnClock < 1 {
		panic("protocols: clock must have at least one digit")
	}
	return &Clock{digitsOnClock: digitsOnClock}
}

func (c *Clock) NumStates() int        { return 2 * c.digitsOnClock }
func (c *Clock) IsDeterministic() bool { return true }
func (c *Clock) IsOneWay() bool        { return true }

func (c *Clock) DigitsOnClock() int { return c.digitsOnClock }

type clockState struct {
	clock  int
	marked bool
}

func (c *Clock) encode(s clockState) int {
	v := s.clock
	if s.marked {
		v += c.digitsOnClock
	}
	return v
}

func (c *Clock) decode(x int) clockState {
	marked := x >= c.digitsOnClock
	clock := x
	if marked {
		clock -= c.digitsOnClock
	}
	return clockState{clock: clock, marked: marked}
}

// clockGreaterThan reports whether clock2 is strictly ahead of clock1 on
// a dial of m digits, treating the dial as split into two halves: clock2
// is ahead if it lies in the "next half" of the dial starting just after
// clock1.
func clockGreaterThan(clock1, clock2, m int) bool {
	if clock2 > clock1 && clock2 < clock1+m/2 {
		return true
	}
	if clock2 < clock1 && clock2+(m+1)/2 < clock1 {
		return true
	}
	return false
}

// Apply implements protocol.OneWayDeterministic: the active agent's
// clock increments once if it lags the passive agent's clock, or if the
// two clocks coincide and the passive agent is marked.
func (c *Clock) Apply(active, passive int) int {
	a := c.decode(active)
	p := c.decode(passive)

	advance := clockGreaterThan(a.clock, p.clock, c.digitsOnClock) || (a.clock == p.clock && p.marked)
	if advance {
		a.clock++
	}
	if a.clock >= c.digitsOnClock {
		a.clock = 0
	}
	return c.encode(a)
}

// MaxGap scans the dial for the longest run of consecutive digits whose
// combined agent count (marked and unmarked) is at most threshold,
// returning the run's length. Used by clock-based leader-election-style
// protocols to detect how "spread out" the population still is.
func (c *Clock) MaxGap(agents AgentCounts, threshold int64) int {
	isEmpty := func(digit int) bool {
		total := agents.Count(c.encode(clockState{clock: digit, marked: false})) +
			agents.Count(c.encode(clockState{clock: digit, marked: true}))
		return total <= threshold
	}

	maxGap := 0
	for i := 0; i < c.digitsOnClock; i++ {
		if !isEmpty(i) {
			continue
		}
		gapLength := 1
		for ; gapLength < c.digitsOnClock-1; gapLength++ {
			digit := (i + gapLength) % c.digitsOnClock
			if !isEmpty(digit) {
				break
			}
		}
		if gapLength > maxGap {
			maxGap = gapLength
		}
	}
	return maxGap
}

// CreateUniformDistribution seeds every clock digit with
// numAgentsUpperBound/digits agents (rounded down), of which
// numMarkedUpperBound/digits (rounded down) are marked. The remainders
// of both divisions are not seeded, so the totals can fall short of the
// two upper bounds.
func (c *Clock) CreateUniformDistribution(agents AgentAdder, numAgentsUpperBound, numMarkedUpperBound int64) {
	perDigit := numAgentsUpperBound / int64(c.digitsOnClock)
	markedPerDigit := numMarkedUpperBound / int64(c.digitsOnClock)

	for i := 0; i < c.digitsOnClock; i++ {
		agents.AddBalls(c.encode(clockState{clock: i, marked: false}), perDigit-markedPerDigit)
		agents.AddBalls(c.encode(clockState{clock: i, marked: true}), markedPerDigit)
	}
}

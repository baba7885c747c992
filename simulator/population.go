package simulator

import (
	"math"
	"math/rand"

	"github.com/popsim/ppsim/protocol"
	"github.com/popsim/ppsim/urn"
)

// PrefetchDepth selects how many interaction pairs Population pipelines
// ahead of the one it is currently applying. Go has no equivalent of
// __builtin_prefetch, so the ring-buffer pipelining here only overlaps
// index sampling with transition application rather than memory
// latency; it is kept as a type parameter (rather than a plain field) so
// each depth still gets its own specialized, inlinable Run loop the way
// the original's compile-time template parameter did.
type PrefetchDepth interface {
	Depth() int
}

type Prefetch0 struct{}

func (Prefetch0) Depth() int { return 0 }

type Prefetch1 struct{}

func (Prefetch1) Depth() int { return 1 }

type Prefetch4 struct{}

func (Prefetch4) Depth() int { return 4 }

type Prefetch8 struct{}

func (Prefetch8) Depth() int { return 8 }

type Prefetch10 struct{}

func (Prefetch10) Depth() int { return 10 }

// Population stores the agent population as an explicit length-N slice
// of states rather than an urn, sampling interacting pairs by drawing
// two distinct indices uniformly. Grounded on AsyncPopulationSimulator
// (original_source/include/pps/AsyncPopulationSimulator.hpp).
type Population[P PrefetchDepth] struct {
	population []int
	numStates  int

	proto    protocol.Protocol
	rng      *rand.Rand
	epochLen int

	pending []int // ring buffer of pending indices, length at most 2*Depth()

	numInteractions int64
	numRuns         int64
	numEpochs       int64
}

// NewPopulation flattens agents into a per-agent slice and builds a
// Population simulator over it.
func NewPopulation[P PrefetchDepth](agents urn.Urn, proto protocol.Protocol, rng *rand.Rand) *Population[P] {
	n := agents.Total()
	if n <= 1 {
		panic("simulator: population simulator needs at least two agents")
	}

	population := make([]int, 0, n)
	for c := 0; c < agents.NumColors(); c++ {
		for i := int64(0); i < agents.Count(c); i++ {
			population = append(population, c)
		}
	}

	var depth P
	epochLen := int(math.Sqrt(float64(n))) + 1
	if depth.Depth() > epochLen {
		epochLen = depth.Depth()
	}

	return &Population[P]{
		population: population,
		numStates:  agents.NumColors(),
		proto:      proto,
		rng:        rng,
		epochLen:   epochLen,
		pending:    make([]int, 0, 2*depth.Depth()),
	}
}

// Run drives interactions until monitor.Observe returns false.
func (p *Population[P]) Run(monitor Monitor) {
	var depth P
	d := depth.Depth()

	for {
		if d == 0 {
			for i := 0; i < p.epochLen; i++ {
				p.performSingleInteraction()
			}
		} else {
			for i := 0; i < d; i++ {
				p.prefetchPair()
			}
			for i := 0; i < p.epochLen-d; i++ {
				p.performPendingPair()
				p.prefetchPair()
			}
			for i := 0; i < d; i++ {
				p.performPendingPair()
			}
		}

		p.numInteractions += int64(p.epochLen)
		p.numEpochs++
		if !monitor.Observe(p) {
			return
		}
	}
}

func (p *Population[P]) randomDistinctPair() (int, int) {
	n := len(p.population)
	first := p.rng.Intn(n)
	second := p.rng.Intn(n)
	for second == first {
		second = p.rng.Intn(n)
	}
	return first, second
}

func (p *Population[P]) performSingleInteraction() {
	firstIdx, secondIdx := p.randomDistinctPair()
	out1, out2 := protocol.Transition(p.proto, p.population[firstIdx], p.population[secondIdx])
	p.population[firstIdx] = out1
	if !p.proto.IsOneWay() {
		p.population[secondIdx] = out2
	}
	p.numRuns++
}

// prefetchPair enqueues one interaction's indices without applying it.
func (p *Population[P]) prefetchPair() {
	firstIdx, secondIdx := p.randomDistinctPair()
	p.pending = append(p.pending, firstIdx, secondIdx)
}

// performPendingPair dequeues and applies the oldest enqueued pair.
func (p *Population[P]) performPendingPair() {
	firstIdx, secondIdx := p.pending[0], p.pending[1]
	p.pending = p.pending[2:]

	out1, out2 := protocol.Transition(p.proto, p.population[firstIdx], p.population[secondIdx])
	p.population[firstIdx] = out1
	if !p.proto.IsOneWay() {
		p.population[secondIdx] = out2
	}
	p.numRuns++
}

func (p *Population[P]) NumInteractions() int64           { return p.numInteractions }
func (p *Population[P]) NumRuns() int64                   { return p.numRuns }
func (p *Population[P]) NumEpochs() int64                 { return p.numEpochs }
func (p *Population[P]) TargetEpochLength() int           { return p.epochLen }
func (p *Population[P]) Protocol() protocol.Protocol      { return p.proto }
func (p *Population[P]) PopulationSlice() []int           { return p.population }

// Agents materializes the current population as a WeightedUrn. Expensive
// (O(N)); intended for test assertions and monitor diagnostics, not the
// hot path.
func (p *Population[P]) Agents() urn.Urn {
	agents := urn.NewWeightedUrn(p.numStates)
	for _, s := range p.population {
		agents.AddBalls(s, 1)
	}
	return agents
}

package simulator

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/popsim/ppsim/protocol"
	"github.com/popsim/ppsim/protocols"
	"github.com/popsim/ppsim/urn"
)

// engine is the common surface every simulator strategy exposes, used
// by this cross-strategy property test; it has the same method set as
// the package's exported Runner interface.
type engine interface {
	Info
	Run(Monitor)
}

type noLossConfig struct {
	name  string
	build func(numAgents int64, numStates int, proto protocol.Protocol, rng *rand.Rand) engine
}

var noLossConfigs = []noLossConfig{
	{
		name: "batch",
		build: func(numAgents int64, numStates int, proto protocol.Protocol, rng *rand.Rand) engine {
			agents := urn.NewWeightedUrn(numStates)
			agents.AddBalls(0, numAgents)
			return NewBatch(agents, proto, rng, newWeightedUrn)
		},
	},
	{
		name: "population prefetch 0",
		build: func(numAgents int64, numStates int, proto protocol.Protocol, rng *rand.Rand) engine {
			agents := urn.NewWeightedUrn(numStates)
			agents.AddBalls(0, numAgents)
			return NewPopulation[Prefetch0](agents, proto, rng)
		},
	},
	{
		name: "population prefetch 1",
		build: func(numAgents int64, numStates int, proto protocol.Protocol, rng *rand.Rand) engine {
			agents := urn.NewWeightedUrn(numStates)
			agents.AddBalls(0, numAgents)
			return NewPopulation[Prefetch1](agents, proto, rng)
		},
	},
	{
		name: "population prefetch 10",
		build: func(numAgents int64, numStates int, proto protocol.Protocol, rng *rand.Rand) engine {
			agents := urn.NewWeightedUrn(numStates)
			agents.AddBalls(0, numAgents)
			return NewPopulation[Prefetch10](agents, proto, rng)
		},
	},
	{
		name: "distribution linear urn",
		build: func(numAgents int64, numStates int, proto protocol.Protocol, rng *rand.Rand) engine {
			agents := urn.NewLinearUrn(numStates)
			agents.AddBalls(0, numAgents)
			return NewDistribution(agents, proto, rng)
		},
	},
	{
		name: "distribution tree urn",
		build: func(numAgents int64, numStates int, proto protocol.Protocol, rng *rand.Rand) engine {
			agents := urn.NewTreeUrn(numStates)
			agents.AddBalls(0, numAgents)
			return NewDistribution(agents, proto, rng)
		},
	},
}

var incrementStrategies = []struct {
	name     string
	strategy protocols.IncrementOneStrategy
	delta    int64
}{
	{"one-way", protocols.OneWay, 1},
	{"two-way first only", protocols.TwoWayFirst, 1},
	{"two-way second only", protocols.TwoWaySecond, 1},
	{"two-way both", protocols.TwoWayBoth, 2},
}

// runNoLoss drives a simulator until an agent first reaches 90% of the
// state space, checking at every epoch that the observed interaction
// count matches the weighted state sum implied by the protocol's
// per-interaction increment. Grounded on tests/SimulatorNoLossesTest.cpp's
// count_interactions helper.
func runNoLoss(cfg noLossConfig, strategy protocols.IncrementOneStrategy, delta int64, seed int64) (stateSum, numInteractions int64, invariantHeld bool) {
	const numAgents = 100
	const numStates = 1000
	maxState := int64(0.9 * float64(numStates))

	proto := protocols.NewIncrementOne(strategy, numStates)
	rng := rand.New(rand.NewSource(seed))
	e := cfg.build(numAgents, numStates, proto, rng)

	invariantHeld = true
	e.Run(MonitorFunc(func(info Info) bool {
		a := info.Agents()
		stateSum = 0
		for c := 1; c < a.NumColors(); c++ {
			stateSum += int64(c) * a.Count(c)
		}
		numInteractions = stateSum / delta
		if numInteractions != info.NumInteractions() {
			invariantHeld = false
			return false
		}

		highest := int64(0)
		for c := a.NumColors() - 1; c > 0; c-- {
			if a.Count(c) > 0 {
				highest = int64(c)
				break
			}
		}
		return highest < maxState
	}))

	return stateSum, numInteractions, invariantHeld
}

var _ = Describe("simulator no-loss property", func() {
	for _, cfg := range noLossConfigs {
		cfg := cfg
		for _, s := range incrementStrategies {
			s := s
			It("preserves num_interactions = state_sum/delta for "+cfg.name+" with "+s.name, func() {
				stateSum, numInteractions, held := runNoLoss(cfg, s.strategy, s.delta, 10+int64(s.strategy))
				Expect(held).To(BeTrue())
				Expect(stateSum / s.delta).To(Equal(numInteractions))
			})
		}
	}
})

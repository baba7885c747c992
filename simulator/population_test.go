package simulator

import (
	"math/rand"
	"testing"

	"github.com/popsim/ppsim/protocols"
	"github.com/popsim/ppsim/urn"
	"github.com/stretchr/testify/assert"
)

func TestPopulationPrefetch0PreservesTotal(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	agents := urn.NewWeightedUrnFromCounts([]int64{100, 0, 0})

	p := NewPopulation[Prefetch0](agents, protocols.NewIncrementOne(protocols.TwoWayBoth, 3), rng)
	p.Run(stopAfterEpochs(50))

	assert.Equal(t, int64(100), p.Agents().Total())
}

func TestPopulationPrefetch1PreservesTotal(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	agents := urn.NewWeightedUrnFromCounts([]int64{100, 0, 0})

	p := NewPopulation[Prefetch1](agents, protocols.NewIncrementOne(protocols.TwoWayBoth, 3), rng)
	p.Run(stopAfterEpochs(50))

	assert.Equal(t, int64(100), p.Agents().Total())
}

func TestPopulationPrefetch10PreservesTotal(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	agents := urn.NewWeightedUrnFromCounts([]int64{100, 0, 0})

	p := NewPopulation[Prefetch10](agents, protocols.NewIncrementOne(protocols.TwoWayBoth, 3), rng)
	p.Run(stopAfterEpochs(50))

	assert.Equal(t, int64(100), p.Agents().Total())
}

func TestPopulationOneWayPreservesTotal(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	agents := urn.NewWeightedUrnFromCounts([]int64{50, 50})

	p := NewPopulation[Prefetch1](agents, protocols.LeaderElection{}, rng)
	p.Run(stopAfterEpochs(10))

	assert.Equal(t, int64(100), p.Agents().Total())
}

func TestPopulationEpochLengthAtLeastPrefetchDepth(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	agents := urn.NewWeightedUrnFromCounts([]int64{3, 0})

	p := NewPopulation[Prefetch10](agents, protocols.NewIncrementOne(protocols.TwoWayBoth, 2), rng)
	assert.GreaterOrEqual(t, p.TargetEpochLength(), 10)
}

func TestPopulationPanicsOnTooFewAgents(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	agents := urn.NewWeightedUrnFromCounts([]int64{1})
	assert.Panics(t, func() {
		NewPopulation[Prefetch0](agents, protocols.LeaderElection{}, rng)
	})
}

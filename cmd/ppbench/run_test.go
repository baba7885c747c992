package main

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAgentsRandomProtocolSeedsExactlyRequestedAgents(t *testing.T) {
	cfg := baseConfig()
	cfg.NumAgents = 777
	rng := rand.New(rand.NewSource(1))

	agents, proto := seedAgents(cfg, rng)

	assert.Equal(t, int64(777), agents.Total())
	assert.Equal(t, cfg.NumStates, proto.NumStates())
}

func TestSeedAgentsClockProtocolSeedsExactlyRequestedAgents(t *testing.T) {
	cfg := baseConfig()
	cfg.ProtocolName = "clock"
	cfg.NumAgents = 1000
	cfg.NumStates = 10
	rng := rand.New(rand.NewSource(2))

	agents, proto := seedAgents(cfg, rng)

	assert.Equal(t, int64(1000), agents.Total())
	assert.Equal(t, 10, proto.NumStates())
}

func TestSeedAgentsRunningClockConcentratesMarkedAgentsAtOneState(t *testing.T) {
	cfg := baseConfig()
	cfg.ProtocolName = "running-clock"
	cfg.NumAgents = 1000
	cfg.NumStates = 10
	rng := rand.New(rand.NewSource(3))

	agents, _ := seedAgents(cfg, rng)

	digits := cfg.NumStates / 2
	require.Greater(t, agents.Count(digits), int64(0))
	for s := 1; s < digits; s++ {
		assert.Equal(t, int64(0), agents.Count(s+digits), "state %d should hold no marked agents", s)
	}
}

func TestSelectSimulatorBuildsRunnerForEverySimulatorName(t *testing.T) {
	for _, name := range simulatorNames {
		cfg := baseConfig()
		cfg.SimulatorName = name
		rng := rand.New(rand.NewSource(4))
		agents, proto := seedAgents(cfg, rng)

		sim := selectSimulator(cfg, agents, proto, rng)
		require.NotNil(t, sim, "simulator %q", name)
		assert.Equal(t, int64(100), sim.Agents().Total(), "simulator %q", name)
	}
}

func TestMeasureSingleRunReturnsNonNegativeWalltime(t *testing.T) {
	cfg := baseConfig()
	cfg.NumAgents = 200
	cfg.NumRounds = 3
	rng := rand.New(rand.NewSource(5))

	elapsed := measureSingleRun(cfg, rng, nil)

	assert.GreaterOrEqual(t, elapsed, 0.0)
}

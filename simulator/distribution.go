package simulator

import (
	"math"
	"math/rand"

	"github.com/popsim/ppsim/protocol"
	"github.com/popsim/ppsim/urn"
)

// Distribution is the simplest engine: each interaction removes two
// balls uniformly from the urn (or one, peeking at the second, for
// one-way protocols), applies the transition, and inserts the result.
// One epoch is floor(sqrt(N))+1 interactions. Grounded on
// AsyncDistributionSimulator (original_source/include/pps/AsyncDistributionSimulator.hpp).
type Distribution struct {
	agents   urn.Urn
	proto    protocol.Protocol
	rng      *rand.Rand
	epochLen int

	numInteractions int64
	numRuns         int64
	numEpochs       int64
}

// NewDistribution builds a Distribution simulator over agents, which
// must already hold at least two balls; the simulator takes ownership of
// it (callers should not keep mutating it afterward).
func NewDistribution(agents urn.Urn, proto protocol.Protocol, rng *rand.Rand) *Distribution {
	if agents.Total() <= 1 {
		panic("simulator: distribution simulator needs at least two agents")
	}
	return &Distribution{
		agents:   agents,
		proto:    proto,
		rng:      rng,
		epochLen: int(math.Sqrt(float64(agents.Total()))) + 1,
	}
}

// Run drives interactions until monitor.Observe returns false.
func (d *Distribution) Run(monitor Monitor) {
	for {
		for i := 0; i < d.epochLen; i++ {
			d.performSingleInteraction()
		}
		d.numInteractions += int64(d.epochLen)
		d.numEpochs++
		if !monitor.Observe(d) {
			return
		}
	}
}

func (d *Distribution) performSingleInteraction() {
	first := d.agents.DrawAndRemove(d.rng)
	var second int
	if d.proto.IsOneWay() {
		second = d.agents.Draw(d.rng)
	} else {
		second = d.agents.DrawAndRemove(d.rng)
	}

	out1, out2 := protocol.Transition(d.proto, first, second)
	d.agents.AddBalls(out1, 1)
	if !d.proto.IsOneWay() {
		d.agents.AddBalls(out2, 1)
	}
	d.numRuns++
}

func (d *Distribution) NumInteractions() int64 { return d.numInteractions }
func (d *Distribution) NumRuns() int64         { return d.numRuns }
func (d *Distribution) NumEpochs() int64       { return d.numEpochs }
func (d *Distribution) TargetEpochLength() int { return d.epochLen }
func (d *Distribution) Agents() urn.Urn        { return d.agents }
func (d *Distribution) Protocol() protocol.Protocol { return d.proto }

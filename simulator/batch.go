package simulator

import (
	"math/rand"

	"github.com/popsim/ppsim/collision"
	"github.com/popsim/ppsim/epoch"
	"github.com/popsim/ppsim/hypergeometric"
	"github.com/popsim/ppsim/protocol"
	"github.com/popsim/ppsim/urn"
)

type pairCount struct {
	color int
	n     int64
}

// Batch is the epoch-based engine: instead of simulating interactions
// one at a time, it samples run lengths from the collision distribution
// to jointly place many non-colliding interactions: each collision is
// applied as soon as it is drawn, and the delayed non-colliding pairs
// are applied in bulk at the end of the epoch. Grounded on AsyncBatchSimulator
// (original_source/include/pps/AsyncBatchSimulator.hpp).
type Batch struct {
	agents         urn.Urn // untouched pool
	updatedAgents  urn.Urn // touched, already in post-interaction state
	numDelayedAgents int64

	epochController *epoch.Controller
	collisionDistr  *collision.Distribution
	fairCoin        protocol.FairCoin

	proto protocol.Protocol
	rng   *rand.Rand

	skipableTransactions [][]int
	useSkipHeuristic     bool
	oneWayPartitions     [][]protocol.PartitionGroup

	numInteractions int64
	numRuns         int64
	numEpochs       int64
}

// NewBatch builds a Batch simulator over agents (which must be
// non-empty), using newEmptyUrn to construct same-typed empty urns for
// its internal bookkeeping pools (so a TreeUrn-backed run stays
// TreeUrn-backed throughout, etc).
func NewBatch(agents urn.Urn, proto protocol.Protocol, rng *rand.Rand, newEmptyUrn func(numColors int) urn.Urn) *Batch {
	total := agents.Total()
	if total == 0 {
		panic("simulator: batch simulator requires a non-empty urn")
	}
	numColors := agents.NumColors()

	pool := newEmptyUrn(numColors)
	adder, ok := pool.(urn.WholeAdder)
	if !ok {
		panic("simulator: batch simulator requires an urn implementing WholeAdder")
	}
	adder.AddUrn(agents)

	updated := newEmptyUrn(numColors)

	ec := epoch.New(int(total))
	cd := collision.New(total, 0, int64(2*ec.Max()))

	b := &Batch{
		agents:          pool,
		updatedAgents:   updated,
		epochController: ec,
		collisionDistr:  cd,
		proto:           proto,
		rng:             rng,
	}

	switch {
	case proto.IsDeterministic() && proto.IsOneWay():
		b.oneWayPartitions = protocol.PartitionOneWay(proto)
	case proto.IsDeterministic():
		skip, totalSkips := protocol.TransactionsWithoutChange(proto)
		b.skipableTransactions = skip
		b.useSkipHeuristic = totalSkips > numColors
	default:
		b.skipableTransactions = make([][]int, numColors)
	}

	return b
}

// Run drives epochs until monitor.Observe returns false.
func (b *Batch) Run(monitor Monitor) {
	b.epochController.Start()
	for {
		b.sampleRunLengthsAndPlantCollisions()
		b.processDelayedAgents()

		adder := b.agents.(urn.WholeAdder)
		adder.AddUrn(b.updatedAgents)
		b.updatedAgents.Clear()
		b.numDelayedAgents = 0
		b.numEpochs++
		b.epochController.Update(b.numInteractions)

		if !monitor.Observe(b) {
			return
		}
	}
}

func (b *Batch) sampleRunLengthsAndPlantCollisions() {
	numAgents := b.agents.Total() + b.updatedAgents.Total()

	for b.numDelayedAgents+b.updatedAgents.Total() < int64(b.epochController.Current()) {
		numCollidingAgents := b.numDelayedAgents + b.updatedAgents.Total()
		b.collisionDistr.SetRed(numCollidingAgents)

		var roundLength int64
		for {
			roundLength = b.collisionDistr.Draw(b.rng)
			if numCollidingAgents != 0 || roundLength >= 2 {
				break
			}
		}
		b.numDelayedAgents += 2 * (roundLength / 2)

		numCollidingAgents = b.numDelayedAgents + b.updatedAgents.Total()
		sampleAgent := func(hasCollision bool) int {
			if hasCollision {
				if b.withProbability(b.numDelayedAgents, numCollidingAgents) {
					return b.sampleDelayedAgent()
				}
				return b.sampleUpdatedAgent()
			}
			return b.sampleUntouchedAgent()
		}

		hasCollisionFirst := roundLength%2 == 0
		hasCollisionSecond := !hasCollisionFirst || b.withProbability(numCollidingAgents, numAgents)

		first := sampleAgent(hasCollisionFirst)
		second := sampleAgent(hasCollisionSecond)

		first, second = b.performInteraction(first, second)

		b.updatedAgents.AddBalls(first, 1)
		b.updatedAgents.AddBalls(second, 1)

		b.numRuns++
	}
}

func (b *Batch) processDelayedAgents() {
	if b.proto.IsDeterministic() && b.proto.IsOneWay() {
		b.processDelayedAgentsPartitioned()
		return
	}

	var firstAgents []pairCount
	urn.RemoveRandomBalls(b.agents, b.numDelayedAgents/2, b.rng, false, func(color int, n int64) {
		firstAgents = append(firstAgents, pairCount{color, n})
	})

	for _, task := range firstAgents {
		firstState := task.color
		skips := b.skipableTransactions[firstState]
		leftToSample := task.n
		unconsideredBalls := b.agents.Total()

		var numSkipableBalls int64
		if b.useSkipHeuristic {
			for _, x := range skips {
				numSkipableBalls += b.agents.Count(x)
			}
		}

		if numSkipableBalls > 0 {
			unconsideredBalls -= numSkipableBalls
			skippedTrans := hypergeometric.Sample(b.rng, numSkipableBalls, numSkipableBalls+unconsideredBalls, leftToSample)
			leftToSample -= skippedTrans
			b.updatedAgents.AddBalls(firstState, skippedTrans)
		}

		skipIdx := 0
		for second := 0; leftToSample > 0; second++ {
			if b.useSkipHeuristic {
				for skipIdx < len(skips) && skips[skipIdx] < second {
					skipIdx++
				}
				if skipIdx < len(skips) && skips[skipIdx] == second {
					continue
				}
			}

			ballsWithColor := b.agents.Count(second)
			unconsideredBalls -= ballsWithColor

			var numSelected int64
			switch {
			case ballsWithColor == 0:
				numSelected = 0
			case unconsideredBalls == 0:
				numSelected = minInt64(leftToSample, ballsWithColor)
			default:
				numSelected = hypergeometric.Sample(b.rng, ballsWithColor, ballsWithColor+unconsideredBalls, leftToSample)
			}

			if numSelected > 0 {
				b.agents.RemoveBalls(second, numSelected)
				b.performInteractions(firstState, second, numSelected)
			}

			leftToSample -= numSelected
		}
	}
}

func (b *Batch) processDelayedAgentsPartitioned() {
	var firstAgents []pairCount
	urn.RemoveRandomBalls(b.agents, b.numDelayedAgents/2, b.rng, false, func(color int, n int64) {
		firstAgents = append(firstAgents, pairCount{color, n})
	})

	for _, task := range firstAgents {
		firstState := task.color
		partitions := b.oneWayPartitions[firstState]
		leftToSample := task.n
		unconsideredBalls := b.agents.Total()

		if leftToSample == 0 {
			continue
		}

		if len(partitions) == 1 {
			b.updatedAgents.AddBalls(partitions[0].Image, leftToSample)
			continue
		}

		for _, partition := range partitions {
			var ballsInSecondState int64
			for _, x := range partition.Preimage {
				ballsInSecondState += b.agents.Count(x)
			}
			unconsideredBalls -= ballsInSecondState

			var numSelected int64
			switch {
			case ballsInSecondState == 0:
				numSelected = 0
			case unconsideredBalls == 0:
				numSelected = minInt64(leftToSample, ballsInSecondState)
			default:
				numSelected = hypergeometric.Sample(b.rng, ballsInSecondState, ballsInSecondState+unconsideredBalls, leftToSample)
			}

			b.updatedAgents.AddBalls(partition.Image, numSelected)
			leftToSample -= numSelected

			if leftToSample == 0 {
				break
			}
		}
	}

	b.numInteractions += b.numDelayedAgents / 2
}

func (b *Batch) sampleUntouchedAgent() int {
	return b.agents.DrawAndRemove(b.rng)
}

func (b *Batch) sampleDelayedAgent() int {
	first := b.sampleUntouchedAgent()
	second := b.sampleUntouchedAgent()
	b.numDelayedAgents -= 2

	first, second = b.performInteraction(first, second)

	if b.fairCoin.Flip(b.rng) {
		first, second = second, first
	}
	b.updatedAgents.AddBalls(second, 1)

	return first
}

func (b *Batch) sampleUpdatedAgent() int {
	return b.updatedAgents.DrawAndRemove(b.rng)
}

func (b *Batch) withProbability(good, total int64) bool {
	if total <= 0 {
		return false
	}
	return b.rng.Int63n(total)+1 <= good
}

// performInteraction applies a single interaction and counts it once.
func (b *Batch) performInteraction(first, second int) (int, int) {
	out1, out2 := protocol.Transition(b.proto, first, second)
	b.numInteractions++
	return out1, out2
}

// performInteractions applies num identical interactions in bulk,
// counting num towards numInteractions.
func (b *Batch) performInteractions(first, second int, num int64) {
	if b.proto.IsDeterministic() {
		out1, out2 := protocol.Transition(b.proto, first, second)
		b.updatedAgents.AddBalls(out1, num)
		b.updatedAgents.AddBalls(out2, num)
		b.numInteractions += num
		return
	}

	randomized, ok := b.proto.(protocol.Randomized)
	if !ok {
		panic("simulator: non-deterministic protocol must implement protocol.Randomized")
	}

	before := b.updatedAgents.Total()
	randomized.Apply(first, second, int(num), func(state, multiplicity int) {
		b.updatedAgents.AddBalls(state, int64(multiplicity))
	})
	b.numInteractions += num

	if b.updatedAgents.Total() != before+2*num {
		panic("simulator: randomized protocol bulk callback did not produce 2*k output states")
	}
}

func (b *Batch) NumInteractions() int64      { return b.numInteractions }
func (b *Batch) NumRuns() int64              { return b.numRuns }
func (b *Batch) NumEpochs() int64            { return b.numEpochs }
func (b *Batch) TargetEpochLength() int      { return b.epochController.CurrentBest() }
func (b *Batch) Agents() urn.Urn             { return b.agents }
func (b *Batch) Protocol() protocol.Protocol { return b.proto }

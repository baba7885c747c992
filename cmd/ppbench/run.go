package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"

	"github.com/popsim/ppsim/protocol"
	"github.com/popsim/ppsim/protocols"
	"github.com/popsim/ppsim/simulator"
	"github.com/popsim/ppsim/tracing"
	"github.com/popsim/ppsim/urn"
)

func newWeightedUrn(n int) urn.Urn { return urn.NewWeightedUrn(n) }
func newTreeUrn(n int) urn.Urn     { return urn.NewTreeUrn(n) }

// convertUrn copies source's per-color counts into target, matching the
// benchmark's convert_urn: the distr-* simulators and batch-tree want
// their own urn representation rather than the WeightedUrn seeding built.
func convertUrn(target, source urn.Urn) {
	for c := 0; c < source.NumColors(); c++ {
		target.AddBalls(c, source.Count(c))
	}
}

// seedAgents builds the starting urn and protocol for cfg, replaying
// the same two seeding recipes as the original CLI: an even
// depleting-remainder split across every state for the random
// protocols, and a clock-digit-aware split (or, for running-clock, a
// single concentrated burst of marked agents) for the clock protocols.
func seedAgents(cfg *config, rng *rand.Rand) (urn.Urn, protocol.Protocol) {
	switch cfg.ProtocolName {
	case "clock", "running-clock":
		digits := cfg.NumStates / 2
		numMarked := int64(math.Sqrt(float64(cfg.NumAgents))) + 1
		numAgents := cfg.NumAgents - numMarked

		agents := urn.NewWeightedUrn(cfg.NumStates)
		if cfg.ProtocolName == "running-clock" {
			agents.AddBalls(0, numAgents)
			agents.AddBalls(digits, numMarked)
		} else {
			for s := 0; s < digits; s++ {
				n := numAgents / int64(digits-s)
				agents.AddBalls(s, n)
				numAgents -= n

				m := numMarked / int64(digits-s)
				agents.AddBalls(s+digits, m)
				numMarked -= m
			}
		}
		return agents, protocols.NewClock(digits)

	default: // random1, random2
		agents := urn.NewWeightedUrn(cfg.NumStates)
		numAgents := cfg.NumAgents
		for s := 0; s < cfg.NumStates; s++ {
			n := numAgents / int64(cfg.NumStates-s)
			agents.AddBalls(s, n)
			numAgents -= n
		}

		var proto protocol.Protocol
		if cfg.ProtocolName == "random1" {
			proto = protocols.NewRandomProtocolOneWay(rng, cfg.NumStates)
		} else {
			proto = protocols.NewRandomProtocolTwoWay(rng, cfg.NumStates)
		}
		return agents, proto
	}
}

// selectSimulator builds the engine named by cfg.SimulatorName over
// seed, converting to that engine's preferred urn representation first.
func selectSimulator(cfg *config, seed urn.Urn, proto protocol.Protocol, rng *rand.Rand) simulator.Runner {
	switch cfg.SimulatorName {
	case "batch":
		return simulator.NewBatch(seed, proto, rng, newWeightedUrn)
	case "batch-tree":
		tree := urn.NewTreeUrn(seed.NumColors())
		convertUrn(tree, seed)
		return simulator.NewBatch(tree, proto, rng, newTreeUrn)
	case "pop":
		return simulator.NewPopulation[simulator.Prefetch0](seed, proto, rng)
	case "pop4":
		return simulator.NewPopulation[simulator.Prefetch4](seed, proto, rng)
	case "pop8":
		return simulator.NewPopulation[simulator.Prefetch8](seed, proto, rng)
	case "distr-linear":
		linear := urn.NewLinearUrn(seed.NumColors())
		convertUrn(linear, seed)
		return simulator.NewDistribution(linear, proto, rng)
	case "distr-tree":
		tree := urn.NewTreeUrn(seed.NumColors())
		convertUrn(tree, seed)
		return simulator.NewDistribution(tree, proto, rng)
	case "distr-alias":
		alias := urn.NewAliasUrn(seed.NumColors())
		convertUrn(alias, seed)
		return simulator.NewDistribution(alias, proto, rng)
	default:
		panic("ppbench: unreachable, config.validate should have rejected " + cfg.SimulatorName)
	}
}

// measureSingleRun runs one simulator to completion (num_interactions
// reaching num_agents*num_rounds), reports the CSV row to stdout and,
// if tracing is enabled, to the trace writer, and returns the elapsed
// wall time in seconds so the caller can decide whether to keep
// doubling num_agents.
func measureSingleRun(cfg *config, rng *rand.Rand, trace *tracing.CSVWriter) float64 {
	agents, proto := seedAgents(cfg, rng)
	sim := selectSimulator(cfg, agents, proto, rng)

	threshold := cfg.NumAgents * cfg.NumRounds
	monitor := simulator.MonitorFunc(func(info simulator.Info) bool {
		return info.NumInteractions() < threshold
	})

	start := time.Now()
	sim.Run(monitor)
	elapsed := time.Since(start).Seconds()

	fmt.Printf("%s,%s,%d,%d,%d,%d,%d,%f\n",
		cfg.csvSimulatorName(), cfg.ProtocolName, cfg.NumAgents, cfg.NumStates,
		cfg.NumRounds, cfg.Seed, sim.NumInteractions(), elapsed)

	if trace != nil {
		trace.Write(tracing.Row{
			Simulator:       cfg.csvSimulatorName(),
			Protocol:        cfg.ProtocolName,
			NumAgents:       cfg.NumAgents,
			NumStates:       cfg.NumStates,
			NumRounds:       cfg.NumRounds,
			Seed:            cfg.Seed,
			NumInteractions: sim.NumInteractions(),
			WalltimeSeconds: elapsed,
		})
	}

	if cfg.Stats {
		reportResourceUsage()
	}

	return elapsed
}

// reportResourceUsage prints the current process's CPU% and resident
// set size, the same two figures sarchlab-akita's monitor exposes over
// its /resources endpoint, here just dumped to stderr after each run.
func reportResourceUsage() {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ppbench: stats unavailable: %v\n", err)
		return
	}
	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ppbench: stats unavailable: %v\n", err)
		return
	}
	memInfo, err := proc.MemoryInfo()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ppbench: stats unavailable: %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "# cpu=%.1f%% rss=%d\n", cpuPercent, memInfo.RSS)
}

// runBenchmark replays the repeat/double-until-time-budget loop: each
// repeat starts again at cfg.NumAgents and doubles it until either
// NumMaxAgents is exceeded or a run's wall time reaches TimeBudget.
func runBenchmark(cfg *config, trace *tracing.CSVWriter) {
	rng := rand.New(rand.NewSource(cfg.Seed))

	for repeat := 0; repeat < cfg.NumRepeats; repeat++ {
		for numAgents := cfg.NumAgents; numAgents <= cfg.NumMaxAgents; {
			iteration := *cfg
			iteration.NumAgents = numAgents

			elapsed := measureSingleRun(&iteration, rng, trace)
			if elapsed >= cfg.TimeBudget {
				break
			}
			if numAgents > cfg.NumMaxAgents/2 {
				break // next doubling would exceed NumMaxAgents (or overflow int64)
			}
			numAgents *= 2
		}
	}
}

// Command ppbench drives every simulator/protocol combination in this
// module through the same benchmark loop the original project's
// main_benchmark.cpp ran, emitting one CSV row per run to stdout.
package main

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/popsim/ppsim/tracing"
)

var rootCmd = &cobra.Command{
	Use:   "ppbench",
	Short: "ppbench runs population-protocol simulators and reports throughput as CSV.",
	Long: `ppbench repeatedly runs a chosen simulator/protocol combination, doubling ` +
		`the number of agents each iteration, until either the agent count passes ` +
		`--maxagents or a single run's wall time reaches --time. Each run is reported ` +
		`as one CSV line: simulator,protocol,num_agents,num_states,num_rounds,seed,` +
		`num_interactions,walltime.`,
	RunE: runRootCmd,
}

func init() {
	flags := rootCmd.Flags()
	flags.Int64P("seed", "s", time.Now().UnixNano(), "PRNG seed")
	flags.StringP("simulator", "a", "batch",
		"simulator: batch, batch-tree, pop, pop4, pop8, distr-linear, distr-tree, distr-alias")
	flags.StringP("protocol", "p", "random1", "protocol: random1, random2, clock, running-clock")

	flags.Int64P("agents", "n", 1024, "number of agents")
	flags.Int64P("maxagents", "N", math.MaxInt64, "max. number of agents")
	flags.Float64P("time", "t", 10.0, "max time budget per run, seconds")

	flags.IntP("states", "d", 20, "number of states")

	flags.Int64P("rounds", "r", 10, "number of rounds")
	flags.IntP("repeats", "R", 1, "number of repeats")

	flags.Bool("header-only", false, "print the CSV header and quit")
	flags.Bool("stats", false, "print process CPU/memory usage after each run")
	flags.String("trace", "", "also write every run to this CSV file")
}

func runRootCmd(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	headerOnly, _ := flags.GetBool("header-only")
	if headerOnly {
		fmt.Println("simulator,protocol,num_agents,num_states,num_rounds,seed,num_interactions,walltime")
		return nil
	}

	cfg := &config{}
	cfg.Seed, _ = flags.GetInt64("seed")
	cfg.SimulatorName, _ = flags.GetString("simulator")
	cfg.ProtocolName, _ = flags.GetString("protocol")
	cfg.NumAgents, _ = flags.GetInt64("agents")
	cfg.NumMaxAgents, _ = flags.GetInt64("maxagents")
	cfg.TimeBudget, _ = flags.GetFloat64("time")
	cfg.NumStates, _ = flags.GetInt("states")
	cfg.NumRounds, _ = flags.GetInt64("rounds")
	cfg.NumRepeats, _ = flags.GetInt("repeats")
	cfg.Stats, _ = flags.GetBool("stats")
	cfg.TracePath, _ = flags.GetString("trace")

	if err := cfg.validate(); err != nil {
		return err
	}

	var trace *tracing.CSVWriter
	if cfg.TracePath != "" {
		trace = tracing.NewCSVWriter(cfg.TracePath)
		trace.Init()
	}

	runBenchmark(cfg, trace)
	return nil
}

func main() {
	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

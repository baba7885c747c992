// Package tracing buffers benchmark run results and flushes them to a
// CSV file.
package tracing

// Row is one completed benchmark run, matching the CSV line format:
// simulator,protocol,num_agents,num_states,num_rounds,seed,
// num_interactions,walltime.
type Row struct {
	Simulator       string
	Protocol        string
	NumAgents       int64
	NumStates       int
	NumRounds       int64
	Seed            int64
	NumInteractions int64
	WalltimeSeconds float64
}

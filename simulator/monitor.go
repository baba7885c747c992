// Package simulator implements the three interaction-driving engines:
// Distribution (one interaction per step), Population (per-agent vector
// with optional prefetch pipelining), and Batch (epoch-based, sampling
// many non-colliding interactions jointly via the collision
// distribution). All three drive a protocol.Protocol against a urn.Urn
// (or, for Population, a materialized per-agent slice) and report
// progress to a Monitor between epochs.
package simulator

import "github.com/popsim/ppsim/urn"

// Info is the read-only view a Monitor receives after every epoch.
type Info interface {
	NumInteractions() int64
	NumRuns() int64
	NumEpochs() int64
	TargetEpochLength() int
	Agents() urn.Urn
}

// Monitor is invoked once per epoch with the simulator's current state;
// returning false stops the run.
type Monitor interface {
	Observe(info Info) bool
}

// MonitorFunc adapts a plain function to the Monitor interface.
type MonitorFunc func(info Info) bool

func (f MonitorFunc) Observe(info Info) bool { return f(info) }

// Runner is satisfied by every engine this package exports (Distribution,
// Population[P], Batch): it drives interactions until a Monitor returns
// false and reports its own progress as an Info. Callers that need to
// pick a simulator strategy at runtime (the benchmark CLI) can hold one
// of these instead of switching on the concrete type everywhere.
type Runner interface {
	Info
	Run(Monitor)
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

package tracing

import (
	"fmt"
	"os"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// CSVWriter buffers benchmark Rows and writes them to a CSV file,
// flushing automatically once bufferSize rows accumulate and again on
// process exit.
type CSVWriter struct {
	path string
	file *os.File

	rows       []Row
	bufferSize int
}

// NewCSVWriter builds a CSVWriter targeting path. An empty path picks a
// unique name under the current directory using xid.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{
		path:       path,
		bufferSize: 1000,
	}
}

// Init creates the trace file, registering a flush-and-close on process
// exit. Panics if the target file already exists.
func (w *CSVWriter) Init() {
	if w.path == "" {
		w.path = "ppbench_trace_" + xid.New().String() + ".csv"
	}

	if _, err := os.Stat(w.path); err == nil {
		panic(fmt.Errorf("tracing: file %s already exists", w.path))
	}

	file, err := os.Create(w.path)
	if err != nil {
		panic(err)
	}
	w.file = file

	fmt.Fprintln(w.file, "simulator,protocol,num_agents,num_states,num_rounds,seed,num_interactions,walltime")

	atexit.Register(func() {
		w.Flush()
		if err := w.file.Close(); err != nil {
			panic(err)
		}
	})
}

// Write enqueues a row, flushing if the buffer has filled up.
func (w *CSVWriter) Write(row Row) {
	w.rows = append(w.rows, row)
	if len(w.rows) >= w.bufferSize {
		w.Flush()
	}
}

// Flush writes every buffered row to disk.
func (w *CSVWriter) Flush() {
	for _, r := range w.rows {
		fmt.Fprintf(w.file, "%s,%s,%d,%d,%d,%d,%d,%.6f\n",
			r.Simulator, r.Protocol, r.NumAgents, r.NumStates,
			r.NumRounds, r.Seed, r.NumInteractions, r.WalltimeSeconds)
	}
	w.rows = nil
}

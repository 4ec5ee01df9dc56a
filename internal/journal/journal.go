// Package journal records repair runs as a stream of msgpack records so a run
// can be inspected after the fact.
package journal

import (
	"time"
)

// Current schema version - increment when the record format changes
const schemaVersion uint16 = 1

// Kind tags a record.
type Kind uint8

const (
	KindStart Kind = iota + 1
	KindIteration
	KindFinish
)

// Start opens a run.
type Start struct {
	Source      string    `msgpack:"source"`
	Target      string    `msgpack:"target"`
	Function    string    `msgpack:"function,omitempty"`
	Mode        string    `msgpack:"mode"`
	Fingerprint uint64    `msgpack:"fingerprint"`
	Time        time.Time `msgpack:"time"`
}

// Iteration mirrors one round of the driver loop.
type Iteration struct {
	Index       int     `msgpack:"index"`
	State       string  `msgpack:"state"`
	Progress    bool    `msgpack:"progress"`
	Diagnostics int     `msgpack:"diagnostics"`
	Fingerprint uint64  `msgpack:"fingerprint"`
	CompileMS   float64 `msgpack:"compile_ms"`
	ProcessMS   float64 `msgpack:"process_ms"`
	Last        string  `msgpack:"last,omitempty"`
}

// Finish closes a run with the final status.
type Finish struct {
	Success                bool      `msgpack:"success"`
	RepairCount            int       `msgpack:"repair_count"`
	State                  string    `msgpack:"state"`
	HasNonElidibleLifetime bool      `msgpack:"has_non_elidible_lifetime"`
	HasStructLifetime      bool      `msgpack:"has_struct_lifetime"`
	Error                  string    `msgpack:"error,omitempty"`
	Time                   time.Time `msgpack:"time"`
}

// Record is one entry of the journal file. Exactly one payload is set.
type Record struct {
	Schema    uint16     `msgpack:"schema"`
	RunID     string     `msgpack:"run_id"`
	Kind      Kind       `msgpack:"kind"`
	Start     *Start     `msgpack:"start,omitempty"`
	Iteration *Iteration `msgpack:"iteration,omitempty"`
	Finish    *Finish    `msgpack:"finish,omitempty"`
}

// Run is the reassembled history of one repair.
type Run struct {
	ID         string
	Start      Start
	Iterations []Iteration
	Finish     *Finish // nil when the run never finished
}

// Duration is the wall time between start and finish, zero for unfinished runs.
func (r *Run) Duration() time.Duration {
	if r.Finish == nil {
		return 0
	}
	return r.Finish.Time.Sub(r.Start.Time)
}

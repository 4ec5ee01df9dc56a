package journal

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrSchema is returned for records written by an incompatible version.
var ErrSchema = errors.New("journal: unsupported schema")

// Read decodes every record from r and groups them into runs in the order the
// runs started.
func Read(r io.Reader) ([]*Run, error) {
	dec := msgpack.NewDecoder(r)
	var (
		runs []*Run
		byID = make(map[string]*Run)
	)
	get := func(id string) *Run {
		run, ok := byID[id]
		if !ok {
			run = &Run{ID: id}
			byID[id] = run
			runs = append(runs, run)
		}
		return run
	}
	for {
		var rec Record
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			return runs, nil
		}
		if err != nil {
			return runs, fmt.Errorf("journal: %w", err)
		}
		if rec.Schema != schemaVersion {
			return runs, fmt.Errorf("%w: %d", ErrSchema, rec.Schema)
		}
		run := get(rec.RunID)
		switch rec.Kind {
		case KindStart:
			if rec.Start != nil {
				run.Start = *rec.Start
			}
		case KindIteration:
			if rec.Iteration != nil {
				run.Iterations = append(run.Iterations, *rec.Iteration)
			}
		case KindFinish:
			run.Finish = rec.Finish
		}
	}
}

// ReadFile reads the journal at path.
func ReadFile(path string) ([]*Run, error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	defer f.Close()
	return Read(f)
}

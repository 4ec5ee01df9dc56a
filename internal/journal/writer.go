package journal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"ltfix/internal/driver"
	"ltfix/internal/source"
)

// Writer appends records to a journal. Thread-safe for concurrent access:
// parallel repairs may share one writer.
type Writer struct {
	mu  sync.Mutex
	c   io.Closer
	enc *msgpack.Encoder
}

// NewWriter writes records to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: msgpack.NewEncoder(w)}
}

// Create opens path for appending, creating it and its directory when needed.
func Create(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	// #nosec G304 -- path is provided by the caller
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	w := NewWriter(f)
	w.c = f
	return w, nil
}

// Close flushes and closes the underlying file, if the writer owns one.
func (w *Writer) Close() error {
	if w == nil || w.c == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if f, ok := w.c.(*os.File); ok {
		if err := f.Sync(); err != nil {
			_ = f.Close()
			return fmt.Errorf("journal: %w", err)
		}
	}
	return w.c.Close()
}

func (w *Writer) write(rec *Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	rec.Schema = schemaVersion
	if err := w.enc.Encode(rec); err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	return nil
}

// Session records one run.
type Session struct {
	w   *Writer
	id  string
	err error
}

// Begin starts a run over target (the working copy of source) and records
// the fingerprint of its current content.
func (w *Writer) Begin(src, target, fn, mode string) *Session {
	s := &Session{w: w, id: uuid.NewString()}
	if w == nil {
		return s
	}
	start := &Start{Source: src, Target: target, Function: fn, Mode: mode, Time: time.Now().UTC()}
	if f, err := source.Load(target); err == nil {
		start.Fingerprint = f.Hash
	}
	s.err = w.write(&Record{RunID: s.id, Kind: KindStart, Start: start})
	return s
}

// ID returns the run id.
func (s *Session) ID() string { return s.id }

// Hook is an Options.OnIteration callback recording every round.
func (s *Session) Hook() func(driver.Iteration) {
	return func(it driver.Iteration) {
		if s.w == nil || s.err != nil {
			return
		}
		s.err = s.w.write(&Record{RunID: s.id, Kind: KindIteration, Iteration: &Iteration{
			Index:       it.Index,
			State:       it.State.String(),
			Progress:    it.Progress,
			Diagnostics: it.Diagnostics,
			Fingerprint: it.Fingerprint,
			CompileMS:   float64(it.Compile) / float64(time.Millisecond),
			ProcessMS:   float64(it.Process) / float64(time.Millisecond),
			Last:        it.Last,
		}})
	}
}

// Finish records the outcome. runErr is the error the repair returned, if any.
// It returns the first write error of the session.
func (s *Session) Finish(res driver.Result, runErr error) error {
	if s.w == nil {
		return nil
	}
	fin := &Finish{
		Success:                res.Success,
		RepairCount:            res.RepairCount,
		State:                  res.State.String(),
		HasNonElidibleLifetime: res.HasNonElidibleLifetime,
		HasStructLifetime:      res.HasStructLifetime,
		Time:                   time.Now().UTC(),
	}
	if runErr != nil {
		fin.Error = runErr.Error()
	}
	err := s.w.write(&Record{RunID: s.id, Kind: KindFinish, Finish: fin})
	return errors.Join(s.err, err)
}

package testkit

import (
	"context"
	"sync"

	"ltfix/internal/driver"
)

// Script is a driver.Runner that replays canned outputs. Once the script is
// exhausted the last output repeats.
type Script struct {
	mu      sync.Mutex
	outputs []driver.Output
	errs    map[int]error
	calls   int
}

// NewScript creates a runner returning outputs in order.
func NewScript(outputs ...driver.Output) *Script {
	return &Script{outputs: outputs, errs: make(map[int]error)}
}

// FailAt makes call number n (1-based) return err.
func (s *Script) FailAt(n int, err error) *Script {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[n] = err
	return s
}

// Run implements driver.Runner.
func (s *Script) Run(ctx context.Context) (driver.Output, error) {
	if err := ctx.Err(); err != nil {
		return driver.Output{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if err, ok := s.errs[s.calls]; ok {
		return driver.Output{}, err
	}
	if len(s.outputs) == 0 {
		return Pass(), nil
	}
	i := s.calls - 1
	if i >= len(s.outputs) {
		i = len(s.outputs) - 1
	}
	return s.outputs[i], nil
}

// Calls returns how many times Run was called.
func (s *Script) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Pass is a successful compilation.
func Pass() driver.Output {
	return driver.Output{Success: true}
}

// Fail is a failed rustc run printing stderr.
func Fail(stderr string) driver.Output {
	return driver.Output{ExitCode: 1, Stderr: stderr}
}

// FailProject is a failed cargo run printing one JSON record per line.
func FailProject(records ...string) driver.Output {
	out := ""
	for _, r := range records {
		out += r + "\n"
	}
	return driver.Output{ExitCode: 101, Stdout: out}
}

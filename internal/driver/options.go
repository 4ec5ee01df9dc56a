package driver

import (
	"time"

	"go.uber.org/zap"

	"ltfix/internal/observ"
)

// DefaultMaxIterations bounds the repair loop when Options.MaxIterations is unset.
const DefaultMaxIterations = 25

// Iteration describes one finished round of the loop.
type Iteration struct {
	Index       int // 1-based
	State       State
	Progress    bool
	Diagnostics int    // diagnostics handed to the processor
	Last        string // rendered text of the last relevant diagnostic
	Fingerprint uint64 // target file after processing, 0 when unknown
	Compile     time.Duration
	Process     time.Duration
}

// Options configure both loop variants.
type Options struct {
	MaxIterations int
	Logger        *zap.Logger
	Timer         *observ.Timer      // optional phase timings
	OnIteration   func(it Iteration) // called after every round, including the last
	Target        string             // file fingerprinted after each round
}

func (o *Options) maxIterations() int {
	if o == nil || o.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return o.MaxIterations
}

func (o *Options) logger() *zap.Logger {
	if o == nil || o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

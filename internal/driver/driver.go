package driver

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ltfix/internal/diag"
	"ltfix/internal/source"
)

// MessageProcessor handles one diagnostic relevant to the file under repair.
type MessageProcessor func(ctx context.Context, d diag.Diagnostic) (bool, error)

// Rendered adapts a processor of raw diagnostic text to a MessageProcessor.
func Rendered(process func(ctx context.Context, raw string) (bool, error)) MessageProcessor {
	return func(ctx context.Context, d diag.Diagnostic) (bool, error) {
		return process(ctx, d.Rendered)
	}
}

// RepairFile compiles with runner until it succeeds, process stops making
// progress, or the iteration budget runs out. process receives the compiler's
// stderr of every failed run.
func RepairFile(ctx context.Context, runner Runner, process func(ctx context.Context, raw string) (bool, error), opts *Options) (Result, error) {
	return loop(ctx, runner, opts, func(ctx context.Context, out Output) (round, error) {
		progress, err := process(ctx, out.Stderr)
		return round{progress: progress, handled: 1, last: out.Stderr}, err
	})
}

// RepairProject is RepairFile for build tools that print one JSON record per
// line on stdout. Only diagnostics with a span in srcPath are processed, each
// at most once per round.
func RepairProject(ctx context.Context, runner Runner, srcPath string, process MessageProcessor, opts *Options) (Result, error) {
	log := opts.logger()
	return loop(ctx, runner, opts, func(ctx context.Context, out Output) (round, error) {
		bag := diag.NewBag(0)
		for pd, err := range diag.ProjectStream(out.Stdout) {
			if err != nil {
				log.Debug("skipping build output record", zap.Error(err))
				continue
			}
			if pd.Message != nil && pd.Message.References(srcPath) {
				bag.Add(*pd.Message)
			}
		}
		bag.Dedup()
		if !bag.HasErrors() {
			log.Debug("no error diagnostics for file", zap.String("path", srcPath), zap.Int("diagnostics", bag.Len()))
		}

		var r round
		if last, ok := bag.Last(); ok {
			r.last = last.Rendered
		}
		for _, d := range bag.Items() {
			fields := []zap.Field{zap.Stringer("code", d.ErrCode()), zap.Bool("lifetime", d.ErrCode().Lifetime())}
			if sp, ok := d.Primary(); ok {
				fields = append(fields, zap.Int("line", sp.LineStart))
			}
			log.Debug("processing diagnostic", fields...)
			ok, err := process(ctx, d)
			r.handled++
			if err != nil {
				return r, err
			}
			r.progress = r.progress || ok
		}
		return r, nil
	})
}

type round struct {
	progress bool
	handled  int
	last     string
}

func loop(ctx context.Context, runner Runner, opts *Options, handle func(context.Context, Output) (round, error)) (Result, error) {
	log := opts.logger()
	maxIter := opts.maxIterations()
	res := Result{State: Running}

	for !res.State.Terminal() {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		it := Iteration{Index: res.RepairCount + 1}
		start := time.Now()
		idx := opts.begin("compile")
		out, err := runner.Run(ctx)
		opts.end(idx, "")
		it.Compile = time.Since(start)
		if err != nil {
			return res, fmt.Errorf("compile: %w", err)
		}
		if out.Success {
			res.State = Succeeded
			res.Success = true
			it.State = Succeeded
			it.Progress = true
			it.Fingerprint = opts.fingerprint()
			opts.notify(it)
			break
		}
		res.RepairCount++

		start = time.Now()
		idx = opts.begin("process")
		r, err := handle(ctx, out)
		opts.end(idx, fmt.Sprintf("%d diagnostics", r.handled))
		it.Process = time.Since(start)
		if err != nil {
			return res, fmt.Errorf("process diagnostics: %w", err)
		}

		switch {
		case !r.progress:
			res.State = FailedNoProgress
		case res.RepairCount >= maxIter:
			res.State = FailedBudgetExhausted
		}
		if res.State.Terminal() {
			log.Debug("last failure", zap.String("rendered", r.last))
		}

		it.State = res.State
		it.Progress = r.progress
		it.Diagnostics = r.handled
		it.Last = r.last
		it.Fingerprint = opts.fingerprint()
		log.Debug("repair iteration",
			zap.Int("iteration", it.Index),
			zap.Bool("progress", it.Progress),
			zap.Int("diagnostics", it.Diagnostics),
			zap.Stringer("state", it.State))
		opts.notify(it)
	}

	log.Info("repair count", zap.Int("count", res.RepairCount))
	log.Info("status", zap.Bool("success", res.Success), zap.Stringer("state", res.State))
	return res, nil
}

func (o *Options) begin(phase string) int {
	if o == nil || o.Timer == nil {
		return -1
	}
	return o.Timer.Begin(phase)
}

func (o *Options) end(idx int, note string) {
	if o == nil || o.Timer == nil {
		return
	}
	o.Timer.End(idx, note)
}

func (o *Options) fingerprint() uint64 {
	if o == nil || o.Target == "" {
		return 0
	}
	f, err := source.Load(o.Target)
	if err != nil {
		return 0
	}
	return f.Hash
}

func (o *Options) notify(it Iteration) {
	if o == nil || o.OnIteration == nil {
		return
	}
	o.OnIteration(it)
}

package repair

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"ltfix/internal/driver"
	"ltfix/internal/elide"
	"ltfix/internal/fix"
	"ltfix/internal/format"
	"ltfix/internal/journal"
	"ltfix/internal/observ"
	"ltfix/internal/rename"
	"ltfix/internal/rewrite"
	"ltfix/internal/source"
)

// RunnerFactory builds the runner for a configured argv template.
type RunnerFactory func(argv []string, vars map[string]string) (driver.Runner, error)

func commandRunner(argv []string, vars map[string]string) (driver.Runner, error) {
	return driver.NewCommand(argv, vars)
}

// Lifetime repairs lifetime errors with compiler suggestions and bound
// inference, then minimizes the repaired signature.
type Lifetime struct {
	Compiler      []string // rustc argv template: {file}, {out_dir}
	Build         []string // cargo argv template: {manifest}
	Formatter     format.Formatter
	Marker        string
	MaxIterations int
	Logger        *zap.Logger
	Timer         *observ.Timer
	Journal       *journal.Writer
	NewRunner     RunnerFactory // nil runs the commands
}

var _ System = (*Lifetime)(nil)

// Name implements System.
func (l *Lifetime) Name() string { return "lifetime" }

func (l *Lifetime) log() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}

func (l *Lifetime) rewriteOpts() rewrite.Options {
	return rewrite.Options{Formatter: l.Formatter, Logger: l.log()}
}

func (l *Lifetime) runner(argv []string, vars map[string]string) (driver.Runner, error) {
	factory := l.NewRunner
	if factory == nil {
		factory = commandRunner
	}
	return factory(argv, vars)
}

// compiler returns the rustc runner for path and a cleanup for its output dir.
func (l *Lifetime) compiler(path string) (driver.Runner, func(), error) {
	outDir, err := os.MkdirTemp("", "ltfix-out-*")
	if err != nil {
		return nil, nil, fmt.Errorf("output dir: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(outDir) }
	r, err := l.runner(l.Compiler, map[string]string{"file": path, "out_dir": outDir})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("compiler command: %w", err)
	}
	return r, cleanup, nil
}

func (l *Lifetime) options(sess *journal.Session, target string) *driver.Options {
	return &driver.Options{
		MaxIterations: l.MaxIterations,
		Logger:        l.log(),
		Timer:         l.Timer,
		OnIteration:   sess.Hook(),
		Target:        target,
	}
}

func (l *Lifetime) finish(sess *journal.Session, res driver.Result, err error) {
	if ferr := sess.Finish(res, err); ferr != nil {
		l.log().Warn("journal write failed", zap.Error(ferr))
	}
}

// RepairFile implements System.
func (l *Lifetime) RepairFile(ctx context.Context, filePath, newFilePath string) (res driver.Result, err error) {
	if err := source.CopyFile(filePath, newFilePath); err != nil {
		return res, err
	}
	sess := l.Journal.Begin(filePath, newFilePath, "", "file")
	defer func() { l.finish(sess, res, err) }()

	runner, cleanup, err := l.compiler(newFilePath)
	if err != nil {
		return res, err
	}
	defer cleanup()

	return driver.RepairFile(ctx, runner, fix.Suggestions(newFilePath, l.rewriteOpts()), l.options(sess, newFilePath))
}

// RepairFunction implements System.
func (l *Lifetime) RepairFunction(ctx context.Context, filePath, newFilePath, fn string) (res driver.Result, err error) {
	if err := source.CopyFile(filePath, newFilePath); err != nil {
		return res, err
	}
	sess := l.Journal.Begin(filePath, newFilePath, fn, "function")
	defer func() { l.finish(sess, res, err) }()

	runner, cleanup, err := l.compiler(newFilePath)
	if err != nil {
		return res, err
	}
	defer cleanup()

	opts := l.rewriteOpts()
	process := fix.Any(fix.Suggestions(newFilePath, opts), fix.Bounds(newFilePath, fn, opts))
	res, err = driver.RepairFile(ctx, runner, process, l.options(sess, newFilePath))
	if err != nil || !res.Success {
		return res, err
	}
	return l.polish(ctx, runner, newFilePath, fn, res)
}

// RepairProject implements System.
func (l *Lifetime) RepairProject(ctx context.Context, srcPath, manifestPath, fn string) (res driver.Result, err error) {
	sess := l.Journal.Begin(srcPath, srcPath, fn, "project")
	defer func() { l.finish(sess, res, err) }()

	runner, err := l.runner(l.Build, map[string]string{"manifest": manifestPath})
	if err != nil {
		return res, fmt.Errorf("build command: %w", err)
	}
	opts := l.rewriteOpts()
	process := fix.Any(fix.Suggestions(srcPath, opts), fix.Bounds(srcPath, fn, opts))
	res, err = driver.RepairProject(ctx, runner, srcPath, driver.Rendered(process), l.options(sess, srcPath))
	if err != nil || !res.Success {
		return res, err
	}
	return l.polish(ctx, runner, srcPath, fn, res)
}

// polish elides lifetimes and strips the extraction marker from a file that
// compiles. When the elided file no longer compiles the elision is undone.
func (l *Lifetime) polish(ctx context.Context, runner driver.Runner, path, fn string, res driver.Result) (driver.Result, error) {
	before, err := source.Load(path)
	if err != nil {
		return res, err
	}
	opts := l.rewriteOpts()

	el, err := elide.Lifetimes(ctx, path, fn, opts)
	if err != nil {
		return res, err
	}
	res.HasNonElidibleLifetime = el.AnnotationsLeft
	res.HasStructLifetime = el.HasStructLifetime

	marker := l.Marker
	if marker == "" {
		marker = rename.DefaultMarker
	}
	logical := strings.TrimSuffix(fn, marker)
	if _, err := rename.Callee(ctx, path, logical, marker, opts); err != nil {
		return res, err
	}

	out, err := runner.Run(ctx)
	if err != nil {
		return res, fmt.Errorf("verify: %w", err)
	}
	if out.Success {
		return res, nil
	}

	l.log().Warn("elided signature does not compile, restoring", zap.String("path", path), zap.String("fn", fn))
	if err := before.Save(before.Content); err != nil {
		return res, err
	}
	if _, err := rename.Callee(ctx, path, logical, marker, opts); err != nil {
		return res, err
	}
	res.HasNonElidibleLifetime = true
	return res, nil
}

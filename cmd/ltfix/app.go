package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ltfix/internal/changes"
	"ltfix/internal/config"
	"ltfix/internal/format"
	"ltfix/internal/journal"
	"ltfix/internal/logging"
	"ltfix/internal/observ"
	"ltfix/internal/repair"
	"ltfix/internal/rewrite"
)

// app is the state shared by every command of one invocation.
type app struct {
	cfg     config.Config
	log     *zap.Logger
	timer   *observ.Timer
	journal *journal.Writer

	out     io.Writer
	diff    bool
	timings bool

	closers []func() error
}

func colorMode(value string) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return isTerminal(os.Stdout), nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

// setup reads the persistent flags and configuration for cmd.
func setup(cmd *cobra.Command) (*app, error) {
	flags := cmd.Root().PersistentFlags()
	str := func(name string) string {
		v, _ := flags.GetString(name)
		return v
	}
	boolean := func(name string) bool {
		v, _ := flags.GetBool(name)
		return v
	}

	useColor, err := colorMode(str("color"))
	if err != nil {
		return nil, err
	}
	color.NoColor = !useColor

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Discover(wd, str("config"))
	if err != nil {
		return nil, err
	}
	if flags.Changed("max-iterations") {
		n, _ := flags.GetInt("max-iterations")
		if n <= 0 {
			return nil, fmt.Errorf("--max-iterations must be positive, got %d", n)
		}
		cfg.Repair.MaxIterations = n
	}
	if v := str("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v := str("log-file"); v != "" {
		cfg.Log.File = v
	}
	if boolean("no-format") {
		cfg.Format.Enabled = false
	}

	log, closeLog, err := logging.New(logging.Config{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		JSON:    cfg.Log.JSON,
		Color:   useColor && isTerminal(os.Stderr),
		Console: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}
	a := &app{
		cfg:     cfg,
		log:     log,
		out:     cmd.OutOrStdout(),
		diff:    boolean("diff"),
		timings: boolean("timings"),
		closers: []func() error{closeLog},
	}
	if cfg.Path != "" {
		log.Debug("configuration loaded", zap.String("path", cfg.Path))
	}
	if a.timings {
		a.timer = observ.NewTimer()
	}
	if path := str("journal"); path != "" {
		w, err := journal.Create(path)
		if err != nil {
			_ = a.close()
			return nil, err
		}
		a.journal = w
		a.closers = append([]func() error{w.Close}, a.closers...)
	}
	return a, nil
}

// close prints timings and releases the journal and the log file.
func (a *app) close() error {
	if a.timer != nil {
		fmt.Fprint(a.out, a.timer.Summary())
	}
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

func (a *app) formatter() format.Formatter {
	if !a.cfg.Format.Enabled || len(a.cfg.Format.Command) == 0 {
		return nil
	}
	argv := a.cfg.Format.Command
	return &format.Command{Name: argv[0], Args: argv[1:]}
}

func (a *app) rewriteOptions() rewrite.Options {
	return rewrite.Options{Formatter: a.formatter(), Logger: a.log}
}

func (a *app) strategy() *repair.Lifetime {
	return &repair.Lifetime{
		Compiler:      a.cfg.Compiler.Command,
		Build:         a.cfg.Build.Command,
		Formatter:     a.formatter(),
		Marker:        a.cfg.Repair.Marker,
		MaxIterations: a.cfg.Repair.MaxIterations,
		Logger:        a.log,
		Timer:         a.timer,
		Journal:       a.journal,
	}
}

// snapshot returns a function printing the diff of path against its
// current content, or a no-op when --diff is off.
func (a *app) snapshot(path string) func(target string) {
	if !a.diff {
		return func(string) {}
	}
	before, err := os.ReadFile(path)
	if err != nil {
		a.log.Warn("cannot snapshot for --diff", zap.String("path", path), zap.Error(err))
		return func(string) {}
	}
	return func(target string) {
		after, err := os.ReadFile(target)
		if err != nil {
			a.log.Warn("cannot read repaired file", zap.String("path", target), zap.Error(err))
			return
		}
		rep := changes.Compute(target, string(before), string(after))
		if err := rep.Write(a.out, 2); err != nil {
			a.log.Warn("diff output failed", zap.Error(err))
		}
	}
}

// run wraps a command body with setup and teardown.
func run(body func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, a.close())
		}()
		return body(cmd, a, args)
	}
}

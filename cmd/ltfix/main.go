package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ltfix/internal/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ltfix",
		Short: "Repair lifetime errors in extracted Rust functions",
		Long: `ltfix drives rustc or cargo over a Rust file, applies the lifetime fixes the
compiler suggests until the file compiles, then minimizes the repaired signature.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newFileCmd())
	root.AddCommand(newFunctionCmd())
	root.AddCommand(newProjectCmd())
	root.AddCommand(newBatchCmd())
	root.AddCommand(newElideCmd())
	root.AddCommand(newRenameCmd())
	root.AddCommand(newJournalCmd())
	root.AddCommand(newVersionCmd())

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("config", "", "path to ltfix.toml (default: search upwards from the working directory)")
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Int("max-iterations", 0, "repair budget per run (default from config)")
	pf.String("log-level", "", "log level (debug|info|warn|error)")
	pf.String("log-file", "", "also write JSON logs to this file")
	pf.Bool("timings", false, "show timing information")
	pf.String("journal", "", "append a msgpack journal of every run to this file")
	pf.Bool("diff", false, "print the changes made to the repaired file")
	pf.Bool("no-format", false, "do not run the formatter after signature rewrites")

	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		root.PrintErrln("error:", err)
		stop()
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ltfix/internal/journal"
)

func newJournalCmd() *cobra.Command {
	var outFormat string
	cmd := &cobra.Command{
		Use:   "journal [flags] <journal-file>",
		Short: "Print the runs recorded in a journal",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			runs, err := journal.ReadFile(args[0])
			if err != nil {
				return err
			}
			switch strings.ToLower(outFormat) {
			case "pretty":
				printRuns(a.out, runs)
				return nil
			case "json":
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(runs)
			default:
				return fmt.Errorf("unsupported format %q (must be pretty or json)", outFormat)
			}
		}),
	}
	cmd.Flags().StringVar(&outFormat, "format", "pretty", "output format (pretty|json)")
	return cmd
}

func printRuns(out io.Writer, runs []*journal.Run) {
	head := color.New(color.Bold)
	for _, r := range runs {
		fn := ""
		if r.Start.Function != "" {
			fn = " fn " + r.Start.Function
		}
		fmt.Fprintf(out, "%s %s %s -> %s%s\n", head.Sprint(r.ID), r.Start.Mode, r.Start.Source, r.Start.Target, fn)
		for _, it := range r.Iterations {
			fmt.Fprintf(out, "  #%d %-24s progress=%t diagnostics=%d compile %.1f ms process %.1f ms\n",
				it.Index, it.State, it.Progress, it.Diagnostics, it.CompileMS, it.ProcessMS)
		}
		if r.Finish == nil {
			fmt.Fprintln(out, "  (unfinished)")
			continue
		}
		fmt.Fprintf(out, "  %s after %d repair(s) in %s", r.Finish.State, r.Finish.RepairCount, r.Duration())
		if r.Finish.Error != "" {
			fmt.Fprintf(out, ": %s", r.Finish.Error)
		}
		fmt.Fprintln(out)
	}
}

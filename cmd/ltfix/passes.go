package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ltfix/internal/elide"
	"ltfix/internal/rename"
)

func newElideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "elide [flags] <src.rs> <fn>",
		Short: "Minimize the lifetime annotations of a function, in place",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			src, fn := args[0], args[1]
			showDiff := a.snapshot(src)
			res, err := elide.Lifetimes(cmd.Context(), src, fn, a.rewriteOptions())
			if err != nil {
				return err
			}
			if !res.Success {
				return fmt.Errorf("function %q not found in %s", fn, src)
			}
			showDiff(src)
			fmt.Fprintf(a.out, "annotations left: %t\nstruct lifetimes: %t\n", res.AnnotationsLeft, res.HasStructLifetime)
			return nil
		}),
	}
}

func newRenameCmd() *cobra.Command {
	var marker string
	cmd := &cobra.Command{
		Use:   "rename [flags] <src.rs> <fn>",
		Short: "Strip the extraction marker from a function and its call sites, in place",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			src, fn := args[0], args[1]
			if marker == "" {
				marker = a.cfg.Repair.Marker
			}
			showDiff := a.snapshot(src)
			n, err := rename.Callee(cmd.Context(), src, fn, marker, a.rewriteOptions())
			if err != nil {
				return err
			}
			showDiff(src)
			fmt.Fprintf(a.out, "renamed %d occurrence(s)\n", n)
			return nil
		}),
	}
	cmd.Flags().StringVar(&marker, "marker", "", "extraction marker (default from config)")
	return cmd
}

package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ltfix/internal/driver"
)

var errRepairFailed = errors.New("repair failed")

// defaultOutput names the working copy written next to src.
func defaultOutput(src string) string {
	ext := filepath.Ext(src)
	return strings.TrimSuffix(src, ext) + "_fixed" + ext
}

func printResult(out io.Writer, target string, res driver.Result) {
	status := color.New(color.FgGreen, color.Bold).Sprint("repaired")
	if !res.Success {
		status = color.New(color.FgRed, color.Bold).Sprint("failed")
	}
	fmt.Fprintf(out, "%s %s: %s after %d repair(s)\n", status, target, res.State, res.RepairCount)
	if res.HasNonElidibleLifetime {
		fmt.Fprintln(out, "  named lifetimes remain in the signature")
	}
	if res.HasStructLifetime {
		fmt.Fprintln(out, "  signature mentions lifetimes of generic types")
	}
}

func finishRepair(a *app, target string, res driver.Result) error {
	printResult(a.out, target, res)
	if !res.Success {
		return fmt.Errorf("%w: %s", errRepairFailed, res.State)
	}
	return nil
}

func newFileCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "file [flags] <src.rs>",
		Short: "Repair a copy of a whole file using compiler suggestions",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			src := args[0]
			target := out
			if target == "" {
				target = defaultOutput(src)
			}
			showDiff := a.snapshot(src)
			res, err := a.strategy().RepairFile(cmd.Context(), src, target)
			if err != nil {
				return err
			}
			showDiff(target)
			return finishRepair(a, target, res)
		}),
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "repaired copy (default <src>_fixed.rs)")
	return cmd
}

func newFunctionCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "function [flags] <src.rs> <fn>",
		Short: "Repair one extracted function in a copy of the file",
		Long: `Repair one extracted function in a copy of the file. Compiler suggestions and
lifetime bounds are applied until the copy compiles; the signature is then
minimized and the extraction marker removed from the function name.`,
		Args: cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			src, fn := args[0], args[1]
			target := out
			if target == "" {
				target = defaultOutput(src)
			}
			showDiff := a.snapshot(src)
			res, err := a.strategy().RepairFunction(cmd.Context(), src, target, fn)
			if err != nil {
				return err
			}
			showDiff(target)
			return finishRepair(a, target, res)
		}),
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "repaired copy (default <src>_fixed.rs)")
	return cmd
}

func newProjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "project [flags] <src.rs> <Cargo.toml> <fn>",
		Short: "Repair one function inside a cargo project, in place",
		Args:  cobra.ExactArgs(3),
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			src, manifest, fn := args[0], args[1], args[2]
			showDiff := a.snapshot(src)
			res, err := a.strategy().RepairProject(cmd.Context(), src, manifest, fn)
			if err != nil {
				return err
			}
			showDiff(src)
			return finishRepair(a, src, res)
		}),
	}
}

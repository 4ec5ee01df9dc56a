package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ltfix/internal/driver"
)

type batchItem struct {
	src    string
	target string
	res    driver.Result
	err    error
}

func newBatchCmd() *cobra.Command {
	var (
		jobs   int
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "batch [flags] <src.rs>...",
		Short: "Repair copies of several independent files in parallel",
		Args:  cobra.MinimumNArgs(1),
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			if jobs <= 0 {
				jobs = runtime.GOMAXPROCS(0)
			}
			if outDir != "" {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return err
				}
			}

			items := make([]batchItem, len(args))
			for i, src := range args {
				items[i].src = src
				items[i].target = defaultOutput(src)
				if outDir != "" {
					items[i].target = filepath.Join(outDir, filepath.Base(src))
				}
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(jobs)
			strategy := a.strategy()
			for i := range items {
				it := &items[i]
				g.Go(func() error {
					// отдельный файл не должен останавливать остальные
					it.res, it.err = strategy.RepairFile(ctx, it.src, it.target)
					if it.err != nil {
						a.log.Warn("repair failed", zap.String("src", it.src), zap.Error(it.err))
					}
					return ctx.Err()
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			failed := 0
			for _, it := range items {
				if it.err != nil {
					failed++
					fmt.Fprintf(a.out, "error %s: %v\n", it.src, it.err)
					continue
				}
				if !it.res.Success {
					failed++
				}
				printResult(a.out, it.target, it.res)
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d files", errRepairFailed, failed, len(items))
			}
			return nil
		}),
	}
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "max parallel repairs (0=auto)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for repaired copies (default next to each source)")
	return cmd
}


package fix

import (
	"context"
)

// Processor consumes the raw diagnostic output of one compile attempt and
// reports whether it changed anything on disk.
type Processor func(ctx context.Context, raw string) (bool, error)

// Any runs every processor in order and reports progress when at least one made
// progress. All processors see the same diagnostics; later ones re-read the file.
func Any(procs ...Processor) Processor {
	return func(ctx context.Context, raw string) (bool, error) {
		progress := false
		for _, p := range procs {
			if p == nil {
				continue
			}
			ok, err := p(ctx, raw)
			if err != nil {
				return progress, err
			}
			progress = progress || ok
		}
		return progress, nil
	}
}

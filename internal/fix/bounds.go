package fix

import (
	"context"

	"go.uber.org/zap"

	"ltfix/internal/diag"
	"ltfix/internal/rewrite"
	"ltfix/internal/suggest"
	"ltfix/internal/syntax"
)

// InsertBounds adds every lifetime bound suggested in raw to the where-clause of
// each function named fn (free functions, impl and trait methods). A predicate
// that is already present is not repeated. The file is canonicalized and written
// only when at least one predicate was inserted.
func InsertBounds(ctx context.Context, raw, path, fn string, opts rewrite.Options) (bool, error) {
	var bounds []suggest.BoundSuggestion
	for d := range diag.Stream(raw) {
		bounds = append(bounds, suggest.BoundSuggestions(d.Rendered)...)
	}
	if len(bounds) == 0 {
		return false, nil
	}

	log := opts.Log()
	progress := false
	for _, b := range bounds {
		inserted, err := rewrite.Functions(ctx, path, fn, opts, rewrite.OnChange, func(item syntax.FnItem) bool {
			return item.Sig.AddPredicate(syntax.NewLifetimePredicate(b.Lifetime, b.Bound))
		})
		if err != nil {
			return progress, err
		}
		log.Debug("bound suggestion",
			zap.String("fn", fn),
			zap.Stringer("bound", b),
			zap.Bool("inserted", inserted))
		progress = progress || inserted
	}
	return progress, nil
}

// Bounds binds InsertBounds to a file and function.
func Bounds(path, fn string, opts rewrite.Options) Processor {
	return func(ctx context.Context, raw string) (bool, error) {
		return InsertBounds(ctx, raw, path, fn, opts)
	}
}

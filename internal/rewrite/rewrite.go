// Package rewrite runs one signature pass over a file: load, parse, mutate,
// render edits, canonicalize and persist.
package rewrite

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ltfix/internal/format"
	"ltfix/internal/source"
	"ltfix/internal/syntax"
)

// Persist selects when a pass writes the file back.
type Persist uint8

const (
	// OnChange writes only when the pass produced edits.
	OnChange Persist = iota
	// Always writes (and canonicalizes) even when nothing changed.
	Always
)

// Options are shared by every pass.
type Options struct {
	Formatter format.Formatter // nil means identity
	Logger    *zap.Logger
}

func (o Options) formatter() format.Formatter {
	if o.Formatter == nil {
		return format.Identity{}
	}
	return o.Formatter
}

// Log returns the configured logger or a no-op one.
func (o Options) Log() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Mutator inspects a parsed tree and returns the edits to apply to its source.
type Mutator func(tree *syntax.Tree) ([]source.TextEdit, error)

// File runs mutate against the current contents of path. It reports whether
// mutate produced any edits.
func File(ctx context.Context, path string, opts Options, persist Persist, mutate Mutator) (bool, error) {
	f, err := source.Load(path)
	if err != nil {
		return false, err
	}
	tree, err := syntax.Parse(ctx, f.Content)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	edits, err := mutate(tree)
	tree.Close()
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}

	changed := len(edits) > 0
	if !changed && persist == OnChange {
		return false, nil
	}
	out, err := source.ApplyEdits(f.Content, edits)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	out, err = opts.formatter().Format(ctx, path, out)
	if err != nil {
		return false, err
	}
	if err := f.Save(out); err != nil {
		return false, err
	}
	opts.Log().Debug("rewrote file",
		zap.String("path", path),
		zap.Int("edits", len(edits)),
		zap.Int("bytes", len(out)))
	return changed, nil
}

// Functions is File specialised to the signatures of every item named name.
// edit is called once per item; its return value reports whether the item changed.
func Functions(ctx context.Context, path, name string, opts Options, persist Persist, edit func(fn syntax.FnItem) bool) (bool, error) {
	return File(ctx, path, opts, persist, func(tree *syntax.Tree) ([]source.TextEdit, error) {
		var edits []source.TextEdit
		for _, fn := range tree.Functions(name) {
			if edit(fn) {
				edits = append(edits, fn.Sig.Edits()...)
			}
		}
		return edits, nil
	})
}

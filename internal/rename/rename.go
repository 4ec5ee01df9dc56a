// Package rename strips the temporary marker suffix that extraction tooling
// appends to a helper function's name.
package rename

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ltfix/internal/rewrite"
	"ltfix/internal/source"
	"ltfix/internal/syntax"
)

// DefaultMarker is the suffix appended to extracted function names.
const DefaultMarker = "____EXTRACT_THIS"

// Edits returns the edits removing marker from every identifier containing
// name: definitions, calls, method calls, macro tokens and value uses.
func Edits(tree *syntax.Tree, name, marker string) []source.TextEdit {
	if marker == "" {
		return nil
	}
	var edits []source.TextEdit
	for _, site := range tree.NameSites() {
		if !strings.Contains(site.Name, name) || !strings.Contains(site.Name, marker) {
			continue
		}
		edits = append(edits, source.Replace(site.Span, site.Name, strings.ReplaceAll(site.Name, marker, "")))
	}
	return edits
}

// Callee renames every occurrence of name in path and writes the canonicalized
// file back. It returns the number of identifiers renamed.
func Callee(ctx context.Context, path, name, marker string, opts rewrite.Options) (int, error) {
	if marker == "" {
		marker = DefaultMarker
	}
	var n int
	_, err := rewrite.File(ctx, path, opts, rewrite.Always, func(tree *syntax.Tree) ([]source.TextEdit, error) {
		edits := Edits(tree, name, marker)
		n = len(edits)
		return edits, nil
	})
	if err != nil {
		return 0, fmt.Errorf("rename %s: %w", name, err)
	}
	opts.Log().Debug("renamed callee", zap.String("path", path), zap.String("fn", name), zap.Int("sites", n))
	return n, nil
}

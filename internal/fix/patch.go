package fix

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ltfix/internal/diag"
	"ltfix/internal/rewrite"
	"ltfix/internal/source"
	"ltfix/internal/suggest"
)

// AppliedLine records a line replacement that was applied.
type AppliedLine struct {
	Line        int
	Replacement string
}

// SkippedLine captures a suggestion that was not applied with a reason.
type SkippedLine struct {
	Line   int
	Reason string
}

// PatchResult aggregates applied and skipped suggestions for one file.
type PatchResult struct {
	Applied []AppliedLine
	Skipped []SkippedLine
}

// Progress reports whether any suggestion was applied.
func (r *PatchResult) Progress() bool {
	return len(r.Applied) > 0
}

// PatchLines applies suggestions to content one after another. Each line number
// refers to the content as left by the previous replacements. Lines that are not
// replaced, and the presence of a trailing newline, are preserved.
func PatchLines(content string, suggestions []suggest.LineSuggestion) (string, PatchResult) {
	var res PatchResult
	lines, trailing := source.SplitLines(content)
	touched := make(map[int]struct{}, len(suggestions))
	for _, s := range suggestions {
		switch {
		case s.UsesPlaceholder():
			res.Skipped = append(res.Skipped, SkippedLine{Line: s.Line, Reason: "placeholder lifetime"})
			continue
		case s.Line < 1 || s.Line > len(lines):
			res.Skipped = append(res.Skipped, SkippedLine{Line: s.Line, Reason: fmt.Sprintf("line out of range (%d lines)", len(lines))})
			continue
		}
		if _, again := touched[s.Line]; again {
			// последняя замена выигрывает
			res.Skipped = append(res.Skipped, SkippedLine{Line: s.Line, Reason: "earlier replacement overwritten"})
		}
		touched[s.Line] = struct{}{}
		lines[s.Line-1] = s.Replacement
		res.Applied = append(res.Applied, AppliedLine(s))
	}
	if !res.Progress() {
		return content, res
	}
	return source.JoinLines(lines, trailing), res
}

// PatchSuggestions applies every line suggestion found in raw to the file at path.
// The file is written only when at least one suggestion was applied.
func PatchSuggestions(ctx context.Context, raw, path string, opts rewrite.Options) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var suggestions []suggest.LineSuggestion
	for d := range diag.Stream(raw) {
		suggestions = append(suggestions, suggest.LineSuggestions(d.Rendered)...)
	}
	if len(suggestions) == 0 {
		return false, nil
	}

	f, err := source.Load(path)
	if err != nil {
		return false, err
	}
	out, res := PatchLines(string(f.Content), suggestions)
	log := opts.Log()
	for _, s := range res.Skipped {
		log.Debug("suggestion skipped", zap.String("path", path), zap.Int("line", s.Line), zap.String("reason", s.Reason))
	}
	if !res.Progress() {
		return false, nil
	}
	if err := f.Save([]byte(out)); err != nil {
		return false, err
	}
	log.Debug("suggestions applied", zap.String("path", path), zap.Int("count", len(res.Applied)))
	return true, nil
}

// Suggestions binds PatchSuggestions to a file.
func Suggestions(path string, opts rewrite.Options) Processor {
	return func(ctx context.Context, raw string) (bool, error) {
		return PatchSuggestions(ctx, raw, path, opts)
	}
}

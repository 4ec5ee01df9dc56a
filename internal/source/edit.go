package source

import (
	"errors"
	"fmt"
	"sort"
)

// ErrEditConflict is returned when two edits touch overlapping ranges.
var ErrEditConflict = errors.New("conflicting edits")

// TextEdit replaces Span with NewText. OldText, when set, guards the edit:
// the covered bytes must match it exactly.
type TextEdit struct {
	Span    Span
	NewText string
	OldText string
}

// Replace builds an edit that swaps the text under sp.
func Replace(sp Span, oldText, newText string) TextEdit {
	return TextEdit{Span: sp, NewText: newText, OldText: oldText}
}

// Insert builds a zero-width edit at off.
func Insert(off int, text string) TextEdit {
	return TextEdit{Span: At(off), NewText: text}
}

// ApplyEdits applies edits to a copy of content. Edits are interpreted against
// the original content; they are applied back to front so earlier offsets stay valid.
func ApplyEdits(content []byte, edits []TextEdit) ([]byte, error) {
	if len(edits) == 0 {
		return append([]byte(nil), content...), nil
	}
	sorted := append([]TextEdit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Span.Start == sorted[j].Span.Start {
			return sorted[i].Span.End > sorted[j].Span.End
		}
		return sorted[i].Span.Start > sorted[j].Span.Start
	})
	for i := 1; i < len(sorted); i++ {
		if spansConflict(sorted[i-1], sorted[i]) {
			return nil, fmt.Errorf("%w: %s and %s", ErrEditConflict, sorted[i].Span, sorted[i-1].Span)
		}
	}

	working := append([]byte(nil), content...)
	for _, edit := range sorted {
		start, end := edit.Span.Start, edit.Span.End
		if start < 0 || end < start || end > len(working) {
			return nil, fmt.Errorf("edit span %s out of range (len %d)", edit.Span, len(working))
		}
		if edit.OldText != "" && string(working[start:end]) != edit.OldText {
			return nil, fmt.Errorf("edit span %s: existing text %q does not match expected %q", edit.Span, working[start:end], edit.OldText)
		}
		suffix := append([]byte(nil), working[end:]...)
		working = append(append(working[:start], edit.NewText...), suffix...)
	}
	return working, nil
}

// spansConflict reports whether two text edits' spans overlap.
// Spans are treated as half-open intervals [Start, End). Two zero-length edits
// at the same offset conflict since their order would be ambiguous. A zero-length
// edit conflicts with a non-zero span if its position is strictly inside that span.
func spansConflict(a, b TextEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return aStart == bStart
	}
	if aStart == aEnd {
		return bStart < aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart < bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

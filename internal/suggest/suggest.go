// Package suggest holds the grammar of the rustc suggestion text the repair
// passes rely on. Every pattern matched against rendered diagnostics lives here,
// so a change in compiler wording breaks the tests of this package first.
package suggest

import (
	"regexp"
	"strconv"
	"strings"
)

// GrammarVersion identifies the accepted suggestion shapes.
// Bump it together with the pinned test cases when a pattern changes.
const GrammarVersion = 1

// LifetimePlaceholder is the made-up lifetime name rustc proposes when it has no
// better candidate; such suggestions never compile as written.
const LifetimePlaceholder = "&'lifetime"

var (
	// help: consider <something>
	// <one line, usually the gutter>
	// <N> | <replacement source line>
	lineSuggestionRe = regexp.MustCompile(`help: consider.+\n.*\n(?P<line_number>\d+) \| (?P<replacement>.+)\n`)

	// = help: consider adding the following bound: `'a: 'b`
	boundSuggestionRe = regexp.MustCompile("= help: consider.+bound: `(?P<constraint_lhs>'[a-z0-9]+): (?P<constraint_rhs>'[a-z0-9]+)`")
)

// LineSuggestion asks to replace a whole source line.
type LineSuggestion struct {
	Line        int // 1-based
	Replacement string
}

// UsesPlaceholder reports whether the replacement mentions the placeholder lifetime.
func (s LineSuggestion) UsesPlaceholder() bool {
	return strings.Contains(s.Replacement, LifetimePlaceholder)
}

// BoundSuggestion asks for the lifetime predicate Lifetime: Bound.
type BoundSuggestion struct {
	Lifetime string // lhs, e.g. 'a
	Bound    string // rhs, e.g. 'b
}

// String renders the predicate as written in a where-clause.
func (s BoundSuggestion) String() string {
	return s.Lifetime + ": " + s.Bound
}

// LineSuggestions returns the line replacements found in rendered, in order.
// Matches whose line number does not parse are dropped.
func LineSuggestions(rendered string) []LineSuggestion {
	matches := lineSuggestionRe.FindAllStringSubmatch(rendered, -1)
	out := make([]LineSuggestion, 0, len(matches))
	lineIdx := lineSuggestionRe.SubexpIndex("line_number")
	replIdx := lineSuggestionRe.SubexpIndex("replacement")
	for _, m := range matches {
		n, err := strconv.Atoi(m[lineIdx])
		if err != nil || n <= 0 {
			continue
		}
		out = append(out, LineSuggestion{Line: n, Replacement: m[replIdx]})
	}
	return out
}

// BoundSuggestions returns the lifetime bounds proposed in rendered, in order.
func BoundSuggestions(rendered string) []BoundSuggestion {
	matches := boundSuggestionRe.FindAllStringSubmatch(rendered, -1)
	out := make([]BoundSuggestion, 0, len(matches))
	lhsIdx := boundSuggestionRe.SubexpIndex("constraint_lhs")
	rhsIdx := boundSuggestionRe.SubexpIndex("constraint_rhs")
	for _, m := range matches {
		out = append(out, BoundSuggestion{Lifetime: m[lhsIdx], Bound: m[rhsIdx]})
	}
	return out
}

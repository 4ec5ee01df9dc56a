package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const missingLifetime = "error[E0106]: missing lifetime specifier\n" +
	" --> src/main.rs:1:33\n" +
	"  |\n" +
	"1 | fn longest(x: &str, y: &str) -> &str {\n" +
	"  |               ----     ----     ^ expected named lifetime parameter\n" +
	"  |\n" +
	"  = help: this function's return type contains a borrowed value\n" +
	"help: consider introducing a named lifetime parameter\n" +
	"  |\n" +
	"1 | fn longest<'a>(x: &'a str, y: &'a str) -> &'a str {\n" +
	"  |           ++++     ++          ++          ++\n"

const boundNeeded = "error: lifetime may not live long enough\n" +
	" --> src/main.rs:5:5\n" +
	"  |\n" +
	"4 | fn f<'a, 'b>(x: &'a i32, y: &'b i32) -> &'a i32 {\n" +
	"  |      --  -- lifetime `'b` defined here\n" +
	"  |      |\n" +
	"  |      lifetime `'a` defined here\n" +
	"5 |     y\n" +
	"  |     ^ function was supposed to return data with lifetime `'a` but it is returning data with lifetime `'b`\n" +
	"  |\n" +
	"  = help: consider adding the following bound: `'b: 'a`\n"

func TestLineSuggestionsPinnedShapes(t *testing.T) {
	tests := []struct {
		name     string
		rendered string
		want     []LineSuggestion
	}{
		{
			name:     "introduce named lifetime",
			rendered: missingLifetime,
			want:     []LineSuggestion{{Line: 1, Replacement: "fn longest<'a>(x: &'a str, y: &'a str) -> &'a str {"}},
		},
		{
			name:     "borrow here",
			rendered: "help: consider borrowing here\n  |\n3 | let x = &y;\n  |\n",
			want:     []LineSuggestion{{Line: 3, Replacement: "let x = &y;"}},
		},
		{
			name: "two suggestions in order",
			rendered: "help: consider borrowing here\n  |\n3 | let x = &y;\n" +
				"help: consider cloning\n  |\n12 |     let z = w.clone();\n",
			want: []LineSuggestion{
				{Line: 3, Replacement: "let x = &y;"},
				{Line: 12, Replacement: "    let z = w.clone();"},
			},
		},
		{
			name:     "gutter padding is not accepted",
			rendered: "help: consider borrowing here\n   |\n3  | let x = &y;\n",
			want:     []LineSuggestion{},
		},
		{
			// rustc right-aligns the gutter when the snippet reaches line 10;
			// grammar version 1 does not accept that shape.
			name:     "right-aligned line number is not accepted",
			rendered: "help: consider borrowing here\n   |\n 3 | let x = &y;\n   |\n10 | }\n",
			want:     []LineSuggestion{},
		},
		{
			name:     "suggestion must end with a newline",
			rendered: "help: consider borrowing here\n  |\n3 | let x = &y;",
			want:     []LineSuggestion{},
		},
		{
			name:     "no help line",
			rendered: "error: boom\n  |\n3 | let x = &y;\n",
			want:     []LineSuggestion{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LineSuggestions(tt.rendered))
		})
	}
}

func TestLineSuggestionPlaceholder(t *testing.T) {
	got := LineSuggestions("help: consider using the `'lifetime` lifetime\n  |\n2 | fn f(x: &'lifetime str) -> &'lifetime str {\n")
	require.Len(t, got, 1)
	assert.True(t, got[0].UsesPlaceholder())
	assert.False(t, LineSuggestion{Replacement: "fn f<'a>(x: &'a str)"}.UsesPlaceholder())
}

func TestBoundSuggestionsPinnedShapes(t *testing.T) {
	tests := []struct {
		name     string
		rendered string
		want     []BoundSuggestion
	}{
		{
			name:     "following bound",
			rendered: boundNeeded,
			want:     []BoundSuggestion{{Lifetime: "'b", Bound: "'a"}},
		},
		{
			name:     "numbered lifetimes",
			rendered: "  = help: consider adding the following bound: `'lt0: 'lt1`\n",
			want:     []BoundSuggestion{{Lifetime: "'lt0", Bound: "'lt1"}},
		},
		{
			name: "several bounds",
			rendered: "  = help: consider adding the following bound: `'a: 'b`\n" +
				"  = help: consider adding the following bound: `'b: 'a`\n",
			want: []BoundSuggestion{{Lifetime: "'a", Bound: "'b"}, {Lifetime: "'b", Bound: "'a"}},
		},
		{
			name:     "help without equals sign is ignored",
			rendered: "help: consider adding the following bound: `'a: 'b`\n",
			want:     []BoundSuggestion{},
		},
		{
			name:     "type bounds are ignored",
			rendered: "  = help: consider adding the following bound: `T: 'a`\n",
			want:     []BoundSuggestion{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BoundSuggestions(tt.rendered))
		})
	}
}

func TestBoundSuggestionString(t *testing.T) {
	assert.Equal(t, "'a: 'b", BoundSuggestion{Lifetime: "'a", Bound: "'b"}.String())
}

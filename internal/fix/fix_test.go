package fix

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ltfix/internal/rewrite"
	"ltfix/internal/suggest"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.rs")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// record encodes one rustc JSON diagnostic with the given rendered text.
func record(t *testing.T, rendered string) string {
	t.Helper()
	data, err := json.Marshal(map[string]any{
		"rendered": rendered,
		"level":    "error",
		"spans":    []map[string]any{{"file_name": "main.rs", "line_start": 1, "line_end": 1, "is_primary": true}},
	})
	require.NoError(t, err)
	return string(data) + "\n"
}

func lineHelp(line int, replacement string) string {
	return "error[E0106]: missing lifetime specifier\n" +
		"help: consider introducing a named lifetime parameter\n" +
		"   |\n" +
		strconv.Itoa(line) + " | " + replacement + "\n"
}

func TestPatchLinesReplacesOnlyTargetLine(t *testing.T) {
	content := "line one\nline two\nfn f(x: &i32) -> &i32 {\nline four\nline five\n"
	out, res := PatchLines(content, []suggest.LineSuggestion{{Line: 3, Replacement: "fn f<'a>(x: &'a i32) -> &'a i32 {"}})

	assert.True(t, res.Progress())
	assert.Equal(t, "line one\nline two\nfn f<'a>(x: &'a i32) -> &'a i32 {\nline four\nline five\n", out)
}

func TestPatchLinesPreservesMissingTrailingNewline(t *testing.T) {
	out, res := PatchLines("a\nb", []suggest.LineSuggestion{{Line: 2, Replacement: "c"}})
	assert.True(t, res.Progress())
	assert.Equal(t, "a\nc", out)
}

func TestPatchLinesSkips(t *testing.T) {
	content := "a\nb\n"
	out, res := PatchLines(content, []suggest.LineSuggestion{
		{Line: 7, Replacement: "x"},
		{Line: 1, Replacement: "fn f(x: &'lifetime i32)"},
	})
	assert.False(t, res.Progress())
	assert.Equal(t, content, out)
	require.Len(t, res.Skipped, 2)
}

func TestPatchLinesSequential(t *testing.T) {
	out, res := PatchLines("a\nb\nc\n", []suggest.LineSuggestion{
		{Line: 1, Replacement: "x"},
		{Line: 1, Replacement: "y"},
		{Line: 3, Replacement: "z"},
	})
	assert.Len(t, res.Applied, 3)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "y\nb\nz\n", out)
}

func TestPatchSuggestionsWritesFile(t *testing.T) {
	path := writeTemp(t, "fn main() {}\n\nfn f(x: &i32) -> &i32 {\n    x\n}\n")
	raw := record(t, lineHelp(3, "fn f<'a>(x: &'a i32) -> &'a i32 {"))

	progress, err := PatchSuggestions(context.Background(), raw, path, rewrite.Options{})
	require.NoError(t, err)
	assert.True(t, progress)
	assert.Equal(t, "fn main() {}\n\nfn f<'a>(x: &'a i32) -> &'a i32 {\n    x\n}\n", read(t, path))
}

func TestPatchSuggestionsNoProgress(t *testing.T) {
	content := "fn f(x: &i32) -> &i32 {\n    x\n}\n"
	path := writeTemp(t, content)
	info, err := os.Stat(path)
	require.NoError(t, err)

	raw := record(t, lineHelp(1, "fn f(x: &'lifetime i32) -> &'lifetime i32 {")) +
		record(t, "error[E0499]: cannot borrow `x` as mutable more than once at a time\n")

	progress, err := PatchSuggestions(context.Background(), raw, path, rewrite.Options{})
	require.NoError(t, err)
	assert.False(t, progress)
	assert.Equal(t, content, read(t, path))

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), after.ModTime(), "file must not be rewritten")
}

func TestPatchSuggestionsFromPlainText(t *testing.T) {
	path := writeTemp(t, "a\nb\n")
	progress, err := PatchSuggestions(context.Background(), lineHelp(2, "c"), path, rewrite.Options{})
	require.NoError(t, err)
	assert.True(t, progress)
	assert.Equal(t, "a\nc\n", read(t, path))
}

const boundsSource = `struct S;

fn bar_extracted<'a, 'b>(x: &'a i32, y: &'b i32) -> &'a i32 {
    y
}

impl S {
    fn bar_extracted<'a, 'b>(&self, x: &'a i32, y: &'b i32) -> &'a i32 where 'a: 'a {
        y
    }
}

trait T {
    fn bar_extracted<'a, 'b>(x: &'a i32, y: &'b i32) -> &'a i32;
}

fn other<'a, 'b>(x: &'a i32, y: &'b i32) -> &'a i32 {
    x
}
`

func boundHelp(lhs, rhs string) string {
	return "error: lifetime may not live long enough\n" +
		"   = help: consider adding the following bound: `" + lhs + ": " + rhs + "`\n"
}

func TestInsertBoundsAllItems(t *testing.T) {
	path := writeTemp(t, boundsSource)
	raw := record(t, boundHelp("'b", "'a"))

	progress, err := InsertBounds(context.Background(), raw, path, "bar_extracted", rewrite.Options{})
	require.NoError(t, err)
	assert.True(t, progress)

	got := read(t, path)
	assert.Contains(t, got, "fn bar_extracted<'a, 'b>(x: &'a i32, y: &'b i32) -> &'a i32 where 'b: 'a {\n    y\n}")
	assert.Contains(t, got, "fn bar_extracted<'a, 'b>(&self, x: &'a i32, y: &'b i32) -> &'a i32 where 'a: 'a, 'b: 'a {")
	assert.Contains(t, got, "fn bar_extracted<'a, 'b>(x: &'a i32, y: &'b i32) -> &'a i32 where 'b: 'a;")
	assert.Contains(t, got, "fn other<'a, 'b>(x: &'a i32, y: &'b i32) -> &'a i32 {\n    x\n}", "other functions untouched")

	progress, err = InsertBounds(context.Background(), raw, path, "bar_extracted", rewrite.Options{})
	require.NoError(t, err)
	assert.False(t, progress, "identical predicate is not inserted twice")
	assert.Equal(t, got, read(t, path))
}

func TestInsertBoundsMonotone(t *testing.T) {
	path := writeTemp(t, boundsSource)
	before := strings.Count(boundsSource, ": '")

	_, err := InsertBounds(context.Background(), record(t, boundHelp("'b", "'a")), path, "bar_extracted", rewrite.Options{})
	require.NoError(t, err)
	_, err = InsertBounds(context.Background(), record(t, boundHelp("'a", "'b")), path, "bar_extracted", rewrite.Options{})
	require.NoError(t, err)

	got := read(t, path)
	assert.Contains(t, got, "where 'b: 'a, 'a: 'b {")
	assert.Equal(t, before+6, strings.Count(got, ": '"), "predicates only grow")
}

func TestInsertBoundsNoSuggestion(t *testing.T) {
	path := writeTemp(t, boundsSource)
	progress, err := InsertBounds(context.Background(), record(t, "error: something else\n"), path, "bar_extracted", rewrite.Options{})
	require.NoError(t, err)
	assert.False(t, progress)
	assert.Equal(t, boundsSource, read(t, path))
}

func TestInsertBoundsMalformedFile(t *testing.T) {
	path := writeTemp(t, "fn bar_extracted( {\n")
	_, err := InsertBounds(context.Background(), record(t, boundHelp("'b", "'a")), path, "bar_extracted", rewrite.Options{})
	require.Error(t, err)
}

func TestCombinators(t *testing.T) {
	var calls []string
	proc := func(name string, progress bool, err error) Processor {
		return func(context.Context, string) (bool, error) {
			calls = append(calls, name)
			return progress, err
		}
	}

	ok, err := Any(proc("a", false, nil), proc("b", true, nil), proc("c", false, nil))(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, calls)

	boom := errors.New("boom")
	calls = nil
	_, err = Any(proc("a", true, boom), proc("b", true, nil))(context.Background(), "")
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a"}, calls)
}

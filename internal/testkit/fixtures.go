package testkit

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"ltfix/internal/syntax"
)

// WriteFile creates name under a fresh temp dir and returns its path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// ReadFile returns the content of path.
func ReadFile(t testing.TB, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// RequireParses fails the test when path is not valid Rust.
func RequireParses(t testing.TB, path string) {
	t.Helper()
	tree, err := syntax.Parse(context.Background(), []byte(ReadFile(t, path)))
	require.NoError(t, err)
	tree.Close()
}

// Diagnostic encodes a rustc JSON diagnostic pointing at file.
func Diagnostic(t testing.TB, file, rendered string) string {
	t.Helper()
	data, err := json.Marshal(map[string]any{
		"rendered": rendered,
		"level":    "error",
		"spans":    []map[string]any{{"file_name": file, "line_start": 1, "line_end": 1, "is_primary": true}},
	})
	require.NoError(t, err)
	return string(data)
}

// ProjectRecord wraps a diagnostic the way cargo prints it.
func ProjectRecord(t testing.TB, file, rendered string) string {
	t.Helper()
	var msg json.RawMessage = []byte(Diagnostic(t, file, rendered))
	data, err := json.Marshal(map[string]any{
		"reason":  "compiler-message",
		"message": msg,
	})
	require.NoError(t, err)
	return string(data)
}

// LineHelp renders a rustc suggestion replacing line n.
func LineHelp(n int, replacement string) string {
	return "error[E0106]: missing lifetime specifier\n" +
		"help: consider introducing a named lifetime parameter\n" +
		"   |\n" +
		strconv.Itoa(n) + " | " + replacement + "\n"
}

// BoundHelp renders a rustc suggestion for the bound lhs: rhs.
func BoundHelp(lhs, rhs string) string {
	return "error: lifetime may not live long enough\n" +
		"   = help: consider adding the following bound: `" + lhs + ": " + rhs + "`\n"
}

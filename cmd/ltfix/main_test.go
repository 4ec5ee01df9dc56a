package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ltfix/internal/driver"
	"ltfix/internal/journal"
	"ltfix/internal/testkit"
)

// execute runs the CLI with a configuration that disables the formatter.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg := testkit.WriteFile(t, "ltfix.toml", "[format]\nenabled = false\n\n[log]\nlevel = \"warn\"\n")

	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", cfg, "--color", "off"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestVersionJSON(t *testing.T) {
	out, err := execute(t, "version", "--format", "json", "--full")
	require.NoError(t, err)

	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "ltfix", payload.Tool)
	assert.NotEmpty(t, payload.Version)
	assert.Equal(t, "unknown", payload.BuildDate)
}

func TestVersionRejectsFormat(t *testing.T) {
	_, err := execute(t, "version", "--format", "xml")
	require.Error(t, err)
}

func TestRenameCommand(t *testing.T) {
	src := testkit.WriteFile(t, "lib.rs", "fn f____EXTRACT_THIS() {}\n\nfn main() {\n    f____EXTRACT_THIS();\n}\n")

	out, err := execute(t, "rename", src, "f")
	require.NoError(t, err)
	assert.Contains(t, out, "renamed 2 occurrence(s)")
	assert.Equal(t, "fn f() {}\n\nfn main() {\n    f();\n}\n", testkit.ReadFile(t, src))
}

func TestElideCommandWithDiff(t *testing.T) {
	src := testkit.WriteFile(t, "lib.rs", "fn f<'a>(x: &'a i32) -> i32 {\n    *x\n}\n")

	out, err := execute(t, "--diff", "elide", src, "f")
	require.NoError(t, err)
	assert.Contains(t, out, "- fn f<'a>(x: &'a i32) -> i32 {")
	assert.Contains(t, out, "+ fn f(x: &i32) -> i32 {")
	assert.Contains(t, out, "annotations left: false")
}

func TestElideCommandMissingFunction(t *testing.T) {
	src := testkit.WriteFile(t, "lib.rs", "fn g() {}\n")
	_, err := execute(t, "elide", src, "f")
	require.ErrorContains(t, err, `function "f" not found`)
}

func TestBatchReportsEveryFailure(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "batch", "--jobs", "2", filepath.Join(dir, "a.rs"), filepath.Join(dir, "b.rs"))
	require.ErrorIs(t, err, errRepairFailed)
	assert.Contains(t, out, "a.rs")
	assert.Contains(t, out, "b.rs")
}

func TestJournalCommand(t *testing.T) {
	target := testkit.WriteFile(t, "out.rs", "fn main() {}\n")
	path := filepath.Join(t.TempDir(), "runs.journal")
	w, err := journal.Create(path)
	require.NoError(t, err)
	s := w.Begin("in.rs", target, "bar", "function")
	s.Hook()(driver.Iteration{Index: 1, State: driver.Succeeded})
	require.NoError(t, s.Finish(driver.Result{Success: true, State: driver.Succeeded}, nil))
	require.NoError(t, w.Close())

	out, err := execute(t, "journal", path)
	require.NoError(t, err)
	assert.Contains(t, out, s.ID()+" function in.rs -> "+target+" fn bar")
	assert.Contains(t, out, "#1 succeeded")

	out, err = execute(t, "journal", "--format", "json", path)
	require.NoError(t, err)
	var runs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	assert.Len(t, runs, 1)
}

func TestColorMode(t *testing.T) {
	on, err := colorMode("on")
	require.NoError(t, err)
	assert.True(t, on)
	off, err := colorMode("OFF")
	require.NoError(t, err)
	assert.False(t, off)
	_, err = colorMode("sometimes")
	require.Error(t, err)
}

func TestDefaultOutput(t *testing.T) {
	assert.Equal(t, filepath.Join("src", "lib_fixed.rs"), defaultOutput(filepath.Join("src", "lib.rs")))
	assert.Equal(t, "noext_fixed", defaultOutput("noext"))
}

func TestMaxIterationsMustBePositive(t *testing.T) {
	src := testkit.WriteFile(t, "lib.rs", "fn main() {}\n")
	_, err := execute(t, "--max-iterations", "0", "file", src)
	require.ErrorContains(t, err, "--max-iterations")
	_, statErr := os.Stat(defaultOutput(src))
	assert.True(t, os.IsNotExist(statErr))
}

package changes

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	before := "fn main() {}\n\nfn f<'a>(x: &'a i32) {\n    x;\n}\n"
	after := "fn main() {}\n\nfn f(x: &i32) {\n    x;\n}\n"

	rep := Compute("main.rs", before, after)
	assert.True(t, rep.Changed())
	assert.Equal(t, 1, rep.Added)
	assert.Equal(t, 1, rep.Removed)
	assert.Equal(t, "main.rs +1 -1", rep.Stat())
}

func TestComputeUnchanged(t *testing.T) {
	rep := Compute("main.rs", "a\nb\n", "a\nb\n")
	assert.False(t, rep.Changed())
}

func TestWrite(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	before := "1\n2\n3\n4\n5\n6\n7\n"
	after := "1\n2\n3\nfour\n5\n6\n7\n"
	var buf bytes.Buffer
	require.NoError(t, Compute("x.rs", before, after).Write(&buf, 1))
	assert.Equal(t, "--- x.rs\n+++ x.rs (repaired)\n  ...\n  3\n- 4\n+ four\n  5\n  ...\n", buf.String())
}

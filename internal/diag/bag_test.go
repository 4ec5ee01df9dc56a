package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBagLimitAndDedup(t *testing.T) {
	b := NewBag(3)
	require.True(t, b.Add(Diagnostic{Rendered: "a", Level: LevelWarning}))
	require.True(t, b.Add(Diagnostic{Rendered: "b", Level: LevelError}))
	require.True(t, b.Add(Diagnostic{Rendered: "a", Level: LevelWarning}))
	assert.False(t, b.Add(Diagnostic{Rendered: "c"}))

	assert.True(t, b.HasErrors())
	b.Dedup()
	require.Equal(t, 2, b.Len())
	assert.Equal(t, "a", b.Items()[0].Rendered)

	last, ok := b.Last()
	require.True(t, ok)
	assert.Equal(t, "b", last.Rendered)
}

func TestDiagnosticPrimary(t *testing.T) {
	d := &Diagnostic{Spans: []Span{{FileName: "a.rs"}, {FileName: "b.rs", IsPrimary: true}}}
	sp, ok := d.Primary()
	require.True(t, ok)
	assert.Equal(t, "b.rs", sp.FileName)

	_, ok = (&Diagnostic{}).Primary()
	assert.False(t, ok)
}

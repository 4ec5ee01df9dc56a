package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEditsBackToFront(t *testing.T) {
	content := []byte("fn f<'a>(x: &'a str) {}")
	edits := []TextEdit{
		Replace(Span{Start: 4, End: 8}, "<'a>", ""),
		Replace(Span{Start: 12, End: 15}, "&'a", "&"),
		Insert(20, " where 'a: 'a"),
	}

	got, err := ApplyEdits(content, edits)
	require.NoError(t, err)
	assert.Equal(t, "fn f(x: & str) where 'a: 'a {}", string(got))
	assert.Equal(t, "fn f<'a>(x: &'a str) {}", string(content), "input must not be modified")
}

func TestApplyEditsGuards(t *testing.T) {
	content := []byte("abcdef")

	_, err := ApplyEdits(content, []TextEdit{Replace(Span{Start: 0, End: 2}, "xx", "yy")})
	require.Error(t, err)

	_, err = ApplyEdits(content, []TextEdit{{Span: Span{Start: 4, End: 10}, NewText: "z"}})
	require.Error(t, err)

	_, err = ApplyEdits(content, []TextEdit{
		{Span: Span{Start: 0, End: 3}, NewText: "x"},
		{Span: Span{Start: 2, End: 4}, NewText: "y"},
	})
	require.ErrorIs(t, err, ErrEditConflict)

	_, err = ApplyEdits(content, []TextEdit{Insert(2, "x"), Insert(2, "y")})
	require.ErrorIs(t, err, ErrEditConflict)
}

func TestApplyEditsAdjacent(t *testing.T) {
	got, err := ApplyEdits([]byte("abcdef"), []TextEdit{
		{Span: Span{Start: 0, End: 3}, NewText: "X"},
		{Span: Span{Start: 3, End: 6}, NewText: "Y"},
		Insert(6, "!"),
	})
	require.NoError(t, err)
	assert.Equal(t, "XY!", string(got))
}

func TestSpansConflict(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{"disjoint", Span{0, 2}, Span{3, 5}, false},
		{"touching", Span{0, 3}, Span{3, 5}, false},
		{"overlap", Span{0, 4}, Span{3, 5}, true},
		{"insert inside", Span{4, 4}, Span{3, 5}, true},
		{"insert at start", Span{3, 3}, Span{3, 5}, false},
		{"same insert", Span{3, 3}, Span{3, 3}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, spansConflict(TextEdit{Span: tt.a}, TextEdit{Span: tt.b}))
			assert.Equal(t, tt.want, spansConflict(TextEdit{Span: tt.b}, TextEdit{Span: tt.a}))
		})
	}
}

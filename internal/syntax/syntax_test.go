package syntax

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ltfix/internal/source"
)

func parse(t *testing.T, src string) *Tree {
	t.Helper()
	tree, err := Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree
}

func apply(t *testing.T, tree *Tree, sig *Signature) string {
	t.Helper()
	out, err := source.ApplyEdits(tree.Source, sig.Edits())
	require.NoError(t, err)
	return string(out)
}

func TestParseRejectsBrokenSource(t *testing.T) {
	_, err := Parse(context.Background(), []byte("fn broken(x: {\n"))
	require.ErrorIs(t, err, ErrParse)
}

func TestSignatureModel(t *testing.T) {
	tree := parse(t, "fn bar<'a, T: Clone>(x: &'a mut Vec<T>, y: Foo<'a>) -> &'a str where T: 'a { todo!() }\n")

	fn, ok := tree.Function("bar")
	require.True(t, ok)
	sig := fn.Sig
	assert.Equal(t, FreeFn, fn.Kind)
	assert.False(t, sig.HasReceiver())
	assert.Equal(t, "bar<'a, T: Clone>(x: &'a mut Vec<T>, y: Foo<'a>) -> &'a str where T: 'a", sig.Header())

	require.Len(t, sig.LifetimeParams(), 1)
	inputs := sig.Inputs()
	require.Len(t, inputs, 2)

	ref, ok := inputs[0].Type.(*RefType)
	require.True(t, ok)
	assert.True(t, ref.Mutable)
	assert.Equal(t, "'a", ref.Lifetime.Name)
	assert.Equal(t, "Vec<T>", String(ref.Elem))

	gen, ok := inputs[1].Type.(*GenericType)
	require.True(t, ok)
	require.Len(t, gen.Args, 1)
	assert.IsType(t, &LifetimeArg{}, gen.Args[0])

	assert.Empty(t, sig.Edits(), "untouched signature produces no edits")
}

func TestSignatureEditsStripLifetimes(t *testing.T) {
	tree := parse(t, "fn bar<'a>(x: &'a i32) -> i32 {\n    *x\n}\n")
	fn, ok := tree.Function("bar")
	require.True(t, ok)

	fn.Sig.Generics = nil
	fn.Sig.Inputs()[0].Type.(*RefType).Lifetime = nil

	assert.Equal(t, "fn bar(x: &i32) -> i32 {\n    *x\n}\n", apply(t, tree, fn.Sig))
}

func TestSignatureEditsInsertWhere(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "after return type",
			src:  "fn f<'a, 'b>(x: &'a i32, y: &'b i32) -> &'a i32 { x }\n",
			want: "fn f<'a, 'b>(x: &'a i32, y: &'b i32) -> &'a i32 where 'b: 'a { x }\n",
		},
		{
			name: "after parameters",
			src:  "fn f<'a, 'b>(x: &'a i32, y: &'b i32) {}\n",
			want: "fn f<'a, 'b>(x: &'a i32, y: &'b i32) where 'b: 'a {}\n",
		},
		{
			name: "extends existing clause",
			src:  "fn f<'a, 'b, T>(x: &'a T, y: &'b i32) where T: Clone {}\n",
			want: "fn f<'a, 'b, T>(x: &'a T, y: &'b i32) where T: Clone, 'b: 'a {}\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tree := parse(t, tc.src)
			fn, ok := tree.Function("f")
			require.True(t, ok)
			require.True(t, fn.Sig.AddPredicate(NewLifetimePredicate("'b", "'a")))
			assert.False(t, fn.Sig.AddPredicate(NewLifetimePredicate("'b", "'a")), "duplicate predicate")
			assert.Equal(t, tc.want, apply(t, tree, fn.Sig))
		})
	}
}

func TestSignatureInsertGenerics(t *testing.T) {
	tree := parse(t, "fn f(x: &i32) {}\n")
	fn, ok := tree.Function("f")
	require.True(t, ok)

	fn.Sig.Generics = append(fn.Sig.Generics, &LifetimeParam{Lifetime: &Lifetime{Name: "'lt0"}})
	fn.Sig.Inputs()[0].Type.(*RefType).Lifetime = &Lifetime{Name: "'lt0"}

	assert.Equal(t, "fn f<'lt0>(x: &'lt0 i32) {}\n", apply(t, tree, fn.Sig))
}

func TestFunctionsByContainer(t *testing.T) {
	src := `struct S;

impl S {
    fn get(&self) -> i32 { 1 }
}

trait T {
    fn get(&self) -> i32;
}

mod inner {
    fn get() -> i32 {
        fn nested() {}
        2
    }
}
`
	tree := parse(t, src)

	fns := tree.Functions("get")
	require.Len(t, fns, 3)
	assert.Equal(t, ImplMethod, fns[0].Kind)
	assert.Equal(t, TraitMethod, fns[1].Kind)
	assert.Equal(t, FreeFn, fns[2].Kind)
	assert.True(t, fns[0].Sig.HasReceiver())
	assert.False(t, fns[2].Sig.HasReceiver())

	assert.Empty(t, tree.Functions("nested"))
	assert.Len(t, tree.Functions(""), 3)
}

func TestNameSites(t *testing.T) {
	src := `fn helper() {}

fn main() {
    helper();
    self::helper();
    x.helper();
    println!("{}", helper);
    let f = helper;
    xs.iter().map(m::helper);
}
`
	tree := parse(t, src)

	var kinds []SiteKind
	for _, site := range tree.NameSites() {
		if site.Name == "helper" {
			kinds = append(kinds, site.Kind)
			assert.Equal(t, "helper", site.Span.Text(tree.Source))
		}
	}
	assert.Equal(t, []SiteKind{Definition, Call, Call, MethodCall, MacroToken, Reference, Reference}, kinds)
}

func TestLifetimeWalks(t *testing.T) {
	tree := parse(t, "fn f<'a, 'b: 'a, T: 'b>(x: &'a Foo<'b>, y: &'static str) -> &'a str where 'a: 'b { x.0 }\n")
	fn, ok := tree.Function("f")
	require.True(t, ok)
	sig := fn.Sig

	names := func(seq func(func(Occurrence) bool)) []string {
		var out []string
		for occ := range seq {
			out = append(out, occ.Lifetime.Name)
		}
		return out
	}

	assert.Equal(t, []string{"'a", "'b", "'static"}, names(sig.InputLifetimes()))
	assert.Equal(t, []string{"'a"}, names(sig.OutputLifetimes()))
	assert.Equal(t, []string{"'b", "'a", "'b", "'a", "'b"}, names(sig.BoundLifetimes()))
	assert.Len(t, names(sig.AllLifetimes()), 2+1+1+3+1+2)

	var refs, args int
	for occ := range sig.InputLifetimes() {
		if occ.Ref != nil {
			refs++
		}
		if occ.Arg != nil {
			args++
		}
	}
	assert.Equal(t, 2, refs)
	assert.Equal(t, 1, args)
}

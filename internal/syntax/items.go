package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"

	"ltfix/internal/source"
)

// ItemKind tells where a function is declared.
type ItemKind uint8

const (
	FreeFn ItemKind = iota
	ImplMethod
	TraitMethod
)

func (k ItemKind) String() string {
	switch k {
	case FreeFn:
		return "fn"
	case ImplMethod:
		return "impl method"
	case TraitMethod:
		return "trait method"
	default:
		return "unknown"
	}
}

// FnItem is one function declaration found at item level.
type FnItem struct {
	Kind ItemKind
	Name string
	Sig  *Signature
	Span source.Span
}

// Functions returns every function declared with the given name, in source order.
// An empty name returns all of them. Function bodies are not searched: nested
// functions are local and never targets of a repair.
func (t *Tree) Functions(name string) []FnItem {
	var out []FnItem
	t.collectFns(t.root, FreeFn, name, &out)
	return out
}

// Function returns the first function with the given name.
func (t *Tree) Function(name string) (FnItem, bool) {
	fns := t.Functions(name)
	if len(fns) == 0 {
		return FnItem{}, false
	}
	return fns[0], true
}

func (t *Tree) collectFns(n *sitter.Node, kind ItemKind, name string, out *[]FnItem) {
	for _, c := range namedChildren(n) {
		switch c.Type() {
		case "function_item", "function_signature_item":
			sig := t.signature(c)
			if sig == nil || name != "" && sig.Name != name {
				continue
			}
			*out = append(*out, FnItem{Kind: kind, Name: sig.Name, Sig: sig, Span: t.span(c)})
		case "mod_item":
			if body := c.ChildByFieldName("body"); body != nil {
				t.collectFns(body, FreeFn, name, out)
			}
		case "impl_item":
			if body := c.ChildByFieldName("body"); body != nil {
				t.collectFns(body, ImplMethod, name, out)
			}
		case "trait_item":
			if body := c.ChildByFieldName("body"); body != nil {
				t.collectFns(body, TraitMethod, name, out)
			}
		}
	}
}

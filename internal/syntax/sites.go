package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"

	"ltfix/internal/source"
)

// SiteKind classifies an occurrence of a function name.
type SiteKind uint8

const (
	Definition SiteKind = iota
	Call
	MethodCall
	MacroToken
	Reference
)

func (k SiteKind) String() string {
	switch k {
	case Definition:
		return "definition"
	case Call:
		return "call"
	case MethodCall:
		return "method call"
	case MacroToken:
		return "macro token"
	case Reference:
		return "reference"
	default:
		return "unknown"
	}
}

// NameSite is one identifier that names a function: its definition, a call
// through a path or a method, a bare token inside a macro invocation, or any
// other use of the name as a value (let f = helper; xs.map(m::helper)).
type NameSite struct {
	Kind SiteKind
	Name string
	Span source.Span
}

// NameSites walks the whole file, function bodies included, and returns every
// identifier in source order, classified by how it names a function.
func (t *Tree) NameSites() []NameSite {
	var out []NameSite
	seen := make(map[uint32]bool)
	add := func(kind SiteKind, n *sitter.Node) {
		if seen[n.StartByte()] {
			return
		}
		seen[n.StartByte()] = true
		out = append(out, t.site(kind, n))
	}
	walk(t.root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "function_item", "function_signature_item":
			if name := n.ChildByFieldName("name"); name != nil {
				add(Definition, name)
			}
		case "call_expression":
			if id := t.callee(n.ChildByFieldName("function")); id != nil {
				kind := Call
				if id.Parent() != nil && id.Parent().Type() == "field_expression" {
					kind = MethodCall
				}
				add(kind, id)
			}
		case "macro_invocation":
			walk(childOfType(n, "token_tree"), func(tok *sitter.Node) bool {
				if tok.Type() == "identifier" {
					add(MacroToken, tok)
				}
				return true
			})
			return false
		case "identifier":
			// definitions and callees were recorded by their parent
			add(Reference, n)
		}
		return true
	})
	return out
}

// callee finds the identifier a call expression names: foo(), a::foo(),
// x.foo(), foo::<T>().
func (t *Tree) callee(fn *sitter.Node) *sitter.Node {
	for fn != nil {
		switch fn.Type() {
		case "identifier":
			return fn
		case "scoped_identifier":
			fn = fn.ChildByFieldName("name")
		case "field_expression":
			fn = fn.ChildByFieldName("field")
			if fn != nil && fn.Type() != "field_identifier" {
				return nil
			}
			return fn
		case "generic_function":
			fn = fn.ChildByFieldName("function")
		default:
			return nil
		}
	}
	return nil
}

func (t *Tree) site(kind SiteKind, n *sitter.Node) NameSite {
	return NameSite{Kind: kind, Name: t.text(n), Span: t.span(n)}
}

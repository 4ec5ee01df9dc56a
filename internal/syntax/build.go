package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// parts flattens n into source-ordered parts. Reference and generic types are
// parsed structurally, lifetimes become *Lifetime, everything else stays text.
func (t *Tree) parts(n *sitter.Node) []Part {
	switch n.Type() {
	case "lifetime":
		return []Part{&Lifetime{Name: t.text(n)}}
	case "reference_type":
		return []Part{t.refType(n)}
	case "generic_type":
		if g := t.genericType(n); g != nil {
			return []Part{g}
		}
	}
	if n.ChildCount() == 0 {
		return []Part{Text(t.text(n))}
	}
	out := make([]Part, 0, n.ChildCount())
	cursor := n.StartByte()
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		if c.StartByte() > cursor {
			out = append(out, Text(t.Source[cursor:c.StartByte()]))
		}
		out = append(out, t.parts(c)...)
		cursor = c.EndByte()
	}
	if cursor < n.EndByte() {
		out = append(out, Text(t.Source[cursor:n.EndByte()]))
	}
	return mergeText(out)
}

func mergeText(parts []Part) []Part {
	out := parts[:0]
	for _, p := range parts {
		if txt, ok := p.(Text); ok && len(out) > 0 {
			if prev, ok := out[len(out)-1].(Text); ok {
				out[len(out)-1] = prev + txt
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

func (t *Tree) typeOf(n *sitter.Node) Type {
	switch n.Type() {
	case "reference_type":
		return t.refType(n)
	case "generic_type":
		if g := t.genericType(n); g != nil {
			return g
		}
	}
	return &CompositeType{Parts: t.parts(n)}
}

func (t *Tree) refType(n *sitter.Node) *RefType {
	r := &RefType{}
	if lt := childOfType(n, "lifetime"); lt != nil {
		r.Lifetime = &Lifetime{Name: t.text(lt)}
	}
	r.Mutable = childOfType(n, "mutable_specifier") != nil
	if elem := n.ChildByFieldName("type"); elem != nil {
		r.Elem = t.typeOf(elem)
	} else {
		r.Elem = &CompositeType{}
	}
	return r
}

func (t *Tree) genericType(n *sitter.Node) *GenericType {
	base := n.ChildByFieldName("type")
	args := n.ChildByFieldName("type_arguments")
	if base == nil || args == nil {
		return nil
	}
	g := &GenericType{Base: t.parts(base)}
	for _, c := range namedChildren(args) {
		if isComment(c) {
			continue
		}
		if c.Type() == "lifetime" {
			g.Args = append(g.Args, &LifetimeArg{Lifetime: &Lifetime{Name: t.text(c)}})
			continue
		}
		g.Args = append(g.Args, &TypeArg{Type: t.typeOf(c)})
	}
	return g
}

// boundLifetimes returns the lifetimes listed in a trait_bounds node.
func (t *Tree) boundLifetimes(bounds *sitter.Node) []*Lifetime {
	if bounds == nil {
		return nil
	}
	var out []*Lifetime
	for _, c := range namedChildren(bounds) {
		if c.Type() == "lifetime" {
			out = append(out, &Lifetime{Name: t.text(c)})
		}
	}
	return out
}

func (t *Tree) genericParams(n *sitter.Node) []GenericParam {
	var (
		out    []GenericParam
		prefix string
	)
	for _, c := range namedChildren(n) {
		switch c.Type() {
		case "attribute_item":
			prefix += t.text(c) + " "
			continue
		case "line_comment", "block_comment":
			continue
		case "lifetime":
			out = append(out, &LifetimeParam{Prefix: prefix, Lifetime: &Lifetime{Name: t.text(c)}})
		case "lifetime_parameter":
			name := c.ChildByFieldName("name")
			if name == nil {
				name = childOfType(c, "lifetime")
			}
			if name == nil {
				out = append(out, &OtherParam{Parts: prefixed(prefix, t.parts(c))})
				break
			}
			out = append(out, &LifetimeParam{
				Prefix:   prefix,
				Lifetime: &Lifetime{Name: t.text(name)},
				Bounds:   t.boundLifetimes(c.ChildByFieldName("bounds")),
			})
		case "constrained_type_parameter":
			left := c.ChildByFieldName("left")
			if left != nil && left.Type() == "lifetime" {
				out = append(out, &LifetimeParam{
					Prefix:   prefix,
					Lifetime: &Lifetime{Name: t.text(left)},
					Bounds:   t.boundLifetimes(c.ChildByFieldName("bounds")),
				})
				break
			}
			out = append(out, &OtherParam{Parts: prefixed(prefix, t.parts(c))})
		default:
			out = append(out, &OtherParam{Parts: prefixed(prefix, t.parts(c))})
		}
		prefix = ""
	}
	return out
}

func prefixed(prefix string, parts []Part) []Part {
	if prefix == "" {
		return parts
	}
	return mergeText(append([]Part{Text(prefix)}, parts...))
}

func (t *Tree) wherePredicates(n *sitter.Node) []WherePredicate {
	var out []WherePredicate
	for _, c := range namedChildren(n) {
		if c.Type() != "where_predicate" {
			continue
		}
		left := c.ChildByFieldName("left")
		if left != nil && left.Type() == "lifetime" {
			out = append(out, &LifetimePredicate{
				Lifetime: &Lifetime{Name: t.text(left)},
				Bounds:   t.boundLifetimes(c.ChildByFieldName("bounds")),
			})
			continue
		}
		out = append(out, &OtherPredicate{Parts: t.parts(c)})
	}
	return out
}

func (t *Tree) params(n *sitter.Node) []Param {
	var out []Param
	for _, c := range namedChildren(n) {
		switch c.Type() {
		case "self_parameter":
			out = append(out, &Receiver{Text: t.text(c)})
		case "parameter":
			pattern := c.ChildByFieldName("pattern")
			typ := c.ChildByFieldName("type")
			if pattern != nil && t.text(pattern) == "self" {
				out = append(out, &Receiver{Text: t.text(c)})
				continue
			}
			if typ == nil {
				out = append(out, &RawParam{Text: t.text(c)})
				continue
			}
			out = append(out, &TypedParam{
				Binding:  string(t.Source[c.StartByte():typ.StartByte()]),
				Type:     t.typeOf(typ),
				typeSpan: t.span(typ),
				origType: t.text(typ),
			})
		case "line_comment", "block_comment":
		default:
			out = append(out, &RawParam{Text: t.text(c)})
		}
	}
	return out
}

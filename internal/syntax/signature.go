package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"

	"ltfix/internal/source"
)

// Signature is the mutable view of a function header. Passes change the model;
// Edits turns the changes back into source edits.
type Signature struct {
	Name     string
	Generics []GenericParam
	Params   []Param
	Output   Type // nil for ()
	Where    []WherePredicate

	nameEnd int

	hasGenerics  bool
	genericsSpan source.Span
	origGenerics string

	outputSpan source.Span
	origOutput string

	hasWhere      bool
	whereSpan     source.Span
	origWhere     string
	whereInsertAt int
}

func (t *Tree) signature(fn *sitter.Node) *Signature {
	name := fn.ChildByFieldName("name")
	params := fn.ChildByFieldName("parameters")
	if name == nil || params == nil {
		return nil
	}
	sig := &Signature{
		Name:          t.text(name),
		nameEnd:       t.span(name).End,
		Params:        t.params(params),
		whereInsertAt: t.span(params).End,
	}
	if tp := fn.ChildByFieldName("type_parameters"); tp != nil {
		sig.hasGenerics = true
		sig.genericsSpan = t.span(tp)
		sig.origGenerics = t.text(tp)
		sig.Generics = t.genericParams(tp)
	}
	if ret := fn.ChildByFieldName("return_type"); ret != nil {
		sig.Output = t.typeOf(ret)
		sig.outputSpan = t.span(ret)
		sig.origOutput = t.text(ret)
		sig.whereInsertAt = sig.outputSpan.End
	}
	if wc := childOfType(fn, "where_clause"); wc != nil {
		sig.hasWhere = true
		sig.whereSpan = t.span(wc)
		sig.origWhere = t.text(wc)
		sig.Where = t.wherePredicates(wc)
	}
	return sig
}

// HasReceiver reports whether the parameter list starts with some form of self.
func (s *Signature) HasReceiver() bool {
	for _, p := range s.Params {
		if _, ok := p.(*Receiver); ok {
			return true
		}
	}
	return false
}

// Inputs returns the typed (non-receiver) parameters.
func (s *Signature) Inputs() []*TypedParam {
	out := make([]*TypedParam, 0, len(s.Params))
	for _, p := range s.Params {
		if tp, ok := p.(*TypedParam); ok {
			out = append(out, tp)
		}
	}
	return out
}

// LifetimeParams returns the declared lifetime parameters in order.
func (s *Signature) LifetimeParams() []*LifetimeParam {
	out := make([]*LifetimeParam, 0, len(s.Generics))
	for _, g := range s.Generics {
		if lp, ok := g.(*LifetimeParam); ok {
			out = append(out, lp)
		}
	}
	return out
}

// AddPredicate appends pred to the where-clause unless an identical predicate is present.
// It reports whether the clause changed.
func (s *Signature) AddPredicate(pred WherePredicate) bool {
	rendered := RenderPredicate(pred)
	for _, existing := range s.Where {
		if RenderPredicate(existing) == rendered {
			return false
		}
	}
	s.Where = append(s.Where, pred)
	return true
}

// Header renders the signature from the name to the end of the where-clause.
func (s *Signature) Header() string {
	out := s.Name + renderGenerics(s.Generics) + "("
	for i, p := range s.Params {
		if i > 0 {
			out += ", "
		}
		switch fp := p.(type) {
		case *Receiver:
			out += fp.Text
		case *TypedParam:
			out += fp.Binding + String(fp.Type)
		case *RawParam:
			out += fp.Text
		}
	}
	out += ")"
	if s.Output != nil {
		out += " -> " + String(s.Output)
	}
	if w := renderWhere(s.Where); w != "" {
		out += " " + w
	}
	return out
}

// Edits returns the source edits that bring the file in line with the model.
// Untouched pieces produce no edits.
func (s *Signature) Edits() []source.TextEdit {
	var edits []source.TextEdit

	generics := renderGenerics(s.Generics)
	switch {
	case s.hasGenerics && generics != s.origGenerics:
		edits = append(edits, source.Replace(s.genericsSpan, s.origGenerics, generics))
	case !s.hasGenerics && generics != "":
		edits = append(edits, source.Insert(s.nameEnd, generics))
	}

	for _, in := range s.Inputs() {
		if rendered := String(in.Type); rendered != in.origType {
			edits = append(edits, source.Replace(in.typeSpan, in.origType, rendered))
		}
	}

	if s.Output != nil {
		if rendered := String(s.Output); rendered != s.origOutput {
			edits = append(edits, source.Replace(s.outputSpan, s.origOutput, rendered))
		}
	}

	where := renderWhere(s.Where)
	switch {
	case s.hasWhere && where != s.origWhere:
		edits = append(edits, source.Replace(s.whereSpan, s.origWhere, where))
	case !s.hasWhere && where != "":
		edits = append(edits, source.Insert(s.whereInsertAt, " "+where))
	}
	return edits
}

package syntax

import "strings"

func (t Text) render(b *strings.Builder) {
	b.WriteString(string(t))
}

func (lt *Lifetime) render(b *strings.Builder) {
	b.WriteString(lt.Name)
}

func (r *RefType) render(b *strings.Builder) {
	b.WriteByte('&')
	if r.Lifetime != nil {
		b.WriteString(r.Lifetime.Name)
		b.WriteByte(' ')
	}
	if r.Mutable {
		b.WriteString("mut ")
	}
	if r.Elem != nil {
		r.Elem.render(b)
	}
}

func (g *GenericType) render(b *strings.Builder) {
	renderParts(b, g.Base)
	b.WriteByte('<')
	for i, arg := range g.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		switch a := arg.(type) {
		case *LifetimeArg:
			b.WriteString(a.Lifetime.Name)
		case *TypeArg:
			a.Type.render(b)
		}
	}
	b.WriteByte('>')
}

func (c *CompositeType) render(b *strings.Builder) {
	renderParts(b, c.Parts)
}

func renderParts(b *strings.Builder, parts []Part) {
	for _, p := range parts {
		p.render(b)
	}
}

func renderLifetimes(b *strings.Builder, lts []*Lifetime) {
	for i, lt := range lts {
		if i > 0 {
			b.WriteString(" + ")
		}
		b.WriteString(lt.Name)
	}
}

// String renders any part back to source text.
func String(p Part) string {
	var b strings.Builder
	p.render(&b)
	return b.String()
}

// RenderGenericParam renders one generic parameter.
func RenderGenericParam(p GenericParam) string {
	var b strings.Builder
	switch gp := p.(type) {
	case *LifetimeParam:
		b.WriteString(gp.Prefix)
		b.WriteString(gp.Lifetime.Name)
		if len(gp.Bounds) > 0 {
			b.WriteString(": ")
			renderLifetimes(&b, gp.Bounds)
		}
	case *OtherParam:
		renderParts(&b, gp.Parts)
	}
	return b.String()
}

// RenderPredicate renders one where-clause predicate.
func RenderPredicate(p WherePredicate) string {
	var b strings.Builder
	switch wp := p.(type) {
	case *LifetimePredicate:
		b.WriteString(wp.Lifetime.Name)
		b.WriteString(": ")
		renderLifetimes(&b, wp.Bounds)
	case *OtherPredicate:
		renderParts(&b, wp.Parts)
	}
	return b.String()
}

func renderGenerics(params []GenericParam) string {
	if len(params) == 0 {
		return ""
	}
	items := make([]string, 0, len(params))
	for _, p := range params {
		items = append(items, RenderGenericParam(p))
	}
	return "<" + strings.Join(items, ", ") + ">"
}

func renderWhere(preds []WherePredicate) string {
	if len(preds) == 0 {
		return ""
	}
	items := make([]string, 0, len(preds))
	for _, p := range preds {
		items = append(items, RenderPredicate(p))
	}
	return "where " + strings.Join(items, ", ")
}

package syntax

import (
	"strings"

	"ltfix/internal/source"
)

// Lifetime is one lifetime occurrence, including the leading apostrophe ('a).
// Passes rename lifetimes in place through the pointer.
type Lifetime struct {
	Name string
}

// Placeholder is the anonymous lifetime.
const Placeholder = "'_"

// Part is a piece of a type or bound kept in source order: Text, *Lifetime or a Type.
type Part interface {
	render(b *strings.Builder)
}

// Text is literal source text between structured pieces.
type Text string

// Type is a parsed type expression.
type Type interface {
	Part
	typeNode()
}

// RefType is a reference type: &'a mut Elem.
type RefType struct {
	Lifetime *Lifetime // nil when elided
	Mutable  bool
	Elem     Type
}

// GenericType is a path applied to generic arguments: Base<Args...>.
type GenericType struct {
	Base []Part
	Args []GenericArg
}

// CompositeType covers every other type shape (paths, tuples, slices, arrays,
// pointers, trait objects, fn pointers). Parts reproduce the source text exactly.
type CompositeType struct {
	Parts []Part
}

// GenericArg is an argument inside <...> of a GenericType.
type GenericArg interface {
	argNode()
}

// LifetimeArg is a lifetime passed as a generic argument (Foo<'a>).
type LifetimeArg struct {
	Lifetime *Lifetime
}

// TypeArg is any non-lifetime argument: types, associated type bindings, consts.
type TypeArg struct {
	Type Type
}

// GenericParam is one entry of a function's <...> list.
type GenericParam interface {
	paramNode()
}

// LifetimeParam declares a lifetime, optionally with outlives bounds ('a: 'b + 'c).
type LifetimeParam struct {
	Prefix   string // attributes written before the parameter
	Lifetime *Lifetime
	Bounds   []*Lifetime
}

// OtherParam is a type or const parameter.
type OtherParam struct {
	Parts []Part
}

// WherePredicate is one predicate of a where-clause.
type WherePredicate interface {
	predicateNode()
}

// LifetimePredicate is 'a: 'b + 'c.
type LifetimePredicate struct {
	Lifetime *Lifetime
	Bounds   []*Lifetime
}

// OtherPredicate is a type predicate such as T: Clone + 'a.
type OtherPredicate struct {
	Parts []Part
}

// Param is one entry of the parameter list.
type Param interface {
	fnParam()
}

// Receiver is a self parameter in any form (self, &'a mut self, self: Box<Self>).
type Receiver struct {
	Text string
}

// TypedParam is pattern: Type.
type TypedParam struct {
	Binding string // pattern and colon as written, e.g. "mut x: "
	Type    Type

	typeSpan source.Span
	origType string
}

// RawParam keeps parameter list entries the passes never touch (attributes, variadics).
type RawParam struct {
	Text string
}

func (*RefType) typeNode()       {}
func (*GenericType) typeNode()   {}
func (*CompositeType) typeNode() {}

func (*LifetimeArg) argNode() {}
func (*TypeArg) argNode()     {}

func (*LifetimeParam) paramNode() {}
func (*OtherParam) paramNode()    {}

func (*LifetimePredicate) predicateNode() {}
func (*OtherPredicate) predicateNode()    {}

func (*Receiver) fnParam()   {}
func (*TypedParam) fnParam() {}
func (*RawParam) fnParam()   {}

// NewLifetimePredicate builds 'lhs: 'rhs.
func NewLifetimePredicate(lhs, rhs string) *LifetimePredicate {
	return &LifetimePredicate{
		Lifetime: &Lifetime{Name: lhs},
		Bounds:   []*Lifetime{{Name: rhs}},
	}
}

package syntax

import "iter"

// Occurrence is one lifetime as it appears in a signature. Ref is set when the
// lifetime annotates a reference, Arg when it is a generic argument.
// Passes mutate through the pointers: renaming edits Lifetime.Name, eliding
// clears Ref.Lifetime.
type Occurrence struct {
	Lifetime *Lifetime
	Ref      *RefType
	Arg      *LifetimeArg
}

// Lifetimes yields every lifetime inside p in source order.
func Lifetimes(p Part) iter.Seq[Occurrence] {
	return func(yield func(Occurrence) bool) {
		walkPart(p, yield)
	}
}

func walkPart(p Part, yield func(Occurrence) bool) bool {
	switch v := p.(type) {
	case *Lifetime:
		return yield(Occurrence{Lifetime: v})
	case *RefType:
		if v.Lifetime != nil && !yield(Occurrence{Lifetime: v.Lifetime, Ref: v}) {
			return false
		}
		if v.Elem != nil {
			return walkPart(v.Elem, yield)
		}
	case *GenericType:
		if !walkParts(v.Base, yield) {
			return false
		}
		for _, arg := range v.Args {
			switch a := arg.(type) {
			case *LifetimeArg:
				if !yield(Occurrence{Lifetime: a.Lifetime, Arg: a}) {
					return false
				}
			case *TypeArg:
				if !walkPart(a.Type, yield) {
					return false
				}
			}
		}
	case *CompositeType:
		return walkParts(v.Parts, yield)
	}
	return true
}

func walkParts(parts []Part, yield func(Occurrence) bool) bool {
	for _, p := range parts {
		if !walkPart(p, yield) {
			return false
		}
	}
	return true
}

func walkLifetimes(lts []*Lifetime, yield func(Occurrence) bool) bool {
	for _, lt := range lts {
		if !yield(Occurrence{Lifetime: lt}) {
			return false
		}
	}
	return true
}

// InputLifetimes yields the lifetimes of the typed parameters.
func (s *Signature) InputLifetimes() iter.Seq[Occurrence] {
	return func(yield func(Occurrence) bool) {
		for _, in := range s.Inputs() {
			if !walkPart(in.Type, yield) {
				return
			}
		}
	}
}

// OutputLifetimes yields the lifetimes of the return type.
func (s *Signature) OutputLifetimes() iter.Seq[Occurrence] {
	return func(yield func(Occurrence) bool) {
		if s.Output != nil {
			walkPart(s.Output, yield)
		}
	}
}

// BoundLifetimes yields the lifetimes that take part in outlives relations:
// both sides of where-predicates and bounds on generic parameters.
// Declared lifetime names are not included.
func (s *Signature) BoundLifetimes() iter.Seq[Occurrence] {
	return func(yield func(Occurrence) bool) {
		for _, g := range s.Generics {
			switch gp := g.(type) {
			case *LifetimeParam:
				if len(gp.Bounds) > 0 {
					if !yield(Occurrence{Lifetime: gp.Lifetime}) || !walkLifetimes(gp.Bounds, yield) {
						return
					}
				}
			case *OtherParam:
				if !walkParts(gp.Parts, yield) {
					return
				}
			}
		}
		for _, w := range s.Where {
			switch wp := w.(type) {
			case *LifetimePredicate:
				if !yield(Occurrence{Lifetime: wp.Lifetime}) || !walkLifetimes(wp.Bounds, yield) {
					return
				}
			case *OtherPredicate:
				if !walkParts(wp.Parts, yield) {
					return
				}
			}
		}
	}
}

// AllLifetimes yields every lifetime in the signature, declarations included.
// Each *Lifetime is yielded exactly once.
func (s *Signature) AllLifetimes() iter.Seq[Occurrence] {
	return func(yield func(Occurrence) bool) {
		for _, g := range s.Generics {
			switch gp := g.(type) {
			case *LifetimeParam:
				if !yield(Occurrence{Lifetime: gp.Lifetime}) || !walkLifetimes(gp.Bounds, yield) {
					return
				}
			case *OtherParam:
				if !walkParts(gp.Parts, yield) {
					return
				}
			}
		}
		for occ := range s.InputLifetimes() {
			if !yield(occ) {
				return
			}
		}
		for occ := range s.OutputLifetimes() {
			if !yield(occ) {
				return
			}
		}
		for _, w := range s.Where {
			switch wp := w.(type) {
			case *LifetimePredicate:
				if !yield(Occurrence{Lifetime: wp.Lifetime}) || !walkLifetimes(wp.Bounds, yield) {
					return
				}
			case *OtherPredicate:
				if !walkParts(wp.Parts, yield) {
					return
				}
			}
		}
	}
}

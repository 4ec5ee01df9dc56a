// Package elide removes lifetime annotations that the compiler can infer and
// renames the remaining ones canonically.
package elide

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ltfix/internal/rewrite"
	"ltfix/internal/syntax"
)

// Result describes one elision pass over the functions with a given name.
//
// Functions with a receiver are not rewritten, yet they still report their
// flags: AnnotationsLeft is set when they declare any lifetime and
// HasStructLifetime follows the usual rule. Callers that expect both flags to
// be false for methods must check the receiver themselves.
type Result struct {
	Success           bool // at least one function with the name was found
	AnnotationsLeft   bool // some lifetime parameter survived
	HasStructLifetime bool // a lifetime, 'static included, is passed as a generic argument anywhere in the signature
}

// Lifetimes runs the elision pass over every function named fn in path and
// writes the canonicalized file back. Running it twice changes nothing further.
func Lifetimes(ctx context.Context, path, fn string, opts rewrite.Options) (Result, error) {
	var res Result
	log := opts.Log()
	_, err := rewrite.Functions(ctx, path, fn, opts, rewrite.Always, func(item syntax.FnItem) bool {
		res.Success = true
		out := Signature(item.Sig)
		res.AnnotationsLeft = res.AnnotationsLeft || out.AnnotationsLeft
		res.HasStructLifetime = res.HasStructLifetime || out.HasStructLifetime
		log.Debug("elided",
			zap.String("fn", fn),
			zap.Stringer("kind", item.Kind),
			zap.Bool("annotations_left", out.AnnotationsLeft),
			zap.Bool("struct_lifetime", out.HasStructLifetime),
			zap.String("signature", item.Sig.Header()))
		return true
	})
	if err != nil {
		return Result{}, fmt.Errorf("elide %s: %w", fn, err)
	}
	return res, nil
}

// Signature elides lifetimes of sig in place.
//
// A lifetime must stay when it appears in the return type, in a where-clause
// or in the bounds of a generic parameter, or when two or more typed inputs
// mention it. Other declared lifetimes are dropped: references lose them and
// any remaining mention becomes '_. Survivors are renamed 'lt0, 'lt1, ... in
// declaration order. Functions with a receiver are left alone.
func Signature(sig *syntax.Signature) Result {
	res := Result{Success: true}
	declared := make(map[string]bool)
	for _, lp := range sig.LifetimeParams() {
		declared[lp.Lifetime.Name] = true
	}
	for occ := range sig.AllLifetimes() {
		if occ.Arg != nil {
			res.HasStructLifetime = true
			break
		}
	}
	if sig.HasReceiver() {
		res.AnnotationsLeft = len(declared) > 0
		return res
	}

	pinned := make(map[string]bool)
	for occ := range sig.OutputLifetimes() {
		pinned[occ.Lifetime.Name] = true
	}
	for occ := range sig.BoundLifetimes() {
		pinned[occ.Lifetime.Name] = true
	}
	uses := make(map[string]int)
	for occ := range sig.InputLifetimes() {
		uses[occ.Lifetime.Name]++
	}
	keep := func(name string) bool {
		return pinned[name] || uses[name] >= 2
	}

	for occ := range sig.InputLifetimes() {
		if occ.Ref != nil && declared[occ.Lifetime.Name] && !keep(occ.Lifetime.Name) {
			occ.Ref.Lifetime = nil
		}
	}

	renamed := make(map[string]string)
	generics := sig.Generics[:0]
	for _, g := range sig.Generics {
		if lp, ok := g.(*syntax.LifetimeParam); ok {
			if !keep(lp.Lifetime.Name) {
				continue
			}
			renamed[lp.Lifetime.Name] = fmt.Sprintf("'lt%d", len(renamed))
		}
		generics = append(generics, g)
	}
	sig.Generics = generics
	res.AnnotationsLeft = len(renamed) > 0

	for occ := range sig.AllLifetimes() {
		name := occ.Lifetime.Name
		if to, ok := renamed[name]; ok {
			occ.Lifetime.Name = to
		} else if declared[name] {
			occ.Lifetime.Name = syntax.Placeholder
		}
	}
	return res
}

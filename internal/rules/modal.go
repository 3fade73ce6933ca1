package rules

import (
	"relkat.dev/core/internal/literal"
	"relkat.dev/core/internal/term"
)

// ModalUnroll implements spec.md 4.4's positive modal unrolling rule,
// applied only during regular-tableau expansion (package regulartableau).
// Given the minimal active event e0 and a positive setNonEmptiness literal
// whose innermost event is e0 over a base relation b, it rewrites e0;b (or
// b;e0) to {f, (e0,f) in b} (or (f,e0) in b) for a fresh event f strictly
// greater than every event fresh returns lt.
//
// lit must already have been checked to be a positive setNonEmptiness
// literal over an image/domain of a base relation rooted at e0; ok is
// false otherwise.
func ModalUnroll(u *term.Universe, e0 term.EventLabel, lit literal.Literal) (result literal.Cube, ok bool) {
	if lit.Negated() || lit.Kind() != literal.KindNonEmptiness {
		return literal.Cube{}, false
	}
	s := lit.SetTerm().Set
	isImage := u.SetOp(s) == term.SetImage
	isDomain := u.SetOp(s) == term.SetDomain
	if !isImage && !isDomain {
		return literal.Cube{}, false
	}
	inner := u.SetLeft(s)
	if u.SetOp(inner) != term.SetEvent || u.SetLabel(inner) != e0 {
		return literal.Cube{}, false
	}
	rel := u.SetRelation(s)
	if u.RelOp(rel) != term.RelBase {
		return literal.Cube{}, false
	}
	f := u.FreshEvent()
	fresh := u.Event(f)
	var edge literal.Literal
	if isImage {
		edge = literal.Edge(e0, f, u.RelName(rel), false, satbudgetZero())
	} else {
		edge = literal.Edge(f, e0, u.RelName(rel), false, satbudgetZero())
	}
	return mkCube(u, literal.NonEmpty(fresh, false, nil), edge), true
}

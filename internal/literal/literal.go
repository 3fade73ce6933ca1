// Package literal implements the five literal kinds of spec.md 4.3 (edge,
// set membership, equality, set-nonemptiness, constant), their ordering, and
// cubes of literals (conjunctions, the leaves of a local tableau's DNF).
package literal

import (
	"relkat.dev/core/internal/annotation"
	"relkat.dev/core/internal/rename"
	"relkat.dev/core/internal/satbudget"
	"relkat.dev/core/internal/term"
)

// Kind tags which of the five literal shapes a Literal carries.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindEdge
	KindSet
	KindEquality
	KindNonEmptiness
	KindConstant
)

func (k Kind) String() string {
	switch k {
	case KindEdge:
		return "edge"
	case KindSet:
		return "set"
	case KindEquality:
		return "equality"
	case KindNonEmptiness:
		return "setNonEmptiness"
	case KindConstant:
		return "constant"
	default:
		return "invalid"
	}
}

// AnnotatedSet pairs a Set term with the saturation-budget annotation that
// mirrors its shape (spec.md 4.4's annotated sub-sets). Ann is nil in
// contexts where no saturation bound is tracked (positive literals).
type AnnotatedSet struct {
	Set term.SetID
	Ann *annotation.Tree[satbudget.Budget]
}

// Literal is a tagged union over the five literal kinds. Only the fields
// relevant to Kind are meaningful; Validate checks only the kind tag.
type Literal struct {
	kind Kind
	neg  bool

	// edge(e1,e2,b) / set(e,b): budget is meaningful when neg is set.
	e1, e2 term.EventLabel
	base   term.Name
	budget satbudget.Budget

	// setNonEmptiness(S): as.Ann is consulted when neg is set.
	as AnnotatedSet

	// constant: top or bottom.
	top bool
}

// Edge constructs edge(e1,e2,b), or its negation when neg is true. budget is
// ignored when neg is false.
func Edge(e1, e2 term.EventLabel, b term.Name, neg bool, budget satbudget.Budget) Literal {
	return Literal{kind: KindEdge, neg: neg, e1: e1, e2: e2, base: b, budget: budget}
}

// SetMember constructs set(e,b), or its negation when neg is true.
func SetMember(e term.EventLabel, b term.Name, neg bool, budget satbudget.Budget) Literal {
	return Literal{kind: KindSet, neg: neg, e1: e, base: b, budget: budget}
}

// Equality constructs equality(e1,e2), or its negation when neg is true.
// Negated equality between distinct events is the only normal form; a
// positive equality or a negated equality between equal events is
// eliminated before a literal reaches a cube (spec.md 4.3).
func Equality(e1, e2 term.EventLabel, neg bool) Literal {
	return Literal{kind: KindEquality, neg: neg, e1: e1, e2: e2}
}

// NonEmpty constructs setNonEmptiness(S), or its negation ("S is empty")
// when neg is true. ann is the saturation annotation over S's shape; it is
// only consulted when neg is true.
func NonEmpty(s term.SetID, neg bool, ann *annotation.Tree[satbudget.Budget]) Literal {
	return Literal{kind: KindNonEmptiness, neg: neg, as: AnnotatedSet{Set: s, Ann: ann}}
}

// Top and Bottom are the two constant literals.
func Top() Literal    { return Literal{kind: KindConstant, top: true} }
func Bottom() Literal { return Literal{kind: KindConstant, top: false} }

func (l Literal) Kind() Kind  { return l.kind }
func (l Literal) Negated() bool { return l.neg }

func (l Literal) Events() [2]term.EventLabel {
	switch l.kind {
	case KindEdge, KindEquality:
		return [2]term.EventLabel{l.e1, l.e2}
	case KindSet:
		return [2]term.EventLabel{l.e1, l.e1}
	default:
		return [2]term.EventLabel{}
	}
}

func (l Literal) Base() term.Name { return l.base }
func (l Literal) Budget() satbudget.Budget { return l.budget }
func (l Literal) SetTerm() AnnotatedSet { return l.as }
func (l Literal) IsTop() bool { return l.kind == KindConstant && l.top }
func (l Literal) IsBottom() bool { return l.kind == KindConstant && !l.top }

// Validate reports whether l's kind is one of the five literal kinds; it
// does not check which fields are populated for that kind. Every
// constructor above sets a valid kind, so a Validate failure indicates a
// zero or corrupted Literal.
func (l Literal) Validate() bool {
	switch l.kind {
	case KindEdge, KindSet, KindEquality, KindNonEmptiness, KindConstant:
		return true
	default:
		return false
	}
}

// IsNormal reports whether l is in the normal form a cube requires
// (spec.md 4.3): edge and set literals are always normal; equality
// literals are normal only when negated and between distinct events;
// setNonEmptiness literals are normal when their underlying Set is.
func (l Literal) IsNormal(u *term.Universe) bool {
	switch l.kind {
	case KindEdge, KindSet:
		return true
	case KindEquality:
		return l.neg && l.e1 != l.e2
	case KindNonEmptiness:
		return u.SetFacts(l.as.Set).IsNormal
	case KindConstant:
		return true
	default:
		return false
	}
}

// Complement returns the negation of l, keeping l's budget/annotation.
func (l Literal) Complement() Literal {
	switch l.kind {
	case KindConstant:
		return Literal{kind: KindConstant, top: !l.top}
	default:
		out := l
		out.neg = !l.neg
		return out
	}
}

// IsComplementOf reports whether l and other are the same literal up to
// negation, i.e. the pair {l, other} trivially closes a branch.
func (l Literal) IsComplementOf(u *term.Universe, other Literal) bool {
	if l.kind != other.kind || l.neg == other.neg {
		return false
	}
	switch l.kind {
	case KindEdge:
		return l.e1 == other.e1 && l.e2 == other.e2 && l.base == other.base
	case KindSet:
		return l.e1 == other.e1 && l.base == other.base
	case KindEquality:
		return l.e1 == other.e1 && l.e2 == other.e2
	case KindNonEmptiness:
		return l.as.Set == other.as.Set
	default:
		return false
	}
}

// Rename applies r to every event field of l in one pass (r.ApplyTotal,
// so labels outside r's domain are unchanged), unlike Substitute which only
// rewrites one matched label at a time. Use Rename when r's pairs might
// otherwise interfere if applied sequentially (e.g. a cyclic relabeling).
func (l Literal) Rename(u *term.Universe, r rename.Renaming) Literal {
	out := l
	switch l.kind {
	case KindEdge:
		out.e1, out.e2 = r.ApplyTotal(l.e1), r.ApplyTotal(l.e2)
	case KindSet:
		out.e1 = r.ApplyTotal(l.e1)
	case KindEquality:
		out.e1, out.e2 = r.ApplyTotal(l.e1), r.ApplyTotal(l.e2)
	case KindNonEmptiness:
		out.as.Set = u.RenameSet(l.as.Set, r)
	}
	return out
}

// Substitute rewrites every event occurrence matching search to replace
// (spec.md 4.3's substituteAll, lifted to literals: atomic literals rewrite
// their event fields directly, setNonEmptiness rewrites its underlying
// Set).
func (l Literal) Substitute(u *term.Universe, search, replace term.EventLabel) Literal {
	out := l
	switch l.kind {
	case KindEdge, KindSet:
		if out.e1 == search {
			out.e1 = replace
		}
		if l.kind == KindEdge && out.e2 == search {
			out.e2 = replace
		}
	case KindEquality:
		if out.e1 == search {
			out.e1 = replace
		}
		if out.e2 == search {
			out.e2 = replace
		}
	case KindNonEmptiness:
		out.as.Set = u.SubstituteAllEvents(l.as.Set, search, replace)
	}
	return out
}

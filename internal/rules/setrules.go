package rules

import (
	"relkat.dev/core/internal/annotation"
	"relkat.dev/core/internal/literal"
	"relkat.dev/core/internal/satbudget"
	"relkat.dev/core/internal/term"
)

type annTree = *annotation.Tree[satbudget.Budget]

func left(ann annTree) annTree {
	if ann == nil {
		return nil
	}
	l := ann.Left()
	return l
}

func right(ann annTree) annTree {
	if ann == nil {
		return nil
	}
	return ann.Right()
}

// applyNonEmptiness dispatches a setNonEmptiness(S) literal (spec.md 4.4's
// "Set rules" and "Relational rules") by the shape of S's root operator.
func applyNonEmptiness(u *term.Universe, cfg Config, lit literal.Literal) Result {
	as := lit.SetTerm()
	neg := lit.Negated()
	s := as.Set
	ann := as.Ann

	switch u.SetOp(s) {
	case term.SetUnion:
		l, r := u.SetLeft(s), u.SetRight(s)
		if !neg {
			return Result{Fired: true, DNF: one(mkCube(u, literal.NonEmpty(l, false, left(ann)))).
				Or(one(mkCube(u, literal.NonEmpty(r, false, right(ann)))))}
		}
		return Result{Fired: true, DNF: one(mkCube(u,
			literal.NonEmpty(l, true, left(ann)),
			literal.NonEmpty(r, true, right(ann)),
		))}

	case term.SetIntersection:
		return applyIntersection(u, cfg, neg, s, ann)

	case term.SetEmpty:
		if !neg {
			return Result{Fired: true, DNF: one(mkCube(u, literal.Bottom()))}
		}
		return Result{Fired: true, DNF: one(mkCube(u, literal.Top()))}

	case term.SetFull:
		if !neg {
			f := u.Event(u.FreshEvent())
			_ = f
			return Result{Fired: true, DNF: one(mkCube(u, literal.Top()))}
		}
		return Result{}

	case term.SetEvent:
		if !neg {
			return Result{Fired: true, DNF: one(mkCube(u, literal.Top()))}
		}
		return Result{Fired: true, DNF: one(mkCube(u, literal.Bottom()))}

	case term.SetBase:
		if !neg {
			f := u.FreshEvent()
			return Result{Fired: true, DNF: one(mkCube(u,
				literal.SetMember(f, u.SetName(s), false, satbudget.Budget{}),
			))}
		}
		return Result{}

	case term.SetImage, term.SetDomain:
		return applyRelational(u, cfg, neg, s, ann)

	default:
		return Result{}
	}
}

// applyIntersection handles setNonEmptiness(S1 & S2). When neither operand
// is a bare event it recurses into whichever side has a firing rule,
// conjoining the unchanged other side back into the rewritten context. When
// one operand is an event, the whole literal collapses to an atomic form
// (spec.md 4.4's "Intersection with an event at the root" table).
func applyIntersection(u *term.Universe, cfg Config, neg bool, s term.SetID, ann annTree) Result {
	l, r := u.SetLeft(s), u.SetRight(s)
	lEvent := u.SetOp(l) == term.SetEvent
	rEvent := u.SetOp(r) == term.SetEvent

	if lEvent != rEvent {
		e, other, otherAnn := l, r, right(ann)
		if rEvent {
			e, other, otherAnn = r, l, left(ann)
		}
		ev := u.SetLabel(e)
		return applyAtomicIntersection(u, cfg, neg, ev, other, otherAnn)
	}
	if lEvent && rEvent {
		// Both operands are events: an intersection of two singleton
		// event-sets is nonempty iff they denote the same event.
		e1, e2 := u.SetLabel(l), u.SetLabel(r)
		return Result{Fired: true, DNF: one(mkCube(u, literal.Equality(e1, e2, neg)))}
	}

	// Neither side is an event: recurse into the side that has a firing
	// rule, re-wrapping the untouched other side as a conjunctive context.
	if res := applyNonEmptiness(u, cfg, literal.NonEmpty(l, neg, left(ann))); res.Fired {
		return rewrapIntersection(u, res, func(sub term.SetID) term.SetID {
			return u.SetIntersectionOf(sub, r)
		})
	}
	if res := applyNonEmptiness(u, cfg, literal.NonEmpty(r, neg, right(ann))); res.Fired {
		return rewrapIntersection(u, res, func(sub term.SetID) term.SetID {
			return u.SetIntersectionOf(l, sub)
		})
	}
	return Result{}
}

// rewrapIntersection re-embeds every setNonEmptiness literal produced by a
// one-sided recursive rule application back into the enclosing
// intersection context, per spec.md 4.4's "embed holes back" contract.
func rewrapIntersection(u *term.Universe, res Result, rebuild func(term.SetID) term.SetID) Result {
	cubes := make([]literal.Cube, 0, len(res.DNF.Cubes))
	for _, c := range res.DNF.Cubes {
		lits := make([]literal.Literal, 0, c.Len())
		for _, lit := range c.Literals() {
			if lit.Kind() == literal.KindNonEmptiness {
				sub := lit.SetTerm()
				lits = append(lits, literal.NonEmpty(rebuild(sub.Set), lit.Negated(), sub.Ann))
			} else {
				lits = append(lits, lit)
			}
		}
		cubes = append(cubes, mkCube(u, lits...))
	}
	return Result{Fired: true, Unrolled: res.Unrolled, DNF: literal.DNF{Cubes: cubes}}
}

// applyAtomicIntersection rewrites setNonEmptiness(e & other) to the
// atomic literal it denotes: membership for a base set, an edge (or its
// negation) for an image/domain of an event over a base relation, and
// otherwise recurses ordinarily. Two events are handled by applyIntersection
// before this function is reached.
func applyAtomicIntersection(u *term.Universe, cfg Config, neg bool, e term.EventLabel, other term.SetID, otherAnn annTree) Result {
	switch u.SetOp(other) {
	case term.SetBase:
		return Result{Fired: true, DNF: one(mkCube(u, literal.SetMember(e, u.SetName(other), neg, cfg.DefaultBudget())))}
	case term.SetImage:
		inner := u.SetLeft(other)
		rel := u.SetRelation(other)
		if u.SetOp(inner) == term.SetEvent && u.RelOp(rel) == term.RelBase {
			return Result{Fired: true, DNF: one(mkCube(u,
				literal.Edge(u.SetLabel(inner), e, u.RelName(rel), neg, cfg.DefaultBudget())))}
		}
	case term.SetDomain:
		inner := u.SetLeft(other)
		rel := u.SetRelation(other)
		if u.SetOp(inner) == term.SetEvent && u.RelOp(rel) == term.RelBase {
			return Result{Fired: true, DNF: one(mkCube(u,
				literal.Edge(e, u.SetLabel(inner), u.RelName(rel), neg, cfg.DefaultBudget())))}
		}
	}
	// General fallback: treat as an ordinary intersection and recurse into
	// the non-event side (e.g. other is itself a union/intersection).
	res := applyNonEmptiness(u, cfg, literal.NonEmpty(other, neg, otherAnn))
	if !res.Fired {
		return Result{}
	}
	return rewrapIntersection(u, res, func(sub term.SetID) term.SetID {
		return u.SetIntersectionOf(u.Event(e), sub)
	})
}

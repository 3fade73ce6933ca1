package rules

import (
	"relkat.dev/core/internal/literal"
	"relkat.dev/core/internal/term"
)

// applySaturation implements spec.md 4.4's saturation rules: negative-only,
// budget-limited rewrites of atomic literals back into a setNonEmptiness
// form that exposes the assumption bound R for further reduction. Firing
// decrements the literal's remaining budget so a bounded number of
// saturation steps can ever apply to the same literal's descendants.
func applySaturation(u *term.Universe, cfg Config, lit literal.Literal) Result {
	if !lit.Negated() || cfg.Assumptions == nil {
		return Result{}
	}
	switch lit.Kind() {
	case literal.KindEdge:
		return saturateEdge(u, cfg, lit)
	case literal.KindSet:
		return saturateSet(u, cfg, lit)
	case literal.KindEquality:
		return saturateEquality(u, cfg, lit)
	default:
		return Result{}
	}
}

// edgeAsSet renders edge(e1,e2,b) as the setNonEmptiness term it is a
// shorthand for: e2 is in the image of e1 under b.
func edgeAsSet(u *term.Universe, e1, e2 term.EventLabel, rel term.RelID) term.SetID {
	return u.SetIntersectionOf(u.Event(e2), u.Image(u.Event(e1), rel))
}

func saturateEdge(u *term.Universe, cfg Config, lit literal.Literal) Result {
	budget := lit.Budget()
	ev := lit.Events()
	if budget.Base > 0 {
		if r, ok := cfg.Assumptions.BaseRelationBound(lit.Base()); ok {
			sat := edgeAsSet(u, ev[0], ev[1], r)
			return Result{Fired: true, DNF: one(mkCube(u, literal.NonEmpty(sat, true, nil)))}
		}
	}
	if budget.ID > 0 {
		r := cfg.Assumptions.MasterIdRelation()
		b := u.BaseRelation(u.NameString(lit.Base()))
		saturated := u.Compose(r, b)
		sat := edgeAsSet(u, ev[0], ev[1], saturated)
		return Result{Fired: true, DNF: one(mkCube(u, literal.NonEmpty(sat, true, nil)))}
	}
	return Result{}
}

func saturateSet(u *term.Universe, cfg Config, lit literal.Literal) Result {
	budget := lit.Budget()
	if budget.Base == 0 {
		return Result{}
	}
	r, ok := cfg.Assumptions.BaseSetBound(lit.Base())
	if !ok {
		return Result{}
	}
	ev := lit.Events()
	sat := u.SetIntersectionOf(u.Event(ev[0]), r)
	return Result{Fired: true, DNF: one(mkCube(u, literal.NonEmpty(sat, true, nil)))}
}

// saturateEquality implements "negated equality ¬(e=f) saturates once to
// ¬(e;R* ∩ f) ≠ ∅" (spec.md 4.4), where R* is the master identity
// relation bounding every id-assumption. There is no per-literal budget to
// check: equality saturates unconditionally, exactly once, since a second
// application would just reintroduce the same obligation.
func saturateEquality(u *term.Universe, cfg Config, lit literal.Literal) Result {
	ev := lit.Events()
	rStar := cfg.Assumptions.MasterIdRelation()
	sat := u.SetIntersectionOf(u.Image(u.Event(ev[0]), rStar), u.Event(ev[1]))
	return Result{Fired: true, DNF: one(mkCube(u, literal.NonEmpty(sat, true, nil)))}
}

package model

import (
	"relkat.dev/core/internal/literal"
	"relkat.dev/core/internal/term"
)

// StoreView is the subset of *assume.Store the fixpoint closure consults.
// Declared locally, as internal/rules and internal/catlang also do for
// their own Store dependencies, so this package does not import
// internal/assume directly.
type StoreView interface {
	IDAssumptions() []term.RelID
	BaseAssumptions() map[term.Name]term.RelID
	BaseSetAssumptions() map[term.Name]term.SetID
}

// Build folds a set of positive literals (the path-derived facts of
// spec.md 4.7, already renamed into one common namespace by the caller)
// into a fresh Model, each fact starting at saturation cost zero.
func Build(u *term.Universe, lits []literal.Literal) *Model {
	m := New(u)
	for _, l := range lits {
		if l.Negated() {
			continue
		}
		switch l.Kind() {
		case literal.KindEdge:
			ev := l.Events()
			m.AddEdge(ev[0], ev[1], l.Base(), Cost{})
		case literal.KindSet:
			ev := l.Events()
			m.AddSetMember(ev[0], l.Base(), Cost{})
		case literal.KindEquality:
			ev := l.Events()
			m.AddEquality(ev[0], ev[1], Cost{})
		case literal.KindNonEmptiness:
			for _, e := range u.SetFacts(l.SetTerm().Set).Events {
				m.observe(e)
			}
		}
	}
	return m
}

// Saturate closes m under store's three assumption kinds to a fixpoint, per
// spec.md 4.7: idAssumptions add equalities over the evaluated relation's
// pairs, baseAssumptions add edges to the named base relation, and
// baseSetAssumptions add set memberships. The event universe is finite, so
// repeated closure terminates.
func Saturate(u *term.Universe, store StoreView, m *Model) {
	for changed := true; changed; {
		changed = false
		for _, r := range store.IDAssumptions() {
			val := EvalRelation(u, m, r)
			for p, c := range val.Pairs {
				before := m.representative(p.E1) == m.representative(p.E2)
				m.AddEquality(p.E1, p.E2, c.add(Cost{ID: 1}))
				if !before {
					changed = true
				}
			}
		}
		for name, bound := range store.BaseAssumptions() {
			val := EvalRelation(u, m, bound)
			for p, c := range val.Pairs {
				if _, ok := m.HasEdge(p.E1, p.E2, name); !ok {
					m.AddEdge(p.E1, p.E2, name, c.add(Cost{Base: 1}))
					changed = true
				}
			}
		}
		for name, bound := range store.BaseSetAssumptions() {
			val := EvalSet(u, m, bound)
			for e, c := range val.Events {
				if _, ok := m.HasSetMember(e, name); !ok {
					m.AddSetMember(e, name, c.add(Cost{Base: 1}))
					changed = true
				}
			}
		}
	}
}

package model

import "relkat.dev/core/internal/term"

// Pair is an ordered pair of events, the element kind of a SatRelationValue.
type Pair struct {
	E1, E2 term.EventLabel
}

// SatRelationValue is a relation-expression's value against a Model: a set
// of event pairs, each carrying the saturation cost of the cheapest
// derivation spec.md 4.7 describes.
type SatRelationValue struct {
	Pairs map[Pair]Cost
}

// SatSetValue is a set-expression's value against a Model.
type SatSetValue struct {
	Events map[term.EventLabel]Cost
}

func newRelValue() SatRelationValue { return SatRelationValue{Pairs: make(map[Pair]Cost)} }
func newSetValue() SatSetValue      { return SatSetValue{Events: make(map[term.EventLabel]Cost)} }

func (v SatRelationValue) put(p Pair, c Cost) {
	if existing, ok := v.Pairs[p]; !ok || costLess(c, existing) {
		v.Pairs[p] = c
	}
}

func (v SatSetValue) put(e term.EventLabel, c Cost) {
	if existing, ok := v.Events[e]; !ok || costLess(c, existing) {
		v.Events[e] = c
	}
}

// EvalRelation evaluates rel against m, per spec.md 4.7's operator table.
func EvalRelation(u *term.Universe, m *Model, rel term.RelID) SatRelationValue {
	out := newRelValue()
	switch u.RelOp(rel) {
	case term.RelBase:
		name := u.RelName(rel)
		for k, c := range m.edges {
			if k.base == name {
				out.put(Pair{k.e1, k.e2}, c)
			}
		}
	case term.RelIdentity:
		for _, e := range m.Events() {
			out.put(Pair{e, e}, Cost{})
		}
	case term.RelEmpty:
		// no pairs
	case term.RelFull:
		evs := m.Events()
		for _, a := range evs {
			for _, b := range evs {
				out.put(Pair{a, b}, Cost{})
			}
		}
	case term.RelUnion:
		l := EvalRelation(u, m, u.RelLeft(rel))
		r := EvalRelation(u, m, u.RelRight(rel))
		for p, c := range l.Pairs {
			out.put(p, c)
		}
		for p, c := range r.Pairs {
			out.put(p, c)
		}
	case term.RelIntersection:
		l := EvalRelation(u, m, u.RelLeft(rel))
		r := EvalRelation(u, m, u.RelRight(rel))
		for p, lc := range l.Pairs {
			if rc, ok := r.Pairs[p]; ok {
				out.put(p, lc.add(rc))
			}
		}
	case term.RelComposition:
		l := EvalRelation(u, m, u.RelLeft(rel))
		r := EvalRelation(u, m, u.RelRight(rel))
		for lp, lc := range l.Pairs {
			for rp, rc := range r.Pairs {
				if lp.E2 == rp.E1 {
					out.put(Pair{lp.E1, rp.E2}, lc.add(rc))
				}
			}
		}
	case term.RelConverse:
		x := EvalRelation(u, m, u.RelLeft(rel))
		for p, c := range x.Pairs {
			out.put(Pair{p.E2, p.E1}, c)
		}
	case term.RelTransitiveClosure:
		base := EvalRelation(u, m, u.RelLeft(rel))
		for _, e := range m.Events() {
			out.put(Pair{e, e}, Cost{})
		}
		for p, c := range base.Pairs {
			out.put(p, c)
		}
		for changed := true; changed; {
			changed = false
			for lp, lc := range out.Pairs {
				for rp, rc := range base.Pairs {
					if lp.E2 == rp.E1 {
						np := Pair{lp.E1, rp.E2}
						nc := lc.add(rc)
						if existing, ok := out.Pairs[np]; !ok || costLess(nc, existing) {
							out.Pairs[np] = nc
							changed = true
						}
					}
				}
			}
		}
	case term.RelSetIdentity:
		s := EvalSet(u, m, u.RelSet(rel))
		for e, c := range s.Events {
			out.put(Pair{e, e}, c)
		}
	default:
		// RelCartesianProduct is rejected before model extraction is ever
		// reached (spec.md 4.4's rule application already refuses it).
	}
	return out
}

// EvalSet evaluates set against m, per spec.md 4.7's operator table.
func EvalSet(u *term.Universe, m *Model, set term.SetID) SatSetValue {
	out := newSetValue()
	switch u.SetOp(set) {
	case term.SetBase:
		name := u.SetName(set)
		for k, c := range m.sets {
			if k.base == name {
				out.put(k.e, c)
			}
		}
	case term.SetEvent:
		out.put(u.SetLabel(set), Cost{})
	case term.SetEmpty:
		// no events
	case term.SetFull:
		for _, e := range m.Events() {
			out.put(e, Cost{})
		}
	case term.SetUnion:
		l := EvalSet(u, m, u.SetLeft(set))
		r := EvalSet(u, m, u.SetRight(set))
		for e, c := range l.Events {
			out.put(e, c)
		}
		for e, c := range r.Events {
			out.put(e, c)
		}
	case term.SetIntersection:
		l := EvalSet(u, m, u.SetLeft(set))
		r := EvalSet(u, m, u.SetRight(set))
		for e, lc := range l.Events {
			if rc, ok := r.Events[e]; ok {
				out.put(e, lc.add(rc))
			}
		}
	case term.SetImage:
		s := EvalSet(u, m, u.SetLeft(set))
		r := EvalRelation(u, m, u.SetRelation(set))
		for e1, sc := range s.Events {
			for p, rc := range r.Pairs {
				if p.E1 == e1 {
					out.put(p.E2, sc.add(rc))
				}
			}
		}
	case term.SetDomain:
		s := EvalSet(u, m, u.SetLeft(set))
		r := EvalRelation(u, m, u.SetRelation(set))
		for e2, sc := range s.Events {
			for p, rc := range r.Pairs {
				if p.E2 == e2 {
					out.put(p.E1, sc.add(rc))
				}
			}
		}
	}
	return out
}

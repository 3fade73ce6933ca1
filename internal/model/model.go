// Package model implements the witness evaluator of spec.md 4.7: a finite
// concrete relational structure built from an open regular-tableau leaf's
// path, saturated under the assumption store's closure rules, and used both
// to re-check a leaf for spuriousness and to render a counter-example.
package model

import (
	"sort"

	"relkat.dev/core/internal/term"
)

// Cost is the per-component saturation cost spec.md 4.7 accumulates on
// every model entry: how many base-relation and id-assumption closure steps
// contributed to deriving it. Unlike satbudget.Budget (a remaining
// allowance that rule application decrements), Cost only ever grows as the
// fixpoint closure adds derived facts, so the two are kept as distinct
// types despite the shared (int,int) shape.
type Cost struct {
	ID, Base int
}

func (c Cost) add(other Cost) Cost {
	return Cost{ID: c.ID + other.ID, Base: c.Base + other.Base}
}

type edgeKey struct {
	e1, e2 term.EventLabel
	base   term.Name
}

type setKey struct {
	e    term.EventLabel
	base term.Name
}

// Model is the finite witness structure spec.md 4.7 describes: a set of
// events partitioned into equivalence classes by the equalities seen along
// a counter-example path, plus base-edge and base-set-membership facts
// indexed by class representative.
type Model struct {
	u *term.Universe

	parent map[term.EventLabel]term.EventLabel
	events map[term.EventLabel]bool

	edges map[edgeKey]Cost
	sets  map[setKey]Cost
}

// New returns an empty Model over u.
func New(u *term.Universe) *Model {
	return &Model{
		u:      u,
		parent: make(map[term.EventLabel]term.EventLabel),
		events: make(map[term.EventLabel]bool),
		edges:  make(map[edgeKey]Cost),
		sets:   make(map[setKey]Cost),
	}
}

func (m *Model) observe(e term.EventLabel) {
	m.events[e] = true
	if _, ok := m.parent[e]; !ok {
		m.parent[e] = e
	}
}

// representative returns the canonical representative of e's equivalence
// class, the smaller label of the two by convention so representatives are
// stable as classes merge.
func (m *Model) representative(e term.EventLabel) term.EventLabel {
	m.observe(e)
	for m.parent[e] != e {
		m.parent[e] = m.parent[m.parent[e]]
		e = m.parent[e]
	}
	return e
}

// Events returns every event the model knows about, sorted.
func (m *Model) Events() []term.EventLabel {
	out := make([]term.EventLabel, 0, len(m.events))
	for e := range m.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AddEdge records a base-edge (e1,e2) in base, at the given cost, keyed by
// the events' current class representatives.
func (m *Model) AddEdge(e1, e2 term.EventLabel, base term.Name, cost Cost) {
	r1, r2 := m.representative(e1), m.representative(e2)
	k := edgeKey{r1, r2, base}
	if existing, ok := m.edges[k]; !ok || costLess(cost, existing) {
		m.edges[k] = cost
	}
}

// AddSetMember records that e is a member of base set base, at cost.
func (m *Model) AddSetMember(e term.EventLabel, base term.Name, cost Cost) {
	r := m.representative(e)
	k := setKey{r, base}
	if existing, ok := m.sets[k]; !ok || costLess(cost, existing) {
		m.sets[k] = cost
	}
}

// AddEquality merges e1 and e2's classes (if not already merged), carrying
// cost, and re-keys every edge/set-membership fact touching either class
// onto the surviving representative, adding cost to each (spec.md 4.7:
// "propagating ... carrying additive saturation costs").
func (m *Model) AddEquality(e1, e2 term.EventLabel, cost Cost) {
	r1, r2 := m.representative(e1), m.representative(e2)
	if r1 == r2 {
		return
	}
	survivor, merged := r1, r2
	if merged < survivor {
		survivor, merged = merged, survivor
	}
	m.parent[merged] = survivor

	for k, c := range m.edges {
		if (k.e1 == survivor || k.e2 == survivor) && k.e1 != merged && k.e2 != merged {
			m.edges[k] = c.add(cost)
		}
	}
	for k, c := range m.sets {
		if k.e == survivor {
			m.sets[k] = c.add(cost)
		}
	}
	for k, c := range m.edges {
		nk := k
		changed := false
		if nk.e1 == merged {
			nk.e1 = survivor
			changed = true
		}
		if nk.e2 == merged {
			nk.e2 = survivor
			changed = true
		}
		if changed {
			delete(m.edges, k)
			nc := c.add(cost)
			if existing, ok := m.edges[nk]; !ok || costLess(nc, existing) {
				m.edges[nk] = nc
			}
		}
	}
	for k, c := range m.sets {
		if k.e == merged {
			delete(m.sets, k)
			nk := setKey{e: survivor, base: k.base}
			nc := c.add(cost)
			if existing, ok := m.sets[nk]; !ok || costLess(nc, existing) {
				m.sets[nk] = nc
			}
		}
	}
}

// HasEdge reports whether (e1,e2) in base currently holds, and its cost.
func (m *Model) HasEdge(e1, e2 term.EventLabel, base term.Name) (Cost, bool) {
	c, ok := m.edges[edgeKey{m.representative(e1), m.representative(e2), base}]
	return c, ok
}

// HasSetMember reports whether e in base currently holds, and its cost.
func (m *Model) HasSetMember(e term.EventLabel, base term.Name) (Cost, bool) {
	c, ok := m.sets[setKey{m.representative(e), base}]
	return c, ok
}

func costLess(a, b Cost) bool {
	if a.ID != b.ID {
		return a.ID < b.ID
	}
	return a.Base < b.Base
}

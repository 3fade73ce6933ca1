package model

import (
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/kr/pretty"

	"relkat.dev/core/internal/term"
)

func TestAddEqualityMergesIncidentFacts(t *testing.T) {
	u := term.New()
	a := u.Intern("a")
	m := New(u)
	m.AddEdge(0, 1, a, Cost{})
	m.AddEquality(1, 2, Cost{ID: 1})

	c, ok := m.HasEdge(0, 2, a)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(c, Cost{ID: 1}))
}

func TestEvalTransitiveClosureReachesThroughChain(t *testing.T) {
	u := term.New()
	a := u.BaseRelation("a")
	m := New(u)
	m.AddEdge(0, 1, u.RelName(a), Cost{})
	m.AddEdge(1, 2, u.RelName(a), Cost{})

	val := EvalRelation(u, m, u.TransitiveClosureOf(a))
	_, ok := val.Pairs[Pair{0, 2}]
	qt.Assert(t, qt.IsTrue(ok))
}

func TestEvalUnionKeepsCheaperCost(t *testing.T) {
	u := term.New()
	a := u.BaseRelation("a")
	m := New(u)
	m.AddEdge(0, 1, u.RelName(a), Cost{Base: 3})

	val := EvalRelation(u, m, u.RelUnionOf(a, u.Identity()))
	_, ok := val.Pairs[Pair{0, 1}]
	qt.Assert(t, qt.IsTrue(ok))

	b := u.BaseRelation("b")
	m.AddEdge(0, 1, u.RelName(b), Cost{Base: 1})
	val = EvalRelation(u, m, u.RelUnionOf(a, b))
	c, ok := val.Pairs[Pair{0, 1}]
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(c, Cost{Base: 1}))
}

// TestEvalUnionIsCommutative pins EvalRelation's union rule's order
// independence: R | S and S | R must evaluate to the same fact set. Uses
// kr/pretty.Diff the way the teacher's protobuf_test.go compares two
// structural renderings, reporting every differing field on failure rather
// than just "not equal".
func TestEvalUnionIsCommutative(t *testing.T) {
	u := term.New()
	a := u.BaseRelation("a")
	b := u.BaseRelation("b")
	m := New(u)
	m.AddEdge(0, 1, u.RelName(a), Cost{Base: 1})
	m.AddEdge(1, 2, u.RelName(b), Cost{Base: 2})

	lhs := EvalRelation(u, m, u.RelUnionOf(a, b))
	rhs := EvalRelation(u, m, u.RelUnionOf(b, a))
	if diff := pretty.Diff(lhs.Pairs, rhs.Pairs); len(diff) > 0 {
		t.Fatalf("union not commutative:\n%s", diff)
	}
}

package literal

import (
	"testing"

	"github.com/go-quicktest/qt"

	"relkat.dev/core/internal/satbudget"
	"relkat.dev/core/internal/term"
)

func TestComplementClosesCube(t *testing.T) {
	u := term.New()
	a := u.Intern("a")

	pos := Edge(0, 1, a, false, satbudget.Budget{})
	neg := Edge(0, 1, a, true, satbudget.Budget{ID: 2, Base: 2})

	qt.Assert(t, qt.IsTrue(pos.IsComplementOf(u, neg)))

	c := NewCube(u, []Literal{pos, neg})
	qt.Assert(t, qt.IsTrue(c.IsClosed()))
}

func TestCubeDedupAndOrder(t *testing.T) {
	u := term.New()
	a := u.Intern("a")
	b := u.Intern("b")

	l1 := Edge(0, 1, a, false, satbudget.Budget{})
	l2 := Edge(0, 1, a, false, satbudget.Budget{})
	l3 := Edge(1, 2, b, false, satbudget.Budget{})

	c := NewCube(u, []Literal{l3, l1, l2})
	qt.Assert(t, qt.Equals(c.Len(), 2))
	qt.Assert(t, qt.Equals(c.Literals()[0].Base(), a))
	qt.Assert(t, qt.Equals(c.Literals()[1].Base(), b))
}

func TestEqualityNormalOnlyWhenNegatedDistinct(t *testing.T) {
	u := term.New()
	same := Equality(0, 0, true)
	qt.Assert(t, qt.IsFalse(same.IsNormal(u)))

	distinct := Equality(0, 1, true)
	qt.Assert(t, qt.IsTrue(distinct.IsNormal(u)))

	positive := Equality(0, 1, false)
	qt.Assert(t, qt.IsFalse(positive.IsNormal(u)))
}

func TestNonEmptyNormalFollowsSetFacts(t *testing.T) {
	u := term.New()
	e := u.Event(0)
	lit := NonEmpty(e, false, nil)
	qt.Assert(t, qt.IsTrue(lit.IsNormal(u)))
}

func TestSubstituteRewritesEventFields(t *testing.T) {
	u := term.New()
	a := u.Intern("a")
	lit := Edge(0, 1, a, false, satbudget.Budget{})
	out := lit.Substitute(u, 0, 5)
	ev := out.Events()
	qt.Assert(t, qt.Equals(ev[0], term.EventLabel(5)))
	qt.Assert(t, qt.Equals(ev[1], term.EventLabel(1)))
}

func TestDNFOrDropsClosedDisjuncts(t *testing.T) {
	u := term.New()
	a := u.Intern("a")
	open := NewCube(u, []Literal{Edge(0, 1, a, false, satbudget.Budget{})})
	closed := NewCube(u, []Literal{Edge(0, 1, a, false, satbudget.Budget{}), Edge(0, 1, a, true, satbudget.Budget{})})

	d := DNF{Cubes: []Cube{open}}.Or(DNF{Cubes: []Cube{closed}})
	qt.Assert(t, qt.HasLen(d.Cubes, 1))
	qt.Assert(t, qt.IsFalse(d.IsUnsatisfiable()))
}

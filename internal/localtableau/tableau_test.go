package localtableau

import (
	"testing"

	"github.com/go-quicktest/qt"

	"relkat.dev/core/internal/literal"
	"relkat.dev/core/internal/rules"
	"relkat.dev/core/internal/satbudget"
	"relkat.dev/core/internal/term"
)

func TestImmediateContradictionCloses(t *testing.T) {
	u := term.New()
	a := u.Intern("a")
	pos := literal.Edge(0, 1, a, false, satbudget.Budget{})
	neg := literal.Edge(0, 1, a, true, satbudget.Budget{ID: 1, Base: 1})

	tb := New(u, rules.Config{}, []literal.Literal{pos, neg})
	tb.Run()
	dnf := tb.ExtractDNF()
	qt.Assert(t, qt.IsTrue(dnf.IsUnsatisfiable()))
}

func TestSetUnionOfEventsProvesTriviallySatisfied(t *testing.T) {
	// The union splits into one branch per disjunct; each event disjunct
	// reduces straight to TOP, so both branches stay open and each yields
	// a cube.
	u := term.New()
	e0, e1 := u.Event(0), u.Event(1)
	un := u.SetUnionOf(e0, e1)
	goal := literal.NonEmpty(un, false, nil)

	tb := New(u, rules.Config{}, []literal.Literal{goal})
	tb.Run()
	dnf := tb.ExtractDNF()
	qt.Assert(t, qt.IsFalse(dnf.IsUnsatisfiable()))
	qt.Assert(t, qt.HasLen(dnf.Cubes, 2))
}

func TestSetUnionOfBaseSetAndEventProducesMembership(t *testing.T) {
	// The union splits into two branches: the baseSet branch emits a
	// concrete membership literal and comes first, while the event branch
	// reduces to TOP and stays open, so two cubes come out and the first
	// carries the membership literal.
	u := term.New()
	b := u.BaseSet("B")
	e := u.Event(0)
	un := u.SetUnionOf(b, e)
	goal := literal.NonEmpty(un, false, nil)

	tb := New(u, rules.Config{}, []literal.Literal{goal})
	tb.Run()
	dnf := tb.ExtractDNF()
	qt.Assert(t, qt.HasLen(dnf.Cubes, 2))

	found := false
	for _, l := range dnf.Cubes[0].Literals() {
		if l.Kind() == literal.KindSet {
			found = true
		}
	}
	qt.Assert(t, qt.IsTrue(found))
}

func TestAtomicIntersectionProducesNormalEdgeLiteral(t *testing.T) {
	u := term.New()
	e0, e1 := u.Event(0), u.Event(1)
	a := u.BaseRelation("a")
	img := u.Image(e0, a)
	s := u.SetIntersectionOf(e1, img)
	goal := literal.NonEmpty(s, false, nil)

	tb := New(u, rules.Config{}, []literal.Literal{goal})
	tb.Run()
	dnf := tb.ExtractDNF()
	qt.Assert(t, qt.HasLen(dnf.Cubes, 1))
	qt.Assert(t, qt.IsTrue(dnf.Cubes[0].IsNormal(u)))
}

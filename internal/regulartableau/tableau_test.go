package regulartableau

import (
	"testing"

	"github.com/go-quicktest/qt"

	"relkat.dev/core/internal/literal"
	"relkat.dev/core/internal/rules"
	"relkat.dev/core/internal/satbudget"
	"relkat.dev/core/internal/term"
)

func TestImmediateContradictionIsProvable(t *testing.T) {
	u := term.New()
	a := u.Intern("a")
	pos := literal.Edge(0, 1, a, false, satbudget.Budget{})
	neg := literal.Edge(0, 1, a, true, satbudget.Budget{ID: 1, Base: 1})

	tb := New(u, rules.Config{}, []literal.Literal{pos, neg})
	res := tb.Run()
	qt.Assert(t, qt.IsTrue(res.Provable))
}

func TestBarePositiveEdgeIsGenuinelyOpen(t *testing.T) {
	// A single positive edge literal has a trivial witness (the edge
	// itself), so it can never be refuted: the regular tableau should
	// report a non-spurious open leaf rather than looping forever.
	u := term.New()
	a := u.Intern("a")
	pos := literal.Edge(0, 1, a, false, satbudget.Budget{})

	tb := New(u, rules.Config{}, []literal.Literal{pos})
	res := tb.Run()
	qt.Assert(t, qt.IsFalse(res.Provable))
	qt.Assert(t, qt.IsNotNil(res.Leaf))
}

func TestCanonicalizeIdentifiesIsomorphicCubes(t *testing.T) {
	u := term.New()
	a := u.Intern("a")

	c1 := literal.NewCube(u, []literal.Literal{
		literal.Edge(3, 7, a, false, satbudget.Budget{}),
	})
	c2 := literal.NewCube(u, []literal.Literal{
		literal.Edge(10, 20, a, false, satbudget.Budget{}),
	})

	s := newStore(u)
	n1, _ := s.canonicalize(c1)
	n2, _ := s.canonicalize(c2)
	qt.Assert(t, qt.Equals(n1, n2))
}

func TestCanonicalizeDistinguishesDifferentShapes(t *testing.T) {
	u := term.New()
	a := u.Intern("a")
	b := u.Intern("b")

	c1 := literal.NewCube(u, []literal.Literal{
		literal.Edge(0, 1, a, false, satbudget.Budget{}),
	})
	c2 := literal.NewCube(u, []literal.Literal{
		literal.Edge(0, 1, b, false, satbudget.Budget{}),
	})

	s := newStore(u)
	n1, _ := s.canonicalize(c1)
	n2, _ := s.canonicalize(c2)
	qt.Assert(t, qt.Not(qt.Equals(n1, n2)))
}

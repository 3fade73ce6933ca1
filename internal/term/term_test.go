package term

import (
	"testing"

	"github.com/go-quicktest/qt"

	"relkat.dev/core/internal/rename"
)

func TestHashConsIdentity(t *testing.T) {
	u := New()

	a1 := u.BaseRelation("a")
	a2 := u.BaseRelation("a")
	qt.Assert(t, qt.Equals(a1, a2))

	b := u.BaseRelation("b")
	qt.Assert(t, qt.Not(qt.Equals(a1, b)))

	u1 := u.RelUnionOf(a1, b)
	u2 := u.RelUnionOf(a2, b)
	qt.Assert(t, qt.Equals(u1, u2))

	// Different operand order is a different term: union is not
	// canonicalized by the factory, only by the tableau's rules.
	u3 := u.RelUnionOf(b, a1)
	qt.Assert(t, qt.Not(qt.Equals(u1, u3)))
}

func TestEventFactsAreNormal(t *testing.T) {
	u := New()
	e := u.Event(3)
	f := u.SetFacts(e)
	qt.Assert(t, qt.IsTrue(f.IsNormal))
	qt.Assert(t, qt.DeepEquals(f.Events, []EventLabel{3}))
	qt.Assert(t, qt.DeepEquals(f.NormalEvents, []EventLabel{3}))
}

func TestImageOfEventAndBaseRelationIsNormal(t *testing.T) {
	u := New()
	e := u.Event(0)
	a := u.BaseRelation("a")
	img := u.Image(e, a)
	f := u.SetFacts(img)
	qt.Assert(t, qt.IsTrue(f.IsNormal))
	qt.Assert(t, qt.HasLen(f.EventBasePairs, 1))
	qt.Assert(t, qt.Equals(f.EventBasePairs[0].Event, EventLabel(0)))
	qt.Assert(t, qt.Equals(f.EventBasePairs[0].Side, Image))
}

func TestUnionOfEventsIsNormal(t *testing.T) {
	u := New()
	e0, e1 := u.Event(0), u.Event(1)
	un := u.SetUnionOf(e0, e1)
	qt.Assert(t, qt.IsTrue(u.SetFacts(un).IsNormal))

	a := u.BaseSet("A")
	un2 := u.SetUnionOf(a, e1)
	qt.Assert(t, qt.IsFalse(u.SetFacts(un2).IsNormal))
}

func TestCartesianProductIsFlagged(t *testing.T) {
	u := New()
	a, b := u.BaseSet("A"), u.BaseSet("B")
	cp := u.CartesianProduct(a, b)
	qt.Assert(t, qt.IsTrue(u.RelFacts(cp).HasCartesianProduct))
	qt.Assert(t, qt.Equals(u.CartesianLeft(cp), a))
	qt.Assert(t, qt.Equals(u.CartesianRight(cp), b))
}

func TestRenameSetRewritesEvents(t *testing.T) {
	u := New()
	e0 := u.Event(0)
	a := u.BaseRelation("a")
	img := u.Image(e0, a)

	r := rename.New([]rename.Pair{{From: 0, To: 1}})
	out := u.RenameSet(img, r)
	qt.Assert(t, qt.Equals(u.SetOp(out), SetImage))
	qt.Assert(t, qt.Equals(u.SetLabel(u.SetLeft(out)), EventLabel(1)))
}

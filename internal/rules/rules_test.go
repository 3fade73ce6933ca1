package rules

import (
	"testing"

	"github.com/go-quicktest/qt"

	"relkat.dev/core/internal/literal"
	"relkat.dev/core/internal/satbudget"
	"relkat.dev/core/internal/term"
)

func TestUnionRulePositiveSplitsIntoTwoCubes(t *testing.T) {
	u := term.New()
	e0, e1 := u.Event(0), u.Event(1)
	un := u.SetUnionOf(e0, e1)
	lit := literal.NonEmpty(un, false, nil)

	res := Apply(u, Config{}, lit)
	qt.Assert(t, qt.IsTrue(res.Fired))
	qt.Assert(t, qt.HasLen(res.DNF.Cubes, 2))
}

func TestUnionRuleNegatedOneCube(t *testing.T) {
	u := term.New()
	e0, e1 := u.Event(0), u.Event(1)
	un := u.SetUnionOf(e0, e1)
	lit := literal.NonEmpty(un, true, nil)

	res := Apply(u, Config{}, lit)
	qt.Assert(t, qt.IsTrue(res.Fired))
	qt.Assert(t, qt.HasLen(res.DNF.Cubes, 1))
	qt.Assert(t, qt.Equals(res.DNF.Cubes[0].Len(), 2))
}

func TestBaseSetPositiveEmitsMembership(t *testing.T) {
	u := term.New()
	b := u.BaseSet("B")
	lit := literal.NonEmpty(b, false, nil)

	res := Apply(u, Config{}, lit)
	qt.Assert(t, qt.IsTrue(res.Fired))
	qt.Assert(t, qt.Equals(res.DNF.Cubes[0].Literals()[0].Kind(), literal.KindSet))
}

func TestIdentityCollapsesToEvent(t *testing.T) {
	u := term.New()
	e0 := u.Event(0)
	id := u.Identity()
	img := u.Image(e0, id)
	lit := literal.NonEmpty(img, false, nil)

	res := Apply(u, Config{}, lit)
	qt.Assert(t, qt.IsTrue(res.Fired))
	out := res.DNF.Cubes[0].Literals()[0]
	qt.Assert(t, qt.Equals(out.Kind(), literal.KindNonEmptiness))
	qt.Assert(t, qt.Equals(out.SetTerm().Set, e0))
}

func TestAtomicEdgeIntersection(t *testing.T) {
	u := term.New()
	e0, e1 := u.Event(0), u.Event(1)
	a := u.BaseRelation("a")
	img := u.Image(e0, a)
	s := u.SetIntersectionOf(e1, img)
	lit := literal.NonEmpty(s, false, nil)

	res := Apply(u, Config{}, lit)
	qt.Assert(t, qt.IsTrue(res.Fired))
	out := res.DNF.Cubes[0].Literals()[0]
	qt.Assert(t, qt.Equals(out.Kind(), literal.KindEdge))
}

func TestBaseRelationPositiveDeferred(t *testing.T) {
	u := term.New()
	e0 := u.Event(0)
	a := u.BaseRelation("a")
	img := u.Image(e0, a)
	lit := literal.NonEmpty(img, false, nil)

	res := Apply(u, Config{}, lit)
	qt.Assert(t, qt.IsFalse(res.Fired))
}

type fakeAssumptions struct {
	boundRel term.RelID
	hasRel   bool
	masterID term.RelID
}

func (f fakeAssumptions) BaseRelationBound(name term.Name) (term.RelID, bool) {
	return f.boundRel, f.hasRel
}
func (f fakeAssumptions) BaseSetBound(name term.Name) (term.SetID, bool) { return 0, false }
func (f fakeAssumptions) MasterIdRelation() term.RelID                  { return f.masterID }

func TestSaturationSubstitutesBoundRelation(t *testing.T) {
	u := term.New()
	r := u.BaseRelation("R")
	a := u.Intern("a")
	lit := literal.Edge(0, 1, a, true, Config{SaturationBound: 1}.DefaultBudget())

	cfg := Config{SaturationBound: 1, Assumptions: fakeAssumptions{boundRel: r, hasRel: true}}
	res := Apply(u, cfg, lit)
	qt.Assert(t, qt.IsTrue(res.Fired))
	out := res.DNF.Cubes[0].Literals()[0]
	qt.Assert(t, qt.Equals(out.Kind(), literal.KindNonEmptiness))
}

// TestSaturationIdBudgetComposesMasterIdDirectly guards spec.md 4.4's id
// saturation rule: e;b rewrites to (R*;b), composing the master id relation
// directly rather than wrapping it in a transitive closure (that would
// intern a distinct RelTransitiveClosure term, subject to its own
// structural rewrite rule, which the saturation step never intends).
func TestSaturationIdBudgetComposesMasterIdDirectly(t *testing.T) {
	u := term.New()
	masterID := u.BaseRelation("idStar")
	a := u.Intern("a")
	budget := satbudget.Budget{Base: 0, ID: 1}
	lit := literal.Edge(0, 1, a, true, budget)

	cfg := Config{SaturationBound: 1, Assumptions: fakeAssumptions{masterID: masterID}}
	res := Apply(u, cfg, lit)
	qt.Assert(t, qt.IsTrue(res.Fired))
	out := res.DNF.Cubes[0].Literals()[0]
	qt.Assert(t, qt.Equals(out.Kind(), literal.KindNonEmptiness))

	b := u.BaseRelation(u.NameString(a))
	wantRel := u.Compose(masterID, b)
	wantSet := edgeAsSet(u, 0, 1, wantRel)
	qt.Assert(t, qt.Equals(out.SetTerm().Set, wantSet))
}

package rules

import (
	"testing"

	"github.com/go-quicktest/qt"

	"relkat.dev/core/internal/literal"
	"relkat.dev/core/internal/term"
)

// TestPreprocessCollapsesSetIdentityContext exercises spec.md 4.8's
// redundancy-elimination pass end to end: [S];a is a sound narrowing of a
// (id_S on the left only restricts which events a may start from), so once
// the positive literal establishes that context, the negated literal
// should collapse its occurrence of the context back to the base
// relation.
func TestPreprocessCollapsesSetIdentityContext(t *testing.T) {
	u := term.New()
	e0, e1 := u.Event(0), u.Event(1)
	a := u.BaseRelation("a")
	s := u.BaseSet("S")
	idS := u.SetIdentity(s)
	ctx := u.Compose(idS, a)

	pos := literal.NonEmpty(u.Image(e0, ctx), false, nil)
	neg := literal.NonEmpty(u.Image(e1, ctx), true, nil)
	cube := literal.NewCube(u, []literal.Literal{pos, neg})

	out := Preprocess(u, cube)
	qt.Assert(t, qt.IsFalse(out.Equal(u, cube)))

	want := literal.NonEmpty(u.Image(e1, a), true, nil)
	found := false
	for _, l := range out.Literals() {
		if l.Kind() == literal.KindNonEmptiness && l.Negated() && l.SetTerm().Set == want.SetTerm().Set {
			found = true
		}
	}
	qt.Assert(t, qt.IsTrue(found))
}

// TestPreprocessLeavesCubeWithoutContextsUnchanged guards the common case:
// no positive setNonEmptiness literal establishes any conjunctive context,
// so Preprocess must not touch the cube at all.
func TestPreprocessLeavesCubeWithoutContextsUnchanged(t *testing.T) {
	u := term.New()
	e0, e1 := u.Event(0), u.Event(1)
	a := u.BaseRelation("a")

	neg := literal.NonEmpty(u.Image(e0, a), true, nil)
	pos := literal.NonEmpty(e1, false, nil)
	cube := literal.NewCube(u, []literal.Literal{pos, neg})

	out := Preprocess(u, cube)
	qt.Assert(t, qt.IsTrue(out.Equal(u, cube)))
}

// TestSetSizeCountsNodes pins setSize's measure directly, since
// eliminateRedundantContexts' acceptance criterion depends on it.
func TestSetSizeCountsNodes(t *testing.T) {
	u := term.New()
	e0 := u.Event(0)
	a := u.BaseRelation("a")
	s := u.BaseSet("S")
	idS := u.SetIdentity(s)
	ctx := u.Compose(idS, a)

	small := u.Image(e0, a)
	big := u.Image(e0, ctx)
	qt.Assert(t, qt.IsTrue(setSize(u, small) < setSize(u, big)))
}

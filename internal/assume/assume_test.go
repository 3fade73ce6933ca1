package assume

import (
	"testing"

	"github.com/go-quicktest/qt"

	"relkat.dev/core/internal/term"
)

func TestMasterIdRelationUnionsAssumptions(t *testing.T) {
	u := term.New()
	s := New(u)
	a := u.BaseRelation("a")
	b := u.BaseRelation("b")
	s.AssumeID(a)
	s.AssumeID(b)

	got := s.MasterIdRelation()
	want := u.RelUnionOf(u.RelUnionOf(u.EmptyRelation(), a), b)
	qt.Assert(t, qt.Equals(got, want))
}

func TestBaseRelationBoundLookup(t *testing.T) {
	u := term.New()
	s := New(u)
	name := u.Intern("b")
	r := u.BaseRelation("R")
	s.AssumeBaseRelation(name, r)

	got, ok := s.BaseRelationBound(name)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(got, r))

	_, ok2 := s.BaseRelationBound(u.Intern("other"))
	qt.Assert(t, qt.IsFalse(ok2))
}

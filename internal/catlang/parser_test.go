package catlang

import (
	"testing"

	"github.com/go-quicktest/qt"

	"relkat.dev/core/internal/assume"
	"relkat.dev/core/internal/diag"
	"relkat.dev/core/internal/term"
)

func TestParseGoalStatement(t *testing.T) {
	u := term.New()
	store := assume.New(u)
	prog, err := Parse(u, store, "test.cat", []byte(`goal a;b <= c | d`))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(prog.Goals, 1))
	qt.Assert(t, qt.Equals(prog.Goals[0].Kind, "goal"))
}

func TestAxiomsDesugarToEmptyRightHandSide(t *testing.T) {
	u := term.New()
	store := assume.New(u)
	prog, err := Parse(u, store, "test.cat", []byte("irreflexive po\nacyclic po | rf\n"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(prog.Goals, 2))
	for _, g := range prog.Goals {
		qt.Assert(t, qt.Equals(g.Right, u.EmptyRelation()))
	}
}

func TestLetBindingIsVisibleToLaterStatements(t *testing.T) {
	u := term.New()
	store := assume.New(u)
	prog, err := Parse(u, store, "test.cat", []byte(
		"let relation r = a | b\ngoal r <= r\n"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(prog.Goals, 1))
	expect := u.RelUnionOf(u.BaseRelation("a"), u.BaseRelation("b"))
	qt.Assert(t, qt.Equals(prog.Goals[0].Left, expect))
}

func TestAssumeBaseRelationPopulatesStore(t *testing.T) {
	u := term.New()
	store := assume.New(u)
	_, err := Parse(u, store, "test.cat", []byte("assume base a = b\n"))
	qt.Assert(t, qt.IsNil(err))
	bound, ok := store.BaseRelationBound(u.Intern("a"))
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(bound, u.BaseRelation("b")))
}

func TestMalformedStatementReturnsDiagError(t *testing.T) {
	u := term.New()
	store := assume.New(u)
	_, err := Parse(u, store, "test.cat", []byte("goal a"))
	var de *diag.Error
	qt.Assert(t, qt.ErrorAs(err, &de))
}

package main

import (
	"testing"

	"github.com/go-quicktest/qt"

	"relkat.dev/core/internal/regulartableau"
	"relkat.dev/core/internal/session"
)

func TestGoalLabelGoal(t *testing.T) {
	s := session.New(session.DefaultSaturationBound)
	prog, err := s.LoadLine("goal a <= b")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(prog.Goals, 1))
	qt.Assert(t, qt.Equals(goalLabel(s, prog.Goals[0]), "a <= b"))
}

func TestGoalLabelAxiom(t *testing.T) {
	s := session.New(session.DefaultSaturationBound)
	prog, err := s.LoadLine("acyclic po")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(prog.Goals, 1))
	qt.Assert(t, qt.Equals(goalLabel(s, prog.Goals[0]), "acyclic"))
}

func TestPathNodesPreservesOrder(t *testing.T) {
	n1, n2 := &regulartableau.Node{}, &regulartableau.Node{}
	path := []regulartableau.PathStep{{Node: n1}, {Node: n2}}
	out := pathNodes(path)
	qt.Assert(t, qt.HasLen(out, 2))
	qt.Assert(t, qt.Equals(out[0], n1))
	qt.Assert(t, qt.Equals(out[1], n2))
}

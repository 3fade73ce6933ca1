// Package session wires one run's Universe, assumption Store, and rules
// Config together, the way the teacher's cuecontext/runtime pair separates
// "the shared index" from "the per-evaluation context" (spec.md 5's
// [EXPANDED] note). cmd/relkat constructs exactly one Session per CLI
// invocation.
package session

import (
	"relkat.dev/core/internal/assume"
	"relkat.dev/core/internal/catlang"
	"relkat.dev/core/internal/literal"
	"relkat.dev/core/internal/localtableau"
	"relkat.dev/core/internal/model"
	"relkat.dev/core/internal/regulartableau"
	"relkat.dev/core/internal/rules"
	"relkat.dev/core/internal/term"
)

// Session owns one decision-procedure run's mutable state.
type Session struct {
	U     *term.Universe
	Store *assume.Store
	Cfg   rules.Config
}

// DefaultSaturationBound is spec.md 4.4's "process-wide configurable
// non-negative integer, default 1". cmd/relkat exposes it as a --saturation
// flag rather than a RELKAT_DEBUG toggle, since envflag only carries
// booleans (package envflag).
const DefaultSaturationBound = 1

// New builds a Session with a fresh Universe and Store, applying the given
// saturation bound (spec.md 4.4).
func New(saturationBound int) *Session {
	u := term.New()
	store := assume.New(u)
	cfg := rules.Config{Assumptions: store, SaturationBound: saturationBound}
	return &Session{U: u, Store: store, Cfg: cfg}
}

// LoadFile parses a proof file's declarations, applying any assume
// statements to s.Store as a side effect.
func (s *Session) LoadFile(path string, src []byte) (*catlang.Program, error) {
	return catlang.Parse(s.U, s.Store, path, src)
}

// LoadLine parses one REPL-style statement.
func (s *Session) LoadLine(line string) (*catlang.Program, error) {
	return catlang.ParseLine(s.U, s.Store, line)
}

// Outcome is the result of deciding one catlang.Goal.
type Outcome struct {
	Goal     catlang.Goal
	Provable bool

	// The following are populated only when Provable is false and the
	// regular tableau was used (not the "infinite" local-only mode).
	Regular *regulartableau.Tableau
	Leaf    *regulartableau.Node
	Path    []regulartableau.PathStep
	Model   *model.Model

	// Local is populated when the "infinite" debugging mode ran instead
	// (spec.md 6's second positional argument).
	Local *localtableau.Tableau
}

// negatedGoalLiterals builds the starting goal for deciding "L <= R": the
// inclusion holds iff no pair (e1,e2) is in L but not in R, so the proof
// search starts from two fresh witness events and the negation of that
// statement — "(e1,e2) in L" positively, "(e1,e2) in R" negatively —
// rendered in setNonEmptiness form the same way saturation's edgeAsSet
// helper does (package rules): e2 in the image of e1 under the relation.
func negatedGoalLiterals(u *term.Universe, g catlang.Goal) []literal.Literal {
	e1 := u.Event(u.FreshEvent())
	e2 := u.Event(u.FreshEvent())
	inLeft := u.SetIntersectionOf(e2, u.Image(e1, g.Left))
	inRight := u.SetIntersectionOf(e2, u.Image(e1, g.Right))
	return []literal.Literal{
		literal.NonEmpty(inLeft, false, nil),
		literal.NonEmpty(inRight, true, nil),
	}
}

// Decide runs the regular tableau over g's negated form and reports
// whether the inclusion holds.
func (s *Session) Decide(g catlang.Goal) (Outcome, error) {
	goal := negatedGoalLiterals(s.U, g)
	rt := regulartableau.New(s.U, s.Cfg, goal)
	res := rt.Run()
	out := Outcome{Goal: g, Provable: res.Provable, Regular: rt}
	if !res.Provable {
		out.Leaf = res.Leaf
		out.Path = res.Path
		lits := rt.PathLiterals(res.Leaf)
		m := model.Build(s.U, lits)
		model.Saturate(s.U, s.Store, m)
		out.Model = m
	}
	return out, nil
}

// DecideLocal runs the plain local tableau instead of the regular tableau
// (spec.md 6's "infinite" debugging mode): no subsumption, no termination
// guarantee on genuinely cyclic goals, useful only for inspecting the raw
// unrolling.
func (s *Session) DecideLocal(g catlang.Goal) Outcome {
	goal := negatedGoalLiterals(s.U, g)
	lt := localtableau.New(s.U, s.Cfg, goal)
	lt.Run()
	dnf := lt.ExtractDNF()
	return Outcome{Goal: g, Provable: dnf.IsUnsatisfiable(), Local: lt}
}

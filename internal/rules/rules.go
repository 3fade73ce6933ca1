// Package rules implements the rewrite-rule schema of spec.md 4.4: one
// rule application rewrites a single literal into a DNF of new literals
// (some possibly still reducible), which the local tableau (package
// localtableau) appends to its worklist and reduces to a fixpoint.
package rules

import (
	"relkat.dev/core/internal/literal"
	"relkat.dev/core/internal/satbudget"
	"relkat.dev/core/internal/term"
)

// Assumptions is the subset of the assumption store (package assume) the
// rule engine needs: saturation looks up bounds on base relations/sets and
// the master identity relation, never the full assumption surface, so the
// dependency runs this way instead of rules importing assume directly.
type Assumptions interface {
	BaseRelationBound(name term.Name) (term.RelID, bool)
	BaseSetBound(name term.Name) (term.SetID, bool)
	MasterIdRelation() term.RelID
}

// Config bounds the saturation rules (spec.md 4.4's "process-wide
// configurable non-negative integer, default 1").
type Config struct {
	SaturationBound int
	Assumptions     Assumptions
}

// DefaultBudget returns the initial saturation budget a freshly-appended
// negated literal is given.
func (c Config) DefaultBudget() satbudget.Budget {
	return satbudget.Budget{ID: c.SaturationBound, Base: c.SaturationBound}
}

// Result reports the outcome of one Apply call: Fired is false when the
// literal has no applicable structural or saturation rule at all (it is
// either already normal, or is a deferred case the caller handles
// elsewhere, e.g. positive baseRelation, which only the modal-unrolling
// step of the regular tableau rewrites). Unrolled marks that the fired
// rule was the positive transitiveClosure rule, so the caller must record
// the produced node as this literal's unrolling child (spec.md 4.5).
type Result struct {
	DNF      literal.DNF
	Fired    bool
	Unrolled bool
}

func one(c literal.Cube) literal.DNF { return literal.DNF{Cubes: []literal.Cube{c}} }

func mkCube(u *term.Universe, lits ...literal.Literal) literal.Cube {
	return literal.NewCube(u, lits)
}

// satbudgetZero is the budget attached to positive edge/set literals,
// which never saturate (saturation is negative-only per spec.md 4.4).
func satbudgetZero() satbudget.Budget { return satbudget.Budget{} }

// Apply rewrites lit by exactly one matching rule. Most rules recurse only
// one level: the literals they produce are handed back to the worklist and
// re-examined, rather than fully normalized inline, mirroring the
// incremental applyRule()/appendBranch() loop of spec.md 4.5.
func Apply(u *term.Universe, cfg Config, lit literal.Literal) Result {
	switch lit.Kind() {
	case literal.KindNonEmptiness:
		return applyNonEmptiness(u, cfg, lit)
	case literal.KindEdge, literal.KindSet, literal.KindEquality:
		return applySaturation(u, cfg, lit)
	default:
		return Result{}
	}
}

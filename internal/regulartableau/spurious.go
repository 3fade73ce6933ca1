package regulartableau

import (
	"relkat.dev/core/internal/literal"
	"relkat.dev/core/internal/localtableau"
	"relkat.dev/core/internal/rename"
	"relkat.dev/core/internal/term"
)

// pathPositiveLiterals collects the positive literals along leaf's
// reachability-tree path, each renamed from its owning ancestor's
// namespace into leaf's own namespace by composing the edge renamings
// walked on the way up. This stands in for the full Model/AnnotatedValue
// evaluation of spec.md 4.7 (package model) for the purpose of the
// spurious-leaf check itself; model construction for a genuine
// counter-example is the fuller evaluator in package model.
func (t *Tableau) pathPositiveLiterals(leaf *Node) []literal.Literal {
	var lits []literal.Literal
	for _, l := range leaf.Cube.Literals() {
		if !l.Negated() {
			lits = append(lits, l)
		}
	}
	m := rename.Empty
	cur := leaf
	for {
		parent := cur.reachabilityTreeParent
		if parent == nil || parent == cur {
			break
		}
		e := cur.in[parent]
		m = e.ren.ComposeTotal(m)
		for _, l := range parent.Cube.Literals() {
			if !l.Negated() {
				lits = append(lits, l.Rename(t.u, m))
			}
		}
		cur = parent
	}
	return lits
}

// isSpurious implements spec.md 4.6: combine the path-derived model
// literals with the negated literals of the root cube and check local
// unsatisfiability via a fresh local tableau.
func (t *Tableau) isSpurious(root, leaf *Node) bool {
	goal := t.pathPositiveLiterals(leaf)
	for _, l := range root.Cube.Literals() {
		if l.Negated() {
			goal = append(goal, l)
		}
	}
	lt := localtableau.New(t.u, t.cfg, goal)
	lt.Run()
	return lt.ExtractDNF().IsUnsatisfiable()
}

// repair implements the lazy inconsistency-repair pass of spec.md 4.6,
// simplified to the single reachability-tree path rather than every path
// from leaf to every root (see DESIGN.md): for each (parent, child) edge
// on the path, check whether the child's cube, renamed back into parent's
// namespace, contributes literals parent doesn't already have; if so,
// install an epsilon child capturing parent's cube conjoined with those new
// literals, and drop the stale regular edge.
func (t *Tableau) repair(leaf *Node) {
	cur := leaf
	repaired := false
	for {
		parent := cur.reachabilityTreeParent
		if parent == nil || parent == cur {
			break
		}
		e := cur.in[parent]
		if !parent.fixedInconsistent[cur] {
			inv := e.ren.Invert()
			var fresh []literal.Literal
			for _, l := range cur.Cube.Literals() {
				renamed := l.Rename(t.u, inv)
				if !containsLiteral(t.u, parent.Cube, renamed) {
					fresh = append(fresh, renamed)
				}
			}
			if len(fresh) > 0 {
				goal := append(append([]literal.Literal{}, parent.Cube.Literals()...), fresh...)
				lt := localtableau.New(t.u, t.cfg, goal)
				lt.Run()
				dnf := lt.ExtractDNF()
				for _, c := range dnf.Cubes {
					if c.IsClosed() {
						continue
					}
					child, ren := t.store.canonicalize(c)
					freshNodes := t.store.addEpsilonEdge(parent, child, ren)
					t.stack = append(t.stack, freshNodes...)
					if child.IsLeaf() {
						t.stack = append(t.stack, child)
					}
				}
				stillReachable := t.store.removeRegularEdge(parent, cur, t.roots)
				t.stack = append(t.stack, stillReachable...)
				parent.fixedInconsistent[cur] = true
				repaired = true
			}
		}
		cur = parent
	}
	if !repaired {
		leaf.closed = true
	}
}

// containsLiteral reports whether c already has a literal equal to l.
func containsLiteral(u *term.Universe, c literal.Cube, l literal.Literal) bool {
	for _, existing := range c.Literals() {
		if literal.Compare(u, existing, l) == 0 {
			return true
		}
	}
	return false
}

package regulartableau

import (
	"relkat.dev/core/internal/literal"
	"relkat.dev/core/internal/localtableau"
	"relkat.dev/core/internal/rename"
	"relkat.dev/core/internal/rules"
	"relkat.dev/core/internal/term"
)

// Tableau owns one regular-tableau run: the canonical node store, the root
// set, and the stack of leaves still awaiting expansion (spec.md 4.6).
type Tableau struct {
	u     *term.Universe
	cfg   rules.Config
	store *store
	roots []*Node
	stack []*Node
}

// Result reports whether the goal was proved. When it was not, Leaf and
// Path describe the genuinely open leaf a counter-example can be built
// from (package model).
type Result struct {
	Provable bool
	Leaf     *Node
	Path     []PathStep
}

// PathStep is one (node, renaming-from-parent) hop of a reachability-tree
// path, root-to-leaf order, consumed by package model to build a witness.
type PathStep struct {
	Node *Node
	// RenamingFromParent is the renaming that maps the parent's events onto
	// this node's canonical events (empty/identity for the root).
	RenamingFromParent rename.Renaming
}

// New builds a Tableau and seeds its root set from the DNF that reducing
// goal through a local tableau produces.
func New(u *term.Universe, cfg rules.Config, goal []literal.Literal) *Tableau {
	t := &Tableau{u: u, cfg: cfg, store: newStore(u)}
	lt := localtableau.New(u, cfg, goal)
	lt.Run()
	dnf := lt.ExtractDNF()
	for _, c := range dnf.Cubes {
		if c.IsClosed() {
			continue
		}
		node, _ := t.store.canonicalize(c)
		if node.reachabilityTreeParent == nil {
			node.reachabilityTreeParent = node
			t.roots = append(t.roots, node)
		}
		if node.IsLeaf() {
			t.stack = append(t.stack, node)
		}
	}
	return t
}

// Run drives the expansion loop until either every leaf closes (the goal
// is provable) or a genuinely open leaf is found.
func (t *Tableau) Run() Result {
	for len(t.stack) > 0 {
		leaf := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		if leaf.closed || !leaf.IsLeaf() {
			continue
		}
		if t.tryModalExpand(leaf) {
			continue
		}
		root := t.rootOf(leaf)
		if t.isSpurious(root, leaf) {
			t.repair(leaf)
			continue
		}
		return Result{Provable: false, Leaf: leaf, Path: t.pathTo(leaf)}
	}
	return Result{Provable: true}
}

// Roots returns the tableau's root set, for callers that walk the node
// graph read-only (package dot's .dot writer).
func (t *Tableau) Roots() []*Node { return append([]*Node(nil), t.roots...) }

// AllNodes returns every canonical node the tableau has ever inserted,
// including ones no longer reachable from the root set after a repair's
// edge removal (package dot colors these grey).
func (t *Tableau) AllNodes() []*Node {
	out := make([]*Node, 0, len(t.store.nodes))
	for _, n := range t.store.nodes {
		out = append(out, n)
	}
	return out
}

// PathLiterals returns the positive literals accumulated along leaf's
// reachability-tree path, renamed into leaf's own namespace: the model
// evaluator's (package model) input for building a counter-example.
func (t *Tableau) PathLiterals(leaf *Node) []literal.Literal {
	return t.pathPositiveLiterals(leaf)
}

func (t *Tableau) rootOf(n *Node) *Node {
	cur := n
	for cur.reachabilityTreeParent != nil && cur.reachabilityTreeParent != cur {
		cur = cur.reachabilityTreeParent
	}
	return cur
}

// pathTo returns the reachability-tree path from n's root down to n.
func (t *Tableau) pathTo(n *Node) []PathStep {
	var rev []PathStep
	cur := n
	for {
		parent := cur.reachabilityTreeParent
		if parent == nil || parent == cur {
			rev = append(rev, PathStep{Node: cur, RenamingFromParent: rename.Empty})
			break
		}
		rev = append(rev, PathStep{Node: cur, RenamingFromParent: cur.in[parent].ren})
		cur = parent
	}
	out := make([]PathStep, len(rev))
	for i, s := range rev {
		out[len(rev)-1-i] = s
	}
	return out
}

// minimalActiveEvent returns the smallest event label appearing in cube,
// the "e0" the modal rule and spurious check both key off of.
func minimalActiveEvent(u *term.Universe, c literal.Cube) (term.EventLabel, bool) {
	found := false
	var min term.EventLabel
	for _, l := range c.Literals() {
		for _, ev := range literalEvents(u, l) {
			if !found || ev < min {
				min, found = ev, true
			}
		}
	}
	return min, found
}

// tryModalExpand implements spec.md 4.6's expansion step: strip positive
// edge literals (they only witness the model, not the rule schema), find
// e0, and try exactly one positive modal rule application.
func (t *Tableau) tryModalExpand(leaf *Node) bool {
	e0, ok := minimalActiveEvent(t.u, leaf.Cube)
	if !ok {
		return false
	}
	lits := leaf.Cube.Literals()
	for i, lit := range lits {
		if lit.Kind() == literal.KindEdge && !lit.Negated() {
			continue
		}
		newCube, fired := rules.ModalUnroll(t.u, e0, lit)
		if !fired {
			continue
		}
		goal := make([]literal.Literal, 0, len(lits)-1+newCube.Len())
		for j, l2 := range lits {
			if j != i {
				goal = append(goal, l2)
			}
		}
		goal = append(goal, newCube.Literals()...)

		lt := localtableau.New(t.u, t.cfg, goal)
		lt.Run()
		dnf := lt.ExtractDNF()
		for _, c := range dnf.Cubes {
			if c.IsClosed() {
				continue
			}
			child, ren := t.store.canonicalize(c)
			fresh := t.store.addRegularEdge(leaf, child, ren)
			t.stack = append(t.stack, fresh...)
			if child.IsLeaf() {
				t.stack = append(t.stack, child)
			}
		}
		return true
	}
	return false
}

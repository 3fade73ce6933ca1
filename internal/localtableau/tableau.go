package localtableau

import (
	"relkat.dev/core/internal/literal"
	"relkat.dev/core/internal/rules"
	"relkat.dev/core/internal/term"
)

// Tableau owns one local-tableau run: a root chain built from the starting
// literals and the worklist that drives rule application to a fixpoint.
type Tableau struct {
	u    *term.Universe
	cfg  rules.Config
	root *Node
	wl   worklist
}

// New builds a Tableau whose root branch is the conjunction goal,
// pushing every non-discarded literal onto the worklist.
func New(u *term.Universe, cfg rules.Config, goal []literal.Literal) *Tableau {
	t := &Tableau{u: u, cfg: cfg}
	var parent *Node
	for _, l := range goal {
		if l.IsTop() {
			continue
		}
		n := &Node{parent: parent, lit: l}
		if parent == nil {
			t.root = n
		} else {
			parent.children = append(parent.children, n)
		}
		t.wl.push(u, n)
		parent = n
	}
	if t.root == nil {
		// An all-TOP goal is trivially true; represent it with a single
		// discarded-looking TOP node so Run/ExtractDNF have a leaf to read.
		t.root = &Node{lit: literal.Top()}
	}
	return t
}

// Root returns the tableau's root node, for callers that walk the tree
// read-only (package dot's .dot writer).
func (t *Tableau) Root() *Node { return t.root }

// Run drains the worklist, applying rules until every node is either a
// normal leaf or closed.
func (t *Tableau) Run() {
	for {
		n, ok := t.wl.pop()
		if !ok {
			return
		}
		if n.IsClosed() || !n.IsLeaf() {
			continue
		}
		t.applyRule(n)
	}
}

// applyRule applies the rule schema to n's literal and appends the result
// to n's branch, per spec.md 4.5.
func (t *Tableau) applyRule(n *Node) {
	res := rules.Apply(t.u, t.cfg, n.lit)
	if !res.Fired {
		return
	}
	heads := t.appendBranch(n, res.DNF)
	if res.Unrolled {
		for _, h := range heads {
			h.lastUnrollingParent = n
		}
	}
}

// appendBranch filters dnf against n's branch prefix (dropping cubes that
// contradict it, and literals already present on it), resolves any
// positive equality produced within a cube by substituting it into the
// rest of that cube, and either closes n, propagates to n's existing
// children, or materializes one new child chain per surviving cube. It
// returns the head nodes of any newly materialized chains.
func (t *Tableau) appendBranch(n *Node, dnf literal.DNF) []*Node {
	path := pathLiterals(n)
	var liveCubes [][]literal.Literal
	for _, c := range dnf.Cubes {
		lits, ok := filterAgainstPath(t.u, path, c.Literals())
		if !ok {
			continue
		}
		lits = resolveEqualities(t.u, lits)
		if len(lits) == 0 {
			continue
		}
		if isClosedLits(lits) {
			continue
		}
		liveCubes = append(liveCubes, lits)
	}
	if len(liveCubes) == 0 {
		n.closed = true
		return nil
	}
	if !n.IsLeaf() {
		var heads []*Node
		for _, child := range n.children {
			heads = append(heads, t.appendBranch(child, literal.DNF{Cubes: cubesFrom(t.u, liveCubes)})...)
		}
		return heads
	}
	var heads []*Node
	for _, lits := range liveCubes {
		if discardAtWorldCycle(t.u, n, lits) {
			continue
		}
		head := t.attachChain(n, lits)
		if head != nil {
			heads = append(heads, head)
		}
	}
	return heads
}

func cubesFrom(u *term.Universe, litss [][]literal.Literal) []literal.Cube {
	out := make([]literal.Cube, len(litss))
	for i, lits := range litss {
		out[i] = literal.NewCube(u, lits)
	}
	return out
}

// attachChain builds a straight-line chain of one node per literal in
// lits, conjunctively, as a new child of leaf. TOP literals are silently
// discarded (spec.md 4.5); a BOTTOM literal closes the chain at that point.
func (t *Tableau) attachChain(leaf *Node, lits []literal.Literal) *Node {
	var head, parent *Node
	for _, l := range lits {
		if l.IsTop() {
			continue
		}
		n := &Node{parent: parent}
		n.lit = l
		if parent == nil {
			n.parent = leaf
			leaf.children = append(leaf.children, n)
		} else {
			parent.children = append(parent.children, n)
		}
		if head == nil {
			head = n
		}
		parent = n
		t.wl.push(t.u, n)
		if l.IsBottom() {
			n.closed = true
			break
		}
	}
	return head
}

func isClosedLits(lits []literal.Literal) bool {
	return len(lits) == 1 && lits[0].IsBottom()
}

// filterAgainstPath drops lits already present on path (their occurrence on
// the branch already established them) and reports ok=false if any literal
// in lits is the direct complement of one on path (the cube contradicts
// the branch and contributes nothing).
func filterAgainstPath(u *term.Universe, path []literal.Literal, lits []literal.Literal) ([]literal.Literal, bool) {
	out := make([]literal.Literal, 0, len(lits))
	for _, l := range lits {
		skip := false
		for _, p := range path {
			if l.IsComplementOf(u, p) {
				return nil, false
			}
			if literal.Compare(u, l, p) == 0 {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, l)
		}
	}
	return out, true
}

// resolveEqualities implements the common case of spec.md 4.5's branch
// renaming: a positive equality produced within one cube (the only
// producer is the atomic-intersection-of-two-events rule) is substituted
// into the rest of that same cube and then dropped, rather than retroactively
// rewriting already-materialized sibling subtrees elsewhere in the proof
// tree (see DESIGN.md for why the fully general tree-copying renamer was
// not carried over).
func resolveEqualities(u *term.Universe, lits []literal.Literal) []literal.Literal {
	for {
		idx := -1
		for i, l := range lits {
			if l.Kind() == literal.KindEquality && !l.Negated() {
				idx = i
				break
			}
		}
		if idx < 0 {
			return lits
		}
		ev := lits[idx].Events()
		rest := make([]literal.Literal, 0, len(lits)-1)
		rest = append(rest, lits[:idx]...)
		rest = append(rest, lits[idx+1:]...)
		for i := range rest {
			rest[i] = rest[i].Substitute(u, ev[0], ev[1])
		}
		lits = rest
	}
}

// discardAtWorldCycle implements spec.md 4.5's "at-the-world" cycle check:
// a negated literal identical to one found beneath a transitive-ancestor
// unrolling parent means this branch would unfold the same obligation
// forever, so the cube is dropped to guarantee termination.
func discardAtWorldCycle(u *term.Universe, leaf *Node, lits []literal.Literal) bool {
	for cur := leaf; cur != nil; cur = cur.parent {
		up := cur.lastUnrollingParent
		if up == nil {
			continue
		}
		if !isAncestor(up, leaf) {
			continue
		}
		for _, under := range subtreeLiterals(up) {
			for _, l := range lits {
				if l.Negated() && literal.Compare(u, l, under) == 0 {
					return true
				}
			}
		}
	}
	return false
}

func isAncestor(anc, n *Node) bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur == anc {
			return true
		}
	}
	return false
}

func subtreeLiterals(n *Node) []literal.Literal {
	out := []literal.Literal{n.lit}
	for _, c := range n.children {
		out = append(out, subtreeLiterals(c)...)
	}
	return out
}

// ExtractDNF reads off the disjunction of normal cubes from every open
// branch with at least one normal literal (spec.md 4.5). Closed leaves
// contribute nothing.
func (t *Tableau) ExtractDNF() literal.DNF {
	var cubes []literal.Cube
	collectLeaves(t.u, t.root, nil, &cubes)
	if len(cubes) == 0 {
		return literal.DNF{Cubes: []literal.Cube{literal.NewCube(t.u, []literal.Literal{literal.Bottom()})}}
	}
	return literal.DNF{Cubes: cubes}
}

func collectLeaves(u *term.Universe, n *Node, acc []literal.Literal, out *[]literal.Cube) {
	if n.closed {
		return
	}
	acc = append(acc, n.lit)
	if len(n.children) == 0 {
		var normal []literal.Literal
		for _, l := range acc {
			if l.IsNormal(u) {
				normal = append(normal, l)
			}
		}
		if len(normal) > 0 {
			*out = append(*out, literal.NewCube(u, normal))
		}
		return
	}
	for _, c := range n.children {
		collectLeaves(u, c, acc, out)
	}
}

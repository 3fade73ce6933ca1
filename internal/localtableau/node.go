// Package localtableau implements the local tableau of spec.md 4.5: given a
// starting conjunction of literals, it exhaustively applies the rewrite
// rules of package rules until every branch is either closed or holds only
// normal literals, then reads off the resulting DNF.
package localtableau

import "relkat.dev/core/internal/literal"

// Node is one local-tableau proof node: a single literal, its children
// (conjunctive continuations of the branch, one per cube a rule produced),
// and a pointer to the nearest ancestor whose positive transitiveClosure
// rule produced this branch (used by the at-the-world cycle check).
type Node struct {
	parent              *Node
	lit                 literal.Literal
	children            []*Node
	closed              bool
	lastUnrollingParent *Node
}

// Literal returns the literal held at n.
func (n *Node) Literal() literal.Literal { return n.lit }

// Children returns n's owned children, for callers that walk the tree
// read-only (package dot's .dot writer).
func (n *Node) Children() []*Node { return n.children }

// IsLeaf reports whether n has no children (whether or not it is closed).
func (n *Node) IsLeaf() bool { return len(n.children) == 0 }

// IsClosed reports whether n's branch has been closed, either directly
// (n.closed) or because every child is closed.
func (n *Node) IsClosed() bool {
	if n.closed {
		return true
	}
	if len(n.children) == 0 {
		return false
	}
	for _, c := range n.children {
		if !c.IsClosed() {
			return false
		}
	}
	return true
}

// pathLiterals collects the literals from the root down to and including n.
func pathLiterals(n *Node) []literal.Literal {
	var rev []literal.Literal
	for cur := n; cur != nil; cur = cur.parent {
		rev = append(rev, cur.lit)
	}
	out := make([]literal.Literal, len(rev))
	for i, l := range rev {
		out[len(rev)-1-i] = l
	}
	return out
}

// pathNodes collects the chain of nodes from the root down to and
// including n, root first.
func pathNodes(n *Node) []*Node {
	var rev []*Node
	for cur := n; cur != nil; cur = cur.parent {
		rev = append(rev, cur)
	}
	out := make([]*Node, len(rev))
	for i, nd := range rev {
		out[len(rev)-1-i] = nd
	}
	return out
}
